package mesh

import "github.com/Faultbox/meshloader/internal/logger"

// Scope records every device object created during one load so that a
// failing load can release all of them together. A scope is used by a
// single goroutine and must end with exactly one Release or Commit.
type Scope struct {
	dev          Device
	vertexArrays []uint32
	buffers      []uint32
}

// NewScope starts tracking allocations made through dev.
func NewScope(dev Device) *Scope {
	return &Scope{dev: dev}
}

func (s *Scope) vertexArray() (uint32, error) {
	id, err := s.dev.CreateVertexArray()
	if err != nil {
		return 0, err
	}
	s.vertexArrays = append(s.vertexArrays, id)
	return id, nil
}

func (s *Scope) vertexBuffer(vao uint32, attrib VertexAttrib, data []byte) (uint32, error) {
	id, err := s.dev.CreateVertexBuffer(vao, attrib, data)
	if err != nil {
		return 0, err
	}
	s.buffers = append(s.buffers, id)
	return id, nil
}

func (s *Scope) indexBuffer(vao uint32, data []byte) (uint32, error) {
	id, err := s.dev.CreateIndexBuffer(vao, data)
	if err != nil {
		return 0, err
	}
	s.buffers = append(s.buffers, id)
	return id, nil
}

// Len returns the number of device objects currently tracked.
func (s *Scope) Len() int {
	return len(s.vertexArrays) + len(s.buffers)
}

// Release deletes every tracked object, newest first, and empties the scope.
func (s *Scope) Release() {
	if s.Len() > 0 {
		logger.Sugar.Debugf("releasing %d vertex arrays and %d buffers", len(s.vertexArrays), len(s.buffers))
	}
	for i := len(s.vertexArrays) - 1; i >= 0; i-- {
		s.dev.DeleteVertexArray(s.vertexArrays[i])
	}
	for i := len(s.buffers) - 1; i >= 0; i-- {
		s.dev.DeleteBuffer(s.buffers[i])
	}
	s.vertexArrays = nil
	s.buffers = nil
}

// Commit stops tracking without deleting anything. Ownership of the objects
// passes to the meshes built in this scope.
func (s *Scope) Commit() {
	s.vertexArrays = nil
	s.buffers = nil
}
