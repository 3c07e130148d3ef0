// Package mesh turns resolved glTF primitives into GPU meshes and owns them
// for the lifetime of the application.
package mesh

import "errors"

// ErrDevice is wrapped by every error caused by a failed device allocation.
var ErrDevice = errors.New("device allocation failed")

// VertexAttrib describes one tightly packed float32 vertex attribute.
type VertexAttrib struct {
	Slot       uint32
	Components int32
}

// Stride returns the byte size of one attribute element.
func (a VertexAttrib) Stride() int32 {
	return a.Components * 4
}

// Vertex layout shared by the loader and the mesh shader.
var (
	PositionAttrib = VertexAttrib{Slot: 0, Components: 3}
	NormalAttrib   = VertexAttrib{Slot: 1, Components: 3}
	TexCoordAttrib = VertexAttrib{Slot: 2, Components: 2}
)

// Device creates and deletes GPU objects. Implementations are bound to the
// thread that owns the graphics context; none of the methods may be called
// from any other goroutine.
type Device interface {
	// CreateVertexArray returns a new, empty vertex array object.
	CreateVertexArray() (uint32, error)

	// CreateVertexBuffer uploads data verbatim into a new buffer and binds
	// it to attribute slot attrib.Slot of the vertex array vao.
	CreateVertexBuffer(vao uint32, attrib VertexAttrib, data []byte) (uint32, error)

	// CreateIndexBuffer uploads data verbatim into a new element buffer
	// attached to the vertex array vao.
	CreateIndexBuffer(vao uint32, data []byte) (uint32, error)

	DeleteVertexArray(id uint32)
	DeleteBuffer(id uint32)
}
