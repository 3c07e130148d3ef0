// Package gpu implements mesh.Device on top of OpenGL 4.1 core.
package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshloader/internal/engine/mesh"
	"github.com/Faultbox/meshloader/internal/logger"
	"github.com/Faultbox/meshloader/pkg/gltf"
)

// Device allocates vertex arrays and buffers in the current GL context.
// IMPORTANT: gl.Init must have succeeded and every call must come from the
// thread that owns the context.
type Device struct{}

var _ mesh.Device = (*Device)(nil)

// NewDevice returns a device for the current GL context.
func NewDevice() *Device {
	return &Device{}
}

// CreateVertexArray implements mesh.Device.
func (d *Device) CreateVertexArray() (uint32, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("%w: glGenVertexArrays returned 0", mesh.ErrDevice)
	}
	return vao, nil
}

// CreateVertexBuffer implements mesh.Device. The buffer is tightly packed
// float32 data bound to attrib.Slot.
func (d *Device) CreateVertexBuffer(vao uint32, attrib mesh.VertexAttrib, data []byte) (uint32, error) {
	discardErrors()
	gl.BindVertexArray(vao)
	defer gl.BindVertexArray(0)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("%w: glGenBuffers returned 0", mesh.ErrDevice)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data), dataPtr(data), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(attrib.Slot, attrib.Components, gl.FLOAT, false, attrib.Stride(), 0)
	gl.EnableVertexAttribArray(attrib.Slot)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := checkError("vertex buffer"); err != nil {
		gl.DeleteBuffers(1, &vbo)
		return 0, err
	}
	return vbo, nil
}

// CreateIndexBuffer implements mesh.Device.
func (d *Device) CreateIndexBuffer(vao uint32, data []byte) (uint32, error) {
	discardErrors()
	gl.BindVertexArray(vao)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	if ebo == 0 {
		gl.BindVertexArray(0)
		return 0, fmt.Errorf("%w: glGenBuffers returned 0", mesh.ErrDevice)
	}
	// The element binding is recorded in the vertex array; leave it bound.
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data), dataPtr(data), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	if err := checkError("index buffer"); err != nil {
		gl.DeleteBuffers(1, &ebo)
		return 0, err
	}
	return ebo, nil
}

// DeleteVertexArray implements mesh.Device.
func (d *Device) DeleteVertexArray(id uint32) {
	if id != 0 {
		gl.DeleteVertexArrays(1, &id)
	}
}

// DeleteBuffer implements mesh.Device.
func (d *Device) DeleteBuffer(id uint32) {
	if id != 0 {
		gl.DeleteBuffers(1, &id)
	}
}

// IndexType maps an index component type to the GL enum for DrawElements.
func IndexType(ct gltf.ComponentType) uint32 {
	if ct == gltf.UnsignedShort {
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

func dataPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

// maxQueuedErrors bounds error-queue loops; without a current context some
// drivers report the same error forever.
const maxQueuedErrors = 32

var getError = gl.GetError

// discardErrors empties the error queue so that checkError only sees errors
// raised by the upload that follows. It returns how many were dropped.
func discardErrors() int {
	n := 0
	for code := getError(); code != gl.NO_ERROR && n < maxQueuedErrors; code = getError() {
		n++
		logger.Debug("discarding stale GL error", zap.Uint32("code", code))
	}
	return n
}

// checkError drains the GL error queue, logging every pending error and
// returning the first one.
func checkError(op string) error {
	var first uint32
	n := 0
	for code := getError(); code != gl.NO_ERROR && n < maxQueuedErrors; code = getError() {
		n++
		if first == 0 {
			first = code
		}
		logger.Warn("GL error", zap.String("op", op), zap.Uint32("code", code))
	}
	if first == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: GL error 0x%04X", mesh.ErrDevice, op, first)
}
