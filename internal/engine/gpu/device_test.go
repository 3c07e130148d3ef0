package gpu

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshloader/internal/engine/mesh"
	"github.com/Faultbox/meshloader/pkg/gltf"
)

// queueErrors replaces the GL error source with a fixed queue for the test.
func queueErrors(t *testing.T, codes ...uint32) *[]uint32 {
	t.Helper()
	queue := append([]uint32(nil), codes...)
	prev := getError
	getError = func() uint32 {
		if len(queue) == 0 {
			return gl.NO_ERROR
		}
		code := queue[0]
		queue = queue[1:]
		return code
	}
	t.Cleanup(func() { getError = prev })
	return &queue
}

func TestStaleErrorsDoNotFailNextUpload(t *testing.T) {
	// Left behind by an earlier draw call.
	queue := queueErrors(t, gl.INVALID_OPERATION, gl.INVALID_ENUM)

	assert.Equal(t, 2, discardErrors())
	assert.Empty(t, *queue)
	assert.NoError(t, checkError("vertex buffer"))
}

func TestCheckErrorReportsFirst(t *testing.T) {
	queueErrors(t, gl.OUT_OF_MEMORY, gl.INVALID_VALUE)

	err := checkError("index buffer")
	require.Error(t, err)
	assert.ErrorIs(t, err, mesh.ErrDevice)
	assert.Contains(t, err.Error(), "index buffer: GL error 0x0505")
	assert.NoError(t, checkError("index buffer"))
}

func TestErrorLoopsAreBounded(t *testing.T) {
	prev := getError
	getError = func() uint32 { return gl.INVALID_OPERATION }
	t.Cleanup(func() { getError = prev })

	assert.Equal(t, maxQueuedErrors, discardErrors())
	assert.ErrorIs(t, checkError("vertex buffer"), mesh.ErrDevice)
}

func TestIndexType(t *testing.T) {
	assert.Equal(t, uint32(gl.UNSIGNED_SHORT), IndexType(gltf.UnsignedShort))
	assert.Equal(t, uint32(gl.UNSIGNED_INT), IndexType(gltf.UnsignedInt))
}
