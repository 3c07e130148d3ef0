package mesh

import "github.com/Faultbox/meshloader/pkg/gltf"

// Mesh is the device-resident form of one glTF primitive. It is created
// once by a Builder and never modified afterwards; the Registry that holds
// it is its only owner.
type Mesh struct {
	name string

	vao      uint32
	position uint32
	normal   uint32
	texCoord uint32
	index    uint32

	vertexCount int32
	indexCount  int32
	indexType   gltf.ComponentType
	color       [4]float32
}

// Name returns the name of the glTF mesh the primitive belongs to.
func (m *Mesh) Name() string { return m.name }

// VertexArray returns the vertex array object to bind before drawing.
func (m *Mesh) VertexArray() uint32 { return m.vao }

// PositionBuffer returns the buffer bound to attribute slot 0.
func (m *Mesh) PositionBuffer() uint32 { return m.position }

// NormalBuffer returns the buffer bound to attribute slot 1.
func (m *Mesh) NormalBuffer() uint32 { return m.normal }

// TexCoordBuffer returns the buffer bound to attribute slot 2, or 0 when the
// mesh was built without texture coordinates.
func (m *Mesh) TexCoordBuffer() uint32 { return m.texCoord }

// IndexBuffer returns the element buffer.
func (m *Mesh) IndexBuffer() uint32 { return m.index }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int32 { return m.vertexCount }

// IndexCount returns the number of indices to draw.
func (m *Mesh) IndexCount() int32 { return m.indexCount }

// IndexType returns the component type of the index buffer.
func (m *Mesh) IndexType() gltf.ComponentType { return m.indexType }

// IndexElementSize returns the size of one index in bytes (2 or 4).
func (m *Mesh) IndexElementSize() int {
	n, _ := m.indexType.Size()
	return n
}

// Color returns the material base color.
func (m *Mesh) Color() [4]float32 { return m.color }

// Buffers returns every buffer object owned by the mesh.
func (m *Mesh) Buffers() []uint32 {
	bufs := []uint32{m.position, m.normal, m.index}
	if m.texCoord != 0 {
		bufs = append(bufs, m.texCoord)
	}
	return bufs
}

func (m *Mesh) release(dev Device) {
	dev.DeleteVertexArray(m.vao)
	for _, b := range m.Buffers() {
		dev.DeleteBuffer(b)
	}
}
