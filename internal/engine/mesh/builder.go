package mesh

import (
	"fmt"
	"math"

	"github.com/Faultbox/meshloader/pkg/gltf"
)

// Builder uploads resolved primitives to a Device.
type Builder struct {
	dev Device
}

// NewBuilder creates a builder for dev.
func NewBuilder(dev Device) *Builder {
	return &Builder{dev: dev}
}

// Build uploads one primitive. Every span is sliced from buf and checked
// before the first device object is created; objects created here are
// recorded in scope and are released by the caller on failure.
func (b *Builder) Build(scope *Scope, prim *gltf.Primitive, buf []byte) (*Mesh, error) {
	indices, err := prim.Indices.Bytes(buf)
	if err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	positions, err := prim.Position.Bytes(buf)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	normals, err := prim.Normal.Bytes(buf)
	if err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}
	var texCoords []byte
	if prim.TexCoord != nil {
		if texCoords, err = prim.TexCoord.Bytes(buf); err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}
	if prim.Indices.Count > math.MaxInt32 || prim.Position.Count > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d indices, %d vertices exceed draw limits",
			gltf.ErrBounds, prim.Indices.Count, prim.Position.Count)
	}

	m := &Mesh{
		name:        prim.MeshName,
		vertexCount: int32(prim.Position.Count),
		indexCount:  int32(prim.Indices.Count),
		indexType:   prim.Indices.ComponentType,
		color:       prim.Color,
	}

	if m.vao, err = scope.vertexArray(); err != nil {
		return nil, fmt.Errorf("vertex array: %w", err)
	}
	if m.position, err = scope.vertexBuffer(m.vao, PositionAttrib, positions); err != nil {
		return nil, fmt.Errorf("position buffer: %w", err)
	}
	if m.normal, err = scope.vertexBuffer(m.vao, NormalAttrib, normals); err != nil {
		return nil, fmt.Errorf("normal buffer: %w", err)
	}
	if prim.TexCoord != nil {
		if m.texCoord, err = scope.vertexBuffer(m.vao, TexCoordAttrib, texCoords); err != nil {
			return nil, fmt.Errorf("texcoord buffer: %w", err)
		}
	}
	if m.index, err = scope.indexBuffer(m.vao, indices); err != nil {
		return nil, fmt.Errorf("index buffer: %w", err)
	}

	return m, nil
}
