package gltf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Document is the parsed scene description. All cross-references are
// indices into the tables below and are only trusted after resolution.
type Document struct {
	Meshes      []Mesh
	Materials   []Material
	Accessors   []Accessor
	BufferViews []BufferView
}

// Mesh is a named group of primitives.
type Mesh struct {
	Name       string          `json:"name"`
	Primitives []MeshPrimitive `json:"primitives"`
}

// MeshPrimitive is a primitive as written in the document, before any of
// its references are resolved.
type MeshPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
	Material   *int           `json:"material"`
}

// Accessor is a typed view into a bufferView.
type Accessor struct {
	BufferView    *int          `json:"bufferView"`
	ByteOffset    int           `json:"byteOffset"`
	ComponentType ComponentType `json:"componentType"`
	Count         int           `json:"count"`
	Type          ElementShape  `json:"type"`
}

// BufferView is a byte range of the single companion buffer.
type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride"` // 0 means tightly packed
}

// Material carries the constant base color of a primitive.
type Material struct {
	Name                 string `json:"name"`
	PBRMetallicRoughness *struct {
		BaseColorFactor []float64 `json:"baseColorFactor"`
	} `json:"pbrMetallicRoughness"`
}

// DefaultColor is used for primitives without a material and for materials
// without a baseColorFactor.
var DefaultColor = [4]float32{1, 1, 1, 1}

// BaseColor returns the material's base color factor.
func (m *Material) BaseColor() [4]float32 {
	if m.PBRMetallicRoughness == nil || m.PBRMetallicRoughness.BaseColorFactor == nil {
		return DefaultColor
	}
	f := m.PBRMetallicRoughness.BaseColorFactor
	return [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
}

// documentJSON mirrors the top level of the file. Required tables are
// pointers so that a missing table can be told apart from an empty one.
type documentJSON struct {
	Meshes      *[]Mesh       `json:"meshes"`
	Materials   []Material    `json:"materials"`
	Accessors   *[]Accessor   `json:"accessors"`
	BufferViews *[]BufferView `json:"bufferViews"`
}

// ParseDocument parses document text.
func ParseDocument(data []byte) (*Document, error) {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		if isSyntaxError(err) {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	switch {
	case raw.Meshes == nil:
		return nil, fmt.Errorf("%w: missing \"meshes\"", ErrSchema)
	case raw.Accessors == nil:
		return nil, fmt.Errorf("%w: missing \"accessors\"", ErrSchema)
	case raw.BufferViews == nil:
		return nil, fmt.Errorf("%w: missing \"bufferViews\"", ErrSchema)
	}

	doc := &Document{
		Meshes:      *raw.Meshes,
		Materials:   raw.Materials,
		Accessors:   *raw.Accessors,
		BufferViews: *raw.BufferViews,
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadDocument reads and parses the document at path.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return ParseDocument(data)
}

// validate checks field-level constraints that JSON decoding cannot express.
// Cross-table references are checked later, at resolution time.
func (d *Document) validate() error {
	for i, acc := range d.Accessors {
		if acc.ByteOffset < 0 || acc.Count < 0 {
			return fmt.Errorf("%w: accessor %d: negative byteOffset or count", ErrSchema, i)
		}
	}
	for i, bv := range d.BufferViews {
		if bv.ByteOffset < 0 || bv.ByteLength < 0 || bv.ByteStride < 0 {
			return fmt.Errorf("%w: bufferView %d: negative byteOffset, byteLength or byteStride", ErrSchema, i)
		}
	}
	for i := range d.Materials {
		if err := validateMaterial(&d.Materials[i]); err != nil {
			return fmt.Errorf("material %d: %w", i, err)
		}
	}
	return nil
}

func validateMaterial(m *Material) error {
	if m.PBRMetallicRoughness == nil || m.PBRMetallicRoughness.BaseColorFactor == nil {
		return nil
	}
	f := m.PBRMetallicRoughness.BaseColorFactor
	if len(f) != 4 {
		return fmt.Errorf("%w: baseColorFactor has %d components, want 4", ErrSchema, len(f))
	}
	for _, c := range f {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: baseColorFactor component %g outside [0,1]", ErrSchema, c)
		}
	}
	return nil
}

// CountNamed returns how many meshes carry exactly the given name.
func (d *Document) CountNamed(name string) int {
	n := 0
	for i := range d.Meshes {
		if d.Meshes[i].Name == name {
			n++
		}
	}
	return n
}

// isSyntaxError reports whether err came from malformed JSON text rather
// than from a type mismatch.
func isSyntaxError(err error) bool {
	var se *json.SyntaxError
	return errors.As(err, &se)
}
