package gltf

import "fmt"

// ExtractOptions controls which meshes and attributes are extracted.
type ExtractOptions struct {
	// Exclude skips every mesh whose name equals it exactly. Empty disables
	// exclusion.
	Exclude string

	// TexCoords additionally requires and resolves TEXCOORD_0. Off by
	// default: the position+normal layout is the one this asset class uses.
	TexCoords bool
}

// Primitive is one drawable unit with every byte range resolved and
// validated against the buffer.
type Primitive struct {
	Mesh     int
	MeshName string
	Index    int

	Indices  Span
	Position Span
	Normal   Span
	TexCoord *Span

	Color [4]float32
}

// IndexCount returns the number of indices to draw.
func (p *Primitive) IndexCount() int {
	return p.Indices.Count
}

// Spans returns every span used by the primitive.
func (p *Primitive) Spans() []Span {
	spans := []Span{p.Indices, p.Position, p.Normal}
	if p.TexCoord != nil {
		spans = append(spans, *p.TexCoord)
	}
	return spans
}

// Extract resolves every primitive of every non-excluded mesh, in document
// order, against a buffer of bufferLen bytes. It fails on the first invalid
// primitive and returns nothing in that case.
func Extract(doc *Document, bufferLen int, opts ExtractOptions) ([]Primitive, error) {
	var prims []Primitive
	for mi := range doc.Meshes {
		m := &doc.Meshes[mi]
		if opts.Exclude != "" && m.Name == opts.Exclude {
			continue
		}
		for pi := range m.Primitives {
			prim, err := extractPrimitive(doc, &m.Primitives[pi], bufferLen, opts)
			if err != nil {
				return nil, fmt.Errorf("mesh %d (%q) primitive %d: %w", mi, m.Name, pi, err)
			}
			prim.Mesh = mi
			prim.MeshName = m.Name
			prim.Index = pi
			prims = append(prims, prim)
		}
	}
	return prims, nil
}

func extractPrimitive(doc *Document, mp *MeshPrimitive, bufferLen int, opts ExtractOptions) (Primitive, error) {
	var prim Primitive

	if mp.Indices == nil {
		return prim, fmt.Errorf("%w: indices", ErrMissingAttribute)
	}
	var err error
	prim.Indices, err = doc.ResolveAccessor(*mp.Indices, Scalar, bufferLen, IndexTypes...)
	if err != nil {
		return prim, fmt.Errorf("indices: %w", err)
	}

	prim.Position, err = resolveAttribute(doc, mp, AttributePosition, Vec3, bufferLen)
	if err != nil {
		return prim, err
	}
	prim.Normal, err = resolveAttribute(doc, mp, AttributeNormal, Vec3, bufferLen)
	if err != nil {
		return prim, err
	}
	if prim.Normal.Count != prim.Position.Count {
		return prim, fmt.Errorf("%w: %d normals for %d positions", ErrSchema, prim.Normal.Count, prim.Position.Count)
	}

	if opts.TexCoords {
		uv, err := resolveAttribute(doc, mp, AttributeTexCoord, Vec2, bufferLen)
		if err != nil {
			return prim, err
		}
		if uv.Count != prim.Position.Count {
			return prim, fmt.Errorf("%w: %d texcoords for %d positions", ErrSchema, uv.Count, prim.Position.Count)
		}
		prim.TexCoord = &uv
	}

	prim.Color = DefaultColor
	if mp.Material != nil {
		idx := *mp.Material
		if idx < 0 || idx >= len(doc.Materials) {
			return prim, fmt.Errorf("%w: material %d (have %d)", ErrIndex, idx, len(doc.Materials))
		}
		prim.Color = doc.Materials[idx].BaseColor()
	}

	return prim, nil
}

func resolveAttribute(doc *Document, mp *MeshPrimitive, name string, shape ElementShape, bufferLen int) (Span, error) {
	idx, ok := mp.Attributes[name]
	if !ok {
		return Span{}, fmt.Errorf("%w: %s", ErrMissingAttribute, name)
	}
	span, err := doc.ResolveAccessor(idx, shape, bufferLen, Float)
	if err != nil {
		return Span{}, fmt.Errorf("%s: %w", name, err)
	}
	return span, nil
}
