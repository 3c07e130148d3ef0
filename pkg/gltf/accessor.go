package gltf

import (
	"fmt"
	"math"
	"slices"
)

// Span is a resolved accessor: a validated byte range of the buffer plus
// the element layout stored in it.
type Span struct {
	Accessor      int
	Offset        int
	Length        int
	Count         int
	ComponentType ComponentType
	Shape         ElementShape
}

// ElementSize returns the size of one component in bytes.
func (s Span) ElementSize() int {
	n, _ := s.ComponentType.Size()
	return n
}

// End returns the first byte offset past the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Bytes returns the span's bytes within buf. The returned slice aliases buf.
func (s Span) Bytes(buf []byte) ([]byte, error) {
	if s.Offset < 0 || s.Length < 0 || s.Offset > len(buf) || s.Length > len(buf)-s.Offset {
		return nil, fmt.Errorf("%w: accessor %d range [%d,%d) exceeds buffer length %d",
			ErrBounds, s.Accessor, s.Offset, s.Offset+s.Length, len(buf))
	}
	return buf[s.Offset : s.Offset+s.Length : s.Offset+s.Length], nil
}

// ResolveAccessor looks up accessor index, checks it against the expected
// element shape and the allowed component types, and validates that the
// whole byte range it describes lies within a buffer of bufferLen bytes.
//
// An accessor without a "type" is assumed to have the expected shape. When
// allowed is empty every recognized component type is accepted. A missing
// bufferView fails like an out-of-range one. Interleaved views, whose
// byteStride differs from the element size, are not supported.
func (d *Document) ResolveAccessor(index int, shape ElementShape, bufferLen int, allowed ...ComponentType) (Span, error) {
	if index < 0 || index >= len(d.Accessors) {
		return Span{}, fmt.Errorf("%w: accessor %d (have %d)", ErrIndex, index, len(d.Accessors))
	}
	acc := &d.Accessors[index]

	if acc.BufferView == nil {
		return Span{}, fmt.Errorf("%w: accessor %d has no bufferView", ErrIndex, index)
	}
	viewIdx := *acc.BufferView
	if viewIdx < 0 || viewIdx >= len(d.BufferViews) {
		return Span{}, fmt.Errorf("%w: accessor %d: bufferView %d (have %d)", ErrIndex, index, viewIdx, len(d.BufferViews))
	}
	view := &d.BufferViews[viewIdx]
	if view.Buffer != 0 {
		return Span{}, fmt.Errorf("%w: bufferView %d: buffer %d (only buffer 0 exists)", ErrIndex, viewIdx, view.Buffer)
	}

	elemSize, err := acc.ComponentType.Size()
	if err != nil {
		return Span{}, fmt.Errorf("accessor %d: %w", index, err)
	}
	if len(allowed) > 0 && !slices.Contains(allowed, acc.ComponentType) {
		return Span{}, fmt.Errorf("%w: accessor %d: component type %s not allowed here", ErrUnsupportedFormat, index, acc.ComponentType)
	}
	if acc.Type != "" && acc.Type != shape {
		return Span{}, fmt.Errorf("%w: accessor %d: type %q, want %q", ErrUnsupportedFormat, index, acc.Type, shape)
	}
	components := shape.Components()
	if components == 0 {
		return Span{}, fmt.Errorf("%w: element shape %q", ErrUnsupportedFormat, shape)
	}

	if view.ByteStride != 0 && view.ByteStride != elemSize*components {
		return Span{}, fmt.Errorf("%w: bufferView %d: byteStride %d, want %d (interleaved data)",
			ErrUnsupportedFormat, viewIdx, view.ByteStride, elemSize*components)
	}

	if bufferLen < 0 || !fits(view.ByteOffset, view.ByteLength, bufferLen) {
		return Span{}, fmt.Errorf("%w: bufferView %d range [%d,+%d) exceeds buffer length %d",
			ErrBounds, viewIdx, view.ByteOffset, view.ByteLength, bufferLen)
	}

	offset, ok := addInt(view.ByteOffset, acc.ByteOffset)
	if !ok {
		return Span{}, fmt.Errorf("%w: accessor %d: offset overflows", ErrBounds, index)
	}
	length, ok := mulInt(acc.Count, elemSize*components)
	if !ok || !fits(offset, length, bufferLen) {
		return Span{}, fmt.Errorf("%w: accessor %d: %d x %d-byte %s at offset %d exceeds buffer length %d",
			ErrBounds, index, acc.Count, elemSize*components, shape, offset, bufferLen)
	}

	return Span{
		Accessor:      index,
		Offset:        offset,
		Length:        length,
		Count:         acc.Count,
		ComponentType: acc.ComponentType,
		Shape:         shape,
	}, nil
}

// fits reports whether [offset, offset+length) lies within [0, limit).
func fits(offset, length, limit int) bool {
	return offset >= 0 && length >= 0 && offset <= limit && length <= limit-offset
}

func addInt(a, b int) (int, bool) {
	if b > 0 && a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

func mulInt(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, false
	}
	return a * b, true
}
