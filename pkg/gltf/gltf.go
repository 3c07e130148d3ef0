// Package gltf loads the subset of glTF 2.0 used for static colored meshes:
// a JSON document whose single buffer lives in a companion binary file next
// to it, with position/normal/index data and a constant base color per
// primitive.
//
// Every cross-reference in the document (mesh -> primitive -> accessor ->
// bufferView -> buffer) is an integer index that is validated when it is
// resolved. No byte range is handed out before it has been checked against
// the length of the loaded buffer.
package gltf

import "errors"

// Load errors. Every error returned by this package wraps exactly one of
// these, so callers can match with errors.Is.
var (
	ErrParse             = errors.New("malformed document")
	ErrSchema            = errors.New("invalid document schema")
	ErrIO                = errors.New("file unreadable")
	ErrIndex             = errors.New("index out of range")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingAttribute  = errors.New("missing attribute")
	ErrBounds            = errors.New("byte range out of bounds")
)

// Attribute names read from primitive attribute maps.
const (
	AttributePosition = "POSITION"
	AttributeNormal   = "NORMAL"
	AttributeTexCoord = "TEXCOORD_0"
)

// DefaultCompanionName is the file name of the binary buffer that sits next
// to a document.
const DefaultCompanionName = "bird.bin"
