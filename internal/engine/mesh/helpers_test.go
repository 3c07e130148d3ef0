package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshloader/pkg/gltf"
)

// wingDocument: one mesh "Wing", 6 uint16 indices at byte 100, 4 positions
// at [0,48), 4 normals at [48,96).
const wingDocument = `{
  "meshes": [
    {"name": "Wing", "primitives": [
      {"attributes": {"POSITION": 1, "NORMAL": 2, "TEXCOORD_0": 3}, "indices": 0, "material": 0}
    ]}
  ],
  "materials": [{"pbrMetallicRoughness": {"baseColorFactor": [0.2, 0.4, 0.6, 1]}}],
  "accessors": [
    {"bufferView": 0, "componentType": 5123, "count": 6},
    {"bufferView": 1, "componentType": 5126, "count": 4, "type": "VEC3"},
    {"bufferView": 2, "componentType": 5126, "count": 4, "type": "VEC3"},
    {"bufferView": 3, "componentType": 5126, "count": 4, "type": "VEC2"}
  ],
  "bufferViews": [
    {"byteOffset": 100, "byteLength": 200},
    {"byteOffset": 0, "byteLength": 48},
    {"byteOffset": 48, "byteLength": 48},
    {"byteOffset": 300, "byteLength": 32}
  ]
}`

const wingBufferLen = 332

// birdDocument: "Body" (two primitives), the helper "Cube.001", and
// "Tail", each primitive with 3 uint32 indices and 3 vertices.
const birdDocument = `{
  "meshes": [
    {"name": "Body", "primitives": [
      {"attributes": {"POSITION": 1, "NORMAL": 2}, "indices": 0},
      {"attributes": {"POSITION": 1, "NORMAL": 2}, "indices": 0, "material": 0}
    ]},
    {"name": "Cube.001", "primitives": [
      {"attributes": {"POSITION": 1, "NORMAL": 2}, "indices": 0}
    ]},
    {"name": "Tail", "primitives": [
      {"attributes": {"POSITION": 1, "NORMAL": 2}, "indices": 0}
    ]}
  ],
  "materials": [{"pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1]}}],
  "accessors": [
    {"bufferView": 0, "componentType": 5125, "count": 3},
    {"bufferView": 1, "componentType": 5126, "count": 3},
    {"bufferView": 2, "componentType": 5126, "count": 3}
  ],
  "bufferViews": [
    {"byteOffset": 0, "byteLength": 12},
    {"byteOffset": 12, "byteLength": 36},
    {"byteOffset": 48, "byteLength": 36}
  ]
}`

const birdBufferLen = 84

// patternBuffer returns n bytes where byte i is i modulo 251, so any byte
// range can be checked against its expected position.
func patternBuffer(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i % 251)
	}
	return buf
}

// writeAsset writes a document and a companion buffer of bufLen pattern
// bytes (none when bufLen < 0) and returns the document path.
func writeAsset(t *testing.T, text string, bufLen int) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bird.gltf")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	if bufLen >= 0 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, gltf.DefaultCompanionName), patternBuffer(bufLen), 0644))
	}
	return path
}
