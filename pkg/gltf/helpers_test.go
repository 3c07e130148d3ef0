package gltf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// wingDocument has one mesh "Wing" with one primitive: 6 uint16 indices at
// byte 100, 4 positions at [0,48) and 4 normals at [48,96).
const wingDocument = `{
  "meshes": [
    {"name": "Wing", "primitives": [
      {"attributes": {"POSITION": 1, "NORMAL": 2}, "indices": 0}
    ]}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5123, "count": 6, "type": "SCALAR"},
    {"bufferView": 1, "componentType": 5126, "count": 4, "type": "VEC3"},
    {"bufferView": 2, "componentType": 5126, "count": 4, "type": "VEC3"}
  ],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 100, "byteLength": 200},
    {"buffer": 0, "byteOffset": 0, "byteLength": 48},
    {"buffer": 0, "byteOffset": 48, "byteLength": 48}
  ]
}`

// wingBufferLen is the smallest buffer satisfying every bufferView of
// wingDocument.
const wingBufferLen = 300

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(text))
	require.NoError(t, err)
	return doc
}

// writeAsset writes a document and its companion buffer into a fresh
// directory and returns the document path.
func writeAsset(t *testing.T, text string, buf []byte) string {
	t.Helper()
	dir := t.TempDir()
	docPath := filepath.Join(dir, "model.gltf")
	require.NoError(t, os.WriteFile(docPath, []byte(text), 0644))
	if buf != nil {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultCompanionName), buf, 0644))
	}
	return docPath
}
