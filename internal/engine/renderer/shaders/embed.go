// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms positions and normals of uploaded meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades a mesh with its material color and one
// directional light.
//
//go:embed mesh.frag
var MeshFragmentShader string
