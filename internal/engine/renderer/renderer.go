// Package renderer draws uploaded meshes with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshloader/internal/engine/gpu"
	"github.com/Faultbox/meshloader/internal/engine/mesh"
	"github.com/Faultbox/meshloader/internal/engine/renderer/shaders"
	"github.com/Faultbox/meshloader/internal/engine/shader"
	"github.com/Faultbox/meshloader/internal/logger"
)

// Uniform names used by the mesh program.
const (
	uniformModel        = "uModel"
	uniformView         = "uView"
	uniformProjection   = "uProjection"
	uniformNormalMatrix = "uNormalMatrix"
	uniformColor        = "uColor"
	uniformLightDir     = "uLightDir"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	LightDir   mgl32.Vec3 // Direction light travels
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
}

// New initializes OpenGL and builds the mesh program.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	var err error
	r.program, err = shader.NewProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader,
		uniformModel, uniformView, uniformProjection, uniformNormalMatrix, uniformColor, uniformLightDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh program: %w", err)
	}
	logger.Debug("mesh program created", zap.Uint32("program", r.program.ID()))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.program.Delete()
}

// Resize sets the viewport to the drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// ReadPixels reads the back buffer as bottom-up RGBA rows. Call it after
// drawing and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawMeshes draws every mesh with the same transforms. Each mesh uses its
// material color unless override is non-nil.
func (r *Renderer) DrawMeshes(meshes []*mesh.Mesh, model, view, proj mgl32.Mat4, override *[4]float32) {
	if len(meshes) == 0 {
		return
	}

	p := r.program
	p.Use()
	p.SetMat4(uniformModel, model)
	p.SetMat4(uniformView, view)
	p.SetMat4(uniformProjection, proj)
	p.SetMat3(uniformNormalMatrix, model.Mat3().Inv().Transpose())
	p.SetVec3(uniformLightDir, r.config.LightDir)

	for _, m := range meshes {
		color := m.Color()
		if override != nil {
			color = *override
		}
		p.SetVec4(uniformColor, mgl32.Vec4(color))

		gl.BindVertexArray(m.VertexArray())
		gl.DrawElements(gl.TRIANGLES, m.IndexCount(), gpu.IndexType(m.IndexType()), nil)
	}
	gl.BindVertexArray(0)
}
