// meshview opens a window and draws a glTF model uploaded through the mesh
// registry.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshloader/internal/config"
	"github.com/Faultbox/meshloader/internal/engine/camera"
	"github.com/Faultbox/meshloader/internal/engine/debug"
	"github.com/Faultbox/meshloader/internal/engine/gpu"
	"github.com/Faultbox/meshloader/internal/engine/input"
	"github.com/Faultbox/meshloader/internal/engine/lighting"
	"github.com/Faultbox/meshloader/internal/engine/mesh"
	"github.com/Faultbox/meshloader/internal/engine/renderer"
	"github.com/Faultbox/meshloader/internal/engine/window"
	"github.com/Faultbox/meshloader/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mesh Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

// viewer holds everything that lives on the GL thread.
type viewer struct {
	cfg      *config.Config
	win      *window.Window
	rend     *renderer.Renderer
	registry *mesh.Registry
	cam      *camera.OrbitCamera
	in       *input.Input
	shots    *debug.Screenshots

	angle    float32
	paused   bool
	capture  bool
	pending  <-chan mesh.PrepareResult
	lastTick uint64
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	width, height := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.ClearColor,
		LightDir:   lighting.LightDirection(cfg.Render.LightAzimuth, cfg.Render.LightElevation),
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer rend.Close()

	registry := mesh.NewRegistry(gpu.NewDevice(), mesh.Options{
		Companion: cfg.Assets.Companion,
		TexCoords: cfg.Assets.TexCoords,
	})
	// Device objects go before the context does.
	defer registry.UnloadAll()

	v := &viewer{
		cfg:      cfg,
		win:      win,
		rend:     rend,
		registry: registry,
		cam:      camera.NewOrbitCamera(cfg.Render.CameraDistance),
		in:       input.New(),
		shots:    debug.NewScreenshots(cfg.Render.ScreenshotDir, "meshview"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := v.load(ctx); err != nil {
		return err
	}
	return v.loop()
}

// load reads the configured document, either inline or on a worker goroutine
// whose result is uploaded by the frame loop.
func (v *viewer) load(ctx context.Context) error {
	a := v.cfg.Assets
	if a.Async {
		v.pending = mesh.PrepareAsync(ctx, a.Document, a.Exclude, v.registry.Options())
		v.win.SetTitle(v.cfg.Window.Title + " (loading)")
		return nil
	}
	if err := v.registry.Load(a.Document, a.Exclude); err != nil {
		return fmt.Errorf("loading %s: %w", a.Document, err)
	}
	return nil
}

// poll uploads a finished asynchronous preparation.
func (v *viewer) poll() error {
	select {
	case res, ok := <-v.pending:
		if !ok {
			v.pending = nil
			return nil
		}
		v.pending = nil
		v.win.SetTitle(v.cfg.Window.Title)
		if res.Err != nil {
			return fmt.Errorf("preparing %s: %w", v.cfg.Assets.Document, res.Err)
		}
		return v.registry.Upload(res.Prepared)
	default:
		return nil
	}
}

func (v *viewer) reload() error {
	logger.Info("reloading model")
	v.registry.UnloadAll()
	return v.registry.Load(v.cfg.Assets.Document, v.cfg.Assets.Exclude)
}

func (v *viewer) loop() error {
	v.lastTick = window.Ticks()
	for {
		if v.in.Update() {
			return nil
		}
		if err := v.handleEvents(); err != nil {
			return err
		}
		if v.pending != nil {
			if err := v.poll(); err != nil {
				return err
			}
		}

		now := window.Ticks()
		dt := float32(now-v.lastTick) / 1000
		v.lastTick = now
		if !v.paused {
			v.angle += mgl32.DegToRad(v.cfg.Render.SpinSpeed) * dt
		}

		v.draw()
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.win.SwapBuffers()
	}
}

func (v *viewer) handleEvents() error {
	for _, e := range v.in.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.rend.Resize(v.win.DrawableSize())
		case input.EventDrag:
			v.cam.HandleDrag(e.DX, e.DY)
		case input.EventZoom:
			v.cam.HandleZoom(e.DY)
		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_SPACE:
				v.paused = !v.paused
			case sdl.SCANCODE_F12:
				v.capture = true
			case sdl.SCANCODE_R:
				if v.pending == nil {
					if err := v.reload(); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (v *viewer) draw() {
	v.rend.Begin()

	s := v.cfg.Render.Scale
	model := mgl32.HomogRotate3DY(v.angle).Mul4(mgl32.Scale3D(s, s, s))
	width, height := v.rend.Size()
	proj := camera.Projection(v.cfg.Render.FOV, width, height)

	v.rend.DrawMeshes(v.registry.Meshes(), model, v.cam.ViewMatrix(), proj, nil)
}

func (v *viewer) screenshot() {
	pixels, width, height := v.rend.ReadPixels()
	path, err := v.shots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
