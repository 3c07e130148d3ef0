package mesh

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/meshloader/internal/logger"
	"github.com/Faultbox/meshloader/pkg/gltf"
)

// State is the load state of a Registry.
type State int

const (
	Unloaded State = iota
	Loaded
	Failed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Options configures how documents are read.
type Options struct {
	// Companion is the file name of the binary buffer next to each
	// document. Empty selects gltf.DefaultCompanionName.
	Companion string

	// TexCoords adds TEXCOORD_0 at attribute slot 2.
	TexCoords bool
}

// Prepared is the CPU-side result of reading a document: the companion
// buffer and every primitive resolved against it. It holds no device
// objects and may be produced on any goroutine.
type Prepared struct {
	Path       string
	Excluded   int
	Primitives []gltf.Primitive

	buffer []byte
}

// BufferLen returns the length of the companion buffer.
func (p *Prepared) BufferLen() int {
	return len(p.buffer)
}

// Prepare parses the document at documentPath, reads its companion buffer
// and resolves every primitive of every mesh not named exclude.
func Prepare(documentPath, exclude string, opts Options) (*Prepared, error) {
	doc, err := gltf.ReadDocument(documentPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", documentPath, err)
	}

	buf, err := gltf.ReadBuffer(documentPath, opts.Companion)
	if err != nil {
		return nil, fmt.Errorf("reading buffer of %s: %w", documentPath, err)
	}

	prims, err := gltf.Extract(doc, len(buf), gltf.ExtractOptions{
		Exclude:   exclude,
		TexCoords: opts.TexCoords,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", documentPath, err)
	}

	p := &Prepared{
		Path:       documentPath,
		Primitives: prims,
		buffer:     buf,
	}
	if exclude != "" {
		p.Excluded = doc.CountNamed(exclude)
		if p.Excluded > 0 {
			logger.Debug("excluded meshes by name",
				zap.String("path", documentPath),
				zap.String("name", exclude),
				zap.Int("count", p.Excluded),
			)
		}
	}
	return p, nil
}

// PrepareResult is delivered by PrepareAsync.
type PrepareResult struct {
	Prepared *Prepared
	Err      error
}

// PrepareAsync runs Prepare on a new goroutine. The returned channel
// receives exactly one result and is then closed. The result must be passed
// to Registry.Upload on the thread that owns the graphics context.
func PrepareAsync(ctx context.Context, documentPath, exclude string, opts Options) <-chan PrepareResult {
	ch := make(chan PrepareResult, 1)
	go func() {
		defer close(ch)
		if err := ctx.Err(); err != nil {
			ch <- PrepareResult{Err: err}
			return
		}
		p, err := Prepare(documentPath, exclude, opts)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			ch <- PrepareResult{Err: err}
			return
		}
		ch <- PrepareResult{Prepared: p}
	}()
	return ch
}

// Registry owns every Mesh created from loaded documents. It is written only
// by Load, Upload and UnloadAll, all of which must run on the thread that
// owns the graphics context while nothing is drawing from Meshes.
type Registry struct {
	dev     Device
	builder *Builder
	opts    Options

	meshes []*Mesh
	state  State
}

// NewRegistry creates an empty registry allocating through dev.
func NewRegistry(dev Device, opts Options) *Registry {
	return &Registry{
		dev:     dev,
		builder: NewBuilder(dev),
		opts:    opts,
	}
}

// Options returns the read options the registry was created with.
func (r *Registry) Options() Options {
	return r.opts
}

// Load reads the document at documentPath and uploads every primitive of
// every mesh not named exclude. On failure nothing created during the call
// survives and the registry keeps its previous meshes.
func (r *Registry) Load(documentPath, exclude string) error {
	logger.Info("loading meshes", zap.String("path", documentPath), zap.String("exclude", exclude))

	p, err := Prepare(documentPath, exclude, r.opts)
	if err != nil {
		r.markFailed()
		return err
	}
	return r.Upload(p)
}

// Upload creates device meshes for a prepared document and appends them to
// the registry. Either every primitive is uploaded or none is.
func (r *Registry) Upload(p *Prepared) error {
	scope := NewScope(r.dev)
	built := make([]*Mesh, 0, len(p.Primitives))

	for i := range p.Primitives {
		prim := &p.Primitives[i]
		m, err := r.builder.Build(scope, prim, p.buffer)
		if err != nil {
			logger.Warn("mesh upload failed, rolling back",
				zap.String("path", p.Path),
				zap.Int("uploaded", len(built)),
				zap.Int("objects", scope.Len()),
				zap.Error(err),
			)
			scope.Release()
			r.markFailed()
			return fmt.Errorf("%s: mesh %d (%q) primitive %d: %w", p.Path, prim.Mesh, prim.MeshName, prim.Index, err)
		}
		built = append(built, m)
	}

	scope.Commit()
	r.meshes = append(r.meshes, built...)
	r.state = Loaded

	logger.Info("meshes loaded",
		zap.String("path", p.Path),
		zap.Int("meshes", len(built)),
		zap.Int("excluded", p.Excluded),
		zap.Int("buffer_bytes", len(p.buffer)),
	)
	return nil
}

// markFailed records a failed load. A registry that still holds meshes from
// an earlier load stays Loaded.
func (r *Registry) markFailed() {
	if len(r.meshes) == 0 {
		r.state = Failed
	}
}

// Meshes returns the meshes in load order. The slice is a copy; the meshes
// themselves are shared and read-only.
func (r *Registry) Meshes() []*Mesh {
	return slices.Clone(r.meshes)
}

// Len returns the number of meshes held.
func (r *Registry) Len() int {
	return len(r.meshes)
}

// State returns the current load state.
func (r *Registry) State() State {
	return r.state
}

// UnloadAll releases every device object held by the registry and empties
// it. Calling it on an empty registry does nothing.
func (r *Registry) UnloadAll() {
	if len(r.meshes) > 0 {
		logger.Info("unloading meshes", zap.Int("meshes", len(r.meshes)))
	}
	for _, m := range r.meshes {
		m.release(r.dev)
	}
	r.meshes = nil
	r.state = Unloaded
}
