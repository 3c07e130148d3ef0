package mesh

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshloader/pkg/gltf"
)

func TestRegistryLoadWing(t *testing.T) {
	dev := newFakeDevice()
	reg := NewRegistry(dev, Options{})
	assert.Equal(t, Unloaded, reg.State())

	require.NoError(t, reg.Load(writeAsset(t, wingDocument, wingBufferLen), "Cube.001"))

	assert.Equal(t, Loaded, reg.State())
	meshes := reg.Meshes()
	require.Len(t, meshes, 1)
	assert.Equal(t, int32(6), meshes[0].IndexCount())
	assert.Equal(t, 2, meshes[0].IndexElementSize())
	assert.Equal(t, patternBuffer(wingBufferLen)[0:48], dev.live[meshes[0].PositionBuffer()].data)
}

func TestRegistryExclusion(t *testing.T) {
	tests := []struct {
		exclude string
		names   []string
	}{
		{"Cube.001", []string{"Body", "Body", "Tail"}},
		{"CUBE.001", []string{"Body", "Body", "Cube.001", "Tail"}},
		{"Cube.00", []string{"Body", "Body", "Cube.001", "Tail"}},
		{"", []string{"Body", "Body", "Cube.001", "Tail"}},
	}
	for _, tt := range tests {
		t.Run(tt.exclude, func(t *testing.T) {
			reg := NewRegistry(newFakeDevice(), Options{})
			require.NoError(t, reg.Load(writeAsset(t, birdDocument, birdBufferLen), tt.exclude))

			var names []string
			for _, m := range reg.Meshes() {
				names = append(names, m.Name())
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestRegistryColors(t *testing.T) {
	reg := NewRegistry(newFakeDevice(), Options{})
	require.NoError(t, reg.Load(writeAsset(t, birdDocument, birdBufferLen), "Cube.001"))

	meshes := reg.Meshes()
	require.Len(t, meshes, 3)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, meshes[0].Color())
	assert.Equal(t, [4]float32{1, 0, 0, 1}, meshes[1].Color())
	assert.Equal(t, 4, meshes[2].IndexElementSize())
}

func TestRegistryLoadFailures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		bufLen int
		want   error
	}{
		{"short buffer", wingDocument, 299, gltf.ErrBounds},
		{"empty buffer", wingDocument, 0, gltf.ErrBounds},
		{"missing buffer", wingDocument, -1, gltf.ErrIO},
		{"malformed", `{"meshes": [`, wingBufferLen, gltf.ErrParse},
		{"no accessors", `{"meshes": [], "bufferViews": []}`, wingBufferLen, gltf.ErrSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice()
			reg := NewRegistry(dev, Options{})

			err := reg.Load(writeAsset(t, tt.text, tt.bufLen), "")
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, reg.Len())
			assert.Equal(t, Failed, reg.State())
			assert.Zero(t, dev.liveCount())
			assert.Zero(t, dev.allocs)
		})
	}
}

func TestRegistryRollback(t *testing.T) {
	// Body's two primitives take 4 allocations each; fail inside Tail.
	dev := newFakeDevice()
	dev.failAt = 11
	reg := NewRegistry(dev, Options{})

	err := reg.Load(writeAsset(t, birdDocument, birdBufferLen), "Cube.001")
	require.ErrorIs(t, err, ErrDevice)
	assert.Contains(t, err.Error(), `mesh 2 ("Tail") primitive 0`)
	assert.Zero(t, reg.Len())
	assert.Equal(t, Failed, reg.State())
	assert.Zero(t, dev.liveCount())
	assert.Len(t, dev.deleted, 10)
}

func TestRegistryFailedLoadKeepsEarlierMeshes(t *testing.T) {
	dev := newFakeDevice()
	reg := NewRegistry(dev, Options{})
	require.NoError(t, reg.Load(writeAsset(t, wingDocument, wingBufferLen), ""))
	before := reg.Meshes()

	dev.failAt = dev.allocs + 2
	err := reg.Load(writeAsset(t, wingDocument, wingBufferLen), "")
	require.ErrorIs(t, err, ErrDevice)

	assert.Equal(t, Loaded, reg.State())
	assert.Equal(t, before, reg.Meshes())
	assert.Equal(t, 4, dev.liveCount())
}

func TestRegistryLoadTwiceNoAliasing(t *testing.T) {
	dev := newFakeDevice()
	reg := NewRegistry(dev, Options{})
	path := writeAsset(t, wingDocument, wingBufferLen)

	require.NoError(t, reg.Load(path, ""))
	require.NoError(t, reg.Load(path, ""))

	meshes := reg.Meshes()
	require.Len(t, meshes, 2)

	seen := make(map[uint32]bool)
	for _, m := range meshes {
		ids := append([]uint32{m.VertexArray()}, m.Buffers()...)
		for _, id := range ids {
			assert.False(t, seen[id], "object %d shared between loads", id)
			seen[id] = true
		}
	}
	assert.Equal(t, dev.live[meshes[0].PositionBuffer()].data, dev.live[meshes[1].PositionBuffer()].data)
}

func TestRegistryUnloadAll(t *testing.T) {
	dev := newFakeDevice()
	reg := NewRegistry(dev, Options{})
	require.NoError(t, reg.Load(writeAsset(t, birdDocument, birdBufferLen), "Cube.001"))
	require.Equal(t, 12, dev.liveCount())

	reg.UnloadAll()
	assert.Zero(t, reg.Len())
	assert.Equal(t, Unloaded, reg.State())
	assert.Zero(t, dev.liveCount())

	// Idempotent: fakeDevice panics on double delete.
	reg.UnloadAll()
	assert.Equal(t, Unloaded, reg.State())
}

func TestRegistryMeshesIsACopy(t *testing.T) {
	reg := NewRegistry(newFakeDevice(), Options{})
	require.NoError(t, reg.Load(writeAsset(t, birdDocument, birdBufferLen), ""))

	meshes := reg.Meshes()
	meshes[0] = nil
	assert.NotNil(t, reg.Meshes()[0])
	assert.Equal(t, reg.Meshes(), reg.Meshes())
}

func TestRegistryCompanionOption(t *testing.T) {
	path := writeAsset(t, wingDocument, -1)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "wing.bin"), patternBuffer(wingBufferLen), 0644))

	reg := NewRegistry(newFakeDevice(), Options{Companion: "wing.bin", TexCoords: true})
	require.NoError(t, reg.Load(path, ""))
	require.Equal(t, 1, reg.Len())
	assert.NotZero(t, reg.Meshes()[0].TexCoordBuffer())
}

func TestPrepareAsync(t *testing.T) {
	dev := newFakeDevice()
	reg := NewRegistry(dev, Options{})

	res := <-PrepareAsync(context.Background(), writeAsset(t, birdDocument, birdBufferLen), "Cube.001", Options{})
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Prepared.Excluded)
	assert.Len(t, res.Prepared.Primitives, 3)
	assert.Equal(t, birdBufferLen, res.Prepared.BufferLen())
	assert.Zero(t, dev.allocs, "prepare must not touch the device")

	require.NoError(t, reg.Upload(res.Prepared))
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, Loaded, reg.State())
}

func TestPrepareAsyncErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := PrepareAsync(ctx, writeAsset(t, wingDocument, wingBufferLen), "", Options{})
	res := <-ch
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Nil(t, res.Prepared)
	_, open := <-ch
	assert.False(t, open)

	res = <-PrepareAsync(context.Background(), writeAsset(t, wingDocument, 10), "", Options{})
	assert.ErrorIs(t, res.Err, gltf.ErrBounds)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Unloaded", Unloaded.String())
	assert.Equal(t, "Loaded", Loaded.String())
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "Unknown(9)", State(9).String())
}

func TestRegistryOptions(t *testing.T) {
	opts := Options{Companion: "wing.bin", TexCoords: true}
	reg := NewRegistry(newFakeDevice(), opts)
	assert.Equal(t, opts, reg.Options())
}
