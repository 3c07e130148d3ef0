package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedScreenshots(dir string) *Screenshots {
	s := NewScreenshots(dir, "bird")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	return s
}

func TestScreenshotFilename(t *testing.T) {
	s := fixedScreenshots("shots")
	assert.Equal(t, filepath.Join("shots", "bird_2024-05-01_12-30-00.000.png"), s.Filename())
}

func TestScreenshotSaveFlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := fixedScreenshots(dir)

	// 1x2: bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.Save(pixels, 1, 2)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b)
	r, _, b, _ = img.At(0, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), b)
}

func TestScreenshotSaveSizeMismatch(t *testing.T) {
	s := fixedScreenshots(t.TempDir())

	_, err := s.Save(make([]byte, 7), 1, 2)
	assert.Error(t, err)
	_, err = s.Save(nil, 0, 0)
	assert.Error(t, err)
}
