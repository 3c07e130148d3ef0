package main

import (
	"errors"
	"fmt"
	"path/filepath"

	qgltf "github.com/qmuntal/gltf"

	"github.com/Faultbox/meshloader/internal/engine/mesh"
)

var errBufferCount = errors.New("model must have exactly one buffer")

// splitModel rewrites the model at in as a text document at out whose single
// buffer lives in a companion file beside it. The written pair is then read
// back through the loader's CPU stages, with nothing excluded, and the number
// of resolved primitives is returned.
func splitModel(in, out, companion string) (int, error) {
	if companion == "" || filepath.Base(companion) != companion {
		return 0, fmt.Errorf("companion %q must be a plain file name", companion)
	}

	doc, err := qgltf.Open(in)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", in, err)
	}
	if len(doc.Buffers) != 1 {
		return 0, fmt.Errorf("%s: %w (has %d)", in, errBufferCount, len(doc.Buffers))
	}

	buf := doc.Buffers[0]
	buf.URI = companion
	buf.ByteLength = len(buf.Data)

	if err := qgltf.Save(doc, out); err != nil {
		return 0, fmt.Errorf("save %s: %w", out, err)
	}

	p, err := mesh.Prepare(out, "", mesh.Options{Companion: companion})
	if err != nil {
		return 0, fmt.Errorf("verify %s: %w", out, err)
	}
	return len(p.Primitives), nil
}
