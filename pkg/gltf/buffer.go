package gltf

import (
	"fmt"
	"os"
	"path/filepath"
)

// CompanionPath returns the path of the binary buffer belonging to the
// document at documentPath. An empty companion name selects
// DefaultCompanionName.
func CompanionPath(documentPath, companion string) string {
	if companion == "" {
		companion = DefaultCompanionName
	}
	return filepath.Join(filepath.Dir(documentPath), companion)
}

// ReadBuffer reads the whole companion buffer of the document at
// documentPath. Offsets are validated against the length of the returned
// slice, so a short read is an error rather than a truncated buffer.
func ReadBuffer(documentPath, companion string) ([]byte, error) {
	path := CompanionPath(documentPath, companion)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrIO, path)
	}

	data := make([]byte, info.Size())
	n, err := f.ReadAt(data, 0)
	if n != len(data) {
		return nil, fmt.Errorf("%w: %s: read %d of %d bytes: %v", ErrIO, path, n, len(data), err)
	}
	return data, nil
}
