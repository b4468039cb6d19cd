// Package imgio loads flat binary image files into sparse memories and
// saves sparse memories back out as flat files.
//
// # Overview
//
// A flat image file has no notion of gaps, so the two directions are
// asymmetric: loading places the whole file as one block at a caller-chosen
// base address, while saving must materialize every gap with an explicit
// fill byte. Loads go through a read-only memory mapping where the platform
// supports one; saves write the file and sync it to disk before returning.
package imgio

import (
	"fmt"
	"os"

	"github.com/joshuapare/sparsekit/internal/mmfile"
	"github.com/joshuapare/sparsekit/sparse"
)

// Load reads the image file at path into a new memory, placing its first
// byte at address base. The file contents are copied, so the returned
// memory stays valid after the underlying mapping is released.
func Load(path string, base int64) (*sparse.Memory, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("imgio: load %s: %w", path, err)
	}
	defer cleanup()

	m, err := sparse.FromBytes(data, base)
	if err != nil {
		return nil, fmt.Errorf("imgio: load %s: %w", path, err)
	}
	return m, nil
}

// Save writes the memory's span to path as a flat image, substituting fill
// for every gap byte. The span runs from Start to Endex, so trim bounds
// widen the output accordingly. An empty memory produces an empty file.
func Save(path string, m *sparse.Memory, fill byte) error {
	return writeImage(path, m.ToBytesFill(fill))
}

// SaveRange writes the range [start, endex) of the memory to path,
// substituting fill for gap bytes.
func SaveRange(path string, m *sparse.Memory, start, endex int64, fill byte) error {
	v, err := m.ViewFill(start, endex, fill)
	if err != nil {
		return fmt.Errorf("imgio: save %s: %w", path, err)
	}
	defer v.Release()
	data, err := v.Bytes()
	if err != nil {
		return fmt.Errorf("imgio: save %s: %w", path, err)
	}
	return writeImage(path, data)
}

// writeImage writes data to path and syncs it to disk before returning.
func writeImage(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("imgio: save %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("imgio: save %s: %w", path, err)
	}
	if err := syncFile(f); err != nil {
		f.Close()
		return fmt.Errorf("imgio: sync %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imgio: save %s: %w", path, err)
	}
	return nil
}
