package imgio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sparsekit/sparse"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := sparse.New()
	require.NoError(t, m.Write(2, []byte("AB")))
	require.NoError(t, m.Write(6, []byte("CD")))

	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, Save(path, m, '-'))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("AB--CD"), raw)

	// Loading at the original content start reproduces the filled span.
	got, err := Load(path, 2)
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	data, err := got.ToBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("AB--CD"), data)
	require.EqualValues(t, 2, got.ContentStart())
}

func TestSaveHonorsTrimBounds(t *testing.T) {
	m := sparse.New()
	require.NoError(t, m.Write(2, []byte("AB")))
	require.NoError(t, m.Bound(0, 8))

	path := filepath.Join(t.TempDir(), "padded.bin")
	require.NoError(t, Save(path, m, 0x00))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 'A', 'B', 0, 0, 0, 0}, raw)
}

func TestSaveEmptyMemory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, Save(path, sparse.New(), 0xff))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, raw)
}

func TestSaveRange(t *testing.T) {
	m := sparse.New()
	require.NoError(t, m.Write(0, []byte("AABB")))
	require.NoError(t, m.Write(8, []byte("CC")))

	path := filepath.Join(t.TempDir(), "range.bin")
	require.NoError(t, SaveRange(path, m, 2, 9, '.'))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("BB....C"), raw)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"), 0)
	require.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	m, err := Load(path, 0)
	require.NoError(t, err)
	require.True(t, m.IsEmpty())
}
