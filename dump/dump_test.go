package dump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sparsekit/sparse"
)

func mem(t *testing.T, writes map[int64][]byte) *sparse.Memory {
	t.Helper()
	m := sparse.New()
	for off, data := range writes {
		require.NoError(t, m.Write(off, data))
	}
	return m
}

func render(t *testing.T, m *sparse.Memory, opts Options) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Dump(&sb, m, opts))
	return sb.String()
}

func TestDumpGapsRenderAsDashes(t *testing.T) {
	m := mem(t, map[int64][]byte{0: []byte("AB"), 4: []byte("XY")})

	got := render(t, m, Options{Start: sparse.Open, Endex: sparse.Open, Width: 8})
	want := "00000000  41 42 -- -- 58 59 -- --  |AB..XY..|\n"
	require.Equal(t, want, got)
}

func TestDumpElidesEmptyRows(t *testing.T) {
	m := mem(t, map[int64][]byte{0: {'A'}, 40: {'B'}})

	got := render(t, m, Options{Start: sparse.Open, Endex: sparse.Open, Width: 8})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "00000000  41 "))
	require.Equal(t, "*", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "00000028  42 "))
}

func TestDumpExplicitRange(t *testing.T) {
	m := mem(t, map[int64][]byte{0: []byte("ABCDEFGH")})

	// Only [2, 6) is requested; bytes outside the range render as gaps.
	got := render(t, m, Options{Start: 2, Endex: 6, Width: 8})
	want := "00000000  -- -- 43 44 45 46 -- --  |..CDEF..|\n"
	require.Equal(t, want, got)
}

func TestDumpLatin1Preview(t *testing.T) {
	m := mem(t, map[int64][]byte{0: {0xe9, 0x41}})

	got := render(t, m, Options{Start: sparse.Open, Endex: sparse.Open, Width: 8, Encoding: Latin1})
	want := "00000000  e9 41 -- -- -- -- -- --  |éA......|\n"
	require.Equal(t, want, got)
}

func TestDumpUTF16Preview(t *testing.T) {
	m := mem(t, map[int64][]byte{0: {0x48, 0x00, 0x69, 0x00}})

	got := render(t, m, Options{Start: sparse.Open, Endex: sparse.Open, Width: 8, Encoding: UTF16LE})
	want := "00000000  48 00 69 00 -- -- -- --  |Hi..|\n"
	require.Equal(t, want, got)
}

func TestDumpNoPreview(t *testing.T) {
	m := mem(t, map[int64][]byte{0: {0x01}})

	got := render(t, m, Options{Start: sparse.Open, Endex: sparse.Open, Width: 8, NoPreview: true})
	want := "00000000  01 -- -- -- -- -- -- --\n"
	require.Equal(t, want, got)
}

func TestDumpEmptyMemory(t *testing.T) {
	require.Empty(t, render(t, sparse.New(), Options{}))
}

func TestStringUsesFullSpan(t *testing.T) {
	m := mem(t, map[int64][]byte{16: []byte("hello")})
	s := String(m)
	require.Contains(t, s, "hello")
	require.Contains(t, s, "00000010")
}
