package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindAndRFind(t *testing.T) {
	m := newMem(t, blk(0, "ABAB"), blk(6, "AB"))

	require.EqualValues(t, 0, m.Find([]byte("AB"), Open, Open))
	require.EqualValues(t, 6, m.RFind([]byte("AB"), Open, Open))
	require.EqualValues(t, 2, m.Find([]byte("AB"), 1, Open))
	require.EqualValues(t, 2, m.RFind([]byte("AB"), Open, 6))
	require.EqualValues(t, -1, m.Find([]byte("ZZ"), Open, Open))
}

func TestFindNeverMatchesAcrossGap(t *testing.T) {
	// "AB" is split across the gap: no match.
	m := newMem(t, blk(0, "XA"), blk(3, "BX"))
	require.EqualValues(t, -1, m.Find([]byte("AB"), Open, Open))
	require.EqualValues(t, -1, m.RFind([]byte("AB"), Open, Open))
}

func TestFindHonorsRangeClamp(t *testing.T) {
	m := newMem(t, blk(0, "AAAA"))
	require.EqualValues(t, 1, m.Find([]byte("AA"), 1, Open))
	// A match may not extend past endex.
	require.EqualValues(t, -1, m.Find([]byte("AAA"), 2, 4))
	require.EqualValues(t, -1, m.Find([]byte("AA"), 3, 4))
}

func TestIndexAndRIndex(t *testing.T) {
	m := newMem(t, blk(0, "ABC"))

	addr, err := m.Index([]byte("BC"), Open, Open)
	require.NoError(t, err)
	require.EqualValues(t, 1, addr)

	_, err = m.Index([]byte("ZZ"), Open, Open)
	require.ErrorIs(t, err, ErrNotFound)

	addr, err = m.RIndex([]byte("C"), Open, Open)
	require.NoError(t, err)
	require.EqualValues(t, 2, addr)

	_, err = m.RIndex([]byte("ZZ"), Open, Open)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOFindAndROFind(t *testing.T) {
	m := newMem(t, blk(0, "ABC"))

	addr, ok := m.OFind([]byte("BC"), Open, Open)
	require.True(t, ok)
	require.EqualValues(t, 1, addr)

	_, ok = m.OFind([]byte("ZZ"), Open, Open)
	require.False(t, ok)

	addr, ok = m.ROFind([]byte("A"), Open, Open)
	require.True(t, ok)
	require.EqualValues(t, 0, addr)
}

func TestCount(t *testing.T) {
	m := newMem(t, blk(0, "abab"), blk(6, "ab"))
	require.EqualValues(t, 3, m.Count([]byte("ab"), Open, Open))
	require.EqualValues(t, 2, m.Count([]byte("ab"), 0, 6))
	require.EqualValues(t, 0, m.Count([]byte("zz"), Open, Open))
	require.EqualValues(t, 0, m.Count(nil, Open, Open))

	// Non-overlapping: "aa" counts twice in "aaaa".
	n := newMem(t, blk(0, "aaaa"))
	require.EqualValues(t, 2, n.Count([]byte("aa"), Open, Open))
}

func TestContains(t *testing.T) {
	m := newMem(t, blk(3, "hello"))
	require.True(t, m.Contains([]byte("ell")))
	require.False(t, m.Contains([]byte("exx")))
}

func TestBlockSpan(t *testing.T) {
	m := newMem(t, blk(2, "AB"), blk(7, "CD"))

	start, endex, v, ok := m.BlockSpan(3)
	require.True(t, ok)
	require.EqualValues(t, 2, start)
	require.EqualValues(t, 4, endex)
	require.Equal(t, byte('B'), v)

	// Gap between the blocks.
	start, endex, _, ok = m.BlockSpan(5)
	require.False(t, ok)
	require.EqualValues(t, 4, start)
	require.EqualValues(t, 7, endex)

	// Leading and trailing gaps are unbounded on the open side.
	start, endex, _, ok = m.BlockSpan(0)
	require.False(t, ok)
	require.Equal(t, Open, start)
	require.EqualValues(t, 2, endex)

	start, endex, _, ok = m.BlockSpan(100)
	require.False(t, ok)
	require.EqualValues(t, 9, start)
	require.Equal(t, Open, endex)
}

func TestBlockSpanEmpty(t *testing.T) {
	m := New()
	start, endex, _, ok := m.BlockSpan(5)
	require.False(t, ok)
	require.Equal(t, Open, start)
	require.Equal(t, Open, endex)
}

func TestEqualSpan(t *testing.T) {
	m := newMem(t, blk(0, "AABBBA"))

	start, endex, v, ok := m.EqualSpan(3)
	require.True(t, ok)
	require.EqualValues(t, 2, start)
	require.EqualValues(t, 5, endex)
	require.Equal(t, byte('B'), v)

	start, endex, v, ok = m.EqualSpan(0)
	require.True(t, ok)
	require.EqualValues(t, 0, start)
	require.EqualValues(t, 2, endex)
	require.Equal(t, byte('A'), v)

	// In a gap it reports the gap extent.
	g := newMem(t, blk(0, "A"), blk(4, "B"))
	start, endex, _, ok = g.EqualSpan(2)
	require.False(t, ok)
	require.EqualValues(t, 1, start)
	require.EqualValues(t, 4, endex)
}
