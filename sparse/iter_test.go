package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, it *SpanIter) []Span {
	t.Helper()
	var out []Span
	for {
		s, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}

func TestIntervals(t *testing.T) {
	m := newMem(t, blk(2, "AB"), blk(6, "CD"))

	it, err := m.Intervals(0, 10)
	require.NoError(t, err)
	require.Equal(t, []Span{{2, 4}, {6, 8}}, collect(t, it))

	// Clamped to the requested range.
	it, err = m.Intervals(3, 7)
	require.NoError(t, err)
	require.Equal(t, []Span{{3, 4}, {6, 7}}, collect(t, it))
}

func TestGaps(t *testing.T) {
	m := newMem(t, blk(2, "AB"), blk(6, "CD"))

	it, err := m.Gaps(0, 10)
	require.NoError(t, err)
	require.Equal(t, []Span{{0, 2}, {4, 6}, {8, 10}}, collect(t, it))

	it, err = m.Gaps(3, 7)
	require.NoError(t, err)
	require.Equal(t, []Span{{4, 6}}, collect(t, it))
}

func TestGapsEmptyMemory(t *testing.T) {
	m := New()
	it, err := m.Gaps(3, 7)
	require.NoError(t, err)
	require.Equal(t, []Span{{3, 7}}, collect(t, it))

	it2, err := m.Intervals(3, 7)
	require.NoError(t, err)
	require.Empty(t, collect(t, it2))
}

func TestIterReset(t *testing.T) {
	m := newMem(t, blk(2, "AB"))
	it, err := m.Gaps(0, 6)
	require.NoError(t, err)

	first := collect(t, it)
	_, ok := it.Next()
	require.False(t, ok) // exhausted stays exhausted

	it.Reset()
	require.Equal(t, first, collect(t, it))
}

func TestValuesIterator(t *testing.T) {
	m := newMem(t, blk(0, "AB"), blk(4, "C"))

	it, err := m.Values(Open, Open)
	require.NoError(t, err)

	var items []Item
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		items = append(items, item)
	}
	require.Equal(t, []Item{
		{Addr: 0, Value: 'A', Occupied: true},
		{Addr: 1, Value: 'B', Occupied: true},
		{Addr: 2},
		{Addr: 3},
		{Addr: 4, Value: 'C', Occupied: true},
	}, items)

	// Reset restarts from the range start.
	it.Reset()
	item, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, Item{Addr: 0, Value: 'A', Occupied: true}, item)
}

func TestValuesIteratorClamped(t *testing.T) {
	m := newMem(t, blk(0, "ABCD"))

	it, err := m.Values(1, 3)
	require.NoError(t, err)
	var got []byte
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		require.True(t, item.Occupied)
		got = append(got, item.Value)
	}
	require.Equal(t, []byte("BC"), got)

	// Inverted ranges normalize to empty.
	it, err = m.Values(3, 1)
	require.NoError(t, err)
	_, ok := it.Next()
	require.False(t, ok)
}

// Gap/interval duality: over any bounded range, the two sequences tile the
// range exactly, with no overlap and no holes.
func TestGapIntervalDuality(t *testing.T) {
	m := newMem(t, blk(2, "AB"), blk(6, "CD"), blk(11, "E"))

	ranges := []Span{{0, 14}, {3, 12}, {4, 6}, {2, 4}, {5, 5}, {9, 3}}
	for _, r := range ranges {
		gi, err := m.Gaps(r.Start, r.Endex)
		require.NoError(t, err)
		ii, err := m.Intervals(r.Start, r.Endex)
		require.NoError(t, err)

		spans := append(collect(t, gi), collect(t, ii)...)
		covered := make(map[int64]int)
		for _, s := range spans {
			require.Less(t, s.Start, s.Endex, "empty span emitted for range %+v", r)
			for a := s.Start; a < s.Endex; a++ {
				covered[a]++
			}
		}
		start, endex := r.Start, r.Endex
		if endex < start {
			endex = start
		}
		require.EqualValues(t, endex-start, int64(len(covered)), "range %+v", r)
		for a := start; a < endex; a++ {
			require.Equal(t, 1, covered[a], "address %d in range %+v", a, r)
		}
	}
}
