package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeek(t *testing.T) {
	m := newMem(t, blk(2, "AB"))
	v, ok := m.Peek(2)
	require.True(t, ok)
	require.Equal(t, byte('A'), v)

	_, ok = m.Peek(4)
	require.False(t, ok)
	_, ok = m.Peek(-1)
	require.False(t, ok)
}

func TestGetAndGetDefault(t *testing.T) {
	m := New()
	require.NoError(t, m.Bound(0, 10))
	require.NoError(t, m.Write(2, []byte("AB")))

	v, err := m.Get(2)
	require.NoError(t, err)
	require.Equal(t, byte('A'), v)

	// Past the trim endex: out of bounds, default or not.
	_, err = m.Get(10)
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, err = m.GetDefault(10, 'x')
	require.ErrorIs(t, err, ErrOutOfBounds)

	// A gap inside the window: Get fails, GetDefault supplies the default.
	_, err = m.Get(5)
	require.ErrorIs(t, err, ErrOutOfBounds)
	v, err = m.GetDefault(5, 'x')
	require.NoError(t, err)
	require.Equal(t, byte('x'), v)
}

func TestPoke(t *testing.T) {
	m := newMem(t, blk(0, "AB"), blk(3, "CD"))

	// Poking the gap between two runs merges everything.
	require.NoError(t, m.Poke(2, 'Z'))
	requireBlocks(t, m, blk(0, "ABZCD"))

	require.NoError(t, m.Poke(1, 'y'))
	requireBlocks(t, m, blk(0, "AyZCD"))

	require.NoError(t, m.Bound(0, 5))
	require.ErrorIs(t, m.Poke(5, 'x'), ErrOutOfBounds)
}

func TestPop(t *testing.T) {
	m := newMem(t, blk(0, "ABC"), blk(5, "DE"))
	v, ok, err := m.Pop(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte('B'), v)
	requireBlocks(t, m, blk(0, "AC"), blk(4, "DE"))

	// Popping a gap still closes it by one position.
	_, ok, err = m.Pop(2)
	require.NoError(t, err)
	require.False(t, ok)
	requireBlocks(t, m, blk(0, "AC"), blk(3, "DE"))
}

func TestPopItem(t *testing.T) {
	m := newMem(t, blk(0, "AB"), blk(4, "CD"))

	addr, v, err := m.PopItem()
	require.NoError(t, err)
	require.EqualValues(t, 5, addr)
	require.Equal(t, byte('D'), v)
	requireBlocks(t, m, blk(0, "AB"), blk(4, "C"))

	addr, v, err = m.PopItem()
	require.NoError(t, err)
	require.EqualValues(t, 4, addr)
	require.Equal(t, byte('C'), v)
	requireBlocks(t, m, blk(0, "AB"))

	empty := New()
	_, _, err = empty.PopItem()
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSetDefault(t *testing.T) {
	m := newMem(t, blk(0, "AB"))

	v, err := m.SetDefault(0, 'x')
	require.NoError(t, err)
	require.Equal(t, byte('A'), v)
	requireBlocks(t, m, blk(0, "AB"))

	v, err = m.SetDefault(3, 'x')
	require.NoError(t, err)
	require.Equal(t, byte('x'), v)
	requireBlocks(t, m, blk(0, "AB"), blk(3, "x"))
}

func TestRemove(t *testing.T) {
	m := newMem(t, blk(0, "ABCDE"))
	require.NoError(t, m.Remove([]byte("CD")))
	requireBlocks(t, m, blk(0, "ABE"))

	require.ErrorIs(t, m.Remove([]byte("ZZ")), ErrNotFound)
}
