package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewBorrowsSingleBlock(t *testing.T) {
	m := newMem(t, blk(2, "ABCDEF"))

	v, err := m.View(3, 6)
	require.NoError(t, err)
	require.False(t, v.Owned())
	require.True(t, v.Contiguous())
	require.EqualValues(t, 3, v.Start())
	require.EqualValues(t, 6, v.Endex())
	require.EqualValues(t, 3, v.Len())

	data, err := v.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("BCD"), data)

	b, err := v.At(1)
	require.NoError(t, err)
	require.Equal(t, byte('C'), b)

	_, err = v.At(3)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestViewZeroCopyAliasesBlockStorage(t *testing.T) {
	m := newMem(t, blk(0, "ABCD"))
	v, err := m.View(1, 3)
	require.NoError(t, err)

	data, err := v.Bytes()
	require.NoError(t, err)
	data[0] = 'z' // writes through to the block
	requireBlocks(t, m, blk(0, "AzCD"))
}

func TestViewOverGapFails(t *testing.T) {
	m := newMem(t, blk(0, "AA"), blk(4, "BB"))
	_, err := m.View(0, 6)
	require.ErrorIs(t, err, ErrNotContiguous)
	_, err = m.View(1, 5)
	require.ErrorIs(t, err, ErrNotContiguous)
}

func TestViewEmptyRange(t *testing.T) {
	m := newMem(t, blk(0, "AA"))
	v, err := m.View(5, 3)
	require.NoError(t, err)
	require.True(t, v.Owned())
	require.EqualValues(t, 0, v.Len())
}

func TestViewGoesStaleOnMutation(t *testing.T) {
	m := newMem(t, blk(0, "ABCD"))
	v, err := m.View(0, 4)
	require.NoError(t, err)

	require.NoError(t, m.Poke(0, 'z'))

	_, err = v.Bytes()
	require.ErrorIs(t, err, ErrStaleView)
	_, err = v.At(0)
	require.ErrorIs(t, err, ErrStaleView)

	// A fresh view over the mutated engine works again.
	v2, err := m.View(0, 4)
	require.NoError(t, err)
	data, err := v2.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("zBCD"), data)
}

func TestViewFillMaterializes(t *testing.T) {
	m := newMem(t, blk(0, "AA"), blk(4, "BB"))
	v, err := m.ViewFill(0, 6, '-')
	require.NoError(t, err)
	require.True(t, v.Owned())

	data, err := v.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("AA--BB"), data)

	// Owned views survive engine mutation.
	require.NoError(t, m.Poke(0, 'z'))
	data, err = v.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte("AA--BB"), data)
}

func TestViewToReadonly(t *testing.T) {
	m := newMem(t, blk(0, "ABCD"))
	v, err := m.View(0, 4)
	require.NoError(t, err)
	require.False(t, v.Readonly())

	require.True(t, v.ToReadonly().Readonly())
}

func TestViewRelease(t *testing.T) {
	m := newMem(t, blk(0, "ABCD"))
	v, err := m.View(0, 4)
	require.NoError(t, err)

	v.Release()
	_, err = v.Bytes()
	require.ErrorIs(t, err, ErrViewReleased)

	v.Release() // releasing twice is a no-op
	_, err = v.At(0)
	require.ErrorIs(t, err, ErrViewReleased)
}
