package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// blk builds a block from a string literal.
func blk(start int64, data string) Block {
	return Block{Start: start, Data: []byte(data)}
}

// newMem builds a memory from blocks, failing the test on invalid input.
func newMem(t *testing.T, blocks ...Block) *Memory {
	t.Helper()
	m, err := FromBlocks(blocks)
	require.NoError(t, err)
	return m
}

// requireBlocks asserts the exact block layout and re-checks all invariants.
func requireBlocks(t *testing.T, m *Memory, want ...Block) {
	t.Helper()
	require.NoError(t, m.Validate())
	if want == nil {
		want = []Block{}
	}
	require.Equal(t, want, m.ToBlocks())
}

// requireSameState asserts that got matches want byte for byte, including
// trim bounds.
func requireSameState(t *testing.T, want, got *Memory) {
	t.Helper()
	require.NoError(t, got.Validate())
	require.Equal(t, want.ToBlocks(), got.ToBlocks())
	ws, wok := want.TrimStart()
	gs, gok := got.TrimStart()
	require.Equal(t, wok, gok, "trim start presence")
	if wok {
		require.Equal(t, ws, gs, "trim start")
	}
	we, wok := want.TrimEndex()
	ge, gok := got.TrimEndex()
	require.Equal(t, wok, gok, "trim endex presence")
	if wok {
		require.Equal(t, we, ge, "trim endex")
	}
}
