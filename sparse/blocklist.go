package sparse

import "sort"

// Block list primitives. These operate below the public mutators: callers
// have already validated addresses and clipped to the trim window, so every
// function here only has to preserve the ordering, non-overlap, and
// non-adjacency invariants.

// locate finds the block containing addr via binary search over block starts.
// It returns (index, true) when addr falls inside block index, otherwise
// (index, false) where index is the position of the first block entirely
// after addr (the gap "before index").
func (m *Memory) locate(addr int64) (int, bool) {
	i := sort.Search(len(m.blocks), func(i int) bool {
		return m.blocks[i].Endex() > addr
	})
	if i < len(m.blocks) && m.blocks[i].Start <= addr {
		return i, true
	}
	return i, false
}

// writeRaw overwrites [start, start+len(data)) with data, merging with any
// overlapping or adjacent blocks. data must be non-empty; the slice is copied
// into block storage.
func (m *Memory) writeRaw(start int64, data []byte) {
	endex := start + int64(len(data))

	// Blocks overlapping or adjacent to [start, endex] collapse into one.
	lo := sort.Search(len(m.blocks), func(i int) bool {
		return m.blocks[i].Endex() >= start
	})
	hi := sort.Search(len(m.blocks), func(i int) bool {
		return m.blocks[i].Start > endex
	})

	if lo == hi {
		// No neighbors: insert a fresh block at lo.
		owned := make([]byte, len(data))
		copy(owned, data)
		m.blocks = append(m.blocks, Block{})
		copy(m.blocks[lo+1:], m.blocks[lo:])
		m.blocks[lo] = Block{Start: start, Data: owned}
		return
	}

	newStart := start
	if m.blocks[lo].Start < newStart {
		newStart = m.blocks[lo].Start
	}
	newEndex := endex
	if m.blocks[hi-1].Endex() > newEndex {
		newEndex = m.blocks[hi-1].Endex()
	}

	merged := make([]byte, newEndex-newStart)
	for _, b := range m.blocks[lo:hi] {
		copy(merged[b.Start-newStart:], b.Data)
	}
	copy(merged[start-newStart:], data)

	m.blocks[lo] = Block{Start: newStart, Data: merged}
	m.blocks = append(m.blocks[:lo+1], m.blocks[hi:]...)
}

// clearRaw removes content in [start, endex) without shifting anything,
// splitting or trimming boundary blocks as needed.
func (m *Memory) clearRaw(start, endex int64) {
	if start >= endex {
		return
	}
	lo := sort.Search(len(m.blocks), func(i int) bool {
		return m.blocks[i].Endex() > start
	})
	hi := sort.Search(len(m.blocks), func(i int) bool {
		return m.blocks[i].Start >= endex
	})
	if lo >= hi {
		return
	}

	var keep []Block
	first := m.blocks[lo]
	if first.Start < start {
		head := make([]byte, start-first.Start)
		copy(head, first.Data[:start-first.Start])
		keep = append(keep, Block{Start: first.Start, Data: head})
	}
	last := m.blocks[hi-1]
	if last.Endex() > endex {
		tail := make([]byte, last.Endex()-endex)
		copy(tail, last.Data[endex-last.Start:])
		keep = append(keep, Block{Start: endex, Data: tail})
	}

	out := make([]Block, 0, len(m.blocks)-(hi-lo)+len(keep))
	out = append(out, m.blocks[:lo]...)
	out = append(out, keep...)
	out = append(out, m.blocks[hi:]...)
	m.blocks = out
}

// shiftAtRaw translates every block starting at or after pivot by delta,
// then merges the seam at pivot if the move created an adjacency. delta may
// be negative only when the caller has already cleared the landing range.
func (m *Memory) shiftAtRaw(pivot, delta int64) {
	if delta == 0 {
		return
	}
	i := sort.Search(len(m.blocks), func(i int) bool {
		return m.blocks[i].Start >= pivot
	})
	for j := i; j < len(m.blocks); j++ {
		m.blocks[j].Start += delta
	}
	m.mergeAt(i)
}

// splitAt cuts the block containing addr so that addr becomes a block start.
// No-op when addr is already a boundary or falls in a gap.
func (m *Memory) splitAt(addr int64) {
	i, inside := m.locate(addr)
	if !inside || m.blocks[i].Start == addr {
		return
	}
	b := m.blocks[i]
	head := make([]byte, addr-b.Start)
	copy(head, b.Data[:addr-b.Start])
	tail := make([]byte, b.Endex()-addr)
	copy(tail, b.Data[addr-b.Start:])

	m.blocks = append(m.blocks, Block{})
	copy(m.blocks[i+1:], m.blocks[i:])
	m.blocks[i] = Block{Start: b.Start, Data: head}
	m.blocks[i+1] = Block{Start: addr, Data: tail}
}

// mergeAt joins blocks i-1 and i when they became exactly adjacent.
func (m *Memory) mergeAt(i int) {
	if i <= 0 || i >= len(m.blocks) {
		return
	}
	prev, next := m.blocks[i-1], m.blocks[i]
	if prev.Endex() != next.Start {
		return
	}
	merged := make([]byte, len(prev.Data)+len(next.Data))
	copy(merged, prev.Data)
	copy(merged[len(prev.Data):], next.Data)
	m.blocks[i-1] = Block{Start: prev.Start, Data: merged}
	m.blocks = append(m.blocks[:i], m.blocks[i+1:]...)
}

// mergeAdjacent performs a full pass merging every exact adjacency. Used by
// constructors; mutators merge locally instead.
func (m *Memory) mergeAdjacent() {
	for i := 1; i < len(m.blocks); {
		if m.blocks[i-1].Endex() == m.blocks[i].Start {
			m.mergeAt(i)
		} else {
			i++
		}
	}
}

// cropRaw drops content outside [start, endex) without shifting.
func (m *Memory) cropRaw(start, endex int64) {
	if len(m.blocks) == 0 {
		return
	}
	contentStart := m.blocks[0].Start
	contentEndex := m.blocks[len(m.blocks)-1].Endex()
	if start > contentStart {
		m.clearRaw(contentStart, start)
	}
	if endex < contentEndex {
		m.clearRaw(endex, contentEndex)
	}
}
