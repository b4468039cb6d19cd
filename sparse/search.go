package sparse

import (
	"bytes"
	"fmt"
)

// Content search. Patterns are matched against occupied bytes only and never
// across a gap: a match must lie entirely within one block. All variants
// honor an optional [start, endex) clamp, with Open edges resolving to the
// addressed window.

// Find returns the address of the first occurrence of pattern within
// [start, endex), scanning forward, or -1 when there is no match. An empty
// pattern matches at the resolved start.
func (m *Memory) Find(pattern []byte, start, endex int64) int64 {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return -1
	}
	if len(pattern) == 0 {
		return start
	}
	for _, b := range m.blocks {
		s, e := clampSpan(b.Start, b.Endex(), start, endex)
		if s >= e {
			continue
		}
		if i := bytes.Index(b.Data[s-b.Start:e-b.Start], pattern); i >= 0 {
			return s + int64(i)
		}
	}
	return -1
}

// RFind returns the address of the last occurrence of pattern within
// [start, endex), scanning backward, or -1 when there is no match. An empty
// pattern matches at the resolved endex.
func (m *Memory) RFind(pattern []byte, start, endex int64) int64 {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return -1
	}
	if len(pattern) == 0 {
		return endex
	}
	for bi := len(m.blocks) - 1; bi >= 0; bi-- {
		b := m.blocks[bi]
		s, e := clampSpan(b.Start, b.Endex(), start, endex)
		if s >= e {
			continue
		}
		if i := bytes.LastIndex(b.Data[s-b.Start:e-b.Start], pattern); i >= 0 {
			return s + int64(i)
		}
	}
	return -1
}

// Index is Find that fails with ErrNotFound instead of returning -1.
func (m *Memory) Index(pattern []byte, start, endex int64) (int64, error) {
	if addr := m.Find(pattern, start, endex); addr >= 0 {
		return addr, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, pattern)
}

// RIndex is RFind that fails with ErrNotFound instead of returning -1.
func (m *Memory) RIndex(pattern []byte, start, endex int64) (int64, error) {
	if addr := m.RFind(pattern, start, endex); addr >= 0 {
		return addr, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, pattern)
}

// OFind is the gap-tolerant probing variant of Find: it reports the match
// address and whether one exists, never failing.
func (m *Memory) OFind(pattern []byte, start, endex int64) (int64, bool) {
	addr := m.Find(pattern, start, endex)
	return addr, addr >= 0
}

// ROFind is the gap-tolerant probing variant of RFind.
func (m *Memory) ROFind(pattern []byte, start, endex int64) (int64, bool) {
	addr := m.RFind(pattern, start, endex)
	return addr, addr >= 0
}

// Contains reports whether pattern occurs anywhere in the content.
func (m *Memory) Contains(pattern []byte) bool {
	return m.Find(pattern, Open, Open) >= 0
}

// Count returns the number of non-overlapping occurrences of pattern within
// [start, endex). An empty pattern counts zero.
func (m *Memory) Count(pattern []byte, start, endex int64) int64 {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil || len(pattern) == 0 {
		return 0
	}
	var count int64
	for _, b := range m.blocks {
		s, e := clampSpan(b.Start, b.Endex(), start, endex)
		if s >= e {
			continue
		}
		window := b.Data[s-b.Start : e-b.Start]
		for {
			i := bytes.Index(window, pattern)
			if i < 0 {
				break
			}
			count++
			window = window[i+len(pattern):]
		}
	}
	return count
}

// BlockSpan returns the extent of whichever block or gap contains addr.
// Inside a block it returns the block's span, the byte at addr, and ok =
// true. In a gap it returns the gap's extent with Open marking an unbounded
// side, and ok = false.
func (m *Memory) BlockSpan(addr int64) (start, endex int64, value byte, ok bool) {
	i, inside := m.locate(addr)
	if inside {
		b := m.blocks[i]
		return b.Start, b.Endex(), b.Data[addr-b.Start], true
	}
	return m.gapExtent(i)
}

// EqualSpan returns the maximal range around addr holding a constant byte
// value, with the value and ok = true. In a gap it behaves like BlockSpan.
func (m *Memory) EqualSpan(addr int64) (start, endex int64, value byte, ok bool) {
	i, inside := m.locate(addr)
	if !inside {
		return m.gapExtent(i)
	}
	b := m.blocks[i]
	pos := addr - b.Start
	value = b.Data[pos]
	lo := pos
	for lo > 0 && b.Data[lo-1] == value {
		lo--
	}
	hi := pos + 1
	for hi < int64(len(b.Data)) && b.Data[hi] == value {
		hi++
	}
	return b.Start + lo, b.Start + hi, value, true
}

// gapExtent describes the gap before block index i. Unbounded sides are Open.
func (m *Memory) gapExtent(i int) (start, endex int64, value byte, ok bool) {
	start, endex = Open, Open
	if i > 0 {
		start = m.blocks[i-1].Endex()
	}
	if i < len(m.blocks) {
		endex = m.blocks[i].Start
	}
	return start, endex, 0, false
}

// clampSpan intersects [bs, be) with [start, endex).
func clampSpan(bs, be, start, endex int64) (int64, int64) {
	if bs < start {
		bs = start
	}
	if be > endex {
		be = endex
	}
	return bs, be
}
