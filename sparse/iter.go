package sparse

import "sort"

// Span is a half-open address range [Start, Endex).
type Span struct {
	Start int64
	Endex int64
}

// Size returns Endex - Start.
func (s Span) Size() int64 {
	return s.Endex - s.Start
}

// SpanIter lazily walks the occupied runs or the gaps of a memory within a
// bounded range. It is restartable via Reset. The union of the gap and
// interval sequences over the same range covers it exactly, with no overlap.
//
// The iterator reads the live block list: mutating the memory while
// iterating is undefined, matching the engine's single-owner contract.
type SpanIter struct {
	m      *Memory
	start  int64
	endex  int64
	gaps   bool
	idx    int
	cursor int64
}

// Next returns the next span and whether one was produced.
func (it *SpanIter) Next() (Span, bool) {
	if it.gaps {
		return it.nextGap()
	}
	return it.nextInterval()
}

// Reset restarts the iteration from the beginning of the range.
func (it *SpanIter) Reset() {
	blocks := it.m.blocks
	it.idx = sort.Search(len(blocks), func(i int) bool {
		return blocks[i].Endex() > it.start
	})
	it.cursor = it.start
}

func (it *SpanIter) nextInterval() (Span, bool) {
	blocks := it.m.blocks
	for it.idx < len(blocks) {
		b := blocks[it.idx]
		s, e := clampSpan(b.Start, b.Endex(), it.start, it.endex)
		it.idx++
		if s < e {
			return Span{Start: s, Endex: e}, true
		}
		if b.Start >= it.endex {
			break
		}
	}
	return Span{}, false
}

func (it *SpanIter) nextGap() (Span, bool) {
	blocks := it.m.blocks
	for it.cursor < it.endex {
		if it.idx >= len(blocks) {
			g := Span{Start: it.cursor, Endex: it.endex}
			it.cursor = it.endex
			return g, true
		}
		b := blocks[it.idx]
		gapEnd := b.Start
		if gapEnd > it.endex {
			gapEnd = it.endex
		}
		if it.cursor < gapEnd {
			g := Span{Start: it.cursor, Endex: gapEnd}
			it.cursor = b.Endex()
			it.idx++
			return g, true
		}
		if b.Endex() > it.cursor {
			it.cursor = b.Endex()
		}
		it.idx++
	}
	return Span{}, false
}

// Gaps returns a lazy iterator over the unallocated sub-ranges within
// [start, endex). Open edges resolve to the addressed window.
func (m *Memory) Gaps(start, endex int64) (*SpanIter, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return nil, err
	}
	it := &SpanIter{m: m, start: start, endex: endex, gaps: true}
	it.Reset()
	return it, nil
}

// Intervals returns a lazy iterator over the occupied runs within
// [start, endex), clamped to the range. Open edges resolve to the addressed
// window.
func (m *Memory) Intervals(start, endex int64) (*SpanIter, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return nil, err
	}
	it := &SpanIter{m: m, start: start, endex: endex}
	it.Reset()
	return it, nil
}

// Item is one addressed byte produced by a ValueIter. Occupied is false at
// gap positions, which carry no value.
type Item struct {
	Addr     int64
	Value    byte
	Occupied bool
}

// ValueIter lazily walks every address of a bounded range, one byte per
// step. Like SpanIter it is restartable and reads the live block list.
type ValueIter struct {
	m     *Memory
	start int64
	endex int64
	idx   int
	addr  int64
}

// Values returns a lazy per-address iterator over [start, endex). Open edges
// resolve to the addressed window.
func (m *Memory) Values(start, endex int64) (*ValueIter, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return nil, err
	}
	it := &ValueIter{m: m, start: start, endex: endex}
	it.Reset()
	return it, nil
}

// Reset restarts the iteration from the beginning of the range.
func (it *ValueIter) Reset() {
	blocks := it.m.blocks
	it.idx = sort.Search(len(blocks), func(i int) bool {
		return blocks[i].Endex() > it.start
	})
	it.addr = it.start
}

// Next returns the next item and whether one was produced.
func (it *ValueIter) Next() (Item, bool) {
	if it.addr >= it.endex {
		return Item{}, false
	}
	item := Item{Addr: it.addr}
	blocks := it.m.blocks
	for it.idx < len(blocks) && blocks[it.idx].Endex() <= it.addr {
		it.idx++
	}
	if it.idx < len(blocks) && blocks[it.idx].Start <= it.addr {
		b := blocks[it.idx]
		item.Value = b.Data[it.addr-b.Start]
		item.Occupied = true
	}
	it.addr++
	return item, true
}

// gapsIn collects the gaps within [start, endex) into a slice. Mutators use
// it to snapshot gap structure before rewriting the block list.
func (m *Memory) gapsIn(start, endex int64) []Span {
	it := &SpanIter{m: m, start: start, endex: endex, gaps: true}
	it.Reset()
	var out []Span
	for {
		g, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, g)
	}
}
