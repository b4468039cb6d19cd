package sparse

import (
	"fmt"

	"github.com/joshuapare/sparsekit/internal/buf"
)

// Public mutators. Every mutator either fully succeeds (and the block list
// invariants hold) or fails leaving the prior state untouched. Range
// arguments follow the half-open [start, endex) convention; endex < start is
// treated as the empty range. Each successful call bumps the generation
// counter, invalidating borrowed views.

// Write overwrites [offset, offset+len(data)) with data. Gaps within the
// range are filled by the new data; overlapping and newly adjacent blocks
// are merged. The portion of the range outside the trim window is clipped.
func (m *Memory) Write(offset int64, data []byte) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	endex, ok := buf.AddOverflowSafe(offset, int64(len(data)))
	if !ok {
		return fmt.Errorf("%w: write at %d of %d bytes", ErrOverflow, offset, len(data))
	}
	start, endex := m.clampToTrim(offset, endex)
	if start < endex {
		m.writeRaw(start, data[start-offset:endex-offset])
	}
	m.bump()
	return nil
}

// Fill forces [start, endex) to be fully occupied, repeating pattern bytewise
// from the start of the range. Open edges resolve to the addressed window.
func (m *Memory) Fill(start, endex int64, pattern []byte) error {
	if len(pattern) == 0 {
		return fmt.Errorf("%w: empty fill pattern", ErrInvalidRange)
	}
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return err
	}
	start, endex = m.clampToTrim(start, endex)
	if start < endex {
		m.writeRaw(start, repeatPattern(pattern, endex-start))
	}
	m.bump()
	return nil
}

// Flood fills only the gaps within [start, endex), leaving existing content
// untouched. The pattern is repeated relative to the start of the range, so
// flooded bytes line up regardless of where the gaps fall.
func (m *Memory) Flood(start, endex int64, pattern []byte) error {
	if len(pattern) == 0 {
		return fmt.Errorf("%w: empty flood pattern", ErrInvalidRange)
	}
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return err
	}
	start, endex = m.clampToTrim(start, endex)

	// Snapshot the gaps first: writing mutates the block list.
	gaps := m.gapsIn(start, endex)
	plen := int64(len(pattern))
	for _, g := range gaps {
		data := make([]byte, g.Endex-g.Start)
		for i := range data {
			data[i] = pattern[(g.Start-start+int64(i))%plen]
		}
		m.writeRaw(g.Start, data)
	}
	m.bump()
	return nil
}

// Insert shifts all content at or after offset forward by len(data), then
// writes data at offset. With a trim endex set, content pushed past it is
// dropped.
func (m *Memory) Insert(offset int64, data []byte) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	size := int64(len(data))
	if size == 0 {
		m.bump()
		return nil
	}
	if err := m.checkGrow(offset, size); err != nil {
		return err
	}
	m.reserveRaw(offset, size)
	start, endex := m.clampToTrim(offset, offset+size)
	if start < endex {
		m.writeRaw(start, data[start-offset:endex-offset])
	}
	m.bump()
	return nil
}

// InsertMemory shifts all content at or after offset forward by other's span
// length, then writes other's blocks into the opened range, preserving
// other's gaps as gaps. With a trim endex set, content pushed past it is
// dropped.
func (m *Memory) InsertMemory(offset int64, other *Memory) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	ostart, oendex := other.Span()
	size := oendex - ostart
	if size == 0 {
		m.bump()
		return nil
	}
	if err := m.checkGrow(offset, size); err != nil {
		return err
	}
	m.reserveRaw(offset, size)
	for _, b := range other.blocks {
		bs := offset + (b.Start - ostart)
		start, endex := m.clampToTrim(bs, bs+int64(len(b.Data)))
		if start < endex {
			m.writeRaw(start, b.Data[start-bs:endex-bs])
		}
	}
	m.bump()
	return nil
}

// Delete removes content in [start, endex) and shifts all subsequent content
// backward by the range size, closing the gap.
func (m *Memory) Delete(start, endex int64) error {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return err
	}
	start, endex = m.clampToTrim(start, endex)
	if start < endex {
		m.clearRaw(start, endex)
		m.shiftAtRaw(endex, start-endex)
	}
	m.bump()
	return nil
}

// Clear removes content in [start, endex) without shifting anything, leaving
// a gap in place.
func (m *Memory) Clear(start, endex int64) error {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return err
	}
	start, endex = m.clampToTrim(start, endex)
	m.clearRaw(start, endex)
	m.bump()
	return nil
}

// Crop clips the content to [start, endex), discarding or trimming blocks
// outside the range without shifting what remains. Applying the same crop
// twice is equivalent to applying it once.
func (m *Memory) Crop(start, endex int64) error {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return err
	}
	m.cropRaw(start, endex)
	m.bump()
	return nil
}

// Shift translates every block by delta, preserving the relative layout.
// Content shifted below the trim start or past the trim endex is dropped.
// Without a trim start, a shift that would move content below address zero
// fails with ErrOverflow.
func (m *Memory) Shift(delta int64) error {
	if len(m.blocks) == 0 || delta == 0 {
		m.bump()
		return nil
	}
	contentStart := m.blocks[0].Start
	contentEndex := m.blocks[len(m.blocks)-1].Endex()

	if delta < 0 {
		floor := int64(0)
		if m.hasTrimStart {
			floor = m.trimStart
		}
		if contentStart+delta < floor {
			if !m.hasTrimStart {
				return fmt.Errorf("%w: shift by %d moves content below zero", ErrOverflow, delta)
			}
			// Drop the head that would land below the trim start.
			m.clearRaw(contentStart, floor-delta)
		}
	} else {
		if _, ok := buf.AddOverflowSafe(contentEndex, delta); !ok {
			return fmt.Errorf("%w: shift by %d past max address", ErrOverflow, delta)
		}
		if m.hasTrimEndex && contentEndex+delta > m.trimEndex {
			// Drop the tail that would land past the trim endex.
			m.clearRaw(m.trimEndex-delta, contentEndex)
		}
	}
	if len(m.blocks) > 0 {
		m.shiftAtRaw(m.blocks[0].Start, delta)
	}
	m.bump()
	return nil
}

// Reserve inserts size gap bytes at offset: content at or after offset
// shifts forward by size, but nothing is written. With a trim endex set,
// content pushed past it is dropped.
func (m *Memory) Reserve(offset, size int64) error {
	if offset < 0 || size < 0 {
		return fmt.Errorf("%w: reserve offset %d size %d", ErrInvalidRange, offset, size)
	}
	if size == 0 {
		m.bump()
		return nil
	}
	if err := m.checkGrow(offset, size); err != nil {
		return err
	}
	m.reserveRaw(offset, size)
	m.bump()
	return nil
}

// Extend writes data starting at the content endex (append semantics).
func (m *Memory) Extend(data []byte) error {
	return m.Write(m.ContentEndex(), data)
}

// Append writes a single byte at the content endex.
func (m *Memory) Append(value byte) error {
	return m.Write(m.ContentEndex(), []byte{value})
}

// WriteMemory writes every block of other, shifted forward by offset, into
// m. With clear set, the target span covered by other's content span is
// cleared first, so other's gaps become gaps in m; otherwise other's gaps
// leave m's existing content in place.
func (m *Memory) WriteMemory(offset int64, other *Memory, clear bool) error {
	if offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	if len(other.blocks) > 0 {
		last := other.blocks[len(other.blocks)-1]
		if _, ok := buf.AddOverflowSafe(last.Endex(), offset); !ok {
			return fmt.Errorf("%w: write of memory spanning to %d at offset %d",
				ErrOverflow, last.Endex(), offset)
		}
	}
	if clear && len(other.blocks) > 0 {
		cs, ce := m.clampToTrim(other.ContentStart()+offset, other.ContentEndex()+offset)
		m.clearRaw(cs, ce)
	}
	for _, b := range other.blocks {
		bs := b.Start + offset
		start, endex := m.clampToTrim(bs, bs+int64(len(b.Data)))
		if start < endex {
			m.writeRaw(start, b.Data[start-bs:endex-bs])
		}
	}
	m.bump()
	return nil
}

// Update overlays other's blocks onto m at their own addresses, mapping
// semantics: offsets are keys, bytes are values, and other wins on conflict.
func (m *Memory) Update(other *Memory) error {
	return m.WriteMemory(0, other, false)
}

// Bound configures the trim window. Open clears the corresponding bound.
// When both bounds are set with endex < start, endex is raised to start.
// Content outside the new window is cropped.
func (m *Memory) Bound(start, endex int64) error {
	if start < 0 && start != Open {
		return fmt.Errorf("%w: negative trim start %d", ErrInvalidRange, start)
	}
	if endex < 0 && endex != Open {
		return fmt.Errorf("%w: negative trim endex %d", ErrInvalidRange, endex)
	}
	if start != Open && endex != Open && endex < start {
		endex = start
	}

	m.hasTrimStart = start != Open
	if m.hasTrimStart {
		m.trimStart = start
	} else {
		m.trimStart = 0
	}
	m.hasTrimEndex = endex != Open
	if m.hasTrimEndex {
		m.trimEndex = endex
	} else {
		m.trimEndex = 0
	}

	if len(m.blocks) > 0 {
		if m.hasTrimStart {
			m.clearRaw(m.blocks[0].Start, m.trimStart)
		}
		if m.hasTrimEndex && len(m.blocks) > 0 {
			m.clearRaw(m.trimEndex, m.blocks[len(m.blocks)-1].Endex())
		}
	}
	m.bump()
	return nil
}

// reserveRaw opens a size-byte hole at offset: split, shift right, then drop
// whatever the shift pushed past the trim endex.
func (m *Memory) reserveRaw(offset, size int64) {
	m.splitAt(offset)
	m.shiftAtRaw(offset, size)
	if m.hasTrimEndex && len(m.blocks) > 0 {
		m.clearRaw(m.trimEndex, m.blocks[len(m.blocks)-1].Endex())
	}
}

// checkGrow verifies that shifting content at or after offset forward by
// size stays within the representable address range. With a trim endex set
// the overflow cannot happen: the shifted tail is cropped instead.
func (m *Memory) checkGrow(offset, size int64) error {
	if _, ok := buf.AddOverflowSafe(offset, size); !ok {
		return fmt.Errorf("%w: growing by %d at %d past max address", ErrOverflow, size, offset)
	}
	if m.hasTrimEndex || len(m.blocks) == 0 {
		return nil
	}
	contentEndex := m.blocks[len(m.blocks)-1].Endex()
	if contentEndex < offset {
		contentEndex = offset
	}
	if _, ok := buf.AddOverflowSafe(contentEndex, size); !ok {
		return fmt.Errorf("%w: growing by %d at %d past max address", ErrOverflow, size, offset)
	}
	return nil
}

// repeatPattern builds a size-byte slice repeating pattern from index zero.
func repeatPattern(pattern []byte, size int64) []byte {
	data := make([]byte, size)
	for n := int64(0); n < size; {
		n += int64(copy(data[n:], pattern))
	}
	return data
}
