package sparse

import (
	"fmt"

	"github.com/joshuapare/sparsekit/internal/buf"
)

// Backup/restore subsystem. Every mutator has a pure XxxBackup companion
// that captures the minimal state needed to reverse one call, without
// performing the mutation. Restore applies the reverse effect.
//
// Tokens are caller-owned; the engine keeps no history. A token is valid
// only against the exact state produced by the single call it guards:
// callers building undo stacks must restore in strict reverse order of the
// corresponding backups (LIFO). Sequencing is enforced with the engine's
// generation counter, so a token applied out of order fails with
// ErrRestoreMismatch instead of corrupting content.
//
// Cost is O(affected range), never O(content size): tokens hold extracted
// copies of the touched blocks only, with gap structure preserved.

type tokenKind uint8

const (
	tokenWrite   tokenKind = iota + 1 // range overwritten in place
	tokenInsert                       // content shifted right by delta at start
	tokenDelete                       // range removed, tail shifted left
	tokenShift                        // whole content translated by delta
	tokenCrop                         // content outside a range dropped
	tokenBounds                       // trim window changed
	tokenByte                         // single byte set
	tokenPop                          // single byte removed, tail shifted left
	tokenPopItem                      // last byte removed, no shift
)

// Token is the opaque undo record for exactly one mutating call.
type Token struct {
	kind  tokenKind
	gen   uint64
	start int64   // affected range start (meaning varies by kind)
	endex int64   // affected range endex
	delta int64   // shift amount / inserted size
	saved *Memory // prior content of the affected range(s), gaps preserved

	addr     int64 // single-byte kinds
	value    byte
	hadValue bool

	trimStart    int64 // tokenBounds: prior trim window
	trimEndex    int64
	hadTrimStart bool
	hadTrimEndex bool
}

// rangeToken captures the prior content of [start, endex) for mutations that
// rewrite a range in place.
func (m *Memory) rangeToken(start, endex int64) (Token, error) {
	saved, err := m.Extract(start, endex)
	if err != nil {
		return Token{}, err
	}
	return Token{kind: tokenWrite, gen: m.generation, start: start, endex: endex, saved: saved}, nil
}

// WriteBackup captures the state Write(offset, data) would destroy.
func (m *Memory) WriteBackup(offset int64, data []byte) (Token, error) {
	if offset < 0 {
		return Token{}, fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	endex, ok := buf.AddOverflowSafe(offset, int64(len(data)))
	if !ok {
		return Token{}, fmt.Errorf("%w: write at %d of %d bytes", ErrOverflow, offset, len(data))
	}
	start, endex := m.clampToTrim(offset, endex)
	return m.rangeToken(start, endex)
}

// FillBackup captures the state Fill(start, endex, pattern) would destroy.
func (m *Memory) FillBackup(start, endex int64) (Token, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return Token{}, err
	}
	start, endex = m.clampToTrim(start, endex)
	return m.rangeToken(start, endex)
}

// FloodBackup captures the state Flood(start, endex, pattern) would destroy:
// restoring re-opens exactly the gaps the flood materialized.
func (m *Memory) FloodBackup(start, endex int64) (Token, error) {
	return m.FillBackup(start, endex)
}

// ClearBackup captures the content Clear(start, endex) would drop.
func (m *Memory) ClearBackup(start, endex int64) (Token, error) {
	return m.FillBackup(start, endex)
}

// WriteMemoryBackup captures the state WriteMemory(offset, other, clear)
// would destroy.
func (m *Memory) WriteMemoryBackup(offset int64, other *Memory) (Token, error) {
	if offset < 0 {
		return Token{}, fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	if other.IsEmpty() {
		return m.rangeToken(0, 0)
	}
	start, endex := m.clampToTrim(other.ContentStart()+offset, other.ContentEndex()+offset)
	return m.rangeToken(start, endex)
}

// UpdateBackup captures the state Update(other) would destroy.
func (m *Memory) UpdateBackup(other *Memory) (Token, error) {
	return m.WriteMemoryBackup(0, other)
}

// ExtendBackup captures the state Extend(data) would destroy.
func (m *Memory) ExtendBackup(data []byte) (Token, error) {
	return m.WriteBackup(m.ContentEndex(), data)
}

// AppendBackup captures the state Append(value) would destroy.
func (m *Memory) AppendBackup() (Token, error) {
	return m.WriteBackup(m.ContentEndex(), []byte{0})
}

// InsertBackup captures the state Insert(offset, data) would destroy. Besides
// the insertion extent it saves the tail a bounded engine would push past
// the trim endex.
func (m *Memory) InsertBackup(offset int64, data []byte) (Token, error) {
	return m.ReserveBackup(offset, int64(len(data)))
}

// InsertMemoryBackup captures the state InsertMemory(offset, other) would
// destroy.
func (m *Memory) InsertMemoryBackup(offset int64, other *Memory) (Token, error) {
	ostart, oendex := other.Span()
	return m.ReserveBackup(offset, oendex-ostart)
}

// ReserveBackup captures the state Reserve(offset, size) would destroy.
func (m *Memory) ReserveBackup(offset, size int64) (Token, error) {
	if offset < 0 || size < 0 {
		return Token{}, fmt.Errorf("%w: reserve offset %d size %d", ErrInvalidRange, offset, size)
	}
	if err := m.checkGrow(offset, size); err != nil {
		return Token{}, err
	}
	saved := New()
	if m.hasTrimEndex && size > 0 {
		lo := m.trimEndex - size
		if lo < 0 {
			lo = 0
		}
		var err error
		saved, err = m.Extract(lo, m.trimEndex)
		if err != nil {
			return Token{}, err
		}
	}
	return Token{kind: tokenInsert, gen: m.generation, start: offset, delta: size, saved: saved}, nil
}

// DeleteBackup captures the content Delete(start, endex) would remove.
func (m *Memory) DeleteBackup(start, endex int64) (Token, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return Token{}, err
	}
	start, endex = m.clampToTrim(start, endex)
	saved, err := m.Extract(start, endex)
	if err != nil {
		return Token{}, err
	}
	return Token{kind: tokenDelete, gen: m.generation, start: start, endex: endex, saved: saved}, nil
}

// CropBackup captures the content Crop(start, endex) would discard.
func (m *Memory) CropBackup(start, endex int64) (Token, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return Token{}, err
	}
	saved := New()
	if len(m.blocks) > 0 {
		head, err := m.Extract(m.blocks[0].Start, start)
		if err != nil {
			return Token{}, err
		}
		tail, err := m.Extract(endex, m.blocks[len(m.blocks)-1].Endex())
		if err != nil {
			return Token{}, err
		}
		saved.blocks = append(saved.blocks, head.blocks...)
		saved.blocks = append(saved.blocks, tail.blocks...)
	}
	return Token{kind: tokenCrop, gen: m.generation, start: start, endex: endex, saved: saved}, nil
}

// ShiftBackup captures the content Shift(delta) would drop at the trim
// bounds.
func (m *Memory) ShiftBackup(delta int64) (Token, error) {
	saved := New()
	if len(m.blocks) > 0 {
		var err error
		if delta < 0 && m.hasTrimStart {
			saved, err = m.Extract(m.blocks[0].Start, m.trimStart-delta)
		} else if delta > 0 && m.hasTrimEndex {
			saved, err = m.Extract(m.trimEndex-delta, m.blocks[len(m.blocks)-1].Endex())
		}
		if err != nil {
			return Token{}, err
		}
	}
	return Token{kind: tokenShift, gen: m.generation, delta: delta, saved: saved}, nil
}

// BoundBackup captures the prior trim window and the content Bound(start,
// endex) would crop.
func (m *Memory) BoundBackup(start, endex int64) (Token, error) {
	if start < 0 && start != Open {
		return Token{}, fmt.Errorf("%w: negative trim start %d", ErrInvalidRange, start)
	}
	if endex < 0 && endex != Open {
		return Token{}, fmt.Errorf("%w: negative trim endex %d", ErrInvalidRange, endex)
	}
	if start != Open && endex != Open && endex < start {
		endex = start
	}
	saved := New()
	if len(m.blocks) > 0 {
		if start != Open {
			head, err := m.Extract(m.blocks[0].Start, start)
			if err != nil {
				return Token{}, err
			}
			saved.blocks = append(saved.blocks, head.blocks...)
		}
		if endex != Open && len(m.blocks) > 0 {
			tail, err := m.Extract(endex, m.blocks[len(m.blocks)-1].Endex())
			if err != nil {
				return Token{}, err
			}
			for _, b := range tail.blocks {
				if len(saved.blocks) == 0 || saved.blocks[len(saved.blocks)-1].Endex() <= b.Start {
					saved.blocks = append(saved.blocks, b)
				}
			}
		}
	}
	return Token{
		kind:         tokenBounds,
		gen:          m.generation,
		saved:        saved,
		trimStart:    m.trimStart,
		trimEndex:    m.trimEndex,
		hadTrimStart: m.hasTrimStart,
		hadTrimEndex: m.hasTrimEndex,
	}, nil
}

// SetTrimStartBackup captures the state SetTrimStart(start) would change.
func (m *Memory) SetTrimStartBackup(start int64) (Token, error) {
	endex := Open
	if m.hasTrimEndex {
		endex = m.trimEndex
	}
	return m.BoundBackup(start, endex)
}

// SetTrimEndexBackup captures the state SetTrimEndex(endex) would change.
func (m *Memory) SetTrimEndexBackup(endex int64) (Token, error) {
	start := Open
	if m.hasTrimStart {
		start = m.trimStart
	}
	return m.BoundBackup(start, endex)
}

// PokeBackup captures the prior byte (or gap) at addr.
func (m *Memory) PokeBackup(addr int64) (Token, error) {
	if err := m.checkWindow(addr); err != nil {
		return Token{}, err
	}
	v, ok := m.Peek(addr)
	return Token{kind: tokenByte, gen: m.generation, addr: addr, value: v, hadValue: ok}, nil
}

// SetDefaultBackup captures the prior byte (or gap) at addr.
func (m *Memory) SetDefaultBackup(addr int64) (Token, error) {
	return m.PokeBackup(addr)
}

// PopBackup captures the byte Pop(addr) would remove.
func (m *Memory) PopBackup(addr int64) (Token, error) {
	if err := m.checkWindow(addr); err != nil {
		return Token{}, err
	}
	v, ok := m.Peek(addr)
	return Token{kind: tokenPop, gen: m.generation, addr: addr, value: v, hadValue: ok}, nil
}

// PopItemBackup captures the byte PopItem would remove.
func (m *Memory) PopItemBackup() (Token, error) {
	if len(m.blocks) == 0 {
		return Token{}, fmt.Errorf("%w: pop from empty memory", ErrOutOfBounds)
	}
	last := m.blocks[len(m.blocks)-1]
	return Token{
		kind:     tokenPopItem,
		gen:      m.generation,
		addr:     last.Endex() - 1,
		value:    last.Data[len(last.Data)-1],
		hadValue: true,
	}, nil
}

// RemoveBackup captures the match Remove(pattern) would delete.
func (m *Memory) RemoveBackup(pattern []byte) (Token, error) {
	addr := m.Find(pattern, Open, Open)
	if addr < 0 {
		return Token{}, fmt.Errorf("%w: remove %q", ErrNotFound, pattern)
	}
	return m.DeleteBackup(addr, addr+int64(len(pattern)))
}

// Restore applies the reverse effect described by tok, returning the engine
// to the exact state it had before the guarded mutation ran. The engine
// generation must be exactly one past the token's capture point, otherwise
// Restore fails with ErrRestoreMismatch and changes nothing. On success the
// generation rolls back to the capture point, so LIFO token stacks compose.
func (m *Memory) Restore(tok Token) error {
	if tok.kind == 0 {
		return fmt.Errorf("%w: zero token", ErrRestoreMismatch)
	}
	if m.generation != tok.gen+1 {
		return fmt.Errorf("%w: engine at generation %d, token captured at %d",
			ErrRestoreMismatch, m.generation, tok.gen)
	}

	switch tok.kind {
	case tokenWrite:
		m.clearRaw(tok.start, tok.endex)
		m.pasteRaw(tok.saved)

	case tokenInsert:
		m.clearRaw(tok.start, tok.start+tok.delta)
		m.shiftAtRaw(tok.start+tok.delta, -tok.delta)
		m.pasteRaw(tok.saved)

	case tokenDelete:
		if tok.endex > tok.start {
			m.splitAt(tok.start)
			m.shiftAtRaw(tok.start, tok.endex-tok.start)
		}
		m.pasteRaw(tok.saved)

	case tokenShift:
		if tok.delta != 0 && len(m.blocks) > 0 {
			m.shiftAtRaw(m.blocks[0].Start, -tok.delta)
		}
		m.pasteRaw(tok.saved)

	case tokenCrop:
		m.pasteRaw(tok.saved)

	case tokenBounds:
		m.trimStart = tok.trimStart
		m.trimEndex = tok.trimEndex
		m.hasTrimStart = tok.hadTrimStart
		m.hasTrimEndex = tok.hadTrimEndex
		m.pasteRaw(tok.saved)

	case tokenByte:
		if tok.hadValue {
			m.writeRaw(tok.addr, []byte{tok.value})
		} else {
			m.clearRaw(tok.addr, tok.addr+1)
		}

	case tokenPop:
		m.splitAt(tok.addr)
		m.shiftAtRaw(tok.addr, 1)
		if tok.hadValue {
			m.writeRaw(tok.addr, []byte{tok.value})
		}

	case tokenPopItem:
		m.writeRaw(tok.addr, []byte{tok.value})

	default:
		return fmt.Errorf("%w: unknown token kind %d", ErrRestoreMismatch, tok.kind)
	}

	m.generation = tok.gen
	return nil
}

// pasteRaw writes every block of saved back at its own address.
func (m *Memory) pasteRaw(saved *Memory) {
	if saved == nil {
		return
	}
	for _, b := range saved.blocks {
		m.writeRaw(b.Start, b.Data)
	}
}
