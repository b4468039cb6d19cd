package sparse

import "fmt"

// Mapping-style access: addresses are keys, bytes are values. Absent keys are
// gaps. These mirror the usual map surface (get, pop, setdefault, update)
// over the sparse address space.

// checkWindow validates a single address against the trim window.
func (m *Memory) checkWindow(addr int64) error {
	if addr < 0 {
		return fmt.Errorf("%w: negative address %d", ErrInvalidRange, addr)
	}
	if m.hasTrimStart && addr < m.trimStart {
		return fmt.Errorf("%w: address %d before trim start %d", ErrOutOfBounds, addr, m.trimStart)
	}
	if m.hasTrimEndex && addr >= m.trimEndex {
		return fmt.Errorf("%w: address %d at or past trim endex %d", ErrOutOfBounds, addr, m.trimEndex)
	}
	return nil
}

// Peek returns the byte at addr and whether the address is occupied. It
// never fails: gaps and out-of-window addresses report ok = false.
func (m *Memory) Peek(addr int64) (byte, bool) {
	if addr < 0 {
		return 0, false
	}
	i, inside := m.locate(addr)
	if !inside {
		return 0, false
	}
	return m.blocks[i].Data[addr-m.blocks[i].Start], true
}

// Get returns the byte at addr, failing with ErrOutOfBounds when the address
// lies outside the trim window or in a gap.
func (m *Memory) Get(addr int64) (byte, error) {
	if err := m.checkWindow(addr); err != nil {
		return 0, err
	}
	v, ok := m.Peek(addr)
	if !ok {
		return 0, fmt.Errorf("%w: address %d is a gap", ErrOutOfBounds, addr)
	}
	return v, nil
}

// GetDefault returns the byte at addr, or def when the address is a gap
// within the trim window. Addresses outside the window still fail.
func (m *Memory) GetDefault(addr int64, def byte) (byte, error) {
	if err := m.checkWindow(addr); err != nil {
		return 0, err
	}
	if v, ok := m.Peek(addr); ok {
		return v, nil
	}
	return def, nil
}

// Poke sets the single byte at addr, merging with neighboring blocks.
func (m *Memory) Poke(addr int64, value byte) error {
	if err := m.checkWindow(addr); err != nil {
		return err
	}
	m.writeRaw(addr, []byte{value})
	m.bump()
	return nil
}

// Pop removes the byte at addr, shifting subsequent content backward by one.
// It returns the removed value and whether the address was occupied: popping
// a gap still closes it by one position.
func (m *Memory) Pop(addr int64) (byte, bool, error) {
	if err := m.checkWindow(addr); err != nil {
		return 0, false, err
	}
	v, ok := m.Peek(addr)
	m.clearRaw(addr, addr+1)
	m.shiftAtRaw(addr+1, -1)
	m.bump()
	return v, ok, nil
}

// PopItem removes and returns the highest-addressed byte without shifting.
// It fails with ErrOutOfBounds when the memory is empty.
func (m *Memory) PopItem() (int64, byte, error) {
	if len(m.blocks) == 0 {
		return 0, 0, fmt.Errorf("%w: pop from empty memory", ErrOutOfBounds)
	}
	last := &m.blocks[len(m.blocks)-1]
	addr := last.Endex() - 1
	value := last.Data[len(last.Data)-1]
	if len(last.Data) == 1 {
		m.blocks = m.blocks[:len(m.blocks)-1]
	} else {
		last.Data = last.Data[:len(last.Data)-1]
	}
	m.bump()
	return addr, value, nil
}

// SetDefault returns the byte at addr when occupied; otherwise it writes def
// there and returns it.
func (m *Memory) SetDefault(addr int64, def byte) (byte, error) {
	if err := m.checkWindow(addr); err != nil {
		return 0, err
	}
	if v, ok := m.Peek(addr); ok {
		// The content is unchanged, but the call still counts as a
		// mutation so backup tokens restore in sequence.
		m.bump()
		return v, nil
	}
	m.writeRaw(addr, []byte{def})
	m.bump()
	return def, nil
}

// Remove deletes the first occurrence of pattern, shifting subsequent
// content backward. It fails with ErrNotFound when the pattern is absent.
func (m *Memory) Remove(pattern []byte) error {
	addr := m.Find(pattern, Open, Open)
	if addr < 0 {
		return fmt.Errorf("%w: remove %q", ErrNotFound, pattern)
	}
	return m.Delete(addr, addr+int64(len(pattern)))
}
