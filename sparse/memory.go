package sparse

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/joshuapare/sparsekit/internal/buf"
)

// Open marks an unbounded trim limit or an omitted range edge. Range
// arguments given as Open resolve to the engine's Start/Endex; trim bounds
// given as Open are removed. Any other negative address is rejected with
// ErrInvalidRange.
const Open int64 = -1

// Memory is a sparse byte-addressable container: a potentially huge, mostly
// empty address space represented as a small ordered list of occupied blocks
// separated by unallocated gaps.
//
// The block list is always sorted by start address, with no two blocks
// overlapping or adjacent (adjacent blocks are merged before any mutator
// returns). Gaps hold no value: they are not zero-filled unless explicitly
// flooded.
//
// Memory is NOT thread-safe. Only one goroutine should use an instance at a
// time; independent instances share nothing and may be used concurrently.
type Memory struct {
	blocks []Block

	// Trim bounds clamp all valid addressing. Writes outside the window are
	// clipped; reads outside it fail with ErrOutOfBounds.
	trimStart    int64
	trimEndex    int64
	hasTrimStart bool
	hasTrimEndex bool

	// generation increments on every successful mutation. Borrowed views and
	// undo tokens are stamped with it to detect staleness.
	generation uint64
}

// New creates an empty memory with no trim bounds.
func New() *Memory {
	return &Memory{}
}

// FromBytes creates a memory holding a copy of data as one block at offset.
func FromBytes(data []byte, offset int64) (*Memory, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrInvalidRange, offset)
	}
	if _, ok := buf.AddOverflowSafe(offset, int64(len(data))); !ok {
		return nil, fmt.Errorf("%w: offset %d + %d bytes", ErrOverflow, offset, len(data))
	}
	m := New()
	if len(data) > 0 {
		owned := make([]byte, len(data))
		copy(owned, data)
		m.blocks = []Block{{Start: offset, Data: owned}}
	}
	return m, nil
}

// FromBlocks creates a memory from explicit (start, data) blocks. The input
// is copied, sorted, and adjacent runs are merged; overlapping blocks are
// rejected with ErrInvalidRange. Empty blocks are ignored.
func FromBlocks(blocks []Block) (*Memory, error) {
	m := New()
	for _, b := range blocks {
		if len(b.Data) == 0 {
			continue
		}
		if b.Start < 0 {
			return nil, fmt.Errorf("%w: negative block start %d", ErrInvalidRange, b.Start)
		}
		if _, ok := buf.AddOverflowSafe(b.Start, int64(len(b.Data))); !ok {
			return nil, fmt.Errorf("%w: block at %d spans past max address", ErrOverflow, b.Start)
		}
		m.blocks = append(m.blocks, b.clone())
	}
	sort.Slice(m.blocks, func(i, j int) bool { return m.blocks[i].Start < m.blocks[j].Start })
	for i := 0; i+1 < len(m.blocks); i++ {
		if m.blocks[i].Endex() > m.blocks[i+1].Start {
			return nil, fmt.Errorf("%w: blocks at %d and %d overlap",
				ErrInvalidRange, m.blocks[i].Start, m.blocks[i+1].Start)
		}
	}
	m.mergeAdjacent()
	return m, nil
}

// Copy returns a deep copy of the memory, including trim bounds. The copy
// starts with a fresh generation history.
func (m *Memory) Copy() *Memory {
	out := &Memory{
		trimStart:    m.trimStart,
		trimEndex:    m.trimEndex,
		hasTrimStart: m.hasTrimStart,
		hasTrimEndex: m.hasTrimEndex,
	}
	out.blocks = make([]Block, len(m.blocks))
	for i, b := range m.blocks {
		out.blocks[i] = b.clone()
	}
	return out
}

// Generation returns the mutation counter. It increments on every successful
// mutating call and is the stamp checked by borrowed views and undo tokens.
func (m *Memory) Generation() uint64 {
	return m.generation
}

// IsEmpty reports whether the memory holds no content.
func (m *Memory) IsEmpty() bool {
	return len(m.blocks) == 0
}

// ContentStart returns the start address of the first block. For an empty
// memory it returns the trim start when set, otherwise 0.
func (m *Memory) ContentStart() int64 {
	if len(m.blocks) > 0 {
		return m.blocks[0].Start
	}
	if m.hasTrimStart {
		return m.trimStart
	}
	return 0
}

// ContentEndex returns the exclusive end address of the last block. For an
// empty memory it equals ContentStart.
func (m *Memory) ContentEndex() int64 {
	if len(m.blocks) > 0 {
		return m.blocks[len(m.blocks)-1].Endex()
	}
	return m.ContentStart()
}

// ContentSpan returns (ContentStart, ContentEndex).
func (m *Memory) ContentSpan() (int64, int64) {
	return m.ContentStart(), m.ContentEndex()
}

// ContentSize returns the total number of occupied bytes, gaps excluded.
func (m *Memory) ContentSize() int64 {
	var size int64
	for _, b := range m.blocks {
		size += int64(len(b.Data))
	}
	return size
}

// ContentParts returns the number of blocks.
func (m *Memory) ContentParts() int {
	return len(m.blocks)
}

// Start returns the inclusive start of the addressed window: the trim start
// when set, otherwise the content start.
func (m *Memory) Start() int64 {
	if m.hasTrimStart {
		return m.trimStart
	}
	return m.ContentStart()
}

// Endex returns the exclusive end of the addressed window: the trim endex
// when set, otherwise the content endex.
func (m *Memory) Endex() int64 {
	if m.hasTrimEndex {
		return m.trimEndex
	}
	return m.ContentEndex()
}

// Span returns (Start, Endex).
func (m *Memory) Span() (int64, int64) {
	return m.Start(), m.Endex()
}

// Len returns the length of the addressed window, Endex - Start.
func (m *Memory) Len() int64 {
	n := m.Endex() - m.Start()
	if n < 0 {
		return 0
	}
	return n
}

// Contiguous reports whether the addressed window is fully occupied by a
// single block. An empty window is contiguous.
func (m *Memory) Contiguous() bool {
	start, endex := m.Span()
	if start >= endex {
		return true
	}
	if len(m.blocks) != 1 {
		return false
	}
	return m.blocks[0].Start <= start && endex <= m.blocks[0].Endex()
}

// TrimStart returns the inclusive trim lower bound, if set.
func (m *Memory) TrimStart() (int64, bool) {
	return m.trimStart, m.hasTrimStart
}

// TrimEndex returns the exclusive trim upper bound, if set.
func (m *Memory) TrimEndex() (int64, bool) {
	return m.trimEndex, m.hasTrimEndex
}

// SetTrimStart sets or clears (with Open) the trim lower bound, cropping
// content that falls below it.
func (m *Memory) SetTrimStart(start int64) error {
	endex := Open
	if m.hasTrimEndex {
		endex = m.trimEndex
	}
	return m.Bound(start, endex)
}

// SetTrimEndex sets or clears (with Open) the trim upper bound, cropping
// content that falls at or beyond it.
func (m *Memory) SetTrimEndex(endex int64) error {
	start := Open
	if m.hasTrimStart {
		start = m.trimStart
	}
	return m.Bound(start, endex)
}

// Equal reports whether both memories hold identical content: the same
// blocks at the same addresses. Trim bounds are not compared.
func (m *Memory) Equal(other *Memory) bool {
	if len(m.blocks) != len(other.blocks) {
		return false
	}
	for i, b := range m.blocks {
		o := other.blocks[i]
		if b.Start != o.Start || !bytes.Equal(b.Data, o.Data) {
			return false
		}
	}
	return true
}

// ToBlocks exports the block list as deep copies.
func (m *Memory) ToBlocks() []Block {
	out := make([]Block, len(m.blocks))
	for i, b := range m.blocks {
		out[i] = b.clone()
	}
	return out
}

// ToBytes exports the addressed window as a flat byte slice. It fails with
// ErrNotContiguous when the window contains a gap; gaps hold no value and
// must be resolved (see ToBytesFill or Flood) before a lossless flat export.
func (m *Memory) ToBytes() ([]byte, error) {
	start, endex := m.Span()
	if start >= endex {
		return []byte{}, nil
	}
	if !m.Contiguous() {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrNotContiguous, start, endex)
	}
	b := m.blocks[0]
	out := make([]byte, endex-start)
	copy(out, b.Data[start-b.Start:endex-b.Start])
	return out, nil
}

// ToBytesFill exports the addressed window as a flat byte slice, writing
// fill into every gap.
func (m *Memory) ToBytesFill(fill byte) []byte {
	start, endex := m.Span()
	if start >= endex {
		return []byte{}
	}
	out := make([]byte, endex-start)
	for i := range out {
		out[i] = fill
	}
	for _, b := range m.blocks {
		bs, be := b.Start, b.Endex()
		if be <= start || endex <= bs {
			continue
		}
		cs, ce := bs, be
		if cs < start {
			cs = start
		}
		if ce > endex {
			ce = endex
		}
		copy(out[cs-start:ce-start], b.Data[cs-bs:ce-bs])
	}
	return out
}

// Extract returns an independent copy of the sub-range [start, endex) as a
// new unbounded memory, preserving internal gaps as gaps. Open edges resolve
// to the addressed window.
func (m *Memory) Extract(start, endex int64) (*Memory, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return nil, err
	}
	out := New()
	for _, b := range m.blocks {
		bs, be := b.Start, b.Endex()
		if be <= start || endex <= bs {
			continue
		}
		cs, ce := bs, be
		if cs < start {
			cs = start
		}
		if ce > endex {
			ce = endex
		}
		data := make([]byte, ce-cs)
		copy(data, b.Data[cs-bs:ce-bs])
		out.blocks = append(out.blocks, Block{Start: cs, Data: data})
	}
	return out, nil
}

// Validate re-checks every block list invariant: positive block lengths,
// ascending order, no overlap, no unmerged adjacency, and containment within
// the trim window. It is meant for tests and defensive assertions, not the
// hot path.
func (m *Memory) Validate() error {
	for i, b := range m.blocks {
		if len(b.Data) == 0 {
			return fmt.Errorf("sparse: validate: empty block stored at index %d (start %d)", i, b.Start)
		}
		if b.Start < 0 {
			return fmt.Errorf("sparse: validate: negative block start %d at index %d", b.Start, i)
		}
		if i > 0 {
			prev := m.blocks[i-1]
			if prev.Endex() > b.Start {
				return fmt.Errorf("sparse: validate: blocks %d and %d overlap ([%d,%d) vs [%d,%d))",
					i-1, i, prev.Start, prev.Endex(), b.Start, b.Endex())
			}
			if prev.Endex() == b.Start {
				return fmt.Errorf("sparse: validate: blocks %d and %d are adjacent and unmerged at %d",
					i-1, i, b.Start)
			}
		}
		if m.hasTrimStart && b.Start < m.trimStart {
			return fmt.Errorf("sparse: validate: block %d starts at %d before trim start %d",
				i, b.Start, m.trimStart)
		}
		if m.hasTrimEndex && b.Endex() > m.trimEndex {
			return fmt.Errorf("sparse: validate: block %d ends at %d past trim endex %d",
				i, b.Endex(), m.trimEndex)
		}
	}
	if m.hasTrimStart && m.hasTrimEndex && m.trimEndex < m.trimStart {
		return fmt.Errorf("sparse: validate: trim endex %d before trim start %d", m.trimEndex, m.trimStart)
	}
	return nil
}

// resolveRange validates start/endex range arguments. Open edges resolve to
// the addressed window; endex < start normalizes to the empty range at start.
func (m *Memory) resolveRange(start, endex int64) (int64, int64, error) {
	if start < 0 && start != Open {
		return 0, 0, fmt.Errorf("%w: negative start %d", ErrInvalidRange, start)
	}
	if endex < 0 && endex != Open {
		return 0, 0, fmt.Errorf("%w: negative endex %d", ErrInvalidRange, endex)
	}
	if start == Open {
		start = m.Start()
	}
	if endex == Open {
		endex = m.Endex()
	}
	if endex < start {
		endex = start
	}
	return start, endex, nil
}

// clampToTrim clips a resolved range to the trim window.
func (m *Memory) clampToTrim(start, endex int64) (int64, int64) {
	if m.hasTrimStart && start < m.trimStart {
		start = m.trimStart
	}
	if m.hasTrimEndex && endex > m.trimEndex {
		endex = m.trimEndex
	}
	if endex < start {
		endex = start
	}
	return start, endex
}

// bump records a completed mutation.
func (m *Memory) bump() {
	m.generation++
}
