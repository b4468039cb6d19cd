package sparse

import (
	"fmt"

	"github.com/joshuapare/sparsekit/internal/buf"
)

// View is a window onto extracted byte content, tagged with ownership and
// mutability. A borrowed view aliases one block's storage (zero-copy) and is
// stamped with the engine generation at creation: any access after the
// engine mutates fails with ErrStaleView instead of reading through a
// dangling window. An owned view holds materialized storage and never goes
// stale.
type View struct {
	mem      *Memory
	gen      uint64
	start    int64
	endex    int64
	data     []byte
	owned    bool
	readonly bool
	released bool
}

// View returns a zero-copy view over [start, endex), borrowing the storage
// of the single block covering the range. A range touching a gap fails with
// ErrNotContiguous (gaps hold no value to view); use ViewFill to materialize
// such a range instead. Open edges resolve to the addressed window.
func (m *Memory) View(start, endex int64) (*View, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return nil, err
	}
	v := &View{mem: m, gen: m.generation, start: start, endex: endex}
	if start >= endex {
		v.owned = true
		v.data = []byte{}
		return v, nil
	}
	i, inside := m.locate(start)
	if !inside || m.blocks[i].Endex() < endex {
		return nil, fmt.Errorf("%w: view [%d, %d)", ErrNotContiguous, start, endex)
	}
	b := m.blocks[i]
	v.data = b.Data[start-b.Start : endex-b.Start]
	return v, nil
}

// ViewFill returns an owned view over [start, endex) with gaps materialized
// as fill. Owned views never go stale.
func (m *Memory) ViewFill(start, endex int64, fill byte) (*View, error) {
	start, endex, err := m.resolveRange(start, endex)
	if err != nil {
		return nil, err
	}
	sub, err := m.Extract(start, endex)
	if err != nil {
		return nil, err
	}
	sub.trimStart, sub.hasTrimStart = start, true
	sub.trimEndex, sub.hasTrimEndex = endex, true
	return &View{
		mem:   m,
		gen:   m.generation,
		start: start,
		endex: endex,
		data:  sub.ToBytesFill(fill),
		owned: true,
	}, nil
}

// check validates that the view is still usable.
func (v *View) check() error {
	if v.released {
		return ErrViewReleased
	}
	if !v.owned && v.gen != v.mem.generation {
		return fmt.Errorf("%w: engine at generation %d, view stamped %d",
			ErrStaleView, v.mem.generation, v.gen)
	}
	return nil
}

// Bytes returns the viewed content. For a borrowed view the slice aliases
// block storage and must not be written through when the view is read-only;
// it also becomes invalid along with the view after any engine mutation.
func (v *View) Bytes() ([]byte, error) {
	if err := v.check(); err != nil {
		return nil, err
	}
	return v.data, nil
}

// At returns the byte at index i, relative to the view start.
func (v *View) At(i int64) (byte, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	cell, ok := buf.Slice(v.data, i, 1)
	if !ok {
		return 0, fmt.Errorf("%w: view index %d of %d", ErrOutOfBounds, i, len(v.data))
	}
	return cell[0], nil
}

// Len returns the view length in bytes.
func (v *View) Len() int64 {
	return int64(len(v.data))
}

// Start returns the absolute address of the first viewed byte.
func (v *View) Start() int64 {
	return v.start
}

// Endex returns the exclusive absolute end address of the view.
func (v *View) Endex() int64 {
	return v.endex
}

// Owned reports whether the view holds its own materialized storage rather
// than borrowing from a block.
func (v *View) Owned() bool {
	return v.owned
}

// Readonly reports whether writes through the view are forbidden.
func (v *View) Readonly() bool {
	return v.readonly
}

// Contiguous reports whether the view exposes one unbroken byte run. Views
// always do; the flag exists for buffer-protocol style introspection.
func (v *View) Contiguous() bool {
	return true
}

// ToReadonly downgrades the view to read-only without copying. The
// downgrade is permanent for this view.
func (v *View) ToReadonly() *View {
	v.readonly = true
	return v
}

// Release drops the view's hold on the underlying storage. Further access
// fails with ErrViewReleased. Releasing twice is a no-op.
func (v *View) Release() {
	v.released = true
	v.data = nil
}
