package sparse

import "errors"

var (
	// ErrOutOfBounds indicates an address or range outside the configured trim
	// bounds, or a read of a gap where the operation requires occupied content.
	ErrOutOfBounds = errors.New("sparse: address out of bounds")

	// ErrOverflow indicates address arithmetic that would exceed the
	// representable int64 range.
	ErrOverflow = errors.New("sparse: address arithmetic overflow")

	// ErrInvalidRange indicates a caller-supplied address or range that cannot
	// be normalized (e.g. a negative address that is not the Open marker).
	ErrInvalidRange = errors.New("sparse: invalid range")

	// ErrRestoreMismatch indicates an undo token applied against an engine
	// state it was not captured from.
	ErrRestoreMismatch = errors.New("sparse: restore token does not match engine state")

	// ErrNotFound indicates a content search that matched nothing, for the
	// Index/RIndex/Remove variants that fail instead of returning a sentinel.
	ErrNotFound = errors.New("sparse: pattern not found")

	// ErrNotContiguous indicates an export or view over a range that contains
	// a gap, where the operation requires fully occupied content.
	ErrNotContiguous = errors.New("sparse: non-contiguous data within range")

	// ErrStaleView indicates access through a borrowed view after the engine
	// was mutated.
	ErrStaleView = errors.New("sparse: view invalidated by mutation")

	// ErrViewReleased indicates access through a view after Release.
	ErrViewReleased = errors.New("sparse: view released")
)
