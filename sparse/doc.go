// Package sparse implements a sparse byte-addressable memory container: a
// potentially huge, mostly empty address space (firmware images, memory
// dumps) represented as a small ordered list of occupied blocks separated by
// unallocated gaps.
//
// # Overview
//
// Clients read, write, insert, delete, and search byte ranges as if
// operating on a flat array; the engine maintains only the occupied regions.
// The block list is always sorted, non-overlapping, and non-adjacent:
// whenever a mutation makes two blocks touch, they are merged before the
// call returns. Gaps hold no value - reads of a gap fail or return a
// caller-supplied default, never silently materialized zeros.
//
// # Addressing
//
// All ranges are half-open [start, endex); endex < start is treated as the
// empty range, never an error. Addresses are non-negative int64 values;
// arithmetic that would underflow below zero or overflow fails with
// ErrOverflow. The sentinel Open stands for an omitted range edge or an
// unbounded trim limit.
//
// An optional trim window [trimStart, trimEndex) clamps all addressing:
// writes outside it are clipped, reads fail with ErrOutOfBounds.
//
// # Undo
//
// Every mutator has a pure XxxBackup companion returning a Token that
// reverses exactly that one call via Restore. Tokens cost O(affected range),
// so external callers can keep arbitrary-depth undo stacks at a price
// proportional to actual edits, not container size. Restore order is strict
// LIFO, enforced through the engine's generation counter.
//
// # Views
//
// View returns a zero-copy window borrowing one block's storage; any later
// mutation invalidates it, and every access revalidates against the engine
// generation, failing with ErrStaleView instead of reading through a
// dangling window. ViewFill materializes an owned, never-stale copy with
// gaps filled.
//
// # Thread safety
//
// A Memory is not internally synchronized: it assumes single-owner,
// single-threaded-at-a-time access. Independent instances share nothing and
// may be used concurrently.
package sparse
