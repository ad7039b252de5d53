// Package queue provides a growable FIFO ring buffer used to drive
// breadth-first traversal order.
//
// What:
//
//   - Queue[T] stores elements in a slice whose length is always a power of two.
//   - Append grows the buffer by doubling; PopLeft advances the head with a
//     bitmask wraparound instead of a general modulo.
//   - After growth the elements lying before the head are copied past the old
//     capacity boundary, so the live run stays contiguous from an unchanged head.
//
// Why:
//
//   - Amortized O(1) Append and PopLeft with no per-operation allocation.
//   - Popped slots are reused, so a steady-state BFS frontier stops growing.
//
// Options:
//
//   - WithMaxCapacity(n): upper bound on the buffer length (power of two).
//     Growth past it fails with ErrOutOfMemory; default DefaultMaxCapacity.
//
// Errors:
//
//   - ErrOutOfMemory: the buffer could not be allocated or grown.
//   - ErrInvalidCapacity: WithMaxCapacity received a non-power-of-two value.
//   - ErrReleased: Append was called after Release.
package queue
