package queue

import (
	"errors"
	"fmt"
	"math/bits"
)

// Sentinel errors for queue operations.
var (
	// ErrOutOfMemory indicates the backing buffer could not be allocated or grown.
	ErrOutOfMemory = errors.New("queue: out of memory")

	// ErrInvalidCapacity indicates a maximum capacity that is not a power of two.
	ErrInvalidCapacity = errors.New("queue: capacity must be a power of two")

	// ErrReleased indicates the queue was used after Release.
	ErrReleased = errors.New("queue: use after release")
)

// DefaultMaxCapacity bounds the backing buffer when no WithMaxCapacity is given.
// On 64-bit hosts it is 1<<31, one entry per cell of any grid whose cell
// count fits in a signed 32-bit integer; on 32-bit hosts it is 1<<30, the
// largest power of two an int can hold.
const DefaultMaxCapacity = 1 << (30 + bits.UintSize/64)

// Option configures a Queue at construction time.
type Option func(*config)

type config struct {
	maxCap int
	err    error
}

// WithMaxCapacity limits how far the buffer may grow.
//
//	n is a power of two: growth beyond n fails with ErrOutOfMemory
//	n == 0:              the initial single-slot allocation itself fails
//	otherwise:           New returns ErrInvalidCapacity
func WithMaxCapacity(n int) Option {
	return func(c *config) {
		switch {
		case n == 0:
			c.maxCap = 0
		case n < 0 || bits.OnesCount(uint(n)) != 1:
			c.err = fmt.Errorf("%w: got %d", ErrInvalidCapacity, n)
		default:
			c.maxCap = n
		}
	}
}

// Queue is a FIFO ring buffer. The zero value is not usable; call New.
// A Queue is not safe for concurrent use.
type Queue[T any] struct {
	buf    []T
	head   int
	used   int
	maxCap int
}

// New allocates a queue with a single-slot buffer.
// Returns ErrInvalidCapacity for a bad WithMaxCapacity value, or
// ErrOutOfMemory if the maximum capacity forbids even one slot.
func New[T any](opts ...Option) (*Queue[T], error) {
	c := config{maxCap: DefaultMaxCapacity}
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.maxCap < 1 {
		return nil, ErrOutOfMemory
	}

	return &Queue[T]{buf: make([]T, 1), maxCap: c.maxCap}, nil
}

// Len returns the number of queued elements. Complexity: O(1).
func (q *Queue[T]) Len() int {
	return q.used
}

// Cap returns the current buffer length, always a power of two (0 after Release).
func (q *Queue[T]) Cap() int {
	return len(q.buf)
}

// Append inserts v at the logical tail, doubling the buffer when full.
// On ErrOutOfMemory the queue is unchanged and may still be released.
func (q *Queue[T]) Append(v T) error {
	if q.buf == nil {
		return ErrReleased
	}
	if q.used == len(q.buf) {
		if err := q.grow(); err != nil {
			return err
		}
	}
	q.buf[(q.head+q.used)&(len(q.buf)-1)] = v
	q.used++

	return nil
}

// grow doubles the buffer. Only called when the queue is full, so the live
// run is [head, oldCap) followed by [0, head).
func (q *Queue[T]) grow() error {
	oldCap := len(q.buf)
	newCap := oldCap << 1
	if newCap <= 0 || newCap > q.maxCap {
		return fmt.Errorf("%w: cannot grow past %d elements", ErrOutOfMemory, oldCap)
	}

	buf := make([]T, newCap)
	copy(buf, q.buf)
	if q.head != 0 {
		// move the wrapped prefix after the old boundary
		copy(buf[oldCap:], q.buf[:q.head])
		clear(buf[:q.head])
	}
	q.buf = buf

	return nil
}

// PopLeft removes and returns the head element.
// ok is false when the queue is empty.
func (q *Queue[T]) PopLeft() (v T, ok bool) {
	if q.used == 0 {
		return v, false
	}
	v = q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.used--

	return v, true
}

// Reset drops all elements but keeps the buffer for reuse.
func (q *Queue[T]) Reset() {
	clear(q.buf)
	q.head = 0
	q.used = 0
}

// Release frees the backing buffer. After Release, Append returns
// ErrReleased and PopLeft reports an empty queue.
func (q *Queue[T]) Release() {
	q.buf = nil
	q.head = 0
	q.used = 0
}
