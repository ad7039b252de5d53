// Package heatmap defines options, results, and sentinel errors
// for distance-field computation over a grid.
package heatmap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/heatmap/grid"
	"github.com/katalvlaran/heatmap/queue"
)

// Cost sentinels stored in the grid buffer.
const (
	// Wall marks an impassable cell during the fill.
	Wall int32 = -1
	// Unreachable marks a cell no goal could reach, walls included.
	Unreachable int32 = -1
)

// Sentinel errors for heatmap computation.
var (
	// ErrInvalidDimensions is returned for a negative width or height.
	ErrInvalidDimensions = errors.New("heatmap: negative grid dimensions")

	// ErrSizeOverflow is returned when width*height leaves the int32-safe range.
	ErrSizeOverflow = errors.New("heatmap: grid size overflows int32 addressing")

	// ErrOutOfMemory is returned when the work queue cannot be allocated or grown.
	// Errors carrying it also match queue.ErrOutOfMemory.
	ErrOutOfMemory = errors.New("heatmap: out of memory")

	// ErrGridLength is returned when len(cells) != width*height.
	ErrGridLength = errors.New("heatmap: cell buffer length does not match dimensions")

	// ErrGoalOutOfBounds is returned for a goal outside the grid under RejectOutOfBounds.
	ErrGoalOutOfBounds = errors.New("heatmap: goal outside grid bounds")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("heatmap: invalid option supplied")

	// ErrNilGrid is returned by Fill and Field for a nil *grid.Grid.
	ErrNilGrid = errors.New("heatmap: grid is nil")
)

// GoalPolicy selects how goals outside the grid are treated.
type GoalPolicy int

const (
	// RejectOutOfBounds fails the call with ErrGoalOutOfBounds before any mutation.
	RejectOutOfBounds GoalPolicy = iota
	// IgnoreOutOfBounds skips such goals and counts them in Stats.Skipped.
	IgnoreOutOfBounds
)

// Option configures a computation via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of a single computation.
type Options struct {
	// Logger receives a Debug record per call. Defaults to a discarding logger.
	Logger *slog.Logger

	// GoalPolicy decides what out-of-bounds goals do.
	GoalPolicy GoalPolicy

	// QueueLimit caps the work queue capacity (power of two).
	QueueLimit int

	// OnRelax is called whenever a cell receives a new distance, goals included.
	OnRelax func(p grid.Point, cost int32)

	err error
}

// DefaultOptions returns Options with a discarding logger, RejectOutOfBounds,
// queue.DefaultMaxCapacity and a no-op OnRelax.
func DefaultOptions() Options {
	return Options{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		GoalPolicy: RejectOutOfBounds,
		QueueLimit: queue.DefaultMaxCapacity,
		OnRelax:    func(grid.Point, int32) {},
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithGoalPolicy selects the out-of-bounds goal policy.
func WithGoalPolicy(p GoalPolicy) Option {
	return func(o *Options) {
		switch p {
		case RejectOutOfBounds, IgnoreOutOfBounds:
			o.GoalPolicy = p
		default:
			o.err = fmt.Errorf("%w: unknown goal policy %d", ErrOptionViolation, p)
		}
	}
}

// WithQueueLimit caps the work queue. n must be a positive power of two;
// growth past it fails the call with ErrOutOfMemory.
func WithQueueLimit(n int) Option {
	return func(o *Options) {
		if n <= 0 || n&(n-1) != 0 {
			o.err = fmt.Errorf("%w: queue limit must be a positive power of two (%d)", ErrOptionViolation, n)
			return
		}
		o.QueueLimit = n
	}
}

// WithOnRelax registers a callback run on every distance assignment.
func WithOnRelax(fn func(p grid.Point, cost int32)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRelax = fn
		}
	}
}

// Stats summarizes a completed computation.
//   - Goals: distinct goal cells seeded.
//   - Skipped: out-of-bounds goals dropped under IgnoreOutOfBounds.
//   - Walls: cells whose input value was nonzero.
//   - Enqueued: total queue insertions, goals included.
//   - Reached / Unreachable: final cell counts with cost ≥ 0 and -1.
//   - MaxDistance: largest finite distance, -1 if nothing was reached.
type Stats struct {
	Goals       int
	Skipped     int
	Walls       int
	Enqueued    int
	Reached     int
	Unreachable int
	MaxDistance int32
}
