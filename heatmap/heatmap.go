package heatmap

import (
	"fmt"
	"math"

	"github.com/katalvlaran/heatmap/grid"
	"github.com/katalvlaran/heatmap/queue"
)

// unvisited marks a passable cell not yet reached. Distances never reach it
// because the cell count is capped at MaxInt32-1.
const unvisited int32 = math.MaxInt32

// filler encapsulates the mutable state of one computation.
type filler struct {
	w, h  int32
	cells []int32
	opts  Options
	q     *queue.Queue[grid.Point]
	stats Stats
}

// Compute rewrites cells (row-major, width×height) into a distance field.
// On entry any nonzero cell is a wall. On return each cell holds its step
// distance to the nearest goal, or -1 when unreachable. Goals are always
// passable, even when placed on a wall.
//
// A zero width or height is a successful no-op, even with invalid options. Errors:
// ErrOptionViolation, ErrInvalidDimensions, ErrSizeOverflow, ErrGridLength
// and ErrGoalOutOfBounds are detected before cells is touched;
// ErrOutOfMemory may leave cells partially rewritten.
func Compute(width, height int32, cells []int32, goals []grid.Point, opts ...Option) error {
	_, err := ComputeStats(width, height, cells, goals, opts...)
	return err
}

// ComputeStats is Compute returning a summary of the fill.
func ComputeStats(width, height int32, cells []int32, goals []grid.Point, opts ...Option) (Stats, error) {
	// zero-size is a no-op before anything else, options included
	if width == 0 || height == 0 {
		return Stats{}, nil
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Stats{}, o.err
	}

	empty, err := checkDimensions(width, height, len(cells))
	if err != nil || empty {
		return Stats{}, err
	}

	f := &filler{
		w:     width,
		h:     height,
		cells: cells,
		opts:  o,
		stats: Stats{MaxDistance: -1},
	}
	if err = f.checkGoals(goals); err != nil {
		return Stats{}, err
	}

	f.q, err = queue.New[grid.Point](queue.WithMaxCapacity(o.QueueLimit))
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	defer f.q.Release()

	if err = f.run(goals); err != nil {
		o.Logger.Debug("heatmap aborted",
			"width", width, "height", height,
			"enqueued", f.stats.Enqueued, "error", err)
		return f.stats, err
	}

	o.Logger.Debug("heatmap computed",
		"width", width, "height", height,
		"goals", f.stats.Goals, "skipped", f.stats.Skipped,
		"walls", f.stats.Walls, "enqueued", f.stats.Enqueued,
		"reached", f.stats.Reached, "unreachable", f.stats.Unreachable,
		"max_distance", f.stats.MaxDistance)

	return f.stats, nil
}

// Fill runs ComputeStats on g in place.
func Fill(g *grid.Grid, goals []grid.Point, opts ...Option) (Stats, error) {
	if g == nil {
		return Stats{}, ErrNilGrid
	}
	return ComputeStats(g.Width, g.Height, g.Cells, goals, opts...)
}

// Field computes the distance field of a copy of g, leaving g untouched.
// No partial result is returned on error.
func Field(g *grid.Grid, goals []grid.Point, opts ...Option) (*grid.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	out := g.Clone()
	if _, err := Fill(out, goals, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// checkDimensions validates sizes in order. empty reports the no-op case.
func checkDimensions(width, height int32, n int) (empty bool, err error) {
	if width == 0 || height == 0 {
		return true, nil
	}
	if width < 0 || height < 0 {
		return false, fmt.Errorf("%w: %d×%d", ErrInvalidDimensions, width, height)
	}
	// keeps y*width+x and every distance strictly below the unvisited sentinel
	if width > (math.MaxInt32-1)/height {
		return false, fmt.Errorf("%w: %d×%d", ErrSizeOverflow, width, height)
	}
	if n != int(width)*int(height) {
		return false, fmt.Errorf("%w: %d cells for %d×%d", ErrGridLength, n, width, height)
	}
	return false, nil
}

// checkGoals enforces RejectOutOfBounds before any cell is written.
func (f *filler) checkGoals(goals []grid.Point) error {
	if f.opts.GoalPolicy != RejectOutOfBounds {
		return nil
	}
	for i, g := range goals {
		if !f.inBounds(g) {
			return fmt.Errorf("%w: goal %d at (%d,%d) in %d×%d",
				ErrGoalOutOfBounds, i, g.X, g.Y, f.w, f.h)
		}
	}
	return nil
}

// run executes the four passes: walls, goals, relaxation, cleanup.
func (f *filler) run(goals []grid.Point) error {
	f.markWalls()
	if err := f.seed(goals); err != nil {
		return err
	}
	if err := f.relax(); err != nil {
		return err
	}
	f.cleanup()
	return nil
}

// markWalls re-encodes input flags: nonzero → Wall, zero → unvisited.
func (f *filler) markWalls() {
	for i, v := range f.cells {
		if v != 0 {
			f.cells[i] = Wall
			f.stats.Walls++
		} else {
			f.cells[i] = unvisited
		}
	}
}

// seed sets every goal to 0 and enqueues it once. Duplicates are skipped.
func (f *filler) seed(goals []grid.Point) error {
	for _, g := range goals {
		if !f.inBounds(g) {
			f.stats.Skipped++
			f.opts.Logger.Debug("heatmap goal ignored", "x", g.X, "y", g.Y)
			continue
		}
		i := f.index(g.X, g.Y)
		if f.cells[i] == 0 {
			continue
		}
		f.cells[i] = 0
		f.stats.Goals++
		f.opts.OnRelax(g, 0)
		if err := f.push(g); err != nil {
			return err
		}
	}
	return nil
}

// relax pops cells in FIFO order and lowers each in-bounds neighbour
// whose stored cost exceeds cost+1. Walls (-1) never qualify.
func (f *filler) relax() error {
	for {
		p, ok := f.q.PopLeft()
		if !ok {
			return nil
		}
		next := f.cells[f.index(p.X, p.Y)] + 1

		for yi := max(0, p.Y-1); yi < min(f.h, p.Y+2); yi++ {
			row := int(yi) * int(f.w)
			for xi := max(0, p.X-1); xi < min(f.w, p.X+2); xi++ {
				i := row + int(xi)
				if f.cells[i] <= next {
					continue
				}
				f.cells[i] = next
				n := grid.Point{X: xi, Y: yi}
				f.opts.OnRelax(n, next)
				if err := f.push(n); err != nil {
					return err
				}
			}
		}
	}
}

// cleanup turns leftover sentinels into Unreachable and tallies the result.
func (f *filler) cleanup() {
	for i, v := range f.cells {
		switch {
		case v == unvisited:
			f.cells[i] = Unreachable
			f.stats.Unreachable++
		case v < 0:
			f.stats.Unreachable++
		default:
			f.stats.Reached++
			if v > f.stats.MaxDistance {
				f.stats.MaxDistance = v
			}
		}
	}
}

func (f *filler) push(p grid.Point) error {
	if err := f.q.Append(p); err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	f.stats.Enqueued++
	return nil
}

func (f *filler) inBounds(p grid.Point) bool {
	return p.X >= 0 && p.X < f.w && p.Y >= 0 && p.Y < f.h
}

func (f *filler) index(x, y int32) int {
	return int(y)*int(f.w) + int(x)
}
