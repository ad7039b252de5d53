// Package heatmap computes multi-source shortest-step distance fields
// ("heatmaps") over 2D grids with obstacles.
//
// What
//
//   - Input: a row-major width×height []int32 where any nonzero cell is a wall,
//     and a list of goal cells.
//   - Output (in place): every reachable cell holds the minimum number of
//     8-connected steps to the nearest goal; unreachable cells and walls hold -1.
//   - A goal is always passable: a goal placed on a wall gets distance 0.
//
// Why
//
//   - Cost fields for crowds and AI: an agent walks downhill by picking the
//     neighbour with the smallest value, and one fill serves every agent.
//   - Diagonal and orthogonal steps cost the same, matching king-move movement.
//
// How
//
//  1. Wall pass: nonzero → -1, zero → unvisited (math.MaxInt32).
//  2. Goal pass: each goal set to 0 and enqueued once.
//  3. Relaxation: pop a cell of cost c; any in-bounds neighbour storing more
//     than c+1 is lowered to c+1 and enqueued.
//  4. Cleanup: leftover unvisited cells become -1.
//
// The cost buffer doubles as the visited set, so no second buffer is allocated.
// The only heap allocation is the work queue, released before every return.
//
// Complexity (N = width×height)
//
//   - Time:   O(N)   (each cell enqueued at most once, 8 neighbour checks each)
//   - Memory: O(N)   worst case for the queue
//
// Usage
//
//	cells := make([]int32, w*h) // nonzero = wall
//	err := heatmap.Compute(w, h, cells, []grid.Point{{X: 4, Y: 8}})
//
//	// Non-destructive variant on a grid.Grid:
//	field, err := heatmap.Field(g, goals,
//	    heatmap.WithLogger(slog.Default()),
//	    heatmap.WithGoalPolicy(heatmap.IgnoreOutOfBounds),
//	)
//
// Options
//
//   - WithLogger(l):          Debug record per call (default: discard).
//   - WithGoalPolicy(p):      RejectOutOfBounds (default) or IgnoreOutOfBounds.
//   - WithQueueLimit(n):      cap the work queue; exceeding it is ErrOutOfMemory.
//   - WithOnRelax(fn):        hook on every distance assignment.
//
// Errors
//
//   - ErrInvalidDimensions  negative width or height.
//   - ErrSizeOverflow       width*height > MaxInt32-1.
//   - ErrGridLength         len(cells) != width*height.
//   - ErrGoalOutOfBounds    goal outside the grid (RejectOutOfBounds).
//   - ErrOutOfMemory        the work queue could not grow; cells left partial.
//   - ErrOptionViolation    invalid Option.
//   - ErrNilGrid            nil *grid.Grid passed to Fill or Field.
//
// A zero width or height is not an error: the call returns nil untouched,
// before options are applied.
// Callers needing atomicity on failure use Field, which works on a copy.
package heatmap
