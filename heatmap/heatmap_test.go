package heatmap_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/heatmap/grid"
	"github.com/katalvlaran/heatmap/heatmap"
	"github.com/katalvlaran/heatmap/queue"
	"github.com/katalvlaran/heatmap/terrain"
)

// fixtureMaze is an 8×9 maze where '+' marks walls.
var fixtureMaze = []string{
	"+++++ + ",
	"+  +   +",
	"++ + ++ ",
	"+  + +  ",
	"  ++    ",
	" ++  +  ",
	"     ++ ",
	"+ ++++  ",
	" + ++++ ",
}

// referenceField relaxes every cell against its neighbours until nothing
// changes. Slow, but obviously correct.
func referenceField(g *grid.Grid, goals []grid.Point) []int32 {
	const inf = int32(math.MaxInt32)
	dist := make([]int32, len(g.Cells))
	wall := make([]bool, len(g.Cells))
	for i, v := range g.Cells {
		wall[i] = v != 0
		dist[i] = inf
	}
	for _, p := range goals {
		i := g.Index(p.X, p.Y)
		wall[i] = false
		dist[i] = 0
	}
	for changed := true; changed; {
		changed = false
		for y := int32(0); y < g.Height; y++ {
			for x := int32(0); x < g.Width; x++ {
				i := g.Index(x, y)
				if wall[i] {
					continue
				}
				for dy := int32(-1); dy <= 1; dy++ {
					for dx := int32(-1); dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if !g.InBounds(nx, ny) {
							continue
						}
						j := g.Index(nx, ny)
						if wall[j] || dist[j] == inf {
							continue
						}
						if dist[j]+1 < dist[i] {
							dist[i] = dist[j] + 1
							changed = true
						}
					}
				}
			}
		}
	}
	for i := range dist {
		if wall[i] || dist[i] == inf {
			dist[i] = -1
		}
	}
	return dist
}

// chebyshevField is the expected result on a wall-free grid.
func chebyshevField(w, h int32, goals []grid.Point) []int32 {
	out := make([]int32, 0, w*h)
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			best := int32(math.MaxInt32)
			for _, g := range goals {
				best = min(best, grid.Chebyshev(grid.Point{X: x, Y: y}, g))
			}
			out = append(out, best)
		}
	}
	return out
}

// TestCompute_Errors verifies validation order and that nothing is mutated.
func TestCompute_Errors(t *testing.T) {
	cases := []struct {
		name  string
		w, h  int32
		cells []int32
		goals []grid.Point
		opts  []heatmap.Option
		err   error
	}{
		{"NegativeWidth", -2, 3, []int32{1, 0, 1}, nil, nil, heatmap.ErrInvalidDimensions},
		{"NegativeHeight", 3, -2, []int32{1, 0, 1}, nil, nil, heatmap.ErrInvalidDimensions},
		{"Overflow", 46341, 46341, []int32{1, 0, 1}, nil, nil, heatmap.ErrSizeOverflow},
		{"OverflowMaxWidth", math.MaxInt32, 1, []int32{1, 0, 1}, nil, nil, heatmap.ErrSizeOverflow},
		{"ShortBuffer", 2, 2, []int32{1, 0, 1}, nil, nil, heatmap.ErrGridLength},
		{"GoalOutOfBounds", 3, 1, []int32{1, 0, 1}, []grid.Point{{X: 1, Y: 0}, {X: 3, Y: 0}}, nil, heatmap.ErrGoalOutOfBounds},
		{"NegativeGoal", 3, 1, []int32{1, 0, 1}, []grid.Point{{X: 0, Y: -1}}, nil, heatmap.ErrGoalOutOfBounds},
		{"BadQueueLimit", 3, 1, []int32{1, 0, 1}, nil, []heatmap.Option{heatmap.WithQueueLimit(3)}, heatmap.ErrOptionViolation},
		{"BadPolicy", 3, 1, []int32{1, 0, 1}, nil, []heatmap.Option{heatmap.WithGoalPolicy(9)}, heatmap.ErrOptionViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := slices.Clone(tc.cells)
			err := heatmap.Compute(tc.w, tc.h, tc.cells, tc.goals, tc.opts...)
			require.True(t, errors.Is(err, tc.err), "got %v; want %v", err, tc.err)
			assert.Equal(t, before, tc.cells, "cells must be untouched on validation failure")
		})
	}
}

// TestCompute_Degenerate checks that a zero dimension is a no-op success,
// even when the other dimension is negative.
func TestCompute_Degenerate(t *testing.T) {
	cells := []int32{5, 0, 7}
	for _, dims := range [][2]int32{{0, 0}, {0, 4}, {4, 0}, {0, -3}} {
		require.NoError(t, heatmap.Compute(dims[0], dims[1], cells, []grid.Point{{X: 0, Y: 0}}))
		assert.Equal(t, []int32{5, 0, 7}, cells)
	}
	require.NoError(t, heatmap.Compute(0, 0, nil, nil))

	// a zero-size call succeeds before options are looked at
	require.NoError(t, heatmap.Compute(0, 0, nil, nil, heatmap.WithQueueLimit(3)))
	require.NoError(t, heatmap.Compute(5, 0, cells, nil, heatmap.WithGoalPolicy(9)))
	assert.Equal(t, []int32{5, 0, 7}, cells)
	st, err := heatmap.ComputeStats(0, 2, cells, nil, heatmap.WithQueueLimit(-1))
	require.NoError(t, err)
	assert.Equal(t, heatmap.Stats{}, st)
}

// TestCompute_SingleGoal compares against max(|x-gx|, |y-gy|).
func TestCompute_SingleGoal(t *testing.T) {
	cases := []struct {
		name string
		w, h int32
		goal grid.Point
	}{
		{"Center5x5", 5, 5, grid.Point{X: 2, Y: 2}},
		{"Corner", 7, 3, grid.Point{X: 0, Y: 0}},
		{"Wide24x16", 24, 16, grid.Point{X: 4, Y: 8}},
		{"SingleCell", 1, 1, grid.Point{X: 0, Y: 0}},
		{"Column", 1, 9, grid.Point{X: 0, Y: 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cells := make([]int32, tc.w*tc.h)
			goals := []grid.Point{tc.goal}
			st, err := heatmap.ComputeStats(tc.w, tc.h, cells, goals)
			require.NoError(t, err)
			assert.Equal(t, chebyshevField(tc.w, tc.h, goals), cells)
			assert.Equal(t, 1, st.Goals)
			assert.Equal(t, int(tc.w*tc.h), st.Reached)
			assert.Equal(t, int(tc.w*tc.h), st.Enqueued, "each cell is enqueued exactly once")
			assert.Equal(t, 0, st.Unreachable)
		})
	}

	cells := make([]int32, 25)
	require.NoError(t, heatmap.Compute(5, 5, cells, []grid.Point{{X: 2, Y: 2}}))
	assert.Equal(t, int32(2), cells[0], "corner (0,0)")
	assert.Equal(t, int32(2), cells[2], "edge (2,0)")
}

// TestCompute_MultipleGoals takes the minimum over goals, duplicates included.
func TestCompute_MultipleGoals(t *testing.T) {
	goals := []grid.Point{{X: 0, Y: 0}, {X: 8, Y: 6}, {X: 4, Y: 3}, {X: 4, Y: 3}}
	cells := make([]int32, 9*7)
	st, err := heatmap.ComputeStats(9, 7, cells, goals)
	require.NoError(t, err)
	assert.Equal(t, chebyshevField(9, 7, goals), cells)
	assert.Equal(t, 3, st.Goals, "duplicate goal is seeded once")
	assert.Equal(t, 63, st.Enqueued)
}

// TestCompute_FullSeparation puts a full-width wall band between the goal
// and the lower half of the grid.
func TestCompute_FullSeparation(t *testing.T) {
	g, err := terrain.HorizontalBand(8, 7, 3)
	require.NoError(t, err)
	goal := grid.Point{X: 2, Y: 0}

	st, err := heatmap.Fill(g, []grid.Point{goal})
	require.NoError(t, err)
	for y := int32(0); y < g.Height; y++ {
		for x := int32(0); x < g.Width; x++ {
			got := g.At(x, y)
			if y >= 3 {
				assert.Equal(t, int32(-1), got, "cell (%d,%d) beyond the wall", x, y)
				continue
			}
			assert.Equal(t, grid.Chebyshev(grid.Point{X: x, Y: y}, goal), got, "cell (%d,%d)", x, y)
		}
	}
	assert.Equal(t, 8, st.Walls)
	assert.Equal(t, 24, st.Reached)
	assert.Equal(t, 32, st.Unreachable)
	assert.Equal(t, int32(5), st.MaxDistance)
}

// TestCompute_BandWithGap routes around the band through a single gap.
func TestCompute_BandWithGap(t *testing.T) {
	g, err := terrain.HorizontalBand(6, 5, 2, 5)
	require.NoError(t, err)
	goals := []grid.Point{{X: 0, Y: 0}}

	field, err := heatmap.Field(g, goals)
	require.NoError(t, err)
	assert.Equal(t, referenceField(g, goals), field.Cells)
	assert.Equal(t, int32(5), field.At(5, 2), "gap cell")
	assert.Equal(t, int32(6), field.At(4, 3), "first cell past the gap diagonal")
	assert.Equal(t, int32(10), field.At(0, 3))
	assert.Equal(t, int32(-1), field.At(4, 2))
}

// TestCompute_GoalOnWall forces a walled goal passable.
func TestCompute_GoalOnWall(t *testing.T) {
	cells := []int32{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}
	require.NoError(t, heatmap.Compute(3, 3, cells, []grid.Point{{X: 1, Y: 1}}))
	assert.Equal(t, []int32{
		-1, -1, -1,
		-1, 0, -1,
		-1, -1, -1,
	}, cells)

	cells = []int32{
		0, 0, 0,
		0, 7, 0,
		0, 0, 0,
	}
	require.NoError(t, heatmap.Compute(3, 3, cells, []grid.Point{{X: 1, Y: 1}}))
	assert.Equal(t, []int32{1, 1, 1, 1, 0, 1, 1, 1, 1}, cells)
}

// TestCompute_NoGoals leaves every cell unreachable.
func TestCompute_NoGoals(t *testing.T) {
	cells := []int32{0, 1, 0, 0}
	st, err := heatmap.ComputeStats(2, 2, cells, nil)
	require.NoError(t, err)
	assert.Equal(t, []int32{-1, -1, -1, -1}, cells)
	assert.Equal(t, int32(-1), st.MaxDistance)
	assert.Equal(t, 4, st.Unreachable)
}

// TestCompute_Idempotent runs twice on the same wall-encoded input.
func TestCompute_Idempotent(t *testing.T) {
	src, err := terrain.Potholes(40, 30, 7, 0.35)
	require.NoError(t, err)
	goals := []grid.Point{{X: 1, Y: 1}, {X: 38, Y: 20}}

	a := src.Clone()
	b := src.Clone()
	_, err = heatmap.Fill(a, goals)
	require.NoError(t, err)
	_, err = heatmap.Fill(b, goals)
	require.NoError(t, err)
	assert.Equal(t, a.Cells, b.Cells)
}

// TestCompute_MatchesReference checks mazes and random fields against the
// fixed-point relaxation.
func TestCompute_MatchesReference(t *testing.T) {
	maze, err := terrain.FromASCII(fixtureMaze, '+')
	require.NoError(t, err)
	holes, err := terrain.Potholes(64, 48, 2718283, 0.5)
	require.NoError(t, err)
	cfg := terrain.DefaultGenConfig()
	cfg.Seed = 99
	caves, err := terrain.Generate(cfg)
	require.NoError(t, err)

	cases := []struct {
		name  string
		g     *grid.Grid
		goals []grid.Point
	}{
		{"Maze", maze, []grid.Point{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 1}}},
		{"Potholes", holes, []grid.Point{{X: 1, Y: 1}, {X: 24, Y: 40}}},
		{"Caves", caves, []grid.Point{{X: 32, Y: 32}, {X: 0, Y: 63}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field, err := heatmap.Field(tc.g, tc.goals)
			require.NoError(t, err)
			assert.Equal(t, referenceField(tc.g, tc.goals), field.Cells)
		})
	}
}

// TestCompute_IgnoreOutOfBounds drops stray goals when asked to.
func TestCompute_IgnoreOutOfBounds(t *testing.T) {
	goals := []grid.Point{{X: -1, Y: 0}, {X: 1, Y: 1}, {X: 10, Y: 10}}
	cells := make([]int32, 4*3)
	st, err := heatmap.ComputeStats(4, 3, cells, goals,
		heatmap.WithGoalPolicy(heatmap.IgnoreOutOfBounds))
	require.NoError(t, err)
	assert.Equal(t, 2, st.Skipped)
	assert.Equal(t, 1, st.Goals)
	assert.Equal(t, chebyshevField(4, 3, []grid.Point{{X: 1, Y: 1}}), cells)
}

// TestCompute_OutOfMemory aborts when the queue limit is reached and leaves
// the buffer in the internal cost domain.
func TestCompute_OutOfMemory(t *testing.T) {
	cells := make([]int32, 10*10)
	cells[0] = 1
	st, err := heatmap.ComputeStats(10, 10, cells, []grid.Point{{X: 5, Y: 5}},
		heatmap.WithQueueLimit(4))
	require.Error(t, err)
	assert.ErrorIs(t, err, heatmap.ErrOutOfMemory)
	assert.ErrorIs(t, err, queue.ErrOutOfMemory)
	// goal, then 4 of the 8 neighbours before growth past 4 slots fails
	assert.Equal(t, 5, st.Enqueued)

	assert.Equal(t, int32(-1), cells[0], "walls already re-encoded")
	assert.Contains(t, cells, int32(math.MaxInt32), "unvisited sentinels remain")
}

// TestCompute_OnRelax sees every distance assignment exactly once per cell.
func TestCompute_OnRelax(t *testing.T) {
	g, err := terrain.FromASCII(fixtureMaze, '+')
	require.NoError(t, err)
	goals := []grid.Point{{X: 1, Y: 1}, {X: 4, Y: 1}}

	seen := make(map[grid.Point]int32)
	calls := 0
	st, err := heatmap.Fill(g, goals, heatmap.WithOnRelax(func(p grid.Point, cost int32) {
		calls++
		seen[p] = cost
	}))
	require.NoError(t, err)
	assert.Equal(t, st.Enqueued, calls)
	assert.Equal(t, st.Reached, len(seen))
	for p, cost := range seen {
		assert.Equal(t, g.At(p.X, p.Y), cost, "final cost at (%d,%d)", p.X, p.Y)
	}
}

// TestField_LeavesSource confirms the copying variant and nil handling.
func TestField_LeavesSource(t *testing.T) {
	g, err := grid.From2D([][]int32{
		{0, 1, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	before := slices.Clone(g.Cells)

	field, err := heatmap.Field(g, []grid.Point{{X: 0, Y: 0}})
	require.NoError(t, err)
	assert.Equal(t, before, g.Cells)
	assert.Equal(t, []int32{0, -1, 4, 1, -1, 3, 2, 2, 3}, field.Cells)

	_, err = heatmap.Field(g, []grid.Point{{X: 3, Y: 0}})
	assert.ErrorIs(t, err, heatmap.ErrGoalOutOfBounds)

	_, err = heatmap.Field(nil, nil)
	assert.ErrorIs(t, err, heatmap.ErrNilGrid)
	_, err = heatmap.Fill(nil, nil)
	assert.ErrorIs(t, err, heatmap.ErrNilGrid)
}

// TestCompute_Logger checks the per-call debug record.
func TestCompute_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cells := make([]int32, 9)
	require.NoError(t, heatmap.Compute(3, 3, cells, []grid.Point{{X: 0, Y: 0}, {X: 5, Y: 5}},
		heatmap.WithLogger(logger),
		heatmap.WithGoalPolicy(heatmap.IgnoreOutOfBounds)))

	out := buf.String()
	assert.True(t, strings.Contains(out, "heatmap goal ignored"), out)
	assert.True(t, strings.Contains(out, "heatmap computed"), out)
	assert.True(t, strings.Contains(out, "max_distance=2"), out)
}

// TestCompute_Concurrent runs independent fills in parallel.
func TestCompute_Concurrent(t *testing.T) {
	src, err := terrain.Potholes(50, 50, 3, 0.3)
	require.NoError(t, err)
	goals := []grid.Point{{X: 25, Y: 25}}
	want := referenceField(src, goals)

	const workers = 8
	results := make([]*grid.Grid, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = heatmap.Field(src, goals)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i].Cells)
	}
}
