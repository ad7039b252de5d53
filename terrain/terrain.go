// Package terrain builds obstacle grids for the heatmap engine: ASCII mazes,
// uniformly random potholes, wall bands with gaps, and simplex-noise caverns.
//
// Every generator returns a *grid.Grid where 1 marks a wall and 0 a
// passable cell, which is exactly the input encoding heatmap.Compute expects.
package terrain

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/heatmap/grid"
)

// Sentinel errors for terrain generation.
var (
	// ErrDensity indicates a pothole density outside [0,1].
	ErrDensity = errors.New("terrain: density must be within [0,1]")
	// ErrOutOfRange indicates a band row or gap column outside the grid.
	ErrOutOfRange = errors.New("terrain: coordinate outside grid")
	// ErrConfig indicates unusable noise parameters.
	ErrConfig = errors.New("terrain: invalid generation config")
)

// Cell values written by the generators.
const (
	Open int32 = 0
	Wall int32 = 1
)

// FromASCII converts lines[y][x] into a grid: the wall rune becomes Wall,
// anything else Open. Lines must hold the same number of runes.
func FromASCII(lines []string, wall rune) (*grid.Grid, error) {
	rows := make([][]int32, len(lines))
	for y, line := range lines {
		row := make([]int32, 0, len(line))
		for _, r := range line {
			if r == wall {
				row = append(row, Wall)
			} else {
				row = append(row, Open)
			}
		}
		rows[y] = row
	}
	return grid.From2D(rows)
}

// Potholes marks each cell as a wall independently with probability density.
// The same seed always yields the same grid.
func Potholes(width, height int32, seed int64, density float64) (*grid.Grid, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrDensity, density)
	}
	g, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	r := rand.New(rand.NewSource(seed))
	for i := range g.Cells {
		if r.Float64() < density {
			g.Cells[i] = Wall
		}
	}
	return g, nil
}

// HorizontalBand returns a grid with a full-width wall at row, except for
// the listed gap columns which stay open.
func HorizontalBand(width, height, row int32, gaps ...int32) (*grid.Grid, error) {
	g, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= height {
		return nil, fmt.Errorf("%w: row %d in height %d", ErrOutOfRange, row, height)
	}
	for x := int32(0); x < width; x++ {
		g.Set(x, row, Wall)
	}
	for _, x := range gaps {
		if x < 0 || x >= width {
			return nil, fmt.Errorf("%w: gap %d in width %d", ErrOutOfRange, x, width)
		}
		g.Set(x, row, Open)
	}
	return g, nil
}
