// Package grid provides the row-major cost buffer shared by the heatmap
// engine and the terrain generators.
//
// A Grid stores Width×Height signed 32-bit cells in a flat slice with
// index = y*Width + x. Before a heatmap fill any nonzero cell is a wall;
// afterwards each cell holds a step distance or -1.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for grid construction.
var (
	// ErrNegativeDimensions indicates a negative width or height.
	ErrNegativeDimensions = errors.New("grid: width and height must be non-negative")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrTooLarge indicates width*height does not fit in a signed 32-bit integer.
	ErrTooLarge = errors.New("grid: cell count exceeds int32 range")
)

// Point is a cell coordinate.
type Point struct {
	X, Y int32
}

// Grid is a Width×Height row-major array of int32 cells.
type Grid struct {
	Width, Height int32
	Cells         []int32
}

// New allocates a zeroed (all passable) grid.
// Returns ErrNegativeDimensions or ErrTooLarge for unusable sizes.
func New(width, height int32) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, ErrNegativeDimensions
	}
	n := int64(width) * int64(height)
	if n > int64(^uint32(0)>>1) {
		return nil, fmt.Errorf("%w: %d×%d", ErrTooLarge, width, height)
	}

	return &Grid{Width: width, Height: height, Cells: make([]int32, n)}, nil
}

// From2D builds a grid from rows[y][x]. The input is copied.
// An empty input yields a 0×0 grid; ragged rows yield ErrNonRectangular.
// Complexity: O(W×H) time and memory.
func From2D(rows [][]int32) (*Grid, error) {
	if len(rows) == 0 {
		return &Grid{}, nil
	}
	w := len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(int32(w), int32(len(rows)))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		copy(g.Cells[y*w:(y+1)*w], row)
	}

	return g, nil
}

// InBounds reports whether (x,y) lies within the grid. Complexity: O(1).
func (g *Grid) InBounds(x, y int32) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Index maps (x,y) to its row-major position.
func (g *Grid) Index(x, y int32) int {
	return int(y)*int(g.Width) + int(x)
}

// Coordinate converts a row-major index back to a Point.
// Like At, it panics on a grid with no columns, which has no valid index.
func (g *Grid) Coordinate(idx int) Point {
	w := int(g.Width)
	return Point{X: int32(idx % w), Y: int32(idx / w)}
}

// At returns the cell at (x,y). It panics when out of bounds, like a slice index.
func (g *Grid) At(x, y int32) int32 {
	return g.Cells[g.Index(x, y)]
}

// Set stores v at (x,y).
func (g *Grid) Set(x, y, v int32) {
	g.Cells[g.Index(x, y)] = v
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([]int32, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// Rows returns the grid as rows[y][x], copying the data.
func (g *Grid) Rows() [][]int32 {
	rows := make([][]int32, g.Height)
	w := int(g.Width)
	for y := range rows {
		rows[y] = make([]int32, w)
		copy(rows[y], g.Cells[y*w:(y+1)*w])
	}
	return rows
}

// String renders the grid as a bracketed matrix, one row per line:
//
//	[[ 1  1  1]
//	 [ 1  0  1]]
func (g *Grid) String() string {
	if g.Width == 0 || g.Height == 0 {
		return "[]"
	}
	var sb strings.Builder
	for y := int32(0); y < g.Height; y++ {
		if y == 0 {
			sb.WriteByte('[')
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteByte('[')
		for x := int32(0); x < g.Width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%2d", g.At(x, y))
		}
		sb.WriteByte(']')
		if y == g.Height-1 {
			sb.WriteByte(']')
		} else {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Chebyshev returns max(|ax-bx|, |ay-by|), the king-move distance.
func Chebyshev(a, b Point) int32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}
