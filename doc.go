// Package heatmap is the root of a small library for multi-source distance
// fields ("heatmaps") on obstacle grids.
//
// What is in the box?
//
//	queue/     generic power-of-two ring buffer FIFO driving the traversal
//	grid/      row-major int32 Grid and Point types, 2D adapters, dumps
//	heatmap/   the distance-fill engine: Compute, ComputeStats, Fill, Field
//	terrain/   obstacle generators: ASCII mazes, potholes, bands, simplex caves
//	cmd/heatmapdemo  command that builds terrain and logs a fill summary
//
// Quick ASCII example (goal G, wall #, 8-connected steps):
//
//	G . # . .        0 1 -1 4 4
//	. . # . .   →    1 1 -1 3 4
//	. . . . .        2 2  2 3 4
//
// The engine is pure, synchronous and allocation-light: the cost buffer is its
// own visited set and the only heap allocation is the work queue.
//
//	go get github.com/katalvlaran/heatmap
package heatmap
