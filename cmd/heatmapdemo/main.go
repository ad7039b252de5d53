// Command heatmapdemo generates an obstacle grid, fills it with a heatmap
// and logs a summary. Small grids are printed in full.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/heatmap/grid"
	"github.com/katalvlaran/heatmap/heatmap"
	"github.com/katalvlaran/heatmap/terrain"
)

var (
	// modeFlag selects the terrain generator.
	modeFlag = flag.String("mode", "maze", "terrain: open, band, potholes, caves or maze")

	widthFlag  = flag.Int("width", 24, "grid width (ignored for maze)")
	heightFlag = flag.Int("height", 16, "grid height (ignored for maze)")

	// seedFlag feeds the potholes and caves generators.
	seedFlag = flag.Int64("seed", 2718283, "generator seed")

	densityFlag = flag.Float64("density", 0.4, "pothole wall probability")

	// goalsFlag lists goals as x,y pairs separated by semicolons.
	goalsFlag = flag.String("goals", "1,1;4,1", "goal cells, e.g. \"1,1;4,1\"")

	ignoreFlag = flag.Bool("ignore-oob", false, "skip out-of-bounds goals instead of failing")

	printLimitFlag = flag.Int("print-limit", 40, "print grids no wider than this")

	verboseFlag = flag.Bool("v", false, "enable debug logging")
)

var demoMaze = []string{
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

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	src, err := buildTerrain(*modeFlag, int32(*widthFlag), int32(*heightFlag))
	if err != nil {
		slog.Error("failed to build terrain", "mode", *modeFlag, "error", err)
		os.Exit(1)
	}
	goals, err := parseGoals(*goalsFlag)
	if err != nil {
		slog.Error("failed to parse goals", "goals", *goalsFlag, "error", err)
		os.Exit(2)
	}
	slog.Info("terrain ready",
		"mode", *modeFlag,
		"width", src.Width, "height", src.Height,
		"cells", humanize.Comma(int64(len(src.Cells))),
		"goals", len(goals))

	opts := []heatmap.Option{heatmap.WithLogger(logger)}
	if *ignoreFlag {
		opts = append(opts, heatmap.WithGoalPolicy(heatmap.IgnoreOutOfBounds))
	}

	field := src.Clone()
	start := time.Now()
	st, err := heatmap.Fill(field, goals, opts...)
	if err != nil {
		slog.Error("heatmap failed", "error", err)
		os.Exit(1)
	}
	slog.Info("heatmap done",
		"took", time.Since(start),
		"reached", humanize.Comma(int64(st.Reached)),
		"unreachable", humanize.Comma(int64(st.Unreachable)),
		"enqueued", humanize.Comma(int64(st.Enqueued)),
		"max_distance", st.MaxDistance)

	if int(src.Width) <= *printLimitFlag {
		fmt.Println("input grid:")
		fmt.Println(src)
		fmt.Println("output heatmap:")
		fmt.Println(field)
	}
}

func buildTerrain(mode string, w, h int32) (*grid.Grid, error) {
	switch mode {
	case "open":
		return grid.New(w, h)
	case "band":
		return terrain.HorizontalBand(w, h, h/2, w-1)
	case "potholes":
		return terrain.Potholes(w, h, *seedFlag, *densityFlag)
	case "caves":
		cfg := terrain.DefaultGenConfig()
		cfg.Width, cfg.Height, cfg.Seed = w, h, *seedFlag
		return terrain.Generate(cfg)
	case "maze":
		return terrain.FromASCII(demoMaze, '+')
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// parseGoals reads "x,y;x,y" into points.
func parseGoals(s string) ([]grid.Point, error) {
	var goals []grid.Point
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xs, ys, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("goal %q: want x,y", part)
		}
		x, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("goal %q: %w", part, err)
		}
		y, err := strconv.ParseInt(strings.TrimSpace(ys), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("goal %q: %w", part, err)
		}
		goals = append(goals, grid.Point{X: int32(x), Y: int32(y)})
	}
	return goals, nil
}
