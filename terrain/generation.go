package terrain

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/katalvlaran/heatmap/grid"
)

// GenConfig holds parameters for noise-based cavern generation.
type GenConfig struct {
	Width, Height int32
	Seed          int64   // 0 picks a random seed
	Frequency     float64 // base sampling frequency per cell
	Octaves       int     // noise layers, each at double frequency
	Persistence   float64 // amplitude falloff between octaves
	WallThreshold float64 // normalized noise above this is a wall
}

// DefaultGenConfig returns a 64×64 config that produces connected caverns
// with roughly a third of the cells walled.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:         64,
		Height:        64,
		Frequency:     0.08,
		Octaves:       4,
		Persistence:   0.5,
		WallThreshold: 0.58,
	}
}

// Generate samples multi-octave simplex noise per cell and walls off the
// cells whose value exceeds cfg.WallThreshold.
func Generate(cfg GenConfig) (*grid.Grid, error) {
	if cfg.Octaves < 1 || cfg.Frequency <= 0 || cfg.Persistence <= 0 {
		return nil, fmt.Errorf("%w: octaves=%d frequency=%v persistence=%v",
			ErrConfig, cfg.Octaves, cfg.Frequency, cfg.Persistence)
	}
	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	c := newCavern(opensimplex.NewNormalized(seed), cfg)

	for y := int32(0); y < cfg.Height; y++ {
		for x := int32(0); x < cfg.Width; x++ {
			if c.wallAt(x, y) {
				g.Set(x, y, Wall)
			}
		}
	}
	return g, nil
}

// cavern samples layered noise at cell coordinates. Octave scales and
// weights are fixed per Generate call; the weights sum to 1.
type cavern struct {
	noise     opensimplex.Noise
	scales    []float64
	weights   []float64
	threshold float64
}

func newCavern(noise opensimplex.Noise, cfg GenConfig) *cavern {
	c := &cavern{
		noise:     noise,
		scales:    make([]float64, cfg.Octaves),
		weights:   make([]float64, cfg.Octaves),
		threshold: cfg.WallThreshold,
	}
	scale, w, sum := cfg.Frequency, 1.0, 0.0
	for i := range c.scales {
		c.scales[i], c.weights[i] = scale, w
		sum += w
		scale *= 2
		w *= cfg.Persistence
	}
	for i := range c.weights {
		c.weights[i] /= sum
	}
	return c
}

// level returns the blended noise at (x,y), in [0,1).
func (c *cavern) level(x, y int32) float64 {
	fx, fy := float64(x), float64(y)
	v := 0.0
	for i, s := range c.scales {
		v += c.weights[i] * c.noise.Eval2(fx*s, fy*s)
	}
	return v
}

// wallAt reports whether (x,y) rises above the wall threshold.
func (c *cavern) wallAt(x, y int32) bool {
	return c.level(x, y) > c.threshold
}
