package terrain

import "github.com/aquilax/go-perlin"

const (
	synthAlpha   = 2.0
	synthBeta    = 2.0
	synthOctaves = 3
)

// Synthetic builds a Perlin-noise elevation field for demos and headless
// sweeps, standing in for the terrain collaborator. relief is the peak-to-sea
// height span in meters.
func Synthetic(w, h int, seed int64, relief float64) *Field {
	if w <= 0 {
		w = MinGridSize
	}
	if h <= 0 {
		h = MinGridSize
	}
	p := perlin.NewPerlin(synthAlpha, synthBeta, synthOctaves, seed)

	elev := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Noise2D returns roughly [-1, 1]; shift into [0, relief].
			n := p.Noise2D(float64(x)/float64(w)*3, float64(y)/float64(h)*3)
			if n < -1 {
				n = -1
			} else if n > 1 {
				n = 1
			}
			elev[y*w+x] = float32((n + 1) / 2 * relief)
		}
	}

	return &Field{
		Elevation: elev,
		Width:     w,
		Height:    h,
		Bounds: Bounds{
			MaxX: float64(w) * 100,
			MaxY: float64(h) * 100,
		},
		ResolutionCM: 100,
	}
}
