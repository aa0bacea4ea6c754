// Package terrain sizes the simulation grid from terrain bounds and resamples
// elevation data to the chosen resolution.
package terrain

import "math"

const (
	// MinGridSize is the smallest simulation grid dimension, guarding
	// against degenerate terrains.
	MinGridSize = 10

	// MaxGridSize bounds grid memory and per-step cost for large terrains.
	MaxGridSize = 512
)

// Bounds describes a terrain extent in centimeters.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Field is the elevation data handed over by the terrain collaborator.
// Elevation is row-major in meters; NaN marks cells with no data.
type Field struct {
	Elevation    []float32
	Width        int
	Height       int
	Bounds       Bounds
	ResolutionCM float64
}

// CalcGridDimensions derives the simulation grid size from the terrain bounds
// and the per-cell resolution, clamped to [MinGridSize, MaxGridSize].
func CalcGridDimensions(b Bounds, resolutionCM float64) (int, int) {
	if resolutionCM <= 0 {
		return MinGridSize, MinGridSize
	}
	w := clampDim(int(math.Round((b.MaxX - b.MinX) / resolutionCM)))
	h := clampDim(int(math.Round((b.MaxY - b.MinY) / resolutionCM)))
	return w, h
}

func clampDim(n int) int {
	if n < MinGridSize {
		return MinGridSize
	}
	if n > MaxGridSize {
		return MaxGridSize
	}
	return n
}

// CellSizeM returns the grid spacing in meters for the field's resolution.
func (f *Field) CellSizeM() float64 {
	return f.ResolutionCM / 100
}

// Resample bilinearly maps a src grid of srcW*srcH onto dstW*dstH. When the
// dimensions already match it returns a plain copy so that repeated loads of
// the same terrain do not accumulate smoothing.
func Resample(src []float32, srcW, srcH, dstW, dstH int) []float32 {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 || len(src) < srcW*srcH {
		return make([]float32, maxInt(dstW, 0)*maxInt(dstH, 0))
	}

	if srcW == dstW && srcH == dstH {
		dst := make([]float32, len(src))
		copy(dst, src)
		return dst
	}

	dst := make([]float32, dstW*dstH)
	scaleX := float64(srcW-1) / float64(maxInt(dstW-1, 1))
	scaleY := float64(srcH-1) / float64(maxInt(dstH-1, 1))

	for y := 0; y < dstH; y++ {
		sy := float64(y) * scaleY
		y0 := int(sy)
		if y0 > srcH-1 {
			y0 = srcH - 1
		}
		y1 := minInt(y0+1, srcH-1)
		fy := sy - float64(y0)

		for x := 0; x < dstW; x++ {
			sx := float64(x) * scaleX
			x0 := int(sx)
			if x0 > srcW-1 {
				x0 = srcW - 1
			}
			x1 := minInt(x0+1, srcW-1)
			fx := sx - float64(x0)

			v00 := float64(src[y0*srcW+x0])
			v10 := float64(src[y0*srcW+x1])
			v01 := float64(src[y1*srcW+x0])
			v11 := float64(src[y1*srcW+x1])

			top := v00 + (v10-v00)*fx
			bottom := v01 + (v11-v01)*fx
			dst[y*dstW+x] = float32(top + (bottom-top)*fy)
		}
	}
	return dst
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
