package terrain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcGridDimensionsClamping(t *testing.T) {
	tiny := Bounds{MaxX: 5, MaxY: 5}
	w, h := CalcGridDimensions(tiny, 100)
	assert.Equal(t, MinGridSize, w)
	assert.Equal(t, MinGridSize, h)

	huge := Bounds{MaxX: 1e9, MaxY: 1e9}
	w, h = CalcGridDimensions(huge, 1)
	assert.Equal(t, MaxGridSize, w)
	assert.Equal(t, MaxGridSize, h)

	w, h = CalcGridDimensions(Bounds{MaxX: 5000, MaxY: 2500}, 100)
	assert.Equal(t, 50, w)
	assert.Equal(t, 25, h)
}

func TestCalcGridDimensionsDegenerateResolution(t *testing.T) {
	w, h := CalcGridDimensions(Bounds{MaxX: 1000, MaxY: 1000}, 0)
	assert.Equal(t, MinGridSize, w)
	assert.Equal(t, MinGridSize, h)
}

func TestResampleIdentity(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5, 6}
	dst := Resample(src, 3, 2, 3, 2)
	require.Equal(t, src, dst)

	// Identity must be a copy, not an alias.
	dst[0] = 99
	assert.EqualValues(t, 1, src[0])
}

func TestResampleUpscale2x2To3x3(t *testing.T) {
	src := []float32{0, 10, 0, 10}
	dst := Resample(src, 2, 2, 3, 3)
	require.Len(t, dst, 9)

	// Corners preserved exactly.
	assert.EqualValues(t, 0, dst[0])
	assert.EqualValues(t, 10, dst[2])
	assert.EqualValues(t, 0, dst[6])
	assert.EqualValues(t, 10, dst[8])

	// Center is the plain average of the four corners.
	assert.InDelta(t, 5.0, float64(dst[4]), 1e-6)
}

func TestResampleEdgeClamp(t *testing.T) {
	src := []float32{1, 2, 3, 4}
	dst := Resample(src, 2, 2, 4, 4)
	require.Len(t, dst, 16)
	// Far edge cells sample themselves rather than reading out of bounds.
	assert.EqualValues(t, 4, dst[15])
	for _, v := range dst {
		assert.False(t, math.IsNaN(float64(v)))
	}
}

func TestResampleNaNPassthrough(t *testing.T) {
	nan := float32(math.NaN())

	// Identity path: the no-data marker survives the copy untouched.
	src := []float32{1, nan, 3, 4}
	dst := Resample(src, 2, 2, 2, 2)
	require.Len(t, dst, 4)
	assert.True(t, math.IsNaN(float64(dst[1])))
	assert.EqualValues(t, 1, dst[0])
	assert.EqualValues(t, 3, dst[2])
	assert.EqualValues(t, 4, dst[3])

	// Interpolation path: a no-data corner stays NaN where it is sampled
	// exactly but does not poison cells whose stencil never touches it.
	src = []float32{
		nan, 1, 2,
		1, 2, 3,
		2, 3, 4,
	}
	dst = Resample(src, 3, 3, 5, 5)
	require.Len(t, dst, 25)
	assert.True(t, math.IsNaN(float64(dst[0])), "no-data corner must survive")
	assert.EqualValues(t, 4, dst[24], "opposite corner must stay exact")
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			v := float64(dst[y*5+x])
			assert.False(t, math.IsNaN(v), "cell (%d,%d) poisoned by distant no-data", x, y)
		}
	}
}

func TestResampleDegenerateInput(t *testing.T) {
	dst := Resample(nil, 0, 0, 3, 3)
	assert.Len(t, dst, 9)
}

func TestSyntheticField(t *testing.T) {
	f := Synthetic(32, 16, 7, 4.0)
	require.Equal(t, 32, f.Width)
	require.Equal(t, 16, f.Height)
	require.Len(t, f.Elevation, 32*16)
	assert.InDelta(t, 1.0, f.CellSizeM(), 1e-9)
	for _, v := range f.Elevation {
		require.False(t, math.IsNaN(float64(v)))
		require.GreaterOrEqual(t, float64(v), 0.0)
		require.LessOrEqual(t, float64(v), 4.0)
	}
}
