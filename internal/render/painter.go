//go:build ebiten

package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter composes terrain and water layers into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	base []byte
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{
		w:    w,
		h:    h,
		base: make([]byte, 4*w*h),
		buf:  make([]byte, 4*w*h),
	}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// SetTerrain pre-renders the elevation underlay. Call once per terrain load.
func (gp *GridPainter) SetTerrain(elev []float32) {
	if len(elev) != gp.w*gp.h {
		return
	}
	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, e := range elev {
		if math.IsNaN(float64(e)) {
			continue
		}
		if e < lo {
			lo = e
		}
		if e > hi {
			hi = e
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}
	fillTerrainRGBA(gp.base, elev, lo, hi)
}

// Blit overlays the water grid on the terrain underlay and draws the result.
// fullDepth is the water depth rendered fully opaque.
func (gp *GridPainter) Blit(dst *ebiten.Image, water []float32, fullDepth float32, scale int) {
	copy(gp.buf, gp.base)
	if len(water) == gp.w*gp.h {
		overlayWaterRGBA(gp.buf, water, fullDepth)
	}
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
