package render

import "math"

// fillTerrainRGBA shades elevation values as a brown-green hypsometric ramp
// between lo and hi. No-data cells (NaN) render as neutral gray.
func fillTerrainRGBA(buf []byte, elev []float32, lo, hi float32) {
	span := float64(hi - lo)
	if span <= 0 {
		span = 1
	}
	for i, e := range elev {
		base := i * 4
		if math.IsNaN(float64(e)) {
			buf[base+0] = 120
			buf[base+1] = 120
			buf[base+2] = 120
			buf[base+3] = 255
			continue
		}
		t := float64(e-lo) / span
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		buf[base+0] = uint8(70 + 110*t)
		buf[base+1] = uint8(110 + 60*t)
		buf[base+2] = uint8(50 + 90*t)
		buf[base+3] = 255
	}
}

// overlayWaterRGBA blends water depth over terrain pixels already in buf.
// fullDepth is the depth rendered fully opaque.
func overlayWaterRGBA(buf []byte, water []float32, fullDepth float32) {
	if fullDepth <= 0 {
		fullDepth = 1
	}
	for i, depth := range water {
		if depth <= 0 {
			continue
		}
		a := float64(depth / fullDepth)
		if a > 1 {
			a = 1
		}
		base := i * 4
		inv := 1 - a
		buf[base+0] = uint8(float64(buf[base+0])*inv + 30*a)
		buf[base+1] = uint8(float64(buf[base+1])*inv + 110*a)
		buf[base+2] = uint8(float64(buf[base+2])*inv + 220*a)
	}
}
