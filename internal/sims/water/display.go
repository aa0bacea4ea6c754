package water

import "image/color"

const (
	// displayShades is the number of water-depth shades in the palette.
	displayShades = 32

	// displayFullDepthM is the depth at which the deepest shade is used.
	displayFullDepthM = 0.25
)

var waterPalette = buildWaterPalette()

// Palette exposes the color palette used for rendering water depth.
func (w *World) Palette() []color.RGBA {
	return waterPalette
}

func buildWaterPalette() []color.RGBA {
	palette := make([]color.RGBA, displayShades)
	for i := range palette {
		t := float64(i) / float64(displayShades-1)
		palette[i] = color.RGBA{
			R: uint8(40 * (1 - t)),
			G: uint8(90 + 40*(1-t)),
			B: uint8(160 + 95*t),
			A: uint8(255 * t),
		}
	}
	palette[0] = color.RGBA{}
	return palette
}

func encodeDisplayValue(depth float32) uint8 {
	if depth <= 0 {
		return 0
	}
	shade := int(float64(depth) / displayFullDepthM * float64(displayShades-1))
	if shade < 1 {
		shade = 1
	}
	if shade > displayShades-1 {
		shade = displayShades - 1
	}
	return uint8(shade)
}

func (w *World) rebuildDisplay() {
	for i, depth := range w.water {
		w.display[i] = encodeDisplayValue(depth)
	}
}
