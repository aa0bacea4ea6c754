package water

import "testing"

func TestDisplayEncoding(t *testing.T) {
	if got := encodeDisplayValue(0); got != 0 {
		t.Fatalf("dry cell encoded as %d", got)
	}
	if got := encodeDisplayValue(-0.1); got != 0 {
		t.Fatalf("negative depth encoded as %d", got)
	}
	if got := encodeDisplayValue(1e-5); got != 1 {
		t.Fatalf("shallow cell encoded as %d, want faintest shade", got)
	}
	if got := encodeDisplayValue(10); got != displayShades-1 {
		t.Fatalf("deep cell encoded as %d, want deepest shade", got)
	}
}

func TestPaletteCoversAllShades(t *testing.T) {
	world := New(2, 2)
	palette := world.Palette()
	if len(palette) != displayShades {
		t.Fatalf("palette has %d entries, want %d", len(palette), displayShades)
	}
	if palette[0].A != 0 {
		t.Fatalf("dry shade must be transparent, got alpha %d", palette[0].A)
	}
	if palette[displayShades-1].A != 255 {
		t.Fatalf("deepest shade must be opaque, got alpha %d", palette[displayShades-1].A)
	}
}
