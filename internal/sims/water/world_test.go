package water

import (
	"math"
	"testing"

	"hydrogrid/internal/physics"
)

func newQuietWorld(t *testing.T, w, h int, elev []float32) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.CellSizeM = 1
	cfg.Params.RainMMPerHour = 0
	cfg.Params.EvaporationMMPerHour = 0
	cfg.Params.InfiltrationMMPerHour = 0
	world := NewWithConfig(cfg)
	if elev != nil && !world.SetElevation(elev) {
		t.Fatalf("SetElevation rejected %dx%d buffer of len %d", w, h, len(elev))
	}
	return world
}

func TestSingleHighCellSpreadsEvenly(t *testing.T) {
	world := newQuietWorld(t, 3, 3, make([]float32, 9))
	world.Water()[4] = 1.0

	world.Step()

	water := world.Water()
	if water[4] >= 1.0 {
		t.Fatalf("center water did not decrease: %v", water[4])
	}

	// Flat terrain, equal diffs: rate = 0.25*(1+sqrt(1)) = 0.5, so the
	// center loses 0.5 and each orthogonal neighbor receives a quarter.
	if math.Abs(float64(water[4])-0.5) > 1e-6 {
		t.Fatalf("center water = %v, want 0.5", water[4])
	}
	for _, idx := range []int{1, 3, 5, 7} {
		if math.Abs(float64(water[idx])-0.125) > 1e-6 {
			t.Fatalf("neighbor %d water = %v, want 0.125", idx, water[idx])
		}
	}
	for _, idx := range []int{0, 2, 6, 8} {
		if water[idx] != 0 {
			t.Fatalf("diagonal %d received water: %v", idx, water[idx])
		}
	}
}

func TestNoFlowUphill(t *testing.T) {
	elev := make([]float32, 9)
	elev[5] = 5.0 // wall east of the center
	world := newQuietWorld(t, 3, 3, elev)
	world.Water()[4] = 1.0

	for i := 0; i < 10; i++ {
		world.Step()
		if world.Water()[5] != 0 {
			t.Fatalf("step %d: uphill cell received water: %v", i, world.Water()[5])
		}
	}
}

func TestWaterNeverNegative(t *testing.T) {
	elev := []float32{
		3, 1, 4, 1,
		5, 0, 2, 6,
		2, 7, 1, 3,
		0, 2, 3, 1,
	}
	cfg := DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	cfg.CellSizeM = 1
	cfg.Params.RainMMPerHour = 500
	cfg.Params.EvaporationMMPerHour = 40
	cfg.Params.InfiltrationMMPerHour = 60
	world := NewWithConfig(cfg)
	if !world.SetElevation(elev) {
		t.Fatal("SetElevation rejected buffer")
	}

	world.SetRaining(true)
	for i := 0; i < 200; i++ {
		if i == 100 {
			world.SetRaining(false)
		}
		world.Step()
		for idx, v := range world.Water() {
			if v < 0 || math.IsNaN(float64(v)) {
				t.Fatalf("step %d cell %d: invalid water %v", i, idx, v)
			}
		}
	}
}

func TestMassNonIncreasingWithoutRain(t *testing.T) {
	world := newQuietWorld(t, 8, 8, make([]float32, 64))
	water := world.Water()
	for i := range water {
		water[i] = float32(i%5) * 0.01
	}

	prev := world.TotalWater()
	for i := 0; i < 100; i++ {
		world.Step()
		total := world.TotalWater()
		if total > prev+1e-6 {
			t.Fatalf("step %d: total water grew %v -> %v", i, prev, total)
		}
		prev = total
	}
}

func TestEdgeDrainSingleCell(t *testing.T) {
	world := newQuietWorld(t, 1, 1, []float32{0})
	world.Water()[0] = 1.0

	prev := float64(world.Water()[0])
	steps := 0
	for prev > physics.MinFlowThreshold {
		world.Step()
		v := float64(world.Water()[0])
		if math.IsNaN(v) || v < 0 {
			t.Fatalf("step %d: invalid water %v", steps, v)
		}
		if v >= prev {
			t.Fatalf("step %d: water did not drain: %v -> %v", steps, prev, v)
		}
		prev = v
		steps++
		if steps > 500 {
			t.Fatalf("water failed to drain below threshold, still %v", prev)
		}
	}
}

func TestRainAddsUniformly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 2
	cfg.Height = 2
	cfg.Params.RainMMPerHour = 72 // 1e-6 m per 50 ms step
	cfg.Params.EvaporationMMPerHour = 0
	cfg.Params.InfiltrationMMPerHour = 0
	world := NewWithConfig(cfg)
	world.SetElevation(make([]float32, 4))
	world.SetRaining(true)

	world.Step()
	for idx, v := range world.Water() {
		if v <= 0 {
			t.Fatalf("cell %d received no rain: %v", idx, v)
		}
	}
}

func TestNoDataCellsAreExcluded(t *testing.T) {
	nan := float32(math.NaN())
	elev := make([]float32, 9)
	elev[5] = nan
	world := newQuietWorld(t, 3, 3, elev)
	world.Water()[4] = 1.0
	world.Water()[5] = 2.0

	for i := 0; i < 20; i++ {
		world.Step()
	}

	if world.Water()[5] != 2.0 {
		t.Fatalf("no-data cell water changed: %v", world.Water()[5])
	}
	for idx, v := range world.Water() {
		if math.IsNaN(float64(v)) {
			t.Fatalf("cell %d became NaN", idx)
		}
	}
}

func TestZeroSizeWorldStepIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.Height = 0
	world := NewWithConfig(cfg)
	world.SetRaining(true)

	for i := 0; i < 5; i++ {
		world.Step()
	}
	world.Reset(0)

	if len(world.Water()) != 0 {
		t.Fatalf("zero-size world allocated %d water cells", len(world.Water()))
	}
	if world.TotalWater() != 0 {
		t.Fatalf("zero-size world accumulated water: %v", world.TotalWater())
	}
}

func TestNegativeDimensionWorldStepIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = -3
	cfg.Height = 4
	world := NewWithConfig(cfg)
	if world.SetElevation(make([]float32, 12)) {
		t.Fatal("SetElevation accepted a buffer for negative dimensions")
	}
	world.SetRaining(true)

	for i := 0; i < 5; i++ {
		world.Step()
	}
	world.Reset(0)

	if world.TotalWater() != 0 {
		t.Fatalf("negative-dimension world accumulated water: %v", world.TotalWater())
	}
}

func TestStepWithoutElevationIsNoOp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 3
	cfg.Height = 3
	world := NewWithConfig(cfg)
	world.Water()[0] = 1.0
	world.SetRaining(true)

	world.Step()

	if world.Water()[0] != 1.0 {
		t.Fatalf("step without elevation mutated water: %v", world.Water()[0])
	}
}

func TestResetZeroFills(t *testing.T) {
	world := newQuietWorld(t, 2, 2, make([]float32, 4))
	for i := range world.Water() {
		world.Water()[i] = 0.5
	}
	world.Reset(0)
	for idx, v := range world.Water() {
		if v != 0 {
			t.Fatalf("cell %d not cleared: %v", idx, v)
		}
	}
}

func TestNegativeStepRatesClamped(t *testing.T) {
	world := newQuietWorld(t, 2, 2, make([]float32, 4))
	world.SetStepRates(-1, -1, -1, -3)
	world.Water()[0] = 0.01
	world.SetRaining(true)

	world.Step()

	for idx, v := range world.Water() {
		if v < 0 || math.IsNaN(float64(v)) {
			t.Fatalf("cell %d invalid after clamped rates: %v", idx, v)
		}
	}
}
