// Package water implements a grid-based cellular-automaton model of shallow
// water flowing over terrain. Reads during a step use the pre-step water
// field and writes are buffered in a flow accumulator, so cell-processing
// order does not affect the result.
package water

import (
	"math"

	"hydrogrid/internal/core"
	"hydrogrid/internal/physics"
)

// World stores the authoritative hydrological state: the immutable elevation
// field, the mutable water column heights and the per-step flow accumulator.
type World struct {
	cfg Config

	w, h     int
	cellSize float64

	elevation []float32
	water     []float32
	flow      []float32
	display   []uint8

	raining bool

	// Per-step rates in meters, derived from the SI params.
	rainPerStep  float64
	evapPerStep  float64
	infilPerStep float64
	flowRate     float64
	minFlow      float64
}

// New returns a water simulation with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a water world configured from the provided options.
func NewWithConfig(cfg Config) *World {
	total := cfg.Width * cfg.Height
	if total < 0 {
		total = 0
	}
	w := &World{
		cfg:      cfg,
		w:        cfg.Width,
		h:        cfg.Height,
		cellSize: cfg.CellSizeM,
		water:    make([]float32, total),
		flow:     make([]float32, total),
		display:  make([]uint8, total),
		minFlow:  cfg.Params.MinFlowThreshold,
	}
	if w.minFlow <= 0 {
		w.minFlow = physics.MinFlowThreshold
	}
	w.flowRate = physics.ClampFlowRate(cfg.Params.FlowRate)
	w.rainPerStep = physics.MMPerHourToMPerStep(physics.ClampRate(cfg.Params.RainMMPerHour), physics.SimulationIntervalMS)
	w.evapPerStep = physics.MMPerHourToMPerStep(physics.ClampRate(cfg.Params.EvaporationMMPerHour), physics.SimulationIntervalMS)
	w.infilPerStep = physics.MMPerHourToMPerStep(physics.ClampRate(cfg.Params.InfiltrationMMPerHour), physics.SimulationIntervalMS)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "water" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Water exposes the active water column heights in meters.
func (w *World) Water() []float32 { return w.water }

// Elevation exposes the terrain heights in meters.
func (w *World) Elevation() []float32 { return w.elevation }

// CellSizeM reports the grid spacing in meters.
func (w *World) CellSizeM() float64 { return w.cellSize }

// SetElevation installs a terrain field, taking ownership of the buffer.
// It reports false and leaves the world untouched on a dimension mismatch.
func (w *World) SetElevation(elev []float32) bool {
	if len(elev) != w.w*w.h {
		return false
	}
	w.elevation = elev
	return true
}

// SetCellSize updates the grid spacing in meters.
func (w *World) SetCellSize(m float64) {
	if m > 0 {
		w.cellSize = m
	}
}

// SetRaining toggles per-step rainfall.
func (w *World) SetRaining(raining bool) { w.raining = raining }

// Raining reports whether rainfall is applied each step.
func (w *World) Raining() bool { return w.raining }

// SetStepRates installs per-step rates already converted to meters per step.
// Negative rates are clamped to zero; the flow rate is bounded to its valid
// range.
func (w *World) SetStepRates(rainM, evapM, infilM, flowRate float64) {
	w.rainPerStep = clampNonNegative(rainM)
	w.evapPerStep = clampNonNegative(evapM)
	w.infilPerStep = clampNonNegative(infilM)
	w.flowRate = physics.ClampFlowRate(flowRate)
}

func clampNonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// Reset zero-fills the water and accumulator fields. The seed parameter is
// part of the core.Sim contract; the water world is fully deterministic.
func (w *World) Reset(_ int64) {
	for i := range w.water {
		w.water[i] = 0
	}
	for i := range w.flow {
		w.flow[i] = 0
	}
	w.rebuildDisplay()
}

// WaterSnapshot returns a freshly allocated copy of the water field.
func (w *World) WaterSnapshot() []float32 {
	out := make([]float32, len(w.water))
	copy(out, w.water)
	return out
}

// TotalWater sums the water column heights across the grid.
func (w *World) TotalWater() float64 {
	total := 0.0
	for _, v := range w.water {
		total += float64(v)
	}
	return total
}

// WaterRange reports the [min, max] water heights, for colour-mapping.
func (w *World) WaterRange() (float32, float32) {
	if len(w.water) == 0 {
		return 0, 0
	}
	min, max := w.water[0], w.water[0]
	for _, v := range w.water[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Step advances the simulation by one tick: rain, flow, evaporation and
// infiltration, in that order.
func (w *World) Step() {
	if w.w == 0 || w.h == 0 || len(w.elevation) != w.w*w.h {
		return
	}

	if w.raining && w.rainPerStep > 0 {
		rain := float32(w.rainPerStep)
		for i := range w.water {
			w.water[i] += rain
		}
	}

	w.stepFlow()

	if w.evapPerStep > 0 {
		subtractClamped(w.water, float32(w.evapPerStep))
	}
	if w.infilPerStep > 0 {
		subtractClamped(w.water, float32(w.infilPerStep))
	}

	w.rebuildDisplay()
}

// stepFlow moves water downhill into the flow accumulator and merges the
// accumulator back at the end. Boundary cells additionally drain off-grid
// toward a virtual neighbor at height zero.
func (w *World) stepFlow() {
	width, height := w.w, w.h
	for i := range w.flow {
		w.flow[i] = 0
	}

	minFlow := w.minFlow
	var neighborIdx [4]int
	var neighborDiff [4]float64

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			surface := float64(w.water[i])
			if surface <= minFlow {
				continue
			}
			elev := float64(w.elevation[i])
			if math.IsNaN(elev) {
				continue
			}
			myTotal := elev + surface

			count := 0
			totalDiff := 0.0
			maxDiff := 0.0

			for d := 0; d < 4; d++ {
				nx, ny := x, y
				switch d {
				case 0:
					nx--
				case 1:
					nx++
				case 2:
					ny--
				case 3:
					ny++
				}
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				ne := float64(w.elevation[j])
				if math.IsNaN(ne) {
					// No-data neighbors are neither sources nor
					// sinks.
					continue
				}
				diff := myTotal - (ne + float64(w.water[j]))
				if diff > minFlow {
					neighborIdx[count] = j
					neighborDiff[count] = diff
					count++
					totalDiff += diff
					if diff > maxDiff {
						maxDiff = diff
					}
				}
			}

			// Boundary cells see a virtual off-grid neighbor at sea
			// level (height 0). It takes part in the slope
			// comparison and its share of the outflow is lost.
			if x == 0 || x == width-1 || y == 0 || y == height-1 {
				totalDiff += myTotal
				if myTotal > maxDiff {
					maxDiff = myTotal
				}
			}

			if totalDiff <= 0 {
				continue
			}

			rate := physics.FlowRateForSlope(maxDiff, w.cellSize, w.flowRate)
			outflow := surface * rate
			for k := 0; k < count; k++ {
				w.flow[neighborIdx[k]] += float32(outflow * neighborDiff[k] / totalDiff)
			}
			w.water[i] = float32(surface - outflow)
		}
	}

	for i := range w.water {
		w.water[i] += w.flow[i]
	}
}

func subtractClamped(cells []float32, amount float32) {
	for i, v := range cells {
		if v <= 0 {
			continue
		}
		v -= amount
		if v < 0 {
			v = 0
		}
		cells[i] = v
	}
}

func init() {
	core.Register("water", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
