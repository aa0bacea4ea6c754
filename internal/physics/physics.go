// Package physics holds the pure unit conversions and the slope-to-flow-rate
// formula used by the water simulation. All functions are stateless.
package physics

import "math"

const (
	// SimulationIntervalMS is the wall-clock spacing between simulation
	// ticks (20 steps per second).
	SimulationIntervalMS = 50

	// BaseFlowRate is the fraction of a cell's water that leaves per step
	// on a flat slope.
	BaseFlowRate = 0.25

	// MaxFlowRate caps the per-step outflow fraction regardless of slope.
	MaxFlowRate = 0.95

	// MinFlowThreshold is the water column height in meters below which a
	// cell is treated as dry for flow purposes.
	MinFlowThreshold = 1e-4

	// MinUserFlowRate and MaxUserFlowRate bound the configurable base
	// flow rate.
	MinUserFlowRate = 0.01
	MaxUserFlowRate = 0.5

	millimetersPerMeter = 1e3
	millisecondsPerHour = 3.6e6
)

// MMPerHourToMPerStep converts a rate in millimeters per hour into meters per
// simulation step of stepMS milliseconds.
func MMPerHourToMPerStep(mmPerHour, stepMS float64) float64 {
	return mmPerHour / millimetersPerMeter * stepMS / millisecondsPerHour
}

// MPerStepToMMPerHour is the inverse of MMPerHourToMPerStep.
func MPerStepToMMPerHour(mPerStep, stepMS float64) float64 {
	if stepMS == 0 {
		return 0
	}
	return mPerStep * millimetersPerMeter * millisecondsPerHour / stepMS
}

// FlowRateForSlope scales the base outflow fraction by the slope between two
// cells, approximating Manning's sqrt(slope) velocity dependence with a single
// multiplicative correction. heightDiff must be non-negative (flow is only
// computed downhill).
func FlowRateForSlope(heightDiff, cellSizeM, baseRate float64) float64 {
	if cellSizeM <= 0 {
		return math.Min(MaxFlowRate, baseRate)
	}
	slope := heightDiff / cellSizeM
	rate := baseRate * (1 + math.Sqrt(slope))
	return math.Min(MaxFlowRate, rate)
}

// ClampRate forces a user-supplied SI rate to be non-negative.
func ClampRate(mmPerHour float64) float64 {
	if mmPerHour < 0 || math.IsNaN(mmPerHour) {
		return 0
	}
	return mmPerHour
}

// ClampFlowRate bounds the configurable base flow rate to its valid range.
func ClampFlowRate(rate float64) float64 {
	if math.IsNaN(rate) || rate < MinUserFlowRate {
		return MinUserFlowRate
	}
	if rate > MaxUserFlowRate {
		return MaxUserFlowRate
	}
	return rate
}
