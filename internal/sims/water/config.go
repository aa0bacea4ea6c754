package water

import (
	"strconv"

	"hydrogrid/internal/physics"
)

// Params holds the tunable rates for the water simulation. The three SI rates
// are expressed in millimeters per hour; FlowRate is the dimensionless base
// outflow fraction and MinFlowThreshold is in meters.
type Params struct {
	RainMMPerHour         float64
	EvaporationMMPerHour  float64
	InfiltrationMMPerHour float64
	FlowRate              float64
	MinFlowThreshold      float64
}

// Config controls the water simulation dimensions and rates.
type Config struct {
	Width  int
	Height int

	// CellSizeM is the grid spacing in meters.
	CellSizeM float64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     256,
		Height:    256,
		CellSizeM: 1.0,
		Params: Params{
			RainMMPerHour:         20,
			EvaporationMMPerHour:  2,
			InfiltrationMMPerHour: 5,
			FlowRate:              physics.BaseFlowRate,
			MinFlowThreshold:      physics.MinFlowThreshold,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["cell_size_m"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.CellSizeM = parsed
		}
	}
	if v, ok := cfg["rain_mm_hr"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.RainMMPerHour = physics.ClampRate(parsed)
		}
	}
	if v, ok := cfg["evaporation_mm_hr"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.EvaporationMMPerHour = physics.ClampRate(parsed)
		}
	}
	if v, ok := cfg["infiltration_mm_hr"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.InfiltrationMMPerHour = physics.ClampRate(parsed)
		}
	}
	if v, ok := cfg["flow_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.FlowRate = physics.ClampFlowRate(parsed)
		}
	}
	if v, ok := cfg["min_flow_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.MinFlowThreshold = parsed
		}
	}
	return c
}
