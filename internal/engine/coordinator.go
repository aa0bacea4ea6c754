package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"hydrogrid/internal/core"
	"hydrogrid/internal/physics"
	"hydrogrid/internal/terrain"
)

// ErrNoTerrain is returned when elevation data has not been provided yet.
var ErrNoTerrain = errors.New("engine: no terrain loaded")

var (
	_ core.ParameterControlsProvider = (*Coordinator)(nil)
	_ core.FloatParameterSetter      = (*Coordinator)(nil)
	_ core.FloatParameterGetter      = (*Coordinator)(nil)
)

// Coordinator is the main-thread facade over the worker. It owns the
// user-facing SI parameters, lazily creates the worker, ships resampled
// elevation data and republishes the latest water grid for rendering.
//
// A nil *Coordinator is inert: every method is a safe no-op, so callers can
// degrade gracefully when the simulation is unavailable.
type Coordinator struct {
	mu sync.Mutex

	worker   *Worker
	interval time.Duration
	pumpDone chan struct{}

	field *terrain.Field
	ready bool

	running bool
	raining bool

	rainMMPerHour  float64
	evapMMPerHour  float64
	infilMMPerHour float64
	flowRate       float64

	latest []float32
	gridW  int
	gridH  int
}

// NewCoordinator returns a coordinator with default rates. The worker is not
// created until the first operation that needs it.
func NewCoordinator() *Coordinator {
	return NewCoordinatorWithInterval(physics.SimulationIntervalMS * time.Millisecond)
}

// NewCoordinatorWithInterval overrides the worker tick interval, mainly for
// tests and accelerated sweeps.
func NewCoordinatorWithInterval(interval time.Duration) *Coordinator {
	return &Coordinator{
		interval:       interval,
		rainMMPerHour:  20,
		evapMMPerHour:  2,
		infilMMPerHour: 5,
		flowRate:       physics.BaseFlowRate,
	}
}

// ensureWorker lazily creates the worker and its event pump. Callers must
// hold c.mu.
func (c *Coordinator) ensureWorker() *Worker {
	if c.worker != nil {
		return c.worker
	}
	c.worker = NewWorkerWithInterval(c.interval)
	c.pumpDone = make(chan struct{})
	go c.pump(c.worker, c.pumpDone)
	return c.worker
}

// pump consumes worker events and keeps the latest water snapshot available
// for the rendering side. A stale water-update arriving after stop simply
// overwrites the previous snapshot.
func (c *Coordinator) pump(w *Worker, done chan struct{}) {
	defer close(done)
	for ev := range w.Events() {
		switch ev := ev.(type) {
		case LoadedEvent:
			// Nothing to do: init is shipped eagerly and queues
			// behind nothing.
		case ReadyEvent:
			c.mu.Lock()
			c.ready = true
			c.mu.Unlock()
		case WaterUpdateEvent:
			c.mu.Lock()
			c.latest = ev.Grid
			c.gridW = ev.Width
			c.gridH = ev.Height
			c.mu.Unlock()
		default:
			log.Printf("engine: unknown event %T ignored", ev)
		}
	}
}

// SendElevationData resamples the terrain collaborator's elevation field to
// the simulation resolution and ships it to the worker. It fully replaces any
// previous simulation state.
func (c *Coordinator) SendElevationData(f *terrain.Field) error {
	if c == nil {
		return ErrNoTerrain
	}
	if f == nil || len(f.Elevation) == 0 {
		return ErrNoTerrain
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.field = f
	c.ready = false

	w, h := terrain.CalcGridDimensions(f.Bounds, f.ResolutionCM)
	elev := terrain.Resample(f.Elevation, f.Width, f.Height, w, h)

	worker := c.ensureWorker()
	worker.Send(InitRequest{Elevation: elev, Width: w, Height: h, CellSizeM: f.CellSizeM()})

	// Parameters do not survive an init; re-send the current set.
	worker.Send(c.paramsRequestLocked())
	if c.raining {
		worker.Send(StartRainRequest{})
	}
	return nil
}

func (c *Coordinator) paramsRequestLocked() SetParamsRequest {
	return SetParamsRequest{
		RainPerStep:         physics.MMPerHourToMPerStep(c.rainMMPerHour, physics.SimulationIntervalMS),
		EvaporationPerStep:  physics.MMPerHourToMPerStep(c.evapMMPerHour, physics.SimulationIntervalMS),
		InfiltrationPerStep: physics.MMPerHourToMPerStep(c.infilMMPerHour, physics.SimulationIntervalMS),
		FlowRate:            c.flowRate,
	}
}

func (c *Coordinator) pushParams() {
	if c.worker != nil {
		c.worker.Send(c.paramsRequestLocked())
	}
}

// Start begins the simulation loop. If the worker has not acknowledged the
// current terrain yet, the elevation data is (re)sent first; the FIFO request
// order guarantees init is processed before start.
func (c *Coordinator) Start() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked()
}

func (c *Coordinator) startLocked() {
	if c.field == nil {
		log.Printf("engine: start requested with no terrain loaded")
		return
	}
	worker := c.ensureWorker()
	if !c.ready {
		w, h := terrain.CalcGridDimensions(c.field.Bounds, c.field.ResolutionCM)
		elev := terrain.Resample(c.field.Elevation, c.field.Width, c.field.Height, w, h)
		worker.Send(InitRequest{Elevation: elev, Width: w, Height: h, CellSizeM: c.field.CellSizeM()})
		worker.Send(c.paramsRequestLocked())
		if c.raining {
			worker.Send(StartRainRequest{})
		}
	}
	worker.Send(StartRequest{})
	c.running = true
}

// Stop halts the simulation loop. An in-flight tick may still deliver one
// more water update.
func (c *Coordinator) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.worker != nil {
		c.worker.Send(StopRequest{})
	}
	c.running = false
}

// StartRain enables rainfall; starting rain also starts the flow loop.
func (c *Coordinator) StartRain() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raining = true
	c.startLocked()
	if c.worker != nil {
		c.worker.Send(StartRainRequest{})
	}
}

// StopRain disables rainfall without stopping the flow loop.
func (c *Coordinator) StopRain() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raining = false
	if c.worker != nil {
		c.worker.Send(StopRainRequest{})
	}
}

// Reset zero-fills the water grid. It is safe in any mode and does not
// change the running or raining flags.
func (c *Coordinator) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.worker != nil {
		c.worker.Send(ResetRequest{})
	}
}

// SetRainRate sets the rainfall rate in mm/hour. Negative values clamp to 0.
func (c *Coordinator) SetRainRate(mmPerHour float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rainMMPerHour = physics.ClampRate(mmPerHour)
	c.pushParams()
}

// SetEvaporationRate sets the evaporation rate in mm/hour.
func (c *Coordinator) SetEvaporationRate(mmPerHour float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evapMMPerHour = physics.ClampRate(mmPerHour)
	c.pushParams()
}

// SetInfiltrationRate sets the infiltration rate in mm/hour.
func (c *Coordinator) SetInfiltrationRate(mmPerHour float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infilMMPerHour = physics.ClampRate(mmPerHour)
	c.pushParams()
}

// SetFlowRate sets the base outflow fraction, clamped to its valid range.
func (c *Coordinator) SetFlowRate(rate float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flowRate = physics.ClampFlowRate(rate)
	c.pushParams()
}

// Running reports whether the step loop has been started.
func (c *Coordinator) Running() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Raining reports whether rainfall is enabled.
func (c *Coordinator) Raining() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raining
}

// RainRate returns the rainfall rate in mm/hour.
func (c *Coordinator) RainRate() float64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rainMMPerHour
}

// EvaporationRate returns the evaporation rate in mm/hour.
func (c *Coordinator) EvaporationRate() float64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evapMMPerHour
}

// InfiltrationRate returns the infiltration rate in mm/hour.
func (c *Coordinator) InfiltrationRate() float64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.infilMMPerHour
}

// FlowRate returns the base outflow fraction.
func (c *Coordinator) FlowRate() float64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flowRate
}

// WaterGrid returns the last-received water snapshot and its dimensions. The
// slice is read-only; callers must not mutate it.
func (c *Coordinator) WaterGrid() ([]float32, int, int) {
	if c == nil {
		return nil, 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest, c.gridW, c.gridH
}

// WaterRange reports the [min, max] water heights of the latest snapshot,
// for colour-mapping.
func (c *Coordinator) WaterRange() (float32, float32) {
	grid, _, _ := c.WaterGrid()
	if len(grid) == 0 {
		return 0, 0
	}
	min, max := grid[0], grid[0]
	for _, v := range grid[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Close tears down the worker and waits for the event pump to drain.
func (c *Coordinator) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	worker := c.worker
	done := c.pumpDone
	c.worker = nil
	c.pumpDone = nil
	c.running = false
	c.ready = false
	c.mu.Unlock()

	if worker != nil {
		worker.Close()
		<-done
	}
}

// ParameterControls exposes the HUD-adjustable simulation rates.
func (c *Coordinator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "rain_mm_hr", Label: "Rain (mm/h)", Type: core.ParamTypeFloat, Step: 5, Min: 0, HasMin: true},
		{Key: "evaporation_mm_hr", Label: "Evaporation (mm/h)", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true},
		{Key: "infiltration_mm_hr", Label: "Infiltration (mm/h)", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true},
		{Key: "flow_rate", Label: "Flow rate", Type: core.ParamTypeFloat, Step: 0.05,
			Min: physics.MinUserFlowRate, Max: physics.MaxUserFlowRate, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a rate by HUD key.
func (c *Coordinator) SetFloatParameter(key string, value float64) bool {
	if c == nil {
		return false
	}
	switch key {
	case "rain_mm_hr":
		c.SetRainRate(value)
	case "evaporation_mm_hr":
		c.SetEvaporationRate(value)
	case "infiltration_mm_hr":
		c.SetInfiltrationRate(value)
	case "flow_rate":
		c.SetFlowRate(value)
	default:
		return false
	}
	return true
}

// FloatParameter reports the current value of a rate by HUD key.
func (c *Coordinator) FloatParameter(key string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	switch key {
	case "rain_mm_hr":
		return c.RainRate(), true
	case "evaporation_mm_hr":
		return c.EvaporationRate(), true
	case "infiltration_mm_hr":
		return c.InfiltrationRate(), true
	case "flow_rate":
		return c.FlowRate(), true
	}
	return 0, false
}
