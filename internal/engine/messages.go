// Package engine runs the water simulation on a dedicated goroutine behind a
// small, strict message protocol and exposes the main-thread Coordinator
// facade the UI talks to.
package engine

// Request is the closed set of messages accepted by the Worker. Requests are
// processed in FIFO order by a single consumer.
type Request interface{ isRequest() }

// InitRequest ships a resampled elevation buffer to the worker. The worker
// takes ownership of the slice.
type InitRequest struct {
	Elevation []float32
	Width     int
	Height    int
	CellSizeM float64
}

// StartRequest begins the fixed-interval step loop.
type StartRequest struct{}

// StopRequest halts the step loop; an in-flight tick still completes.
type StopRequest struct{}

// StartRainRequest enables per-step rainfall without touching the run state.
type StartRainRequest struct{}

// StopRainRequest disables per-step rainfall.
type StopRainRequest struct{}

// ResetRequest zero-fills the water grid in any state.
type ResetRequest struct{}

// SetParamsRequest carries rates already converted to meters per step by the
// Coordinator, which owns the SI-to-step conversion.
type SetParamsRequest struct {
	RainPerStep         float64
	EvaporationPerStep  float64
	InfiltrationPerStep float64
	FlowRate            float64
}

func (InitRequest) isRequest()      {}
func (StartRequest) isRequest()     {}
func (StopRequest) isRequest()      {}
func (StartRainRequest) isRequest() {}
func (StopRainRequest) isRequest()  {}
func (ResetRequest) isRequest()     {}
func (SetParamsRequest) isRequest() {}

// Event is the closed set of messages emitted by the Worker. The protocol has
// no error event: failures inside the worker become no-ops.
type Event interface{ isEvent() }

// LoadedEvent signals the worker loop is running and can receive an init.
type LoadedEvent struct{}

// ReadyEvent signals the buffers are allocated and the loop can start.
type ReadyEvent struct{}

// WaterUpdateEvent delivers the post-step water grid. Ownership of the slice
// transfers to the receiver; the worker never touches it again.
type WaterUpdateEvent struct {
	Grid   []float32
	Width  int
	Height int
}

func (LoadedEvent) isEvent()      {}
func (ReadyEvent) isEvent()       {}
func (WaterUpdateEvent) isEvent() {}
