package engine

import (
	"log"
	"sync"
	"time"

	"hydrogrid/internal/physics"
	"hydrogrid/internal/sims/water"
)

// Worker owns the simulation buffers and executes one step per tick on its
// own goroutine. All interaction happens through Send and Events; the buffers
// are never shared.
type Worker struct {
	requests chan Request
	events   chan Event
	interval time.Duration

	quit      chan struct{}
	closeOnce sync.Once
}

// NewWorker starts a worker ticking at the standard simulation interval.
func NewWorker() *Worker {
	return NewWorkerWithInterval(physics.SimulationIntervalMS * time.Millisecond)
}

// NewWorkerWithInterval starts a worker with a custom tick interval. Step
// rates are still scaled by the standard interval, so a shorter tick only
// compresses wall-clock time.
func NewWorkerWithInterval(interval time.Duration) *Worker {
	if interval <= 0 {
		interval = physics.SimulationIntervalMS * time.Millisecond
	}
	w := &Worker{
		requests: make(chan Request, 64),
		events:   make(chan Event, 8),
		interval: interval,
		quit:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Send enqueues a request for the worker. It never blocks after Close.
func (w *Worker) Send(req Request) {
	select {
	case w.requests <- req:
	case <-w.quit:
	}
}

// Events exposes the worker's outbound event stream. The channel is closed
// when the worker shuts down.
func (w *Worker) Events() <-chan Event { return w.events }

// Close tears the worker down. Buffers are released with the goroutine.
func (w *Worker) Close() {
	w.closeOnce.Do(func() { close(w.quit) })
}

func (w *Worker) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.quit:
	}
}

func (w *Worker) run() {
	defer close(w.events)

	var (
		world   *water.World
		ticker  *time.Ticker
		tickC   <-chan time.Time
		raining bool
		running bool
	)

	stopTicking := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
		running = false
	}
	defer stopTicking()

	w.emit(LoadedEvent{})

	for {
		select {
		case <-w.quit:
			return

		case req := <-w.requests:
			switch m := req.(type) {
			case InitRequest:
				world = water.New(m.Width, m.Height)
				world.SetCellSize(m.CellSizeM)
				if !world.SetElevation(m.Elevation) {
					log.Printf("engine: init with %dx%d grid but %d elevation cells; step loop will idle",
						m.Width, m.Height, len(m.Elevation))
				}
				world.SetRaining(raining)
				w.emit(ReadyEvent{})

			case StartRequest:
				if world == nil {
					log.Printf("engine: start before init ignored")
					break
				}
				if !running {
					ticker = time.NewTicker(w.interval)
					tickC = ticker.C
					running = true
				}

			case StopRequest:
				stopTicking()

			case StartRainRequest:
				raining = true
				if world != nil {
					world.SetRaining(true)
				}

			case StopRainRequest:
				raining = false
				if world != nil {
					world.SetRaining(false)
				}

			case ResetRequest:
				if world != nil {
					world.Reset(0)
				}

			case SetParamsRequest:
				if world == nil {
					log.Printf("engine: set-params before init ignored")
					break
				}
				world.SetStepRates(m.RainPerStep, m.EvaporationPerStep, m.InfiltrationPerStep, m.FlowRate)

			default:
				log.Printf("engine: unknown request %T ignored", req)
			}

		case <-tickC:
			if world == nil {
				continue
			}
			world.Step()
			size := world.Size()
			w.emit(WaterUpdateEvent{Grid: world.WaterSnapshot(), Width: size.W, Height: size.H})
		}
	}
}
