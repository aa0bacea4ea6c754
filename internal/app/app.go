//go:build ebiten

package app

import (
	"hydrogrid/internal/core"
	"hydrogrid/internal/engine"
	"hydrogrid/internal/render"
	"hydrogrid/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// waterFullDepthM is the water depth rendered fully opaque.
const waterFullDepthM = 0.25

// Game adapts the simulation coordinator to the ebiten.Game interface. The
// simulation itself ticks on the worker goroutine; Update only handles input
// and Draw renders the latest republished water grid.
type Game struct {
	coord   *engine.Coordinator
	painter *render.GridPainter

	simW, simH int
	scale      int
	selected   int
}

// New constructs a Game for the provided coordinator and terrain.
func New(coord *engine.Coordinator, field *terrain.Field, scale int) *Game {
	w, h := terrain.CalcGridDimensions(field.Bounds, field.ResolutionCM)
	gp := render.NewGridPainter(w, h)
	gp.SetTerrain(terrain.Resample(field.Elevation, field.Width, field.Height, w, h))
	return &Game{
		coord:   coord,
		painter: gp,
		simW:    w,
		simH:    h,
		scale:   scale,
	}
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.coord.Running() {
			g.coord.Stop()
		} else {
			g.coord.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if g.coord.Raining() {
			g.coord.StopRain()
		} else {
			g.coord.StartRain()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.coord.Reset()
	}

	controls := g.coord.ParameterControls()
	if len(controls) > 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			g.selected = (g.selected + 1) % len(controls)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
			g.adjust(controls[g.selected], 1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
			g.adjust(controls[g.selected], -1)
		}
	}
	return nil
}

func (g *Game) adjust(ctl core.ParameterControl, dir float64) {
	cur, ok := g.coord.FloatParameter(ctl.Key)
	if !ok {
		return
	}
	next := cur + dir*ctl.Step
	if ctl.HasMin && next < ctl.Min {
		next = ctl.Min
	}
	if ctl.HasMax && next > ctl.Max {
		next = ctl.Max
	}
	g.coord.SetFloatParameter(ctl.Key, next)
}

// Draw renders the terrain underlay, the latest water grid and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	water, _, _ := g.coord.WaterGrid()
	g.painter.Blit(screen, water, waterFullDepthM, g.scale)
	drawHUD(screen, g.coord, g.selected)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.simW * g.scale, g.simH * g.scale
}
