//go:build ebiten

package app

import (
	"fmt"
	"strings"

	"hydrogrid/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawHUD prints the simulation mode and the adjustable rates. Tab cycles the
// selected control, arrow keys adjust it.
func drawHUD(screen *ebiten.Image, coord *engine.Coordinator, selected int) {
	var b strings.Builder

	state := "idle"
	if coord.Running() {
		state = "running"
	}
	if coord.Raining() {
		state += " + rain"
	}
	fmt.Fprintf(&b, "[%s]  space: flow  r: rain  z: reset  q: quit\n", state)

	for i, ctl := range coord.ParameterControls() {
		marker := "  "
		if i == selected {
			marker = "> "
		}
		value, _ := coord.FloatParameter(ctl.Key)
		fmt.Fprintf(&b, "%s%s: %.2f\n", marker, ctl.Label, value)
	}

	_, max := coord.WaterRange()
	fmt.Fprintf(&b, "  peak depth: %.4f m\n", max)

	ebitenutil.DebugPrint(screen, b.String())
}
