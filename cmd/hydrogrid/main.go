//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"hydrogrid/internal/app"
	"hydrogrid/internal/engine"
	"hydrogrid/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	field := terrain.Synthetic(cfg.Width, cfg.Height, cfg.Seed, cfg.ReliefM)

	coord := engine.NewCoordinator()
	defer coord.Close()
	if err := coord.SendElevationData(field); err != nil {
		log.Fatal(err)
	}

	game := app.New(coord, field, cfg.Scale)
	w, h := terrain.CalcGridDimensions(field.Bounds, field.ResolutionCM)

	ebiten.SetWindowTitle("hydrogrid")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
