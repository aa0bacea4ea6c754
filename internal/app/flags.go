package app

import "flag"

// Config represents the command-line parameters for the viewer application.
type Config struct {
	Width   int
	Height  int
	Scale   int
	TPS     int
	Seed    int64
	ReliefM float64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 192, Height: 192, Scale: 4, TPS: 60, Seed: 42, ReliefM: 3.0}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "terrain width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "terrain height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "render ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the synthetic terrain")
	fs.Float64Var(&c.ReliefM, "relief", c.ReliefM, "terrain height span in meters")
}
