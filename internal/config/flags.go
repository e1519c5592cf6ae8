package config

import "flag"

// Flags are the command-line overrides. Only flags that were set on the
// command line replace file values.
type Flags struct {
	fs *flag.FlagSet

	Config       string
	Debug        bool
	LogFile      string
	Seed         uint
	Subdivisions int
	Scheme       string
	Shading      string
	FPS          int
	Wireframe    bool
	Smoothing    bool
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Write logs to this file")
	fs.UintVar(&f.Seed, "seed", 0, "Terrain noise seed")
	fs.IntVar(&f.Subdivisions, "subdivisions", 0, "Icosphere subdivision level")
	fs.StringVar(&f.Scheme, "scheme", "", "Control scheme: drag or orbit")
	fs.StringVar(&f.Shading, "shading", "", "Triangle shading: smooth or flat")
	fs.IntVar(&f.FPS, "fps", 0, "Target frames per second")
	fs.BoolVar(&f.Wireframe, "wireframe", false, "Outline triangle edges")
	fs.BoolVar(&f.Smoothing, "smooth-zoom", true, "Ease zoom changes")
	return f
}

// apply copies explicitly set flags onto cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil || f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.Debug {
				cfg.Logging.Level = "debug"
			}
		case "log":
			cfg.Logging.LogFile = f.LogFile
		case "seed":
			cfg.Mesh.Seed = uint32(f.Seed)
		case "subdivisions":
			cfg.Mesh.Subdivisions = f.Subdivisions
		case "scheme":
			cfg.Controls.Scheme = f.Scheme
		case "shading":
			cfg.Render.Shading = f.Shading
		case "fps":
			cfg.Render.FPS = f.FPS
		case "wireframe":
			cfg.Render.Wireframe = f.Wireframe
		case "smooth-zoom":
			cfg.Controls.Smoothing = f.Smoothing
		}
	})
}
