// geodx - Terminal Planet Viewer
// Builds a noise-coloured icosphere and renders it in the terminal, or
// writes a single frame to an image file.
//
// Controls (drag scheme):
//
//	Mouse drag  - Rotate planet (virtual trackball)
//	Scroll      - Zoom in/out
//	R           - Reset view
//
// Controls (orbit scheme, -scheme orbit):
//
//	Z/S, Up/Down     - Pitch camera
//	Q/D, Left/Right  - Yaw camera
//	A/E              - Roll camera
//	Scroll           - Zoom in/out
//	R                - Reset view
//
// Both schemes:
//
//	X    - Toggle wireframe
//	F    - Toggle flat shading
//	O    - Toggle axes overlay
//	?    - Toggle HUD overlay
//	Esc  - Quit
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/taigrr/geodx/internal/config"
)

var (
	snapshotPath = flag.String("snapshot", "", "Render one frame to this .png or .webp file and exit")
	snapshotSize = flag.String("size", "640x480", "Snapshot size (WIDTHxHEIGHT)")
	spin         = flag.Float64("spin", 0, "Rotate the planet mesh about Y by this many radians before viewing")
	transform    = flag.String("transform", "", "Initial object transform: 12 space-separated row-major values")
	printXform   = flag.Bool("print-transform", false, "Print the object transform after a snapshot")
	followPath   = flag.String("follow", "", "Read object transforms from this file, one per line")
	publishPath  = flag.String("publish", "", "Append the object transform to this file whenever it changes")
	writeConfig  = flag.String("write-config", "", "Write the effective config to this path and exit")
)

func main() {
	cfgFlags := config.RegisterFlags(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "geodx - Terminal Planet Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: geodx [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate planet (drag scheme)\n")
		fmt.Fprintf(os.Stderr, "  Z/S Q/D A/E - Pitch, yaw, roll camera (orbit scheme)\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  F           - Toggle flat shading\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle axes overlay\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	cfg, err := config.Load(cfgFlags.Config, cfgFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *writeConfig != "":
		err = cfg.SaveTo(*writeConfig)
	case *snapshotPath != "":
		err = runSnapshot(cfg, *snapshotPath, *snapshotSize)
	default:
		err = runViewer(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
