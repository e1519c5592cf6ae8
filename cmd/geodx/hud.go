package main

import (
	"fmt"
	"time"

	"github.com/taigrr/geodx/pkg/render"
	"github.com/taigrr/geodx/pkg/scene"
)

// HUD renders an overlay with mesh info and frame statistics.
type HUD struct {
	name      string
	polyCount int
	vertCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD(name string, polyCount, vertCount int) *HUD {
	return &HUD{
		name:      name,
		polyCount: polyCount,
		vertCount: vertCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal.
func (h *HUD) Render(width, height int, show bool, st render.Stats, s *scene.Scene, r *render.Rasterizer) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !show {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: mesh name
	titleCol := max((width-len(h.name)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.name, reset)

	// Top right: sizes
	sizes := fmt.Sprintf(" %d tris %d verts ", h.polyCount, h.vertCount)
	fmt.Printf("%s%s%s%s%s", moveTo(1, max(width-len(sizes), 1)), bgBlack, fgCyan, sizes, reset)

	// Bottom: frame stats and modes
	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	ctl := s.Controller
	status := fmt.Sprintf(" %s | dist %.0f | drawn %d culled %d clipped %d | %s Wireframe %s Flat ",
		ctl.Settings().Scheme, s.Camera.Distance(),
		st.Emitted, st.Culled, st.Clipped,
		check(r.Wireframe), check(r.Shading == render.ShadeFlat))
	fmt.Printf("%s%s%s%s%s", moveTo(height, 1), bgBlack, fgWhite, status, reset)
}
