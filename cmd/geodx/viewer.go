package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/geodx/internal/config"
	"github.com/taigrr/geodx/internal/logger"
	"github.com/taigrr/geodx/pkg/input"
	"github.com/taigrr/geodx/pkg/render"
	"github.com/taigrr/geodx/pkg/scene"
)

// controlKeys are forwarded to the controller as-is.
var controlKeys = []string{
	input.KeyReset,
	input.KeyPitchUp, input.KeyPitchDown,
	input.KeyYawLeft, input.KeyYawRight,
	input.KeyRollLeft, input.KeyRollRight,
	"up", "down", "left", "right",
}

// ViewState holds UI toggles that live outside the scene.
type ViewState struct {
	ShowHUD bool
	Quit    bool
}

func runViewer(cfg *config.Config) error {
	// The terminal belongs to the viewer; log to file only.
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, nil); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Named("viewer")

	s, err := newScene(cfg, logger.Named("scene"))
	if err != nil {
		return err
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sync files are set up before the terminal so a failure leaves the
	// screen untouched.
	remote, err := follow(ctx, *followPath, log)
	if err != nil {
		return err
	}
	pub, err := newPublisher(*publishPath)
	if err != nil {
		return err
	}
	defer pub.Close()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	fb := render.NewFramebuffer(width, height*2)
	rasterizer, err := newRasterizer(cfg, fb)
	if err != nil {
		cleanup()
		return err
	}
	s.ShowAnchor = true
	hud := NewHUD(s.Mesh.Name, s.Mesh.TriangleCount(), s.Indexed.VertexCount())
	view := &ViewState{}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Terminal events are handed to the frame loop, which owns all state.
	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(cfg.Render.FPS)
	var batch []input.Event

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()

		// Drain everything that arrived since the last frame.
		batch = batch[:0]
	drain:
		for {
			select {
			case ev := <-events:
				if sz, ok := ev.(uv.WindowSizeEvent); ok {
					width, height = sz.Width, sz.Height
					term.Erase()
					term.Resize(width, height)
					log.Debug("resize", zap.Int("cols", width), zap.Int("rows", height))
					continue
				}
				batch = translate(ev, batch, view, s, rasterizer)
			case msg := <-remote:
				s.ApplyRemote(msg)
			default:
				break drain
			}
		}
		if view.Quit {
			cleanup()
			return nil
		}

		frame := s.Tick(batch, scene.Viewport{Width: width, Height: height * 2})
		s.Render(fb, rasterizer)

		if err := pub.Publish(s.EncodeObject()); err != nil {
			log.Warn("publish transform", zap.Error(err))
		}

		fb.Draw(term, term.Bounds())
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, view.ShowHUD, frame.Stats, s, rasterizer)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// translate converts one terminal event into controller events, or
// handles it directly when it is a viewer toggle. Terminal cells map to
// framebuffer pixels at the centre of the cell, two pixel rows per row.
func translate(ev uv.Event, out []input.Event, view *ViewState, s *scene.Scene, r *render.Rasterizer) []input.Event {
	px := func(x, y int) (float64, float64) {
		return float64(x) + 0.5, float64(y*2) + 1
	}

	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
			view.Quit = true
		case ev.MatchString("x"):
			r.Wireframe = !r.Wireframe
		case ev.MatchString("o"):
			s.ShowAxes = !s.ShowAxes
		case ev.MatchString("f"):
			if r.Shading == render.ShadeFlat {
				r.Shading = render.ShadeSmooth
			} else {
				r.Shading = render.ShadeFlat
			}
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			view.ShowHUD = !view.ShowHUD
		default:
			for _, k := range controlKeys {
				if ev.MatchString(k) {
					out = append(out, input.Key(k))
					break
				}
			}
		}

	case uv.MouseClickEvent:
		x, y := px(ev.X, ev.Y)
		e := input.Down(x, y)
		e.Button = mouseButton(ev.Button)
		out = append(out, e)

	case uv.MouseReleaseEvent:
		x, y := px(ev.X, ev.Y)
		e := input.Up(x, y)
		e.Button = mouseButton(ev.Button)
		out = append(out, e)

	case uv.MouseMotionEvent:
		x, y := px(ev.X, ev.Y)
		out = append(out, input.Move(x, y))

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			out = append(out, input.Scroll(1))
		case uv.MouseWheelDown:
			out = append(out, input.Scroll(-1))
		}
	}
	return out
}

func mouseButton(b uv.MouseButton) input.Button {
	switch b {
	case uv.MouseLeft:
		return input.ButtonLeft
	case uv.MouseMiddle:
		return input.ButtonMiddle
	case uv.MouseRight:
		return input.ButtonRight
	}
	return input.ButtonNone
}
