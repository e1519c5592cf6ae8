// Package scene ties the planet viewer together: one coloured icosphere,
// a camera, the interaction controller and the projection pipeline.
// Frontends feed it input events once per frame and draw what it emits.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/taigrr/geodx/pkg/input"
	"github.com/taigrr/geodx/pkg/models"
	"github.com/taigrr/geodx/pkg/netsync"
	"github.com/taigrr/geodx/pkg/noise"
	"github.com/taigrr/geodx/pkg/render"
)

// ErrInvalidOptions wraps every construction failure from New.
var ErrInvalidOptions = errors.New("invalid scene options")

// Options describes the scene to build.
type Options struct {
	Radius       float64
	Subdivisions int
	Seed         uint32
	WeldEpsilon  float64 // Vertex merge tolerance for the indexed view

	Palette models.Palette
	Fractal noise.Fractal

	FOV      float64
	Distance float64

	Controls   input.Settings
	Background color.RGBA

	Logger *zap.Logger
}

// DefaultOptions returns the stock planet: radius 500 at subdivision 4,
// seed 0, seen from 2000 away.
func DefaultOptions() Options {
	return Options{
		Radius:       500,
		Subdivisions: 4,
		WeldEpsilon:  1e-9,
		Palette:      models.DefaultPalette,
		Fractal:      noise.TerrainOctaves,
		FOV:          render.DefaultFOV,
		Distance:     render.DefaultDistance,
		Controls:     input.DefaultSettings(),
		Background:   render.ColorSpace,
	}
}

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width, Height int
}

// Frame is the output of one Tick.
type Frame struct {
	Triangles []render.ScreenTriangle // Valid until the next Tick
	Stats     render.Stats
	Viewport  Viewport
}

// Scene is the viewer state. It is not safe for concurrent use.
type Scene struct {
	Mesh       *models.Mesh
	Indexed    *models.IndexedMesh // Welded view of the mesh as built
	Camera     *render.Camera
	Object     *render.Object
	Controller *input.Controller
	Background color.RGBA

	ShowAxes   bool // Overlay the object's local axes
	ShowAnchor bool // Mark the drag anchor while dragging

	pipeline *render.Pipeline
	receiver *netsync.Receiver
	log      *zap.Logger

	frame Frame
}

// New builds and colours the mesh and places the camera.
func New(opts Options) (*Scene, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	mesh, err := models.BuildIcosphere(opts.Radius, opts.Subdivisions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	cam := render.NewCamera(opts.FOV, opts.Distance)
	if err := cam.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if !(opts.Distance > 0) {
		return nil, fmt.Errorf("%w: camera distance %v", ErrInvalidOptions, opts.Distance)
	}

	mesh.Color(opts.Palette, opts.Fractal, opts.Seed)
	indexed := mesh.Weld(opts.WeldEpsilon)

	obj := render.NewObject(mesh)
	ctrl := input.NewController(cam, obj, opts.Controls)

	log.Info("scene built",
		zap.String("mesh", mesh.Name),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("vertices", indexed.VertexCount()),
		zap.Uint32("seed", opts.Seed),
		zap.Stringer("scheme", opts.Controls.Scheme),
	)

	return &Scene{
		Mesh:       mesh,
		Indexed:    indexed,
		Camera:     cam,
		Object:     obj,
		Controller: ctrl,
		Background: opts.Background,
		pipeline:   render.NewPipeline(),
		receiver:   netsync.NewReceiver(obj.Transform),
		log:        log,
	}, nil
}

// Tick runs one frame: resize, feed every event in order, advance the
// controller, then project the object.
func (s *Scene) Tick(events []input.Event, vp Viewport) Frame {
	s.Controller.SetViewport(vp.Width, vp.Height)
	for _, ev := range events {
		s.Controller.Feed(ev)
	}
	s.Controller.Advance()

	tris := s.pipeline.Draw(s.Camera, s.Object, vp.Width, vp.Height)
	s.frame = Frame{Triangles: tris, Stats: s.pipeline.Stats, Viewport: vp}
	return s.frame
}

// Render clears fb to the background and rasterises the last frame,
// then draws the enabled overlays. The framebuffer is resized to the
// frame's viewport when they differ.
func (s *Scene) Render(fb *render.Framebuffer, r *render.Rasterizer) {
	vp := s.frame.Viewport
	if vp.Width > 0 && vp.Height > 0 && (fb.Width != vp.Width || fb.Height != vp.Height) {
		fb.Resize(vp.Width, vp.Height)
	}
	fb.Clear(s.Background)
	r.SetFramebuffer(fb)
	r.Draw(s.frame.Triangles)

	if s.ShowAxes {
		radius := render.NewAABB(s.Mesh.GetBounds()).Size().X / 2
		fb.DrawAxes(s.Camera, s.Object.Transform, 1.5*radius)
	}
	if s.ShowAnchor && s.Controller.State() == input.Dragging {
		a := s.Controller.Anchor()
		fb.DrawMarker(int(a.X), int(a.Y), 2, render.ColorWhite)
	}
}

// EncodeObject returns the object transform as a sync message.
func (s *Scene) EncodeObject() string {
	return netsync.Encode(s.Object.Transform)
}

// ApplyRemote replaces the object transform with the one in msg.
// Malformed messages are logged and leave the object unchanged.
func (s *Scene) ApplyRemote(msg string) bool {
	if !s.receiver.Apply(msg) {
		s.log.Warn("dropped transform message",
			zap.Error(s.receiver.LastError()),
			zap.Int("rejected", s.receiver.Rejected()),
		)
		return false
	}
	s.Object.Transform = s.receiver.Transform()
	return true
}

// Rejected returns how many sync messages have been dropped.
func (s *Scene) Rejected() int {
	return s.receiver.Rejected()
}

// RotateMesh spins the mesh geometry itself about a world axis. Unlike
// a drag this is permanent: reset does not undo it.
func (s *Scene) RotateMesh(axis models.Axis, angle float64) {
	s.Mesh.Rotate(axis, angle)
}
