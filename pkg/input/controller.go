package input

import (
	"fmt"
	"math"

	"github.com/taigrr/geodx/pkg/math3d"
	"github.com/taigrr/geodx/pkg/render"
)

// Scheme selects how pointer and keys rotate the view.
type Scheme int

const (
	// SchemeDrag rotates the object with a virtual trackball drag.
	SchemeDrag Scheme = iota
	// SchemeOrbit orbits the camera around the origin with keys.
	SchemeOrbit
)

// ParseScheme maps "drag" or "orbit" to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "drag", "":
		return SchemeDrag, nil
	case "orbit":
		return SchemeOrbit, nil
	}
	return SchemeDrag, fmt.Errorf("unknown control scheme %q", s)
}

func (s Scheme) String() string {
	if s == SchemeOrbit {
		return "orbit"
	}
	return "drag"
}

// Settings tunes the controller.
type Settings struct {
	Scheme           Scheme
	DragSensitivity  float64 // Radians per pixel of drag
	OrbitStep        float64 // Radians per key press
	WheelSensitivity float64
	ZoomGain         float64
	MinDistance      float64
	MaxDistance      float64
	Smoothing        bool // Ease zoom with a spring
	FPS              int  // Frame rate for the zoom spring
}

// DefaultSettings returns the viewer defaults.
func DefaultSettings() Settings {
	return Settings{
		Scheme:           SchemeDrag,
		DragSensitivity:  0.005,
		OrbitStep:        0.02,
		WheelSensitivity: 0.01,
		ZoomGain:         1.0,
		MinDistance:      500,
		MaxDistance:      10000,
		Smoothing:        true,
		FPS:              30,
	}
}

// State is the interaction state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller owns the interaction state for one camera and one object.
// It is not safe for concurrent use; feed it from the frame loop.
type Controller struct {
	cam *render.Camera
	obj *render.Object

	settings Settings
	zoom     *Zoom

	width, height int

	state    State
	anchor   math3d.Vec2   // Pointer position at PointerDown
	pointer  math3d.Vec2   // Latest pointer position
	snapshot math3d.Affine // Object transform at PointerDown

	initialCam math3d.Affine
	initialObj math3d.Affine
}

// NewController takes control of cam and obj. Their current transforms
// become the reset state.
func NewController(cam *render.Camera, obj *render.Object, s Settings) *Controller {
	c := &Controller{
		cam:        cam,
		obj:        obj,
		settings:   s,
		width:      1,
		height:     1,
		initialCam: cam.Transform,
		initialObj: obj.Transform,
	}
	c.zoom = NewZoom(cam.Distance(), s)
	cam.SetDistance(c.zoom.Current())
	return c
}

// SetViewport sets the viewport size in pixels used for drag geometry and
// the zoom projection distance.
func (c *Controller) SetViewport(w, h int) {
	c.width, c.height = max(w, 1), max(h, 1)
}

// State returns the interaction state.
func (c *Controller) State() State {
	return c.state
}

// Anchor returns the drag anchor. It is meaningful only while Dragging.
func (c *Controller) Anchor() math3d.Vec2 {
	return c.anchor
}

// Zoom exposes the zoom state.
func (c *Controller) Zoom() *Zoom {
	return c.zoom
}

// Settings returns the active settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Feed applies one event. State transitions, key rotations and zoom
// targets take effect immediately; drag rotation is applied by Advance
// (and on release).
func (c *Controller) Feed(ev Event) {
	switch ev.Kind {
	case PointerDown:
		if c.settings.Scheme != SchemeDrag || ev.Button != ButtonLeft || c.state == Dragging {
			return
		}
		c.state = Dragging
		c.anchor = math3d.V2(ev.X, ev.Y)
		c.pointer = c.anchor
		c.snapshot = c.obj.Transform

	case PointerMove:
		if c.state == Dragging {
			c.pointer = math3d.V2(ev.X, ev.Y)
		}

	case PointerUp:
		if c.state != Dragging {
			return
		}
		c.pointer = math3d.V2(ev.X, ev.Y)
		c.applyDrag()
		c.state = Idle

	case Wheel:
		c.zoom.Scroll(ev.Wheel, render.ProjectionDistance(c.cam.FOV, c.width))

	case KeyDown:
		c.key(ev.Key)
	}
}

// Advance runs the per-frame actions: the drag rotation for the current
// pointer, then one zoom easing step.
func (c *Controller) Advance() {
	if c.state == Dragging {
		c.applyDrag()
	}
	c.cam.SetDistance(c.zoom.Advance())
}

// Reset restores the initial camera and object transforms.
func (c *Controller) Reset() {
	c.state = Idle
	c.cam.Transform = c.initialCam
	c.obj.Transform = c.initialObj
	c.zoom.Reset(c.cam.Distance())
	c.cam.SetDistance(c.zoom.Current())
}

func (c *Controller) key(k string) {
	if k == KeyReset {
		c.Reset()
		return
	}
	if c.settings.Scheme != SchemeOrbit {
		return
	}

	step := c.settings.OrbitStep
	var local math3d.Vec3
	switch k {
	case KeyPitchUp, "up":
		local = math3d.UnitX()
	case KeyPitchDown, "down":
		local, step = math3d.UnitX(), -step
	case KeyYawLeft, "left":
		local = math3d.UnitY()
	case KeyYawRight, "right":
		local, step = math3d.UnitY(), -step
	case KeyRollLeft:
		local = math3d.UnitZ()
	case KeyRollRight:
		local, step = math3d.UnitZ(), -step
	default:
		return
	}

	axis := c.cam.Transform.ApplyDir(local)
	c.cam.Rotate(math3d.AxisAngle(axis, step))
}

// applyDrag sets the object to the drag rotation composed with the
// snapshot. The result depends only on the anchor and the current
// pointer, never on the path between them.
func (c *Controller) applyDrag() {
	rot, ok := DragRotation(c.anchor, c.pointer, c.width, c.height,
		c.settings.DragSensitivity, c.cam.Transform)
	if !ok {
		c.obj.Transform = c.snapshot
		return
	}
	c.obj.Transform = rot.Mul(c.snapshot)
}

// DragRotation computes the world-space rotation for a drag from anchor
// to pointer in a w×h viewport seen through a camera with transform
// camera. ok is false for a zero-length drag.
//
// The anchor's offset from the screen centre v1 and the displacement v3
// (both y-up) pick an axis in camera space: the view direction (0,0,-1)
// is turned about v1 by θ1, the signed angle between v3 and the
// perpendicular of v1. The object turns about that axis by
// sensitivity·|v3|. An anchor exactly at the centre uses the in-plane
// perpendicular of the displacement.
func DragRotation(anchor, pointer math3d.Vec2, w, h int, sensitivity float64, camera math3d.Affine) (math3d.Affine, bool) {
	v1 := math3d.V2(float64(w)/2-anchor.X, anchor.Y-float64(h)/2)
	v3 := math3d.V2(pointer.X-anchor.X, anchor.Y-pointer.Y)

	dist := v3.Len()
	if dist == 0 {
		return math3d.IdentityAffine(), false
	}
	v3n := v3.Scale(1 / dist)

	var axis math3d.Vec3
	if v1.Len() == 0 {
		p := v3n.Perp()
		axis = math3d.V3(-p.X, -p.Y, 0)
	} else {
		v1n := v1.Normalize()
		v2 := v1n.Perp()

		sign := 1.0
		if v1.Dot(v3) > 0 {
			sign = -1
		}
		theta1 := sign * math.Acos(math.Max(-1, math.Min(1, v2.Dot(v3n))))
		axis = math3d.AxisAngle(math3d.V3(v1n.X, v1n.Y, 0), theta1).Apply(math3d.V3(0, 0, -1))
	}

	world := camera.ApplyDir(axis)
	return math3d.AxisAngle(world, sensitivity*dist), true
}
