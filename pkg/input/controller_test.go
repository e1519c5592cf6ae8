package input

import (
	"math"
	"testing"

	"github.com/taigrr/geodx/pkg/math3d"
	"github.com/taigrr/geodx/pkg/models"
	"github.com/taigrr/geodx/pkg/render"
)

const vw, vh = 200, 100

func newTestController(s Settings) (*Controller, *render.Camera, *render.Object) {
	cam := render.NewCamera(render.DefaultFOV, render.DefaultDistance)
	obj := render.NewObject(models.MustBuildIcosphere(500, 0))
	c := NewController(cam, obj, s)
	c.SetViewport(vw, vh)
	return c, cam, obj
}

func noSmoothing() Settings {
	s := DefaultSettings()
	s.Smoothing = false
	return s
}

// front is the surface point facing the default camera.
var front = math3d.V3(0, 0, -500)

func TestDragStateTransitions(t *testing.T) {
	c, _, _ := newTestController(noSmoothing())

	if c.State() != Idle {
		t.Fatalf("initial state = %v", c.State())
	}

	c.Feed(Event{Kind: PointerDown, X: 10, Y: 10, Button: ButtonRight})
	if c.State() != Idle {
		t.Error("right button started a drag")
	}

	c.Feed(Up(10, 10))
	if c.State() != Idle {
		t.Error("release while idle changed state")
	}

	c.Feed(Down(50, 60))
	if c.State() != Dragging || c.Anchor() != math3d.V2(50, 60) {
		t.Fatalf("after down: %v anchor %v", c.State(), c.Anchor())
	}

	c.Feed(Down(70, 80))
	if c.Anchor() != math3d.V2(50, 60) {
		t.Error("second press moved the anchor")
	}

	c.Feed(Up(55, 60))
	if c.State() != Idle {
		t.Errorf("after up: %v", c.State())
	}
}

func TestDragZeroDisplacementKeepsSnapshot(t *testing.T) {
	c, _, obj := newTestController(noSmoothing())
	obj.Transform = math3d.RotateZ(0.3)
	want := obj.Transform

	c.Feed(Down(120, 30))
	c.Advance()
	c.Feed(Move(120, 30))
	c.Advance()

	if obj.Transform != want {
		t.Errorf("transform changed without displacement: %v", obj.Transform)
	}
}

func TestDragPathIndependent(t *testing.T) {
	direct, _, objA := newTestController(noSmoothing())
	direct.Feed(Down(40, 30))
	direct.Feed(Move(140, 70))
	direct.Advance()

	path, _, objB := newTestController(noSmoothing())
	path.Feed(Down(40, 30))
	for _, p := range [][2]float64{{60, 10}, {190, 90}, {10, 50}, {140, 70}} {
		path.Feed(Move(p[0], p[1]))
		path.Advance()
	}

	if !objA.Transform.ApproxEqual(objB.Transform, 1e-12) {
		t.Errorf("path changed the result:\n%v\n%v", objA.Transform, objB.Transform)
	}
}

func TestDragReleaseAppliesFinalPointer(t *testing.T) {
	c, _, obj := newTestController(noSmoothing())
	c.Feed(Down(100, 50))
	c.Feed(Move(130, 50))
	c.Feed(Up(130, 50))

	if obj.Transform == math3d.IdentityAffine() {
		t.Error("drag released within one frame was lost")
	}

	// Idle again: later frames do not keep rotating.
	before := obj.Transform
	c.Advance()
	if obj.Transform != before {
		t.Error("Advance rotated while idle")
	}
}

func TestDragDirection(t *testing.T) {
	tests := []struct {
		name     string
		anchor   [2]float64
		pointer  [2]float64
		wantSide func(p math3d.Vec3) bool
	}{
		{"centre right", [2]float64{vw / 2, vh / 2}, [2]float64{vw/2 + 20, vh / 2}, func(p math3d.Vec3) bool { return p.X > 0 }},
		{"centre up", [2]float64{vw / 2, vh / 2}, [2]float64{vw / 2, vh/2 - 20}, func(p math3d.Vec3) bool { return p.Y > 0 }},
		{"left of centre right", [2]float64{40, vh / 2}, [2]float64{60, vh / 2}, func(p math3d.Vec3) bool { return p.X > 0 }},
		{"left of centre left", [2]float64{40, vh / 2}, [2]float64{20, vh / 2}, func(p math3d.Vec3) bool { return p.X < 0 }},
		{"below centre up", [2]float64{vw / 2, 80}, [2]float64{vw / 2, 60}, func(p math3d.Vec3) bool { return p.Y > 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, obj := newTestController(noSmoothing())
			c.Feed(Down(tc.anchor[0], tc.anchor[1]))
			c.Feed(Move(tc.pointer[0], tc.pointer[1]))
			c.Advance()

			p := obj.Transform.Apply(front)
			if !tc.wantSide(p) {
				t.Errorf("front point moved to %v", p)
			}
		})
	}
}

func TestDragAngleScalesWithDistance(t *testing.T) {
	rot, ok := DragRotation(math3d.V2(vw/2, vh/2), math3d.V2(vw/2+100, vh/2), vw, vh, 0.005, math3d.IdentityAffine())
	if !ok {
		t.Fatal("expected a rotation")
	}
	// Rotation angle from the trace: 1 + 2cos(θ) = trace.
	trace := rot.At(0, 0) + rot.At(1, 1) + rot.At(2, 2)
	angle := math.Acos((trace - 1) / 2)
	if math.Abs(angle-0.5) > 1e-9 {
		t.Errorf("angle = %v, want 0.5", angle)
	}
}

func TestDragUsesCameraOrientation(t *testing.T) {
	// With the camera rolled half a turn, the same screen drag turns the
	// object the other way in world space.
	anchor, pointer := math3d.V2(vw/2, vh/2), math3d.V2(vw/2+30, vh/2)
	a, _ := DragRotation(anchor, pointer, vw, vh, 0.005, math3d.IdentityAffine())
	b, _ := DragRotation(anchor, pointer, vw, vh, 0.005, math3d.RotateZ(math.Pi))

	pa := a.Apply(math3d.V3(0, 0, -1))
	pb := b.Apply(math3d.V3(0, 0, -1))
	if pa.X*pb.X >= 0 {
		t.Errorf("rolled camera did not mirror the drag: %v vs %v", pa, pb)
	}
}

func TestOrbitKeys(t *testing.T) {
	s := noSmoothing()
	s.Scheme = SchemeOrbit
	c, cam, _ := newTestController(s)

	start := cam.Transform
	c.Feed(Key(KeyPitchUp))

	want := math3d.AxisAngle(start.ApplyDir(math3d.UnitX()), s.OrbitStep).Mul(start)
	if !cam.Transform.ApproxEqual(want, 1e-12) {
		t.Errorf("after %q: %v, want %v", KeyPitchUp, cam.Transform, want)
	}
	if math.Abs(cam.Distance()-render.DefaultDistance) > 1e-9 {
		t.Errorf("orbit changed distance to %v", cam.Distance())
	}
	if o := cam.ViewTransform().Apply(math3d.Zero3()); !o.ApproxEqual(math3d.V3(0, 0, render.DefaultDistance), 1e-9) {
		t.Errorf("origin left the view axis: %v", o)
	}

	pairs := [][2]string{
		{KeyPitchUp, KeyPitchDown},
		{KeyYawLeft, KeyYawRight},
		{KeyRollLeft, KeyRollRight},
		{"up", "down"},
		{"left", "right"},
	}
	for _, p := range pairs {
		before := cam.Transform
		c.Feed(Key(p[0]))
		if cam.Transform.ApproxEqual(before, 1e-12) {
			t.Errorf("%q did nothing", p[0])
		}
		c.Feed(Key(p[1]))
		if !cam.Transform.ApproxEqual(before, 1e-9) {
			t.Errorf("%q then %q did not cancel", p[0], p[1])
		}
	}
}

func TestSchemesIgnoreOtherInput(t *testing.T) {
	drag, cam, _ := newTestController(noSmoothing())
	before := cam.Transform
	drag.Feed(Key(KeyYawLeft))
	if cam.Transform != before {
		t.Error("orbit key moved the camera in drag scheme")
	}

	s := noSmoothing()
	s.Scheme = SchemeOrbit
	orbit, _, obj := newTestController(s)
	orbit.Feed(Down(10, 10))
	orbit.Feed(Move(90, 90))
	orbit.Advance()
	if orbit.State() != Idle || obj.Transform != math3d.IdentityAffine() {
		t.Error("pointer drag acted in orbit scheme")
	}
}

func TestReset(t *testing.T) {
	s := noSmoothing()
	s.Scheme = SchemeOrbit
	c, cam, obj := newTestController(s)
	startCam, startObj := cam.Transform, obj.Transform

	c.Feed(Key(KeyYawLeft))
	c.Feed(Scroll(3))
	c.Advance()
	obj.Transform = math3d.RotateX(1)

	c.Feed(Key(KeyReset))
	c.Advance()
	if !cam.Transform.ApproxEqual(startCam, 1e-9) || obj.Transform != startObj {
		t.Error("reset did not restore transforms")
	}
	if c.Zoom().Target() != render.DefaultDistance {
		t.Errorf("zoom target = %v after reset", c.Zoom().Target())
	}
}

func TestWheelZoomMovesCamera(t *testing.T) {
	c, cam, _ := newTestController(noSmoothing())

	c.Feed(Scroll(1))
	c.Advance()
	closer := cam.Distance()
	if closer >= render.DefaultDistance {
		t.Errorf("wheel up: distance %v, want < %v", closer, render.DefaultDistance)
	}

	c.Feed(Scroll(-2))
	c.Advance()
	if cam.Distance() <= closer {
		t.Errorf("wheel down: distance %v, want > %v", cam.Distance(), closer)
	}
}

func TestParseScheme(t *testing.T) {
	for _, s := range []string{"drag", "orbit"} {
		got, err := ParseScheme(s)
		if err != nil || got.String() != s {
			t.Errorf("ParseScheme(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseScheme("fly"); err == nil {
		t.Error("expected error")
	}
}

func BenchmarkDragRotation(b *testing.B) {
	cam := math3d.RotateY(0.3)
	for b.Loop() {
		_, _ = DragRotation(math3d.V2(40, 30), math3d.V2(140, 70), vw, vh, 0.005, cam)
	}
}
