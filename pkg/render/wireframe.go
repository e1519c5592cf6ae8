package render

import (
	"math"

	"github.com/taigrr/geodx/pkg/math3d"
)

// DrawTriangleEdges outlines a screen triangle.
func (fb *Framebuffer) DrawTriangleEdges(tri *ScreenTriangle, color Color) {
	for i := range 3 {
		a, b := tri.P[i], tri.P[(i+1)%3]
		fb.DrawLineF(a.X, a.Y, b.X, b.Y, color)
	}
}

// DrawMarker draws a small cross centred on (x, y).
func (fb *Framebuffer) DrawMarker(x, y, size int, color Color) {
	fb.DrawLine(x-size, y, x+size, y, color)
	fb.DrawLine(x, y-size, x, y+size, color)
}

// DrawLine3D draws a world-space segment. It is skipped when either
// endpoint is at or behind the eye plane.
func (fb *Framebuffer) DrawLine3D(cam *Camera, p1, p2 math3d.Vec3, color Color) {
	s1, ok1 := cam.Project(p1, fb.Width, fb.Height)
	s2, ok2 := cam.Project(p2, fb.Width, fb.Height)
	if !ok1 || !ok2 {
		return
	}
	fb.DrawLineF(s1.X, s1.Y, s2.X, s2.Y, color)
}

// DrawAxes draws the X, Y and Z axes of transform from its origin, in red,
// green and blue.
func (fb *Framebuffer) DrawAxes(cam *Camera, transform math3d.Affine, length float64) {
	origin := transform.Translation()
	fb.DrawLine3D(cam, origin, transform.Apply(math3d.V3(length, 0, 0)), ColorRed)
	fb.DrawLine3D(cam, origin, transform.Apply(math3d.V3(0, length, 0)), ColorGreen)
	fb.DrawLine3D(cam, origin, transform.Apply(math3d.V3(0, 0, length)), ColorBlue)
}

// Project maps a world point to pixel coordinates in a w×h viewport with
// the same projection as Pipeline. ok is false when the point is at or
// behind the eye plane.
func (c *Camera) Project(p math3d.Vec3, w, h int) (s math3d.Vec2, ok bool) {
	d := ProjectionDistance(c.FOV, w)
	v := c.ViewTransform().Apply(p)
	if d+v.Z <= 0 {
		return math3d.Vec2{}, false
	}
	z := d / (d + v.Z)
	return math3d.V2(float64(w)/2+z*v.X, float64(h)/2-z*v.Y), true
}

func round(v float64) int {
	return int(math.Round(v))
}
