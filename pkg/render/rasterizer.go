// Package render projects geodx meshes to screen space and rasterises
// them into a framebuffer for the terminal or an image file.
package render

import (
	"fmt"
	"math"

	"github.com/taigrr/geodx/pkg/math3d"
)

// Shading selects how a filled triangle is coloured.
type Shading int

const (
	// ShadeSmooth interpolates the three vertex colours.
	ShadeSmooth Shading = iota
	// ShadeFlat uses the colour of the first vertex.
	ShadeFlat
)

// ParseShading maps "smooth" or "flat" to a Shading.
func ParseShading(s string) (Shading, error) {
	switch s {
	case "smooth", "":
		return ShadeSmooth, nil
	case "flat":
		return ShadeFlat, nil
	}
	return ShadeSmooth, fmt.Errorf("unknown shading %q", s)
}

func (s Shading) String() string {
	if s == ShadeFlat {
		return "flat"
	}
	return "smooth"
}

// Rasterizer fills screen triangles into a framebuffer in submission
// order. There is no depth test; later triangles overwrite earlier ones.
type Rasterizer struct {
	fb *Framebuffer

	Shading   Shading
	Fill      bool  // Fill triangle interiors
	Wireframe bool  // Outline triangle edges
	WireColor Color // Edge colour when Wireframe is set
}

// NewRasterizer creates a filling, smooth-shading rasterizer.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		fb:        fb,
		Fill:      true,
		WireColor: ColorWhite,
	}
}

// SetFramebuffer retargets the rasterizer, e.g. after a resize.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// Draw rasterises tris in order.
func (r *Rasterizer) Draw(tris []ScreenTriangle) {
	for i := range tris {
		r.DrawTriangle(&tris[i])
	}
}

// DrawTriangle rasterises one triangle.
func (r *Rasterizer) DrawTriangle(tri *ScreenTriangle) {
	if r.fb == nil {
		return
	}
	if r.Fill {
		r.fillTriangle(tri)
	}
	if r.Wireframe {
		r.fb.DrawTriangleEdges(tri, r.WireColor)
	}
}

// fillTriangle covers every pixel whose centre lies inside the triangle.
// Edge functions are stepped incrementally across each row.
func (r *Rasterizer) fillTriangle(tri *ScreenTriangle) {
	p0, p1, p2 := tri.P[0], tri.P[1], tri.P[2]

	area := edge(p0, p1, p2)
	if area == 0 {
		return
	}
	invArea := 1 / area

	minX := int(math.Max(0, math.Floor(min3(p0.X, p1.X, p2.X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(p0.X, p1.X, p2.X))))
	minY := int(math.Max(0, math.Floor(min3(p0.Y, p1.Y, p2.Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(p0.Y, p1.Y, p2.Y))))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge i is opposite vertex i, so its value is vertex i's weight.
	// Only the x steps are needed; each row starts from a fresh weight.
	a0, _, _ := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	a1, _, _ := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	a2, _, _ := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)

	flat := tri.Color[0]

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		px := float64(minX) + 0.5

		start := barycentric(p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y, px, py)
		w0, w1, w2 := start.X, start.Y, start.Z
		dw0, dw1, dw2 := a0*invArea, a1*invArea, a2*invArea

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				if r.Shading == ShadeFlat {
					r.fb.SetPixel(x, y, flat)
				} else {
					bc := math3d.V3(w0, w1, w2)
					r.fb.SetPixel(x, y, interpolateColor3(tri.Color[0], tri.Color[1], tri.Color[2], bc))
				}
			}
			w0 += dw0
			w1 += dw1
			w2 += dw2
		}
	}
}

// edgeCoeffs returns A, B, C for the edge function
// edge(x,y) = A*x + B*y + C of the directed edge (x0,y0)→(x1,y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// edge is the doubled signed area of (a, b, c).
func edge(a, b, c math3d.Vec2) float64 {
	A, B, C := edgeCoeffs(a.X, a.Y, b.X, b.Y)
	return edgeFunc(A, B, C, c.X, c.Y)
}

// barycentric returns the weights of (px, py) relative to the triangle's
// three vertices. Outside points have at least one negative weight.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	p0, p1, p2 := math3d.V2(x0, y0), math3d.V2(x1, y1), math3d.V2(x2, y2)
	p := math3d.V2(px, py)
	area := edge(p0, p1, p2)
	if area == 0 {
		return math3d.V3(-1, -1, -1)
	}
	return math3d.V3(edge(p1, p2, p)/area, edge(p2, p0, p)/area, edge(p0, p1, p)/area)
}

// interpolateColor3 interpolates between 3 colors using barycentric coords.
func interpolateColor3(c0, c1, c2 Color, bc math3d.Vec3) Color {
	return RGB(
		clamp8(float64(c0.R)*bc.X+float64(c1.R)*bc.Y+float64(c2.R)*bc.Z),
		clamp8(float64(c0.G)*bc.X+float64(c1.G)*bc.Y+float64(c2.G)*bc.Z),
		clamp8(float64(c0.B)*bc.X+float64(c1.B)*bc.Y+float64(c2.B)*bc.Z),
	)
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
