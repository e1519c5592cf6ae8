package render

import (
	"image/color"

	"github.com/taigrr/geodx/pkg/math3d"
	"github.com/taigrr/geodx/pkg/models"
)

// Object places a mesh in the world. The mesh is shared, not owned: many
// objects may reference the same mesh.
type Object struct {
	Mesh      *models.Mesh
	Transform math3d.Affine
}

// NewObject wraps mesh with an identity transform.
func NewObject(mesh *models.Mesh) *Object {
	return &Object{Mesh: mesh, Transform: math3d.IdentityAffine()}
}

// ScreenTriangle is a projected triangle ready for rasterisation.
// Coordinates are in pixels with y growing downward.
type ScreenTriangle struct {
	P      [3]math3d.Vec2
	Color  [3]color.RGBA
	Source int // Index of the triangle in the mesh
}

// Stats counts what happened to the triangles of the last Draw.
// Total = Culled + Clipped + Emitted.
type Stats struct {
	Total   int // Triangles considered
	Culled  int // Rejected as back-facing
	Clipped int // Rejected with a vertex at or behind the eye plane
	Emitted int // Projected and returned
}

// Pipeline projects objects into screen triangles. It reuses its output
// buffer between calls; the slice returned by Draw is valid until the
// next Draw.
type Pipeline struct {
	Stats Stats
	out   []ScreenTriangle
}

// NewPipeline creates a pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// DrawObject projects obj through cam into a w×h viewport using a
// throwaway pipeline.
func DrawObject(cam *Camera, obj *Object, w, h int) []ScreenTriangle {
	return NewPipeline().Draw(cam, obj, w, h)
}

// Draw projects every front-facing triangle of obj. For each triangle the
// vertices and normal are taken into camera space, then:
//   - back faces, where dot(p0 + (0,0,D), n) >= 0, are culled;
//   - triangles with any vertex at D+z <= 0 are dropped;
//   - the rest are projected with Z = D/(D+z), x = w/2 + Z·x,
//     y = h/2 − Z·y.
//
// Output preserves mesh order. There is no depth sorting.
func (p *Pipeline) Draw(cam *Camera, obj *Object, w, h int) []ScreenTriangle {
	p.out = p.out[:0]
	p.Stats = Stats{}

	if obj == nil || obj.Mesh == nil || w <= 0 || h <= 0 {
		return p.out
	}

	tris := obj.Mesh.Triangles
	p.Stats.Total = len(tris)

	view := cam.ViewTransform().Mul(obj.Transform)
	d := ProjectionDistance(cam.FOV, w)
	eye := math3d.V3(0, 0, d)

	// Whole object behind the eye: nothing can survive the near test.
	bounds := NewAABB(obj.Mesh.BoundsMin, obj.Mesh.BoundsMax).Transform(view)
	if len(tris) > 0 && EyePlane(d).BoxBehind(bounds) {
		p.Stats.Clipped = len(tris)
		return p.out
	}

	halfW, halfH := float64(w)/2, float64(h)/2

	for i := range tris {
		t := &tris[i]

		p0 := view.Apply(t.V[0].Position)
		n := view.ApplyNormal(t.Normal)
		if p0.Add(eye).Dot(n) >= 0 {
			p.Stats.Culled++
			continue
		}

		p1 := view.Apply(t.V[1].Position)
		p2 := view.Apply(t.V[2].Position)
		if d+p0.Z <= 0 || d+p1.Z <= 0 || d+p2.Z <= 0 {
			p.Stats.Clipped++
			continue
		}

		st := ScreenTriangle{Source: i}
		for j, v := range [3]math3d.Vec3{p0, p1, p2} {
			z := d / (d + v.Z)
			st.P[j] = math3d.V2(halfW+z*v.X, halfH-z*v.Y)
			st.Color[j] = t.V[j].Color
		}
		p.out = append(p.out, st)
	}

	p.Stats.Emitted = len(p.out)
	return p.out
}
