package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/geodx/pkg/math3d"
)

// MaxSubdivision caps the subdivision level; level 8 is already
// 1,310,720 triangles.
const MaxSubdivision = 8

var (
	ErrInvalidRadius      = errors.New("icosphere radius must be positive and finite")
	ErrInvalidSubdivision = errors.New("icosphere subdivision level out of range")
)

// Unit icosahedron, one vertex at each pole and two staggered rings at
// y = ±0.447215. The literals are rounded, so each is renormalised on use.
var icosahedronVertices = [12]math3d.Vec3{
	{X: 0, Y: -1, Z: 0},
	{X: 0.7236, Y: -0.447215, Z: 0.52572},
	{X: -0.276385, Y: -0.447215, Z: 0.85064},
	{X: -0.894425, Y: -0.447215, Z: 0},
	{X: -0.276385, Y: -0.447215, Z: -0.85064},
	{X: 0.7236, Y: -0.447215, Z: -0.52572},
	{X: 0.276385, Y: 0.447215, Z: 0.85064},
	{X: -0.7236, Y: 0.447215, Z: 0.52572},
	{X: -0.7236, Y: 0.447215, Z: -0.52572},
	{X: 0.276385, Y: 0.447215, Z: -0.85064},
	{X: 0.894425, Y: 0.447215, Z: 0},
	{X: 0, Y: 1, Z: 0},
}

// Face winding is chosen so (v1-v0)×(v2-v0) points away from the centre.
var icosahedronFaces = [20][3]int{
	{0, 1, 2}, {1, 0, 5}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5},
	{1, 5, 10}, {2, 1, 6}, {3, 2, 7}, {4, 3, 8}, {5, 4, 9},
	{1, 10, 6}, {2, 6, 7}, {3, 7, 8}, {4, 8, 9}, {5, 9, 10},
	{6, 10, 11}, {7, 6, 11}, {8, 7, 11}, {9, 8, 11}, {10, 9, 11},
}

// BuildIcosphere builds a sphere of the given radius by subdividing an
// icosahedron level times. Every vertex lies at distance radius from the
// origin, and the mesh has 20*4^level triangles in a fixed order.
func BuildIcosphere(radius float64, level int) (*Mesh, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if level < 0 || level > MaxSubdivision {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidSubdivision, level, MaxSubdivision)
	}

	tris := make([][3]math3d.Vec3, 0, 20)
	for _, f := range icosahedronFaces {
		tris = append(tris, [3]math3d.Vec3{
			icosahedronVertices[f[0]].SetLen(radius),
			icosahedronVertices[f[1]].SetLen(radius),
			icosahedronVertices[f[2]].SetLen(radius),
		})
	}

	for range level {
		tris = subdivide(tris, radius)
	}

	mesh := &Mesh{
		Name:      fmt.Sprintf("icosphere-r%g-l%d", radius, level),
		Triangles: make([]Triangle, len(tris)),
	}
	for i, t := range tris {
		mesh.Triangles[i] = Triangle{
			V: [3]Vertex{{Position: t[0]}, {Position: t[1]}, {Position: t[2]}},
		}
	}
	mesh.ComputeFaceNormals()
	mesh.CalculateBounds()

	return mesh, nil
}

// MustBuildIcosphere is like BuildIcosphere but panics on error.
func MustBuildIcosphere(radius float64, level int) *Mesh {
	m, err := BuildIcosphere(radius, level)
	if err != nil {
		panic(err)
	}
	return m
}

// subdivide splits each triangle into four, pushing the edge midpoints
// out to the sphere surface.
func subdivide(tris [][3]math3d.Vec3, radius float64) [][3]math3d.Vec3 {
	out := make([][3]math3d.Vec3, 0, len(tris)*4)
	for _, t := range tris {
		v0, v1, v2 := t[0], t[1], t[2]
		m0 := v0.Middle(v1).SetLen(radius)
		m1 := v1.Middle(v2).SetLen(radius)
		m2 := v2.Middle(v0).SetLen(radius)

		out = append(out,
			[3]math3d.Vec3{v0, m0, m2},
			[3]math3d.Vec3{m0, v1, m1},
			[3]math3d.Vec3{m2, m1, v2},
			[3]math3d.Vec3{m0, m1, m2},
		)
	}
	return out
}
