// Package models provides the triangle meshes rendered by geodx.
package models

import (
	"image/color"

	"github.com/taigrr/geodx/pkg/math3d"
)

// Mesh is an ordered list of triangles. Each triangle owns copies of
// its vertices; there is no shared topology (see Weld for an indexed view).
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Bounding box (calculated on build)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Vertex holds a position and its assigned colour.
type Vertex struct {
	Position math3d.Vec3
	Color    color.RGBA
}

// Triangle is three vertices plus the unit face normal.
type Triangle struct {
	V      [3]Vertex
	Normal math3d.Vec3
}

// Axis selects a principal rotation axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		return
	}

	m.BoundsMin = m.Triangles[0].V[0].Position
	m.BoundsMax = m.BoundsMin

	for _, t := range m.Triangles {
		for _, v := range t.V {
			m.BoundsMin = m.BoundsMin.Min(v.Position)
			m.BoundsMax = m.BoundsMax.Max(v.Position)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// FaceNormal returns normalize((v1-v0)×(v2-v0)), or the zero vector when
// the triangle is degenerate.
func FaceNormal(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	l := n.Len()
	if l == 0 {
		return math3d.Zero3()
	}
	return n.Scale(1 / l)
}

// ComputeFaceNormals recomputes every triangle normal from its positions.
func (m *Mesh) ComputeFaceNormals() {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		t.Normal = FaceNormal(t.V[0].Position, t.V[1].Position, t.V[2].Position)
	}
}

// Rotate spins the whole mesh about a principal axis through the origin.
// Positions and normals rotate together.
func (m *Mesh) Rotate(axis Axis, angle float64) {
	var rot math3d.Affine
	switch axis {
	case AxisX:
		rot = math3d.RotateX(angle)
	case AxisY:
		rot = math3d.RotateY(angle)
	default:
		rot = math3d.RotateZ(angle)
	}
	m.Transform(rot)
}

// Transform applies an affine transform to all vertices. Normals use the
// linear part only and are renormalised.
func (m *Mesh) Transform(mat math3d.Affine) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		for j := range t.V {
			t.V[j].Position = mat.Apply(t.V[j].Position)
		}
		t.Normal = mat.ApplyNormal(t.Normal)
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Triangles: make([]Triangle, len(m.Triangles)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
