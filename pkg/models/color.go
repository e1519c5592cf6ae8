package models

import (
	"image/color"

	"github.com/taigrr/geodx/pkg/noise"
)

// Palette maps a noise value to one of three colour bands.
type Palette struct {
	High color.RGBA
	Mid  color.RGBA
	Low  color.RGBA

	HighAbove float64 // values strictly above this use High
	MidAbove  float64 // values strictly above this (and not High) use Mid
}

// DefaultPalette is land, beach and sea.
var DefaultPalette = Palette{
	High:      color.RGBA{0, 128, 0, 255},
	Mid:       color.RGBA{255, 225, 75, 255},
	Low:       color.RGBA{0, 0, 128, 255},
	HighAbove: 0.5,
	MidAbove:  0.3,
}

// Band returns the colour for noise value v.
func (p Palette) Band(v float64) color.RGBA {
	switch {
	case v > p.HighAbove:
		return p.High
	case v > p.MidAbove:
		return p.Mid
	default:
		return p.Low
	}
}

// Color assigns every vertex the band of the fractal noise sampled at its
// position. Coincident vertices of adjacent triangles get the same colour.
func (m *Mesh) Color(p Palette, f noise.Fractal, seed uint32) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		for j := range t.V {
			t.V[j].Color = p.Band(f.Sample(t.V[j].Position, seed))
		}
	}
}

// ColorMesh colours mesh with DefaultPalette and TerrainOctaves.
func ColorMesh(mesh *Mesh, seed uint32) {
	mesh.Color(DefaultPalette, noise.TerrainOctaves, seed)
}
