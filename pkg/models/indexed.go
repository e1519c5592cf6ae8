package models

import (
	"math"

	"github.com/taigrr/geodx/pkg/math3d"
)

// IndexedMesh is a shared-vertex view of a Mesh.
type IndexedMesh struct {
	Vertices []Vertex
	Faces    [][3]int // Indices into Vertices, in triangle order
}

// VertexCount returns the number of unique vertices.
func (im *IndexedMesh) VertexCount() int {
	return len(im.Vertices)
}

// FaceCount returns the number of faces.
func (im *IndexedMesh) FaceCount() int {
	return len(im.Faces)
}

type weldKey [3]int64

// Weld merges vertices whose positions quantise to the same eps-sized
// cell. The first vertex seen in a cell keeps its colour. eps <= 0 welds
// only exact duplicates.
func (m *Mesh) Weld(eps float64) *IndexedMesh {
	im := &IndexedMesh{
		Vertices: make([]Vertex, 0, len(m.Triangles)/2+2),
		Faces:    make([][3]int, len(m.Triangles)),
	}

	index := make(map[weldKey]int, len(m.Triangles)/2+2)
	exact := make(map[math3d.Vec3]int)

	lookup := func(v Vertex) int {
		if eps <= 0 {
			if i, ok := exact[v.Position]; ok {
				return i
			}
			exact[v.Position] = len(im.Vertices)
			im.Vertices = append(im.Vertices, v)
			return len(im.Vertices) - 1
		}

		k := weldKey{
			int64(math.Round(v.Position.X / eps)),
			int64(math.Round(v.Position.Y / eps)),
			int64(math.Round(v.Position.Z / eps)),
		}
		if i, ok := index[k]; ok {
			return i
		}
		index[k] = len(im.Vertices)
		im.Vertices = append(im.Vertices, v)
		return len(im.Vertices) - 1
	}

	for i, t := range m.Triangles {
		im.Faces[i] = [3]int{lookup(t.V[0]), lookup(t.V[1]), lookup(t.V[2])}
	}

	return im
}
