package models

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/geodx/pkg/math3d"
	"github.com/taigrr/geodx/pkg/noise"
)

func TestBuildIcosphereCounts(t *testing.T) {
	for level := range 5 {
		mesh, err := BuildIcosphere(500, level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}

		want := 20 * int(math.Pow(4, float64(level)))
		if got := mesh.TriangleCount(); got != want {
			t.Errorf("level %d: %d triangles, want %d", level, got, want)
		}

		welded := mesh.Weld(1e-6)
		wantVerts := 10*int(math.Pow(4, float64(level))) + 2
		if got := welded.VertexCount(); got != wantVerts {
			t.Errorf("level %d: %d welded vertices, want %d", level, got, wantVerts)
		}
		if welded.FaceCount() != want {
			t.Errorf("level %d: %d welded faces, want %d", level, welded.FaceCount(), want)
		}
	}
}

func TestBuildIcosphereVerticesOnSphere(t *testing.T) {
	radii := []float64{1, 500, 1e6}
	for _, r := range radii {
		mesh := MustBuildIcosphere(r, 3)
		for i, tri := range mesh.Triangles {
			for _, v := range tri.V {
				if d := math.Abs(v.Position.Len()-r) / r; d > 1e-9 {
					t.Fatalf("r=%v triangle %d: |v| = %v", r, i, v.Position.Len())
				}
			}
		}
	}
}

func TestBuildIcosphereNormalsOutward(t *testing.T) {
	mesh := MustBuildIcosphere(500, 3)
	for i, tri := range mesh.Triangles {
		if l := tri.Normal.Len(); math.Abs(l-1) > 1e-9 {
			t.Errorf("triangle %d: |n| = %v", i, l)
		}
		centroid := tri.V[0].Position.Add(tri.V[1].Position).Add(tri.V[2].Position).Scale(1.0 / 3)
		if tri.Normal.Dot(centroid) <= 0 {
			t.Errorf("triangle %d: normal %v points inward", i, tri.Normal)
		}
	}
}

func TestBuildIcosphereLevelZeroMatchesIcosahedron(t *testing.T) {
	mesh := MustBuildIcosphere(2, 0)
	for i, f := range icosahedronFaces {
		for j := range 3 {
			want := icosahedronVertices[f[j]].SetLen(2)
			if got := mesh.Triangles[i].V[j].Position; !got.ApproxEqual(want, 1e-12) {
				t.Errorf("face %d vertex %d = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestBuildIcosphereSubdivisionOrder(t *testing.T) {
	base := MustBuildIcosphere(1, 0)
	sub := MustBuildIcosphere(1, 1)

	v0 := base.Triangles[0].V[0].Position
	v1 := base.Triangles[0].V[1].Position
	v2 := base.Triangles[0].V[2].Position
	m0 := v0.Middle(v1).SetLen(1)
	m1 := v1.Middle(v2).SetLen(1)
	m2 := v2.Middle(v0).SetLen(1)

	want := [4][3]math3d.Vec3{
		{v0, m0, m2},
		{m0, v1, m1},
		{m2, m1, v2},
		{m0, m1, m2},
	}
	for i, tri := range want {
		for j := range 3 {
			if got := sub.Triangles[i].V[j].Position; got != tri[j] {
				t.Errorf("child %d vertex %d = %v, want %v", i, j, got, tri[j])
			}
		}
	}
}

func TestBuildIcosphereInvalid(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		level  int
		want   error
	}{
		{"zero radius", 0, 1, ErrInvalidRadius},
		{"negative radius", -5, 1, ErrInvalidRadius},
		{"nan radius", math.NaN(), 1, ErrInvalidRadius},
		{"inf radius", math.Inf(1), 1, ErrInvalidRadius},
		{"negative level", 1, -1, ErrInvalidSubdivision},
		{"level too deep", 1, MaxSubdivision + 1, ErrInvalidSubdivision},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildIcosphere(tc.radius, tc.level)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMustBuildIcospherePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustBuildIcosphere(-1, 0)
}

func TestFaceNormalDegenerate(t *testing.T) {
	p := math3d.V3(1, 2, 3)
	if n := FaceNormal(p, p, p); n != math3d.Zero3() {
		t.Errorf("degenerate normal = %v, want zero", n)
	}
	if n := FaceNormal(math3d.Zero3(), math3d.UnitX(), math3d.UnitY()); n != math3d.UnitZ() {
		t.Errorf("normal = %v, want +Z", n)
	}
}

func TestBounds(t *testing.T) {
	mesh := MustBuildIcosphere(10, 2)
	if !mesh.Center().ApproxEqual(math3d.Zero3(), 1e-9) {
		t.Errorf("Center = %v", mesh.Center())
	}
	size := mesh.Size()
	if math.Abs(size.Y-20) > 1e-9 {
		t.Errorf("Size.Y = %v, want 20 (poles at ±10)", size.Y)
	}
	lo, hi := mesh.GetBounds()
	if lo != mesh.BoundsMin || hi != mesh.BoundsMax {
		t.Errorf("GetBounds mismatch")
	}
}

func TestRotateKeepsNormalsConsistent(t *testing.T) {
	mesh := MustBuildIcosphere(100, 1)
	orig := mesh.Clone()

	mesh.Rotate(AxisY, 0.8)

	for i, tri := range mesh.Triangles {
		want := FaceNormal(tri.V[0].Position, tri.V[1].Position, tri.V[2].Position)
		if !tri.Normal.ApproxEqual(want, 1e-9) {
			t.Fatalf("triangle %d: normal %v, recomputed %v", i, tri.Normal, want)
		}
		wantPos := orig.Triangles[i].V[0].Position.RotateY(0.8)
		if !tri.V[0].Position.ApproxEqual(wantPos, 1e-9) {
			t.Fatalf("triangle %d: position %v, want %v", i, tri.V[0].Position, wantPos)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	mesh := MustBuildIcosphere(1, 0)
	clone := mesh.Clone()
	clone.Triangles[0].V[0].Position = math3d.V3(9, 9, 9)

	if mesh.Triangles[0].V[0].Position == clone.Triangles[0].V[0].Position {
		t.Error("Clone shares triangle storage")
	}
}

func TestTransformUpdatesBounds(t *testing.T) {
	mesh := MustBuildIcosphere(1, 1)
	mesh.Transform(math3d.Translate(math3d.V3(5, 0, 0)))
	if !mesh.Center().ApproxEqual(math3d.V3(5, 0, 0), 1e-9) {
		t.Errorf("Center after translate = %v", mesh.Center())
	}
}

func TestPaletteBand(t *testing.T) {
	p := DefaultPalette
	tests := []struct {
		v    float64
		want color.RGBA
	}{
		{0.9, p.High},
		{0.51, p.High},
		{0.5, p.Mid},
		{0.31, p.Mid},
		{0.3, p.Low},
		{0, p.Low},
	}

	for _, tc := range tests {
		if got := p.Band(tc.v); got != tc.want {
			t.Errorf("Band(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestColorMeshDeterministic(t *testing.T) {
	a := MustBuildIcosphere(500, 2)
	b := MustBuildIcosphere(500, 2)
	ColorMesh(a, 3)
	ColorMesh(b, 3)

	for i := range a.Triangles {
		if a.Triangles[i] != b.Triangles[i] {
			t.Fatalf("triangle %d differs between runs", i)
		}
	}
}

func TestColorCoincidentVerticesAgree(t *testing.T) {
	mesh := MustBuildIcosphere(500, 2)
	mesh.Color(DefaultPalette, noise.TerrainOctaves, 11)

	seen := make(map[math3d.Vec3]color.RGBA)
	for _, tri := range mesh.Triangles {
		for _, v := range tri.V {
			if c, ok := seen[v.Position]; ok && c != v.Color {
				t.Fatalf("vertex %v has colours %v and %v", v.Position, c, v.Color)
			}
			seen[v.Position] = v.Color
		}
	}
}

func TestColorUsesPaletteOnly(t *testing.T) {
	mesh := MustBuildIcosphere(500, 3)
	ColorMesh(mesh, 0)

	for _, tri := range mesh.Triangles {
		for _, v := range tri.V {
			switch v.Color {
			case DefaultPalette.High, DefaultPalette.Mid, DefaultPalette.Low:
			default:
				t.Fatalf("unexpected colour %v", v.Color)
			}
		}
	}
}

func TestWeldExact(t *testing.T) {
	mesh := MustBuildIcosphere(1, 2)
	if got := mesh.Weld(0).VertexCount(); got != 162 {
		t.Errorf("exact weld = %d vertices, want 162", got)
	}
}

func BenchmarkBuildIcosphere4(b *testing.B) {
	for b.Loop() {
		_, _ = BuildIcosphere(500, 4)
	}
}

func BenchmarkColorMesh4(b *testing.B) {
	mesh := MustBuildIcosphere(500, 4)
	for b.Loop() {
		ColorMesh(mesh, 0)
	}
}
