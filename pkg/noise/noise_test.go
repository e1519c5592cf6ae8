package noise

import (
	"math"
	"testing"

	"github.com/taigrr/geodx/pkg/math3d"
)

func TestNoise3Deterministic(t *testing.T) {
	points := []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(0.5, 1.25, -3.75),
		math3d.V3(-123.4, 56.7, 8.9),
		math3d.V3(1e4, -1e4, 3.3),
	}

	for _, p := range points {
		a := Noise3(p, 42)
		b := Noise3(p, 42)
		if a != b {
			t.Errorf("Noise3(%v) not deterministic: %v vs %v", p, a, b)
		}
	}
}

func TestNoise3Range(t *testing.T) {
	for i := range 5000 {
		f := float64(i)
		p := math3d.V3(math.Sin(f)*97.3, math.Cos(f*1.7)*41.1, f*0.173-400)
		for _, seed := range []uint32{0, 1, 0xdeadbeef} {
			v := Noise3(p, seed)
			if v < 0 || v >= 1 || math.IsNaN(v) {
				t.Fatalf("Noise3(%v, %d) = %v, out of [0,1)", p, seed, v)
			}
		}
	}
}

func TestNoise3SeedChangesField(t *testing.T) {
	differ := 0
	for i := range 100 {
		p := math3d.V3(float64(i)*0.37, float64(i)*1.13, float64(i)*-0.71)
		if Noise3(p, 1) != Noise3(p, 2) {
			differ++
		}
	}
	if differ < 90 {
		t.Errorf("only %d/100 samples changed with the seed", differ)
	}
}

func TestNoise3LatticeMatchesHash(t *testing.T) {
	// At an integer point every weight except corner 0 vanishes.
	for _, p := range [][3]int64{{0, 0, 0}, {3, -2, 7}, {-5, -5, -5}} {
		got := Noise3(math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])), 9)
		want := fade(hash(p[0], p[1], p[2], 9))
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Noise3(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestNoise3ContinuousAcrossCells(t *testing.T) {
	const h = 1e-9
	// Points on cell faces, edges and diagonals where the tetrahedron
	// selection switches.
	points := []math3d.Vec3{
		math3d.V3(1, 0.3, 0.6),
		math3d.V3(0.2, 2, 0.9),
		math3d.V3(0.4, 0.7, -1),
		math3d.V3(0.5, 0.5, 0.2),
		math3d.V3(0.3, 0.6, 0.6),
		math3d.V3(0.8, 0.1, 0.8),
		math3d.V3(-3, -3, 0.5),
	}
	dirs := []math3d.Vec3{math3d.UnitX(), math3d.UnitY(), math3d.UnitZ(), math3d.V3(1, -1, 1)}

	for _, p := range points {
		for _, d := range dirs {
			a := Noise3(p.Sub(d.Scale(h)), 5)
			b := Noise3(p.Add(d.Scale(h)), 5)
			if math.Abs(a-b) > 1e-6 {
				t.Errorf("discontinuity at %v along %v: %v vs %v", p, d, a, b)
			}
		}
	}
}

func TestTetrahedronSelector(t *testing.T) {
	tests := []struct {
		x, y, z float64
		want    uint8
	}{
		{0.9, 0.5, 0.1, 0},
		{0.5, 0.9, 0.1, 1},
		{0.1, 0.9, 0.5, 3},
		{0.9, 0.1, 0.5, 4},
		{0.5, 0.1, 0.9, 6},
		{0.1, 0.5, 0.9, 7},
	}

	for _, tc := range tests {
		if got := tetrahedron(tc.x, tc.y, tc.z); got != tc.want {
			t.Errorf("tetrahedron(%v,%v,%v) = %d, want %d", tc.x, tc.y, tc.z, got, tc.want)
		}
	}
}

func TestFade(t *testing.T) {
	if fade(0) != 0 || fade(1) != 1 || fade(0.5) != 0.5 {
		t.Errorf("fade endpoints: %v %v %v", fade(0), fade(1), fade(0.5))
	}
}

func TestFractalSample(t *testing.T) {
	p := math3d.V3(123, -456, 789)
	got := TerrainOctaves.Sample(p, 7)

	want := (Noise3(p.Scale(0.01), 7) +
		0.5*Noise3(p.Scale(0.02), 7) +
		0.25*Noise3(p.Scale(0.04), 7) +
		0.125*Noise3(p.Scale(0.08), 7)) / 1.875

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Sample = %v, want %v", got, want)
	}
	if got < 0 || got >= 1 {
		t.Errorf("Sample = %v, out of [0,1)", got)
	}
}

func TestFractalZeroOctaves(t *testing.T) {
	if got := (Fractal{}).Sample(math3d.V3(1, 2, 3), 0); got != 0 {
		t.Errorf("empty fractal = %v, want 0", got)
	}
}

func BenchmarkNoise3(b *testing.B) {
	p := math3d.V3(12.3, 45.6, 78.9)
	for b.Loop() {
		_ = Noise3(p, 1)
	}
}

func BenchmarkTerrainOctaves(b *testing.B) {
	p := math3d.V3(123, 456, 789)
	for b.Loop() {
		_ = TerrainOctaves.Sample(p, 1)
	}
}
