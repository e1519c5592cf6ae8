// Package noise provides seeded, deterministic coherent noise over 3D
// space for procedural surface colouring.
package noise

import (
	"math"

	"github.com/taigrr/geodx/pkg/math3d"
)

// Lattice mixing multipliers, one per axis, so that permuted coordinates
// hash differently.
const (
	primeX uint32 = 0x8da6b343
	primeY uint32 = 0xd8163841
	primeZ uint32 = 0xcb1ab31f
	golden uint32 = 0x9e3779b9
)

// maxBelowOne is the largest float64 strictly less than 1.
var maxBelowOne = math.Nextafter(1, 0)

// Noise3 samples value noise at p. The unit cube containing p is split
// into six tetrahedra; the four corner hashes of the tetrahedron holding
// p are blended with barycentric weights and the blend is eased with the
// quintic fade. The result is in [0, 1), continuous in p, and depends only
// on (p, seed).
func Noise3(p math3d.Vec3, seed uint32) float64 {
	cell := p.Floor()
	x, y, z := p.X-cell.X, p.Y-cell.Y, p.Z-cell.Z
	gx, gy, gz := int64(cell.X), int64(cell.Y), int64(cell.Z)

	h0 := hash(gx, gy, gz, seed)
	h3 := hash(gx+1, gy+1, gz+1, seed)
	var h1, h2 float64

	// Barycentric weights for corners 0..3 of the selected tetrahedron
	var a, b, c, d float64

	// Selector bits: z>y, z>x, y>x. Patterns 2 and 5 would need
	// x>=y>=z>x or y>x>=z>y and cannot occur.
	switch tetrahedron(x, y, z) {
	case 0: // x >= y >= z
		h1 = hash(gx+1, gy, gz, seed)
		h2 = hash(gx+1, gy+1, gz, seed)
		a, b, c, d = 1-x, x-y, y-z, z
	case 1: // y > x >= z
		h1 = hash(gx, gy+1, gz, seed)
		h2 = hash(gx+1, gy+1, gz, seed)
		a, b, c, d = 1-y, y-x, x-z, z
	case 3: // y >= z > x
		h1 = hash(gx, gy+1, gz, seed)
		h2 = hash(gx, gy+1, gz+1, seed)
		a, b, c, d = 1-y, y-z, z-x, x
	case 4: // x >= z > y
		h1 = hash(gx+1, gy, gz, seed)
		h2 = hash(gx+1, gy, gz+1, seed)
		a, b, c, d = 1-x, x-z, z-y, y
	case 6: // z > x >= y
		h1 = hash(gx, gy, gz+1, seed)
		h2 = hash(gx+1, gy, gz+1, seed)
		a, b, c, d = 1-z, z-x, x-y, y
	case 7: // z > y > x
		h1 = hash(gx, gy, gz+1, seed)
		h2 = hash(gx, gy+1, gz+1, seed)
		a, b, c, d = 1-z, z-y, y-x, x
	}

	v := fade(h0*a + h1*b + h2*c + h3*d)
	if v >= 1 {
		v = maxBelowOne
	}
	return v
}

// tetrahedron packs the three pairwise comparisons of the local offset
// into a 3-bit selector.
func tetrahedron(x, y, z float64) uint8 {
	var sel uint8
	if z > y {
		sel |= 4
	}
	if z > x {
		sel |= 2
	}
	if y > x {
		sel |= 1
	}
	return sel
}

// hash maps a lattice point to a pseudo-random value in [0, 1).
func hash(x, y, z int64, seed uint32) float64 {
	a := avalanche(seed ^ golden)
	a = avalanche(a + uint32(x)*primeX)
	a = avalanche(a + uint32(y)*primeY)
	a = avalanche(a + uint32(z)*primeZ)
	return float64(a) / (1 << 32)
}

// avalanche is Thomas Wang's shift-add integer mix.
func avalanche(a uint32) uint32 {
	a -= a << 6
	a ^= a >> 17
	a -= a << 9
	a ^= a << 4
	a -= a << 3
	a ^= a << 10
	a ^= a >> 15
	return a
}

// fade applies the smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
