package math3d

import (
	"errors"
	"fmt"
	"math"
)

// ErrAffineShape is returned when a transform literal does not have
// exactly 3 rows of 4 columns.
var ErrAffineShape = errors.New("affine transform must be 3 rows of 4 columns")

// Affine is a 3x4 affine transform stored row-major: the left 3x3 block
// is the linear part (rotation and scale) and the last column is the
// translation. There is no projective row.
//
// Layout (row, col):
// | Xx Yx Zx Tx |
// | Xy Yy Zy Ty |
// | Xz Yz Zz Tz |
type Affine [3][4]float64

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine {
	return Affine{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

// AffineFromRows builds a transform from a row-major literal. The shape is
// validated once here so that element access never needs to check it.
func AffineFromRows(rows [][]float64) (Affine, error) {
	var m Affine
	if len(rows) != 3 {
		return m, fmt.Errorf("%w: got %d rows", ErrAffineShape, len(rows))
	}
	for r, row := range rows {
		if len(row) != 4 {
			return m, fmt.Errorf("%w: row %d has %d columns", ErrAffineShape, r, len(row))
		}
		copy(m[r][:], row)
	}
	return m, nil
}

// AffineFromSlice builds a transform from 12 row-major values.
func AffineFromSlice(v []float64) (Affine, error) {
	var m Affine
	if len(v) != 12 {
		return m, fmt.Errorf("%w: got %d values, want 12", ErrAffineShape, len(v))
	}
	for r := range 3 {
		copy(m[r][:], v[r*4:r*4+4])
	}
	return m, nil
}

// Translate creates a pure translation transform.
func Translate(v Vec3) Affine {
	m := IdentityAffine()
	m.SetTranslation(v)
	return m
}

// RotateX creates a rotation around the X axis.
func RotateX(angle float64) Affine {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
	}
}

// RotateY creates a rotation around the Y axis.
func RotateY(angle float64) Affine {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
	}
}

// RotateZ creates a rotation around the Z axis.
func RotateZ(angle float64) Affine {
	c, s := math.Cos(angle), math.Sin(angle)
	return Affine{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
	}
}

// AxisAngle creates a rotation of angle radians around axis using
// Rodrigues' formula R = I + sin(θ)K + (1-cos(θ))K², where K is the
// cross-product matrix of the normalized axis. A zero axis yields the
// identity.
func AxisAngle(axis Vec3, angle float64) Affine {
	l := axis.Len()
	if l == 0 {
		return IdentityAffine()
	}
	axis = axis.Scale(1 / l)

	k := Affine{
		{0, -axis.Z, axis.Y, 0},
		{axis.Z, 0, -axis.X, 0},
		{-axis.Y, axis.X, 0, 0},
	}
	k2 := k.Mul(k)

	return IdentityAffine().
		Add(k.Scale(math.Sin(angle))).
		Add(k2.Scale(1 - math.Cos(angle)))
}

// At returns the element at (row, col).
func (m Affine) At(row, col int) float64 {
	return m[row][col]
}

// Set sets the element at (row, col).
func (m *Affine) Set(row, col int, val float64) {
	m[row][col] = val
}

// Translation extracts the translation column.
func (m Affine) Translation() Vec3 {
	return Vec3{m[0][3], m[1][3], m[2][3]}
}

// SetTranslation replaces the translation column.
func (m *Affine) SetTranslation(v Vec3) {
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
}

// Linear returns a copy of m with the translation removed.
func (m Affine) Linear() Affine {
	m[0][3], m[1][3], m[2][3] = 0, 0, 0
	return m
}

// Scale multiplies every element by s.
func (m Affine) Scale(s float64) Affine {
	for r := range 3 {
		for c := range 4 {
			m[r][c] *= s
		}
	}
	return m
}

// Add returns the element-wise sum m + b.
func (m Affine) Add(b Affine) Affine {
	for r := range 3 {
		for c := range 4 {
			m[r][c] += b[r][c]
		}
	}
	return m
}

// Mul composes two transforms: the result applies b first, then a.
// The translation of b is carried through a's linear part.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Affine) Mul(b Affine) Affine {
	var m Affine
	for r := range 3 {
		for c := range 4 {
			sum := a[r][0]*b[0][c] + a[r][1]*b[1][c] + a[r][2]*b[2][c]
			if c == 3 {
				sum += a[r][3]
			}
			m[r][c] = sum
		}
	}
	return m
}

// Apply transforms v as a point.
func (m Affine) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3],
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3],
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3],
	}
}

// ApplyDir transforms v as a direction (no translation, no renormalization).
func (m Affine) ApplyDir(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// ApplyNormal transforms a normal with the linear part only and
// renormalizes it, so translation and scale do not change its length.
// A zero normal stays zero.
func (m Affine) ApplyNormal(n Vec3) Vec3 {
	v := m.ApplyDir(n)
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// RigidInverse inverts m assuming its linear part is a pure rotation:
// the rotation is transposed and the translation becomes -Rᵀt.
func (m Affine) RigidInverse() Affine {
	t := m.Translation()
	inv := Affine{
		{m[0][0], m[1][0], m[2][0], 0},
		{m[0][1], m[1][1], m[2][1], 0},
		{m[0][2], m[1][2], m[2][2], 0},
	}
	inv.SetTranslation(inv.ApplyDir(t).Negate())
	return inv
}

// Column returns column c of the linear part as a vector. Columns 0-2 are
// the transformed basis axes; column 3 is the translation.
func (m Affine) Column(c int) Vec3 {
	return Vec3{m[0][c], m[1][c], m[2][c]}
}

// Values returns the 12 elements in row-major order.
func (m Affine) Values() [12]float64 {
	var v [12]float64
	for r := range 3 {
		copy(v[r*4:r*4+4], m[r][:])
	}
	return v
}

// ApproxEqual reports whether every element of a and b differs by at most
// eps.
func (a Affine) ApproxEqual(b Affine, eps float64) bool {
	for r := range 3 {
		for c := range 4 {
			if math.Abs(a[r][c]-b[r][c]) > eps {
				return false
			}
		}
	}
	return true
}
