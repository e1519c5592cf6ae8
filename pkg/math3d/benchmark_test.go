package math3d

import (
	"testing"
)

func BenchmarkAffineMul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkAffineApply(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.Apply(v)
	}
}

func BenchmarkAffineApplyNormal(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	n := V3(0, 0, 1)

	for b.Loop() {
		_ = m.ApplyNormal(n)
	}
}

func BenchmarkAxisAngle(b *testing.B) {
	axis := V3(1, 2, 3)

	for b.Loop() {
		_ = AxisAngle(axis, 0.7)
	}
}

func BenchmarkRigidInverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(AxisAngle(V3(1, 1, 0), 0.5))

	for b.Loop() {
		_ = m.RigidInverse()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Dot(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}

func BenchmarkViewComposition(b *testing.B) {
	// Simulate building the camera-space transform like the pipeline does
	cam := Translate(V3(0, 0, -2000)).Mul(RotateY(0.3))
	obj := AxisAngle(V3(0, 1, 0), 0.2)

	for b.Loop() {
		_ = cam.RigidInverse().Mul(obj)
	}
}
