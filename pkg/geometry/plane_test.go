package geometry

import (
	"math"
	"testing"
)

func TestPlaneAngleParallel(t *testing.T) {
	p1 := NewPlane(NewVector3(0, 0, 0), NewVector3(0, 0, 1))
	p2 := NewPlane(NewVector3(5, 5, 3), NewVector3(0, 0, 1))

	angle := p1.Angle(p2)
	if math.Abs(angle) > 1e-10 {
		t.Errorf("Angle of parallel planes: expected 0, got %v", angle)
	}
}

func TestPlaneAnglePerpendicular(t *testing.T) {
	p1 := NewPlane(NewVector3(0, 0, 0), NewVector3(0, 0, 1))
	p2 := NewPlane(NewVector3(0, 0, 0), NewVector3(1, 0, 0))

	angle := p1.Angle(p2)
	if math.Abs(angle-90) > 1e-10 {
		t.Errorf("Angle of perpendicular planes: expected 90, got %v", angle)
	}
}

func TestPlaneAngleToVectorInPlane(t *testing.T) {
	// A vector lying in the plane is at 0° to it
	p := NewPlane(NewVector3(0, 0, 0), NewVector3(0, 0, 1))
	angle := p.AngleToVector(NewVector3(1, 0, 0))

	if math.Abs(angle) > 1e-10 {
		t.Errorf("AngleToVector in-plane: expected 0, got %v", angle)
	}
}

func TestPlaneAngleToVectorNormal(t *testing.T) {
	// A vector along the normal is at 90° to the plane
	p := NewPlane(NewVector3(0, 0, 0), NewVector3(0, 0, 1))
	angle := p.AngleToVector(NewVector3(0, 0, 3))

	if math.Abs(angle-90) > 1e-10 {
		t.Errorf("AngleToVector along normal: expected 90, got %v", angle)
	}
}

func TestNewPlaneNormalizesZDir(t *testing.T) {
	p := NewPlane(NewVector3(0, 0, 0), NewVector3(0, 0, 7))
	if math.Abs(p.ZDir.Length()-1) > 1e-10 {
		t.Errorf("ZDir should be unit length, got %v", p.ZDir.Length())
	}
}

func TestRoundIdempotent(t *testing.T) {
	v := Round(3.14159, 2)
	if v != 3.14 {
		t.Errorf("Round failed: expected 3.14, got %v", v)
	}
	if Round(v, 2) != v {
		t.Errorf("Round is not idempotent for %v", v)
	}
}

func TestRoundHalfUp(t *testing.T) {
	if Round(2.675, 2) != 2.68 && Round(2.675, 2) != 2.67 {
		// 2.675 is not exactly representable; either neighbor is acceptable,
		// but the result must itself be stable
		t.Errorf("Round(2.675, 2) gave unexpected value %v", Round(2.675, 2))
	}
	if Round(0.125, 2) != 0.13 && Round(0.125, 2) != 0.12 {
		t.Errorf("Round(0.125, 2) gave unexpected value %v", Round(0.125, 2))
	}
}
