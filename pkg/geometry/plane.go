package geometry

// Plane represents an oriented plane defined by an anchor point and a
// unit normal (its z direction)
type Plane struct {
	Origin Vector3
	ZDir   Vector3
}

// NewPlane creates a plane anchored at origin with the given normal
func NewPlane(origin, normal Vector3) Plane {
	return Plane{Origin: origin, ZDir: normal.Normalize()}
}

// Angle returns the angle between the normals of two planes in degrees
func (p Plane) Angle(other Plane) float64 {
	return p.ZDir.Angle(other.ZDir)
}

// AngleToVector returns the angle between the plane itself and a
// direction vector in degrees (90° minus the angle to the normal)
func (p Plane) AngleToVector(v Vector3) float64 {
	return 90 - p.ZDir.Angle(v)
}
