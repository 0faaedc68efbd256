package geometry

import (
	"fmt"
	"math"
)

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of fit (quality measure)
}

// FitCircle fits a circle to a set of 3D points sampled along an arc.
// The plane of the circle is derived from the samples themselves, so the
// arc may have any orientation in space.
// Returns the best-fit circle parameters or an error if the fit fails.
//
// Uses the 3-point determinant formula for calculating a circle through 3 points:
//   D = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//   cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//   cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
func FitCircle(points []Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit a circle")
	}

	// Step 1: Pick 3 points with good coverage of the arc and derive
	// the plane they span
	a := points[0]
	b := points[len(points)/2]
	c := points[len(points)-1]

	ab := b.Sub(a)
	ac := c.Sub(a)
	normal := ab.Cross(ac)
	if normal.Length() < 1e-10 {
		return nil, fmt.Errorf("points are collinear")
	}
	normal = normal.Normalize()

	// Step 2: Build an in-plane basis and project all points to 2D
	u := ab.Normalize()
	w := normal.Cross(u)

	points2D := make([][2]float64, len(points))
	for i, p := range points {
		d := p.Sub(a)
		points2D[i] = [2]float64{d.Dot(u), d.Dot(w)}
	}

	p1 := points2D[0]
	p2 := points2D[len(points2D)/2]
	p3 := points2D[len(points2D)-1]

	// Step 3: Calculate circle center using determinant formula
	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]
	x3, y3 := p3[0], p3[1]

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, fmt.Errorf("points are collinear")
	}

	x1sq := x1*x1 + y1*y1
	x2sq := x2*x2 + y2*y2
	x3sq := x3*x3 + y3*y3

	cx2d := (x1sq*(y2-y3) + x2sq*(y3-y1) + x3sq*(y1-y2)) / D
	cy2d := (x1sq*(x3-x2) + x2sq*(x1-x3) + x3sq*(x2-x1)) / D

	// Calculate radius as distance from center to first point
	dx := x1 - cx2d
	dy := y1 - cy2d
	radius := math.Sqrt(dx*dx + dy*dy)

	// Step 4: Transform center back to 3D
	center := a.Add(u.Mul(cx2d)).Add(w.Mul(cy2d))

	// Step 5: Calculate fit quality (standard deviation of distances for all points)
	n := float64(len(points2D))
	var sumError float64
	for _, p := range points2D {
		dx := p[0] - cx2d
		dy := p[1] - cy2d
		dist := math.Sqrt(dx*dx + dy*dy)
		sumError += (dist - radius) * (dist - radius)
	}
	stdDev := math.Sqrt(sumError / n)

	return &CircleFit{
		Center: center,
		Radius: radius,
		Normal: normal,
		StdDev: stdDev,
	}, nil
}
