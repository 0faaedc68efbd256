package analysis

import (
	"errors"
	"fmt"
	"math"

	"viewer-backend/internal/protocol"
	"viewer-backend/pkg/geometry"
	"viewer-backend/pkg/model"
)

// ErrNoReference is returned when a shape cannot provide a directional
// reference for the angle tool (e.g. a vertex or a solid)
var ErrNoReference = errors.New("shape has no directional reference")

// Center returns the representative point of a shape. The point depends
// on the active tool: a circular edge's center for the distance tool is
// the arc center (off the curve), while the properties tool wants the
// curve midpoint. Shapes the rules don't cover fall through to the
// kernel's generic center.
func Center(shape *model.Shape, forDistance bool) geometry.Vector3 {
	switch shape.Kind {
	case model.KindVertex:
		return shape.Vertex.Point

	case model.KindEdge:
		e := shape.Edge
		if e.GeomType.IsCircular() {
			if !forDistance {
				return e.Center
			}
			if c, err := e.ArcCenterPoint(); err == nil {
				return c
			}
		}

	case model.KindFace:
		f := shape.Face
		if f.GeomType == model.GeomCylinder {
			if !forDistance {
				return f.Center
			}
			arcs := boundaryArcCenters(f)
			switch len(arcs) {
			case 2:
				// Open cylindrical band: midpoint of the axis
				return arcs[0].Midpoint(arcs[1])
			case 1:
				return arcs[0]
			}
		}
	}

	return shape.Center()
}

// boundaryArcCenters collects the arc centers of a face's circular
// boundary edges
func boundaryArcCenters(f *model.FaceData) []geometry.Vector3 {
	var centers []geometry.Vector3
	for i := range f.Edges {
		e := &f.Edges[i]
		if e.GeomType != model.GeomCircle {
			continue
		}
		c, err := e.ArcCenterPoint()
		if err != nil {
			continue
		}
		centers = append(centers, c)
	}
	return centers
}

// Properties computes the properties measurement for a single shape
func Properties(shape *model.Shape) (*protocol.PropertiesResponse, error) {
	r := protocol.NewPropertiesResponse()

	switch shape.Kind {
	case model.KindVertex:
		r.VertexCoords = protocol.NewTuple3(shape.Vertex.Point)

	case model.KindEdge:
		e := shape.Edge
		if e.GeomType == model.GeomCircle {
			radius, err := e.RadiusValue()
			if err != nil {
				return nil, fmt.Errorf("edge radius: %w", err)
			}
			r.Radius = protocol.Float(radius)
		}
		r.Length = protocol.Float(e.Length)

	case model.KindFace:
		f := shape.Face
		if f.GeomType == model.GeomCylinder {
			if radius, ok := boundaryRadius(f); ok {
				r.Radius = protocol.Float(radius)
			}
		}
		r.Length = protocol.Float(f.Length)
		r.Width = protocol.Float(f.Width)
		r.Area = protocol.Float(f.Area)

	case model.KindSolid:
		r.Volume = protocol.Float(shape.Solid.Volume)
	}

	// A vertex carries no meaningful geometry kind
	if shape.Kind != model.KindVertex {
		r.GeomType = shape.GeomType().Label()
	}
	r.Center = protocol.NewTuple3(Center(shape, false))
	r.Round()
	return r, nil
}

// boundaryRadius returns the radius of the first circular boundary edge
// of a face
func boundaryRadius(f *model.FaceData) (float64, bool) {
	for i := range f.Edges {
		e := &f.Edges[i]
		if e.GeomType != model.GeomCircle {
			continue
		}
		radius, err := e.RadiusValue()
		if err != nil {
			continue
		}
		return radius, true
	}
	return 0, false
}

// Distance computes the distance measurement between two shapes
func Distance(shape1, shape2 *model.Shape) *protocol.DistanceResponse {
	p1 := Center(shape1, true)
	p2 := Center(shape2, true)

	r := protocol.NewDistanceResponse()
	r.Point1 = protocol.NewTuple3(p1)
	r.Point2 = protocol.NewTuple3(p2)
	r.Distance = protocol.Float(p1.Distance(p2))
	r.Round()
	return r
}

// reference is the directional reference an angle operand reduces to:
// either an oriented plane or a direction vector
type reference struct {
	plane  *geometry.Plane
	vector *geometry.Vector3
}

// angleReference derives a shape's directional reference: the plane of
// a face, a normal-aligned plane anchored at parameter 0 for circular
// and elliptical edges, or the tangent at parameter 0 for other edges
func angleReference(shape *model.Shape) (reference, error) {
	switch shape.Kind {
	case model.KindFace:
		p := geometry.NewPlane(shape.Face.Center, shape.Face.Normal)
		return reference{plane: &p}, nil

	case model.KindEdge:
		e := shape.Edge
		if e.GeomType.IsCircular() {
			normal := e.Normal
			if normal.Length() == 0 {
				// Tessellated edge without analytic data
				fit, err := geometry.FitCircle(e.Points)
				if err != nil {
					return reference{}, fmt.Errorf("circular edge has no normal: %w", err)
				}
				normal = fit.Normal
			}
			p := geometry.NewPlane(e.Start, normal)
			return reference{plane: &p}, nil
		}
		if e.Tangent.Length() == 0 {
			return reference{}, fmt.Errorf("edge %s: %w", e.GeomType, ErrNoReference)
		}
		tangent := e.Tangent
		return reference{vector: &tangent}, nil
	}

	return reference{}, fmt.Errorf("%s: %w", shape.Kind, ErrNoReference)
}

// Angle computes the angle measurement between two shapes. The two
// anchor points reported alongside the angle are the shapes'
// distance-mode centers, used by the viewer for visualization only.
func Angle(shape1, shape2 *model.Shape) (*protocol.AngleResponse, error) {
	first, err := angleReference(shape1)
	if err != nil {
		return nil, err
	}
	second, err := angleReference(shape2)
	if err != nil {
		return nil, err
	}

	var angle float64
	switch {
	case first.plane != nil && second.plane != nil:
		angle = first.plane.Angle(*second.plane)
	case first.vector != nil && second.vector != nil:
		angle = first.vector.Angle(*second.vector)
	default:
		plane, vector := first.plane, second.vector
		if plane == nil {
			plane, vector = second.plane, first.vector
		}
		angle = plane.AngleToVector(*vector)
	}
	angle = math.Abs(angle)

	r := protocol.NewAngleResponse()
	r.Angle = protocol.Float(angle)
	r.Point1 = protocol.NewTuple3(Center(shape1, true))
	r.Point2 = protocol.NewTuple3(Center(shape2, true))
	r.Round()
	return r, nil
}
