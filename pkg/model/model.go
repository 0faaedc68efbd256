package model

import (
	"errors"
	"fmt"
	"strings"

	"viewer-backend/pkg/geometry"
)

// ErrShapeNotFound is returned when a selection references an id that is
// not part of the current scene
var ErrShapeNotFound = errors.New("shape not found")

// Kind discriminates the shape variants of the scene graph
type Kind string

const (
	KindVertex Kind = "vertex"
	KindEdge   Kind = "edge"
	KindFace   Kind = "face"
	KindSolid  Kind = "solid"
)

// GeomType is the kernel's label for a shape's underlying curve or
// surface, transferred uppercase (e.g. "CIRCLE", "CYLINDER")
type GeomType string

const (
	GeomLine     GeomType = "LINE"
	GeomCircle   GeomType = "CIRCLE"
	GeomEllipse  GeomType = "ELLIPSE"
	GeomPlane    GeomType = "PLANE"
	GeomCylinder GeomType = "CYLINDER"
	GeomVertex   GeomType = "VERTEX"
)

// Label returns the geom type capitalized for responses ("CIRCLE" -> "Circle")
func (g GeomType) Label() string {
	s := string(g)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// IsCircular reports whether the geom type is a circle or an ellipse
func (g GeomType) IsCircular() bool {
	return g == GeomCircle || g == GeomEllipse
}

// Shape is a tagged union over the four shape variants. Exactly one of
// the variant payloads is set, matching Kind.
type Shape struct {
	Kind   Kind        `json:"kind"`
	Vertex *VertexData `json:"vertex,omitempty"`
	Edge   *EdgeData   `json:"edge,omitempty"`
	Face   *FaceData   `json:"face,omitempty"`
	Solid  *SolidData  `json:"solid,omitempty"`
}

// VertexData carries the geometry of a vertex
type VertexData struct {
	Point geometry.Vector3 `json:"point"`
}

// EdgeData carries the kernel-computed geometry of an edge
type EdgeData struct {
	GeomType  GeomType           `json:"geom_type"`
	Length    float64            `json:"length"`
	Center    geometry.Vector3   `json:"center"`               // midpoint on the curve
	Start     geometry.Vector3   `json:"start"`                // point at parameter 0
	Tangent   geometry.Vector3   `json:"tangent"`              // direction at parameter 0
	Normal    geometry.Vector3   `json:"normal"`               // plane normal for circular geometry
	ArcCenter *geometry.Vector3  `json:"arc_center,omitempty"` // center of circular/elliptical curves
	Radius    *float64           `json:"radius,omitempty"`
	Points    []geometry.Vector3 `json:"points,omitempty"` // tessellated samples
}

// FaceData carries the kernel-computed geometry of a face
type FaceData struct {
	GeomType GeomType         `json:"geom_type"`
	Length   float64          `json:"length"`
	Width    float64          `json:"width"`
	Area     float64          `json:"area"`
	Center   geometry.Vector3 `json:"center"`
	Normal   geometry.Vector3 `json:"normal"`
	Edges    []EdgeData       `json:"edges,omitempty"` // boundary edges
}

// SolidData carries the kernel-computed geometry of a solid
type SolidData struct {
	GeomType GeomType         `json:"geom_type"`
	Volume   float64          `json:"volume"`
	Center   geometry.Vector3 `json:"center"`
}

// GeomType returns the kernel label of the shape's geometry. Vertices
// report the pseudo type "VERTEX".
func (s *Shape) GeomType() GeomType {
	switch s.Kind {
	case KindVertex:
		return GeomVertex
	case KindEdge:
		return s.Edge.GeomType
	case KindFace:
		return s.Face.GeomType
	case KindSolid:
		return s.Solid.GeomType
	}
	return ""
}

// Center returns the shape's generic geometric center as computed by
// the kernel
func (s *Shape) Center() geometry.Vector3 {
	switch s.Kind {
	case KindVertex:
		return s.Vertex.Point
	case KindEdge:
		return s.Edge.Center
	case KindFace:
		return s.Face.Center
	case KindSolid:
		return s.Solid.Center
	}
	return geometry.Vector3{}
}

// validate checks that the variant payload matches the kind
func (s *Shape) validate() error {
	var ok bool
	switch s.Kind {
	case KindVertex:
		ok = s.Vertex != nil
	case KindEdge:
		ok = s.Edge != nil
	case KindFace:
		ok = s.Face != nil
	case KindSolid:
		ok = s.Solid != nil
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	if !ok {
		return fmt.Errorf("shape of kind %q is missing its %s payload", s.Kind, s.Kind)
	}
	return nil
}

// ArcCenterPoint returns the arc center of a circular edge. If the
// kernel did not transfer it analytically, it is recovered from the
// tessellated sample points.
func (e *EdgeData) ArcCenterPoint() (geometry.Vector3, error) {
	if e.ArcCenter != nil {
		return *e.ArcCenter, nil
	}
	fit, err := geometry.FitCircle(e.Points)
	if err != nil {
		return geometry.Vector3{}, fmt.Errorf("edge has no arc center and none could be fitted: %w", err)
	}
	return fit.Center, nil
}

// RadiusValue returns the radius of a circular edge, fitting it from
// sample points when it was not transferred analytically
func (e *EdgeData) RadiusValue() (float64, error) {
	if e.Radius != nil {
		return *e.Radius, nil
	}
	fit, err := geometry.FitCircle(e.Points)
	if err != nil {
		return 0, fmt.Errorf("edge has no radius and none could be fitted: %w", err)
	}
	return fit.Radius, nil
}

// Scene is the full set of shapes from the most recent model transfer,
// keyed by identifier. It is replaced wholesale on each new model and
// never mutated in place.
type Scene struct {
	shapes map[string]*Shape
}

// NewScene creates a scene from a shape mapping
func NewScene(shapes map[string]*Shape) *Scene {
	return &Scene{shapes: shapes}
}

// Get looks up a shape by id
func (s *Scene) Get(id string) (*Shape, error) {
	if s == nil || s.shapes == nil {
		return nil, fmt.Errorf("no model loaded: %w", ErrShapeNotFound)
	}
	shape, ok := s.shapes[id]
	if !ok {
		return nil, fmt.Errorf("id %q: %w", id, ErrShapeNotFound)
	}
	return shape, nil
}

// Len returns the number of shapes in the scene
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.shapes)
}
