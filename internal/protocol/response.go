package protocol

import (
	"viewer-backend/pkg/geometry"
)

// Precision is the number of decimals all float fields are rounded to
// before transmission
const Precision = 2

// Envelope values shared by all backend responses
const (
	ResponseType    = "backend_response"
	ResponseSubtype = "tool_response"
)

// Tuple3 is a point serialized as a flat JSON array
type Tuple3 [3]float64

// NewTuple3 converts a vector into its wire representation
func NewTuple3(v geometry.Vector3) *Tuple3 {
	return &Tuple3{v.X, v.Y, v.Z}
}

func (t *Tuple3) round() {
	if t == nil {
		return
	}
	for i, v := range t {
		t[i] = geometry.Round(v, Precision)
	}
}

func roundFloat(v *float64) {
	if v != nil {
		*v = geometry.Round(*v, Precision)
	}
}

// Response is a measurement result that can round its float fields
// before being flattened onto the wire
type Response interface {
	Round()
}

// DistanceResponse reports the distance between two shape centers
type DistanceResponse struct {
	Type     string   `json:"type"`
	Subtype  string   `json:"subtype"`
	ToolType string   `json:"tool_type"`
	Point1   *Tuple3  `json:"point1,omitempty"`
	Point2   *Tuple3  `json:"point2,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
}

// NewDistanceResponse creates a distance response with its envelope set
func NewDistanceResponse() *DistanceResponse {
	return &DistanceResponse{Type: ResponseType, Subtype: ResponseSubtype, ToolType: ToolDistance}
}

// Round rounds all float fields to the wire precision
func (r *DistanceResponse) Round() {
	r.Point1.round()
	r.Point2.round()
	roundFloat(r.Distance)
}

// PropertiesResponse reports the geometric properties of a single shape
type PropertiesResponse struct {
	Type         string   `json:"type"`
	Subtype      string   `json:"subtype"`
	ToolType     string   `json:"tool_type"`
	Center       *Tuple3  `json:"center,omitempty"`
	VertexCoords *Tuple3  `json:"vertex_coords,omitempty"`
	Length       *float64 `json:"length,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Area         *float64 `json:"area,omitempty"`
	Volume       *float64 `json:"volume,omitempty"`
	Radius       *float64 `json:"radius,omitempty"`
	GeomType     string   `json:"geom_type,omitempty"`
}

// NewPropertiesResponse creates a properties response with its envelope set
func NewPropertiesResponse() *PropertiesResponse {
	return &PropertiesResponse{Type: ResponseType, Subtype: ResponseSubtype, ToolType: ToolProperties}
}

// Round rounds all float fields to the wire precision
func (r *PropertiesResponse) Round() {
	r.Center.round()
	r.VertexCoords.round()
	roundFloat(r.Length)
	roundFloat(r.Width)
	roundFloat(r.Area)
	roundFloat(r.Volume)
	roundFloat(r.Radius)
}

// AngleResponse reports the angle between two shapes together with
// their centers as visualization anchors
type AngleResponse struct {
	Type     string   `json:"type"`
	Subtype  string   `json:"subtype"`
	ToolType string   `json:"tool_type"`
	Angle    *float64 `json:"angle,omitempty"`
	Point1   *Tuple3  `json:"point1,omitempty"`
	Point2   *Tuple3  `json:"point2,omitempty"`
}

// NewAngleResponse creates an angle response with its envelope set
func NewAngleResponse() *AngleResponse {
	return &AngleResponse{Type: ResponseType, Subtype: ResponseSubtype, ToolType: ToolAngle}
}

// Round rounds all float fields to the wire precision
func (r *AngleResponse) Round() {
	roundFloat(r.Angle)
	r.Point1.round()
	r.Point2.round()
}

// Float is a convenience for building optional float fields
func Float(v float64) *float64 {
	return &v
}
