// Package entity models the open tagged variant of drawable CAD
// entities. Each kind gets its own payload type carrying exactly its own
// fields; common attributes (layer, colour, line type, line weight,
// handle) live on the outer Entity. This replaces the "read the kind
// field to know which union arm is live" discipline of a single untagged
// struct with ordinary Go interface dispatch.
package entity

import (
	"math"

	"github.com/f4ah6o/cadutil/geom"
)

// Kind identifies which of the nineteen supported entity variants a
// Payload carries. The zero value, KindUnknown, never appears on an
// Entity produced by a reader adapter; it exists so report vectors
// indexed by Kind have a slot for "none of the above".
type Kind int

const (
	KindUnknown Kind = iota
	KindPoint
	KindLine
	KindCircle
	KindArc
	KindEllipse
	KindPolyline
	KindLWPolyline
	KindSpline
	KindText
	KindMText
	KindInsert
	KindHatch
	KindDimension
	KindLeader
	KindSolid
	KindTrace
	Kind3DFace
	KindImage
	KindViewport

	// KindCount is the number of slots a per-kind count vector needs
	// (KindUnknown through KindViewport inclusive).
	KindCount = int(KindViewport) + 1
)

var kindNames = map[Kind]string{
	KindUnknown:    "UNKNOWN",
	KindPoint:      "POINT",
	KindLine:       "LINE",
	KindCircle:     "CIRCLE",
	KindArc:        "ARC",
	KindEllipse:    "ELLIPSE",
	KindPolyline:   "POLYLINE",
	KindLWPolyline: "LWPOLYLINE",
	KindSpline:     "SPLINE",
	KindText:       "TEXT",
	KindMText:      "MTEXT",
	KindInsert:     "INSERT",
	KindHatch:      "HATCH",
	KindDimension:  "DIMENSION",
	KindLeader:     "LEADER",
	KindSolid:      "SOLID",
	KindTrace:      "TRACE",
	Kind3DFace:     "3DFACE",
	KindImage:      "IMAGE",
	KindViewport:   "VIEWPORT",
}

// String returns the DXF-style mnemonic for k, e.g. "LWPOLYLINE".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Payload is the per-kind geometry variant. Kind reports which variant
// is live; Bound reports the variant's contribution to the document
// bounding box, or ok=false if the kind carries no boundable geometry
// (DIMENSION, LEADER, HATCH, IMAGE, VIEWPORT summarise their kind only).
type Payload interface {
	Kind() Kind
	Bound() (box geom.BoundingBox, ok bool)
}

// Entity is a single drawable element: common attributes plus its kind
// payload.
type Entity struct {
	Layer      string  // "" adopts layer "0"
	Color      int     // 0-256; 0=BYBLOCK, 256=BYLAYER
	LineType   string  // name, or geom.LineTypeByLayer
	LineWeight float64 // millimetres, or geom.LineWeightByLayer
	Handle     int     // non-negative; 0 permissible when unset upstream
	Geometry   Payload
}

// Kind returns the entity's variant tag.
func (e *Entity) Kind() Kind {
	if e.Geometry == nil {
		return KindUnknown
	}
	return e.Geometry.Kind()
}

// Bound returns the entity's contribution to the document bounding box.
func (e *Entity) Bound() (geom.BoundingBox, bool) {
	if e.Geometry == nil {
		return geom.BoundingBox{}, false
	}
	return e.Geometry.Bound()
}

// EffectiveLayer returns e.Layer, or "0" when e.Layer is empty.
func (e *Entity) EffectiveLayer() string {
	if e.Layer == "" {
		return "0"
	}
	return e.Layer
}

// Point is the POINT payload.
type Point struct {
	P geom.Point3D
}

func (Point) Kind() Kind { return KindPoint }
func (g Point) Bound() (geom.BoundingBox, bool) {
	return geom.BoundingBox{Min: g.P, Max: g.P}, true
}

// Line is the LINE payload.
type Line struct {
	P1, P2 geom.Point3D
}

func (Line) Kind() Kind { return KindLine }
func (g Line) Bound() (geom.BoundingBox, bool) {
	return geom.FromPoints([]geom.Point3D{g.P1, g.P2}), true
}

// Circle is the CIRCLE payload.
type Circle struct {
	Center geom.Point3D
	Radius float64
}

func (Circle) Kind() Kind { return KindCircle }
func (g Circle) Bound() (geom.BoundingBox, bool) {
	return circularBound(g.Center, g.Radius), true
}

// Arc is the ARC payload. Angles are radians, counter-clockwise;
// EndAngle may be less than StartAngle, which denotes a sweep crossing
// zero.
type Arc struct {
	Center               geom.Point3D
	Radius               float64
	StartAngle, EndAngle float64
}

func (Arc) Kind() Kind { return KindArc }
func (g Arc) Bound() (geom.BoundingBox, bool) {
	// Spec-mandated approximation: an arc's box is the enclosure of its
	// full circle, same as CIRCLE, ignoring the swept range.
	return circularBound(g.Center, g.Radius), true
}

// Sweep returns the arc's angular span in [0, 2*pi), handling the
// crossing-zero case where EndAngle < StartAngle.
func (g Arc) Sweep() float64 {
	span := g.EndAngle - g.StartAngle
	if span < 0 {
		span += 2 * math.Pi
	}
	return span
}

func circularBound(center geom.Point3D, radius float64) geom.BoundingBox {
	r := math.Abs(radius)
	return geom.BoundingBox{
		Min: geom.Point3D{X: center.X - r, Y: center.Y - r, Z: center.Z},
		Max: geom.Point3D{X: center.X + r, Y: center.Y + r, Z: center.Z},
	}
}

// Ellipse is the ELLIPSE payload. MajorAxisEndpoint is relative to
// Center. Ratio is minor/major, in (0, 1]. StartParam/EndParam bound the
// elliptical arc in the ellipse's own parameter space.
type Ellipse struct {
	Center            geom.Point3D
	MajorAxisEndpoint geom.Point3D
	Ratio             float64
	StartParam        float64
	EndParam          float64
}

func (Ellipse) Kind() Kind { return KindEllipse }

// Bound deliberately approximates with the bounding circle of the major
// axis length: too large, never too small, and avoids the trigonometry
// an exact ellipse box requires.
func (g Ellipse) Bound() (geom.BoundingBox, bool) {
	majorRadius := g.MajorAxisEndpoint.Length()
	return circularBound(g.Center, majorRadius), true
}

// FullCircle reports whether the elliptical arc spans a full revolution
// (used by writers to set the format's full-circle flag).
func (g Ellipse) FullCircle(epsilon float64) bool {
	span := g.EndParam - g.StartParam
	if span < 0 {
		span += 2 * math.Pi
	}
	return span >= 2*math.Pi-epsilon
}

// Polyline is the LWPOLYLINE/POLYLINE payload. Lightweight selects which
// of the two kinds this instance is.
type Polyline struct {
	Lightweight bool
	Closed      bool
	Vertices    []geom.Point3D
}

func (g Polyline) Kind() Kind {
	if g.Lightweight {
		return KindLWPolyline
	}
	return KindPolyline
}

func (g Polyline) Bound() (geom.BoundingBox, bool) {
	if len(g.Vertices) == 0 {
		return geom.BoundingBox{}, false
	}
	return geom.FromPoints(g.Vertices), true
}

// VertexCount returns len(Vertices), the field spec.md's payload table
// names explicitly.
func (g Polyline) VertexCount() int { return len(g.Vertices) }

// Spline is the SPLINE payload. Control points are kept (beyond the
// degree/closed/count fields spec.md's table names) so bounds
// accumulation and full-detail reporting have something to draw on, the
// same way Polyline keeps its vertex sequence.
type Spline struct {
	ControlPoints []geom.Point3D
	Degree        int
	Closed        bool
}

func (Spline) Kind() Kind { return KindSpline }
func (g Spline) Bound() (geom.BoundingBox, bool) {
	if len(g.ControlPoints) == 0 {
		return geom.BoundingBox{}, false
	}
	return geom.FromPoints(g.ControlPoints), true
}

// ControlPointCount returns len(ControlPoints).
func (g Spline) ControlPointCount() int { return len(g.ControlPoints) }

// Text is the TEXT/MTEXT payload. MText selects which of the two kinds
// this instance is.
type Text struct {
	MText     bool
	Insertion geom.Point3D
	Text      string
	Height    float64
	Rotation  float64
}

func (g Text) Kind() Kind {
	if g.MText {
		return KindMText
	}
	return KindText
}

func (g Text) Bound() (geom.BoundingBox, bool) {
	return geom.BoundingBox{Min: g.Insertion, Max: g.Insertion}, true
}

// Insert is the INSERT payload: a block reference instanced at a point
// with independent X/Y scale and a rotation.
type Insert struct {
	BlockName string
	Insertion geom.Point3D
	ScaleX    float64
	ScaleY    float64
	Rotation  float64
}

func (Insert) Kind() Kind { return KindInsert }
func (g Insert) Bound() (geom.BoundingBox, bool) {
	return geom.BoundingBox{Min: g.Insertion, Max: g.Insertion}, true
}

// QuadKind distinguishes the three four-corner entity kinds, which share
// an identical payload shape.
type QuadKind int

const (
	QuadSolid QuadKind = iota
	QuadTrace
	Quad3DFace
)

// Quad is the SOLID/TRACE/3DFACE payload: four corner points.
type Quad struct {
	Which   QuadKind
	Corners [4]geom.Point3D
}

func (g Quad) Kind() Kind {
	switch g.Which {
	case QuadTrace:
		return KindTrace
	case Quad3DFace:
		return Kind3DFace
	default:
		return KindSolid
	}
}

func (g Quad) Bound() (geom.BoundingBox, bool) {
	return geom.FromPoints(g.Corners[:]), true
}

// Summary is the payload for kinds whose geometry is not losslessly
// preserved: DIMENSION, LEADER, HATCH, IMAGE, VIEWPORT. Only the kind
// tag survives; Bound reports no contribution.
type Summary struct {
	SummaryKind Kind
}

func (g Summary) Kind() Kind { return g.SummaryKind }
func (Summary) Bound() (geom.BoundingBox, bool) {
	return geom.BoundingBox{}, false
}
