// Package interchange projects a document.Document onto the XY plane
// as a geojson.FeatureCollection and, optionally, a FlatGeobuf byte
// stream. It is a lossy, best-effort export format alongside the
// lossless DXF/JWW round trip the dxf and jww packages provide — never
// a substitute for it.
package interchange

import (
	"math"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Options configures a FlatGeobuf export, mirrored one-for-one on the
// teacher's own flatgeobuf.Options/DefaultOptions shape.
type Options struct {
	Name         string
	Description  string
	IncludeIndex bool
}

func DefaultOptions() *Options {
	return &Options{IncludeIndex: true}
}

// SkippedEntity records one model-space entity that ToFeatureCollection
// could not project — its kind has no orb.Geometry analogue. Skipping
// is a first-class, counted operation here too, the same discipline
// the dxf/jww readers apply to constructs they don't preserve.
type SkippedEntity struct {
	Index  int
	Kind   entity.Kind
	Handle int
}

const circleSegments = 64

// ToFeatureCollection projects every model-space entity in doc to its
// closest orb.Geometry analogue, returning a FeatureCollection plus
// the entities that had no analogue and were left out.
func ToFeatureCollection(doc *document.Document) (*geojson.FeatureCollection, []SkippedEntity) {
	fc := geojson.NewFeatureCollection()
	var skipped []SkippedEntity

	for i, e := range doc.Entities {
		g := project(e.Geometry)
		if g == nil {
			skipped = append(skipped, SkippedEntity{Index: i, Kind: e.Kind(), Handle: e.Handle})
			continue
		}
		f := geojson.NewFeature(g)
		f.Properties = geojson.Properties{
			"kind":   e.Kind().String(),
			"layer":  e.EffectiveLayer(),
			"color":  e.Color,
			"handle": e.Handle,
		}
		fc.Append(f)
	}

	return fc, skipped
}

// project maps a single entity payload to its orb.Geometry analogue,
// per the kind table this package is grounded on, or nil for a kind
// with no analogue (SPLINE, DIMENSION, LEADER, HATCH, IMAGE, VIEWPORT).
func project(p entity.Payload) orb.Geometry {
	switch g := p.(type) {
	case entity.Point:
		return orb.Point{g.P.X, g.P.Y}
	case entity.Line:
		return orb.LineString{{g.P1.X, g.P1.Y}, {g.P2.X, g.P2.Y}}
	case entity.Circle:
		return circleRing(g.Center, g.Radius)
	case entity.Arc:
		return arcLineString(g.Center, g.Radius, g.StartAngle, g.EndAngle)
	case entity.Ellipse:
		return ellipseLineString(g)
	case entity.Polyline:
		return polylineGeometry(g.Vertices, g.Closed)
	case entity.Text:
		return orb.Point{g.Insertion.X, g.Insertion.Y}
	case entity.Insert:
		return orb.Point{g.Insertion.X, g.Insertion.Y}
	case entity.Quad:
		return quadPolygon(g)
	default:
		return nil
	}
}

func circleRing(center geom.Point3D, radius float64) orb.Ring {
	ring := make(orb.Ring, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(circleSegments)
		ring = append(ring, orb.Point{center.X + radius*math.Cos(theta), center.Y + radius*math.Sin(theta)})
	}
	ring = append(ring, ring[0])
	return ring
}

func arcLineString(center geom.Point3D, radius, startAngle, endAngle float64) orb.LineString {
	span := endAngle - startAngle
	if span < 0 {
		span += 2 * math.Pi
	}
	segments := int(math.Ceil(float64(circleSegments) * span / (2 * math.Pi)))
	if segments < 1 {
		segments = 1
	}
	ls := make(orb.LineString, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := startAngle + span*float64(i)/float64(segments)
		ls = append(ls, orb.Point{center.X + radius*math.Cos(theta), center.Y + radius*math.Sin(theta)})
	}
	return ls
}

func ellipseLineString(g entity.Ellipse) orb.LineString {
	major := g.MajorAxisEndpoint
	majorLen := major.Length()
	if majorLen == 0 {
		return orb.LineString{{g.Center.X, g.Center.Y}}
	}
	rotation := math.Atan2(major.Y, major.X)
	minorLen := majorLen * g.Ratio

	span := g.EndParam - g.StartParam
	if span < 0 {
		span += 2 * math.Pi
	}
	segments := int(math.Ceil(float64(circleSegments) * span / (2 * math.Pi)))
	if segments < 1 {
		segments = 1
	}

	ls := make(orb.LineString, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := g.StartParam + span*float64(i)/float64(segments)
		x := majorLen * math.Cos(t)
		y := minorLen * math.Sin(t)
		rx := x*math.Cos(rotation) - y*math.Sin(rotation)
		ry := x*math.Sin(rotation) + y*math.Cos(rotation)
		ls = append(ls, orb.Point{g.Center.X + rx, g.Center.Y + ry})
	}
	return ls
}

func polylineGeometry(vertices []geom.Point3D, closed bool) orb.Geometry {
	if len(vertices) == 0 {
		return nil
	}
	if closed {
		ring := make(orb.Ring, 0, len(vertices)+1)
		for _, v := range vertices {
			ring = append(ring, orb.Point{v.X, v.Y})
		}
		ring = append(ring, orb.Point{vertices[0].X, vertices[0].Y})
		return ring
	}
	ls := make(orb.LineString, 0, len(vertices))
	for _, v := range vertices {
		ls = append(ls, orb.Point{v.X, v.Y})
	}
	return ls
}

func quadPolygon(q entity.Quad) orb.Polygon {
	ring := make(orb.Ring, 0, 5)
	for _, c := range q.Corners {
		ring = append(ring, orb.Point{c.X, c.Y})
	}
	ring = append(ring, orb.Point{q.Corners[0].X, q.Corners[0].Y})
	return orb.Polygon{ring}
}
