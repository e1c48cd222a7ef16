package interchange

import (
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

// orbToFGBGeometryType maps the subset of orb.Geometry this package
// produces (Point, LineString, Ring/Polygon) to its FlatGeobuf type
// tag. Adapted from the teacher's own conversion, trimmed to the
// shapes ToFeatureCollection can actually produce — cadutil never
// emits MultiPoint/MultiLineString/MultiPolygon/Collection, so those
// arms are dropped rather than carried unreachable.
func orbToFGBGeometryType(g orb.Geometry) flattypes.GeometryType {
	switch g.(type) {
	case orb.Point:
		return flattypes.GeometryTypePoint
	case orb.LineString:
		return flattypes.GeometryTypeLineString
	case orb.Ring, orb.Polygon:
		return flattypes.GeometryTypePolygon
	default:
		return flattypes.GeometryTypeUnknown
	}
}

// geometryToFGB converts one projected orb.Geometry into a FlatGeobuf
// writer.Geometry builder value.
func geometryToFGB(g orb.Geometry, builder *flatbuffers.Builder) *writer.Geometry {
	if g == nil {
		return nil
	}

	fg := writer.NewGeometry(builder)

	switch v := g.(type) {
	case orb.Point:
		fg.SetType(flattypes.GeometryTypePoint)
		fg.SetXY([]float64{v[0], v[1]})

	case orb.LineString:
		fg.SetType(flattypes.GeometryTypeLineString)
		fg.SetXY(pointsToXY(v))

	case orb.Ring:
		fg.SetType(flattypes.GeometryTypePolygon)
		fg.SetXY(pointsToXY(v))
		fg.SetEnds([]uint32{uint32(len(v))})

	case orb.Polygon:
		fg.SetType(flattypes.GeometryTypePolygon)
		xy, ends := polygonToXYEnds(v)
		fg.SetXY(xy)
		fg.SetEnds(ends)

	default:
		return nil
	}

	return fg
}

func pointsToXY(pts []orb.Point) []float64 {
	xy := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		xy = append(xy, p[0], p[1])
	}
	return xy
}

func polygonToXYEnds(poly orb.Polygon) ([]float64, []uint32) {
	total := 0
	for _, ring := range poly {
		total += len(ring)
	}
	xy := make([]float64, 0, total*2)
	ends := make([]uint32, 0, len(poly))
	cumulative := uint32(0)
	for _, ring := range poly {
		for _, p := range ring {
			xy = append(xy, p[0], p[1])
		}
		cumulative += uint32(len(ring))
		ends = append(ends, cumulative)
	}
	return xy, ends
}
