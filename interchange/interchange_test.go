package interchange

import (
	"math"
	"testing"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
	"github.com/paulmach/orb"
)

func TestToFeatureCollection_SkipsUnprojectableKinds(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Handle: 1, Layer: "A", Geometry: entity.Point{P: geom.Point3D{X: 1, Y: 2}}})
	_ = doc.OnEntity(&entity.Entity{Handle: 2, Layer: "A", Geometry: entity.Summary{SummaryKind: entity.KindHatch}})
	_ = doc.OnEntity(&entity.Entity{Handle: 3, Layer: "B", Geometry: entity.Summary{SummaryKind: entity.KindDimension}})

	fc, skipped := ToFeatureCollection(doc)

	wantFeatures := len(doc.Entities) - len(skipped)
	if len(fc.Features) != wantFeatures {
		t.Errorf("len(fc.Features) = %d, want %d", len(fc.Features), wantFeatures)
	}
	if len(skipped) != 2 {
		t.Fatalf("got %d skipped, want 2", len(skipped))
	}
	if skipped[0].Handle != 2 || skipped[1].Handle != 3 {
		t.Errorf("skipped = %+v", skipped)
	}
}

func TestToFeatureCollection_PropertiesMatchSource(t *testing.T) {
	doc := document.New("")
	e := &entity.Entity{Handle: 9, Layer: "WALLS", Color: 3, Geometry: entity.Point{P: geom.Point3D{X: 1, Y: 1}}}
	_ = doc.OnEntity(e)

	fc, _ := ToFeatureCollection(doc)
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(fc.Features))
	}
	props := fc.Features[0].Properties
	if props["layer"] != "WALLS" {
		t.Errorf("layer = %v, want WALLS", props["layer"])
	}
	if props["handle"] != 9 {
		t.Errorf("handle = %v, want 9", props["handle"])
	}
}

func TestProject_Circle(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Circle{Center: geom.Point3D{X: 0, Y: 0}, Radius: 5}})

	fc, _ := ToFeatureCollection(doc)
	ring, ok := fc.Features[0].Geometry.(orb.Ring)
	if !ok {
		t.Fatalf("expected orb.Ring, got %T", fc.Features[0].Geometry)
	}
	if len(ring) != circleSegments+1 {
		t.Errorf("ring length = %d, want %d", len(ring), circleSegments+1)
	}
	if ring[0] != ring[len(ring)-1] {
		t.Error("a projected circle ring must close on itself")
	}
}

func TestArcLineString_WraparoundSpan(t *testing.T) {
	ls := arcLineString(geom.Point3D{}, 1, 3*math.Pi/2, math.Pi/2)
	if len(ls) < 2 {
		t.Fatal("expected a multi-point line string")
	}
	first := ls[0]
	wantFirst := orb.Point{math.Cos(3 * math.Pi / 2), math.Sin(3 * math.Pi / 2)}
	if math.Abs(first[0]-wantFirst[0]) > 1e-6 || math.Abs(first[1]-wantFirst[1]) > 1e-6 {
		t.Errorf("first point = %v, want %v", first, wantFirst)
	}
}

func TestPolylineGeometry_ClosedProducesRing(t *testing.T) {
	verts := []geom.Point3D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	g := polylineGeometry(verts, true)
	ring, ok := g.(orb.Ring)
	if !ok {
		t.Fatalf("expected orb.Ring for a closed polyline, got %T", g)
	}
	if ring[0] != ring[len(ring)-1] {
		t.Error("closed polyline ring must repeat its first vertex at the end")
	}
}

func TestPolylineGeometry_OpenProducesLineString(t *testing.T) {
	verts := []geom.Point3D{{X: 0, Y: 0}, {X: 1, Y: 0}}
	g := polylineGeometry(verts, false)
	if _, ok := g.(orb.LineString); !ok {
		t.Fatalf("expected orb.LineString for an open polyline, got %T", g)
	}
}

func TestQuadPolygon(t *testing.T) {
	q := entity.Quad{Corners: [4]geom.Point3D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}
	poly := quadPolygon(q)
	if len(poly) != 1 || len(poly[0]) != 5 {
		t.Fatalf("quadPolygon ring shape = %+v", poly)
	}
	if poly[0][0] != poly[0][4] {
		t.Error("quad polygon ring must close on itself")
	}
}
