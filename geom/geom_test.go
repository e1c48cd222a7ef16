package geom

import (
	"math"
	"testing"
)

func TestEmptyBoundingBox_IsInvalid(t *testing.T) {
	box := EmptyBoundingBox()
	if box.Valid() {
		t.Fatal("empty bounding box must be invalid")
	}
}

func TestExtendPoint_GrowsBox(t *testing.T) {
	box := EmptyBoundingBox()
	box = box.ExtendPoint(Point3D{X: 1, Y: 2, Z: 3})

	if !box.Valid() {
		t.Fatal("box with one point must be valid")
	}
	if box.Min != box.Max {
		t.Fatalf("single-point box should have Min == Max, got %v / %v", box.Min, box.Max)
	}

	box = box.ExtendPoint(Point3D{X: -1, Y: 5, Z: 0})
	want := BoundingBox{Min: Point3D{X: -1, Y: 2, Z: 0}, Max: Point3D{X: 1, Y: 5, Z: 3}}
	if box != want {
		t.Fatalf("got %+v, want %+v", box, want)
	}
}

func TestFromPoints(t *testing.T) {
	pts := []Point3D{{X: 0, Y: 0, Z: 0}, {X: 10, Y: -5, Z: 2}, {X: 3, Y: 3, Z: -2}}
	box := FromPoints(pts)

	if box.Min != (Point3D{X: 0, Y: -5, Z: -2}) {
		t.Errorf("min = %v", box.Min)
	}
	if box.Max != (Point3D{X: 10, Y: 3, Z: 2}) {
		t.Errorf("max = %v", box.Max)
	}
}

func TestPoint3D_Length(t *testing.T) {
	p := Point3D{X: 3, Y: 4, Z: 0}
	if got := p.Length(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestPoint3D_Equal(t *testing.T) {
	a := Point3D{X: 1, Y: 1, Z: 1}
	b := Point3D{X: 1.0000001, Y: 1, Z: 1}
	if !a.Equal(b, 1e-6) {
		t.Error("expected equal within tolerance")
	}
	if a.Equal(b, 1e-9) {
		t.Error("expected not equal at tight tolerance")
	}
}
