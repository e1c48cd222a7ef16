package entity

import (
	"math"
	"testing"

	"github.com/f4ah6o/cadutil/geom"
)

func TestEntity_EffectiveLayer(t *testing.T) {
	tests := []struct {
		name  string
		layer string
		want  string
	}{
		{"empty adopts layer 0", "", "0"},
		{"named layer kept", "WALLS", "WALLS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entity{Layer: tt.layer}
			if got := e.EffectiveLayer(); got != tt.want {
				t.Errorf("EffectiveLayer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntity_Kind_NilGeometry(t *testing.T) {
	e := &Entity{}
	if e.Kind() != KindUnknown {
		t.Errorf("Kind() = %v, want KindUnknown", e.Kind())
	}
	if _, ok := e.Bound(); ok {
		t.Error("Bound() should report ok=false for nil geometry")
	}
}

func TestArc_Sweep_Wraparound(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		end   float64
		want  float64
	}{
		{"no wrap", 0, math.Pi / 2, math.Pi / 2},
		{"wraps through zero", 3 * math.Pi / 2, math.Pi / 2, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Arc{StartAngle: tt.start, EndAngle: tt.end}
			if got := a.Sweep(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Sweep() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircle_Bound(t *testing.T) {
	c := Circle{Center: geom.Point3D{X: 1, Y: 1}, Radius: 2}
	box, ok := c.Bound()
	if !ok {
		t.Fatal("expected ok=true")
	}
	want := geom.BoundingBox{Min: geom.Point3D{X: -1, Y: -1}, Max: geom.Point3D{X: 3, Y: 3}}
	if box != want {
		t.Errorf("Bound() = %+v, want %+v", box, want)
	}
}

func TestEllipse_FullCircle(t *testing.T) {
	full := Ellipse{StartParam: 0, EndParam: 2 * math.Pi}
	if !full.FullCircle(1e-9) {
		t.Error("expected full revolution to report true")
	}
	partial := Ellipse{StartParam: 0, EndParam: math.Pi}
	if partial.FullCircle(1e-9) {
		t.Error("expected half revolution to report false")
	}
}

func TestPolyline_KindSelection(t *testing.T) {
	lw := Polyline{Lightweight: true}
	if lw.Kind() != KindLWPolyline {
		t.Errorf("Kind() = %v, want KindLWPolyline", lw.Kind())
	}
	heavy := Polyline{Lightweight: false}
	if heavy.Kind() != KindPolyline {
		t.Errorf("Kind() = %v, want KindPolyline", heavy.Kind())
	}
}

func TestPolyline_EmptyVertices_NoBound(t *testing.T) {
	p := Polyline{}
	if _, ok := p.Bound(); ok {
		t.Error("empty polyline should report ok=false")
	}
}

func TestQuad_KindSelection(t *testing.T) {
	tests := []struct {
		which QuadKind
		want  Kind
	}{
		{QuadSolid, KindSolid},
		{QuadTrace, KindTrace},
		{Quad3DFace, Kind3DFace},
	}
	for _, tt := range tests {
		q := Quad{Which: tt.which}
		if got := q.Kind(); got != tt.want {
			t.Errorf("Quad{Which: %v}.Kind() = %v, want %v", tt.which, got, tt.want)
		}
	}
}

func TestSummary_NoBound(t *testing.T) {
	s := Summary{SummaryKind: KindHatch}
	if s.Kind() != KindHatch {
		t.Errorf("Kind() = %v, want KindHatch", s.Kind())
	}
	if _, ok := s.Bound(); ok {
		t.Error("Summary should never contribute to bounds")
	}
}

func TestKind_String(t *testing.T) {
	if KindLWPolyline.String() != "LWPOLYLINE" {
		t.Errorf("String() = %q", KindLWPolyline.String())
	}
	if Kind(999).String() != "UNKNOWN" {
		t.Errorf("String() for unregistered kind = %q, want UNKNOWN", Kind(999).String())
	}
}
