package cadutil

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/dxf"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
	"github.com/f4ah6o/cadutil/report"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"drawing.dxf", FormatDXF},
		{"drawing.DXF", FormatDXF},
		{"drawing.dwg", FormatDXF},
		{"drawing.jww", FormatJWW},
		{"drawing.jwc", FormatJWW},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if err != nil {
			t.Errorf("DetectFormat(%q): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if _, err := DetectFormat("drawing.pdf"); err == nil {
		t.Error("expected an error for an unrecognised extension")
	}
}

func TestSaveOpen_DXFRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.dxf")

	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Circle{Center: geom.Point3D{X: 1, Y: 1}, Radius: 2}})

	if err := Save(doc, path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer got.Close()

	if len(got.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(got.Entities))
	}
}

func TestConvert_JWWToDXF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jww")
	dst := filepath.Join(dir, "dst.dxf")

	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Line{P1: geom.Point3D{}, P2: geom.Point3D{X: 5, Y: 5}}})
	if err := Save(doc, src, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	opts := &SaveOptions{DXFOptions: &dxf.WriteOptions{Generation: dxf.Generation2007}}
	if err := Convert(src, dst, opts); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	converted, err := Open(dst, nil)
	if err != nil {
		t.Fatalf("Open(dst): %v", err)
	}
	defer converted.Close()

	if len(converted.Entities) != 1 {
		t.Fatalf("got %d entities after conversion, want 1", len(converted.Entities))
	}
	if _, ok := converted.Entities[0].Geometry.(entity.Line); !ok {
		t.Errorf("expected LINE after conversion, got %T", converted.Entities[0].Geometry)
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drawing.bogus")

	if _, err := Open(path, nil); err == nil {
		t.Error("expected an error opening an unrecognised extension")
	}
	if LastError() == nil {
		t.Error("LastError() should be populated after a failed call")
	}
}

func TestInfo_DelegatesToReport(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Point{}})

	r := Info(doc, "dxf", "AC1021", report.Summary)
	if r.EntityCount != 1 {
		t.Errorf("EntityCount = %d, want 1", r.EntityCount)
	}
}

func TestToFlatGeobuf_WritesStream(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Circle{Center: geom.Point3D{X: 1, Y: 1}, Radius: 2}})

	var buf bytes.Buffer
	if err := ToFlatGeobuf(&buf, doc, nil); err != nil {
		t.Fatalf("ToFlatGeobuf: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected a non-empty FlatGeobuf stream")
	}
}

func TestValidate_DelegatesToValidator(t *testing.T) {
	doc := document.New("")
	result := Validate(doc)
	if result.IsValid == false {
		t.Error("an empty document should still be IsValid (empty-drawing is a Warning)")
	}
}
