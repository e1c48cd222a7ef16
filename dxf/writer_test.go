package dxf

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/errs"
	"github.com/f4ah6o/cadutil/geom"
)

func TestWriteRead_RoundTrip_Primitives(t *testing.T) {
	doc := document.New("primitives.dxf")
	entities := []*entity.Entity{
		{Color: geom.ColorByLayer, LineType: geom.LineTypeByLayer, LineWeight: geom.LineWeightByLayer,
			Geometry: entity.Point{P: geom.Point3D{X: 1, Y: 2, Z: 0}}},
		{Color: geom.ColorByLayer, LineType: geom.LineTypeByLayer, LineWeight: geom.LineWeightByLayer,
			Geometry: entity.Line{P1: geom.Point3D{X: 0, Y: 0}, P2: geom.Point3D{X: 10, Y: 10}}},
		{Color: 3, LineType: geom.LineTypeByLayer, LineWeight: geom.LineWeightByLayer,
			Geometry: entity.Circle{Center: geom.Point3D{X: 5, Y: 5}, Radius: 2.5}},
		{Handle: 42, Color: geom.ColorByLayer, LineType: geom.LineTypeByLayer, LineWeight: geom.LineWeightByLayer,
			Geometry: entity.Arc{Center: geom.Point3D{X: 0, Y: 0}, Radius: 1, StartAngle: 3 * math.Pi / 2, EndAngle: math.Pi / 2}},
	}
	for _, e := range entities {
		if err := doc.OnEntity(e); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, DefaultWriteOptions()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := document.New("")
	if err := Read(&buf, got); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(got.Entities) != len(entities) {
		t.Fatalf("got %d entities, want %d", len(got.Entities), len(entities))
	}

	p, ok := got.Entities[0].Geometry.(entity.Point)
	if !ok || !p.P.Equal(geom.Point3D{X: 1, Y: 2}, 1e-9) {
		t.Errorf("POINT round-trip: %+v", got.Entities[0].Geometry)
	}

	c, ok := got.Entities[2].Geometry.(entity.Circle)
	if !ok || math.Abs(c.Radius-2.5) > 1e-9 || got.Entities[2].Color != 3 {
		t.Errorf("CIRCLE round-trip: %+v color=%d", c, got.Entities[2].Color)
	}

	a, ok := got.Entities[3].Geometry.(entity.Arc)
	if !ok {
		t.Fatalf("expected ARC, got %T", got.Entities[3].Geometry)
	}
	if math.Abs(a.Sweep()-math.Pi) > 1e-9 {
		t.Errorf("arc wraparound sweep = %v, want pi", a.Sweep())
	}
	if got.Entities[3].Handle != 42 {
		t.Errorf("Handle = %d, want 42", got.Entities[3].Handle)
	}
}

func TestWrite_EmptyDocument(t *testing.T) {
	doc := document.New("empty.dxf")
	var buf bytes.Buffer
	if err := Write(&buf, doc, DefaultWriteOptions()); err != nil {
		t.Fatalf("Write on empty document failed: %v", err)
	}

	got := document.New("")
	if err := Read(&buf, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Entities) != 0 {
		t.Errorf("expected zero entities, got %d", len(got.Entities))
	}
	if !got.Layers.Has("0") {
		t.Error("writer should always synthesise layer \"0\"")
	}
}

func TestWrite_BrokenInsertReference(t *testing.T) {
	doc := document.New("broken.dxf")
	e := &entity.Entity{Geometry: entity.Insert{BlockName: "NOPE", Insertion: geom.Point3D{}}}
	if err := doc.OnEntity(e); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err := Write(&buf, doc, DefaultWriteOptions())
	if !errors.Is(err, errs.ErrBrokenReference) {
		t.Errorf("expected ErrBrokenReference, got %v", err)
	}
}

func TestWriteRead_InsertResolvesUserBlock(t *testing.T) {
	doc := document.New("insert.dxf")
	if err := doc.OnBlockBegin("DOOR", geom.Point3D{}); err != nil {
		t.Fatal(err)
	}
	if err := doc.OnEntity(&entity.Entity{Geometry: entity.Line{P1: geom.Point3D{}, P2: geom.Point3D{X: 1}}}); err != nil {
		t.Fatal(err)
	}
	if err := doc.OnBlockEnd(); err != nil {
		t.Fatal(err)
	}
	if err := doc.OnEntity(&entity.Entity{Geometry: entity.Insert{BlockName: "DOOR", Insertion: geom.Point3D{X: 4, Y: 4}, ScaleX: 1, ScaleY: 1}}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, DefaultWriteOptions()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := document.New("")
	if err := Read(&buf, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Entities) != 1 {
		t.Fatalf("got %d model-space entities, want 1", len(got.Entities))
	}
	ins, ok := got.Entities[0].Geometry.(entity.Insert)
	if !ok || ins.BlockName != "DOOR" {
		t.Errorf("INSERT round-trip: %+v", got.Entities[0].Geometry)
	}
}

func TestGenerationFromTag(t *testing.T) {
	g, err := GenerationFromTag(2007)
	if err != nil || g != Generation2007 {
		t.Errorf("GenerationFromTag(2007) = %v, %v", g, err)
	}

	_, err = GenerationFromTag(9999)
	if !errors.Is(err, errs.ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}
