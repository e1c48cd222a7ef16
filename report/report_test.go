package report

import (
	"encoding/json"
	"testing"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
)

func newSampleDocument() *document.Document {
	doc := document.New("sample.dxf")
	_ = doc.OnLayer(document.Layer{Name: "0", Color: 7})
	_ = doc.OnEntity(&entity.Entity{Layer: "0", Geometry: entity.Circle{Center: geom.Point3D{X: 1, Y: 1}, Radius: 2}})
	_ = doc.OnEntity(&entity.Entity{Layer: "0", Geometry: entity.Line{P1: geom.Point3D{}, P2: geom.Point3D{X: 1}}})
	return doc
}

func TestBuild_Summary_NoDetail(t *testing.T) {
	doc := newSampleDocument()
	r := Build(doc, "dxf", "AC1021", Summary)

	if r.EntityCount != 2 || r.LayerCount != 1 {
		t.Errorf("counts: entities=%d layers=%d", r.EntityCount, r.LayerCount)
	}
	if r.EntityCounts[entity.KindCircle] != 1 || r.EntityCounts[entity.KindLine] != 1 {
		t.Errorf("EntityCounts = %v", r.EntityCounts)
	}
	if r.Layers != nil || r.Entities != nil {
		t.Error("Summary level must not populate per-layer/per-entity detail")
	}
}

func TestBuild_Normal_IncludesLayersAndBlocks(t *testing.T) {
	doc := newSampleDocument()
	_ = doc.OnBlockBegin("DOOR", geom.Point3D{})
	_ = doc.OnBlockEnd()
	r := Build(doc, "dxf", "", Normal)

	if len(r.Layers) != 1 || r.Layers[0].Name != "0" {
		t.Errorf("Layers = %+v", r.Layers)
	}
	if len(r.Blocks) != 1 || r.Blocks[0].Name != "DOOR" {
		t.Errorf("Blocks = %+v", r.Blocks)
	}
	if r.Entities != nil {
		t.Error("Normal level must not populate per-entity detail")
	}
}

func TestBuild_Verbose_IncludesEntitiesWithoutGeometry(t *testing.T) {
	doc := newSampleDocument()
	r := Build(doc, "dxf", "", Verbose)

	if len(r.Entities) != 2 {
		t.Fatalf("got %d entity infos, want 2", len(r.Entities))
	}
	if r.Entities[0].Geometry != nil {
		t.Error("Verbose level must not populate Geometry")
	}
}

func TestBuild_Full_IncludesGeometry(t *testing.T) {
	doc := newSampleDocument()
	r := Build(doc, "dxf", "", Full)

	if r.Entities[0].Geometry == nil {
		t.Error("Full level must populate Geometry")
	}
}

func TestReport_MarshalJSON(t *testing.T) {
	doc := newSampleDocument()
	r := Build(doc, "dxf", "AC1021", Normal)

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decoding produced JSON: %v", err)
	}
	if decoded["format"] != "dxf" {
		t.Errorf("format = %v, want dxf", decoded["format"])
	}
	if decoded["layers"] == nil {
		t.Error("expected layers field to be present at Normal level")
	}
}
