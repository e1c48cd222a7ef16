package validate

import (
	"testing"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
)

func hasCode(issues []Issue, code Code) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

func TestCheck_EmptyDrawing(t *testing.T) {
	doc := document.New("")
	result := Check(doc)
	if !hasCode(result.Issues, CodeEmptyDrawing) {
		t.Error("expected CodeEmptyDrawing for an empty document")
	}
	if !result.IsValid {
		t.Error("a warning-only result should still be IsValid")
	}
}

func TestCheck_UndefinedLayerReference(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Layer: "GHOST", Geometry: entity.Point{}})

	result := Check(doc)
	if !hasCode(result.Issues, CodeUndefinedLayer) {
		t.Error("expected CodeUndefinedLayer")
	}
	if result.IsValid {
		t.Error("an undefined layer reference is an Error and must fail IsValid")
	}
}

func TestCheck_UndefinedBlockReference(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Insert{BlockName: "MISSING"}})

	result := Check(doc)
	if !hasCode(result.Issues, CodeUndefinedBlock) {
		t.Error("expected CodeUndefinedBlock")
	}
	if result.IsValid {
		t.Error("expected IsValid == false")
	}
}

func TestCheck_ZeroRadiusCircle(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Circle{Center: geom.Point3D{}, Radius: 0}})

	result := Check(doc)
	if !hasCode(result.Issues, CodeInvalidRadius) {
		t.Error("expected CodeInvalidRadius for a zero-radius circle")
	}
	if result.IsValid {
		t.Error("expected IsValid == false")
	}
}

func TestCheck_DuplicateHandle(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Handle: 7, Geometry: entity.Point{}})
	_ = doc.OnEntity(&entity.Entity{Handle: 7, Geometry: entity.Point{}})

	result := Check(doc)
	if !hasCode(result.Issues, CodeDuplicateHandle) {
		t.Error("expected CodeDuplicateHandle")
	}
	if !result.IsValid {
		t.Error("a duplicate handle is a Warning, not an Error, and must not fail IsValid")
	}
}

func TestCheck_ZeroHandleNeverFlagged(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Handle: 0, Geometry: entity.Point{}})
	_ = doc.OnEntity(&entity.Entity{Handle: 0, Geometry: entity.Point{}})

	result := Check(doc)
	if hasCode(result.Issues, CodeDuplicateHandle) {
		t.Error("handle 0 (unset upstream) must never be flagged as a duplicate")
	}
}

func TestCheck_InvalidBounds(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Summary{SummaryKind: entity.KindDimension}})

	result := Check(doc)
	if !hasCode(result.Issues, CodeInvalidBounds) {
		t.Error("a document with only unbounded entities should report CodeInvalidBounds")
	}
	if !result.IsValid {
		t.Error("invalid bounds is Info severity and must not fail IsValid")
	}
}

func TestCheck_CleanDocument(t *testing.T) {
	doc := document.New("")
	_ = doc.OnLayer(document.Layer{Name: "0"})
	_ = doc.OnEntity(&entity.Entity{Geometry: entity.Point{P: geom.Point3D{X: 1, Y: 1}}})

	result := Check(doc)
	if !result.IsValid {
		t.Errorf("expected a clean document to validate, got issues: %+v", result.Issues)
	}
}

func TestCheck_Idempotent(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Layer: "GHOST", Geometry: entity.Circle{Radius: -1}})

	a := Check(doc)
	b := Check(doc)
	if len(a.Issues) != len(b.Issues) {
		t.Fatalf("Check is not idempotent: %d issues then %d issues", len(a.Issues), len(b.Issues))
	}
	for i := range a.Issues {
		if a.Issues[i] != b.Issues[i] {
			t.Errorf("issue %d differs between runs: %+v vs %+v", i, a.Issues[i], b.Issues[i])
		}
	}
}
