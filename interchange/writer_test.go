package interchange

import (
	"bytes"
	"testing"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
)

func TestWriteFlatGeobuf_EmitsMagicBytes(t *testing.T) {
	doc := document.New("")
	_ = doc.OnEntity(&entity.Entity{Layer: "0", Geometry: entity.Line{P1: geom.Point3D{}, P2: geom.Point3D{X: 1, Y: 1}}})
	_ = doc.OnEntity(&entity.Entity{Layer: "0", Geometry: entity.Circle{Center: geom.Point3D{X: 5, Y: 5}, Radius: 2}})

	var buf bytes.Buffer
	if err := WriteFlatGeobuf(&buf, doc, nil); err != nil {
		t.Fatalf("WriteFlatGeobuf: %v", err)
	}

	data := buf.Bytes()
	if len(data) < 8 {
		t.Fatal("output too short to contain a FlatGeobuf header")
	}
	expectedMagic := []byte{0x66, 0x67, 0x62, 0x03, 0x66, 0x67, 0x62, 0x00}
	for i, b := range expectedMagic {
		if data[i] != b {
			t.Errorf("magic byte %d: expected 0x%02x, got 0x%02x", i, b, data[i])
		}
	}
}

func TestWriteFlatGeobuf_EmptyDocumentErrors(t *testing.T) {
	doc := document.New("")
	if err := WriteFlatGeobuf(&bytes.Buffer{}, doc, nil); err == nil {
		t.Error("expected an error projecting an empty document to FlatGeobuf")
	}
}
