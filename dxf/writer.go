package dxf

import (
	"io"
	"math"
	"strings"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/errs"
	"github.com/f4ah6o/cadutil/geom"
)

// WriteOptions configures a DXF write, modelled one-for-one on the
// teacher package's Options/DefaultOptions shape.
type WriteOptions struct {
	Generation Generation
}

// DefaultWriteOptions returns the default DXF write options: the
// generation spec.md names as the default when none is requested.
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{Generation: DefaultGeneration}
}

const fullCircleEpsilon = 1e-9

// Write drives the full DXF section-emission protocol over doc:
// HEADER, TABLES, BLOCKS, ENTITIES, OBJECTS, in that fixed order,
// synthesising the required defaults spec.md's table names whenever
// the document doesn't already define them.
func Write(w io.Writer, doc *document.Document, opts *WriteOptions) error {
	if doc == nil {
		return errs.Wrap(errs.ErrInvalidArgument, "nil document")
	}
	if opts == nil {
		opts = DefaultWriteOptions()
	}

	tw := newTagWriter(w)

	tw.Pair(0, "SECTION")
	writeHeaderSection(tw, doc, opts.Generation)
	tw.Pair(0, "ENDSEC")

	tw.Pair(0, "SECTION")
	tw.Pair(2, "TABLES")
	writeLayerTable(tw, doc)
	writeLineTypeTable(tw, doc)
	writeTextStyleTable(tw, doc)
	writeDimStyleTable(tw, doc)
	writeViewportTable(tw)
	writeAppIDTable(tw)
	writeBlockRecordTable(tw, doc)
	tw.Pair(0, "ENDSEC")

	tw.Pair(0, "SECTION")
	tw.Pair(2, "BLOCKS")
	if err := writeBlocks(tw, doc); err != nil {
		return err
	}
	tw.Pair(0, "ENDSEC")

	tw.Pair(0, "SECTION")
	tw.Pair(2, "ENTITIES")
	for _, e := range doc.Entities {
		if err := checkReference(doc, e); err != nil {
			return err
		}
		writeEntity(tw, e)
	}
	tw.Pair(0, "ENDSEC")

	tw.Pair(0, "SECTION")
	tw.Pair(2, "OBJECTS")
	tw.Pair(0, "ENDSEC")

	tw.Pair(0, "EOF")

	return tw.Flush()
}

func writeHeaderSection(tw *tagWriter, doc *document.Document, gen Generation) {
	tw.Pair(2, "HEADER")
	tw.Pair(9, "$ACADVER")
	tw.Pair(1, string(gen))
	for name, value := range doc.Header {
		if name == "$ACADVER" {
			continue
		}
		tw.Pair(9, name)
		switch v := value.(type) {
		case float64:
			tw.Float(40, v)
		case int:
			tw.Int(70, v)
		default:
			tw.Pair(1, toString(value))
		}
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// writeLayerTable emits every layer the document defines, synthesising
// a default layer "0" first if the document has none.
func writeLayerTable(tw *tagWriter, doc *document.Document) {
	layers := doc.Layers.Values()
	if !doc.Layers.Has("0") {
		layers = append([]document.Layer{DefaultLayer0()}, layers...)
	}

	tw.Pair(0, "TABLE")
	tw.Pair(2, "LAYER")
	for _, l := range layers {
		tw.Pair(0, "LAYER")
		tw.Pair(2, l.Name)
		tw.Int(70, int(l.Flags))
		tw.Int(62, l.Color)
		tw.Pair(6, l.LineType)
		tw.Float(370, l.LineWeight)
	}
	tw.Pair(0, "ENDTAB")
}

// DefaultLayer0 returns the default layer "0" synthesised on write when
// the document has none, per spec.md §4.2's default-synthesis table.
func DefaultLayer0() document.Layer {
	return document.Layer{Name: "0", Color: 7, LineType: "CONTINUOUS"}
}

func writeLineTypeTable(tw *tagWriter, doc *document.Document) {
	tw.Pair(0, "TABLE")
	tw.Pair(2, "LTYPE")
	tw.Pair(0, "LTYPE")
	tw.Pair(2, "CONTINUOUS")
	tw.Pair(3, "Continuous")
	for _, lt := range doc.LineTypes.Values() {
		if lt.Name == "CONTINUOUS" {
			continue
		}
		tw.Pair(0, "LTYPE")
		tw.Pair(2, lt.Name)
		tw.Pair(3, lt.Description)
	}
	tw.Pair(0, "ENDTAB")
}

// DefaultTextStyleStandard returns the default text style "STANDARD"
// synthesised on write, per spec.md §4.2.
func DefaultTextStyleStandard() document.TextStyle {
	return document.TextStyle{Name: "STANDARD", Height: 0, WidthFactor: 1, LastHeight: 2.5, Font: "txt"}
}

func writeTextStyleTable(tw *tagWriter, doc *document.Document) {
	styles := doc.TextStyles.Values()
	if !doc.TextStyles.Has("STANDARD") && !doc.TextStyles.Has("Standard") {
		styles = append([]document.TextStyle{DefaultTextStyleStandard()}, styles...)
	}

	tw.Pair(0, "TABLE")
	tw.Pair(2, "STYLE")
	for _, ts := range styles {
		tw.Pair(0, "STYLE")
		tw.Pair(2, ts.Name)
		tw.Float(40, ts.Height)
		tw.Float(41, ts.WidthFactor)
		tw.Float(42, ts.LastHeight)
		tw.Pair(1000, ts.Font)
	}
	tw.Pair(0, "ENDTAB")
}

// DefaultDimStyleStandard returns the default dimension style
// "STANDARD" synthesised on write, with the metric defaults spec.md
// §4.2 names (asz 2.5, exo 0.625).
func DefaultDimStyleStandard() document.DimStyle {
	return document.DimStyle{Name: "STANDARD", ArrowSize: 2.5, ExtensionOff: 0.625, TextHeight: 2.5}
}

func writeDimStyleTable(tw *tagWriter, doc *document.Document) {
	styles := doc.DimStyles.Values()
	if !doc.DimStyles.Has("STANDARD") {
		styles = append([]document.DimStyle{DefaultDimStyleStandard()}, styles...)
	}

	tw.Pair(0, "TABLE")
	tw.Pair(2, "DIMSTYLE")
	for _, ds := range styles {
		tw.Pair(0, "DIMSTYLE")
		tw.Pair(2, ds.Name)
		tw.Float(40, ds.ArrowSize)
		tw.Float(41, ds.ExtensionOff)
		tw.Float(42, ds.TextHeight)
	}
	tw.Pair(0, "ENDTAB")
}

// writeViewportTable always synthesises the *ACTIVE viewport, per
// spec.md §4.2 ("always").
func writeViewportTable(tw *tagWriter) {
	tw.Pair(0, "TABLE")
	tw.Pair(2, "VPORT")
	tw.Pair(0, "VPORT")
	tw.Pair(2, "*ACTIVE")
	tw.Float(40, 1.0) // 1:1 unit view
	tw.Float(10, 0)
	tw.Float(20, 0)
	tw.Pair(0, "ENDTAB")
}

// writeAppIDTable always synthesises the ACAD appid, per spec.md §4.2
// ("always", DXF only).
func writeAppIDTable(tw *tagWriter) {
	tw.Pair(0, "TABLE")
	tw.Pair(2, "APPID")
	tw.Pair(0, "APPID")
	tw.Pair(2, "ACAD")
	tw.Int(70, 0)
	tw.Pair(0, "ENDTAB")
}

// writeBlockRecordTable always synthesises *Model_Space and
// *Paper_Space block records, plus one per user-defined block.
func writeBlockRecordTable(tw *tagWriter, doc *document.Document) {
	tw.Pair(0, "TABLE")
	tw.Pair(2, "BLOCK_RECORD")
	tw.Pair(0, "BLOCK_RECORD")
	tw.Pair(2, "*Model_Space")
	tw.Pair(0, "BLOCK_RECORD")
	tw.Pair(2, "*Paper_Space")
	for _, name := range doc.Blocks.Names() {
		if strings.HasPrefix(name, "*") {
			continue
		}
		tw.Pair(0, "BLOCK_RECORD")
		tw.Pair(2, name)
	}
	tw.Pair(0, "ENDTAB")
}

// writeBlocks emits synthetic *Model_Space/*Paper_Space definitions and
// every user-defined block verbatim. Reserved names present in the
// document (e.g. re-read from a source file) are never re-emitted with
// their captured content — the writer always synthesises its own
// definition for them, per spec.md §3.
func writeBlocks(tw *tagWriter, doc *document.Document) error {
	tw.Pair(0, "BLOCK")
	tw.Pair(2, "*Model_Space")
	tw.Float(10, 0)
	tw.Float(20, 0)
	tw.Float(30, 0)
	tw.Pair(0, "ENDBLK")

	tw.Pair(0, "BLOCK")
	tw.Pair(2, "*Paper_Space")
	tw.Float(10, 0)
	tw.Float(20, 0)
	tw.Float(30, 0)
	tw.Pair(0, "ENDBLK")

	for _, b := range doc.Blocks.Values() {
		if b.IsReserved() {
			continue
		}
		tw.Pair(0, "BLOCK")
		tw.Pair(2, b.Name)
		tw.Float(10, b.Base.X)
		tw.Float(20, b.Base.Y)
		tw.Float(30, b.Base.Z)
		for _, e := range b.Entities {
			if err := checkReference(doc, e); err != nil {
				return err
			}
			writeEntity(tw, e)
		}
		tw.Pair(0, "ENDBLK")
	}
	return nil
}

// checkReference fails with BrokenReference when e is an INSERT whose
// block cannot be resolved at emission time, per spec.md §4.2/§7.
func checkReference(doc *document.Document, e *entity.Entity) error {
	ins, ok := e.Geometry.(entity.Insert)
	if !ok || ins.BlockName == "" {
		return nil
	}
	if strings.HasPrefix(ins.BlockName, "*") {
		return nil // synthetic blocks always resolve
	}
	if !doc.Blocks.Has(ins.BlockName) {
		return errs.Wrap(errs.ErrBrokenReference, "INSERT references undefined block %q", ins.BlockName)
	}
	return nil
}

func writeEntity(tw *tagWriter, e *entity.Entity) {
	marker := e.Kind().String()
	tw.Pair(0, marker)
	if e.Layer != "" {
		tw.Pair(8, e.Layer)
	} else {
		tw.Pair(8, "0")
	}
	tw.Int(62, e.Color)
	tw.Pair(6, e.LineType)
	tw.Float(370, e.LineWeight)
	tw.Handle(5, e.Handle)

	switch g := e.Geometry.(type) {
	case entity.Point:
		writePoint(tw, 10, g.P)
	case entity.Line:
		writePoint(tw, 10, g.P1)
		writePoint(tw, 11, g.P2)
	case entity.Circle:
		writePoint(tw, 10, g.Center)
		tw.Float(40, g.Radius)
	case entity.Arc:
		writePoint(tw, 10, g.Center)
		tw.Float(40, g.Radius)
		tw.Float(50, g.StartAngle)
		tw.Float(51, g.EndAngle)
	case entity.Ellipse:
		writePoint(tw, 10, g.Center)
		writePoint(tw, 11, g.MajorAxisEndpoint)
		tw.Float(40, g.Ratio)
		if g.FullCircle(fullCircleEpsilon) {
			tw.Float(41, 0)
			tw.Float(42, 2*math.Pi)
		} else {
			tw.Float(41, g.StartParam)
			tw.Float(42, g.EndParam)
		}
	case entity.Polyline:
		if g.Closed {
			tw.Int(70, 1)
		} else {
			tw.Int(70, 0)
		}
		tw.Int(90, g.VertexCount())
		for _, v := range g.Vertices {
			writePoint(tw, 10, v)
		}
	case entity.Spline:
		if g.Closed {
			tw.Int(70, 1)
		} else {
			tw.Int(70, 0)
		}
		tw.Int(71, g.Degree)
		tw.Int(90, g.ControlPointCount())
		for _, v := range g.ControlPoints {
			writePoint(tw, 10, v)
		}
	case entity.Text:
		writePoint(tw, 10, g.Insertion)
		height := g.Height
		if height <= 0 {
			height = 2.5
		}
		tw.Float(40, height)
		tw.Float(50, g.Rotation)
		tw.Pair(1, g.Text)
	case entity.Insert:
		tw.Pair(2, g.BlockName)
		writePoint(tw, 10, g.Insertion)
		tw.Float(41, g.ScaleX)
		tw.Float(42, g.ScaleY)
		tw.Float(50, g.Rotation)
	case entity.Quad:
		writePoint(tw, 10, g.Corners[0])
		writePoint(tw, 11, g.Corners[1])
		writePoint(tw, 12, g.Corners[2])
		writePoint(tw, 13, g.Corners[3])
	case entity.Summary:
		// Kind tag only; no format-specific geometry is synthesised
		// beyond the entity marker itself. This is the lossy boundary for
		// DIMENSION/LEADER/HATCH/IMAGE/VIEWPORT; POLYLINE/LWPOLYLINE and
		// SPLINE are written with their vertex sequences above.
	}
}

func writePoint(tw *tagWriter, baseCode int, p geom.Point3D) {
	tw.Float(baseCode, p.X)
	tw.Float(baseCode+10, p.Y)
	tw.Float(baseCode+20, p.Z)
}
