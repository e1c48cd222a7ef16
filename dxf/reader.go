package dxf

import (
	"io"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/errs"
	"github.com/f4ah6o/cadutil/geom"
)

// skipper is the optional capability a Sink can implement to have
// skipped constructs counted for observability, per spec.md §4.1
// ("skipping is a first-class operation, not a silent drop"). Document
// implements it; stub sinks in adapter-isolation tests need not.
type skipper interface {
	Skip()
}

func skip(sink document.Sink) {
	if s, ok := sink.(skipper); ok {
		s.Skip()
	}
}

// entityMarkers lists every group-0 value the reader recognises as an
// entity kind. Anything else inside ENTITIES/BLOCKS is skipped and
// counted, never silently dropped.
var entityMarkers = map[string]bool{
	"POINT": true, "LINE": true, "CIRCLE": true, "ARC": true, "ELLIPSE": true,
	"LWPOLYLINE": true, "POLYLINE": true, "SPLINE": true,
	"TEXT": true, "MTEXT": true, "INSERT": true,
	"SOLID": true, "TRACE": true, "3DFACE": true,
	"DIMENSION": true, "LEADER": true, "HATCH": true, "IMAGE": true, "VIEWPORT": true,
}

// Read parses a DXF tag-value stream from r, driving sink with every
// header variable, table entry, block, and entity it recognises. It
// fails fast on Io, MalformedInput, or UnsupportedFormat; semantic
// issues are never read failures.
func Read(r io.Reader, sink document.Sink) error {
	tr := newTagReader(r)

	for {
		t, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if t.Code != 0 {
			// Stray tag outside any recognised record boundary; skip it.
			continue
		}
		switch t.Value {
		case "EOF":
			return nil
		case "SECTION":
			if err := readSection(tr, sink); err != nil {
				return err
			}
		default:
			skip(sink)
		}
	}
}

func readSection(tr *tagReader, sink document.Sink) error {
	nameTag, err := tr.Next()
	if err != nil {
		return err
	}
	if nameTag.Code != 2 {
		return errs.Wrap(errs.ErrMalformedInput, "SECTION missing name tag")
	}

	switch nameTag.Value {
	case "HEADER":
		return readHeader(tr, sink)
	case "TABLES":
		return readTables(tr, sink)
	case "BLOCKS":
		return readBlocks(tr, sink)
	case "ENTITIES":
		return readEntities(tr, sink, entityStop{"ENDSEC": true})
	default:
		return skipToEndsec(tr, sink)
	}
}

func skipToEndsec(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDSEC" {
			skip(sink)
			return nil
		}
		skip(sink)
	}
}

func readHeader(tr *tagReader, sink document.Sink) error {
	var pendingName string
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDSEC" {
			return nil
		}
		if t.Code == 9 {
			pendingName = t.Value
			continue
		}
		if pendingName == "" {
			continue
		}
		var value interface{}
		switch t.Code {
		case 40, 10, 20, 30:
			value, err = t.Float()
		case 70:
			value, err = t.Int()
		default:
			value = t.Value
		}
		if err != nil {
			return err
		}
		sink.OnHeaderVariable(pendingName, value)
		pendingName = ""
	}
}

func readTables(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDSEC" {
			return nil
		}
		if t.Code != 0 || t.Value != "TABLE" {
			continue
		}
		nameTag, err := tr.Next()
		if err != nil {
			return err
		}
		switch nameTag.Value {
		case "LAYER":
			if err := readLayerTable(tr, sink); err != nil {
				return err
			}
		case "LTYPE":
			if err := readLineTypeTable(tr, sink); err != nil {
				return err
			}
		case "STYLE":
			if err := readTextStyleTable(tr, sink); err != nil {
				return err
			}
		case "DIMSTYLE":
			if err := readDimStyleTable(tr, sink); err != nil {
				return err
			}
		default:
			if err := skipTable(tr, sink); err != nil {
				return err
			}
		}
	}
}

func skipTable(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		skip(sink)
		if t.Code == 0 && t.Value == "ENDTAB" {
			return nil
		}
	}
}

func readLayerTable(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDTAB" {
			return nil
		}
		if t.Code != 0 || t.Value != "LAYER" {
			continue
		}
		l := document.Layer{Color: geom.ColorByLayer, LineType: "CONTINUOUS"}
		for {
			f, err := tr.Next()
			if err != nil {
				return err
			}
			if f.Code == 0 {
				tr.Pushback(f)
				break
			}
			switch f.Code {
			case 2:
				l.Name = f.Value
			case 62:
				l.Color, err = f.Int()
			case 6:
				l.LineType = f.Value
			case 370:
				l.LineWeight, err = f.Float()
			case 70:
				var flags int
				flags, err = f.Int()
				l.Flags = document.LayerFlag(flags)
			}
			if err != nil {
				return err
			}
		}
		if err := sink.OnLayer(l); err != nil {
			return err
		}
	}
}

func readLineTypeTable(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDTAB" {
			return nil
		}
		if t.Code != 0 || t.Value != "LTYPE" {
			continue
		}
		lt := document.LineType{}
		for {
			f, err := tr.Next()
			if err != nil {
				return err
			}
			if f.Code == 0 {
				tr.Pushback(f)
				break
			}
			switch f.Code {
			case 2:
				lt.Name = f.Value
			case 3:
				lt.Description = f.Value
			}
		}
		if err := sink.OnLineType(lt); err != nil {
			return err
		}
	}
}

func readTextStyleTable(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDTAB" {
			return nil
		}
		if t.Code != 0 || t.Value != "STYLE" {
			continue
		}
		ts := document.TextStyle{WidthFactor: 1}
		for {
			f, err := tr.Next()
			if err != nil {
				return err
			}
			if f.Code == 0 {
				tr.Pushback(f)
				break
			}
			switch f.Code {
			case 2:
				ts.Name = f.Value
			case 40:
				ts.Height, err = f.Float()
			case 41:
				ts.WidthFactor, err = f.Float()
			case 42:
				ts.LastHeight, err = f.Float()
			case 1000:
				ts.Font = f.Value
			}
			if err != nil {
				return err
			}
		}
		if err := sink.OnTextStyle(ts); err != nil {
			return err
		}
	}
}

func readDimStyleTable(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDTAB" {
			return nil
		}
		if t.Code != 0 || t.Value != "DIMSTYLE" {
			continue
		}
		ds := document.DimStyle{}
		for {
			f, err := tr.Next()
			if err != nil {
				return err
			}
			if f.Code == 0 {
				tr.Pushback(f)
				break
			}
			switch f.Code {
			case 2:
				ds.Name = f.Value
			case 40:
				ds.ArrowSize, err = f.Float()
			case 41:
				ds.ExtensionOff, err = f.Float()
			case 42:
				ds.TextHeight, err = f.Float()
			}
			if err != nil {
				return err
			}
		}
		if err := sink.OnDimStyle(ds); err != nil {
			return err
		}
	}
}

func readBlocks(tr *tagReader, sink document.Sink) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && t.Value == "ENDSEC" {
			return nil
		}
		if t.Code != 0 || t.Value != "BLOCK" {
			continue
		}
		var name string
		var base geom.Point3D
		for {
			f, err := tr.Next()
			if err != nil {
				return err
			}
			if f.Code == 0 {
				tr.Pushback(f)
				break
			}
			switch f.Code {
			case 2:
				name = f.Value
			case 10:
				base.X, err = f.Float()
			case 20:
				base.Y, err = f.Float()
			case 30:
				base.Z, err = f.Float()
			}
			if err != nil {
				return err
			}
		}
		if err := sink.OnBlockBegin(name, base); err != nil {
			return err
		}
		if err := readEntities(tr, sink, entityStop{"ENDBLK": true}); err != nil {
			return err
		}
		if err := sink.OnBlockEnd(); err != nil {
			return err
		}
	}
}

type entityStop map[string]bool

func readEntities(tr *tagReader, sink document.Sink, stop entityStop) error {
	for {
		t, err := tr.Next()
		if err != nil {
			return err
		}
		if t.Code == 0 && stop[t.Value] {
			return nil
		}
		if t.Code != 0 {
			continue
		}
		if t.Value == "SEQEND" {
			continue
		}
		if !entityMarkers[t.Value] {
			skip(sink)
			continue
		}
		e, err := readEntity(tr, t.Value)
		if err != nil {
			return err
		}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
}

// readEntity reads one entity's fields up to (but not including) the
// next group-0 tag, which the caller's loop will see on its next Next()
// call. It relies on tag-stream field order matching writeEntity's
// emission order below, which is the contract between this adapter and
// its paired writer's dialect.
func readEntity(tr *tagReader, marker string) (*entity.Entity, error) {
	e := &entity.Entity{Color: geom.ColorByLayer, LineType: geom.LineTypeByLayer, LineWeight: geom.LineWeightByLayer}

	if marker == "LWPOLYLINE" || marker == "POLYLINE" || marker == "SPLINE" {
		return readVertexEntity(tr, marker, e)
	}

	var pts [4]geom.Point3D
	var floats [5]float64 // slot semantics depend on marker, see switch below
	var text string
	var blockName string

	readCommon := func(f tag) (bool, error) {
		switch f.Code {
		case 8:
			e.Layer = f.Value
		case 62:
			v, err := f.Int()
			if err != nil {
				return false, err
			}
			e.Color = v
		case 6:
			e.LineType = f.Value
		case 370:
			v, err := f.Float()
			if err != nil {
				return false, err
			}
			e.LineWeight = v
		case 5:
			v, err := f.HandleInt()
			if err != nil {
				return false, err
			}
			e.Handle = v
		default:
			return false, nil
		}
		return true, nil
	}

	for {
		f, err := tr.Next()
		if err != nil {
			return nil, err
		}
		if f.Code == 0 {
			tr.Pushback(f)
			break
		}
		if handled, err := readCommon(f); err != nil {
			return nil, err
		} else if handled {
			continue
		}

		switch f.Code {
		case 10:
			pts[0].X, err = f.Float()
		case 20:
			pts[0].Y, err = f.Float()
		case 30:
			pts[0].Z, err = f.Float()
		case 11:
			pts[1].X, err = f.Float()
		case 21:
			pts[1].Y, err = f.Float()
		case 31:
			pts[1].Z, err = f.Float()
		case 12:
			pts[2].X, err = f.Float()
		case 22:
			pts[2].Y, err = f.Float()
		case 32:
			pts[2].Z, err = f.Float()
		case 13:
			pts[3].X, err = f.Float()
		case 23:
			pts[3].Y, err = f.Float()
		case 33:
			pts[3].Z, err = f.Float()
		case 40:
			floats[0], err = f.Float()
		case 41:
			floats[1], err = f.Float()
		case 42:
			floats[2], err = f.Float()
		case 50:
			floats[3], err = f.Float()
		case 51:
			floats[4], err = f.Float()
		case 1:
			text = f.Value
		case 2:
			blockName = f.Value
		}
		if err != nil {
			return nil, err
		}
	}

	switch marker {
	case "POINT":
		e.Geometry = entity.Point{P: pts[0]}
	case "LINE":
		e.Geometry = entity.Line{P1: pts[0], P2: pts[1]}
	case "CIRCLE":
		e.Geometry = entity.Circle{Center: pts[0], Radius: floats[0]}
	case "ARC":
		e.Geometry = entity.Arc{Center: pts[0], Radius: floats[0], StartAngle: floats[3], EndAngle: floats[4]}
	case "ELLIPSE":
		e.Geometry = entity.Ellipse{Center: pts[0], MajorAxisEndpoint: pts[1], Ratio: floats[0], StartParam: floats[1], EndParam: floats[2]}
	case "TEXT", "MTEXT":
		e.Geometry = entity.Text{MText: marker == "MTEXT", Insertion: pts[0], Text: text, Height: floats[0], Rotation: floats[3]}
	case "INSERT":
		e.Geometry = entity.Insert{BlockName: blockName, Insertion: pts[0], ScaleX: floats[1], ScaleY: floats[2], Rotation: floats[3]}
	case "SOLID":
		e.Geometry = entity.Quad{Which: entity.QuadSolid, Corners: pts}
	case "TRACE":
		e.Geometry = entity.Quad{Which: entity.QuadTrace, Corners: pts}
	case "3DFACE":
		e.Geometry = entity.Quad{Which: entity.Quad3DFace, Corners: pts}
	case "DIMENSION":
		e.Geometry = entity.Summary{SummaryKind: entity.KindDimension}
	case "LEADER":
		e.Geometry = entity.Summary{SummaryKind: entity.KindLeader}
	case "HATCH":
		e.Geometry = entity.Summary{SummaryKind: entity.KindHatch}
	case "IMAGE":
		e.Geometry = entity.Summary{SummaryKind: entity.KindImage}
	case "VIEWPORT":
		e.Geometry = entity.Summary{SummaryKind: entity.KindViewport}
	default:
		return nil, errs.Wrap(errs.ErrMalformedInput, "unrecognised entity marker %q", marker)
	}

	return e, nil
}

// readVertexEntity handles LWPOLYLINE, POLYLINE, and SPLINE, whose
// vertex/control-point sequence is itself a run of group-10/20/30
// triples and so cannot share the generic scalar-field loop above
// (which would misinterpret the first vertex as the entity's own point
// field). Common fields, the closed flag, degree, and vertex count are
// read first; the vertex run is read separately once the count is known.
func readVertexEntity(tr *tagReader, marker string, e *entity.Entity) (*entity.Entity, error) {
	var closed bool
	var degree, count int

	for {
		f, err := tr.Next()
		if err != nil {
			return nil, err
		}
		if f.Code == 0 || f.Code == 10 {
			tr.Pushback(f)
			break
		}
		switch f.Code {
		case 8:
			e.Layer = f.Value
		case 62:
			e.Color, err = f.Int()
		case 6:
			e.LineType = f.Value
		case 370:
			e.LineWeight, err = f.Float()
		case 5:
			e.Handle, err = f.HandleInt()
		case 70:
			var v int
			v, err = f.Int()
			closed = v != 0
		case 71:
			degree, err = f.Int()
		case 90:
			count, err = f.Int()
		}
		if err != nil {
			return nil, err
		}
	}
	if count < 0 {
		return nil, errs.Wrap(errs.ErrMalformedInput, "%s: negative vertex count %d", marker, count)
	}

	vertices, err := readVertices(tr, count)
	if err != nil {
		return nil, err
	}

	if marker == "SPLINE" {
		e.Geometry = entity.Spline{ControlPoints: vertices, Degree: degree, Closed: closed}
	} else {
		e.Geometry = entity.Polyline{Lightweight: marker == "LWPOLYLINE", Closed: closed, Vertices: vertices}
	}
	return e, nil
}

// readVertices reads n group-10/20/30 point triples in a row, used by
// LWPOLYLINE/POLYLINE vertices and SPLINE control points.
func readVertices(tr *tagReader, n int) ([]geom.Point3D, error) {
	vertices := make([]geom.Point3D, 0, n)
	for i := 0; i < n; i++ {
		var p geom.Point3D
		for axis := 0; axis < 3; axis++ {
			f, err := tr.Next()
			if err != nil {
				return nil, err
			}
			v, err := f.Float()
			if err != nil {
				return nil, err
			}
			switch f.Code {
			case 10:
				p.X = v
			case 20:
				p.Y = v
			case 30:
				p.Z = v
			default:
				return nil, errs.Wrap(errs.ErrMalformedInput, "expected vertex coordinate, got group code %d", f.Code)
			}
		}
		vertices = append(vertices, p)
	}
	return vertices, nil
}
