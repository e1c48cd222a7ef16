package jww

import (
	"io"
	"math"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/errs"
	"github.com/f4ah6o/cadutil/geom"
)

// Read parses a JWW record stream from r, driving sink with the layer
// table and every entity it recognises, in the fixed eight-section
// order Write emits them.
func Read(r io.Reader, sink document.Sink) error {
	rr := newRecordReader(r)

	if err := readHeader(rr); err != nil {
		return err
	}
	if err := readLayers(rr, sink); err != nil {
		return err
	}

	if err := readLineSection(rr, sink); err != nil {
		return err
	}
	if err := readArcSection(rr, sink); err != nil {
		return err
	}
	if err := readPointSection(rr, sink); err != nil {
		return err
	}
	if err := readTextSection(rr, sink); err != nil {
		return err
	}
	if err := readDimensionSection(rr, sink); err != nil {
		return err
	}
	if err := readSolidSection(rr, sink); err != nil {
		return err
	}
	if err := readBlockSection(rr, sink); err != nil {
		return err
	}
	if err := readDataListSection(rr, sink); err != nil {
		return err
	}

	return nil
}

func readHeader(rr *recordReader) error {
	tag, err := rr.String()
	if err != nil {
		return err
	}
	if tag != FormatTag {
		return errs.Wrap(errs.ErrUnsupportedFormat, "unrecognised JWW format tag %q", tag)
	}
	if _, err := rr.Uint32(); err != nil { // data version
		return err
	}
	if _, err := rr.Uint16(); err != nil { // layer group count
		return err
	}
	if _, err := rr.Uint16(); err != nil { // layers per group
		return err
	}
	if _, err := rr.Uint16(); err != nil { // pen count
		return err
	}
	if _, err := rr.Uint16(); err != nil { // paper size
		return err
	}
	if _, err := rr.Float64(); err != nil { // unit scale
		return err
	}
	if _, err := rr.String(); err != nil { // memo
		return err
	}
	return nil
}

func readLayers(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		name, err := rr.String()
		if err != nil {
			return err
		}
		color, err := rr.Uint16()
		if err != nil {
			return err
		}
		lineType, err := rr.String()
		if err != nil {
			return err
		}
		weight, err := rr.Float64()
		if err != nil {
			return err
		}
		flags, err := rr.Uint8()
		if err != nil {
			return err
		}
		l := document.Layer{
			Name:       name,
			Color:      int(color),
			LineType:   lineType,
			LineWeight: weight,
			Flags:      document.LayerFlag(flags),
		}
		if err := sink.OnLayer(l); err != nil {
			return err
		}
	}
	return nil
}

func readEntityCommon(rr *recordReader) (layer string, color int, handle int, err error) {
	layer, err = rr.String()
	if err != nil {
		return
	}
	var c uint16
	c, err = rr.Uint16()
	if err != nil {
		return
	}
	color = int(c)
	var h uint32
	h, err = rr.Uint32()
	if err != nil {
		return
	}
	handle = int(h)
	return
}

func readLineSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		layer, color, handle, err := readEntityCommon(rr)
		if err != nil {
			return err
		}
		p1, err := rr.Point()
		if err != nil {
			return err
		}
		p2, err := rr.Point()
		if err != nil {
			return err
		}
		e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: entity.Line{P1: p1, P2: p2}}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
	return nil
}

// readArcSection is writeArcSection's inverse: the stored sweep is
// m_radEnkoKaku, the end angle minus the start angle wrapped positive,
// so an ARC's EndAngle is reconstructed as StartAngle+sweep rather than
// read directly.
func readArcSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		layer, color, handle, err := readEntityCommon(rr)
		if err != nil {
			return err
		}
		kindTag, err := rr.Uint8()
		if err != nil {
			return err
		}
		center, err := rr.Point()
		if err != nil {
			return err
		}
		radius, err := rr.Float64()
		if err != nil {
			return err
		}
		startAngle, err := rr.Float64()
		if err != nil {
			return err
		}
		sweep, err := rr.Float64()
		if err != nil {
			return err
		}
		tilt, err := rr.Float64()
		if err != nil {
			return err
		}
		ratio, err := rr.Float64()
		if err != nil {
			return err
		}
		fullCircle, err := rr.Uint8()
		if err != nil {
			return err
		}

		var g entity.Payload
		switch arcRecordKind(kindTag) {
		case arcRecordEllipse:
			major := geom.Point3D{X: radius * math.Cos(tilt), Y: radius * math.Sin(tilt)}
			endParam := startAngle + sweep
			if fullCircle != 0 {
				endParam = startAngle + 2*math.Pi
			}
			g = entity.Ellipse{Center: center, MajorAxisEndpoint: major, Ratio: ratio, StartParam: startAngle, EndParam: endParam}
		case arcRecordCircle:
			g = entity.Circle{Center: center, Radius: radius}
		default:
			g = entity.Arc{Center: center, Radius: radius, StartAngle: startAngle, EndAngle: startAngle + sweep}
		}
		e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: g}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
	return nil
}

func readPointSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		layer, color, handle, err := readEntityCommon(rr)
		if err != nil {
			return err
		}
		p, err := rr.Point()
		if err != nil {
			return err
		}
		e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: entity.Point{P: p}}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
	return nil
}

func readTextSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		layer, color, handle, err := readEntityCommon(rr)
		if err != nil {
			return err
		}
		insertion, err := rr.Point()
		if err != nil {
			return err
		}
		height, err := rr.Float64()
		if err != nil {
			return err
		}
		rotation, err := rr.Float64()
		if err != nil {
			return err
		}
		text, err := rr.String()
		if err != nil {
			return err
		}
		mtext, err := rr.Uint8()
		if err != nil {
			return err
		}
		e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: entity.Text{
			MText: mtext != 0, Insertion: insertion, Text: text, Height: height, Rotation: rotation,
		}}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
	return nil
}

func readDimensionSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		layer, color, handle, err := readEntityCommon(rr)
		if err != nil {
			return err
		}
		e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: entity.Summary{SummaryKind: entity.KindDimension}}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
	return nil
}

func readSolidSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		layer, color, handle, err := readEntityCommon(rr)
		if err != nil {
			return err
		}
		which, err := rr.Uint8()
		if err != nil {
			return err
		}
		var quad entity.Quad
		switch quadKind(which) {
		case quadKindTrace:
			quad.Which = entity.QuadTrace
		case quadKind3DFace:
			quad.Which = entity.Quad3DFace
		default:
			quad.Which = entity.QuadSolid
		}
		for j := 0; j < 4; j++ {
			p, err := rr.Point()
			if err != nil {
				return err
			}
			quad.Corners[j] = p
		}
		e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: quad}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
	return nil
}

func readBlockSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		layer, color, handle, err := readEntityCommon(rr)
		if err != nil {
			return err
		}
		blockName, err := rr.String()
		if err != nil {
			return err
		}
		insertion, err := rr.Point()
		if err != nil {
			return err
		}
		scaleX, err := rr.Float64()
		if err != nil {
			return err
		}
		scaleY, err := rr.Float64()
		if err != nil {
			return err
		}
		rotation, err := rr.Float64()
		if err != nil {
			return err
		}
		e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: entity.Insert{
			BlockName: blockName, Insertion: insertion, ScaleX: scaleX, ScaleY: scaleY, Rotation: rotation,
		}}
		if err := sink.OnEntity(e); err != nil {
			return err
		}
	}
	return nil
}

func readDataListSection(rr *recordReader, sink document.Sink) error {
	n, err := rr.Uint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		recordTag, err := rr.Uint8()
		if err != nil {
			return err
		}
		switch recordTag {
		case 0: // lossy placeholder
			layer, color, handle, err := readEntityCommon(rr)
			if err != nil {
				return err
			}
			dk, err := rr.Uint8()
			if err != nil {
				return err
			}
			kind, ok := dataKindToEntityKind[recordKind(dk)]
			if !ok {
				return errs.Wrap(errs.ErrMalformedInput, "unrecognised data-list kind tag %d", dk)
			}
			e := &entity.Entity{Layer: layer, Color: color, Handle: handle, Geometry: entity.Summary{SummaryKind: kind}}
			if err := sink.OnEntity(e); err != nil {
				return err
			}
		case 1: // block definition
			name, err := rr.String()
			if err != nil {
				return err
			}
			base, err := rr.Point()
			if err != nil {
				return err
			}
			count, err := rr.Uint32()
			if err != nil {
				return err
			}
			if err := sink.OnBlockBegin(name, base); err != nil {
				return err
			}
			for j := uint32(0); j < count; j++ {
				e, err := readGenericEntity(rr)
				if err != nil {
					return err
				}
				if err := sink.OnEntity(e); err != nil {
					return err
				}
			}
			if err := sink.OnBlockEnd(); err != nil {
				return err
			}
		default:
			return errs.Wrap(errs.ErrMalformedInput, "unrecognised data-list record tag %d", recordTag)
		}
	}
	return nil
}

// readGenericEntity reads one kind-tagged entity from inside a nested
// block-definition record, the inverse of writeGenericEntity.
func readGenericEntity(rr *recordReader) (*entity.Entity, error) {
	kindTag, err := rr.Uint8()
	if err != nil {
		return nil, err
	}
	layer, color, handle, err := readEntityCommon(rr)
	if err != nil {
		return nil, err
	}
	e := &entity.Entity{Layer: layer, Color: color, Handle: handle}

	switch entity.Kind(kindTag) {
	case entity.KindPoint:
		p, err := rr.Point()
		if err != nil {
			return nil, err
		}
		e.Geometry = entity.Point{P: p}
	case entity.KindLine:
		p1, err := rr.Point()
		if err != nil {
			return nil, err
		}
		p2, err := rr.Point()
		if err != nil {
			return nil, err
		}
		e.Geometry = entity.Line{P1: p1, P2: p2}
	case entity.KindCircle:
		center, err := rr.Point()
		if err != nil {
			return nil, err
		}
		radius, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		e.Geometry = entity.Circle{Center: center, Radius: radius}
	case entity.KindArc:
		center, err := rr.Point()
		if err != nil {
			return nil, err
		}
		radius, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		startAngle, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		sweep, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		e.Geometry = entity.Arc{Center: center, Radius: radius, StartAngle: startAngle, EndAngle: startAngle + sweep}
	case entity.KindText, entity.KindMText:
		insertion, err := rr.Point()
		if err != nil {
			return nil, err
		}
		height, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		rotation, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		text, err := rr.String()
		if err != nil {
			return nil, err
		}
		e.Geometry = entity.Text{MText: entity.Kind(kindTag) == entity.KindMText, Insertion: insertion, Text: text, Height: height, Rotation: rotation}
	case entity.KindInsert:
		blockName, err := rr.String()
		if err != nil {
			return nil, err
		}
		insertion, err := rr.Point()
		if err != nil {
			return nil, err
		}
		scaleX, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		scaleY, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		rotation, err := rr.Float64()
		if err != nil {
			return nil, err
		}
		e.Geometry = entity.Insert{BlockName: blockName, Insertion: insertion, ScaleX: scaleX, ScaleY: scaleY, Rotation: rotation}
	case entity.KindSolid, entity.KindTrace, entity.Kind3DFace:
		var quad entity.Quad
		switch entity.Kind(kindTag) {
		case entity.KindTrace:
			quad.Which = entity.QuadTrace
		case entity.Kind3DFace:
			quad.Which = entity.Quad3DFace
		default:
			quad.Which = entity.QuadSolid
		}
		for j := 0; j < 4; j++ {
			p, err := rr.Point()
			if err != nil {
				return nil, err
			}
			quad.Corners[j] = p
		}
		e.Geometry = quad
	default:
		// Ellipse, Polyline, Spline, Summary-backed kinds: no payload
		// bytes were written, only the kind tag.
		e.Geometry = entity.Summary{SummaryKind: entity.Kind(kindTag)}
	}

	return e, nil
}
