package jww

import (
	"io"
	"math"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/errs"
)

// WriteOptions configures a JWW write. JWW has no generation axis the
// way DXF does, so this exists mainly to mirror the DXF package's
// Options/DefaultOptions shape and leave room for a memo override.
type WriteOptions struct {
	Memo string
}

func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{Memo: DefaultMemo}
}

// Write drives the JWW section-emission protocol over doc: a header,
// the layer table, then the eight counter-prefixed record sections in
// fixed order (lines, arcs, points, texts, dimensions, solids, blocks,
// data-list), each preceded by its record count.
func Write(w io.Writer, doc *document.Document, opts *WriteOptions) error {
	if doc == nil {
		return errs.Wrap(errs.ErrInvalidArgument, "nil document")
	}
	if opts == nil {
		opts = DefaultWriteOptions()
	}

	rw := newRecordWriter(w)
	writeHeader(rw, opts)
	writeLayers(rw, doc)

	buckets := bucketEntities(doc.Entities)

	writeLineSection(rw, buckets.lines)
	writeArcSection(rw, buckets.arcs)
	writePointSection(rw, buckets.points)
	writeTextSection(rw, buckets.texts)
	writeDimensionSection(rw, buckets.dimensions)
	writeSolidSection(rw, buckets.solids)
	writeBlockSection(rw, buckets.inserts)
	if err := writeDataListSection(rw, doc, buckets.dataList); err != nil {
		return err
	}

	return rw.Flush()
}

func writeHeader(rw *recordWriter, opts *WriteOptions) {
	rw.String(FormatTag)
	rw.Uint32(DataVersion)
	rw.Uint16(LayerGroupCount)
	rw.Uint16(LayersPerGroup)
	rw.Uint16(PenCount)
	rw.Uint16(PaperSizeA3)
	rw.Float64(DefaultUnitScale)
	rw.String(opts.Memo)
}

func writeLayers(rw *recordWriter, doc *document.Document) {
	layers := doc.Layers.Values()
	rw.Uint32(uint32(len(layers)))
	for _, l := range layers {
		rw.String(l.Name)
		rw.Uint16(clampColor(l.Color))
		rw.String(l.LineType)
		rw.Float64(l.LineWeight)
		rw.Uint8(uint8(l.Flags))
	}
}

type entityBuckets struct {
	lines      []*entity.Entity
	arcs       []*entity.Entity
	points     []*entity.Entity
	texts      []*entity.Entity
	dimensions []*entity.Entity
	solids     []*entity.Entity
	inserts    []*entity.Entity
	dataList   []*entity.Entity
}

// bucketEntities sorts model-space entities into JWW's eight fixed
// record sections. Kinds with no native JWW shape fall through to the
// data-list catch-all.
func bucketEntities(entities []*entity.Entity) entityBuckets {
	var b entityBuckets
	for _, e := range entities {
		switch e.Kind() {
		case entity.KindLine:
			b.lines = append(b.lines, e)
		case entity.KindArc, entity.KindCircle, entity.KindEllipse:
			b.arcs = append(b.arcs, e)
		case entity.KindPoint:
			b.points = append(b.points, e)
		case entity.KindText, entity.KindMText:
			b.texts = append(b.texts, e)
		case entity.KindDimension:
			b.dimensions = append(b.dimensions, e)
		case entity.KindSolid, entity.KindTrace, entity.Kind3DFace:
			b.solids = append(b.solids, e)
		case entity.KindInsert:
			b.inserts = append(b.inserts, e)
		default:
			b.dataList = append(b.dataList, e)
		}
	}
	return b
}

func writeEntityCommon(rw *recordWriter, e *entity.Entity) {
	rw.String(e.EffectiveLayer())
	rw.Uint16(clampColor(e.Color))
	rw.Uint32(uint32(e.Handle))
}

func writeLineSection(rw *recordWriter, lines []*entity.Entity) {
	rw.Uint32(uint32(len(lines)))
	for _, e := range lines {
		l := e.Geometry.(entity.Line)
		writeEntityCommon(rw, e)
		rw.Point(l.P1)
		rw.Point(l.P2)
	}
}

// writeArcSection emits ARC, CIRCLE and ELLIPSE entities through JWW's
// single Enko (arc) record shape: a kind tag, then radius/major-axis
// length, start angle, sweep (m_radEnkoKaku — the end angle minus the
// start angle, wrapped positive, never the raw end angle), a tilt angle
// and axis ratio that only ELLIPSE uses, and the full-circle flag.
func writeArcSection(rw *recordWriter, arcs []*entity.Entity) {
	rw.Uint32(uint32(len(arcs)))
	for _, e := range arcs {
		writeEntityCommon(rw, e)
		switch g := e.Geometry.(type) {
		case entity.Circle:
			rw.Uint8(uint8(arcRecordCircle))
			rw.Point(g.Center)
			rw.Float64(g.Radius)
			rw.Float64(0)
			rw.Float64(2 * math.Pi)
			rw.Float64(0)
			rw.Float64(1)
			rw.Uint8(1) // full circle
		case entity.Arc:
			rw.Uint8(uint8(arcRecordArc))
			rw.Point(g.Center)
			rw.Float64(g.Radius)
			rw.Float64(g.StartAngle)
			rw.Float64(g.Sweep())
			rw.Float64(0)
			rw.Float64(1)
			rw.Uint8(0)
		case entity.Ellipse:
			rw.Uint8(uint8(arcRecordEllipse))
			rw.Point(g.Center)
			rw.Float64(g.MajorAxisEndpoint.Length())
			rw.Float64(g.StartParam)
			sweep := g.EndParam - g.StartParam
			if sweep < 0 {
				sweep += 2 * math.Pi
			}
			rw.Float64(sweep)
			rw.Float64(math.Atan2(g.MajorAxisEndpoint.Y, g.MajorAxisEndpoint.X))
			rw.Float64(g.Ratio)
			if g.FullCircle(fullCircleEpsilon) {
				rw.Uint8(1)
			} else {
				rw.Uint8(0)
			}
		}
	}
}

func writePointSection(rw *recordWriter, points []*entity.Entity) {
	rw.Uint32(uint32(len(points)))
	for _, e := range points {
		p := e.Geometry.(entity.Point)
		writeEntityCommon(rw, e)
		rw.Point(p.P)
	}
}

func writeTextSection(rw *recordWriter, texts []*entity.Entity) {
	rw.Uint32(uint32(len(texts)))
	for _, e := range texts {
		t := e.Geometry.(entity.Text)
		writeEntityCommon(rw, e)
		rw.Point(t.Insertion)
		rw.Float64(t.Height)
		rw.Float64(t.Rotation)
		rw.String(t.Text)
		if t.MText {
			rw.Uint8(1)
		} else {
			rw.Uint8(0)
		}
	}
}

// writeDimensionSection writes the layer/colour/handle fields only;
// DIMENSION carries no geometry in the document model (entity.Summary),
// matching spec.md's lossy-by-design treatment of this kind.
func writeDimensionSection(rw *recordWriter, dims []*entity.Entity) {
	rw.Uint32(uint32(len(dims)))
	for _, e := range dims {
		writeEntityCommon(rw, e)
	}
}

func writeSolidSection(rw *recordWriter, solids []*entity.Entity) {
	rw.Uint32(uint32(len(solids)))
	for _, e := range solids {
		q := e.Geometry.(entity.Quad)
		writeEntityCommon(rw, e)
		switch q.Which {
		case entity.QuadTrace:
			rw.Uint8(uint8(quadKindTrace))
		case entity.Quad3DFace:
			rw.Uint8(uint8(quadKind3DFace))
		default:
			rw.Uint8(uint8(quadKindSolid))
		}
		for _, c := range q.Corners {
			rw.Point(c)
		}
	}
}

func writeBlockSection(rw *recordWriter, inserts []*entity.Entity) {
	rw.Uint32(uint32(len(inserts)))
	for _, e := range inserts {
		ins := e.Geometry.(entity.Insert)
		writeEntityCommon(rw, e)
		rw.String(ins.BlockName)
		rw.Point(ins.Insertion)
		rw.Float64(ins.ScaleX)
		rw.Float64(ins.ScaleY)
		rw.Float64(ins.Rotation)
	}
}

// writeDataListSection writes two kinds of records: lossy placeholders
// for model-space entities whose kind has no native JWW section, and
// block definitions (name, base point, entity count, then each child
// entity as a nested generic record). Block definitions are included
// here rather than given a ninth section, since spec.md's JWW protocol
// fixes the section count at eight.
func writeDataListSection(rw *recordWriter, doc *document.Document, lossy []*entity.Entity) error {
	blockNames := doc.Blocks.Names()
	var defs []*document.Block
	for _, name := range blockNames {
		b, _ := doc.Blocks.Get(name)
		if b.IsReserved() {
			continue
		}
		defs = append(defs, b)
	}

	rw.Uint32(uint32(len(lossy) + len(defs)))

	for _, e := range lossy {
		rw.Uint8(0) // record tag 0: lossy placeholder
		writeEntityCommon(rw, e)
		dk, ok := entityKindToDataKind[e.Kind()]
		if !ok {
			return errs.Wrap(errs.ErrMalformedInput, "entity kind %s has no data-list encoding", e.Kind())
		}
		rw.Uint8(uint8(dk))
	}

	for _, b := range defs {
		rw.Uint8(1) // record tag 1: block definition
		rw.String(b.Name)
		rw.Point(b.Base)
		rw.Uint32(uint32(len(b.Entities)))
		for _, e := range b.Entities {
			if err := writeGenericEntity(rw, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeGenericEntity writes one entity, tagged with its kind, for use
// inside a nested block-definition record where the section's implicit
// kind no longer applies.
func writeGenericEntity(rw *recordWriter, e *entity.Entity) error {
	rw.Uint8(uint8(e.Kind()))
	writeEntityCommon(rw, e)
	switch g := e.Geometry.(type) {
	case entity.Point:
		rw.Point(g.P)
	case entity.Line:
		rw.Point(g.P1)
		rw.Point(g.P2)
	case entity.Circle:
		rw.Point(g.Center)
		rw.Float64(g.Radius)
	case entity.Arc:
		rw.Point(g.Center)
		rw.Float64(g.Radius)
		rw.Float64(g.StartAngle)
		rw.Float64(g.Sweep())
	case entity.Text:
		rw.Point(g.Insertion)
		rw.Float64(g.Height)
		rw.Float64(g.Rotation)
		rw.String(g.Text)
	case entity.Insert:
		rw.String(g.BlockName)
		rw.Point(g.Insertion)
		rw.Float64(g.ScaleX)
		rw.Float64(g.ScaleY)
		rw.Float64(g.Rotation)
	case entity.Quad:
		for _, c := range g.Corners {
			rw.Point(c)
		}
	default:
		// Ellipse, Polyline, Spline, Summary: kind tag only, matching
		// the data-list section's lossy treatment above.
	}
	return nil
}
