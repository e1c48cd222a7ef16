// Package document owns the neutral in-memory CAD model every reader
// adapter mutates and every writer adapter, validator, and projector
// consumes read-only: ordered layers, blocks, model-space entities,
// symbol tables, header variables, and a running bounding box.
package document

import (
	"fmt"

	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/errs"
	"github.com/f4ah6o/cadutil/geom"
)

// Document is the single in-memory model every format adapter targets.
// Ownership is strict and exclusive: it owns every Layer, Block, and
// Entity reachable from it, and nothing in this package lets one escape
// to another Document.
//
// A Document is mutated only by its reader adapter, via the Sink
// interface it implements. Once read, it is append-only from the
// caller's perspective: nothing in the public API beyond the Sink
// methods, Skip, and Close mutates it.
type Document struct {
	Filename string

	Layers     namedTable[Layer]
	LineTypes  namedTable[LineType]
	TextStyles namedTable[TextStyle]
	DimStyles  namedTable[DimStyle]

	Blocks   namedTable[*Block]
	Entities []*entity.Entity // model space, in file order

	Header map[string]interface{}

	Bounds geom.BoundingBox

	// SkippedCount counts upstream constructs the reader adapter
	// recognised but does not preserve in the model (UCS, plot
	// settings, hatch-loop detail, ...). Skipping is a first-class,
	// counted operation, not a silent drop.
	SkippedCount int

	currentBlock *Block // nil while targeting model space
}

// New returns an empty Document ready to be driven by a reader adapter.
func New(filename string) *Document {
	return &Document{
		Filename:   filename,
		Layers:     newNamedTable[Layer](),
		LineTypes:  newNamedTable[LineType](),
		TextStyles: newNamedTable[TextStyle](),
		DimStyles:  newNamedTable[DimStyle](),
		Blocks:     newNamedTable[*Block](),
		Header:     make(map[string]interface{}),
		Bounds:     geom.EmptyBoundingBox(),
	}
}

// Close destroys every owned resource. After Close, d must not be used.
// It is always safe to call, including on a partially-read document,
// and safe to call more than once.
func (d *Document) Close() {
	d.Entities = nil
	d.Blocks = newNamedTable[*Block]()
	d.Layers = newNamedTable[Layer]()
	d.LineTypes = newNamedTable[LineType]()
	d.TextStyles = newNamedTable[TextStyle]()
	d.DimStyles = newNamedTable[DimStyle]()
	d.Header = nil
	d.currentBlock = nil
}

// currentTarget returns the entity slice OnEntity should append to:
// the current block's, or model space's when no block is open.
func (d *Document) currentTarget() *[]*entity.Entity {
	if d.currentBlock != nil {
		return &d.currentBlock.Entities
	}
	return &d.Entities
}

// OnHeaderVariable implements HeaderSink.
func (d *Document) OnHeaderVariable(name string, value interface{}) {
	d.Header[name] = value
}

// OnLayer implements TableSink with first-writer-wins semantics.
func (d *Document) OnLayer(l Layer) error {
	d.Layers.Add(l.Name, l)
	return nil
}

// OnLineType implements TableSink with first-writer-wins semantics.
func (d *Document) OnLineType(lt LineType) error {
	d.LineTypes.Add(lt.Name, lt)
	return nil
}

// OnTextStyle implements TableSink with first-writer-wins semantics.
func (d *Document) OnTextStyle(ts TextStyle) error {
	d.TextStyles.Add(ts.Name, ts)
	return nil
}

// OnDimStyle implements TableSink with first-writer-wins semantics.
func (d *Document) OnDimStyle(ds DimStyle) error {
	d.DimStyles.Add(ds.Name, ds)
	return nil
}

// OnBlockBegin implements BlockSink. A begin while another block is
// already open is malformed input: block definitions do not nest.
func (d *Document) OnBlockBegin(name string, base geom.Point3D) error {
	if d.currentBlock != nil {
		return errs.Wrap(errs.ErrMalformedInput, "nested block begin %q inside %q", name, d.currentBlock.Name)
	}
	b := &Block{Name: name, Base: base}
	d.Blocks.Add(name, b)
	stored, _ := d.Blocks.Get(name)
	d.currentBlock = stored
	return nil
}

// OnBlockEnd implements BlockSink. An end with no open block is
// malformed input.
func (d *Document) OnBlockEnd() error {
	if d.currentBlock == nil {
		return errs.Wrap(errs.ErrMalformedInput, "unmatched block end")
	}
	d.currentBlock = nil
	return nil
}

// OnEntity implements EntitySink: appends e to whichever target is
// current and folds its geometry into the running bounding box.
func (d *Document) OnEntity(e *entity.Entity) error {
	if e == nil {
		return errs.Wrap(errs.ErrInvalidArgument, "nil entity")
	}
	target := d.currentTarget()
	*target = append(*target, e)

	if box, ok := e.Bound(); ok {
		d.Bounds = d.Bounds.Extend(box)
	}
	return nil
}

// Skip records that the reader recognised but did not preserve one
// upstream construct (a UCS, a plot setting, hatch-loop detail, ...).
func (d *Document) Skip() {
	d.SkippedCount++
}

// Open reports whether a block definition is currently open (i.e. the
// reader is between OnBlockBegin and OnBlockEnd).
func (d *Document) Open() bool { return d.currentBlock != nil }

// String renders a short identifying summary, useful in error messages.
func (d *Document) String() string {
	return fmt.Sprintf("Document(%s: %d layers, %d blocks, %d entities)",
		d.Filename, d.Layers.Len(), d.Blocks.Len(), len(d.Entities))
}

var _ Sink = (*Document)(nil)
