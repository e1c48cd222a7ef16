package document

import (
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
)

// HeaderSink receives $-prefixed header variables as they are parsed.
type HeaderSink interface {
	OnHeaderVariable(name string, value interface{})
}

// TableSink receives symbol-table definitions: layers and the three
// named-by-string style tables (line type, text style, dimension
// style).
type TableSink interface {
	OnLayer(l Layer) error
	OnLineType(lt LineType) error
	OnTextStyle(ts TextStyle) error
	OnDimStyle(ds DimStyle) error
}

// BlockSink receives block-definition boundaries. OnBlockBegin pushes a
// named block as the current entity target; OnBlockEnd pops back to
// model space. A reader adapter that sees a nested begin or an
// unmatched end must surface the resulting error as MalformedInput.
type BlockSink interface {
	OnBlockBegin(name string, base geom.Point3D) error
	OnBlockEnd() error
}

// EntitySink receives one fully-parsed entity at a time, appended to
// whichever target is current (model space, or an open block).
type EntitySink interface {
	OnEntity(e *entity.Entity) error
}

// Sink is the full capability set a reader adapter drives. Document
// implements it directly; tests drive readers against a stub
// implementation to exercise the adapter in isolation, per spec.md's
// "testable in isolation with a stub document" requirement.
type Sink interface {
	HeaderSink
	TableSink
	BlockSink
	EntitySink
}
