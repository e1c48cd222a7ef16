// Package jww implements the record-based reader and writer adapter
// for the JWW native binary format: fixed section counters and
// version-tagged field layouts, the record-oriented counterpart to the
// dxf package's tag-stream adapter.
package jww

import "github.com/f4ah6o/cadutil/entity"

const (
	// FormatTag is the on-disk format identifier written at the head of
	// every file this package produces.
	FormatTag = "JwsFileFormat_ver"

	// DataVersion is the version-tagged field layout this package reads
	// and writes.
	DataVersion = 800

	LayerGroupCount = 16
	LayersPerGroup  = 16
	PenCount        = 10
	PaperSizeA3     = 2

	DefaultUnitScale = 1.0
	DefaultMemo      = "Exported from cadutil"
)

// fullCircleEpsilon tolerates floating-point noise when deciding whether
// an elliptical arc's swept parameter range closes a full revolution.
const fullCircleEpsilon = 1e-9

// arcRecordKind tags which of CIRCLE/ARC/ELLIPSE an arc-section record
// holds; all three share that section's fixed field layout.
type arcRecordKind uint8

const (
	arcRecordCircle arcRecordKind = iota
	arcRecordArc
	arcRecordEllipse
)

// clampColor clamps a neutral colour index to JWW's fixed pen palette,
// [1,9]; JWW has no BYLAYER sentinel and falls back to pen 1.
func clampColor(c int) uint16 {
	if c < 1 || c > 9 {
		return 1
	}
	return uint16(c)
}

// recordKind tags an entity inside the data-list section, the lossy
// catch-all for kinds JWW's eight fixed record sections have no native
// shape for (LWPOLYLINE, POLYLINE, SPLINE, LEADER, HATCH, IMAGE,
// VIEWPORT). ELLIPSE is not among them: it has a native arc-section
// record, alongside CIRCLE and ARC.
type recordKind uint8

const (
	dataKindPolyline recordKind = iota
	dataKindLWPolyline
	dataKindSpline
	dataKindLeader
	dataKindHatch
	dataKindImage
	dataKindViewport
)

var dataKindToEntityKind = map[recordKind]entity.Kind{
	dataKindPolyline:   entity.KindPolyline,
	dataKindLWPolyline: entity.KindLWPolyline,
	dataKindSpline:     entity.KindSpline,
	dataKindLeader:     entity.KindLeader,
	dataKindHatch:      entity.KindHatch,
	dataKindImage:      entity.KindImage,
	dataKindViewport:   entity.KindViewport,
}

var entityKindToDataKind = map[entity.Kind]recordKind{
	entity.KindPolyline:   dataKindPolyline,
	entity.KindLWPolyline: dataKindLWPolyline,
	entity.KindSpline:     dataKindSpline,
	entity.KindLeader:     dataKindLeader,
	entity.KindHatch:      dataKindHatch,
	entity.KindImage:      dataKindImage,
	entity.KindViewport:   dataKindViewport,
}

// quadKind tags which of SOLID/TRACE/3DFACE a solids-section record is.
type quadKind uint8

const (
	quadKindSolid quadKind = iota
	quadKindTrace
	quadKind3DFace
)
