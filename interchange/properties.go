package interchange

import (
	"bytes"
	"encoding/binary"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb/geojson"
)

// interchangeColumns is the fixed column schema ToFeatureCollection's
// properties always populate, in a stable order. Unlike the teacher's
// inferColumns, cadutil's property set never varies feature to
// feature, so the schema is declared rather than inferred — but the
// encoding below keeps the teacher's column-index-prefixed layout so a
// reader built against that convention still works against this
// package's output.
var interchangeColumns = []struct {
	name string
	typ  flattypes.ColumnType
}{
	{"kind", flattypes.ColumnTypeString},
	{"layer", flattypes.ColumnTypeString},
	{"color", flattypes.ColumnTypeInt},
	{"handle", flattypes.ColumnTypeInt},
}

// encodeProperties writes props in interchangeColumns order as
// [2-byte column index][value], matching the teacher's property wire
// format in properties.go.
func encodeProperties(props geojson.Properties) []byte {
	var buf bytes.Buffer
	for i, col := range interchangeColumns {
		v, ok := props[col.name]
		if !ok {
			continue
		}
		var idx [2]byte
		binary.LittleEndian.PutUint16(idx[:], uint16(i))
		buf.Write(idx[:])
		writePropertyValue(&buf, v, col.typ)
	}
	return buf.Bytes()
}

func writePropertyValue(buf *bytes.Buffer, value interface{}, colType flattypes.ColumnType) {
	switch colType {
	case flattypes.ColumnTypeInt:
		if v, ok := toInt32(value); ok {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(v))
			buf.Write(b[:])
		}
	case flattypes.ColumnTypeString:
		s, _ := value.(string)
		buf.WriteString(s)
		buf.WriteByte(0)
	}
}

func toInt32(v interface{}) (int32, bool) {
	switch n := v.(type) {
	case int:
		return int32(n), true
	case int32:
		return n, true
	case int64:
		return int32(n), true
	default:
		return 0, false
	}
}
