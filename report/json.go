package report

import "encoding/json"

// MarshalJSON renders r as JSON. This is the "out-of-core helper"
// spec.md §6 names: it performs no interpretation of the report, only
// RFC 8259 string escaping, which encoding/json already does for the
// ASCII control range.
func (r Report) MarshalJSON() ([]byte, error) {
	type wire struct {
		Filename     string       `json:"filename"`
		Format       string       `json:"format"`
		Generation   string       `json:"generation"`
		LayerCount   int          `json:"layerCount"`
		BlockCount   int          `json:"blockCount"`
		EntityCount  int          `json:"entityCount"`
		Bounds       boundsWire   `json:"bounds"`
		EntityCounts []int        `json:"entityCounts"`
		Layers       []LayerInfo  `json:"layers,omitempty"`
		Blocks       []BlockInfo  `json:"blocks,omitempty"`
		Entities     []EntityInfo `json:"entities,omitempty"`
	}

	return json.Marshal(wire{
		Filename:     r.Filename,
		Format:       r.Format,
		Generation:   r.Generation,
		LayerCount:   r.LayerCount,
		BlockCount:   r.BlockCount,
		EntityCount:  r.EntityCount,
		Bounds:       boundsWire{Min: [3]float64{r.Bounds.Min.X, r.Bounds.Min.Y, r.Bounds.Min.Z}, Max: [3]float64{r.Bounds.Max.X, r.Bounds.Max.Y, r.Bounds.Max.Z}},
		EntityCounts: r.EntityCounts[:],
		Layers:       r.Layers,
		Blocks:       r.Blocks,
		Entities:     r.Entities,
	})
}

type boundsWire struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}
