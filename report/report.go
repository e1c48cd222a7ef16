// Package report builds a plain, document-independent value from a
// document.Document at a requested detail level. A Report carries no
// back-pointers into the document it was built from and survives the
// document's destruction.
package report

import (
	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
)

// Level is a requested detail level, from least to most verbose.
type Level int

const (
	Summary Level = iota
	Normal
	Verbose
	Full
)

// LayerInfo is the Normal-and-above layer projection.
type LayerInfo struct {
	Name       string
	Color      int
	LineType   string
	LineWeight float64
}

// BlockInfo is the Normal-and-above block projection.
type BlockInfo struct {
	Name        string
	Base        geom.Point3D
	EntityCount int
}

// EntityInfo is the Verbose-and-above per-entity projection.
type EntityInfo struct {
	Kind     string
	Layer    string
	Color    int
	Handle   int
	Geometry interface{} // populated at Full, nil below it
}

// Report is the fixed schema spec.md §6 names: filename, format tag,
// generation string, counts, bounds, a per-kind count vector, and
// optional layer/block/entity detail.
type Report struct {
	Filename     string
	Format       string
	Generation   string
	LayerCount   int
	BlockCount   int
	EntityCount  int
	Bounds       geom.BoundingBox
	EntityCounts [entity.KindCount]int

	Layers   []LayerInfo  `json:",omitempty"`
	Blocks   []BlockInfo  `json:",omitempty"`
	Entities []EntityInfo `json:",omitempty"`
}

// Build projects doc at level, tagging the report with format and
// generation (generation may be "" for JWW, which has no generation
// axis).
func Build(doc *document.Document, format, generation string, level Level) Report {
	r := Report{
		Filename:    doc.Filename,
		Format:      format,
		Generation:  generation,
		LayerCount:  doc.Layers.Len(),
		BlockCount:  doc.Blocks.Len(),
		EntityCount: len(doc.Entities),
		Bounds:      doc.Bounds,
	}

	for _, e := range doc.Entities {
		r.EntityCounts[e.Kind()]++
	}

	if level < Normal {
		return r
	}

	for _, l := range doc.Layers.Values() {
		r.Layers = append(r.Layers, LayerInfo{Name: l.Name, Color: l.Color, LineType: l.LineType, LineWeight: l.LineWeight})
	}
	for _, name := range doc.Blocks.Names() {
		b, _ := doc.Blocks.Get(name)
		r.Blocks = append(r.Blocks, BlockInfo{Name: b.Name, Base: b.Base, EntityCount: len(b.Entities)})
	}

	if level < Verbose {
		return r
	}

	for _, e := range doc.Entities {
		info := EntityInfo{Kind: e.Kind().String(), Layer: e.EffectiveLayer(), Color: e.Color, Handle: e.Handle}
		if level >= Full {
			info.Geometry = e.Geometry
		}
		r.Entities = append(r.Entities, info)
	}

	return r
}
