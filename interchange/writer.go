package interchange

import (
	"io"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/errs"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb/geojson"
)

// WriteFlatGeobuf projects doc, then streams the result to w as a
// FlatGeobuf file: same builder, header, and column machinery as the
// teacher's writeWithGenerator, generalised to the four-column property
// schema ToFeatureCollection always produces.
func WriteFlatGeobuf(w io.Writer, doc *document.Document, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	fc, _ := ToFeatureCollection(doc)
	if len(fc.Features) == 0 {
		return errs.Wrap(errs.ErrInvalidArgument, "document projects to zero features")
	}

	geomType := flattypes.GeometryTypeUnknown
	if fc.Features[0].Geometry != nil {
		geomType = orbToFGBGeometryType(fc.Features[0].Geometry)
		for _, f := range fc.Features[1:] {
			if f.Geometry != nil && orbToFGBGeometryType(f.Geometry) != geomType {
				geomType = flattypes.GeometryTypeUnknown
				break
			}
		}
	}

	builder := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(builder)
	header.SetGeometryType(geomType)
	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}

	columns := make([]*writer.Column, 0, len(interchangeColumns))
	for _, c := range interchangeColumns {
		col := writer.NewColumn(builder)
		col.SetName(c.name)
		col.SetTitle(c.name)
		col.SetType(c.typ)
		col.SetNullable(true)
		columns = append(columns, col)
	}
	header.SetColumns(columns)

	gen := &featureGenerator{features: fc.Features}
	fgbWriter := writer.NewWriter(header, opts.IncludeIndex, gen, nil)

	if _, err := fgbWriter.Write(w); err != nil {
		return errs.Wrap(errs.ErrIo, "writing FlatGeobuf stream: %v", err)
	}
	return nil
}

// featureGenerator feeds ToFeatureCollection's output to the
// FlatGeobuf writer one feature at a time, the same streaming shape as
// the teacher's featureCollectionGenerator.
type featureGenerator struct {
	features []*geojson.Feature
	index    int
}

func (g *featureGenerator) Generate() *writer.Feature {
	if g.index >= len(g.features) {
		return nil
	}
	f := g.features[g.index]
	g.index++

	if f == nil || f.Geometry == nil {
		return g.Generate()
	}

	builder := flatbuffers.NewBuilder(1024)
	fgbGeom := geometryToFGB(f.Geometry, builder)
	if fgbGeom == nil {
		return g.Generate()
	}

	feature := writer.NewFeature(builder)
	feature.SetGeometry(fgbGeom)
	if f.Properties != nil {
		if propBytes := encodeProperties(f.Properties); len(propBytes) > 0 {
			feature.SetProperties(propBytes)
		}
	}
	return feature
}
