package document

import (
	"strings"

	"github.com/f4ah6o/cadutil/entity"
	"github.com/f4ah6o/cadutil/geom"
)

// Block is a named, reusable group of entities with a base point.
// Names beginning with '*' are reserved for format-synthesized blocks
// (model space, paper space); writers emit synthetic definitions for
// those and skip re-emitting whatever content a reader happened to
// capture for them.
type Block struct {
	Name     string
	Base     geom.Point3D
	Entities []*entity.Entity
}

// IsReserved reports whether b is a format-reserved block name.
func (b *Block) IsReserved() bool {
	return strings.HasPrefix(b.Name, "*")
}
