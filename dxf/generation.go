package dxf

import "github.com/f4ah6o/cadutil/errs"

// Generation is a DXF target version, internally tagged the way AutoCAD
// itself tags $ACADVER (e.g. "AC1021" for DXF 2007).
type Generation string

const (
	GenerationR12  Generation = "AC1009"
	GenerationR14  Generation = "AC1014"
	Generation2000 Generation = "AC1015"
	Generation2004 Generation = "AC1018"
	Generation2007 Generation = "AC1021" // default when unspecified
	Generation2010 Generation = "AC1024"
	Generation2013 Generation = "AC1027"
	Generation2018 Generation = "AC1032"

	// DefaultGeneration is used when a writer is asked for no specific
	// generation.
	DefaultGeneration = Generation2007
)

var tagToGeneration = map[int]Generation{
	12:   GenerationR12,
	14:   GenerationR14,
	2000: Generation2000,
	2004: Generation2004,
	2007: Generation2007,
	2010: Generation2010,
	2013: Generation2013,
	2018: Generation2018,
}

// GenerationFromTag maps the numeric CLI-facing tag (12, 14, 2000, ...)
// to its internal generation name. This is the only place
// UnsupportedVersion is raised, per spec.md §7's propagation policy.
func GenerationFromTag(tag int) (Generation, error) {
	g, ok := tagToGeneration[tag]
	if !ok {
		return "", errs.Wrap(errs.ErrUnsupportedVersion, "unsupported DXF generation tag %d", tag)
	}
	return g, nil
}
