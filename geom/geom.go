// Package geom provides the geometry primitives shared by every document,
// reader, writer, validator, and projector in cadutil: 3-D points, an
// accumulating bounding box, colour indices, and line-weight sentinels.
package geom

import "math"

// Point3D is a point in model space. Z is zero for drawings that never
// leave the XY plane, which is the common case for DXF/JWW interchange.
type Point3D struct {
	X, Y, Z float64
}

// Sub returns p - q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Length returns the Euclidean length of p treated as a vector.
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Equal reports whether p and q are equal to within tol on every axis.
func (p Point3D) Equal(q Point3D, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol && math.Abs(p.Z-q.Z) <= tol
}

// BoundingBox is an axis-aligned box. An empty box has Min above Max on
// every axis so that Extend always produces the correct extremum.
type BoundingBox struct {
	Min, Max Point3D
}

// EmptyBoundingBox returns the box used to seed bounds accumulation: every
// axis starts at (+Inf, -Inf) so the first Extend call wins outright.
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point3D{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Point3D{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Valid reports whether Min <= Max componentwise. An empty box (see
// EmptyBoundingBox) is never valid.
func (b BoundingBox) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Extend returns the smallest box containing both b and other.
func (b BoundingBox) Extend(other BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Point3D{
			X: math.Min(b.Min.X, other.Min.X),
			Y: math.Min(b.Min.Y, other.Min.Y),
			Z: math.Min(b.Min.Z, other.Min.Z),
		},
		Max: Point3D{
			X: math.Max(b.Max.X, other.Max.X),
			Y: math.Max(b.Max.Y, other.Max.Y),
			Z: math.Max(b.Max.Z, other.Max.Z),
		},
	}
}

// ExtendPoint returns the smallest box containing both b and p.
func (b BoundingBox) ExtendPoint(p Point3D) BoundingBox {
	return b.Extend(BoundingBox{Min: p, Max: p})
}

// FromPoints returns the bounding box of a non-empty point set. The
// caller must not call this with an empty slice.
func FromPoints(pts []Point3D) BoundingBox {
	box := EmptyBoundingBox()
	for _, p := range pts {
		box = box.ExtendPoint(p)
	}
	return box
}

// Color sentinels, per the DXF/JWW colour model: 0 means "inherit from
// the owning block instance", 256 means "inherit from the owning layer",
// and every value 1-255 is a palette index.
const (
	ColorByBlock = 0
	ColorByLayer = 256
)

// LineWeight sentinel: -1 means "inherit from the owning layer". Any
// other value is a real line weight in millimetres.
const LineWeightByLayer = -1.0

// LineType sentinel string used when an entity inherits its line type
// from the owning layer.
const LineTypeByLayer = "BYLAYER"
