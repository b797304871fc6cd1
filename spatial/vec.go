// Package spatial provides the rigid-body geometry primitives the force
// kernel needs: a 3-vector, a 3x3 rotation, a rigid transform composing the
// two, and a spatial force (torque, force) pair. All value types, so the
// force kernel's hot loop (spec.md §5: "no nested allocation occurs inside
// the outer loop") never touches the heap for geometry.
//
// Vec3 is gonum's own r3.Vec, the idiomatic zero-allocation 3-vector in the
// gonum ecosystem gochem (the teacher for this module) already depends on.
// Grounded on gochem's geometric.go, which rolls its own Cross/Dot/Norm over
// a 1-row *v3.Matrix; r3.Vec is the same arithmetic without the matrix
// wrapper gochem needed before gonum shipped a vector type.
package spatial

import "gonum.org/v1/gonum/spatial/r3"

// Vec3 is a cartesian vector or point, depending on context.
type Vec3 = r3.Vec

// Zero is the zero vector.
var Zero = Vec3{}

// Add, Sub, Scale, Dot, Cross and Norm delegate to r3 so call sites in this
// module don't need to import r3 directly.
func Add(a, b Vec3) Vec3      { return r3.Add(a, b) }
func Sub(a, b Vec3) Vec3      { return r3.Sub(a, b) }
func Scale(s float64, v Vec3) Vec3 { return r3.Scale(s, v) }
func Dot(a, b Vec3) float64   { return r3.Dot(a, b) }
func Cross(a, b Vec3) Vec3    { return r3.Cross(a, b) }
func Norm(v Vec3) float64     { return r3.Norm(v) }
func Norm2(v Vec3) float64    { return r3.Dot(v, v) }

// Unit returns v scaled to unit length. If v is (numerically) the zero
// vector, it returns an arbitrary unit vector perpendicular to ref, or the
// X axis if ref is also degenerate. This is the deterministic fallback
// spec.md §4.6/§4.7 document for degenerate bend/torsion geometry.
func Unit(v Vec3, ref Vec3) Vec3 {
	n := Norm(v)
	if n > degenerateTol {
		return Scale(1/n, v)
	}
	return ArbitraryPerpendicular(ref)
}

// ArbitraryPerpendicular returns a unit vector perpendicular to ref,
// falling back to the X axis if ref is itself (numerically) zero.
func ArbitraryPerpendicular(ref Vec3) Vec3 {
	n := Norm(ref)
	if n <= degenerateTol {
		return Vec3{X: 1, Y: 0, Z: 0}
	}
	u := Scale(1/n, ref)
	// Cross with the X axis unless u lies within about 25 degrees of it, then
	// with the Y axis, so the cross product stays well away from zero.
	axis := Vec3{X: 1, Y: 0, Z: 0}
	if absf(u.X) > 0.9 {
		axis = Vec3{X: 0, Y: 1, Z: 0}
	}
	p := Cross(u, axis)
	return Scale(1/Norm(p), p)
}

// degenerateTol matches gochem's appzero (v3/gocoords.go): a floating-point
// tolerance below which a length is treated as exactly zero.
const degenerateTol = 1e-12

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
