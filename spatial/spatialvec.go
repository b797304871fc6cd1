package spatial

// SpatialVec is the (torque-about-origin, force-at-origin) pair spec.md's
// glossary defines as a "spatial force". The force kernel accumulates these
// per body.
type SpatialVec struct {
	Torque Vec3
	Force  Vec3
}

// Add returns the sum of two spatial vectors.
func (s SpatialVec) Add(o SpatialVec) SpatialVec {
	return SpatialVec{Torque: Add(s.Torque, o.Torque), Force: Add(s.Force, o.Force)}
}

// Negate returns the additive inverse.
func (s SpatialVec) Negate() SpatialVec {
	return SpatialVec{Torque: Scale(-1, s.Torque), Force: Scale(-1, s.Force)}
}

// ForceAtStation builds the spatial force produced by applying a cartesian
// force f at a point whose position relative to the body origin is
// station: torque = station x f, force = f.
func ForceAtStation(station, f Vec3) SpatialVec {
	return SpatialVec{Torque: Cross(station, f), Force: f}
}
