package spatial

// Transform is a rigid pose: a rotation followed by a translation. Following
// the original DuMM source's naming convention, X_AB denotes a transform
// taking points/vectors expressed in frame B to frame A.
type Transform struct {
	R Mat3
	P Vec3 // origin of the child frame, expressed in the parent frame
}

// IdentityTransform is the identity pose.
func IdentityTransform() Transform {
	return Transform{R: Identity()}
}

// ApplyToPoint maps a point (a station) from the child frame to the parent
// frame: p_A = X_AB.R * p_B + X_AB.P.
func (x Transform) ApplyToPoint(p Vec3) Vec3 {
	return Add(x.R.Apply(p), x.P)
}

// ApplyToVector maps a free vector (no translation component) from the
// child frame to the parent frame.
func (x Transform) ApplyToVector(v Vec3) Vec3 {
	return x.R.Apply(v)
}

// Compose returns X_AC = X_AB * X_BC: applying the result to a point in C
// is the same as applying X_BC then X_AB.
func (xAB Transform) Compose(xBC Transform) Transform {
	return Transform{
		R: xAB.R.Mul(xBC.R),
		P: xAB.ApplyToPoint(xBC.P),
	}
}
