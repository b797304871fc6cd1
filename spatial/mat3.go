package spatial

// Mat3 is a 3x3 rotation matrix stored row-major. It composes and applies
// without allocation, which r3's own Rotation/quaternion types are not
// guaranteed to do for repeated composition. Transform stores its rotation
// as a Mat3; the cluster package composes placement rotations through
// gonum/mat and converts the product back to a Mat3.
// Grounded on gochem's geometric.go rotation operators (RotatorAroundZ,
// RotatorToNewZ), which build an explicit 3x3 operator the same way.
type Mat3 struct {
	Row [3]Vec3
}

// Identity returns the 3x3 identity rotation.
func Identity() Mat3 {
	return Mat3{Row: [3]Vec3{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}}
}

// Apply rotates v by M.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: Dot(m.Row[0], v),
		Y: Dot(m.Row[1], v),
		Z: Dot(m.Row[2], v),
	}
}

// Transpose returns the transpose of M, which for a proper rotation is
// also its inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{Row: [3]Vec3{
		{X: m.Row[0].X, Y: m.Row[1].X, Z: m.Row[2].X},
		{X: m.Row[0].Y, Y: m.Row[1].Y, Z: m.Row[2].Y},
		{X: m.Row[0].Z, Y: m.Row[1].Z, Z: m.Row[2].Z},
	}}
}

// Mul composes two rotations: (m.Mul(n)).Apply(v) == m.Apply(n.Apply(v)).
func (m Mat3) Mul(n Mat3) Mat3 {
	nt := n.Transpose()
	return Mat3{Row: [3]Vec3{
		{X: Dot(m.Row[0], nt.Row[0]), Y: Dot(m.Row[0], nt.Row[1]), Z: Dot(m.Row[0], nt.Row[2])},
		{X: Dot(m.Row[1], nt.Row[0]), Y: Dot(m.Row[1], nt.Row[1]), Z: Dot(m.Row[1], nt.Row[2])},
		{X: Dot(m.Row[2], nt.Row[0]), Y: Dot(m.Row[2], nt.Row[1]), Z: Dot(m.Row[2], nt.Row[2])},
	}}
}
