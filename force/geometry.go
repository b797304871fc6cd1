// Package force implements the bonded and non-bonded geometry primitives and
// the outer evaluation loop of spec.md §4.6-§4.8: bond stretch, harmonic
// bond bend, periodic torsion, Lennard-Jones vdW and Coulomb electrostatics,
// folded into per-body spatial forces. Grounded directly on the original
// DuMM source's BondBend::harmonic, BondTorsion::periodic and
// DuMMForceFieldSubsystemRep::realizeDynamics, expressed with
// gonum.org/v1/gonum/spatial/r3-backed value types so the evaluation loop
// (spec.md §5) allocates nothing.
package force

import (
	"math"

	"github.com/fcanderson/simbody/catalog"
	"github.com/fcanderson/simbody/spatial"
)

// StretchEnergyAndForce evaluates a harmonic bond stretch between atoms at
// posA and posB, returning the potential energy and the force on B (the
// force on A is its negation), per spec.md §4.6.
func StretchEnergyAndForce(bs *catalog.BondStretch, posA, posB spatial.Vec3) (energy float64, forceOnB spatial.Vec3) {
	r := spatial.Sub(posB, posA)
	d := spatial.Norm(r)
	x := d - bs.D0
	energy = bs.K * x * x
	if d == 0 {
		warnOnce(&zeroLengthBondWarnings, "zero-length bond stretch")
		return energy, spatial.Zero
	}
	fMag := -2 * bs.K * x
	forceOnB = spatial.Scale(fMag/d, r)
	return energy, forceOnB
}

// HarmonicAngle evaluates the bend term for a central atom c bonded to r and
// s, all positions in a common frame. Returns the angle, energy, and the
// force on each of the three atoms (which sum to zero), per spec.md §4.6.
// When r and s are aligned or opposed, the plane normal falls back to an
// arbitrary unit vector perpendicular to r, so the forces stay finite and
// still sum to zero. When r or s coincides with c, the forces are not
// finite.
func HarmonicAngle(bb *catalog.BondBend, posC, posR, posS spatial.Vec3) (theta, energy float64, forceC, forceR, forceS spatial.Vec3) {
	r := spatial.Sub(posR, posC)
	s := spatial.Sub(posS, posC)
	rr := spatial.Dot(r, r)
	ss := spatial.Dot(s, s)
	rs := spatial.Dot(r, s)
	rxs := spatial.Cross(r, s)
	rxsLen := spatial.Norm(rxs)
	theta = math.Atan2(rxsLen, rs)
	bend := theta - bb.Theta0
	energy = bb.K * bend * bend

	if rxsLen == 0 {
		warnOnce(&colinearBendWarnings, "colinear bond bend (r and s aligned or opposed)")
	}
	p := spatial.Unit(rxs, r)
	ffac := -2 * bb.K * bend
	forceR = spatial.Scale(ffac/rr, spatial.Cross(r, p))
	forceS = spatial.Scale(ffac/ss, spatial.Cross(p, s))
	forceC = spatial.Scale(-1, spatial.Add(forceR, forceS))
	return theta, energy, forceC, forceR, forceS
}

// PeriodicTorsion evaluates the dihedral term for atoms bonded r-x-y-s, all
// positions in a common frame, per spec.md §4.7. It returns the torsion
// angle, total energy over every Fourier term, and the force on each of the
// four atoms. If either terminal bond (r-x or y-s) is parallel to the
// rotation axis, no torque can be generated and the returned forces are all
// zero.
func PeriodicTorsion(bt *catalog.BondTorsion, posR, posX, posY, posS spatial.Vec3) (theta, energy float64, forceR, forceX, forceY, forceS spatial.Vec3) {
	r := spatial.Sub(posX, posR)
	s := spatial.Sub(posS, posY)
	xy := spatial.Sub(posY, posX)

	vv := spatial.Dot(xy, xy)
	var oov float64
	var v spatial.Vec3
	if vv != 0 {
		oov = 1 / math.Sqrt(vv)
		v = spatial.Scale(oov, xy)
	} else {
		rs := spatial.Cross(r, s)
		if spatial.Norm(rs) != 0 {
			v = spatial.Scale(1/spatial.Norm(rs), rs)
		} else {
			v = spatial.ArbitraryPerpendicular(r)
		}
	}

	t := spatial.Cross(r, v)
	u := spatial.Cross(v, s)
	tt := spatial.Dot(t, t)
	uu := spatial.Dot(u, u)
	if tt == 0 || uu == 0 {
		warnOnce(&colinearTorsionWarnings, "colinear torsion axis (r or s parallel to xy)")
		return 0, 0, spatial.Zero, spatial.Zero, spatial.Zero, spatial.Zero
	}

	txu := spatial.Cross(t, u)
	ootu := 1 / math.Sqrt(tt*uu)
	cth := spatial.Dot(t, u) * ootu
	sth := spatial.Dot(v, txu) * ootu
	theta = math.Atan2(sth, cth)

	var torque float64
	for _, term := range bt.Terms {
		arg := float64(term.Periodicity)*theta - term.Phase
		energy += term.Amplitude * (1 + math.Cos(arg))
		torque += float64(term.Periodicity) * term.Amplitude * math.Sin(arg)
	}

	ry := spatial.Sub(posY, posR)
	xs := spatial.Sub(posS, posX)
	dedt := spatial.Scale(torque/tt, spatial.Cross(t, v))
	dedu := spatial.Scale(-torque/uu, spatial.Cross(u, v))

	forceR = spatial.Cross(dedt, v)
	forceS = spatial.Cross(dedu, v)
	if oov == 0 {
		warnOnce(&colinearTorsionWarnings, "degenerate torsion axis atoms coincide (x == y)")
		forceX = spatial.Scale(-1, forceR)
		forceY = spatial.Scale(-1, forceS)
		return theta, energy, forceR, forceX, forceY, forceS
	}
	forceX = spatial.Scale(oov, spatial.Add(spatial.Cross(ry, dedt), spatial.Cross(dedu, s)))
	forceY = spatial.Scale(oov, spatial.Add(spatial.Cross(dedt, r), spatial.Cross(xs, dedu)))
	return theta, energy, forceR, forceX, forceY, forceS
}

// LennardJones evaluates the 12-6 potential given the mixed (dmin, eps) and
// the reciprocal squared separation. The returned forceBase still needs a
// factor of 1/d^2 applied (by the caller, combined with the Coulomb term's
// forceBase) before scaling the separation vector r, per spec.md §4.8.
func LennardJones(dmin, eps, ood2 float64) (energy, forceBase float64) {
	ddij2 := dmin * dmin * ood2
	ddij6 := ddij2 * ddij2 * ddij2
	ddij12 := ddij6 * ddij6
	energy = eps * (ddij12 - 2*ddij6)
	forceBase = 12 * eps * (ddij12 - ddij6)
	return energy, forceBase
}

// Coulomb evaluates the electrostatic potential given the product of
// scaled partial charges (already multiplied by the Coulomb constant) and
// the reciprocal separation. forceBase equals energy exactly, matching the
// original source's observation that the two coincide before the missing
// 1/d^2 factor is applied, per spec.md §4.8.
func Coulomb(qq, ood float64) (energy, forceBase float64) {
	energy = qq * ood
	return energy, energy
}
