package force

import (
	"math"

	"github.com/fcanderson/simbody/catalog"
	"github.com/fcanderson/simbody/errs"
	"github.com/fcanderson/simbody/spatial"
	"github.com/fcanderson/simbody/topo"
	"github.com/fcanderson/simbody/units"
)

// BodyFrames is the narrow interface the outer kernel reads body poses
// through (spec.md §6): the only coupling to the surrounding multibody
// engine on the hot path.
type BodyFrames interface {
	BodyConfiguration(bodyID int) spatial.Transform
}

// Accumulators is the narrow interface the outer kernel writes results
// through (spec.md §6). Both calls ADD to the existing value; they never
// overwrite.
type Accumulators interface {
	AddPotentialEnergy(delta float64)
	AddRigidBodyForce(bodyID int, f spatial.SpatialVec)
}

// Kernel evaluates bonded and non-bonded molecular-mechanics forces over a
// realized Topology, per spec.md §4.8.
type Kernel struct {
	cat  *catalog.Catalog
	topo *topo.Topology

	// vdwScale/coulombScale are the scratch scale vectors of spec.md §5,
	// dense and id-indexed like the original source's Vector temps; sized
	// once per Evaluate call and reused across the whole outer loop so no
	// allocation happens inside it.
	vdwScale     []float64
	coulombScale []float64
}

// New returns a force kernel over the given catalog and realized topology.
// The catalog must be the same one the topology was built against, since
// charge and scale-factor lookups happen here rather than being cached
// per atom.
func New(cat *catalog.Catalog, tp *topo.Topology) *Kernel {
	return &Kernel{cat: cat, topo: tp}
}

// worldPlacement returns an atom's station rotated into world orientation
// (no translation) and its world position, given the body's configuration.
func worldPlacement(xGB spatial.Transform, stationB spatial.Vec3) (stationG, posG spatial.Vec3) {
	stationG = xGB.ApplyToVector(stationB)
	posG = spatial.Add(xGB.P, stationG)
	return stationG, posG
}

// Evaluate runs the full double loop of spec.md §4.8 over every body pair,
// adding potential energy and per-body spatial forces into acc. The
// topology must already be realized; Evaluate does not itself realize it.
func (k *Kernel) Evaluate(frames BodyFrames, acc Accumulators) error {
	if !k.topo.Valid() {
		return errs.New(errs.Internal, "force kernel invoked on an unrealized topology")
	}
	pairwise := k.topo.PairwiseVdW()
	sf := k.topo.ScaleFactors()
	bodyIDs := k.topo.BodyIDs()

	n := k.topo.AtomIDUpperBound()
	if cap(k.vdwScale) < n {
		k.vdwScale = make([]float64, n)
		k.coulombScale = make([]float64, n)
	}
	k.vdwScale = k.vdwScale[:n]
	k.coulombScale = k.coulombScale[:n]
	for i := range k.vdwScale {
		k.vdwScale[i] = 1
		k.coulombScale[i] = 1
	}

	for i, b1 := range bodyIDs {
		xGB1 := frames.BodyConfiguration(b1)
		atoms1 := k.topo.AtomsOnBody(b1)

		for _, a1id := range atoms1 {
			a1, err := k.topo.Atom(a1id)
			if err != nil {
				return err
			}
			a1Station_G, a1Pos_G := worldPlacement(xGB1, a1.StationB)
			a1Type, err := k.cat.ChargedAtomType(a1.ChargedTypeID)
			if err != nil {
				return err
			}
			q1Fac := units.CoulombConstant * a1Type.PartialCharge

			if err := k.bondedPhase(frames, acc, a1, a1Station_G, a1Pos_G); err != nil {
				return err
			}

			k.scaleBondedAtoms(a1, sf)
			for _, b2 := range bodyIDs[i+1:] {
				xGB2 := frames.BodyConfiguration(b2)
				for _, a2id := range k.topo.AtomsOnBody(b2) {
					a2, err := k.topo.Atom(a2id)
					if err != nil {
						return err
					}
					a2Station_G, a2Pos_G := worldPlacement(xGB2, a2.StationB)
					a2Type, err := k.cat.ChargedAtomType(a2.ChargedTypeID)
					if err != nil {
						return err
					}

					r := spatial.Sub(a2Pos_G, a1Pos_G)
					d2 := spatial.Dot(r, r)
					ood := 1 / math.Sqrt(d2)
					ood2 := ood * ood

					qq := k.coulombScale[a2id] * q1Fac * a2Type.PartialCharge
					eCoulomb, fCoulombBase := Coulomb(qq, ood)

					pair := pairwise.Lookup(a1.ClassID, a2.ClassID)
					eVdw, fVdwBase := LennardJones(pair.Dmin, k.vdwScale[a2id]*pair.Eps, ood2)

					fj := spatial.Scale((fCoulombBase+fVdwBase)*ood2, r)

					acc.AddPotentialEnergy(eCoulomb + eVdw)
					acc.AddRigidBodyForce(b2, spatial.ForceAtStation(a2Station_G, fj))
					acc.AddRigidBodyForce(b1, spatial.ForceAtStation(a1Station_G, fj).Negate())
				}
			}
			k.unscaleBondedAtoms(a1)
		}
	}
	return nil
}

// bondedPhase evaluates the stretch/bend/torsion terms whose self-facing
// endpoint is a1, applying the id-ordering tie-break of spec.md §4.8 so
// each chain is processed exactly once even though it appears in the
// xbond lists of both its endpoints.
func (k *Kernel) bondedPhase(frames BodyFrames, acc Accumulators, a1 *topo.Atom, a1Station_G, a1Pos_G spatial.Vec3) error {
	for i, a2id := range a1.XBond12 {
		if a2id < a1.ID {
			continue
		}
		a2, err := k.topo.Atom(a2id)
		if err != nil {
			return err
		}
		a2Station_G, a2Pos_G := worldPlacement(frames.BodyConfiguration(a2.BodyID), a2.StationB)
		energy, forceOnB := StretchEnergyAndForce(a1.Stretch[i], a1Pos_G, a2Pos_G)
		acc.AddPotentialEnergy(energy)
		acc.AddRigidBodyForce(a2.BodyID, spatial.ForceAtStation(a2Station_G, forceOnB))
		acc.AddRigidBodyForce(a1.BodyID, spatial.ForceAtStation(a1Station_G, forceOnB).Negate())
	}

	for i, pair := range a1.XBond13 {
		a3id := pair[1]
		if a3id < a1.ID {
			continue
		}
		a2, err := k.topo.Atom(pair[0]) // vertex: spec.md §4.8, "central atom ... is the second atom in the stored chain"
		if err != nil {
			return err
		}
		a3, err := k.topo.Atom(a3id)
		if err != nil {
			return err
		}
		a2Station_G, a2Pos_G := worldPlacement(frames.BodyConfiguration(a2.BodyID), a2.StationB)
		a3Station_G, a3Pos_G := worldPlacement(frames.BodyConfiguration(a3.BodyID), a3.StationB)

		_, energy, fC, fR, fS := HarmonicAngle(a1.Bend[i], a2Pos_G, a1Pos_G, a3Pos_G)
		acc.AddPotentialEnergy(energy)
		acc.AddRigidBodyForce(a1.BodyID, spatial.ForceAtStation(a1Station_G, fR))
		acc.AddRigidBodyForce(a2.BodyID, spatial.ForceAtStation(a2Station_G, fC))
		acc.AddRigidBodyForce(a3.BodyID, spatial.ForceAtStation(a3Station_G, fS))
	}

	for i, tr := range a1.XBond14 {
		a4id := tr[2]
		if a4id < a1.ID {
			continue
		}
		a2, err := k.topo.Atom(tr[0])
		if err != nil {
			return err
		}
		a3, err := k.topo.Atom(tr[1])
		if err != nil {
			return err
		}
		a4, err := k.topo.Atom(a4id)
		if err != nil {
			return err
		}
		a2Station_G, a2Pos_G := worldPlacement(frames.BodyConfiguration(a2.BodyID), a2.StationB)
		a3Station_G, a3Pos_G := worldPlacement(frames.BodyConfiguration(a3.BodyID), a3.StationB)
		a4Station_G, a4Pos_G := worldPlacement(frames.BodyConfiguration(a4.BodyID), a4.StationB)

		_, energy, f1, f2, f3, f4 := PeriodicTorsion(a1.Torsion[i], a1Pos_G, a2Pos_G, a3Pos_G, a4Pos_G)
		acc.AddPotentialEnergy(energy)
		acc.AddRigidBodyForce(a1.BodyID, spatial.ForceAtStation(a1Station_G, f1))
		acc.AddRigidBodyForce(a2.BodyID, spatial.ForceAtStation(a2Station_G, f2))
		acc.AddRigidBodyForce(a3.BodyID, spatial.ForceAtStation(a3Station_G, f3))
		acc.AddRigidBodyForce(a4.BodyID, spatial.ForceAtStation(a4Station_G, f4))
	}
	return nil
}

// scaleBondedAtoms writes the 1-2/1-3/1-4/1-5 scale factors into the
// scratch vectors ahead of the non-bonded loop for a1, per spec.md §4.8's
// scaling window. 1-4 and 1-5 writes are skipped when both factors are
// already 1, matching the original source's short-circuit.
func (k *Kernel) scaleBondedAtoms(a1 *topo.Atom, sf catalog.ScaleFactors) {
	for _, id := range a1.XBond12 {
		k.vdwScale[id] = sf.Vdw[0]
		k.coulombScale[id] = sf.Coulomb[0]
	}
	for _, p := range a1.XBond13 {
		k.vdwScale[p[1]] = sf.Vdw[1]
		k.coulombScale[p[1]] = sf.Coulomb[1]
	}
	if sf.Vdw[2] != 1 || sf.Coulomb[2] != 1 {
		for _, tr := range a1.XBond14 {
			k.vdwScale[tr[2]] = sf.Vdw[2]
			k.coulombScale[tr[2]] = sf.Coulomb[2]
		}
	}
	if sf.Vdw[3] != 1 || sf.Coulomb[3] != 1 {
		for _, q := range a1.XBond15 {
			k.vdwScale[q[3]] = sf.Vdw[3]
			k.coulombScale[q[3]] = sf.Coulomb[3]
		}
	}
}

// unscaleBondedAtoms resets every scratch entry scaleBondedAtoms touched
// back to the identity, per spec.md §8's "scale reset" property.
func (k *Kernel) unscaleBondedAtoms(a1 *topo.Atom) {
	for _, id := range a1.XBond12 {
		k.vdwScale[id] = 1
		k.coulombScale[id] = 1
	}
	for _, p := range a1.XBond13 {
		k.vdwScale[p[1]] = 1
		k.coulombScale[p[1]] = 1
	}
	for _, tr := range a1.XBond14 {
		k.vdwScale[tr[2]] = 1
		k.coulombScale[tr[2]] = 1
	}
	for _, q := range a1.XBond15 {
		k.vdwScale[q[3]] = 1
		k.coulombScale[q[3]] = 1
	}
}
