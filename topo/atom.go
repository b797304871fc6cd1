// Package topo implements the Topology realizer of spec.md §4.5: it
// consumes the catalog, molecule graph and cluster tree and produces, in
// one idempotent pass, every per-atom derived cache the force kernel
// needs — shortest-path bonded neighbour chains, their cross-body subsets,
// and the resolved bonded parameters. Grounded on gochem's chem.go
// Topology (a write-once-then-derive lifecycle over Atoms/Bonds/Residues)
// and the original DuMM source's realizeConstruction.
package topo

import (
	"github.com/fcanderson/simbody/catalog"
	"github.com/fcanderson/simbody/spatial"
)

// Atom is the topology realizer's per-atom record: identity plus every
// derived cache of spec.md §3's Atom entry.
type Atom struct {
	ID              int
	ChargedTypeID   int
	ClassID         int
	BodyID          int // -1 until realized
	StationB        spatial.Vec3

	Bond12 []int
	Bond13 [][2]int
	Bond14 [][3]int
	Bond15 [][4]int

	XBond12 []int
	XBond13 [][2]int
	XBond14 [][3]int
	XBond15 [][4]int

	Stretch []*catalog.BondStretch
	Bend    []*catalog.BondBend
	Torsion []*catalog.BondTorsion
}

func newAtom(id, chargedTypeID, classID int) *Atom {
	return &Atom{ID: id, ChargedTypeID: chargedTypeID, ClassID: classID, BodyID: -1}
}
