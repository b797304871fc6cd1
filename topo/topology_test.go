package topo

import (
	"testing"

	"github.com/fcanderson/simbody/catalog"
	"github.com/fcanderson/simbody/cluster"
	"github.com/fcanderson/simbody/molgraph"
	"github.com/fcanderson/simbody/spatial"
)

func newButaneLikeFixture(t *testing.T) (*Topology, []int) {
	t.Helper()
	cat := catalog.New()
	if err := cat.DefineAtomClass(0, "C", 6, 4, 1.8, 0.1); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	if err := cat.DefineChargedAtomType(0, "C0", 0, 0); err != nil {
		t.Fatalf("DefineChargedAtomType: %v", err)
	}
	if err := cat.DefineBondStretch(0, 0, 300, 1.5); err != nil {
		t.Fatalf("DefineBondStretch: %v", err)
	}
	if err := cat.DefineBondBend(0, 0, 0, 50, 109.5); err != nil {
		t.Fatalf("DefineBondBend: %v", err)
	}
	if err := cat.DefineBondTorsion(0, 0, 0, 0, []catalog.TorsionTerm{{Periodicity: 3, Amplitude: 1, Phase: 0}}); err != nil {
		t.Fatalf("DefineBondTorsion: %v", err)
	}

	g := molgraph.New()
	tree := cluster.New()
	tp := New(cat, g, tree)

	for i := 0; i < 4; i++ {
		if err := tp.DefineAtom(i, 0); err != nil {
			t.Fatalf("DefineAtom %d: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := g.AddBond(i, i+1); err != nil {
			t.Fatalf("AddBond: %v", err)
		}
	}

	for i := 0; i < 4; i++ {
		c := tree.CreateCluster("atom")
		if err := tree.PlaceAtomInCluster(i, c.ID, spatial.Zero); err != nil {
			t.Fatalf("PlaceAtomInCluster %d: %v", i, err)
		}
		if err := tree.AttachToBody(c.ID, i, spatial.IdentityTransform()); err != nil {
			t.Fatalf("AttachToBody %d: %v", i, err)
		}
	}
	return tp, []int{0, 1, 2, 3}
}

func TestRealizeAssignsEveryAtomToABody(t *testing.T) {
	tp, ids := newButaneLikeFixture(t)
	if err := tp.Realize(); err != nil {
		t.Fatalf("Realize: %v", err)
	}
	for _, id := range ids {
		a, err := tp.Atom(id)
		if err != nil {
			t.Fatalf("Atom(%d): %v", id, err)
		}
		if a.BodyID < 0 {
			t.Errorf("atom %d not assigned to any body", id)
		}
	}
}

func TestRealizeIsIdempotent(t *testing.T) {
	tp, _ := newButaneLikeFixture(t)
	if err := tp.Realize(); err != nil {
		t.Fatalf("first Realize: %v", err)
	}
	a0, _ := tp.Atom(0)
	firstBody := a0.BodyID
	if err := tp.Realize(); err != nil {
		t.Fatalf("second Realize: %v", err)
	}
	if a0.BodyID != firstBody {
		t.Errorf("re-realization changed atom 0's body: %d -> %d", firstBody, a0.BodyID)
	}
}

func TestShortestPathExclusivity(t *testing.T) {
	tp, _ := newButaneLikeFixture(t)
	if err := tp.Realize(); err != nil {
		t.Fatalf("Realize: %v", err)
	}
	a0, _ := tp.Atom(0)
	// atom 3 is reachable from 0 via 1-2-3 (a 1-4 path); it must not also
	// appear in bond12 or bond13.
	for _, n := range a0.Bond12 {
		if n == 3 {
			t.Errorf("atom 3 should not be a 1-2 neighbour of atom 0")
		}
	}
	for _, p := range a0.Bond13 {
		if p[1] == 3 {
			t.Errorf("atom 3 should not be a 1-3 neighbour of atom 0")
		}
	}
	found := false
	for _, tr := range a0.Bond14 {
		if tr[2] == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("atom 3 should be a 1-4 neighbour of atom 0")
	}
}

func TestCrossBodyBondedParametersResolved(t *testing.T) {
	tp, _ := newButaneLikeFixture(t)
	if err := tp.Realize(); err != nil {
		t.Fatalf("Realize: %v", err)
	}
	a0, _ := tp.Atom(0)
	if len(a0.XBond12) != 1 || len(a0.Stretch) != 1 {
		t.Fatalf("expected exactly one cross-body 1-2 neighbour with a resolved stretch term, got %d/%d", len(a0.XBond12), len(a0.Stretch))
	}
	if len(a0.XBond13) != 1 || len(a0.Bend) != 1 {
		t.Fatalf("expected exactly one cross-body 1-3 neighbour with a resolved bend term, got %d/%d", len(a0.XBond13), len(a0.Bend))
	}
	if len(a0.XBond14) != 1 || len(a0.Torsion) != 1 {
		t.Fatalf("expected exactly one cross-body 1-4 neighbour with a resolved torsion term, got %d/%d", len(a0.XBond14), len(a0.Torsion))
	}
}

func TestMissingParameterIsFatal(t *testing.T) {
	cat := catalog.New()
	if err := cat.DefineAtomClass(0, "X", 1, 1, 1, 0.1); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	if err := cat.DefineChargedAtomType(0, "X0", 0, 0); err != nil {
		t.Fatalf("DefineChargedAtomType: %v", err)
	}
	g := molgraph.New()
	tree := cluster.New()
	tp := New(cat, g, tree)
	for i := 0; i < 2; i++ {
		if err := tp.DefineAtom(i, 0); err != nil {
			t.Fatalf("DefineAtom: %v", err)
		}
		c := tree.CreateCluster("a")
		if err := tree.PlaceAtomInCluster(i, c.ID, spatial.Zero); err != nil {
			t.Fatalf("PlaceAtomInCluster: %v", err)
		}
		if err := tree.AttachToBody(c.ID, i, spatial.IdentityTransform()); err != nil {
			t.Fatalf("AttachToBody: %v", err)
		}
	}
	if _, err := g.AddBond(0, 1); err != nil {
		t.Fatalf("AddBond: %v", err)
	}
	if err := tp.Realize(); err == nil {
		t.Errorf("expected Realize to fail: no BondStretch defined for class pair (0,0)")
	}
}
