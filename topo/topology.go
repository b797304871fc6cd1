package topo

import (
	"sort"

	"github.com/fcanderson/simbody/catalog"
	"github.com/fcanderson/simbody/cluster"
	"github.com/fcanderson/simbody/errs"
	"github.com/fcanderson/simbody/mixing"
	"github.com/fcanderson/simbody/molgraph"
)

// Topology ties the catalog, molecule graph and cluster tree together and
// holds the one-shot realization state of spec.md §4.5.
type Topology struct {
	cat   *catalog.Catalog
	graph *molgraph.MoleculeGraph
	tree  *cluster.Tree
	rule  mixing.Rule

	atoms map[int]*Atom
	order []int // atom ids in definition order, for deterministic iteration

	valid      bool
	pairwise   *catalog.PairwiseVdW
	bodyAtoms  map[int][]int // bodyId -> atom ids, sorted ascending
}

// New returns a topology bound to the given catalog, graph and cluster
// tree, using WaldmanHagler as the initial mixing rule (spec.md §4.2's
// default).
func New(cat *catalog.Catalog, graph *molgraph.MoleculeGraph, tree *cluster.Tree) *Topology {
	return &Topology{
		cat:   cat,
		graph: graph,
		tree:  tree,
		rule:  mixing.WaldmanHagler,
		atoms: make(map[int]*Atom),
	}
}

// SetMixingRule changes the vdW mixing rule, invalidating the derived
// cache (spec.md §9: "Changing the option invalidates the derived vdW
// table").
func (t *Topology) SetMixingRule(rule mixing.Rule) {
	t.rule = rule
	t.valid = false
}

// Invalidate clears the realized-cache flag. Every topology-mutating call
// (DefineAtom, and by extension any catalog/graph/cluster mutation made
// through this Topology's owner) must call this.
func (t *Topology) Invalidate() { t.valid = false }

// Valid reports whether the topology has been realized and not since
// invalidated.
func (t *Topology) Valid() bool { return t.valid }

// DefineAtom defines a new atom with the given charged atom type. Invalidates
// the cache.
func (t *Topology) DefineAtom(id, chargedTypeID int) error {
	if id < 0 {
		return errs.New(errs.InvalidArgument, "atom id %d must be nonnegative", id)
	}
	if _, exists := t.atoms[id]; exists {
		return errs.New(errs.AlreadyDefined, "atom id %d already defined", id)
	}
	ct, err := t.cat.ChargedAtomType(chargedTypeID)
	if err != nil {
		return errs.New(errs.InvalidArgument, "atom %d: %v", id, err)
	}
	t.atoms[id] = newAtom(id, chargedTypeID, ct.AtomClassID)
	t.order = append(t.order, id)
	t.graph.EnsureAtom(id)
	t.valid = false
	return nil
}

// Atom looks up a defined atom by id.
func (t *Topology) Atom(id int) (*Atom, error) {
	a, ok := t.atoms[id]
	if !ok {
		return nil, errs.New(errs.InvalidArgument, "atom %d is undefined", id)
	}
	return a, nil
}

// PairwiseVdW returns the realized per-class pairwise vdW table. Only
// meaningful after a successful Realize.
func (t *Topology) PairwiseVdW() *catalog.PairwiseVdW { return t.pairwise }

// Realize performs the one-shot topology realization of spec.md §4.5. It is
// idempotent: a call when already valid is a no-op.
func (t *Topology) Realize() error {
	if t.valid {
		return nil
	}

	// Step 1: invalidate all per-atom and per-class derived data.
	for _, a := range t.atoms {
		a.BodyID = -1
		a.Bond13, a.Bond14, a.Bond15 = nil, nil, nil
		a.XBond12, a.XBond13, a.XBond14, a.XBond15 = nil, nil, nil, nil
		a.Stretch, a.Bend, a.Torsion = nil, nil, nil
	}
	t.pairwise = nil

	// Step 2: per-class pairwise vdW table.
	pw, err := catalog.BuildPairwiseVdW(t.cat, t.rule)
	if err != nil {
		return err
	}
	t.pairwise = pw

	// Step 3: mark every cluster's topological cache valid.
	for _, cid := range t.tree.ClusterIDs() {
		c, err := t.tree.Cluster(cid)
		if err != nil {
			return err
		}
		c.MarkTopologicalCacheValid()
	}

	// Step 4: flatten each body's top-level cluster into its atom array.
	bodyIDs := t.tree.BodyIDs()
	for _, bid := range bodyIDs {
		if err := t.tree.FlattenBody(bid); err != nil {
			return err
		}
	}

	// Step 5: assign bodyId/station_B to every atom, each visited once.
	t.bodyAtoms = make(map[int][]int, len(bodyIDs))
	for _, bid := range bodyIDs {
		body := t.bodyByID(bid)
		ids := make([]int, 0, len(body.AllAtoms))
		for _, ap := range body.AllAtoms {
			a, ok := t.atoms[ap.AtomID]
			if !ok {
				return errs.New(errs.Internal, "body %d references undefined atom %d", bid, ap.AtomID)
			}
			if a.BodyID != -1 {
				return errs.New(errs.Internal, "atom %d assigned to more than one body (%d and %d)", a.ID, a.BodyID, bid)
			}
			a.BodyID = bid
			a.StationB = ap.Station
			ids = append(ids, a.ID)
		}
		t.bodyAtoms[bid] = ids
	}
	for _, id := range t.order {
		if t.atoms[id].BodyID < 0 {
			return errs.New(errs.InvalidTopology, "atom %d is not attached to any body", id)
		}
	}

	// Step 6: BFS shortest-path 1-3/1-4/1-5 neighbour derivation.
	for _, id := range t.order {
		t.deriveShortestPaths(t.atoms[id])
	}

	// Step 7: cross-body subsetting.
	for _, id := range t.order {
		t.deriveCrossBody(t.atoms[id])
	}

	// Step 8: resolve bonded parameter references.
	for _, id := range t.order {
		if err := t.resolveParameters(t.atoms[id]); err != nil {
			return err
		}
	}

	t.valid = true
	return nil
}

// BodyIDs returns the ids of every body the cluster tree defined at the
// last Realize, ascending, including bodies with no atoms. Only meaningful
// after a successful Realize.
func (t *Topology) BodyIDs() []int {
	ids := make([]int, 0, len(t.bodyAtoms))
	for id := range t.bodyAtoms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AtomsOnBody returns the ids of every atom assigned to bodyID, ascending.
// Only meaningful after a successful Realize.
func (t *Topology) AtomsOnBody(bodyID int) []int { return t.bodyAtoms[bodyID] }

// ScaleFactors returns the catalog's current scale-factor table.
func (t *Topology) ScaleFactors() catalog.ScaleFactors { return t.cat.ScaleFactors() }

// AtomIDUpperBound returns one past the largest defined atom id, letting a
// caller size a dense id-indexed scratch array (e.g. the force kernel's
// per-atom scale-factor vectors) without a map.
func (t *Topology) AtomIDUpperBound() int {
	max := -1
	for id := range t.atoms {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (t *Topology) bodyByID(id int) *cluster.Body {
	// Body is created lazily by Tree.Body; since FlattenBody already
	// required it to exist, this lookup cannot fail.
	return t.tree.Body(id)
}

// deriveShortestPaths implements spec.md §4.5 step 6: a visited set grown
// across three expansions guarantees "shortest path only" — an atom
// reachable at more than one hop count is recorded at its shortest hop
// count only.
func (t *Topology) deriveShortestPaths(a *Atom) {
	a.Bond12 = append([]int(nil), t.graph.Bond12(a.ID)...)
	sort.Ints(a.Bond12)

	visited := make(map[int]bool, len(a.Bond12)+1)
	visited[a.ID] = true
	for _, n := range a.Bond12 {
		visited[n] = true
	}

	a.Bond13 = nil
	for _, b := range a.Bond12 {
		for _, c := range t.graph.Bond12(b) {
			if visited[c] {
				continue
			}
			visited[c] = true
			a.Bond13 = append(a.Bond13, [2]int{b, c})
		}
	}
	sort.Slice(a.Bond13, func(i, j int) bool { return lessPair(a.Bond13[i], a.Bond13[j]) })

	a.Bond14 = nil
	for _, triple := range a.Bond13 {
		tail := triple[1]
		for _, d := range t.graph.Bond12(tail) {
			if visited[d] {
				continue
			}
			visited[d] = true
			a.Bond14 = append(a.Bond14, [3]int{triple[0], triple[1], d})
		}
	}
	sort.Slice(a.Bond14, func(i, j int) bool { return lessTriple(a.Bond14[i], a.Bond14[j]) })

	a.Bond15 = nil
	for _, quad := range a.Bond14 {
		tail := quad[2]
		for _, e := range t.graph.Bond12(tail) {
			if visited[e] {
				continue
			}
			visited[e] = true
			a.Bond15 = append(a.Bond15, [4]int{quad[0], quad[1], quad[2], e})
		}
	}
	sort.Slice(a.Bond15, func(i, j int) bool { return lessQuad(a.Bond15[i], a.Bond15[j]) })
}

// deriveCrossBody implements spec.md §4.5 step 7: retain only chains where
// not all non-self atoms lie on a's own body.
func (t *Topology) deriveCrossBody(a *Atom) {
	body := func(id int) int { return t.atoms[id].BodyID }

	a.XBond12 = nil
	for _, b := range a.Bond12 {
		if body(b) != a.BodyID {
			a.XBond12 = append(a.XBond12, b)
		}
	}
	a.XBond13 = nil
	for _, p := range a.Bond13 {
		if body(p[0]) != a.BodyID || body(p[1]) != a.BodyID {
			a.XBond13 = append(a.XBond13, p)
		}
	}
	a.XBond14 = nil
	for _, tr := range a.Bond14 {
		if body(tr[0]) != a.BodyID || body(tr[1]) != a.BodyID || body(tr[2]) != a.BodyID {
			a.XBond14 = append(a.XBond14, tr)
		}
	}
	a.XBond15 = nil
	for _, q := range a.Bond15 {
		if body(q[0]) != a.BodyID || body(q[1]) != a.BodyID || body(q[2]) != a.BodyID || body(q[3]) != a.BodyID {
			a.XBond15 = append(a.XBond15, q)
		}
	}
}

// resolveParameters implements spec.md §4.5 step 8.
func (t *Topology) resolveParameters(a *Atom) error {
	a.Stretch = make([]*catalog.BondStretch, len(a.XBond12))
	for i, b := range a.XBond12 {
		bs, err := t.cat.BondStretch(a.ClassID, t.atoms[b].ClassID)
		if err != nil {
			return err
		}
		a.Stretch[i] = bs
	}

	a.Bend = make([]*catalog.BondBend, len(a.XBond13))
	for i, p := range a.XBond13 {
		bb, err := t.cat.BondBend(a.ClassID, t.atoms[p[0]].ClassID, t.atoms[p[1]].ClassID)
		if err != nil {
			return err
		}
		a.Bend[i] = bb
	}

	a.Torsion = make([]*catalog.BondTorsion, len(a.XBond14))
	for i, tr := range a.XBond14 {
		bt, err := t.cat.BondTorsion(a.ClassID, t.atoms[tr[0]].ClassID, t.atoms[tr[1]].ClassID, t.atoms[tr[2]].ClassID)
		if err != nil {
			return err
		}
		a.Torsion[i] = bt
	}
	return nil
}

func lessPair(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func lessTriple(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func lessQuad(a, b [4]int) bool {
	for i := 0; i < 4; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
