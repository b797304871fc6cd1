// Package cluster implements the ClusterTree component of spec.md §2/§4.4:
// hierarchical rigid groupings of atoms and child clusters, nested
// placements, and attachment to a body. Grounded on the original DuMM
// source's Cluster/Body/AtomPlacement/ClusterPlacement classes, expressed
// in gochem's id-indexed, append-only-array idiom (chem.go's
// Topology.Atoms []*Atom generalized to []*Cluster/[]*Body).
package cluster

import (
	"sort"

	"github.com/fcanderson/simbody/errs"
	"github.com/fcanderson/simbody/spatial"
	"gonum.org/v1/gonum/mat"
)

// AtomStation pairs an atom id with its station (position) in some frame.
type AtomStation struct {
	AtomID  int
	Station spatial.Vec3
}

// Cluster is a named rigid grouping of atoms and/or child clusters, per
// spec.md §3.
type Cluster struct {
	ID   int
	Name string

	directAtoms    map[int]spatial.Vec3      // atomId -> station in this cluster's frame
	directClusters map[int]spatial.Transform // childClusterId -> X_thisChild
	allAtoms       map[int]spatial.Vec3      // every descendant atom -> station in this cluster's frame
	parents        map[int]bool              // back-references: parent cluster ids

	bodyID     int // -1 until attached
	placementB spatial.Transform

	topologicalCacheValid bool
}

// IsTopLevel reports whether the cluster has no parents, the precondition
// spec.md §4.4 requires of both placeAtomInCluster's and
// placeClusterInCluster's target cluster.
func (c *Cluster) IsTopLevel() bool { return len(c.parents) == 0 }

// IsAttachedToBody reports whether the cluster has been attached.
func (c *Cluster) IsAttachedToBody() bool { return c.bodyID >= 0 }

// BodyID returns the attached body id, or -1 if unattached.
func (c *Cluster) BodyID() int { return c.bodyID }

// ContainsAtom reports whether atomId appears anywhere in this cluster's
// subtree.
func (c *Cluster) ContainsAtom(atomID int) bool {
	_, ok := c.allAtoms[atomID]
	return ok
}

// AllAtomPlacements returns every descendant atom's station in this
// cluster's frame, sorted by atom id — the flattened view spec.md §4.5
// step 4 consumes when building a body's atom array.
func (c *Cluster) AllAtomPlacements() []AtomStation {
	out := make([]AtomStation, 0, len(c.allAtoms))
	for id, st := range c.allAtoms {
		out = append(out, AtomStation{AtomID: id, Station: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AtomID < out[j].AtomID })
	return out
}

// MarkTopologicalCacheValid marks the cluster's cache valid, per spec.md
// §4.5 step 3. The composite-property hooks it would normally drive
// (aggregate mass properties, etc.) are currently no-ops — see
// MassProperties below.
func (c *Cluster) MarkTopologicalCacheValid() { c.topologicalCacheValid = true }

// TopologicalCacheValid reports whether step 3 has run for this cluster
// since the last invalidation.
func (c *Cluster) TopologicalCacheValid() bool { return c.topologicalCacheValid }

// MassProperties is an explicit stub (spec.md §9's open question): the
// source's calcMassProperties is unimplemented and this module leaves it
// that way, returning unit mass at the origin regardless of tr.
//
// TODO: compute real composite mass properties from per-atom masses and
// stations once the host engine needs them; not required by this spec.
func (c *Cluster) MassProperties(tr spatial.Transform) (mass float64, centerOfMass spatial.Vec3) {
	return 1, spatial.Zero
}

// Tree owns every Cluster and Body by dense id, mirroring the append-only
// array ownership spec.md §3 describes for Atoms/Bonds/Clusters/Bodies.
type Tree struct {
	clusters      map[int]*Cluster
	bodies        map[int]*Body
	nextClusterID int
	nextBodyID    int
	atomBodies    map[int]int // atomId -> bodyId, tracked as placements/attachments occur
}

// New returns an empty cluster tree.
func New() *Tree {
	return &Tree{clusters: make(map[int]*Cluster), bodies: make(map[int]*Body)}
}

// CreateCluster creates and returns a new, empty top-level cluster.
func (t *Tree) CreateCluster(name string) *Cluster {
	c := &Cluster{
		ID:             t.nextClusterID,
		Name:           name,
		directAtoms:    make(map[int]spatial.Vec3),
		directClusters: make(map[int]spatial.Transform),
		allAtoms:       make(map[int]spatial.Vec3),
		parents:        make(map[int]bool),
		bodyID:         -1,
	}
	t.clusters[c.ID] = c
	t.nextClusterID++
	return c
}

// ClusterIDs returns every defined cluster's id, ascending.
func (t *Tree) ClusterIDs() []int {
	ids := make([]int, 0, len(t.clusters))
	for id := range t.clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Cluster looks up a cluster by id.
func (t *Tree) Cluster(id int) (*Cluster, error) {
	c, ok := t.clusters[id]
	if !ok {
		return nil, errs.New(errs.InvalidArgument, "cluster id %d is undefined", id)
	}
	return c, nil
}

// Body is a rigid body of the host multibody engine, represented by its
// top-level cluster (spec.md §3).
type Body struct {
	ID        int
	ClusterID int
	AllAtoms  []AtomStation // flattened, sorted by atom id; populated by FlattenBody
}

// Body looks up (or, per spec.md §4.4, lazily creates) the body with the
// given id, along with the internal top-level cluster representing it.
func (t *Tree) Body(id int) *Body {
	if b, ok := t.bodies[id]; ok {
		return b
	}
	c := t.CreateCluster(bodyClusterName(id))
	b := &Body{ID: id, ClusterID: c.ID}
	t.bodies[id] = b
	if id > t.nextBodyID {
		t.nextBodyID = id
	}
	return b
}

// BodyIDs returns every defined body's id, ascending.
func (t *Tree) BodyIDs() []int {
	ids := make([]int, 0, len(t.bodies))
	for id := range t.bodies {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// FlattenBody rebuilds body bodyID's AllAtoms from its top-level cluster's
// AllAtomPlacements, per spec.md §4.5 step 4.
func (t *Tree) FlattenBody(bodyID int) error {
	b, ok := t.bodies[bodyID]
	if !ok {
		return errs.New(errs.InvalidArgument, "body id %d is undefined", bodyID)
	}
	c, err := t.Cluster(b.ClusterID)
	if err != nil {
		return err
	}
	b.AllAtoms = c.AllAtomPlacements()
	return nil
}

func bodyClusterName(bodyID int) string {
	return "Body " + itoa(bodyID)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// PlaceAtomInCluster places atom at the given station in clusterID's own
// frame. Preconditions (spec.md §4.4): clusterID is top-level, the atom is
// not already on a body anywhere in the tree, and the atom is not already
// present anywhere in this cluster's tree.
func (t *Tree) PlaceAtomInCluster(atomID int, clusterID int, station spatial.Vec3) error {
	c, err := t.Cluster(clusterID)
	if err != nil {
		return err
	}
	if !c.IsTopLevel() {
		return errs.New(errs.InvalidTopology, "cluster %d is not top-level: cannot place atom %d directly", clusterID, atomID)
	}
	if t.atomAttachedToAnyBody(atomID) {
		return errs.New(errs.InvalidTopology, "atom %d is already attached to a body", atomID)
	}
	if c.ContainsAtom(atomID) {
		return errs.New(errs.InvalidTopology, "atom %d is already present in cluster %d", atomID, clusterID)
	}
	c.directAtoms[atomID] = station
	c.allAtoms[atomID] = station
	if c.IsAttachedToBody() {
		worldStation := c.placementB.ApplyToPoint(station)
		t.attachAtomToBody(c.bodyID, atomID, worldStation)
	}
	return nil
}

// PlaceClusterInCluster places child inside parent at transform X_PC
// (child's frame expressed in parent's frame). Preconditions (spec.md
// §4.4): parent is top-level, child is not attached to a body, child is
// not already anywhere in parent's subtree, and no atom of child's
// allAtomPlacements may already appear in parent's allAtomPlacements.
func (t *Tree) PlaceClusterInCluster(childID, parentID int, xPC spatial.Transform) error {
	child, err := t.Cluster(childID)
	if err != nil {
		return err
	}
	parent, err := t.Cluster(parentID)
	if err != nil {
		return err
	}
	if !parent.IsTopLevel() {
		return errs.New(errs.InvalidTopology, "cluster %d is not top-level: cannot place cluster %d inside it", parentID, childID)
	}
	if child.IsAttachedToBody() {
		return errs.New(errs.InvalidTopology, "cluster %d is already attached to a body", childID)
	}
	if t.clusterInSubtree(parent, childID) {
		return errs.New(errs.InvalidTopology, "cluster %d would form a cycle: already present in cluster %d's subtree", childID, parentID)
	}
	if err := mergeAtomsInto(parent, child.allAtoms, xPC, childID, parentID, "cluster"); err != nil {
		return err
	}
	parent.directClusters[childID] = xPC
	child.parents[parentID] = true
	if parent.IsAttachedToBody() {
		t.attachClusterRecursive(child, parent.bodyID, composeTransform(parent.placementB, xPC))
	}
	return nil
}

// mergeAtomsInto checks that none of src's atoms already appear in dst's
// allAtoms, then writes each one into dst at transform X_dstSrc. This is the
// containment/duplicate-atom-checking machinery placeClusterInCluster and
// attachToBody both need when folding a subtree's flattened atoms into a new
// parent cluster (spec.md §3's "an atom occurs at most once in
// allAtomPlacements of any cluster" invariant).
func mergeAtomsInto(dst *Cluster, src map[int]spatial.Vec3, xDstSrc spatial.Transform, srcID, dstID int, dstKind string) error {
	for atomID := range src {
		if dst.ContainsAtom(atomID) {
			return errs.New(errs.InvalidTopology, "atom %d is present in both cluster %d and %s %d", atomID, srcID, dstKind, dstID)
		}
	}
	for atomID, station := range src {
		dst.allAtoms[atomID] = xDstSrc.ApplyToPoint(station)
	}
	return nil
}

// clusterInSubtree reports whether id appears anywhere in cluster's
// subtree (including cluster itself), by walking directClusters.
func (t *Tree) clusterInSubtree(cl *Cluster, id int) bool {
	if cl.ID == id {
		return true
	}
	for childID := range cl.directClusters {
		child, err := t.Cluster(childID)
		if err != nil {
			continue
		}
		if t.clusterInSubtree(child, id) {
			return true
		}
	}
	return false
}

// AttachToBody attaches cluster c to body bnum at transform X_BR
// (cluster's frame expressed in the body's frame). Requires c not already
// attached (spec.md §4.4). Internally this folds c's already-flattened
// allAtoms into the allAtoms of the body's own internal representing
// cluster (lazily created by Body), the same containment/duplicate-atom
// check placeClusterInCluster performs — mirroring the original source's
// attachClusterToBody, which is literally bodyCluster.placeCluster(clusterId,
// tr, *this).
func (t *Tree) AttachToBody(clusterID int, bodyID int, xBR spatial.Transform) error {
	c, err := t.Cluster(clusterID)
	if err != nil {
		return err
	}
	if c.IsAttachedToBody() {
		return errs.New(errs.InvalidTopology, "cluster %d is already attached to body %d", clusterID, c.bodyID)
	}
	body := t.Body(bodyID)
	bodyCluster, err := t.Cluster(body.ClusterID)
	if err != nil {
		return err
	}
	if err := mergeAtomsInto(bodyCluster, c.allAtoms, xBR, clusterID, body.ID, "body"); err != nil {
		return err
	}
	c.bodyID = body.ID
	c.placementB = xBR
	for atomID, station := range c.directAtoms {
		t.attachAtomToBody(body.ID, atomID, xBR.ApplyToPoint(station))
	}
	for childID, xCChild := range c.directClusters {
		child, err := t.Cluster(childID)
		if err != nil {
			continue
		}
		t.attachClusterRecursive(child, body.ID, composeTransform(xBR, xCChild))
	}
	return nil
}

// attachClusterRecursive stamps bodyId/placementB on cl (expressed in the
// body's frame as X_BCl) and recurses into its direct atoms and children,
// mirroring Cluster::attachToBody in the original source.
func (t *Tree) attachClusterRecursive(cl *Cluster, bodyID int, xBCl spatial.Transform) {
	cl.bodyID = bodyID
	cl.placementB = xBCl
	for atomID, station := range cl.directAtoms {
		t.attachAtomToBody(bodyID, atomID, xBCl.ApplyToPoint(station))
	}
	for childID, xClChild := range cl.directClusters {
		child, err := t.Cluster(childID)
		if err != nil {
			continue
		}
		t.attachClusterRecursive(child, bodyID, composeTransform(xBCl, xClChild))
	}
}

// composeTransform returns X_AC = X_AB * X_BC, the same result as
// X_AB.Compose(X_BC), but multiplies the rotation through a gonum/mat
// Dense so the definition-time placement composition spec.md §4.4
// describes (cluster nesting, body attachment) exercises the same dense
// linear-algebra package gochem itself reaches for elsewhere (solvation.go,
// cg.go). This path runs only while the tree is being built, never inside
// the force kernel's hot loop, so the extra allocation is immaterial.
func composeTransform(xAB, xBC spatial.Transform) spatial.Transform {
	a := rowMajor(xAB.R)
	b := rowMajor(xBC.R)
	var product mat.Dense
	product.Mul(a, b)
	return spatial.Transform{
		R: matToMat3(&product),
		P: xAB.ApplyToPoint(xBC.P),
	}
}

func rowMajor(m spatial.Mat3) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m.Row[0].X, m.Row[0].Y, m.Row[0].Z,
		m.Row[1].X, m.Row[1].Y, m.Row[1].Z,
		m.Row[2].X, m.Row[2].Y, m.Row[2].Z,
	})
}

func matToMat3(d *mat.Dense) spatial.Mat3 {
	return spatial.Mat3{Row: [3]spatial.Vec3{
		{X: d.At(0, 0), Y: d.At(0, 1), Z: d.At(0, 2)},
		{X: d.At(1, 0), Y: d.At(1, 1), Z: d.At(1, 2)},
		{X: d.At(2, 0), Y: d.At(2, 1), Z: d.At(2, 2)},
	}}
}

// atomBodies tracks, purely within the cluster package, which body (if
// any) each atom has been attached to — used only to enforce the
// "atom not already on a body" precondition before the topology realizer
// has run. The topo package re-derives this same fact independently once
// a full realization happens (spec.md §4.5 step 5). attachAtomToBody also
// records the atom's body-frame station in the body's representing
// cluster, so FlattenBody sees atoms placed after their cluster was
// attached.
func (t *Tree) attachAtomToBody(bodyID, atomID int, worldStation spatial.Vec3) {
	if t.atomBodies == nil {
		t.atomBodies = make(map[int]int)
	}
	t.atomBodies[atomID] = bodyID
	if b, ok := t.bodies[bodyID]; ok {
		if bc, ok := t.clusters[b.ClusterID]; ok {
			bc.allAtoms[atomID] = worldStation
		}
	}
}

func (t *Tree) atomAttachedToAnyBody(atomID int) bool {
	bodyID, ok := t.atomBodies[atomID]
	return ok && bodyID >= 0
}
