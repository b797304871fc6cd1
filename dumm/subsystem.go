// Package dumm is the public facade over catalog, molgraph, cluster, topo
// and force: the single entry point a host multibody engine uses to build
// a force-field model and evaluate it, per spec.md §6. Grounded on
// gochem's own root chem package, which plays exactly this role over its
// sibling packages v3/chemgraph/grotop — callers import chem, not those
// packages directly.
package dumm

import (
	"github.com/fcanderson/simbody/catalog"
	"github.com/fcanderson/simbody/cluster"
	"github.com/fcanderson/simbody/errs"
	"github.com/fcanderson/simbody/force"
	"github.com/fcanderson/simbody/mixing"
	"github.com/fcanderson/simbody/molgraph"
	"github.com/fcanderson/simbody/spatial"
	"github.com/fcanderson/simbody/topo"
)

// Error and ErrKind re-export the shared taxonomy under this package's own
// names, so a caller that imports only dumm never needs to import errs
// directly. Grounded on gochem's interfaces.go Error interface and the
// v3.Error/CError{message, deco, critical} shape.
type Error = errs.E
type ErrKind = errs.Kind

const (
	ErrInvalidArgument  = errs.InvalidArgument
	ErrAlreadyDefined   = errs.AlreadyDefined
	ErrInvalidTopology  = errs.InvalidTopology
	ErrMissingParameter = errs.MissingParameter
	ErrInternal         = errs.Internal
)

// IsErr reports whether err carries the given ErrKind.
func IsErr(err error, kind ErrKind) bool { return errs.Is(err, kind) }

// MixingRule re-exports mixing.Rule so callers configuring the vdW
// combining rule don't need to import mixing directly.
type MixingRule = mixing.Rule

const (
	WaldmanHagler    = mixing.WaldmanHagler
	LorentzBerthelot = mixing.LorentzBerthelot
	Jorgensen        = mixing.Jorgensen
	HalgrenHHG       = mixing.HalgrenHHG
	Kong             = mixing.Kong
)

// TorsionTerm re-exports catalog.TorsionTerm.
type TorsionTerm = catalog.TorsionTerm

// Subsystem is the top-level force-field model: every definition-phase
// table (catalog), the bond graph (molgraph), the rigid cluster tree
// (cluster), and the realized topology/force kernel built over them
// (topo, force). It mirrors the original source's
// DuMMForceFieldSubsystemRep, minus the Simbody-specific subsystem
// plumbing spec.md's Non-goals exclude.
type Subsystem struct {
	cat   *catalog.Catalog
	graph *molgraph.MoleculeGraph
	tree  *cluster.Tree
	topo  *topo.Topology
	kern  *force.Kernel
}

// New returns an empty Subsystem with the default (WaldmanHagler) mixing
// rule and default scale factors (spec.md §3/§9).
func New() *Subsystem {
	cat := catalog.New()
	graph := molgraph.New()
	tree := cluster.New()
	tp := topo.New(cat, graph, tree)
	return &Subsystem{
		cat:   cat,
		graph: graph,
		tree:  tree,
		topo:  tp,
		kern:  force.New(cat, tp),
	}
}

// DefineAtomClass defines a new atom class. r is in Å, epsilonKcal in
// kcal/mol.
func (s *Subsystem) DefineAtomClass(id int, name string, elementNumber, expectedValence int, r, epsilonKcal float64) error {
	err := s.cat.DefineAtomClass(id, name, elementNumber, expectedValence, r, epsilonKcal)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// DefineChargedAtomType defines a new charged atom type over an existing
// atom class.
func (s *Subsystem) DefineChargedAtomType(id int, name string, atomClassID int, chargeE float64) error {
	err := s.cat.DefineChargedAtomType(id, name, atomClassID, chargeE)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// DefineBondStretch defines the harmonic stretch parameters for an
// unordered atom-class pair. kKcal is in kcal/mol/Å², d0 in Å.
func (s *Subsystem) DefineBondStretch(class1, class2 int, kKcal, d0 float64) error {
	err := s.cat.DefineBondStretch(class1, class2, kKcal, d0)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// DefineBondBend defines the harmonic bend parameters for an atom-class
// triple (class2 is the vertex). kKcal is in kcal/mol/rad², thetaDeg in
// [0,180].
func (s *Subsystem) DefineBondBend(class1, class2, class3 int, kKcal, thetaDeg float64) error {
	err := s.cat.DefineBondBend(class1, class2, class3, kKcal, thetaDeg)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// DefineBondTorsion defines 1-3 Fourier terms for an atom-class quad.
func (s *Subsystem) DefineBondTorsion(class1, class2, class3, class4 int, terms []TorsionTerm) error {
	err := s.cat.DefineBondTorsion(class1, class2, class3, class4, terms)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// SetScaleFactor sets the 1-2/1-3/1-4/1-5 (idx 0..3) vdW and Coulomb
// scale factors, each in [0,1].
func (s *Subsystem) SetScaleFactor(idx int, vdw, coulomb float64) error {
	err := s.cat.SetScaleFactor(idx, vdw, coulomb)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// SetMixingRule changes the vdW combining rule.
func (s *Subsystem) SetMixingRule(rule MixingRule) {
	s.topo.SetMixingRule(rule)
}

// DefineAtom defines a new atom with the given charged atom type.
func (s *Subsystem) DefineAtom(id, chargedTypeID int) error {
	return s.topo.DefineAtom(id, chargedTypeID)
}

// AddBond adds an undirected bond between two defined atoms, returning the
// existing bond's id if the pair is already bonded (spec.md §4.3).
func (s *Subsystem) AddBond(atom1, atom2 int) (int, error) {
	id, err := s.graph.AddBond(atom1, atom2)
	if err == nil {
		s.topo.Invalidate()
	}
	return id, err
}

// CreateCluster creates and returns a new, empty top-level cluster id.
func (s *Subsystem) CreateCluster(name string) int {
	c := s.tree.CreateCluster(name)
	s.topo.Invalidate()
	return c.ID
}

// PlaceAtomInCluster places atom at the given station in a top-level
// cluster's own frame.
func (s *Subsystem) PlaceAtomInCluster(atomID, clusterID int, station spatial.Vec3) error {
	err := s.tree.PlaceAtomInCluster(atomID, clusterID, station)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// PlaceClusterInCluster nests childID inside parentID at transform xPC
// (child's frame expressed in the parent's frame).
func (s *Subsystem) PlaceClusterInCluster(childID, parentID int, xPC spatial.Transform) error {
	err := s.tree.PlaceClusterInCluster(childID, parentID, xPC)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// AttachToBody attaches clusterID to bodyID at transform xBR (cluster's
// frame expressed in the body's frame).
func (s *Subsystem) AttachToBody(clusterID, bodyID int, xBR spatial.Transform) error {
	err := s.tree.AttachToBody(clusterID, bodyID, xBR)
	if err == nil {
		s.topo.Invalidate()
	}
	return err
}

// Realize performs the one-shot topology realization of spec.md §4.5. It
// is idempotent: a call when already valid is a no-op, and any
// topology-mutating call above invalidates it again.
func (s *Subsystem) Realize() error {
	return s.topo.Realize()
}

// Realized reports whether Realize has run since the last mutation.
func (s *Subsystem) Realized() bool { return s.topo.Valid() }

// CalcForces evaluates every bonded and non-bonded term over frames,
// adding potential energy and per-body spatial forces into acc. The
// subsystem must already be realized.
func (s *Subsystem) CalcForces(frames force.BodyFrames, acc force.Accumulators) error {
	return s.kern.Evaluate(frames, acc)
}

// ChargeProperties reports net charge, center of charge and dipole moment
// over the current configuration in frames (spec.md §9 supplement; see
// DESIGN.md). The subsystem must already be realized.
func (s *Subsystem) ChargeProperties(frames topo.BodyFrames) (topo.ChargeProperties, error) {
	return s.topo.ChargeProperties(frames)
}
