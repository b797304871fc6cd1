// Package catalog implements the ForceFieldCatalog component of spec.md §2:
// three keyed parameter tables (bond-stretch, bond-bend, bond-torsion),
// per-AtomClass vdW radius/well-depth, per-ChargedAtomType partial charge,
// and the canonicalization rules of spec.md §4.1.
//
// Grounded on the original DuMM source's AtomClass/ChargedAtomType/
// BondStretch/BondBend/BondTorsion classes and its IntPair/IntTriple/
// IntQuad canonicalizing key types, expressed the way gochem's
// grotop/innertop.go shapes a force-field parameter table (FF, AtomType,
// Term).
package catalog

import (
	"math"
	"sort"

	"github.com/fcanderson/simbody/errs"
	"github.com/fcanderson/simbody/units"
)

// AtomClass is a chemical-environment equivalence bucket: element, expected
// valence and van der Waals radius/well-depth. Well depth is stored in
// internal energy units after conversion from kcal/mol (spec.md §3).
type AtomClass struct {
	ID             int
	Name           string
	ElementNumber  int
	ExpectedValence int
	VdwRadius      float64 // Å
	VdwWellDepth   float64 // internal energy units
}

// ChargedAtomType assigns a specific partial charge to an AtomClass.
type ChargedAtomType struct {
	ID           int
	Name         string
	AtomClassID  int
	PartialCharge float64 // elementary charge units
}

// TorsionTerm is one Fourier term of a BondTorsion.
type TorsionTerm struct {
	Periodicity int     // n in [1,6]
	Amplitude   float64 // internal energy units, >= 0
	Phase       float64 // radians, in (-pi, pi]
}

// BondStretch is a harmonic bond-stretch parameter pair.
type BondStretch struct {
	K  float64 // internal energy / Å^2
	D0 float64 // Å
}

// BondBend is a harmonic bond-bend (angle) parameter pair.
type BondBend struct {
	K      float64 // internal energy / rad^2
	Theta0 float64 // radians, in [0, pi]
}

// BondTorsion is an ordered list of Fourier terms for a dihedral.
type BondTorsion struct {
	Terms []TorsionTerm
}

// ScaleFactors holds the four (vdW, Coulomb) scale-factor pairs indexed by
// bonded distance: 0 => 1-2, 1 => 1-3, 2 => 1-4, 3 => 1-5.
type ScaleFactors struct {
	Vdw    [4]float64
	Coulomb [4]float64
}

// DefaultScaleFactors matches spec.md §3's defaults: 1-2 and 1-3 fully
// excluded, 1-4 and 1-5 fully included.
func DefaultScaleFactors() ScaleFactors {
	return ScaleFactors{
		Vdw:     [4]float64{0, 0, 1, 1},
		Coulomb: [4]float64{0, 0, 1, 1},
	}
}

// pairKey, tripleKey and quadKey are the canonical lookup keys of spec.md
// §4.1, directly grounded on the original source's IntPair/IntTriple/
// IntQuad (canonicalize()).
type pairKey [2]int
type tripleKey [3]int
type quadKey [4]int

func canonPair(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

func canonTriple(a, b, c int) tripleKey {
	if a > c {
		a, c = c, a
	}
	return tripleKey{a, b, c}
}

// canonQuad: "if first > fourth, swap first<->fourth AND second<->third" —
// equivalently reverse the sequence when not already canonical.
func canonQuad(a, b, c, d int) quadKey {
	if a > d {
		a, b, c, d = d, c, b, a
	}
	return quadKey{a, b, c, d}
}

// Catalog is the ForceFieldCatalog: all three parameter tables plus the
// class/type tables they're keyed against.
type Catalog struct {
	classes  map[int]*AtomClass
	types    map[int]*ChargedAtomType
	stretch  map[pairKey]*BondStretch
	bend     map[tripleKey]*BondBend
	torsion  map[quadKey]*BondTorsion
	scale    ScaleFactors
}

// New returns an empty catalog with the default scale factors.
func New() *Catalog {
	return &Catalog{
		classes: make(map[int]*AtomClass),
		types:   make(map[int]*ChargedAtomType),
		stretch: make(map[pairKey]*BondStretch),
		bend:    make(map[tripleKey]*BondBend),
		torsion: make(map[quadKey]*BondTorsion),
		scale:   DefaultScaleFactors(),
	}
}

// DefineAtomClass defines a new atom class. r is in Å, epsilonKcal in
// kcal/mol (converted to internal units on entry, per spec.md §3/§6).
func (c *Catalog) DefineAtomClass(id int, name string, elementNumber, expectedValence int, r, epsilonKcal float64) error {
	if id < 0 {
		return errs.New(errs.InvalidArgument, "atom class id %d must be nonnegative", id)
	}
	if r < 0 || math.IsNaN(r) {
		return errs.New(errs.InvalidArgument, "atom class %d: invalid vdW radius %v", id, r)
	}
	if epsilonKcal < 0 || math.IsNaN(epsilonKcal) {
		return errs.New(errs.InvalidArgument, "atom class %d: invalid vdW well depth %v", id, epsilonKcal)
	}
	if _, exists := c.classes[id]; exists {
		return errs.New(errs.AlreadyDefined, "atom class id %d already defined as %q", id, c.classes[id].Name)
	}
	c.classes[id] = &AtomClass{
		ID: id, Name: name, ElementNumber: elementNumber, ExpectedValence: expectedValence,
		VdwRadius: r, VdwWellDepth: units.KcalToEnergy(epsilonKcal),
	}
	return nil
}

// AtomClass looks up a defined atom class by id.
func (c *Catalog) AtomClass(id int) (*AtomClass, error) {
	cl, ok := c.classes[id]
	if !ok {
		return nil, errs.New(errs.InvalidArgument, "atom class %d is undefined", id)
	}
	return cl, nil
}

// AtomClassIDs returns the ids of every defined atom class, ascending.
func (c *Catalog) AtomClassIDs() []int {
	ids := make([]int, 0, len(c.classes))
	for id := range c.classes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// DefineChargedAtomType defines a new charged atom type over an existing
// atom class.
func (c *Catalog) DefineChargedAtomType(id int, name string, atomClassID int, chargeE float64) error {
	if id < 0 {
		return errs.New(errs.InvalidArgument, "charged atom type id %d must be nonnegative", id)
	}
	if math.IsNaN(chargeE) {
		return errs.New(errs.InvalidArgument, "charged atom type %d: invalid charge %v", id, chargeE)
	}
	if _, exists := c.types[id]; exists {
		return errs.New(errs.AlreadyDefined, "charged atom type id %d already defined", id)
	}
	if _, err := c.AtomClass(atomClassID); err != nil {
		return errs.New(errs.InvalidArgument, "charged atom type %d: %v", id, err)
	}
	c.types[id] = &ChargedAtomType{ID: id, Name: name, AtomClassID: atomClassID, PartialCharge: chargeE}
	return nil
}

// ChargedAtomType looks up a defined charged atom type by id.
func (c *Catalog) ChargedAtomType(id int) (*ChargedAtomType, error) {
	t, ok := c.types[id]
	if !ok {
		return nil, errs.New(errs.InvalidArgument, "charged atom type %d is undefined", id)
	}
	return t, nil
}

// DefineBondStretch defines the stretch parameters for an unordered class
// pair. kKcal is in kcal/mol/Å^2, d0 in Å.
func (c *Catalog) DefineBondStretch(class1, class2 int, kKcal, d0 float64) error {
	if _, err := c.AtomClass(class1); err != nil {
		return err
	}
	if _, err := c.AtomClass(class2); err != nil {
		return err
	}
	if kKcal < 0 || d0 < 0 || math.IsNaN(kKcal) || math.IsNaN(d0) {
		return errs.New(errs.InvalidArgument, "bond stretch (%d,%d): invalid parameters k=%v d0=%v", class1, class2, kKcal, d0)
	}
	key := canonPair(class1, class2)
	if _, exists := c.stretch[key]; exists {
		return errs.New(errs.AlreadyDefined, "bond stretch term already defined for class pair (%d,%d)", key[0], key[1])
	}
	c.stretch[key] = &BondStretch{K: units.KcalToEnergy(kKcal), D0: d0}
	return nil
}

// BondStretch looks up the stretch parameters for an unordered class pair.
func (c *Catalog) BondStretch(class1, class2 int) (*BondStretch, error) {
	b, ok := c.stretch[canonPair(class1, class2)]
	if !ok {
		return nil, errs.New(errs.MissingParameter, "no bond stretch term for class pair (%d,%d)", class1, class2)
	}
	return b, nil
}

// DefineBondBend defines the bend parameters for a class triple (the middle
// class is the vertex atom and is not canonicalized). thetaDeg is in [0,180].
func (c *Catalog) DefineBondBend(class1, class2, class3 int, kKcal, thetaDeg float64) error {
	for _, cl := range []int{class1, class2, class3} {
		if _, err := c.AtomClass(cl); err != nil {
			return err
		}
	}
	if kKcal < 0 || thetaDeg < 0 || thetaDeg > 180 || math.IsNaN(kKcal) || math.IsNaN(thetaDeg) {
		return errs.New(errs.InvalidArgument, "bond bend (%d,%d,%d): invalid parameters k=%v theta0=%v", class1, class2, class3, kKcal, thetaDeg)
	}
	key := canonTriple(class1, class2, class3)
	if _, exists := c.bend[key]; exists {
		return errs.New(errs.AlreadyDefined, "bond bend term already defined for class triple (%d,%d,%d)", key[0], key[1], key[2])
	}
	c.bend[key] = &BondBend{K: units.KcalToEnergy(kKcal), Theta0: units.DegToRad(thetaDeg)}
	return nil
}

// BondBend looks up the bend parameters for a class triple.
func (c *Catalog) BondBend(class1, class2, class3 int) (*BondBend, error) {
	b, ok := c.bend[canonTriple(class1, class2, class3)]
	if !ok {
		return nil, errs.New(errs.MissingParameter, "no bond bend term for class triple (%d,%d,%d)", class1, class2, class3)
	}
	return b, nil
}

// DefineBondTorsion defines 1-3 Fourier terms for a class quad. Each term's
// periodicity must be in [1,6], amplitude in kcal/mol (>= 0), phase in
// [0,180] degrees, and periodicities within one torsion must be distinct.
func (c *Catalog) DefineBondTorsion(class1, class2, class3, class4 int, terms []TorsionTerm) error {
	for _, cl := range []int{class1, class2, class3, class4} {
		if _, err := c.AtomClass(cl); err != nil {
			return err
		}
	}
	if len(terms) < 1 || len(terms) > 3 {
		return errs.New(errs.InvalidArgument, "bond torsion (%d,%d,%d,%d): must have 1-3 terms, got %d", class1, class2, class3, class4, len(terms))
	}
	seen := make(map[int]bool, len(terms))
	converted := make([]TorsionTerm, len(terms))
	for i, tm := range terms {
		if tm.Periodicity < 1 || tm.Periodicity > 6 {
			return errs.New(errs.InvalidArgument, "bond torsion (%d,%d,%d,%d): periodicity %d out of [1,6]", class1, class2, class3, class4, tm.Periodicity)
		}
		if seen[tm.Periodicity] {
			return errs.New(errs.InvalidArgument, "bond torsion (%d,%d,%d,%d): duplicated periodicity %d", class1, class2, class3, class4, tm.Periodicity)
		}
		seen[tm.Periodicity] = true
		if tm.Amplitude < 0 || math.IsNaN(tm.Amplitude) {
			return errs.New(errs.InvalidArgument, "bond torsion (%d,%d,%d,%d): invalid amplitude %v", class1, class2, class3, class4, tm.Amplitude)
		}
		if tm.Phase < 0 || tm.Phase > 180 || math.IsNaN(tm.Phase) {
			return errs.New(errs.InvalidArgument, "bond torsion (%d,%d,%d,%d): phase %v out of [0,180] degrees", class1, class2, class3, class4, tm.Phase)
		}
		converted[i] = TorsionTerm{Periodicity: tm.Periodicity, Amplitude: units.KcalToEnergy(tm.Amplitude), Phase: units.DegToRad(tm.Phase)}
	}
	key := canonQuad(class1, class2, class3, class4)
	if _, exists := c.torsion[key]; exists {
		return errs.New(errs.AlreadyDefined, "bond torsion term(s) already defined for class quad (%d,%d,%d,%d)", key[0], key[1], key[2], key[3])
	}
	c.torsion[key] = &BondTorsion{Terms: converted}
	return nil
}

// BondTorsion looks up the torsion terms for a class quad.
func (c *Catalog) BondTorsion(class1, class2, class3, class4 int) (*BondTorsion, error) {
	t, ok := c.torsion[canonQuad(class1, class2, class3, class4)]
	if !ok {
		return nil, errs.New(errs.MissingParameter, "no bond torsion term for class quad (%d,%d,%d,%d)", class1, class2, class3, class4)
	}
	return t, nil
}

// SetScaleFactor sets the 1-2/1-3/1-4/1-5 vdW and Coulomb scale factors.
// idx is 0..3 for 1-2..1-5 respectively; each value must be in [0,1].
func (c *Catalog) SetScaleFactor(idx int, vdw, coulomb float64) error {
	if idx < 0 || idx > 3 {
		return errs.New(errs.InvalidArgument, "scale factor index %d out of range [0,3]", idx)
	}
	if vdw < 0 || vdw > 1 || coulomb < 0 || coulomb > 1 {
		return errs.New(errs.InvalidArgument, "scale factor at index %d out of [0,1]: vdw=%v coulomb=%v", idx, vdw, coulomb)
	}
	c.scale.Vdw[idx] = vdw
	c.scale.Coulomb[idx] = coulomb
	return nil
}

// ScaleFactors returns the current scale-factor table.
func (c *Catalog) ScaleFactors() ScaleFactors {
	return c.scale
}

