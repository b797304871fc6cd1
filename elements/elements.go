// Package elements provides a static atomic-number keyed lookup table,
// populated once and never mutated afterward.
package elements

import "fmt"

// Element is the periodic-table entry for one atomic number.
type Element struct {
	AtomicNumber  int
	Symbol        string
	Name          string
	Mass          float64 // Da
	DefaultColour [3]float64
}

// Table is a static atomic-number -> Element lookup, built once by New.
type Table struct {
	byNumber map[int]Element
}

// New builds the element table from the standard bio-element set. It
// mirrors gochem's atomicdata.go package-level maps, just gathered behind
// one type instead of three parallel maps.
func New() *Table {
	t := &Table{byNumber: make(map[int]Element, len(defaultElements))}
	for _, e := range defaultElements {
		t.byNumber[e.AtomicNumber] = e
	}
	return t
}

// Get returns the element with the given atomic number.
func (t *Table) Get(atomicNumber int) (Element, error) {
	e, ok := t.byNumber[atomicNumber]
	if !ok {
		return Element{}, fmt.Errorf("elements: no element defined for atomic number %d", atomicNumber)
	}
	return e, nil
}

// MustGet panics if the atomic number is undefined. Intended for call
// sites operating on an already-realized, validated topology.
func (t *Table) MustGet(atomicNumber int) Element {
	e, err := t.Get(atomicNumber)
	if err != nil {
		panic(err)
	}
	return e
}

// defaultElements carries the same "common bio-elements" subset gochem's
// atomicdata.go ships (symbolMass et al.), re-keyed by atomic number since
// this subsystem's wire format is numeric (spec.md §3).
var defaultElements = []Element{
	{1, "H", "Hydrogen", 1.008, [3]float64{1, 1, 1}},
	{6, "C", "Carbon", 12.011, [3]float64{0.2, 0.2, 0.2}},
	{7, "N", "Nitrogen", 14.007, [3]float64{0.2, 0.2, 1}},
	{8, "O", "Oxygen", 15.999, [3]float64{1, 0.2, 0.2}},
	{9, "F", "Fluorine", 18.998, [3]float64{0.6, 1, 0.6}},
	{11, "Na", "Sodium", 22.990, [3]float64{0.6, 0.2, 1}},
	{12, "Mg", "Magnesium", 24.305, [3]float64{0.4, 0.8, 0.2}},
	{14, "Si", "Silicon", 28.085, [3]float64{0.6, 0.6, 0.3}},
	{15, "P", "Phosphorus", 30.974, [3]float64{1, 0.6, 0}},
	{16, "S", "Sulfur", 32.06, [3]float64{1, 0.8, 0.2}},
	{17, "Cl", "Chlorine", 35.45, [3]float64{0.2, 1, 0.2}},
	{19, "K", "Potassium", 39.098, [3]float64{0.5, 0.1, 0.7}},
	{20, "Ca", "Calcium", 40.078, [3]float64{0.4, 0.4, 0.4}},
	{24, "Cr", "Chromium", 51.996, [3]float64{0.5, 0.5, 0.7}},
	{25, "Mn", "Manganese", 54.938, [3]float64{0.5, 0.3, 0.7}},
	{26, "Fe", "Iron", 55.845, [3]float64{0.7, 0.3, 0}},
	{27, "Co", "Cobalt", 58.933, [3]float64{0.5, 0.5, 0.8}},
	{29, "Cu", "Copper", 63.546, [3]float64{0.7, 0.4, 0.1}},
	{30, "Zn", "Zinc", 65.38, [3]float64{0.4, 0.4, 0.6}},
	{34, "Se", "Selenium", 78.971, [3]float64{1, 0.5, 0}},
	{35, "Br", "Bromine", 79.904, [3]float64{0.5, 0.1, 0.1}},
	{53, "I", "Iodine", 126.904, [3]float64{0.4, 0, 0.4}},
}
