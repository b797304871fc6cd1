package catalog

import "github.com/fcanderson/simbody/mixing"

// PairwiseVdW is the per-class pairwise LJ table of spec.md §4.2: stored
// upper-triangular, class i's row covers class ids [i, N), N being one past
// the largest defined class id, with entry 0 of row i being the self pair
// and entry (j-i) of row i being the (i,j) pair for j > i. Class j's entry
// for i < j is looked up from class i's row. Entries at undefined class ids
// are left zero.
type PairwiseVdW struct {
	rows map[int][]Pair // keyed by class id, sized N-i as described above
}

// Pair is one mixed (dmin, eps) entry.
type Pair struct {
	Dmin float64
	Eps  float64
}

// BuildPairwiseVdW computes the mixed vdW parameters for every pair of
// classes in c (including self-pairs) under the given rule. This is
// spec.md §4.5 step 2, run once per realization.
func BuildPairwiseVdW(c *Catalog, rule mixing.Rule) (*PairwiseVdW, error) {
	ids := c.AtomClassIDs()
	table := &PairwiseVdW{rows: make(map[int][]Pair, len(ids))}
	if len(ids) == 0 {
		return table, nil
	}
	n := ids[len(ids)-1] + 1
	for k, i := range ids {
		ci, err := c.AtomClass(i)
		if err != nil {
			return nil, err
		}
		row := make([]Pair, n-i)
		for _, j := range ids[k:] {
			cj, err := c.AtomClass(j)
			if err != nil {
				return nil, err
			}
			dmin, eps := mixing.Combine(rule, ci.VdwRadius, ci.VdwWellDepth, cj.VdwRadius, cj.VdwWellDepth)
			row[j-i] = Pair{Dmin: dmin, Eps: eps}
		}
		table.rows[i] = row
	}
	return table, nil
}

// Lookup returns the mixed (dmin, eps) for the pair (classI, classJ),
// always asking the lower-indexed class's row per spec.md §4.8.
func (t *PairwiseVdW) Lookup(classI, classJ int) Pair {
	lo, hi := classI, classJ
	if lo > hi {
		lo, hi = hi, lo
	}
	row := t.rows[lo]
	return row[hi-lo]
}
