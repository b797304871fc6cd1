package catalog

import (
	"testing"

	"github.com/fcanderson/simbody/mixing"
)

func TestPairwiseVdWSymmetricLookup(t *testing.T) {
	c := newTestCatalog(t)
	table, err := BuildPairwiseVdW(c, mixing.WaldmanHagler)
	if err != nil {
		t.Fatalf("BuildPairwiseVdW: %v", err)
	}
	a := table.Lookup(0, 1)
	b := table.Lookup(1, 0)
	if a != b {
		t.Errorf("expected symmetric lookup, got %v vs %v", a, b)
	}
}

func TestPairwiseVdWSelfPair(t *testing.T) {
	c := newTestCatalog(t)
	table, err := BuildPairwiseVdW(c, mixing.WaldmanHagler)
	if err != nil {
		t.Fatalf("BuildPairwiseVdW: %v", err)
	}
	cl, _ := c.AtomClass(0)
	self := table.Lookup(0, 0)
	if diff := self.Dmin - 2*cl.VdwRadius; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("self pair dmin mismatch: got %v want %v", self.Dmin, 2*cl.VdwRadius)
	}
}
