package catalog

import "testing"

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := New()
	if err := c.DefineAtomClass(0, "CT", 6, 4, 1.7, 0.1094); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	if err := c.DefineAtomClass(1, "HC", 1, 1, 1.1, 0.0157); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	return c
}

func TestCanonicalizationDeterminism(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.DefineBondStretch(1, 0, 340, 1.09); err != nil {
		t.Fatalf("DefineBondStretch: %v", err)
	}
	a, err := c.BondStretch(0, 1)
	if err != nil {
		t.Fatalf("lookup (0,1): %v", err)
	}
	b, err := c.BondStretch(1, 0)
	if err != nil {
		t.Fatalf("lookup (1,0): %v", err)
	}
	if a != b {
		t.Errorf("expected identical parameter object regardless of input order")
	}
}

func TestBondBendCanonicalizationKeepsVertex(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.DefineAtomClass(2, "OH", 8, 2, 1.5, 0.21); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	if err := c.DefineBondBend(2, 0, 1, 50, 109.5); err != nil {
		t.Fatalf("DefineBondBend: %v", err)
	}
	if _, err := c.BondBend(1, 0, 2); err != nil {
		t.Errorf("expected reversed-outer-ends lookup to succeed: %v", err)
	}
	if _, err := c.BondBend(2, 1, 0); err == nil {
		t.Errorf("expected lookup with a different vertex to fail")
	}
}

func TestBondTorsionQuadCanonicalization(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.DefineAtomClass(2, "X", 6, 4, 1.9, 0.1); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	if err := c.DefineAtomClass(3, "Y", 6, 4, 1.9, 0.1); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	terms := []TorsionTerm{{Periodicity: 3, Amplitude: 1, Phase: 0}}
	if err := c.DefineBondTorsion(0, 1, 2, 3, terms); err != nil {
		t.Fatalf("DefineBondTorsion: %v", err)
	}
	if _, err := c.BondTorsion(3, 2, 1, 0); err != nil {
		t.Errorf("expected reversed quad lookup to succeed: %v", err)
	}
}

func TestDuplicatePeriodicityRejected(t *testing.T) {
	c := newTestCatalog(t)
	terms := []TorsionTerm{
		{Periodicity: 2, Amplitude: 1, Phase: 0},
		{Periodicity: 2, Amplitude: 2, Phase: 180},
	}
	if err := c.DefineBondTorsion(0, 0, 1, 1, terms); err == nil {
		t.Errorf("expected duplicated periodicity to be rejected")
	}
}

func TestScaleFactorBounds(t *testing.T) {
	c := New()
	if err := c.SetScaleFactor(2, 1.5, 0.5); err == nil {
		t.Errorf("expected out-of-range vdW scale factor to be rejected")
	}
	if err := c.SetScaleFactor(2, 1, 1); err != nil {
		t.Errorf("unexpected error for valid scale factor: %v", err)
	}
}

func TestKcalRoundTrip(t *testing.T) {
	c := New()
	if err := c.DefineAtomClass(0, "CT", 6, 4, 1.7, 0.1094); err != nil {
		t.Fatalf("DefineAtomClass: %v", err)
	}
	cl, _ := c.AtomClass(0)
	got := cl.VdwWellDepth / 418.4
	if diff := got - 0.1094; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("round trip kcal conversion mismatch: got %v want 0.1094", got)
	}
}
