package elements

import "testing"

func TestGetKnown(t *testing.T) {
	tbl := New()
	h, err := tbl.Get(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Symbol != "H" || h.Mass <= 0 {
		t.Errorf("bad hydrogen entry: %+v", h)
	}
}

func TestGetUnknown(t *testing.T) {
	tbl := New()
	if _, err := tbl.Get(118); err == nil {
		t.Errorf("expected error for undefined atomic number")
	}
}

func TestMustGetPanics(t *testing.T) {
	tbl := New()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for undefined atomic number")
		}
	}()
	tbl.MustGet(999)
}
