package mixing

import (
	"math"
	"testing"
)

func TestIdentityOnLikePairs(t *testing.T) {
	rules := []Rule{WaldmanHagler, LorentzBerthelot, Jorgensen, HalgrenHHG, Kong}
	r, e := 1.7, 0.1094
	for _, rule := range rules {
		dmin, eps := Combine(rule, r, e, r, e)
		if math.Abs(dmin-2*r) > 1e-9 {
			t.Errorf("%v: dmin mismatch on like pair: got %v want %v", rule, dmin, 2*r)
		}
		if math.Abs(eps-e) > 1e-9 {
			t.Errorf("%v: eps mismatch on like pair: got %v want %v", rule, eps, e)
		}
	}
}

func TestWaldmanHaglerAsymmetric(t *testing.T) {
	dmin, eps := Combine(WaldmanHagler, 1.7, 0.1094, 1.1, 0.0157)
	if dmin <= 0 || eps <= 0 {
		t.Errorf("expected positive combined parameters, got dmin=%v eps=%v", dmin, eps)
	}
}

func TestLorentzBerthelotIsArithmeticGeometric(t *testing.T) {
	dmin, eps := Combine(LorentzBerthelot, 1.0, 4.0, 2.0, 9.0)
	wantDmin := 2 * 0.5 * (1.0 + 2.0)
	wantEps := math.Sqrt(4.0 * 9.0)
	if math.Abs(dmin-wantDmin) > 1e-9 {
		t.Errorf("dmin: got %v want %v", dmin, wantDmin)
	}
	if math.Abs(eps-wantEps) > 1e-9 {
		t.Errorf("eps: got %v want %v", eps, wantEps)
	}
}
