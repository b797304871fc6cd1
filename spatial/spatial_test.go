package spatial

import (
	"math"
	"testing"
)

func TestIdentityApply(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}
	if got := Identity().Apply(v); got != v {
		t.Errorf("identity rotation changed vector: got %v want %v", got, v)
	}
}

func TestTransformCompose(t *testing.T) {
	xAB := Transform{R: Identity(), P: Vec3{X: 1}}
	xBC := Transform{R: Identity(), P: Vec3{X: 0, Y: 1}}
	xAC := xAB.Compose(xBC)
	want := Vec3{X: 1, Y: 1}
	if xAC.P != want {
		t.Errorf("compose origin: got %v want %v", xAC.P, want)
	}
}

func TestArbitraryPerpendicular(t *testing.T) {
	ref := Vec3{X: 1}
	p := ArbitraryPerpendicular(ref)
	if math.Abs(Dot(p, ref)) > 1e-9 {
		t.Errorf("not perpendicular: dot=%v", Dot(p, ref))
	}
	if math.Abs(Norm(p)-1) > 1e-9 {
		t.Errorf("not unit length: norm=%v", Norm(p))
	}
}

func TestForceAtStation(t *testing.T) {
	sv := ForceAtStation(Vec3{X: 1}, Vec3{Y: 1})
	want := Vec3{Z: 1}
	if sv.Torque != want {
		t.Errorf("torque: got %v want %v", sv.Torque, want)
	}
}
