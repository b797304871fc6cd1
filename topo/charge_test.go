package topo

import (
	"math"
	"testing"

	"github.com/fcanderson/simbody/spatial"
)

type fixedFrames map[int]spatial.Transform

func (f fixedFrames) BodyConfiguration(bodyID int) spatial.Transform { return f[bodyID] }

func TestChargePropertiesNetChargeAndDipole(t *testing.T) {
	tp, ids := newButaneLikeFixture(t)
	if err := tp.Realize(); err != nil {
		t.Fatalf("Realize: %v", err)
	}
	frames := make(fixedFrames, len(ids))
	for _, id := range ids {
		frames[id] = spatial.Transform{R: spatial.Identity(), P: spatial.Vec3{X: float64(id)}}
	}
	cp, err := tp.ChargeProperties(frames)
	if err != nil {
		t.Fatalf("ChargeProperties: %v", err)
	}
	// the fixture's single charged atom type carries zero partial charge.
	if math.Abs(cp.NetCharge) > 1e-12 {
		t.Errorf("NetCharge = %v, want 0", cp.NetCharge)
	}
	if spatial.Norm(cp.DipoleMoment) > 1e-12 {
		t.Errorf("DipoleMoment = %v, want zero vector", cp.DipoleMoment)
	}
}

func TestChargePropertiesRejectsUnrealizedTopology(t *testing.T) {
	tp, _ := newButaneLikeFixture(t)
	if _, err := tp.ChargeProperties(fixedFrames{}); err == nil {
		t.Errorf("expected ChargeProperties to reject an unrealized topology")
	}
}
