package topo

import (
	"gonum.org/v1/gonum/floats"

	"github.com/fcanderson/simbody/errs"
	"github.com/fcanderson/simbody/spatial"
)

// BodyFrames is the same narrow body-pose query the force kernel reads
// through; duplicated here (rather than imported) so topo has no
// dependency on the force package.
type BodyFrames interface {
	BodyConfiguration(bodyID int) spatial.Transform
}

// ChargeProperties is the electrostatic counterpart of spec.md §9's
// MassProperties stub: net charge, center of charge, and dipole moment
// in the world frame. Grounded on the original source's ChargeProperties
// struct (netCharge, centerOfCharge, dipoleMoment, quadrupoleMoment),
// which the distilled spec dropped entirely; quadrupole moment is left
// out here too since nothing in this module consumes a rank-2 moment.
type ChargeProperties struct {
	NetCharge      float64
	CenterOfCharge spatial.Vec3
	DipoleMoment   spatial.Vec3
}

// ChargeProperties computes the aggregate charge distribution of every
// atom at its current world position under frames. The topology must
// already be realized.
func (t *Topology) ChargeProperties(frames BodyFrames) (ChargeProperties, error) {
	if !t.valid {
		return ChargeProperties{}, errs.New(errs.Internal, "ChargeProperties called on an unrealized topology")
	}
	charges := make([]float64, 0, len(t.order))
	var dipole spatial.Vec3
	for _, id := range t.order {
		a := t.atoms[id]
		ct, err := t.cat.ChargedAtomType(a.ChargedTypeID)
		if err != nil {
			return ChargeProperties{}, err
		}
		xGB := frames.BodyConfiguration(a.BodyID)
		pos := xGB.ApplyToPoint(a.StationB)
		charges = append(charges, ct.PartialCharge)
		dipole = spatial.Add(dipole, spatial.Scale(ct.PartialCharge, pos))
	}
	net := floats.Sum(charges)

	var center spatial.Vec3
	if net != 0 {
		center = spatial.Scale(1/net, dipole)
	}
	return ChargeProperties{NetCharge: net, CenterOfCharge: center, DipoleMoment: dipole}, nil
}
