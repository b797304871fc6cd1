package cluster

import (
	"testing"

	"github.com/fcanderson/simbody/spatial"
)

func TestPlaceAtomInClusterRejectsDuplicate(t *testing.T) {
	tr := New()
	c := tr.CreateCluster("ring")
	if err := tr.PlaceAtomInCluster(1, c.ID, spatial.Zero); err != nil {
		t.Fatalf("first place: %v", err)
	}
	if err := tr.PlaceAtomInCluster(1, c.ID, spatial.Zero); err == nil {
		t.Errorf("expected error placing the same atom twice in one cluster")
	}
}

func TestPlaceAtomInNonTopLevelClusterFails(t *testing.T) {
	tr := New()
	parent := tr.CreateCluster("parent")
	child := tr.CreateCluster("child")
	if err := tr.PlaceClusterInCluster(child.ID, parent.ID, spatial.IdentityTransform()); err != nil {
		t.Fatalf("PlaceClusterInCluster: %v", err)
	}
	if err := tr.PlaceAtomInCluster(2, child.ID, spatial.Zero); err == nil {
		t.Errorf("expected error: child is no longer top-level once nested")
	}
}

func TestPlaceClusterInClusterRejectsAtomOverlap(t *testing.T) {
	tr := New()
	a := tr.CreateCluster("a")
	b := tr.CreateCluster("b")
	if err := tr.PlaceAtomInCluster(1, a.ID, spatial.Zero); err != nil {
		t.Fatalf("place in a: %v", err)
	}
	if err := tr.PlaceAtomInCluster(1, b.ID, spatial.Zero); err != nil {
		t.Fatalf("place in b: %v", err)
	}
	if err := tr.PlaceClusterInCluster(b.ID, a.ID, spatial.IdentityTransform()); err == nil {
		t.Errorf("expected error: atom 1 present in both a and b")
	}
}

func TestAttachToBodyPropagatesWorldStations(t *testing.T) {
	tr := New()
	c := tr.CreateCluster("methyl")
	if err := tr.PlaceAtomInCluster(1, c.ID, spatial.Vec3{X: 1, Y: 0, Z: 0}); err != nil {
		t.Fatalf("place: %v", err)
	}
	offset := spatial.Transform{R: spatial.Identity(), P: spatial.Vec3{X: 0, Y: 2, Z: 0}}
	if err := tr.AttachToBody(c.ID, 0, offset); err != nil {
		t.Fatalf("AttachToBody: %v", err)
	}
	if !c.IsAttachedToBody() {
		t.Fatalf("expected cluster to be attached")
	}
	if tr.atomAttachedToAnyBody(1) != true {
		t.Errorf("expected atom 1 to be recorded as attached to a body")
	}
	bodyCluster, err := tr.Cluster(tr.Body(0).ClusterID)
	if err != nil {
		t.Fatalf("body cluster: %v", err)
	}
	want := offset.ApplyToPoint(spatial.Vec3{X: 1, Y: 0, Z: 0})
	if got := bodyCluster.allAtoms[1]; got != want {
		t.Errorf("atom 1 station in body frame = %v, want %v", got, want)
	}
}

func TestAttachToBodyTwiceFails(t *testing.T) {
	tr := New()
	c := tr.CreateCluster("x")
	if err := tr.AttachToBody(c.ID, 0, spatial.IdentityTransform()); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if err := tr.AttachToBody(c.ID, 1, spatial.IdentityTransform()); err == nil {
		t.Errorf("expected error re-attaching an already-attached cluster")
	}
}

func TestFlattenBodyAfterAttachToBody(t *testing.T) {
	tr := New()
	c := tr.CreateCluster("methyl")
	if err := tr.PlaceAtomInCluster(1, c.ID, spatial.Vec3{X: 1, Y: 0, Z: 0}); err != nil {
		t.Fatalf("place: %v", err)
	}
	offset := spatial.Transform{R: spatial.Identity(), P: spatial.Vec3{X: 0, Y: 2, Z: 0}}
	if err := tr.AttachToBody(c.ID, 0, offset); err != nil {
		t.Fatalf("AttachToBody: %v", err)
	}
	if err := tr.FlattenBody(0); err != nil {
		t.Fatalf("FlattenBody: %v", err)
	}
	body := tr.Body(0)
	if len(body.AllAtoms) != 1 || body.AllAtoms[0].AtomID != 1 {
		t.Fatalf("body.AllAtoms = %v, want a single placement for atom 1", body.AllAtoms)
	}
	want := offset.ApplyToPoint(spatial.Vec3{X: 1, Y: 0, Z: 0})
	got := body.AllAtoms[0].Station
	if got != want {
		t.Errorf("flattened station = %v, want %v", got, want)
	}
}

func TestFlattenBodyAfterAttachingNestedCluster(t *testing.T) {
	tr := New()
	parent := tr.CreateCluster("parent")
	child := tr.CreateCluster("child")
	if err := tr.PlaceAtomInCluster(1, child.ID, spatial.Zero); err != nil {
		t.Fatalf("place: %v", err)
	}
	xPC := spatial.Transform{R: spatial.Identity(), P: spatial.Vec3{X: 1}}
	if err := tr.PlaceClusterInCluster(child.ID, parent.ID, xPC); err != nil {
		t.Fatalf("PlaceClusterInCluster: %v", err)
	}
	xBR := spatial.Transform{R: spatial.Identity(), P: spatial.Vec3{Y: 1}}
	if err := tr.AttachToBody(parent.ID, 0, xBR); err != nil {
		t.Fatalf("AttachToBody: %v", err)
	}
	if err := tr.FlattenBody(0); err != nil {
		t.Fatalf("FlattenBody: %v", err)
	}
	body := tr.Body(0)
	if len(body.AllAtoms) != 1 || body.AllAtoms[0].AtomID != 1 {
		t.Fatalf("body.AllAtoms = %v, want atom 1 via the nested child cluster", body.AllAtoms)
	}
}

func TestAttachToBodyRejectsDuplicateAtomAcrossClusters(t *testing.T) {
	tr := New()
	a := tr.CreateCluster("a")
	b := tr.CreateCluster("b")
	if err := tr.PlaceAtomInCluster(1, a.ID, spatial.Zero); err != nil {
		t.Fatalf("place in a: %v", err)
	}
	if err := tr.PlaceAtomInCluster(1, b.ID, spatial.Zero); err != nil {
		t.Fatalf("place in b: %v", err)
	}
	if err := tr.AttachToBody(a.ID, 0, spatial.IdentityTransform()); err != nil {
		t.Fatalf("attach a: %v", err)
	}
	if err := tr.AttachToBody(b.ID, 0, spatial.IdentityTransform()); err == nil {
		t.Errorf("expected error: atom 1 already present on body 0 via cluster a")
	}
}

func TestAllAtomPlacementsSortedByAtomID(t *testing.T) {
	tr := New()
	c := tr.CreateCluster("chain")
	for _, id := range []int{5, 1, 3} {
		if err := tr.PlaceAtomInCluster(id, c.ID, spatial.Zero); err != nil {
			t.Fatalf("place %d: %v", id, err)
		}
	}
	placements := c.AllAtomPlacements()
	want := []int{1, 3, 5}
	for i, p := range placements {
		if p.AtomID != want[i] {
			t.Errorf("placements[%d].AtomID = %d, want %d", i, p.AtomID, want[i])
		}
	}
}
