// Package molgraph implements the MoleculeGraph component of spec.md §2/§4.3:
// atoms and undirected bonds, producing the canonical 1-2 adjacency the
// topology realizer walks. Grounded on gochem's chemgraph package, which
// wraps chem.Atom/chem.Bond to satisfy gonum.org/v1/gonum/graph's
// graph.Graph/graph.Weighted interfaces; here the same wrapping is done
// directly against graph/simple.UndirectedGraph, since this subsystem has
// no separate "topology" graph consumer the way gochem's chemgraph serves
// gonum's shortest-path/community-detection algorithms.
package molgraph

import (
	"sort"

	"github.com/fcanderson/simbody/errs"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// node adapts a dense atom id to satisfy graph.Node.
type node int64

func (n node) ID() int64 { return int64(n) }

// Bond is an undirected atom pair {a,b} with a<b, uniquely identified by
// its own id (spec.md §3).
type Bond struct {
	ID   int
	A, B int
}

// MoleculeGraph holds atoms (referenced only by dense id; atom data itself
// lives in the topo package) and undirected bonds between them.
type MoleculeGraph struct {
	g       *simple.UndirectedGraph
	bonds   []*Bond
	byPair  map[[2]int]int // canonical (a,b) -> bond id
	nextID  int
}

// New returns an empty molecule graph.
func New() *MoleculeGraph {
	return &MoleculeGraph{
		g:      simple.NewUndirectedGraph(),
		byPair: make(map[[2]int]int),
	}
}

// EnsureAtom makes sure atom id has a node in the adjacency graph. Atom
// definition itself is owned by the topo package; this call just lets the
// graph answer adjacency queries for every defined atom, including
// bondless ones.
func (m *MoleculeGraph) EnsureAtom(id int) {
	if m.g.Node(int64(id)) == nil {
		m.g.AddNode(node(id))
	}
}

// AddBond inserts an undirected bond between a and b (a != b), refusing
// duplicates: a duplicate add returns the id of the pre-existing bond
// rather than erroring, per spec.md §4.3 and its worked example (§8
// scenario 6).
func (m *MoleculeGraph) AddBond(a, b int) (int, error) {
	if a == b {
		return -1, errs.New(errs.InvalidArgument, "cannot bond atom %d to itself", a)
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	key := [2]int{lo, hi}
	if id, exists := m.byPair[key]; exists {
		return id, nil
	}
	m.EnsureAtom(lo)
	m.EnsureAtom(hi)
	id := m.nextID
	m.nextID++
	bd := &Bond{ID: id, A: lo, B: hi}
	m.bonds = append(m.bonds, bd)
	m.byPair[key] = id
	m.g.SetEdge(simple.Edge{F: node(lo), T: node(hi)})
	return id, nil
}

// Bonds returns every defined bond, in insertion order.
func (m *MoleculeGraph) Bonds() []*Bond {
	return m.bonds
}

// Bond12 returns the sorted 1-2 neighbours of atom a.
func (m *MoleculeGraph) Bond12(a int) []int {
	n := m.g.Node(int64(a))
	if n == nil {
		return nil
	}
	it := m.g.From(int64(a))
	neigh := make([]int, 0, it.Len())
	for it.Next() {
		neigh = append(neigh, int(it.Node().ID()))
	}
	sort.Ints(neigh)
	return neigh
}

// HasBond reports whether a and b are directly bonded.
func (m *MoleculeGraph) HasBond(a, b int) bool {
	return m.g.HasEdgeBetween(int64(a), int64(b))
}

// Graph exposes the underlying gonum graph for consumers that want to run
// standard graph algorithms over the bond network (shortest paths, etc.)
// beyond what the topology realizer itself needs.
func (m *MoleculeGraph) Graph() graph.Graph {
	return m.g
}

