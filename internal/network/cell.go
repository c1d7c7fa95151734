package network

import "github.com/cryptix/tenet/internal/lattice"

// CellID identifies a cell within a network. Ids are minted from the
// network's logical clock and never reused.
type CellID int64

// PropagatorID identifies a propagator within a network.
type PropagatorID int64

// Belief is one {value, node, informant} record owned by a cell.
// The node name is the content-addressed id of the
// (cell, value, informant, nonce) tuple, registered in the network's
// truth maintenance system.
type Belief struct {
	Value     lattice.Value
	Node      string
	Informant string
}

// cell is the internal cell record.
//
// beliefs is append-only within a network's lifetime: a retracted
// belief is an out-labeled node, not a removed record, so re-adding
// after retraction gets a fresh node and the old one stays inspectable.
//
// subscribers preserves propagator registration order; firing iterates
// it in insertion order.
type cell struct {
	id          CellID
	kind        lattice.Kind
	beliefs     []Belief
	subscribers []PropagatorID
}

// activeValue computes the cell's derived view: the projection of its
// beliefs restricted to those whose node is currently in.
//
//   - no in-labeled beliefs: Nothing
//   - all active values equal under the lattice: that value
//   - otherwise: Contradiction
//
// This is NOT a lattice merge: the active set shrinks when labels flip
// to out, which is what lets retraction lose information.
func (c *cell) activeValue(labels func(node string) bool) lattice.Value {
	var active lattice.Value = lattice.Nothing{}
	found := false

	for _, b := range c.beliefs {
		if !labels(b.Node) {
			continue
		}
		if !found {
			active = b.Value
			found = true
			continue
		}
		if !c.kind.Equal(active, b.Value) {
			return lattice.Contradiction{}
		}
	}
	return active
}

// supportingNodes returns the in-labeled nodes that justify the given
// active value: for a plain value, the first in belief holding an
// equal value; for a contradiction, every in belief (they jointly
// cause it).
func (c *cell) supportingNodes(active lattice.Value, labels func(node string) bool) []string {
	if lattice.IsNothing(active) {
		return nil
	}

	if lattice.IsContradiction(active) {
		var nodes []string
		for _, b := range c.beliefs {
			if labels(b.Node) {
				nodes = append(nodes, b.Node)
			}
		}
		return nodes
	}

	for _, b := range c.beliefs {
		if labels(b.Node) && c.kind.Equal(b.Value, active) {
			return []string{b.Node}
		}
	}
	return nil
}

// findBelief returns the index of a belief with the given informant
// and an equal value, or -1.
func (c *cell) findBelief(informant string, value lattice.Value) int {
	for i, b := range c.beliefs {
		if b.Informant == informant && c.kind.Equal(b.Value, value) {
			return i
		}
	}
	return -1
}

// subscribe registers a propagator; duplicates are ignored so a
// propagator listing the same input cell twice fires once per change.
func (c *cell) subscribe(id PropagatorID) {
	for _, s := range c.subscribers {
		if s == id {
			return
		}
	}
	c.subscribers = append(c.subscribers, id)
}
