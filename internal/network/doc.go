// Package network implements the belief-tracking propagation kernel.
//
// A Network owns belief cells and propagators, plus the truth
// maintenance system that tracks why each value is believed. Cells
// hold bags of {value, node, informant} beliefs; a cell's active value
// is the projection over beliefs whose node is currently labeled in.
// Propagators are pure functions subscribed to input cells; their
// writes become derived beliefs justified by the input beliefs that
// supported them, so retracting any external assumption cascades
// through every derived value automatically.
//
// ARCHITECTURE:
//
// Serialized Owner:
// All cells, propagators, and the JTMS live behind one mutex. Every
// public operation runs to quiescence before returning: asserts and
// retracts relabel the JTMS, re-read affected cells, and fire
// subscribed propagators depth-first in subscriber-insertion order
// until no active value changes.
//
// The active value is deliberately NOT a lattice merge. Lattice merge
// only sharpens; retraction must lose information. Projecting over the
// in-labeled beliefs lets the active set shrink when labels flip,
// while the lattice still supplies equality and contradiction
// detection within the active set.
//
// CRITICAL PATTERNS:
//
// Logical Clock:
// Cell ids, propagator ids, and trace events are stamped from one
// monotonic counter; belief nonces come from the network's
// NonceGenerator instead. Ids are never reused within a
// network's lifetime. NEVER use wall-clock timestamps for ordering.
//
// Deterministic Scheduling:
// Subscribers fire in insertion order; retraction re-fires every
// propagator in creation order. No randomness, no concurrency, no
// non-determinism.
//
// Termination Guards:
// A per-operation firing budget bounds cascades, and a refire guard
// skips a firing whose input signature already fired within the
// current operation (it cannot produce new information). Well-formed
// constraint graphs trip neither; an ill-formed graph surfaces as a
// typed error instead of a hang.
package network
