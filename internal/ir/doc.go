// Package ir defines the intermediate representation shared by the
// compiler, the network builder, the trace store, and the CLI.
//
// A ModelSpec is the compiled form of a CUE model file: cells with
// lattice kinds and optional constant values, arithmetic constraint
// declarations wiring cells together, and an optional finite-domain
// problem for the solver.
//
// A TraceEvent is one sequenced entry in a network's provenance trace:
// external asserts and retracts, derived writes, label flips, and
// propagator firings. Events are stamped with the network's logical
// clock so a trace replays in a single deterministic order.
package ir
