// Package harness provides a conformance testing framework for the
// propagation kernel.
//
// A scenario is a YAML file naming a CUE model and a flow of steps:
// asserts, retracts, and expected reads. The harness builds the model
// into a real network (fixed nonces, in-memory trace), drives the
// steps through the public API, and evaluates every expectation. A
// scenario with a problem section additionally runs the solver and
// checks the outcome.
//
// Scenario results snapshot to golden files: the final view of every
// named cell plus the solver assignment, in canonical form. Golden
// comparison catches semantic drift that step expectations alone
// would miss.
package harness
