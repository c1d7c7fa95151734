// Package jtms implements a justification-based truth maintenance system.
//
// A JTMS is a graph of labeled nodes linked by justifications. Each node
// is labeled in ("believed") or out ("not currently supported"). A
// justification (informant, in-list, out-list) authorizes its node to be
// in when every in-list node is in and every out-list node is out; the
// out-list is what makes the reasoning non-monotonic.
//
// Label propagation is a breadth-first worklist run to fixpoint. For the
// node dequeued, justifications are scanned in insertion order and the
// first valid one wins: the node becomes in with that justification as
// its support. If no justification is valid the node is out with no
// support. A node whose label changed enqueues every consequence.
//
// The system never deletes nodes. Retracting an assumption removes only
// the assumption justification and relabels; derived nodes whose support
// vanished flip to out on their own during propagation.
//
// Termination: a well-formed dependency graph (no unstratifiable
// negative cycle) converges. Ill-formed graphs are not detected
// statically; callers that need a bound impose one above this package
// (the network's firing budget plays that role).
package jtms
