package network

// refireGuard tracks input signatures fired during one propagation
// wave (one public operation) so repeat firings can be skipped.
//
// A propagator re-fired with an input signature it already fired on in
// this wave cannot produce new information: its function is pure, so
// the writes are identical and the derived adds are idempotent. The
// only way such a refire recurs indefinitely is an oscillating
// (ill-formed) constraint graph, where skipping breaks the loop.
//
// CRITICAL DISTINCTION from the firing budget (quota.go):
//   - Refire guard: catches same-signature repetition (A fires on X, A
//     fires on X again)
//   - Firing budget: catches progressing explosions (every firing has a
//     fresh signature but the cascade never quiesces)
//
// Together they guarantee termination of every public operation.
type refireGuard struct {
	seen map[string]bool // signature hash -> fired this wave
}

func newRefireGuard() *refireGuard {
	return &refireGuard{seen: make(map[string]bool)}
}

// wouldRefire checks if this input signature already fired this wave.
// Returns false for the first occurrence.
func (g *refireGuard) wouldRefire(signature string) bool {
	return g.seen[signature]
}

// record marks a signature as fired. Called immediately after
// wouldRefire returns false, before running the propagator function.
func (g *refireGuard) record(signature string) {
	g.seen[signature] = true
}

// reset clears all history. Called at the start of each public
// operation: a new wave may legitimately revisit old signatures.
func (g *refireGuard) reset() {
	clear(g.seen)
}

// size returns the number of signatures tracked this wave.
// Used for testing and introspection.
func (g *refireGuard) size() int {
	return len(g.seen)
}
