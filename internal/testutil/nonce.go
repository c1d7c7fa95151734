package testutil

import (
	"fmt"
	"sync"
)

// FixedNonceGenerator returns predetermined belief nonces for tests.
//
// Belief node identities hash over a nonce; a counter-based generator
// makes node names, traces, and golden files byte-stable across runs.
//
// Thread-safety: safe for concurrent use via internal mutex, though
// the network serializes calls in practice.
type FixedNonceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewFixedNonceGenerator creates a generator producing
// "<prefix>-1", "<prefix>-2", ... If prefix is empty, "nonce" is used.
func NewFixedNonceGenerator(prefix string) *FixedNonceGenerator {
	if prefix == "" {
		prefix = "nonce"
	}
	return &FixedNonceGenerator{prefix: prefix}
}

// Generate returns the next counter-based nonce.
func (g *FixedNonceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}

// Reset restarts the counter. After Reset the next nonce is
// "<prefix>-1" again; used when one test rebuilds a network and wants
// identical node identities.
func (g *FixedNonceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = 0
}
