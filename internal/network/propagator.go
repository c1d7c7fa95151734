package network

import (
	"github.com/google/uuid"

	"github.com/cryptix/tenet/internal/lattice"
)

// Write is one (output cell, value) pair returned by a propagator
// function.
type Write struct {
	Cell  CellID
	Value lattice.Value
}

// Fn is a propagator function: pure, deterministic, and fast. It
// receives the input cells' active values in input order (any of which
// may be Nothing or Contradiction) and returns output writes, or nil
// to skip. It must not block or perform I/O.
//
// A panic inside Fn is caught by the network and treated as skip.
type Fn func(inputs []lattice.Value) []Write

// propagator bundles inputs, outputs, a function, and an informant.
// It has no state of its own; all state lives in cells and the truth
// maintenance system.
type propagator struct {
	id        PropagatorID
	inputs    []CellID
	outputs   []CellID
	informant string
	fn        Fn
}

// NonceGenerator mints the nonce embedded in each belief node's
// identity. Implemented by UUIDv7Generator (production) and
// testutil.FixedNonceGenerator (tests).
type NonceGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 nonces.
//
// UUIDv7 embeds a timestamp in the most significant bits, making belief
// nonces sortable by creation time, which is helpful when reading
// provenance dumps.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
