package harness

import (
	"fmt"

	"github.com/cryptix/tenet/internal/lattice"
)

// evaluateExpect compares a read against an expectation. Returns a
// failure description, or "" when the expectation holds.
func evaluateExpect(idx int, expect *ExpectStep, got lattice.Value) string {
	switch {
	case expect.Nothing:
		if !lattice.IsNothing(got) {
			return failure(idx, expect.Cell, "nothing", got)
		}

	case expect.Contradiction:
		if !lattice.IsContradiction(got) {
			return failure(idx, expect.Cell, "contradiction", got)
		}

	case expect.Value != nil:
		want := lattice.Number(*expect.Value)
		if !lattice.KindNumber.Equal(want, got) {
			return failure(idx, expect.Cell, lattice.Format(want), got)
		}

	case expect.Set != nil:
		want := lattice.NewSet(expect.Set...)
		if !lattice.KindSet.Equal(want, got) {
			return failure(idx, expect.Cell, lattice.Format(want), got)
		}

	default:
		return fmt.Sprintf("step %d: expect on %s names no expected value", idx, expect.Cell)
	}
	return ""
}

func failure(idx int, cell, want string, got lattice.Value) string {
	return fmt.Sprintf("step %d: %s = %s, want %s", idx, cell, lattice.Format(got), want)
}
