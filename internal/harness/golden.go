package harness

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the canonical, golden-comparable view of a scenario
// result: the final read of every model cell plus the solver outcome.
// Node hashes and event payloads are deliberately excluded so a
// snapshot stays stable across identity-scheme changes.
type Snapshot struct {
	Scenario   string            `json:"scenario"`
	Cells      map[string]string `json:"cells"`
	Solution   map[string]int64  `json:"solution,omitempty"`
	NoSolution bool              `json:"no_solution,omitempty"`
}

// Snapshot renders the result for golden comparison. Map keys
// serialize sorted, so output is byte-stable.
func (r *Result) Snapshot() ([]byte, error) {
	snap := Snapshot{
		Scenario:   r.Scenario,
		Cells:      r.Cells,
		Solution:   r.Solution,
		NoSolution: r.NoSolution,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return data, nil
}
