package harness

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden snapshots pin the final view of every scenario. Regenerate
// with: go test ./internal/harness -update
func TestGoldenSnapshots(t *testing.T) {
	scenarios := []string{
		"adder_forward.yaml",
		"adder_backward.yaml",
		"contradiction.yaml",
		"diamond.yaml",
		"coloring_k3.yaml",
		"coloring_k4.yaml",
	}

	g := goldie.New(t)
	for _, scenario := range scenarios {
		t.Run(scenario, func(t *testing.T) {
			result, err := Run(filepath.Join("testdata", scenario))
			require.NoError(t, err)
			require.True(t, result.Passed(), "failures: %v", result.Failures)

			snap, err := result.Snapshot()
			require.NoError(t, err)
			g.Assert(t, result.Scenario, snap)
		})
	}
}
