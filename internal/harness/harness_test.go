package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScenario(t *testing.T, name string) *Result {
	t.Helper()
	result, err := Run(filepath.Join("testdata", name))
	require.NoError(t, err)
	return result
}

func TestRun_AdderForward(t *testing.T) {
	result := runScenario(t, "adder_forward.yaml")
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
	assert.Equal(t, "nothing", result.Cells["S"])
	assert.Equal(t, "5", result.Cells["B"])
	assert.NotEmpty(t, result.Trace)
}

func TestRun_AdderBackward(t *testing.T) {
	result := runScenario(t, "adder_backward.yaml")
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
	assert.Equal(t, "3", result.Cells["A"])
}

func TestRun_ContradictionRecovery(t *testing.T) {
	result := runScenario(t, "contradiction.yaml")
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
	assert.Equal(t, "40", result.Cells["C"])
}

func TestRun_DiamondCascade(t *testing.T) {
	result := runScenario(t, "diamond.yaml")
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
	for _, cell := range []string{"A", "B", "C", "D"} {
		assert.Equal(t, "nothing", result.Cells[cell], "cell %s", cell)
	}
	assert.Equal(t, "2", result.Cells["K2"])
}

func TestRun_ColoringK3(t *testing.T) {
	result := runScenario(t, "coloring_k3.yaml")
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
	require.NotNil(t, result.Solution)
	used := make(map[int64]bool)
	for _, v := range result.Solution {
		used[v] = true
	}
	assert.Len(t, used, 3, "triangle forces all three colors")
}

func TestRun_ColoringK4(t *testing.T) {
	result := runScenario(t, "coloring_k4.yaml")
	assert.True(t, result.Passed(), "failures: %v", result.Failures)
	assert.True(t, result.NoSolution)
	assert.Nil(t, result.Solution)
}

func TestRun_FailedExpectationReported(t *testing.T) {
	dir := t.TempDir()
	scenario := `
name: failing
model: ` + filepath.Join(mustAbs(t, "testdata"), "single.cue") + `
steps:
  - assert: {cell: C, value: 1, informant: s1}
  - expect: {cell: C, value: 2}
`
	path := filepath.Join(dir, "failing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	result, err := Run(path)
	require.NoError(t, err, "a failed expectation is a result, not an error")
	assert.False(t, result.Passed())
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "C = 1, want 2")
}

func TestRun_UnknownCellNameIsAnError(t *testing.T) {
	dir := t.TempDir()
	scenario := `
name: bad-cell
model: ` + filepath.Join(mustAbs(t, "testdata"), "single.cue") + `
steps:
  - assert: {cell: GHOST, value: 1, informant: s1}
`
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	_, err := Run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GHOST")
}

func mustAbs(t *testing.T, rel string) string {
	t.Helper()
	abs, err := filepath.Abs(rel)
	require.NoError(t, err)
	return abs
}
