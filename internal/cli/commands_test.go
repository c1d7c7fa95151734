package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const adderModel = `
network: {
	name: "adder"
	cells: {
		A: {kind: "number"}
		B: {kind: "number"}
		S: {kind: "number"}
	}
	constraints: [
		{kind: "adder", name: "sum", a: "A", b: "B", out: "S"},
	]
}
`

const lessThanModel = `
problem: {
	vars: {
		x: [1, 2, 3]
		y: [1, 2, 3]
	}
	constraints: [
		{op: "lt", args: ["x", "y"]},
	]
}
`

func TestCompileCommand_Text(t *testing.T) {
	model := writeFile(t, t.TempDir(), "adder.cue", adderModel)

	out, err := execute(t, "compile", model)
	require.NoError(t, err)
	assert.Contains(t, out, "model: adder")
	assert.Contains(t, out, "cells: 3")
	assert.Contains(t, out, "sum: adder(A, B) -> S")
}

func TestCompileCommand_JSON(t *testing.T) {
	model := writeFile(t, t.TempDir(), "adder.cue", adderModel)

	out, err := execute(t, "--format", "json", "compile", model)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "adder"`)
	assert.Contains(t, out, `"kind": "adder"`)
}

func TestCompileCommand_InvalidModel(t *testing.T) {
	model := writeFile(t, t.TempDir(), "bad.cue", `
network: {
	cells: {A: {kind: "bogus"}}
}
`)

	_, err := execute(t, "compile", model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.cue", adderModel)
	bad := writeFile(t, dir, "bad.cue", `
network: {
	cells: {A: {kind: "bogus"}}
}
`)

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	out, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "E102")
}

func TestSolveCommand(t *testing.T) {
	model := writeFile(t, t.TempDir(), "lt.cue", lessThanModel)

	out, err := execute(t, "solve", model)
	require.NoError(t, err)
	assert.Contains(t, out, "x = 1")
	assert.Contains(t, out, "y = 2")
}

func TestSolveCommand_NoSolution(t *testing.T) {
	model := writeFile(t, t.TempDir(), "unsat.cue", `
problem: {
	vars: {
		x: [1, 2]
		y: [3, 4]
	}
	constraints: [
		{op: "eq", args: ["x", "y"]},
	]
}
`)

	out, err := execute(t, "solve", model)
	require.NoError(t, err, "unsatisfiable is an answer, not a failure")
	assert.Contains(t, out, "no solution")
}

func TestSolveCommand_NoProblemSection(t *testing.T) {
	model := writeFile(t, t.TempDir(), "net.cue", adderModel)

	_, err := execute(t, "solve", model)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no problem section")
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "single.cue", `
network: {
	name: "single"
	cells: {C: {kind: "number"}}
}
`)
	scenario := writeFile(t, dir, "scenario.yaml", `
name: recovery
model: single.cue
steps:
  - assert: {cell: C, value: 40, informant: s1}
  - assert: {cell: C, value: 65, informant: s2}
  - expect: {cell: C, contradiction: true}
  - retract: {cell: C, informant: s2}
  - expect: {cell: C, value: 40}
`)

	out, err := execute(t, "run", scenario)
	require.NoError(t, err)
	assert.Contains(t, out, "scenario: recovery")
	assert.Contains(t, out, "C = 40")
	assert.Contains(t, out, "ok")
}

func TestRunCommand_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "single.cue", `
network: {
	name: "single"
	cells: {C: {kind: "number"}}
}
`)
	scenario := writeFile(t, dir, "scenario.yaml", `
name: failing
model: single.cue
steps:
  - assert: {cell: C, value: 1, informant: s1}
  - expect: {cell: C, value: 2}
`)

	_, err := execute(t, "run", scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expectation(s) failed")
}
