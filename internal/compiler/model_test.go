package compiler

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptix/tenet/internal/ir"
)

func compileString(t *testing.T, src string) (*ir.ModelSpec, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	return CompileModel(v)
}

const diamondCUE = `
network: {
	name: "diamond"
	cells: {
		A:  {kind: "number"}
		K2: {kind: "number", const: 2}
		K3: {kind: "number", const: 3}
		B:  {kind: "number"}
		C:  {kind: "number"}
		D:  {kind: "number"}
	}
	constraints: [
		{kind: "multiplier", name: "x2", a: "A", b: "K2", out: "B"},
		{kind: "multiplier", name: "x3", a: "A", b: "K3", out: "C"},
		{kind: "adder", name: "join", a: "B", b: "C", out: "D"},
	]
}
`

func TestCompileModel_Network(t *testing.T) {
	spec, err := compileString(t, diamondCUE)
	require.NoError(t, err)

	assert.Equal(t, "diamond", spec.Name)
	require.Len(t, spec.Cells, 6)
	assert.Equal(t, "A", spec.Cells[0].Name, "cells keep declaration order")
	assert.Equal(t, "number", spec.Cells[0].Kind)
	assert.Nil(t, spec.Cells[0].Const)
	require.NotNil(t, spec.Cells[1].Const)
	assert.Equal(t, 2.0, *spec.Cells[1].Const)

	require.Len(t, spec.Constraints, 3)
	assert.Equal(t, "multiplier", spec.Constraints[0].Kind)
	assert.Equal(t, "x2", spec.Constraints[0].Name)
	assert.Equal(t, "A", spec.Constraints[0].A)
	assert.Equal(t, "B", spec.Constraints[0].Out)
	assert.Nil(t, spec.Problem)
}

func TestCompileModel_Problem(t *testing.T) {
	spec, err := compileString(t, `
problem: {
	vars: {
		x: [1, 2, 3]
		y: [1, 2, 3]
	}
	constraints: [
		{op: "lt", args: ["x", "y"]},
	]
}
`)
	require.NoError(t, err)
	require.NotNil(t, spec.Problem)
	require.Len(t, spec.Problem.Vars, 2)
	assert.Equal(t, "x", spec.Problem.Vars[0].Name)
	assert.Equal(t, []int64{1, 2, 3}, spec.Problem.Vars[0].Domain)
	require.Len(t, spec.Problem.Constraints, 1)
	assert.Equal(t, "lt", spec.Problem.Constraints[0].Op)
	assert.Equal(t, []string{"x", "y"}, spec.Problem.Constraints[0].Args)
}

func TestCompileModel_DefaultsToNumberKind(t *testing.T) {
	spec, err := compileString(t, `
network: {
	cells: {A: {}}
}
`)
	require.NoError(t, err)
	require.Len(t, spec.Cells, 1)
	assert.Equal(t, "number", spec.Cells[0].Kind)
}

func TestCompileModel_EmptyModelRejected(t *testing.T) {
	_, err := compileString(t, `other: 1`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "model", ce.Field)
}

func TestCompileModel_MissingCells(t *testing.T) {
	_, err := compileString(t, `network: {name: "empty"}`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "network.cells", ce.Field)
}

func TestCompileModel_ConstraintMissingField(t *testing.T) {
	_, err := compileString(t, `
network: {
	cells: {A: {}, B: {}}
	constraints: [{kind: "adder", name: "x", a: "A", b: "B"}]
}
`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "constraint.out", ce.Field)
}

func TestCompileModel_CUEErrorSurfaced(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`network: cells: A: kind: 42 & "number"`)
	_, err := CompileModel(v)
	assert.Error(t, err)
}
