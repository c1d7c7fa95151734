package compiler

import (
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/cryptix/tenet/internal/ir"
)

// CompileFile reads and compiles a CUE model file.
func CompileFile(path string) (*ir.ModelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	return CompileModel(v)
}

// CompileModel parses a CUE value into a ModelSpec.
// The value is the file root; it must contain a "network" struct, a
// "problem" struct, or both.
func CompileModel(v cue.Value) (*ir.ModelSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.ModelSpec{}

	netVal := v.LookupPath(cue.ParsePath("network"))
	if netVal.Exists() {
		if err := parseNetwork(netVal, spec); err != nil {
			return nil, err
		}
	}

	probVal := v.LookupPath(cue.ParsePath("problem"))
	if probVal.Exists() {
		problem, err := parseProblem(probVal)
		if err != nil {
			return nil, err
		}
		spec.Problem = problem
	}

	if !netVal.Exists() && !probVal.Exists() {
		return nil, &CompileError{
			Field:   "model",
			Message: "model must declare a network, a problem, or both",
			Pos:     v.Pos(),
		}
	}

	return spec, nil
}

// parseNetwork fills the spec's name, cells, and constraints.
func parseNetwork(v cue.Value, spec *ir.ModelSpec) error {
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return formatCUEError(err)
		}
		spec.Name = name
	}

	cellsVal := v.LookupPath(cue.ParsePath("cells"))
	if !cellsVal.Exists() {
		return &CompileError{
			Field:   "network.cells",
			Message: "at least one cell is required",
			Pos:     v.Pos(),
		}
	}

	// Fields iterate in declaration order, which fixes cell creation
	// order and therefore cell ids. Do not sort.
	iter, err := cellsVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		cell, err := parseCell(iter.Label(), iter.Value())
		if err != nil {
			return err
		}
		spec.Cells = append(spec.Cells, cell)
	}
	if len(spec.Cells) == 0 {
		return &CompileError{
			Field:   "network.cells",
			Message: "at least one cell is required",
			Pos:     cellsVal.Pos(),
		}
	}

	consVal := v.LookupPath(cue.ParsePath("constraints"))
	if consVal.Exists() {
		conIter, err := consVal.List()
		if err != nil {
			return formatCUEError(err)
		}
		for conIter.Next() {
			con, err := parseConstraint(conIter.Value())
			if err != nil {
				return err
			}
			spec.Constraints = append(spec.Constraints, con)
		}
	}

	return nil
}

// parseCell parses one cell declaration.
func parseCell(name string, v cue.Value) (ir.CellSpec, error) {
	cell := ir.CellSpec{Name: name, Kind: "number"}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if kindVal.Exists() {
		kind, err := kindVal.String()
		if err != nil {
			return cell, formatCUEError(err)
		}
		cell.Kind = kind
	}

	constVal := v.LookupPath(cue.ParsePath("const"))
	if constVal.Exists() {
		f, err := constVal.Float64()
		if err != nil {
			return cell, formatCUEError(err)
		}
		cell.Const = &f
	}

	return cell, nil
}

// parseConstraint parses one constraint declaration.
func parseConstraint(v cue.Value) (ir.ConstraintSpec, error) {
	var con ir.ConstraintSpec

	fields := []struct {
		name string
		dst  *string
	}{
		{"kind", &con.Kind},
		{"name", &con.Name},
		{"a", &con.A},
		{"b", &con.B},
		{"out", &con.Out},
	}
	for _, field := range fields {
		fv := v.LookupPath(cue.ParsePath(field.name))
		if !fv.Exists() {
			return con, &CompileError{
				Field:   "constraint." + field.name,
				Message: "required field missing",
				Pos:     v.Pos(),
			}
		}
		s, err := fv.String()
		if err != nil {
			return con, formatCUEError(err)
		}
		*field.dst = s
	}

	return con, nil
}

// parseProblem parses a finite-domain problem declaration.
func parseProblem(v cue.Value) (*ir.ProblemSpec, error) {
	problem := &ir.ProblemSpec{}

	varsVal := v.LookupPath(cue.ParsePath("vars"))
	if !varsVal.Exists() {
		return nil, &CompileError{
			Field:   "problem.vars",
			Message: "at least one variable is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := varsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		vs := ir.VarSpec{Name: iter.Label()}
		domIter, err := iter.Value().List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for domIter.Next() {
			n, err := domIter.Value().Int64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			vs.Domain = append(vs.Domain, n)
		}
		problem.Vars = append(problem.Vars, vs)
	}
	if len(problem.Vars) == 0 {
		return nil, &CompileError{
			Field:   "problem.vars",
			Message: "at least one variable is required",
			Pos:     varsVal.Pos(),
		}
	}

	consVal := v.LookupPath(cue.ParsePath("constraints"))
	if consVal.Exists() {
		conIter, err := consVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for conIter.Next() {
			pred, err := parsePredicate(conIter.Value())
			if err != nil {
				return nil, err
			}
			problem.Constraints = append(problem.Constraints, pred)
		}
	}

	return problem, nil
}

// parsePredicate parses one problem constraint.
func parsePredicate(v cue.Value) (ir.PredicateSpec, error) {
	var pred ir.PredicateSpec

	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return pred, &CompileError{
			Field:   "constraint.op",
			Message: "required field missing",
			Pos:     v.Pos(),
		}
	}
	op, err := opVal.String()
	if err != nil {
		return pred, formatCUEError(err)
	}
	pred.Op = op

	argsVal := v.LookupPath(cue.ParsePath("args"))
	if !argsVal.Exists() {
		return pred, &CompileError{
			Field:   "constraint.args",
			Message: "required field missing",
			Pos:     v.Pos(),
		}
	}
	argIter, err := argsVal.List()
	if err != nil {
		return pred, formatCUEError(err)
	}
	for argIter.Next() {
		arg, err := argIter.Value().String()
		if err != nil {
			return pred, formatCUEError(err)
		}
		pred.Args = append(pred.Args, arg)
	}

	return pred, nil
}
