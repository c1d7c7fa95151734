package compiler

import (
	"fmt"
	"strings"

	"github.com/cryptix/tenet/internal/ir"
	"github.com/cryptix/tenet/internal/lattice"
	"github.com/cryptix/tenet/internal/network"
	"github.com/cryptix/tenet/internal/solver"
)

// ConstInformantPrefix marks assertions made for constant cells at
// build time; "const:K2" retracts like any other informant.
const ConstInformantPrefix = "const:"

// Build instantiates the spec's network declarations into the given
// network: cells in declaration order (so ids are deterministic),
// then constraints, then constant assertions so they propagate
// through the finished wiring. Returns cell ids by name.
//
// The spec should be validated first; Build reports the first
// structural problem it hits rather than collecting all of them.
func Build(spec *ir.ModelSpec, net *network.Network) (map[string]network.CellID, error) {
	cells := make(map[string]network.CellID, len(spec.Cells))
	for _, cs := range spec.Cells {
		kind := lattice.KindNumber
		if cs.Kind == "set" {
			kind = lattice.KindSet
		}
		if _, dup := cells[cs.Name]; dup {
			return nil, fmt.Errorf("build: duplicate cell %q", cs.Name)
		}
		cells[cs.Name] = net.CreateCell(kind)
	}

	for i, con := range spec.Constraints {
		a, aok := cells[con.A]
		b, bok := cells[con.B]
		out, outok := cells[con.Out]
		if !aok || !bok || !outok {
			return nil, fmt.Errorf("build: constraint %d references undeclared cells", i)
		}
		name := con.Name
		if name == "" {
			name = fmt.Sprintf("%s[%d]", con.Kind, i)
		}

		var err error
		switch con.Kind {
		case "adder":
			err = network.Adder(net, name, a, b, out)
		case "multiplier":
			err = network.Multiplier(net, name, a, b, out)
		default:
			err = fmt.Errorf("build: unknown constraint kind %q", con.Kind)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, cs := range spec.Cells {
		if cs.Const == nil {
			continue
		}
		informant := ConstInformantPrefix + cs.Name
		if err := net.AddContent(cells[cs.Name], lattice.Number(*cs.Const), informant); err != nil {
			return nil, fmt.Errorf("build: constant %s: %w", cs.Name, err)
		}
	}

	return cells, nil
}

// Problem converts the spec's problem into solver inputs.
func Problem(spec *ir.ProblemSpec) (map[solver.Variable]lattice.Set, []solver.Constraint, error) {
	domains := make(map[solver.Variable]lattice.Set, len(spec.Vars))
	for _, vs := range spec.Vars {
		domains[solver.Variable(vs.Name)] = lattice.NewSet(vs.Domain...)
	}

	constraints := make([]solver.Constraint, 0, len(spec.Constraints))
	for i, pred := range spec.Constraints {
		name := fmt.Sprintf("%s(%s)", pred.Op, strings.Join(pred.Args, ","))

		if pred.Op == "alldiff" {
			scope := make([]solver.Variable, len(pred.Args))
			for j, arg := range pred.Args {
				scope[j] = solver.Variable(arg)
			}
			constraints = append(constraints, solver.AllDiff(name, scope...))
			continue
		}

		test, ok := solver.BinaryOp(pred.Op)
		if !ok {
			return nil, nil, fmt.Errorf("problem: constraint %d: unknown op %q", i, pred.Op)
		}
		if len(pred.Args) != 2 {
			return nil, nil, fmt.Errorf("problem: constraint %d: %s requires two variables", i, pred.Op)
		}
		constraints = append(constraints,
			solver.Binary(name, solver.Variable(pred.Args[0]), solver.Variable(pred.Args[1]), test))
	}

	return domains, constraints, nil
}
