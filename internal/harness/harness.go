package harness

import (
	"fmt"
	"path/filepath"

	"github.com/cryptix/tenet/internal/compiler"
	"github.com/cryptix/tenet/internal/ir"
	"github.com/cryptix/tenet/internal/lattice"
	"github.com/cryptix/tenet/internal/network"
	"github.com/cryptix/tenet/internal/solver"
	"github.com/cryptix/tenet/internal/testutil"
)

// Result captures a scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string

	// Cells maps every model cell name to its final formatted active
	// value.
	Cells map[string]string

	// Solution is the solver assignment, when the scenario solves.
	Solution map[string]int64

	// NoSolution is true when the solver reported unsatisfiability.
	NoSolution bool

	// Failures lists every expectation that did not hold, in step
	// order. Empty means the scenario passed.
	Failures []string

	// Trace is the full event trace of the run.
	Trace []ir.TraceEvent
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario: compile and validate the model, build a
// deterministic network (fixed nonces, in-memory trace), drive the
// steps, then solve if requested.
//
// Expectation failures land in Result.Failures; an error return means
// the scenario could not be executed at all (bad model, unknown cell
// name, kernel error).
func Run(scenarioPath string) (*Result, error) {
	scenario, err := LoadScenario(scenarioPath)
	if err != nil {
		return nil, err
	}

	modelPath := scenario.Model
	if !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(filepath.Dir(scenarioPath), modelPath)
	}
	spec, err := compiler.CompileFile(modelPath)
	if err != nil {
		return nil, err
	}
	if verrs := compiler.Validate(spec); len(verrs) > 0 {
		return nil, fmt.Errorf("model %s: %w", scenario.Model, verrs[0])
	}

	recorder := testutil.NewMemoryRecorder()
	net := network.New(
		network.WithTrace(recorder),
		network.WithNonceGenerator(testutil.NewFixedNonceGenerator(scenario.Name)),
	)

	var cells map[string]network.CellID
	if len(spec.Cells) > 0 {
		cells, err = compiler.Build(spec, net)
		if err != nil {
			return nil, err
		}
	}

	result := &Result{Scenario: scenario.Name, Cells: make(map[string]string)}

	for i, step := range scenario.Steps {
		if err := runStep(net, cells, i, step, result); err != nil {
			return nil, err
		}
	}

	for name, id := range cells {
		v, err := net.ReadCell(id)
		if err != nil {
			return nil, err
		}
		result.Cells[name] = lattice.Format(v)
	}

	if scenario.Solve != nil {
		if err := runSolve(spec, scenario.Solve, result); err != nil {
			return nil, err
		}
	}

	result.Trace = recorder.Events()
	return result, nil
}

// runStep executes one scenario step against the network.
func runStep(net *network.Network, cells map[string]network.CellID, idx int, step Step, result *Result) error {
	switch {
	case step.Assert != nil:
		id, err := lookupCell(cells, step.Assert.Cell)
		if err != nil {
			return fmt.Errorf("step %d: %w", idx, err)
		}
		value := stepValue(step.Assert.Value, step.Assert.Set)
		if err := net.AddContent(id, value, step.Assert.Informant); err != nil {
			return fmt.Errorf("step %d: %w", idx, err)
		}

	case step.Retract != nil:
		id, err := lookupCell(cells, step.Retract.Cell)
		if err != nil {
			return fmt.Errorf("step %d: %w", idx, err)
		}
		if err := net.RetractContent(id, step.Retract.Informant); err != nil {
			return fmt.Errorf("step %d: %w", idx, err)
		}

	case step.Expect != nil:
		id, err := lookupCell(cells, step.Expect.Cell)
		if err != nil {
			return fmt.Errorf("step %d: %w", idx, err)
		}
		got, err := net.ReadCell(id)
		if err != nil {
			return fmt.Errorf("step %d: %w", idx, err)
		}
		if failure := evaluateExpect(idx, step.Expect, got); failure != "" {
			result.Failures = append(result.Failures, failure)
		}
	}
	return nil
}

// runSolve runs the model's problem and checks the expected outcome.
func runSolve(spec *ir.ModelSpec, clause *SolveClause, result *Result) error {
	if spec.Problem == nil {
		return fmt.Errorf("scenario solves but model has no problem section")
	}
	domains, constraints, err := compiler.Problem(spec.Problem)
	if err != nil {
		return err
	}

	assignment, err := solver.Solve(domains, constraints)
	switch {
	case err == nil:
		result.Solution = make(map[string]int64, len(assignment))
		for name, v := range assignment {
			result.Solution[string(name)] = v
		}
		if clause.Expect == "no_solution" {
			result.Failures = append(result.Failures,
				fmt.Sprintf("solve: expected no solution, got %v", result.Solution))
		}
		for name, want := range clause.Assignment {
			if got, ok := result.Solution[name]; !ok || got != want {
				result.Failures = append(result.Failures,
					fmt.Sprintf("solve: %s = %d, want %d", name, got, want))
			}
		}

	case solver.IsNoSolution(err):
		result.NoSolution = true
		if clause.Expect == "solution" {
			result.Failures = append(result.Failures, "solve: expected a solution, got none")
		}

	default:
		return err
	}
	return nil
}

func lookupCell(cells map[string]network.CellID, name string) (network.CellID, error) {
	id, ok := cells[name]
	if !ok {
		return 0, fmt.Errorf("unknown cell %q", name)
	}
	return id, nil
}

func stepValue(value *float64, set []int64) lattice.Value {
	if value != nil {
		return lattice.Number(*value)
	}
	return lattice.NewSet(set...)
}
