package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios validate kernel behavior by executing a flow of asserts
// and retracts against a compiled model and asserting on reads.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Model is the path to the CUE model file, relative to the
	// scenario file location.
	Model string `yaml:"model"`

	// Steps is the main flow: asserts, retracts, and expected reads,
	// executed in order.
	Steps []Step `yaml:"steps"`

	// Solve optionally runs the model's problem through the solver
	// after the steps complete.
	Solve *SolveClause `yaml:"solve,omitempty"`
}

// Step is one scenario action. Exactly one of Assert, Retract, or
// Expect must be set.
type Step struct {
	Assert  *AssertStep  `yaml:"assert,omitempty"`
	Retract *RetractStep `yaml:"retract,omitempty"`
	Expect  *ExpectStep  `yaml:"expect,omitempty"`
}

// AssertStep adds content to a cell.
type AssertStep struct {
	// Cell is the cell name from the model.
	Cell string `yaml:"cell"`

	// Value is the numeric value for number cells.
	Value *float64 `yaml:"value,omitempty"`

	// Set is the element list for set cells.
	Set []int64 `yaml:"set,omitempty"`

	// Informant identifies the source; required.
	Informant string `yaml:"informant"`
}

// RetractStep retracts an informant's content from a cell.
type RetractStep struct {
	Cell      string `yaml:"cell"`
	Informant string `yaml:"informant"`
}

// ExpectStep asserts on a cell's active value. Exactly one of Value,
// Set, Nothing, or Contradiction describes the expected read.
type ExpectStep struct {
	Cell          string   `yaml:"cell"`
	Value         *float64 `yaml:"value,omitempty"`
	Set           []int64  `yaml:"set,omitempty"`
	Nothing       bool     `yaml:"nothing,omitempty"`
	Contradiction bool     `yaml:"contradiction,omitempty"`
}

// SolveClause describes the expected solver outcome.
type SolveClause struct {
	// Expect is "solution" or "no_solution".
	Expect string `yaml:"expect"`

	// Assignment optionally pins exact values. A subset match: only
	// listed variables are checked.
	Assignment map[string]int64 `yaml:"assignment,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// validate checks structural requirements before execution.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Model == "" {
		return fmt.Errorf("model is required")
	}
	for i, step := range s.Steps {
		set := 0
		if step.Assert != nil {
			set++
			if step.Assert.Informant == "" {
				return fmt.Errorf("step %d: assert requires an informant", i)
			}
			if step.Assert.Value == nil && step.Assert.Set == nil {
				return fmt.Errorf("step %d: assert requires value or set", i)
			}
		}
		if step.Retract != nil {
			set++
		}
		if step.Expect != nil {
			set++
		}
		if set != 1 {
			return fmt.Errorf("step %d: exactly one of assert, retract, expect required", i)
		}
	}
	if s.Solve != nil && s.Solve.Expect != "solution" && s.Solve.Expect != "no_solution" {
		return fmt.Errorf("solve.expect must be solution or no_solution")
	}
	return nil
}
