package ir

// Version identifies the IR schema carried in traces and compiled
// model dumps. Bump on incompatible changes.
const Version = "tenet-ir/1"

// ModelSpec is a compiled model: the declarative form of a network
// and/or a finite-domain problem.
type ModelSpec struct {
	Name        string           `json:"name"`
	Cells       []CellSpec       `json:"cells,omitempty"`
	Constraints []ConstraintSpec `json:"constraints,omitempty"`
	Problem     *ProblemSpec     `json:"problem,omitempty"`
}

// CellSpec declares a named cell with a lattice kind and an optional
// constant. A constant cell is asserted at build time with the
// informant "const:<name>".
type CellSpec struct {
	Name  string   `json:"name"`
	Kind  string   `json:"kind"` // "number" | "set"
	Const *float64 `json:"const,omitempty"`
}

// ValidCellKinds defines allowed cell kinds.
var ValidCellKinds = map[string]bool{
	"number": true,
	"set":    true,
}

// ConstraintSpec declares a bidirectional arithmetic constraint over
// named cells. Adder relates A + B = Out; Multiplier relates
// A * B = Out.
type ConstraintSpec struct {
	Kind string `json:"kind"` // "adder" | "multiplier"
	Name string `json:"name"` // informant prefix for the constraint's propagators
	A    string `json:"a"`
	B    string `json:"b"`
	Out  string `json:"out"`
}

// ValidConstraintKinds defines allowed constraint kinds.
var ValidConstraintKinds = map[string]bool{
	"adder":      true,
	"multiplier": true,
}

// ProblemSpec declares a finite-domain constraint satisfaction
// problem for the solver.
type ProblemSpec struct {
	Vars        []VarSpec       `json:"vars"`
	Constraints []PredicateSpec `json:"constraints"`
}

// VarSpec declares a variable with its integer domain.
type VarSpec struct {
	Name   string  `json:"name"`
	Domain []int64 `json:"domain"`
}

// PredicateSpec declares a constraint by operator name over variable
// arguments. Binary ops take exactly two args; "alldiff" takes two or
// more.
type PredicateSpec struct {
	Op   string   `json:"op"` // "lt" | "le" | "gt" | "ge" | "eq" | "ne" | "alldiff"
	Args []string `json:"args"`
}

// ValidPredicateOps defines allowed predicate operators.
var ValidPredicateOps = map[string]bool{
	"lt":      true,
	"le":      true,
	"gt":      true,
	"ge":      true,
	"eq":      true,
	"ne":      true,
	"alldiff": true,
}
