package solver

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cryptix/tenet/internal/lattice"
)

// Variable names a finite-domain variable.
type Variable string

// Assignment maps variables to chosen values. Solve returns a total
// assignment; predicates receive partial ones during search.
type Assignment map[Variable]int64

// Predicate evaluates a constraint against a (possibly partial)
// assignment. It must return true when its scope is not fully
// assigned.
type Predicate func(a Assignment) bool

// Constraint is a (scope, predicate) pair.
type Constraint struct {
	Name  string
	Scope []Variable
	Pred  Predicate
}

// NoSolutionError reports an unsatisfiable problem: either a domain
// was pruned empty during arc consistency or the search exhausted
// every assignment.
type NoSolutionError struct {
	// Variable is the emptied variable when pruning failed, or ""
	// when the search space was exhausted.
	Variable Variable
}

// Error implements the error interface.
func (e *NoSolutionError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("no solution: domain of %s pruned empty", e.Variable)
	}
	return "no solution: search exhausted"
}

// IsNoSolution returns true if the error reports unsatisfiability.
// Uses errors.As to handle wrapped errors.
func IsNoSolution(err error) bool {
	var ne *NoSolutionError
	return errors.As(err, &ne)
}

// arc is one directed revision task: prune x's domain against y under
// constraint index c.
type arc struct {
	x, y Variable
	c    int
}

// Solve finds a total assignment satisfying every constraint, or
// returns a NoSolutionError.
//
// Domains are set-lattice values; the caller's sets are not mutated.
func Solve(domains map[Variable]lattice.Set, constraints []Constraint) (Assignment, error) {
	working := make(map[Variable]lattice.Set, len(domains))
	for name, dom := range domains {
		working[name] = dom
	}

	if err := reviseUnary(working, constraints); err != nil {
		return nil, err
	}
	if err := enforceArcConsistency(working, constraints); err != nil {
		return nil, err
	}

	assignment := make(Assignment, len(working))
	if !backtrack(working, constraints, assignment) {
		return nil, &NoSolutionError{}
	}
	return assignment, nil
}

// reviseUnary keeps only values satisfying each unary predicate.
// Runs once, before binary arc enforcement.
func reviseUnary(domains map[Variable]lattice.Set, constraints []Constraint) error {
	for _, c := range constraints {
		if len(c.Scope) != 1 {
			continue
		}
		x := c.Scope[0]
		dom, ok := domains[x]
		if !ok {
			continue
		}
		for _, v := range dom.Elems() {
			if !c.Pred(Assignment{x: v}) {
				dom = dom.Without(v)
			}
		}
		if dom.IsEmpty() {
			return &NoSolutionError{Variable: x}
		}
		domains[x] = dom
	}
	return nil
}

// enforceArcConsistency runs AC-3 to fixpoint.
func enforceArcConsistency(domains map[Variable]lattice.Set, constraints []Constraint) error {
	queue := initialArcs(constraints)

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]

		shrank, err := revise(domains, constraints[a.c], a.x, a.y)
		if err != nil {
			return err
		}
		if !shrank {
			continue
		}

		// x's domain shrank: every other constraint touching x may now
		// prune further. Re-enqueue arcs pointed at x.
		for ci, c := range constraints {
			if len(c.Scope) < 2 || !slices.Contains(c.Scope, a.x) {
				continue
			}
			for _, z := range c.Scope {
				if z != a.x && z != a.y {
					queue = append(queue, arc{x: z, y: a.x, c: ci})
				}
			}
		}
	}
	return nil
}

// initialArcs emits, for every constraint, every ordered pair of
// distinct scope variables. Constraint order then scope order keeps
// the queue deterministic.
func initialArcs(constraints []Constraint) []arc {
	var queue []arc
	for ci, c := range constraints {
		if len(c.Scope) < 2 {
			continue
		}
		for _, x := range c.Scope {
			for _, y := range c.Scope {
				if x != y {
					queue = append(queue, arc{x: x, y: y, c: ci})
				}
			}
		}
	}
	return queue
}

// revise removes from x's domain every value with no support in y's
// domain under the constraint. Reports whether the domain shrank;
// fails if it was pruned empty.
func revise(domains map[Variable]lattice.Set, c Constraint, x, y Variable) (bool, error) {
	domX, ok := domains[x]
	if !ok {
		return false, nil
	}
	domY, ok := domains[y]
	if !ok {
		return false, nil
	}

	shrank := false
	for _, vx := range domX.Elems() {
		supported := false
		for _, vy := range domY.Elems() {
			if c.Pred(Assignment{x: vx, y: vy}) {
				supported = true
				break
			}
		}
		if !supported {
			domX = domX.Without(vx)
			shrank = true
		}
	}

	if domX.IsEmpty() {
		return true, &NoSolutionError{Variable: x}
	}
	if shrank {
		domains[x] = domX
	}
	return shrank, nil
}

// backtrack extends the assignment one variable at a time, choosing
// the unassigned variable with the smallest remaining domain
// (minimum-remaining-values; name order breaks ties).
func backtrack(domains map[Variable]lattice.Set, constraints []Constraint, assignment Assignment) bool {
	x, ok := selectUnassigned(domains, assignment)
	if !ok {
		return true // every variable assigned
	}

	for _, v := range domains[x].Elems() {
		assignment[x] = v
		if consistent(constraints, assignment) &&
			backtrack(domains, constraints, assignment) {
			return true
		}
		delete(assignment, x)
	}
	return false
}

// selectUnassigned applies the MRV heuristic.
func selectUnassigned(domains map[Variable]lattice.Set, assignment Assignment) (Variable, bool) {
	names := make([]Variable, 0, len(domains))
	for name := range domains {
		if _, done := assignment[name]; !done {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	slices.Sort(names)

	best := names[0]
	for _, name := range names[1:] {
		if domains[name].Len() < domains[best].Len() {
			best = name
		}
	}
	return best, true
}

// consistent checks every constraint against the partial assignment.
// Predicates return true for under-bound scopes, so only genuinely
// violated constraints reject.
func consistent(constraints []Constraint, assignment Assignment) bool {
	for _, c := range constraints {
		if !c.Pred(assignment) {
			return false
		}
	}
	return true
}
