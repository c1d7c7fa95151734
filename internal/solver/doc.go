// Package solver implements a finite-domain constraint solver: AC-3
// arc consistency over set-lattice domains followed by chronological
// backtracking with minimum-remaining-values ordering.
//
// Constraints are (scope, predicate) pairs. A predicate receives a
// partial assignment and must return true when its scope is not fully
// assigned ("possibly satisfied"); only a fully bound scope may
// falsify it. The helpers in this package build predicates that follow
// that contract.
//
// Unary constraints run as a single revision pass before binary arc
// enforcement begins. All iteration orders (variables, domain values,
// arcs) are deterministic, so the same problem always yields the same
// assignment.
package solver
