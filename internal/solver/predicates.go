package solver

// Unary builds a single-variable constraint. The predicate follows the
// partial-assignment contract: unbound means possibly satisfied.
func Unary(name string, x Variable, test func(v int64) bool) Constraint {
	return Constraint{
		Name:  name,
		Scope: []Variable{x},
		Pred: func(a Assignment) bool {
			v, bound := a[x]
			if !bound {
				return true
			}
			return test(v)
		},
	}
}

// Binary builds a two-variable constraint.
func Binary(name string, x, y Variable, test func(vx, vy int64) bool) Constraint {
	return Constraint{
		Name:  name,
		Scope: []Variable{x, y},
		Pred: func(a Assignment) bool {
			vx, xBound := a[x]
			vy, yBound := a[y]
			if !xBound || !yBound {
				return true
			}
			return test(vx, vy)
		},
	}
}

// AllDiff builds a pairwise-distinct constraint over the scope.
// Only bound pairs are compared, so partial assignments pass until a
// genuine clash appears.
func AllDiff(name string, scope ...Variable) Constraint {
	vars := append([]Variable(nil), scope...)
	return Constraint{
		Name:  name,
		Scope: vars,
		Pred: func(a Assignment) bool {
			for i, x := range vars {
				vx, bound := a[x]
				if !bound {
					continue
				}
				for _, y := range vars[i+1:] {
					vy, bound := a[y]
					if bound && vx == vy {
						return false
					}
				}
			}
			return true
		},
	}
}

// BinaryOp returns the comparison for a named operator, or false if
// the operator is unknown. The operator names match the model IR.
func BinaryOp(op string) (func(vx, vy int64) bool, bool) {
	switch op {
	case "lt":
		return func(vx, vy int64) bool { return vx < vy }, true
	case "le":
		return func(vx, vy int64) bool { return vx <= vy }, true
	case "gt":
		return func(vx, vy int64) bool { return vx > vy }, true
	case "ge":
		return func(vx, vy int64) bool { return vx >= vy }, true
	case "eq":
		return func(vx, vy int64) bool { return vx == vy }, true
	case "ne":
		return func(vx, vy int64) bool { return vx != vy }, true
	default:
		return nil, false
	}
}
