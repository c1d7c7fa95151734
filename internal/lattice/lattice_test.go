package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Number lattice
// =============================================================================

func TestKindNumber_Merge_NothingIsIdentity(t *testing.T) {
	k := KindNumber

	assert.Equal(t, Number(3), k.Merge(Nothing{}, Number(3)))
	assert.Equal(t, Number(3), k.Merge(Number(3), Nothing{}))
	assert.Equal(t, Nothing{}, k.Merge(Nothing{}, Nothing{}))
}

func TestKindNumber_Merge_ContradictionAbsorbs(t *testing.T) {
	k := KindNumber

	assert.Equal(t, Contradiction{}, k.Merge(Contradiction{}, Number(3)))
	assert.Equal(t, Contradiction{}, k.Merge(Number(3), Contradiction{}))
	assert.Equal(t, Contradiction{}, k.Merge(Contradiction{}, Nothing{}))
}

func TestKindNumber_Merge_CloseNumbersKeepFirst(t *testing.T) {
	k := KindNumber

	// Exactly equal
	assert.Equal(t, Number(5), k.Merge(Number(5), Number(5)))

	// Within relative epsilon
	a := Number(1.0)
	b := Number(1.0 + 1e-13)
	assert.Equal(t, a, k.Merge(a, b))

	// Zero compares equal to zero despite relative tolerance
	assert.Equal(t, Number(0), k.Merge(Number(0), Number(0)))
}

func TestKindNumber_Merge_DistinctNumbersContradict(t *testing.T) {
	k := KindNumber

	assert.Equal(t, Contradiction{}, k.Merge(Number(40), Number(65)))
	assert.Equal(t, Contradiction{}, k.Merge(Number(1.0), Number(1.001)))
}

func TestKindNumber_Equal(t *testing.T) {
	k := KindNumber

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal numbers", Number(2), Number(2), true},
		{"epsilon-close numbers", Number(1), Number(1 + 1e-13), true},
		{"distinct numbers", Number(2), Number(3), false},
		{"nothing vs nothing", Nothing{}, Nothing{}, true},
		{"nothing vs number", Nothing{}, Number(0), false},
		{"contradiction vs contradiction", Contradiction{}, Contradiction{}, true},
		{"contradiction vs number", Contradiction{}, Number(1), false},
		{"number vs set", Number(1), NewSet(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Equal(tt.a, tt.b))
		})
	}
}

func TestKindNumber_EqualCompatibleWithMerge(t *testing.T) {
	k := KindNumber

	// Equal(a,b) implies Merge(a,b) == a
	a := Number(7)
	b := Number(7 + 1e-14)
	require.True(t, k.Equal(a, b))
	assert.Equal(t, a, k.Merge(a, b))
}

// =============================================================================
// Set lattice
// =============================================================================

func TestKindSet_Merge_IsIntersection(t *testing.T) {
	k := KindSet

	got := k.Merge(NewSet(1, 2, 3), NewSet(2, 3, 4))
	assert.True(t, k.Equal(NewSet(2, 3), got))
}

func TestKindSet_Merge_EmptyIntersectionContradicts(t *testing.T) {
	k := KindSet

	got := k.Merge(NewSet(1, 2), NewSet(3, 4))
	assert.Equal(t, Contradiction{}, got)
}

func TestKindSet_Merge_NothingIsIdentity(t *testing.T) {
	k := KindSet

	got := k.Merge(Nothing{}, NewSet(1, 2))
	assert.True(t, k.Equal(NewSet(1, 2), got))
}

func TestKindSet_Equal_StrictSetEquality(t *testing.T) {
	k := KindSet

	assert.True(t, k.Equal(NewSet(3, 1, 2), NewSet(1, 2, 3)), "order and duplicates do not matter")
	assert.True(t, k.Equal(NewSet(1, 1, 2), NewSet(1, 2)))
	assert.False(t, k.Equal(NewSet(1, 2), NewSet(1, 2, 3)))
	assert.False(t, k.Equal(NewSet(1, 2), NewSet(1, 4)))
}

func TestSet_Operations(t *testing.T) {
	s := NewSet(3, 1, 2, 3)

	assert.Equal(t, []int64{1, 2, 3}, s.Elems(), "elements sorted and deduplicated")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))
	assert.False(t, s.IsEmpty())

	without := s.Without(2)
	assert.Equal(t, []int64{1, 3}, without.Elems())
	assert.Equal(t, []int64{1, 2, 3}, s.Elems(), "Without does not mutate the receiver")

	assert.Equal(t, []int64{1, 3}, s.Without(9).Without(2).Elems())
	assert.True(t, NewSet().IsEmpty())
}

// =============================================================================
// Kind dispatch
// =============================================================================

func TestKindOf(t *testing.T) {
	k, ok := KindOf(Number(1))
	assert.True(t, ok)
	assert.Equal(t, KindNumber, k)

	k, ok = KindOf(NewSet(1))
	assert.True(t, ok)
	assert.Equal(t, KindSet, k)

	_, ok = KindOf(Nothing{})
	assert.False(t, ok, "nothing belongs to every lattice")
	_, ok = KindOf(Contradiction{})
	assert.False(t, ok, "contradiction belongs to every lattice")
}

func TestKind_Accepts(t *testing.T) {
	assert.True(t, KindNumber.Accepts(Number(1)))
	assert.True(t, KindNumber.Accepts(Nothing{}))
	assert.True(t, KindNumber.Accepts(Contradiction{}))
	assert.False(t, KindNumber.Accepts(NewSet(1)))

	assert.True(t, KindSet.Accepts(NewSet(1)))
	assert.False(t, KindSet.Accepts(Number(1)))
}

func TestKind_BottomAndTop(t *testing.T) {
	assert.Equal(t, Nothing{}, KindNumber.Bottom())
	assert.Equal(t, Contradiction{}, KindNumber.Top())
	assert.Equal(t, Nothing{}, KindSet.Bottom())
	assert.Equal(t, Contradiction{}, KindSet.Top())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "nothing", Format(Nothing{}))
	assert.Equal(t, "contradiction", Format(Contradiction{}))
	assert.Equal(t, "8", Format(Number(8)))
	assert.Equal(t, "2.5", Format(Number(2.5)))
	assert.Equal(t, "{1,2,3}", Format(NewSet(3, 1, 2)))
}
