package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"number", Number(8), KindNumber},
		{"fractional number", Number(2.5), KindNumber},
		{"negative number", Number(-3), KindNumber},
		{"nothing", Nothing{}, KindNumber},
		{"contradiction", Contradiction{}, KindSet},
		{"set", NewSet(1, 2, 3), KindSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalCanonical(tt.v)
			require.NoError(t, err)

			got, err := ParseValue(data, tt.kind)
			require.NoError(t, err)
			assert.True(t, tt.kind.Equal(tt.v, got),
				"want %s, got %s", Format(tt.v), Format(got))
		})
	}
}

func TestParseValue_KindMismatch(t *testing.T) {
	_, err := ParseValue([]byte("3"), KindSet)
	assert.Error(t, err)

	_, err = ParseValue([]byte("[1,2]"), KindNumber)
	assert.Error(t, err)
}

func TestParseValue_Malformed(t *testing.T) {
	_, err := ParseValue([]byte(`"wat"`), KindNumber)
	assert.Error(t, err, "unknown symbol")

	_, err = ParseValue([]byte(`{`), KindNumber)
	assert.Error(t, err)

	_, err = ParseValue([]byte(`[1, "x"]`), KindSet)
	assert.Error(t, err, "non-integer set element")
}
