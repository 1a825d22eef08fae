package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "DUNE", "dune"},
		{"strips diacritics", "Café Müller", "cafe muller"},
		{"strips punctuation", "Dune: Messiah!", "dune messiah"},
		{"keeps digits and underscores", "Fahrenheit_451", "fahrenheit_451"},
		{"trims whitespace", "  dune  ", "dune"},
		{"keeps inner whitespace", "frank herbert", "frank herbert"},
		{"empty input", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}

func TestFoldEquivalence(t *testing.T) {
	// The dedup key depends on these folding to the same value.
	assert.Equal(t, Fold("DÜNE"), Fold("dune"))
	assert.Equal(t, Fold("Frank Herbert"), Fold("frank herbert"))
	assert.NotEqual(t, Fold("Dune"), Fold("Dune Messiah"))
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"passes words", "spice must flow", "spice must flow"},
		{"keeps accents", "café olé", "café olé"},
		{"keeps case", "Spice", "Spice"},
		{"strips sql-ish noise", "spice'; DROP--", "spice DROP"},
		{"strips ts_query operators", "spice & flow | !sand", "spice  flow  sand"},
		{"empty after stripping", "&|!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeQuery(tt.input))
		})
	}
}
