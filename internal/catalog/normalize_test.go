package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Flour", "flour"},
		{"trims", "  flour  ", "flour"},
		{"collapses inner whitespace", "olive \t oil", "olive oil"},
		{"strips diacritics", "Jalapeño", "jalapeno"},
		{"strips diacritics combined", "crème fraîche", "creme fraiche"},
		{"empty", "   ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeName(tc.in))
		})
	}
}

func TestNormalizeNameCollision(t *testing.T) {
	// Variants of the same item must share one dedup key.
	variants := []string{"Flour", "flour", " FLOUR ", "flour "}
	for _, v := range variants {
		assert.Equal(t, "flour", NormalizeName(v), "variant %q", v)
	}
}
