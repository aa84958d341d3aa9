package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessIconKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Milk", "milk"},
		{"whole milk 2L", "milk"},
		{"Chicken breast", "drumstick"},
		{"peanut butter", "nut"},   // specific match beats "butter"
		{"salted butter", "milk"},  // plain butter is dairy
		{"Olive Oil", "droplet"},
		{"toilet paper", "scroll-text"},
		{"strawberries", "cherry"},
		{"quantum flux capacitor", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GuessIconKey(tc.in), "name %q", tc.in)
	}
}

func TestValidIconKey(t *testing.T) {
	assert.True(t, ValidIconKey("milk"))
	assert.True(t, ValidIconKey("drumstick"))
	assert.False(t, ValidIconKey("not-an-icon"))
	assert.False(t, ValidIconKey(""))
}
