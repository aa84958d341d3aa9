package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPositions(t *testing.T) {
	// Empty list: max is -1, first batch starts at zero.
	assert.Equal(t, []int{0, 1, 2}, NextPositions(-1, 3))

	// Appending after existing entries continues from the maximum.
	assert.Equal(t, []int{3, 4}, NextPositions(2, 2))

	// Gaps in existing positions are irrelevant; only the max matters.
	assert.Equal(t, []int{11}, NextPositions(10, 1))

	assert.Nil(t, NextPositions(5, 0))
	assert.Nil(t, NextPositions(5, -1))
}
