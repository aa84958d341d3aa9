package list

// NextPositions returns the positions to assign to n items appended after
// the current maximum position. An empty collection has max -1, so the
// first batch gets 0, 1, 2, ...
func NextPositions(max, n int) []int {
	if n <= 0 {
		return nil
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = max + 1 + i
	}
	return positions
}
