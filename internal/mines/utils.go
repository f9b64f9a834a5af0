package mines

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// chebyshev is the king-move distance between two points.
func chebyshev(a, b Point) int {
	return max(absDiff(a.Row, b.Row), absDiff(a.Col, b.Col))
}
