package internal

// Distance returns the Levenshtein edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// matrix[j][i] is the distance between rb[:j] and ra[:i]
	matrix := make([][]int, len(rb)+1)
	for j := range matrix {
		matrix[j] = make([]int, len(ra)+1)
		matrix[j][0] = j
	}
	for i := 0; i <= len(ra); i++ {
		matrix[0][i] = i
	}

	for j := 1; j <= len(rb); j++ {
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[j][i] = min(
				matrix[j][i-1]+1,      // insertion
				matrix[j-1][i]+1,      // deletion
				matrix[j-1][i-1]+cost, // substitution
			)
		}
	}

	return matrix[len(rb)][len(ra)]
}
