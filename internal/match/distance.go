package match

// Distance returns the Levenshtein distance between a and b counted in
// runes: the fewest single-rune insertions, deletions and substitutions
// turning one into the other.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// two rows of the edit matrix, indexed by the shorter string
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity scores a against b between 0 and 1 after folding both. 1 means
// the names only differ by case or separators.
func Similarity(a, b string) float64 {
	fa, fb := []rune(Fold(a)), []rune(Fold(b))

	longest := max(len(fa), len(fb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(string(fa), string(fb)))/float64(longest)
}
