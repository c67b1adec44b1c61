package match

import (
	"sort"
)

// Candidate is a known name ranked against a misspelled one.
type Candidate struct {
	Name string

	// Distance is the edit distance between the raw names.
	Distance int
	// Score is the similarity of the folded names (0-1, higher is better).
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates ranks names by similarity to target.
// Returns candidates sorted by score (descending).
func RankCandidates(target string, names []string) CandidateList {
	candidates := make(CandidateList, 0, len(names))

	for _, name := range names {
		if name == target {
			continue
		}

		candidates = append(candidates, Candidate{
			Name:     name,
			Distance: Distance(name, target),
			Score:    Similarity(name, target),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the names within maxDistance edits of target, best first.
// Names that only differ from target by case or separators always qualify.
func Suggest(target string, names []string, maxDistance int) []string {
	var out []string

	for _, c := range RankCandidates(target, names) {
		if c.Distance <= maxDistance || c.Score == 1 {
			out = append(out, c.Name)
		}
	}

	return out
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by distance, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	if c[i].Distance != c[j].Distance {
		return c[i].Distance < c[j].Distance
	}

	return c[i].Name < c[j].Name
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// Names returns the candidate names in rank order.
func (c CandidateList) Names() []string {
	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Name
	}
	return names
}
