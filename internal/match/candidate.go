package match

import "sort"

// Candidate is a known name scored against a name that was not found.
type Candidate struct {
	Name  string
	Score float64 // Similarity in [0, 1]
}

// CandidateList is sorted by score descending, then by name for determinism.
type CandidateList []Candidate

const (
	// DefaultMinScore is the lowest similarity still worth suggesting.
	DefaultMinScore = 0.5
	// DefaultMaxSuggestions caps "did you mean" hints.
	DefaultMaxSuggestions = 3
)

// Rank scores every known name against name.
func Rank(name string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))
	for _, k := range known {
		candidates = append(candidates, Candidate{Name: k, Score: Similarity(name, k)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns the known names close enough to name, best first.
func Suggest(name string, known []string) []string {
	top := Rank(name, known).AboveThreshold(DefaultMinScore).Top(DefaultMaxSuggestions)

	res := make([]string, 0, len(top))
	for _, c := range top {
		res = append(res, c.Name)
	}

	return res
}

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold keeps candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var res CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			res = append(res, cand)
		}
	}

	return res
}
