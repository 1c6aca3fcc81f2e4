package suggest

import (
	"fmt"
	"sort"
)

// Candidate is a ranked completion: a full word and the number of times
// it was seen during training.
type Candidate struct {
	Word       string
	Confidence int
}

func (c Candidate) String() string {
	return fmt.Sprintf("Candidate(word='%s', confidence=%d)", c.Word, c.Confidence)
}

// SortCandidates orders by confidence (highest first), then word
func SortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].Word < candidates[j].Word
	})
}
