package internal

import (
	"math"
	"sort"
	"strings"
)

// Scoring weights for FindDuplicates. The sum is not normalized; a single strong
// signal is enough to cross DuplicateThreshold.
const (
	DuplicateThreshold = 0.6

	scoreSameName      = 0.8
	scoreSimilarName   = 0.6
	scoreSameProvider  = 0.7
	scoreSameCategory  = 0.3
	scoreSimilarPrice  = 0.4
	maxSimilarNameDist = 2
	priceTolerance     = 0.1
)

// DuplicateMatch is an existing subscription that resembles a candidate
type DuplicateMatch struct {
	Subscription Subscription `json:"subscription"`
	Similarity   float64      `json:"similarity"`
	Reason       string       `json:"reason"`
}

// FindDuplicates scores every existing subscription against candidate and returns
// those at or above DuplicateThreshold, highest score first. Ties keep the order of
// existing.
func FindDuplicates(candidate Subscription, existing []Subscription) []DuplicateMatch {
	candName := strings.ToLower(candidate.Name)
	candProvider := strings.ToLower(candidate.Provider)

	var matches []DuplicateMatch
	for _, sub := range existing {
		var score float64
		var reasons []string

		name := strings.ToLower(sub.Name)
		if name == candName {
			score += scoreSameName
			reasons = append(reasons, "Same name")
		}

		// distance 0 was already counted as an exact match
		if d := Distance(name, candName); d > 0 && d <= maxSimilarNameDist {
			score += scoreSimilarName
			reasons = append(reasons, "Similar name")
		}

		if strings.ToLower(sub.Provider) == candProvider {
			score += scoreSameProvider
			reasons = append(reasons, "Same provider")
		}

		// category alone adds to the score but does not produce a reason
		if sub.Category == candidate.Category {
			score += scoreSameCategory
			if math.Abs(sub.Amount-candidate.Amount) < sub.Amount*priceTolerance {
				score += scoreSimilarPrice
				reasons = append(reasons, "Same category and similar price")
			}
		}

		if score >= DuplicateThreshold {
			matches = append(matches, DuplicateMatch{
				Subscription: sub,
				Similarity:   score,
				Reason:       strings.Join(reasons, ", "),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	return matches
}
