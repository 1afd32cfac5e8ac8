// internal/game/summary.go
//
// End-of-round result: score, accuracy percentage and rating bucket.

package game

import "math"

// Rating buckets the accuracy the way the game-over screen does.
type Rating string

const (
	RatingPerfect        Rating = "perfect"
	RatingExcellent      Rating = "excellent"
	RatingGood           Rating = "good"
	RatingKeepPracticing Rating = "keep_practicing"
)

// Summary is the end-of-round result.
type Summary struct {
	Score           int    `json:"score"`
	TotalPairs      int    `json:"totalPairs"`
	AccuracyPercent int    `json:"accuracyPercent"`
	Rating          Rating `json:"rating"`
}

// Accuracy is round(score / total * 100), or 0 for an empty round.
func Accuracy(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// RateAccuracy maps a percentage to a Rating.
func RateAccuracy(pct int) Rating {
	switch {
	case pct >= 100:
		return RatingPerfect
	case pct >= 80:
		return RatingExcellent
	case pct >= 60:
		return RatingGood
	default:
		return RatingKeepPracticing
	}
}

// Summary returns the result of the last round; ok is false until a round has ended.
func (s *Session) Summary() (Summary, bool) {
	if s.phase != PhaseEnded || s.round == nil {
		return Summary{}, false
	}
	score, total := s.Score(), s.TotalPairs()
	pct := Accuracy(score, total)
	return Summary{
		Score:           score,
		TotalPairs:      total,
		AccuracyPercent: pct,
		Rating:          RateAccuracy(pct),
	}, true
}
