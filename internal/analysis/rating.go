// Package analysis defines the result types of a page-speed analysis run
// and the rating thresholds applied to raw Lighthouse scores.
package analysis

// Rating is the qualitative label derived from a normalized score.
type Rating string

const (
	// RatingGood marks scores at or above GoodScoreThreshold.
	RatingGood Rating = "good"
	// RatingAverage marks scores between AverageScoreThreshold and GoodScoreThreshold.
	RatingAverage Rating = "average"
	// RatingPoor marks scores below AverageScoreThreshold.
	RatingPoor Rating = "poor"
	// RatingNotAvailable marks audits that carry no score at all.
	RatingNotAvailable Rating = "not_available"
)

// Score thresholds on the normalized [0,1] Lighthouse scale.
const (
	// GoodScoreThreshold is the minimum score rated good.
	GoodScoreThreshold = 0.9
	// AverageScoreThreshold is the minimum score rated average.
	AverageScoreThreshold = 0.5
)

// Rate maps a normalized score to its rating. A nil score is a defined
// case, not an error; callers may substitute a display-mode label.
func Rate(score *float64) Rating {
	if score == nil {
		return RatingNotAvailable
	}

	switch {
	case *score >= GoodScoreThreshold:
		return RatingGood
	case *score >= AverageScoreThreshold:
		return RatingAverage
	default:
		return RatingPoor
	}
}
