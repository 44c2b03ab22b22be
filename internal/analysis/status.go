package analysis

// Status bands on the 0-100 overall score scale.
const (
	// GoodScoreMin is the minimum overall score labeled good.
	GoodScoreMin = 90
	// AverageScoreMin is the minimum overall score labeled average.
	AverageScoreMin = 50
)

// Status labels shown to users for overall scores.
const (
	StatusGood    = "Відмінно"
	StatusAverage = "Задовільно"
	StatusPoor    = "Потребує покращення"
)

// ScoreStatus maps an overall 0-100 score to its status label.
func ScoreStatus(score int) string {
	switch {
	case score >= GoodScoreMin:
		return StatusGood
	case score >= AverageScoreMin:
		return StatusAverage
	default:
		return StatusPoor
	}
}

// ScoreEmoji maps an overall 0-100 score to its status emoji.
func ScoreEmoji(score int) string {
	switch {
	case score >= GoodScoreMin:
		return "✅"
	case score >= AverageScoreMin:
		return "⚠️"
	default:
		return "❌"
	}
}

// RatingEmoji maps a metric rating to its status emoji.
func RatingEmoji(rating Rating) string {
	switch rating {
	case RatingGood:
		return "✅"
	case RatingAverage:
		return "⚠️"
	default:
		return "❌"
	}
}
