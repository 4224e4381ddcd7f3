// Package scoring holds the pure scoring and grouping functions shared by
// the submission path and the aggregation engine.
package scoring

import "math"

const (
	// DefaultLLMScore is assumed when the caller has no LLM accuracy score,
	// which is the case on the live submission path.
	DefaultLLMScore = 10.0

	difficultyDiscount = 0.55
)

// GenerationScore returns the 0-100 generation score for a prompt difficulty
// and an audio quality score, with the LLM score fixed at DefaultLLMScore.
// Legacy rows without a captured score are recomputed with this same function.
func GenerationScore(difficulty int, audioScore float64) float64 {
	return GenerationScoreWithLLM(difficulty, audioScore, DefaultLLMScore)
}

// GenerationScoreWithLLM is the full formula:
//
//	base     = ((audio + llm) / 20) * 100
//	discount = (difficulty - 1) * 0.55
//	score    = max(0, base - discount)
func GenerationScoreWithLLM(difficulty int, audioScore, llmScore float64) float64 {
	base := ((audioScore + llmScore) / 20) * 100
	discount := float64(difficulty-1) * difficultyDiscount
	return math.Max(0, base-discount)
}

// Round rounds a score to the nearest integer for storage or display.
func Round(score float64) int {
	return int(math.Round(score))
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// CeilInt is the dashboard display rule for generation scores.
func CeilInt(v float64) int {
	return int(math.Ceil(v))
}

// CeilTenth is the dashboard display rule for 1-10 averages.
func CeilTenth(v float64) float64 {
	return math.Ceil(v*10) / 10
}

// ClampBucket rounds a score and clamps it into the 1-10 histogram range.
func ClampBucket(v float64) int {
	b := int(math.Round(v))
	if b < 1 {
		return 1
	}
	if b > 10 {
		return 10
	}
	return b
}
