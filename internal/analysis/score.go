package analysis

import "math"

// Score color bands used by the frontend badge rendering.
const (
	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorInfo    = "info"
	ColorDanger  = "danger"
)

// DifficultyScore rates how hard a keyword is to rank for, 0-100.
// Competition is banded on the marketplace results count; sustained search
// interest nudges the score up by at most 20 points.
func DifficultyScore(resultsCount int, interest []float64) float64 {
	var competition float64
	switch {
	case resultsCount <= 0:
		competition = 0
	case resultsCount < 1000:
		competition = 10
	case resultsCount < 10000:
		competition = 30
	case resultsCount < 50000:
		competition = 60
	case resultsCount < 100000:
		competition = 80
	default:
		competition = 100
	}

	var interestFactor float64
	if len(interest) > 0 {
		var sum float64
		for _, v := range interest {
			sum += v
		}
		avg := sum / float64(len(interest))
		interestFactor = math.Min(avg/100*20, 20)
	}

	return round2(math.Min(competition+interestFactor, 100))
}

// ProfitabilityScore rates a keyword's earning potential, 0-100. Weighted
// blend: 40% inverted difficulty, 40% search interest, 20% price positioning.
// An unknown price (zero) scores the neutral midpoint.
func ProfitabilityScore(difficulty, avgInterest, avgPrice float64) float64 {
	difficultyFactor := 100 - clamp(difficulty, 0, 100)
	interestFactor := math.Min(math.Max(avgInterest, 0), 100)

	var priceFactor float64
	switch {
	case avgPrice == 0:
		priceFactor = 50
	case avgPrice >= 10 && avgPrice <= 30:
		priceFactor = 100
	case avgPrice >= 5 && avgPrice < 10:
		priceFactor = 80
	case avgPrice > 30 && avgPrice <= 50:
		priceFactor = 70
	case avgPrice < 5:
		priceFactor = 40
	default:
		priceFactor = 30
	}

	score := difficultyFactor*0.4 + interestFactor*0.4 + priceFactor*0.2
	return round2(clamp(score, 0, 100))
}

// ScoreColor maps a score to its badge color.
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return ColorSuccess
	case score >= 60:
		return ColorWarning
	case score >= 40:
		return ColorInfo
	default:
		return ColorDanger
	}
}

// CompetitionLevel describes a results count in human terms.
func CompetitionLevel(resultsCount int) string {
	switch {
	case resultsCount <= 0:
		return "No competition"
	case resultsCount < 1000:
		return "Low competition"
	case resultsCount < 10000:
		return "Medium competition"
	case resultsCount < 50000:
		return "High competition"
	default:
		return "Very high competition"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
