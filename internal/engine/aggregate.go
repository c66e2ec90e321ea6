package engine

import "math"

// goodness converts a raw metric score into a higher-is-better value for
// averaging. pii_leakage is inverted (raw 1 = sensitive data present).
// hallucination keeps its raw value even though its raw convention is
// also higher-is-worse: the system this replaces averaged it un-inverted
// and downstream thresholds were tuned against that behavior.
func goodness(r MetricResult) float64 {
	if r.Kind == KindPIILeakage {
		return 1 - r.Score
	}
	return r.Score
}

// Aggregate combines the metric results for one test case into an overall
// score (mean of goodness values, rounded to 2 decimals) and its quality
// tier. An empty result set scores 0.
func Aggregate(results []MetricResult) (float64, QualityLevel) {
	if len(results) == 0 {
		return 0, QualityLow
	}

	sum := 0.0
	for _, r := range results {
		sum += goodness(r)
	}

	score := round2(sum / float64(len(results)))
	return score, Classify(score)
}

// Classify maps an overall score to a quality tier. Boundaries are
// inclusive on the lower bound of each tier.
func Classify(score float64) QualityLevel {
	switch {
	case score >= 0.8:
		return QualityHigh
	case score >= 0.5:
		return QualityMedium
	default:
		return QualityLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
