package engine

import "testing"

func TestAggregate(t *testing.T) {
	tests := []struct {
		name        string
		results     []MetricResult
		wantScore   float64
		wantQuality QualityLevel
	}{
		{
			name: "two good metrics average high",
			results: []MetricResult{
				{Kind: KindFaithfulness, Score: 0.9},
				{Kind: KindRelevancy, Score: 0.85},
			},
			wantScore:   0.88,
			wantQuality: QualityHigh,
		},
		{
			name: "pii leakage contributes inverted",
			results: []MetricResult{
				{Kind: KindFaithfulness, Score: 0.9},
				{Kind: KindPIILeakage, Score: 0.5},
			},
			wantScore:   0.7,
			wantQuality: QualityMedium,
		},
		{
			name: "failed metric drags the score down",
			results: []MetricResult{
				{Kind: KindFaithfulness, Score: 0},
				{Kind: KindRelevancy, Score: 0.9},
			},
			wantScore:   0.45,
			wantQuality: QualityLow,
		},
		{
			name: "hallucination is averaged raw, not inverted",
			// Raw convention is higher-is-worse, so a 0.9 hallucination
			// score would become 0.1 goodness if it were inverted like
			// pii_leakage. The engine preserves the un-inverted behavior
			// of the system it replaces.
			results: []MetricResult{
				{Kind: KindHallucination, Score: 0.9},
			},
			wantScore:   0.9,
			wantQuality: QualityHigh,
		},
		{
			name:        "no metrics scores zero",
			results:     nil,
			wantScore:   0,
			wantQuality: QualityLow,
		},
		{
			name: "mean is rounded to two decimals",
			results: []MetricResult{
				{Kind: KindFaithfulness, Score: 1},
				{Kind: KindRelevancy, Score: 1},
				{Kind: KindCompleteness, Score: 0},
			},
			wantScore:   0.67,
			wantQuality: QualityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, quality := Aggregate(tt.results)
			if score != tt.wantScore {
				t.Errorf("Aggregate() score = %v, want %v", score, tt.wantScore)
			}
			if quality != tt.wantQuality {
				t.Errorf("Aggregate() quality = %v, want %v", quality, tt.wantQuality)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  QualityLevel
	}{
		{1.0, QualityHigh},
		{0.81, QualityHigh},
		{0.8, QualityHigh}, // lower bound is inclusive
		{0.79, QualityMedium},
		{0.5, QualityMedium}, // lower bound is inclusive
		{0.49, QualityLow},
		{0, QualityLow},
	}

	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
