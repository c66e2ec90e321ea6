package engine

// UserStory is the requirement the test cases under evaluation were
// derived from. It is read-only input, immutable for the duration of a
// batch.
type UserStory struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	AcceptanceCriteria string `json:"acceptanceCriteria,omitempty"`
}

// Step is one step of a test case.
type Step struct {
	Step           string `json:"step"`
	ExpectedResult string `json:"expectedResult"`
	TestData       string `json:"testData,omitempty"`
}

// TestCase is one machine-generated QA test case. IDs are unique within a
// batch request.
type TestCase struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
}

// MetricResult is the judge verdict for one (test case, metric) pair.
// Score is always in [0,1]; judge failures are folded into a zero score
// with an explanation describing the failure, never a missing result.
type MetricResult struct {
	Kind        Kind    `json:"kind"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// QualityLevel is the three-tier classification derived from a test
// case's overall score.
type QualityLevel string

const (
	QualityHigh   QualityLevel = "high"
	QualityMedium QualityLevel = "medium"
	QualityLow    QualityLevel = "low"
)

// TestCaseEvaluation is the verdict for one test case: the per-metric
// results, the aggregate score and tier, and remediation suggestions when
// the tier is not high.
type TestCaseEvaluation struct {
	TestCaseID   string                `json:"testCaseId"`
	TestCaseName string                `json:"testCaseName"`
	OverallScore float64               `json:"overallScore"`
	QualityLevel QualityLevel          `json:"qualityLevel"`
	Metrics      map[Kind]MetricResult `json:"metrics"`
	Suggestions  []string              `json:"suggestions,omitempty"`
}

// Summary aggregates one batch. The three counts always sum to the number
// of test cases evaluated.
type Summary struct {
	AverageScore       float64 `json:"averageScore"`
	HighQualityCount   int     `json:"highQualityCount"`
	MediumQualityCount int     `json:"mediumQualityCount"`
	LowQualityCount    int     `json:"lowQualityCount"`
}

// Report is the full result of one batch evaluation.
type Report struct {
	Evaluations []TestCaseEvaluation `json:"evaluations"`
	Summary     Summary              `json:"summary"`
}
