package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/flowqa/caseval/internal/judge"
)

// storyContext renders the user story as the single context block handed
// to context-driven metrics.
func storyContext(story UserStory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", story.Title)
	fmt.Fprintf(&b, "Description: %s", story.Description)
	if story.AcceptanceCriteria != "" {
		fmt.Fprintf(&b, "\nAcceptance Criteria: %s", story.AcceptanceCriteria)
	}
	return b.String()
}

// formatTestCase renders a test case as the text under evaluation: name,
// description and the ordered steps with expected results and test data.
func formatTestCase(tc TestCase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Test Case: %s\n", tc.Name)
	fmt.Fprintf(&b, "Description: %s\n", tc.Description)
	b.WriteString("Steps:")
	for i, s := range tc.Steps {
		fmt.Fprintf(&b, "\n%d. %s\n   Expected: %s", i+1, s.Step, s.ExpectedResult)
		if s.TestData != "" {
			fmt.Fprintf(&b, "\n   Test Data: %s", s.TestData)
		}
	}
	return b.String()
}

// buildInput assembles the judge input for one metric. Each metric looks
// at a different slice of the data: faithfulness and hallucination judge
// the test case against the story as context, relevancy and completeness
// judge it against a synthesized query, and pii_leakage sees the test
// case text alone.
func buildInput(kind Kind, tc TestCase, story UserStory) judge.Input {
	output := formatTestCase(tc)

	switch kind {
	case KindFaithfulness, KindHallucination:
		return judge.Input{
			Metric:  string(kind),
			Context: []string{storyContext(story)},
			Output:  output,
		}
	case KindRelevancy:
		return judge.Input{
			Metric: string(kind),
			Query:  fmt.Sprintf("Generate test cases for: %s. %s", story.Title, story.Description),
			Output: output,
		}
	case KindCompleteness:
		return judge.Input{
			Metric: string(kind),
			Query: fmt.Sprintf("Does this test case completely cover the following user story and its acceptance criteria?\n\n%s",
				storyContext(story)),
			Output: output,
		}
	default: // KindPIILeakage
		return judge.Input{
			Metric: string(kind),
			Output: output,
		}
	}
}

// evaluateMetric scores one metric for one test case. It never returns an
// error: any judge failure is folded into a zero score with the cause in
// the explanation, so one broken metric cannot abort its siblings.
func (e *Engine) evaluateMetric(ctx context.Context, tc TestCase, story UserStory, kind Kind, provider string) MetricResult {
	res, err := e.judges.Evaluate(ctx, provider, buildInput(kind, tc, story))
	if err != nil {
		return MetricResult{
			Kind:        kind,
			Score:       0,
			Explanation: fmt.Sprintf("Evaluation failed: %v", err),
		}
	}

	return MetricResult{
		Kind:        kind,
		Score:       clamp01(res.Score),
		Explanation: res.Explanation,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
