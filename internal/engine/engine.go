// Package engine evaluates machine-generated QA test cases against the
// user story they were derived from, using an external LLM judge for each
// requested metric and aggregating the verdicts into per-test-case
// quality classifications and a batch summary.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/flowqa/caseval/internal/judge"
)

// defaultMaxInFlight bounds concurrent judge calls. A batch issues one
// leaf call per (test case, metric) pair; without a bound a large batch
// becomes unbounded fan-out against the judge provider.
const defaultMaxInFlight = 8

// Engine fans evaluation work out to the judge and folds the verdicts
// back into per-test-case evaluations and a batch summary. It holds no
// state across batches.
type Engine struct {
	judges judge.Registry
	sem    *semaphore.Weighted
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxInFlight bounds the number of concurrent judge calls across the
// whole batch. Values below 1 are ignored.
func WithMaxInFlight(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// New creates an Engine that dispatches judge calls through the given
// registry.
func New(judges judge.Registry, opts ...Option) *Engine {
	e := &Engine{
		judges: judges,
		sem:    semaphore.NewWeighted(defaultMaxInFlight),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateBatch evaluates every requested metric for every test case and
// computes the batch summary. Test cases and metrics fan out concurrently;
// results are joined by test case index and metric kind, never by
// completion order. A nil kinds slice selects all metrics; HTTP callers
// that omit the metrics field use DefaultRequestKinds instead.
//
// Individual judge failures degrade the affected metric to a zero score
// and never abort sibling metrics or sibling test cases. The returned
// error is non-nil only for invalid requests.
func (e *Engine) EvaluateBatch(ctx context.Context, story UserStory, cases []TestCase, kinds []Kind, provider string) (*Report, error) {
	if err := ValidateRequest(story, cases); err != nil {
		return nil, err
	}

	if kinds == nil {
		kinds = AllKinds()
	}
	for _, k := range kinds {
		if !k.Valid() {
			return nil, &ValidationError{Field: "metrics", Message: fmt.Sprintf("unknown metric %q", string(k))}
		}
	}

	slog.InfoContext(ctx, "Starting evaluation batch",
		"test_cases", len(cases),
		"metrics", len(kinds),
		"provider", provider)

	evaluations := make([]TestCaseEvaluation, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	for i, tc := range cases {
		g.Go(func() error {
			evaluations[i] = e.evaluateCase(ctx, tc, story, kinds, provider)
			return nil
		})
	}
	// Leaf evaluations never fail the group; Wait only joins.
	_ = g.Wait()

	summary := summarize(evaluations)

	slog.InfoContext(ctx, "Evaluation batch completed",
		"test_cases", len(cases),
		"average_score", summary.AverageScore,
		"high", summary.HighQualityCount,
		"medium", summary.MediumQualityCount,
		"low", summary.LowQualityCount)

	return &Report{Evaluations: evaluations, Summary: summary}, nil
}

// evaluateCase runs every requested metric for one test case concurrently
// and aggregates the results into a verdict.
func (e *Engine) evaluateCase(ctx context.Context, tc TestCase, story UserStory, kinds []Kind, provider string) TestCaseEvaluation {
	results := make([]MetricResult, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			if err := e.sem.Acquire(ctx, 1); err != nil {
				// The batch context was cancelled while queued; record the
				// failure like any other judge failure.
				results[i] = MetricResult{
					Kind:        kind,
					Score:       0,
					Explanation: fmt.Sprintf("Evaluation failed: %v", err),
				}
				return nil
			}
			defer e.sem.Release(1)

			results[i] = e.evaluateMetric(ctx, tc, story, kind, provider)
			return nil
		})
	}
	_ = g.Wait()

	metrics := make(map[Kind]MetricResult, len(results))
	for _, r := range results {
		metrics[r.Kind] = r
	}

	overall, quality := Aggregate(results)

	return TestCaseEvaluation{
		TestCaseID:   tc.ID,
		TestCaseName: tc.Name,
		OverallScore: overall,
		QualityLevel: quality,
		Metrics:      metrics,
		Suggestions:  Suggest(metrics, quality),
	}
}

// summarize computes the batch summary: average of overall scores rounded
// to 2 decimals plus a count per quality tier. The counts always sum to
// the number of evaluations.
func summarize(evaluations []TestCaseEvaluation) Summary {
	var s Summary
	if len(evaluations) == 0 {
		return s
	}

	sum := 0.0
	for _, ev := range evaluations {
		sum += ev.OverallScore
		switch ev.QualityLevel {
		case QualityHigh:
			s.HighQualityCount++
		case QualityMedium:
			s.MediumQualityCount++
		default:
			s.LowQualityCount++
		}
	}

	s.AverageScore = round2(sum / float64(len(evaluations)))
	return s
}
