// Package judgetest provides a scripted judge registry for tests.
package judgetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/flowqa/caseval/internal/judge"
)

// Call records one judge invocation.
type Call struct {
	Provider string
	Input    judge.Input
}

// Stub implements judge.Registry with canned verdicts. Results are keyed
// by metric name; Errs wins over Results for a metric; Func, when set,
// overrides both and decides per call. Every invocation is recorded.
type Stub struct {
	mu      sync.Mutex
	Results map[string]judge.Result
	Errs    map[string]error
	Func    func(provider string, in judge.Input) (judge.Result, error)

	calls []Call
}

// Evaluate implements judge.Registry.
func (s *Stub) Evaluate(_ context.Context, provider string, in judge.Input) (judge.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Provider: provider, Input: in})
	s.mu.Unlock()

	if s.Func != nil {
		return s.Func(provider, in)
	}
	if err, ok := s.Errs[in.Metric]; ok {
		return judge.Result{}, err
	}
	if res, ok := s.Results[in.Metric]; ok {
		return res, nil
	}
	return judge.Result{}, fmt.Errorf("no scripted result for metric %q", in.Metric)
}

// Calls returns a copy of all recorded invocations in arrival order.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

var _ judge.Registry = (*Stub)(nil)
