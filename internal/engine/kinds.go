package engine

import (
	"fmt"
	"strings"
)

// Kind identifies one evaluation metric. The set is closed: every request
// is resolved to these values before any evaluation work starts, so the
// rest of the engine can switch over them exhaustively.
type Kind string

const (
	KindFaithfulness  Kind = "faithfulness"
	KindRelevancy     Kind = "relevancy"
	KindHallucination Kind = "hallucination"
	KindCompleteness  Kind = "completeness"
	KindPIILeakage    Kind = "pii_leakage"
)

// aliasRelevancy is the DeepEval-style name accepted in requests.
const aliasRelevancy = "answer_relevancy"

// AllKinds returns every metric kind in canonical order. This is also the
// metric set used when a programmatic caller passes nil kinds.
func AllKinds() []Kind {
	return []Kind{
		KindFaithfulness,
		KindRelevancy,
		KindHallucination,
		KindCompleteness,
		KindPIILeakage,
	}
}

// DefaultRequestKinds is the metric set applied when an HTTP request omits
// the metrics field entirely or supplies it empty. It is deliberately
// narrower than AllKinds; the two call sites have always had different
// defaults and callers depend on both.
func DefaultRequestKinds() []Kind {
	return []Kind{KindFaithfulness, KindRelevancy}
}

// KindNames returns the accepted metric names, canonical names first in
// order, followed by aliases.
func KindNames() []string {
	names := make([]string, 0, len(AllKinds())+1)
	for _, k := range AllKinds() {
		names = append(names, string(k))
	}
	return append(names, aliasRelevancy)
}

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFaithfulness, KindRelevancy, KindHallucination, KindCompleteness, KindPIILeakage:
		return true
	}
	return false
}

// ParseKind resolves a request metric name, accepting the answer_relevancy
// alias. Unknown names are rejected with a message naming the value and
// the full valid set.
func ParseKind(name string) (Kind, error) {
	if name == aliasRelevancy {
		return KindRelevancy, nil
	}
	k := Kind(name)
	if !k.Valid() {
		return "", fmt.Errorf("unknown metric %q: valid metrics are %s", name, strings.Join(KindNames(), ", "))
	}
	return k, nil
}

// ParseKinds resolves a list of request metric names, preserving order.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, &ValidationError{Field: "metrics", Message: err.Error()}
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// KindInfo describes one metric for the read-only catalogue endpoint.
type KindInfo struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Inputs         []string `json:"inputs"`
	HigherIsBetter bool     `json:"higherIsBetter"`
}

// Catalogue returns the metric catalogue in canonical order.
func Catalogue() []KindInfo {
	return []KindInfo{
		{
			Name:           string(KindFaithfulness),
			Description:    "How well the test case is supported by the user story it was derived from.",
			Inputs:         []string{"context", "output"},
			HigherIsBetter: true,
		},
		{
			Name:           string(KindRelevancy),
			Description:    "How well the test case addresses the intent of the user story.",
			Inputs:         []string{"query", "output"},
			HigherIsBetter: true,
		},
		{
			Name:           string(KindHallucination),
			Description:    "How much of the test case is not grounded in the user story. 0 = nothing hallucinated.",
			Inputs:         []string{"context", "output"},
			HigherIsBetter: false,
		},
		{
			Name:           string(KindCompleteness),
			Description:    "How completely the test case covers the user story and its acceptance criteria.",
			Inputs:         []string{"query", "output"},
			HigherIsBetter: true,
		},
		{
			Name:           string(KindPIILeakage),
			Description:    "Whether the test case embeds personally identifiable information. 0 = no sensitive data.",
			Inputs:         []string{"output"},
			HigherIsBetter: false,
		},
	}
}
