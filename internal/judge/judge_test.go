package judge

import (
	"context"
	"strings"
	"testing"
)

type staticClient struct {
	res Result
	err error
}

func (c *staticClient) Evaluate(_ context.Context, _ Input) (Result, error) {
	return c.res, c.err
}

func TestProviders_Evaluate(t *testing.T) {
	ctx := context.Background()

	p := NewProviders("groq")
	p.Register("groq", &staticClient{res: Result{Score: 0.5, Explanation: "groq"}})
	p.Register("gemini", &staticClient{res: Result{Score: 0.9, Explanation: "gemini"}})

	t.Run("empty hint falls back to default", func(t *testing.T) {
		res, err := p.Evaluate(ctx, "", Input{Metric: "faithfulness"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Explanation != "groq" {
			t.Errorf("served by %q, want default provider", res.Explanation)
		}
	})

	t.Run("hint selects the named provider", func(t *testing.T) {
		res, err := p.Evaluate(ctx, "gemini", Input{Metric: "faithfulness"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Explanation != "gemini" {
			t.Errorf("served by %q, want gemini", res.Explanation)
		}
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		_, err := p.Evaluate(ctx, "bedrock", Input{Metric: "faithfulness"})
		if err == nil || !strings.Contains(err.Error(), "bedrock") {
			t.Errorf("got %v, want error naming the unknown provider", err)
		}
	})
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantScore float64
		wantExpl  string
		wantErr   bool
	}{
		{
			name:      "bare JSON object",
			content:   `{"score": 0.85, "explanation": "mostly grounded"}`,
			wantScore: 0.85,
			wantExpl:  "mostly grounded",
		},
		{
			name:      "JSON wrapped in prose",
			content:   "Here is my verdict:\n{\"score\": 0.3, \"explanation\": \"weak coverage\"}\nThank you.",
			wantScore: 0.3,
			wantExpl:  "weak coverage",
		},
		{
			name:      "score above range is clamped",
			content:   `{"score": 1.7, "explanation": "x"}`,
			wantScore: 1,
			wantExpl:  "x",
		},
		{
			name:      "score below range is clamped",
			content:   `{"score": -0.4, "explanation": "x"}`,
			wantScore: 0,
			wantExpl:  "x",
		},
		{
			name:    "no JSON object",
			content: "the test case looks fine to me",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			content: `{"score": "high", "explanation": }`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseResult(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", res.Score, tt.wantScore)
			}
			if res.Explanation != tt.wantExpl {
				t.Errorf("explanation = %q, want %q", res.Explanation, tt.wantExpl)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	in := Input{
		Query:   "the query",
		Context: []string{"first passage", "second passage"},
		Output:  "the test case text",
	}

	tests := []struct {
		metric       string
		wantContains []string
	}{
		{"faithfulness", []string{"first passage", "second passage", "the test case text"}},
		{"relevancy", []string{"the query", "the test case text"}},
		{"hallucination", []string{"first passage", "the test case text", "Higher means worse"}},
		{"completeness", []string{"the query", "the test case text"}},
		{"pii_leakage", []string{"the test case text", "Higher\nmeans worse"}},
	}

	for _, tt := range tests {
		t.Run(tt.metric, func(t *testing.T) {
			in := in
			in.Metric = tt.metric
			prompt, err := buildPrompt(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(prompt, want) {
					t.Errorf("prompt for %s missing %q", tt.metric, want)
				}
			}
			if !strings.Contains(prompt, `{"score":`) {
				t.Errorf("prompt for %s missing the answer format instruction", tt.metric)
			}
		})
	}

	if _, err := buildPrompt(Input{Metric: "made_up_metric"}); err == nil {
		t.Error("expected error for unknown metric")
	}
}
