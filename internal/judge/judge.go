package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultProvider is the judge backend used when a request carries no
// provider hint.
const DefaultProvider = "groq"

// Input is the bundle of text handed to a judge for one metric. Which
// fields are populated depends on the metric: some judge the output
// against source context, some against a synthesized query, and some look
// at the output alone.
type Input struct {
	Metric  string
	Query   string
	Context []string
	Output  string
}

// Result is a judge verdict: a score in [0,1] and the judge's rationale.
type Result struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Client scores a single metric input.
type Client interface {
	Evaluate(ctx context.Context, in Input) (Result, error)
}

// Registry resolves a per-call provider hint to a concrete judge client.
type Registry interface {
	Evaluate(ctx context.Context, provider string, in Input) (Result, error)
}

// Providers is a Registry backed by a name-to-client map.
type Providers struct {
	clients map[string]Client
	def     string
}

// NewProviders creates an empty registry. Calls with an empty provider
// hint fall back to def; an empty def falls back to DefaultProvider.
func NewProviders(def string) *Providers {
	if def == "" {
		def = DefaultProvider
	}
	return &Providers{clients: make(map[string]Client), def: def}
}

// Register adds a client under the given provider name.
func (p *Providers) Register(name string, c Client) {
	p.clients[name] = c
}

// Names returns the registered provider names, unordered.
func (p *Providers) Names() []string {
	names := make([]string, 0, len(p.clients))
	for name := range p.clients {
		names = append(names, name)
	}
	return names
}

// Evaluate dispatches to the client registered under the provider hint.
func (p *Providers) Evaluate(ctx context.Context, provider string, in Input) (Result, error) {
	name := provider
	if name == "" {
		name = p.def
	}
	c, ok := p.clients[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown judge provider %q", name)
	}
	return c.Evaluate(ctx, in)
}

// parseResult extracts a Result from raw judge model output. Judges are
// instructed to answer with a bare JSON object, but models occasionally
// wrap it in prose, so everything outside the outermost braces is ignored.
func parseResult(content string) (Result, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return Result{}, fmt.Errorf("no JSON object in judge response: %q", content)
	}

	var res Result
	if err := json.Unmarshal([]byte(content[start:end+1]), &res); err != nil {
		return Result{}, fmt.Errorf("malformed judge response: %w", err)
	}

	res.Score = clamp01(res.Score)
	return res, nil
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
