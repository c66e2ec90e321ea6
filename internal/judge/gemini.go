package judge

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// GeminiJudge is a judge backed by the Gemini API. Verdicts are requested
// as structured JSON via a response schema, so no brace-hunting is needed
// on the reply.
type GeminiJudge struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini-backed judge.
func NewGemini(client *genai.Client, modelName string) *GeminiJudge {
	return &GeminiJudge{client: client, modelName: modelName}
}

var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":       {Type: genai.TypeNumber},
		"explanation": {Type: genai.TypeString},
	},
	Required: []string{"score", "explanation"},
}

// Evaluate implements Client.
func (j *GeminiJudge) Evaluate(ctx context.Context, in Input) (Result, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "Judge.Evaluate",
		trace.WithAttributes(
			attribute.String("judge.provider", "gemini"),
			attribute.String("judge.model", j.modelName),
			attribute.String("judge.metric", in.Metric),
		),
	)
	defer span.End()

	prompt, err := buildPrompt(in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prompt construction failed")
		return Result{}, err
	}

	content := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}

	resp, err := j.client.Models.GenerateContent(ctx, j.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   verdictSchema,
		},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return Result{}, fmt.Errorf("gemini judge call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		err := errors.New("empty response from judge model")
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty response")
		return Result{}, err
	}

	res, err := parseResult(resp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable response")
		return Result{}, err
	}

	span.SetAttributes(attribute.Float64("judge.score", res.Score))
	return res, nil
}

var _ Client = (*GeminiJudge)(nil)
