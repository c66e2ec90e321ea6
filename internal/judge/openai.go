package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/azure"
	"github.com/openai/openai-go/v2/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/flowqa/caseval/internal/judge"

const groqBaseURL = "https://api.groq.com/openai/v1"

const systemPrompt = "You are a strict, deterministic evaluation judge. Follow the scoring instructions exactly and respond only in the requested JSON format."

// ChatJudge is a judge backed by any OpenAI-compatible chat completion
// API. Groq and Azure OpenAI are served through the same client with a
// different base URL.
type ChatJudge struct {
	cli      openai.Client
	model    string
	provider string
}

// NewOpenAI creates a judge talking to api.openai.com. The API key is
// taken from the OPENAI_API_KEY environment variable by the client.
func NewOpenAI(model string) *ChatJudge {
	return &ChatJudge{
		cli:      openai.NewClient(),
		model:    model,
		provider: "openai",
	}
}

// NewGroq creates a judge talking to Groq's OpenAI-compatible endpoint.
func NewGroq(apiKey, model string) *ChatJudge {
	return &ChatJudge{
		cli: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(groqBaseURL),
		),
		model:    model,
		provider: "groq",
	}
}

// NewAzure creates a judge talking to an Azure OpenAI deployment.
func NewAzure(apiKey, endpoint, deployment, apiVersion string) *ChatJudge {
	return &ChatJudge{
		cli: openai.NewClient(
			azure.WithEndpoint(endpoint, apiVersion),
			azure.WithAPIKey(apiKey),
		),
		model:    deployment,
		provider: "azure",
	}
}

// Evaluate implements Client.
func (j *ChatJudge) Evaluate(ctx context.Context, in Input) (Result, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "Judge.Evaluate",
		trace.WithAttributes(
			attribute.String("judge.provider", j.provider),
			attribute.String("judge.model", j.model),
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

	resp, err := j.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(j.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion failed")
		return Result{}, fmt.Errorf("%s judge call failed: %w", j.provider, err)
	}

	if len(resp.Choices) == 0 {
		err := errors.New("empty response from judge model")
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty response")
		return Result{}, err
	}

	res, err := parseResult(resp.Choices[0].Message.Content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable response")
		return Result{}, err
	}

	span.SetAttributes(attribute.Float64("judge.score", res.Score))
	return res, nil
}

var _ Client = (*ChatJudge)(nil)
