package judge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel       = "llama-3.3-70b-versatile"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-2.5-flash"
)

// FromEnv builds a provider registry from environment variables. Every
// provider with credentials present is registered; the LLM_PROVIDER
// variable (default "groq") picks which one serves calls without an
// explicit hint, and its credentials are mandatory.
//
// Recognized variables:
//
//	LLM_PROVIDER                    default provider: groq, openai, azure or gemini
//	EVAL_MODEL                      judge model name (providers fall back to their own default)
//	GROQ_API_KEY                    enables the groq provider
//	OPENAI_API_KEY                  enables the openai provider
//	AZURE_OPENAI_API_KEY            enables the azure provider, with
//	AZURE_OPENAI_API_ENDPOINT       the deployment endpoint,
//	AZURE_OPENAI_DEPLOYMENT_NAME    the deployment name, and
//	AZURE_OPENAI_API_VERSION        the API version (optional)
//	GEMINI_API_KEY                  enables the gemini provider
func FromEnv(ctx context.Context) (*Providers, error) {
	def := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if def == "" {
		def = DefaultProvider
	}

	model := os.Getenv("EVAL_MODEL")
	providers := NewProviders(def)

	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		providers.Register("groq", NewGroq(key, orDefault(model, defaultModel)))
	}

	if os.Getenv("OPENAI_API_KEY") != "" {
		// EVAL_MODEL is shared across providers; ignore it here unless it
		// actually names a GPT model.
		openaiModel := defaultOpenAIModel
		if strings.HasPrefix(model, "gpt-") {
			openaiModel = model
		}
		providers.Register("openai", NewOpenAI(openaiModel))
	}

	if key := os.Getenv("AZURE_OPENAI_API_KEY"); key != "" {
		endpoint := os.Getenv("AZURE_OPENAI_API_ENDPOINT")
		deployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")
		if endpoint == "" || deployment == "" {
			return nil, fmt.Errorf("azure judge requires AZURE_OPENAI_API_ENDPOINT and AZURE_OPENAI_DEPLOYMENT_NAME")
		}
		apiVersion := orDefault(os.Getenv("AZURE_OPENAI_API_VERSION"), "2024-02-15-preview")
		providers.Register("azure", NewAzure(key, endpoint, deployment, apiVersion))
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		providers.Register("gemini", NewGemini(client, orDefault(model, defaultGeminiModel)))
	}

	if _, ok := providers.clients[def]; !ok {
		return nil, fmt.Errorf("default judge provider %q has no credentials configured", def)
	}

	slog.Info("Judge providers configured", "providers", providers.Names(), "default", def)
	return providers, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
