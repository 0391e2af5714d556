package genclient

import (
	"context"
	"fmt"
	"time"

	"ai-fitness-coach/internal/config"
	"ai-fitness-coach/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const structuredMIMEType = "application/json"

// GeminiClient is the SDK-backed structured generator. Every call constrains
// the response to an explicit output schema so the payload either parses as
// the requested shape or is rejected by the caller's validation.
type GeminiClient struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiClient creates a new Gemini API client for structured generation.
func NewGeminiClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  cfg.TextModel,
		log:    log.With().Str("component", "genclient").Logger(),
	}, nil
}

// GenerateJSON sends a prompt together with an output schema and returns the
// raw JSON text of the first candidate.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (StructuredResponse, error) {
	start := time.Now()

	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = structuredMIMEType
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return StructuredResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return StructuredResponse{}, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return StructuredResponse{}, fmt.Errorf("generated content is not text")
	}

	meta := shared.CallMeta{
		Component: "structured",
		Latency:   time.Since(start),
		Usage:     shared.TokenUsage{Model: c.model},
	}
	if u := resp.UsageMetadata; u != nil {
		meta.Usage.PromptTokens = int(u.PromptTokenCount)
		meta.Usage.CompletionTokens = int(u.CandidatesTokenCount)
		meta.Usage.TotalTokens = int(u.TotalTokenCount)
	}

	c.log.Debug().
		Str("model", c.model).
		Dur("latency", meta.Latency).
		Int("total_tokens", meta.Usage.TotalTokens).
		Msg("structured generation call completed")

	return StructuredResponse{Text: string(text), Meta: meta}, nil
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
