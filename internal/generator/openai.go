package generator

import (
	"alcyxob/fitness-planner/internal/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const systemPrompt = "You are an experienced strength and conditioning coach. " +
	"You design safe, progressive workout plans and you always answer with a single JSON document."

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	// StructuredOutput sends Params.Schema as a json_schema response format.
	// Disable it for compatible providers that do not support it.
	StructuredOutput bool
}

// OpenAIGenerator calls an OpenAI compatible chat completions endpoint.
type OpenAIGenerator struct {
	client     openai.Client
	structured bool
	log        *logger.Logger
}

func NewOpenAI(cfg OpenAIConfig, log *logger.Logger) *OpenAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Failures are terminal for the request; the caller may resubmit.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIGenerator{
		client:     openai.NewClient(opts...),
		structured: cfg.StructuredOutput,
		log:        log.With("client", "OpenAIGenerator"),
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: params.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = openai.Int(params.MaxTokens)
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if g.structured && params.Schema != nil {
		name := params.SchemaName
		if name == "" {
			name = "response"
		}
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   name,
					Schema: params.Schema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	start := time.Now()
	chat, err := g.client.Chat.Completions.New(ctx, req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			g.log.Warn("generation timed out", "model", params.Model, "duration_ms", elapsed)
			return "", fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			g.log.Error("generation rejected", "model", params.Model, "status", apiErr.StatusCode, "duration_ms", elapsed)
		} else {
			g.log.Error("generation failed", "model", params.Model, "error", err, "duration_ms", elapsed)
		}
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if len(chat.Choices) == 0 {
		g.log.Error("generation returned no choices", "model", params.Model, "duration_ms", elapsed)
		return "", fmt.Errorf("%w: no choices in completion", ErrUpstream)
	}

	choice := chat.Choices[0]
	g.log.Info("generation finished",
		"model", params.Model,
		"finish_reason", choice.FinishReason,
		"completion_size", chat.Usage.CompletionTokens,
		"duration_ms", elapsed,
	)
	if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" {
		return "", fmt.Errorf("%w: model refused the request", ErrUpstream)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		g.log.Error("generation returned empty content", "model", params.Model, "finish_reason", choice.FinishReason)
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}
	return choice.Message.Content, nil
}
