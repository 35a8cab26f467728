// Package llm wraps the hosted chat-completion endpoint behind a single
// Reply operation.
package llm

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/bedrock"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/devyanip/sarathi/internal/config"
	"github.com/devyanip/sarathi/internal/metrics"
	"github.com/devyanip/sarathi/internal/models"
)

// Fixed sampling parameters for persona replies.
const (
	replyTemperature = 0.7
	replyMaxTokens   = 500
)

// apologyReply is substituted when the endpoint returns no content.
// The generator never returns an empty reply.
const apologyReply = "I apologize, but I cannot provide guidance at this moment. Please try again."

// Model wraps a langchaingo LLM for persona reply generation.
type Model struct {
	llm       llms.Model
	modelName string
	metrics   *metrics.Collector
}

// NewModel creates an LLM model based on configuration.
func NewModel(ctx context.Context, cfg config.Config, mc *metrics.Collector) (*Model, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderBedrock:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		model, err = bedrock.New(
			bedrock.WithClient(client),
			bedrock.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Model{
		llm:       model,
		modelName: cfg.LLMModel,
		metrics:   mc,
	}, nil
}

// NewModelWithLLM wraps an existing langchaingo model. Used by tests.
func NewModelWithLLM(llm llms.Model, modelName string, mc *metrics.Collector) *Model {
	return &Model{llm: llm, modelName: modelName, metrics: mc}
}

// Model returns the LLM model name.
func (m *Model) Model() string {
	return m.modelName
}

// Reply generates the persona's reply to userMessage given the prior turns.
// systemPrompt leads the request; history follows in order. Failures
// propagate to the caller, but an empty completion is replaced with a fixed
// apology string rather than returned as-is.
func (m *Model) Reply(ctx context.Context, systemPrompt string, history []models.Turn, userMessage string) (string, error) {
	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))

	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == models.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, turn.Content))
	}

	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userMessage))

	start := time.Now()
	response, err := m.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(replyTemperature),
		llms.WithMaxTokens(replyMaxTokens),
	)
	m.metrics.RecordTiming(metrics.OpLLMReply, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Content == "" {
		return apologyReply, nil
	}

	return response.Choices[0].Content, nil
}
