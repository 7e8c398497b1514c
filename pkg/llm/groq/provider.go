package groq

import (
	"context"
	"fmt"

	"legal-assistant-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

// GroqProvider talks to the Groq chat-completions API, which is
// OpenAI-compatible, through the go-openai client with a custom base URL.
type GroqProvider struct {
	client    *openai.Client
	modelName string
}

var _ llm.LLMProvider = &GroqProvider{}

func NewGroqProvider(baseURL, apiKey, modelName string) *GroqProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &GroqProvider{
		client:    openai.NewClientWithConfig(cfg),
		modelName: modelName,
	}
}

func (g *GroqProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	model := g.modelName
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices for model %s", model)
	}

	return resp.Choices[0].Message.Content, nil
}
