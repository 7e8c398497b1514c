package factory

import (
	"fmt"

	"legal-assistant-be/pkg/llm"
	"legal-assistant-be/pkg/llm/groq"
	"legal-assistant-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq":
		if apiKey == "" {
			return nil, fmt.Errorf("groq provider requires an API key")
		}
		return groq.NewGroqProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
