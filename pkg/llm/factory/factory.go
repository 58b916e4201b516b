package factory

import (
	"fmt"

	"mcq-writer-be/pkg/llm"
	"mcq-writer-be/pkg/llm/gemini"
	"mcq-writer-be/pkg/llm/ollama"
	"mcq-writer-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, apiKey, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an api key")
		}
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
