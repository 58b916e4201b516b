package imagen

import "fmt"

func NewImageProvider(providerType, apiKey, model, baseURL string) (ImageProvider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini image provider requires an api key")
		}
		return NewGeminiProvider(apiKey, model), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai image provider requires an api key")
		}
		return NewOpenAIProvider(apiKey, baseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", providerType)
	}
}
