package factory

import (
	"fmt"

	"startup-chatbot-be/pkg/llm"
	"startup-chatbot-be/pkg/llm/gemini"
	"startup-chatbot-be/pkg/llm/huggingface"
	"startup-chatbot-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured LLM backend. A gemini or
// huggingface selection without an API key returns (nil, nil): the
// refiner treats a nil provider as "unconfigured" and answers with its
// fixed fallback instead of failing startup.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, nil
		}
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		if apiKey == "" {
			return nil, nil
		}
		return huggingface.NewHuggingFaceProvider(apiKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
