package response

import (
	"context"
	"strings"

	"startup-chatbot-be/internal/constant"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/llm"
	"startup-chatbot-be/pkg/rag/prompt"
)

// FallbackKind tags the three generation failure buckets. Each maps to
// one fixed user-facing string.
type FallbackKind int

const (
	FallbackConfig FallbackKind = iota // provider not configured
	FallbackEmpty                      // model returned nothing usable
	FallbackTransient                  // call failed
)

// FallbackMessage maps a failure bucket to its canned response.
func FallbackMessage(kind FallbackKind) string {
	switch kind {
	case FallbackConfig:
		return constant.AnswerModelUnavailable
	case FallbackEmpty:
		return constant.AnswerEmptyGeneration
	default:
		return constant.AnswerGenerationFailed
	}
}

// Refiner turns a raw retrieved answer into the final conversational
// reply via one synchronous model call. It never returns an error: every
// failure degrades to a fallback string so the orchestrator always has
// something to say.
type Refiner struct {
	provider llm.LLMProvider // nil when no credential is configured
	log      logger.ILogger
}

func NewRefiner(provider llm.LLMProvider, log logger.ILogger) *Refiner {
	return &Refiner{provider: provider, log: log}
}

func (r *Refiner) Refine(ctx context.Context, query, rawAnswer string, history []llm.Message) string {
	if r.provider == nil {
		return FallbackMessage(FallbackConfig)
	}

	promptText := prompt.NewRefineBuilder(query, rawAnswer, history).Build()

	answer, err := r.provider.Generate(ctx, promptText)
	if err != nil {
		r.log.Error("refiner", "Generation call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return FallbackMessage(FallbackTransient)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		r.log.Warn("refiner", "Generation returned empty output", nil)
		return FallbackMessage(FallbackEmpty)
	}
	return answer
}
