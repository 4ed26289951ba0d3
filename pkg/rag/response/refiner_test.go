package response

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"startup-chatbot-be/internal/constant"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/llm"
)

type stubLLM struct {
	output     string
	err        error
	lastPrompt string
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.output, s.err
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.lastPrompt = prompt
	return s.output, s.err
}

func TestRefineSuccess(t *testing.T) {
	provider := &stubLLM{output: "  सुधारित उत्तर  "}
	r := NewRefiner(provider, logger.NewNopLogger())

	answer := r.Refine(context.Background(), "प्रश्न", "मूळ उत्तर", nil)

	assert.Equal(t, "सुधारित उत्तर", answer)
	assert.Contains(t, provider.lastPrompt, "प्रश्न")
	assert.Contains(t, provider.lastPrompt, "मूळ उत्तर")
}

func TestRefineFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.LLMProvider
		want     string
	}{
		{"unconfigured provider", nil, constant.AnswerModelUnavailable},
		{"transient failure", &stubLLM{err: errors.New("timeout")}, constant.AnswerGenerationFailed},
		{"empty generation", &stubLLM{output: "   \n"}, constant.AnswerEmptyGeneration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRefiner(tt.provider, logger.NewNopLogger())
			assert.Equal(t, tt.want, r.Refine(context.Background(), "q", "a", nil))
		})
	}
}

func TestFallbackMessage(t *testing.T) {
	assert.Equal(t, constant.AnswerModelUnavailable, FallbackMessage(FallbackConfig))
	assert.Equal(t, constant.AnswerEmptyGeneration, FallbackMessage(FallbackEmpty))
	assert.Equal(t, constant.AnswerGenerationFailed, FallbackMessage(FallbackTransient))
}
