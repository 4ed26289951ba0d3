package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"startup-chatbot-be/internal/constant"
	"startup-chatbot-be/pkg/llm"
)

func TestBuildContainsAllSections(t *testing.T) {
	history := []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: "पहिला प्रश्न"},
		{Role: constant.ChatMessageRoleAssistant, Content: "पहिले उत्तर"},
	}
	prompt := NewRefineBuilder("सध्याचा प्रश्न", "मूळ उत्तर", history).Build()

	assert.Contains(t, prompt, constant.BotName)
	assert.Contains(t, prompt, "## संभाषण इतिहास (संदर्भासाठी):")
	assert.Contains(t, prompt, "## सध्याचा वापरकर्त्याचा प्रश्न:")
	assert.Contains(t, prompt, "सध्याचा प्रश्न")
	assert.Contains(t, prompt, "## ज्ञान आधार माहिती")
	assert.Contains(t, prompt, "मूळ उत्तर")
	assert.Contains(t, prompt, "## सूचना:")
	assert.Contains(t, prompt, "7. सर्व उत्तरे मराठी भाषेत द्या.")
}

func TestBuildRendersHistoryInOrderWithLabels(t *testing.T) {
	history := []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: "one"},
		{Role: constant.ChatMessageRoleAssistant, Content: "two"},
		{Role: constant.ChatMessageRoleUser, Content: "three"},
	}
	prompt := NewRefineBuilder("q", "a", history).Build()

	userLine := constant.HistoryLabelUser + ": one"
	assistantLine := constant.HistoryLabelAssistant + ": two"
	assert.Contains(t, prompt, userLine)
	assert.Contains(t, prompt, assistantLine)
	assert.Less(t, strings.Index(prompt, userLine), strings.Index(prompt, assistantLine))
	assert.Less(t, strings.Index(prompt, assistantLine), strings.Index(prompt, "three"))
}

func TestBuildEmptyHistoryKeepsSection(t *testing.T) {
	prompt := NewRefineBuilder("q", "a", nil).Build()

	assert.Contains(t, prompt, "## संभाषण इतिहास (संदर्भासाठी):")
	// Ground truth is fenced even when history is empty.
	assert.Contains(t, prompt, "---\na\n---")
}
