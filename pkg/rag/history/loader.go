package history

import (
	"startup-chatbot-be/pkg/llm"
	"startup-chatbot-be/pkg/store"
)

// FromSession renders stored conversation turns as provider-agnostic
// messages, oldest first, unmodified. No truncation happens here: the
// whole history goes into the prompt.
func FromSession(session *store.Session) []llm.Message {
	if session == nil || len(session.History) == 0 {
		return nil
	}

	messages := make([]llm.Message, 0, len(session.History))
	for _, turn := range session.History {
		role := turn.Role
		if role != store.RoleUser {
			role = store.RoleAssistant
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: turn.Content,
		})
	}
	return messages
}
