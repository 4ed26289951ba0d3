package session

import (
	"context"
	"time"

	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/store"
)

// Manager is the typed access layer over the session store. It is the
// only component that mutates session history.
type Manager struct {
	store store.SessionStore
	log   logger.ILogger
}

func NewManager(st store.SessionStore, log logger.ILogger) *Manager {
	return &Manager{store: st, log: log}
}

// LoadOrCreate retrieves the session document, creating and persisting a
// fresh one when absent (including when the store is unreachable — an
// unreadable session is a new session).
func (m *Manager) LoadOrCreate(ctx context.Context, sessionID string) *store.Session {
	session, found := m.store.GetSession(ctx, sessionID)
	if found {
		return session
	}

	session = &store.Session{
		History:   []store.Turn{},
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.SetSession(ctx, sessionID, session); err != nil {
		m.log.Warn("session", "Could not persist new session", map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return session
}

// AppendExchange records one completed query turn: the user text
// followed by the assistant reply, in that order. Re-reads the document
// before writing; concurrent appenders race and the later write wins.
func (m *Manager) AppendExchange(ctx context.Context, sessionID, userText, assistantText string) {
	session, found := m.store.GetSession(ctx, sessionID)
	if !found {
		session = &store.Session{
			History:   []store.Turn{},
			CreatedAt: time.Now().UTC(),
		}
	}

	session.History = append(session.History,
		store.Turn{Role: store.RoleUser, Content: userText},
		store.Turn{Role: store.RoleAssistant, Content: assistantText},
	)

	if err := m.store.SetSession(ctx, sessionID, session); err != nil {
		m.log.Warn("session", "Could not persist session history", map[string]interface{}{
			"session_id": sessionID,
		})
	}
}

// Delete removes the session document.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.store.DeleteSession(ctx, sessionID)
}
