package store

import (
	"context"
	"time"
)

// Turn is a single conversation entry inside a session document.
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Session is the persisted conversation state for one client.
// It is owned by the session store; every completed query appends
// exactly one user turn followed by one assistant turn.
type Session struct {
	History   []Turn    `json:"history"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Clone returns a deep copy so callers can mutate freely without
// aliasing the stored document (relevant for the in-memory store).
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := &Session{CreatedAt: s.CreatedAt}
	if s.History != nil {
		cp.History = make([]Turn, len(s.History))
		copy(cp.History, s.History)
	}
	return cp
}

// SessionStore is the shared key-value backing for session documents and
// CSRF tokens. Reads are fail-soft: a store error surfaces as "absent",
// never as an error the caller must branch on. Writes return an error the
// caller may log and ignore; a failed write degrades, it never aborts a
// request.
//
// Every write resets the TTL countdown for its key. No atomicity is
// guaranteed across a Get/Set pair: concurrent updates to the same
// session race and the later write wins.
type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (*Session, bool)
	SetSession(ctx context.Context, sessionID string, session *Session) error
	DeleteSession(ctx context.Context, sessionID string) error

	GetCSRFToken(ctx context.Context, sessionID string) (string, bool)
	SetCSRFToken(ctx context.Context, sessionID string, token string) error

	Ping(ctx context.Context) error
}

func sessionKey(sessionID string) string { return "session:" + sessionID }
func csrfKey(sessionID string) string    { return "csrf:" + sessionID }
