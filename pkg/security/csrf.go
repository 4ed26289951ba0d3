package security

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/store"

	"github.com/google/uuid"
)

// ErrInvalidCSRFToken is returned when the supplied token is missing from
// the store or does not match the stored value exactly. Store lookup
// failures collapse into the same error: an unverifiable token is an
// invalid token.
var ErrInvalidCSRFToken = errors.New("invalid CSRF token")

// ErrCSRFTokenRequired is returned when a request names an existing
// session but carries no token at all.
var ErrCSRFTokenRequired = errors.New("CSRF token required")

const tokenEntropyBytes = 32

// CSRFGuard issues and validates anti-forgery tokens bound 1:1 to a
// session id. Tokens live in the session store under their own key and
// share the session TTL. There is no single-use or rotation semantics: a
// token stays valid until TTL expiry or explicit reissue.
type CSRFGuard struct {
	store store.SessionStore
	log   logger.ILogger
}

func NewCSRFGuard(store store.SessionStore, log logger.ILogger) *CSRFGuard {
	return &CSRFGuard{store: store, log: log}
}

// GenerateToken produces a URL-safe token with 32 bytes of entropy.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Issue creates a fresh session id, binds a new token to it and returns
// both. The session document itself is created lazily on the first query.
func (g *CSRFGuard) Issue(ctx context.Context) (sessionID string, token string, err error) {
	sessionID = uuid.New().String()
	token, err = g.IssueFor(ctx, sessionID)
	return sessionID, token, err
}

// IssueFor binds a new token to an existing session id.
func (g *CSRFGuard) IssueFor(ctx context.Context, sessionID string) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}
	if err := g.store.SetCSRFToken(ctx, sessionID, token); err != nil {
		return "", fmt.Errorf("store CSRF token: %w", err)
	}
	g.log.Info("security", "CSRF token issued", map[string]interface{}{
		"session_id": sessionID,
	})
	return token, nil
}

// Validate succeeds only on exact equality against the stored token.
func (g *CSRFGuard) Validate(ctx context.Context, token string, sessionID string) error {
	if token == "" {
		return ErrCSRFTokenRequired
	}

	stored, found := g.store.GetCSRFToken(ctx, sessionID)
	if !found {
		g.log.Warn("security", "No CSRF token stored for session", map[string]interface{}{
			"session_id": sessionID,
		})
		return ErrInvalidCSRFToken
	}
	if stored != token {
		g.log.Warn("security", "CSRF token mismatch", map[string]interface{}{
			"session_id": sessionID,
		})
		return ErrInvalidCSRFToken
	}
	return nil
}
