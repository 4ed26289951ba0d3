package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSessionRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	_, found := s.GetSession(ctx, "missing")
	assert.False(t, found)

	session := &Session{
		History: []Turn{
			{Role: RoleUser, Content: "नमस्कार"},
			{Role: RoleAssistant, Content: "नमस्कार! मी कशी मदत करू?"},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.SetSession(ctx, "abc", session))

	got, found := s.GetSession(ctx, "abc")
	require.True(t, found)
	assert.Equal(t, session.History, got.History)

	// Reads must not alias the stored document.
	got.History[0].Content = "mutated"
	again, found := s.GetSession(ctx, "abc")
	require.True(t, found)
	assert.Equal(t, "नमस्कार", again.History[0].Content)
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	first := &Session{History: []Turn{{Role: RoleUser, Content: "one"}}}
	second := &Session{History: []Turn{{Role: RoleUser, Content: "two"}}}

	require.NoError(t, s.SetSession(ctx, "abc", first))
	require.NoError(t, s.SetSession(ctx, "abc", second))

	got, found := s.GetSession(ctx, "abc")
	require.True(t, found)
	require.Len(t, got.History, 1)
	assert.Equal(t, "two", got.History[0].Content)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(20 * time.Millisecond)

	require.NoError(t, s.SetSession(ctx, "abc", &Session{}))
	require.NoError(t, s.SetCSRFToken(ctx, "abc", "token"))

	time.Sleep(40 * time.Millisecond)

	_, found := s.GetSession(ctx, "abc")
	assert.False(t, found)
	_, found = s.GetCSRFToken(ctx, "abc")
	assert.False(t, found)
}

func TestMemoryStoreCSRFTokenIsolatedFromSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	require.NoError(t, s.SetCSRFToken(ctx, "abc", "token-1"))

	// Same id, different keyspace.
	_, found := s.GetSession(ctx, "abc")
	assert.False(t, found)

	token, found := s.GetCSRFToken(ctx, "abc")
	require.True(t, found)
	assert.Equal(t, "token-1", token)

	require.NoError(t, s.DeleteSession(ctx, "abc"))
	token, found = s.GetCSRFToken(ctx, "abc")
	require.True(t, found)
	assert.Equal(t, "token-1", token)
}
