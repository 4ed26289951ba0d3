package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/store"
)

func newManager(t *testing.T) (*Manager, store.SessionStore) {
	t.Helper()
	st := store.NewMemoryStore(time.Hour)
	return NewManager(st, logger.NewNopLogger()), st
}

func TestLoadOrCreatePersistsFreshSession(t *testing.T) {
	ctx := context.Background()
	m, st := newManager(t)

	session := m.LoadOrCreate(ctx, "abc")
	require.NotNil(t, session)
	assert.Empty(t, session.History)
	assert.False(t, session.CreatedAt.IsZero())

	stored, found := st.GetSession(ctx, "abc")
	require.True(t, found)
	assert.Equal(t, session.CreatedAt.Unix(), stored.CreatedAt.Unix())
}

func TestLoadOrCreateReturnsExisting(t *testing.T) {
	ctx := context.Background()
	m, st := newManager(t)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, st.SetSession(ctx, "abc", &store.Session{
		History:   []store.Turn{{Role: store.RoleUser, Content: "hi"}},
		CreatedAt: created,
	}))

	session := m.LoadOrCreate(ctx, "abc")
	require.Len(t, session.History, 1)
	assert.Equal(t, created, session.CreatedAt)
}

func TestAppendExchangeOrdering(t *testing.T) {
	ctx := context.Background()
	m, st := newManager(t)

	m.AppendExchange(ctx, "abc", "प्रश्न १", "उत्तर १")
	m.AppendExchange(ctx, "abc", "प्रश्न २", "उत्तर २")

	session, found := st.GetSession(ctx, "abc")
	require.True(t, found)
	require.Len(t, session.History, 4)

	assert.Equal(t, store.Turn{Role: store.RoleUser, Content: "प्रश्न १"}, session.History[0])
	assert.Equal(t, store.Turn{Role: store.RoleAssistant, Content: "उत्तर १"}, session.History[1])
	assert.Equal(t, store.Turn{Role: store.RoleUser, Content: "प्रश्न २"}, session.History[2])
	assert.Equal(t, store.Turn{Role: store.RoleAssistant, Content: "उत्तर २"}, session.History[3])
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m, st := newManager(t)

	m.AppendExchange(ctx, "abc", "q", "a")
	require.NoError(t, m.Delete(ctx, "abc"))

	_, found := st.GetSession(ctx, "abc")
	assert.False(t, found)
}
