package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startup-chatbot-be/internal/dto"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/pkg/llm"
	"startup-chatbot-be/pkg/rag/session"
	"startup-chatbot-be/pkg/retrieval"
	"startup-chatbot-be/pkg/security"
	"startup-chatbot-be/pkg/store"
)

type fakeRetriever struct {
	calls  int
	result retrieval.Result
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string) retrieval.Result {
	f.calls++
	return f.result
}

type fakeRefiner struct {
	calls       int
	answer      string
	lastHistory []llm.Message
}

func (f *fakeRefiner) Refine(_ context.Context, _, _ string, history []llm.Message) string {
	f.calls++
	f.lastHistory = history
	return f.answer
}

type fakeTelemetry struct {
	llmSuccess, llmFailure int
}

func (f *fakeTelemetry) TrackLLMRequest(success bool) {
	if success {
		f.llmSuccess++
	} else {
		f.llmFailure++
	}
}

func (f *fakeTelemetry) TrackTranscription(bool) {}

type fixture struct {
	service   IChatbotService
	store     store.SessionStore
	guard     *security.CSRFGuard
	retriever *fakeRetriever
	refiner   *fakeRefiner
	telemetry *fakeTelemetry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNopLogger()
	st := store.NewMemoryStore(time.Hour)
	guard := security.NewCSRFGuard(st, log)
	retriever := &fakeRetriever{result: retrieval.Result{
		Answer:      "raw answer",
		Suggestions: []string{"s1", "s2"},
	}}
	refiner := &fakeRefiner{answer: "refined answer"}
	telemetry := &fakeTelemetry{}

	return &fixture{
		service:   NewChatbotService(session.NewManager(st, log), guard, retriever, refiner, telemetry, log),
		store:     st,
		guard:     guard,
		retriever: retriever,
		refiner:   refiner,
		telemetry: telemetry,
	}
}

func TestSendQueryNewSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.service.SendQuery(ctx, &dto.QueryRequest{Text: "  प्रश्न  "}, true)
	require.NoError(t, err)

	assert.Equal(t, "refined answer", res.Answer)
	assert.Equal(t, []string{"s1", "s2"}, res.SimilarQuestions)
	require.NotEmpty(t, res.SessionId)

	// Pipeline ran once and the trimmed exchange is on record.
	assert.Equal(t, 1, f.retriever.calls)
	assert.Equal(t, 1, f.refiner.calls)
	assert.Equal(t, 1, f.telemetry.llmSuccess)

	stored, found := f.store.GetSession(ctx, res.SessionId)
	require.True(t, found)
	require.Len(t, stored.History, 2)
	assert.Equal(t, store.Turn{Role: store.RoleUser, Content: "प्रश्न"}, stored.History[0])
	assert.Equal(t, store.Turn{Role: store.RoleAssistant, Content: "refined answer"}, stored.History[1])

	// New sessions get a token bound so the next request can validate.
	_, found = f.store.GetCSRFToken(ctx, res.SessionId)
	assert.True(t, found)
}

func TestSendQueryExistingSessionSeesPriorHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.service.SendQuery(ctx, &dto.QueryRequest{Text: "पहिला"}, true)
	require.NoError(t, err)

	token, found := f.store.GetCSRFToken(ctx, first.SessionId)
	require.True(t, found)

	second, err := f.service.SendQuery(ctx, &dto.QueryRequest{
		Text:      "दुसरा",
		SessionId: first.SessionId,
		CsrfToken: token,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, first.SessionId, second.SessionId)

	// The refiner saw the first exchange as context for the second turn.
	require.Len(t, f.refiner.lastHistory, 2)
	assert.Equal(t, "पहिला", f.refiner.lastHistory[0].Content)
	assert.Equal(t, "refined answer", f.refiner.lastHistory[1].Content)

	stored, found := f.store.GetSession(ctx, first.SessionId)
	require.True(t, found)
	assert.Len(t, stored.History, 4)
}

func TestSendQueryEmptyTextRejectedBeforeStateChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.SendQuery(ctx, &dto.QueryRequest{Text: "   \n\t"}, true)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	assert.Equal(t, 0, f.retriever.calls)
	assert.Equal(t, 0, f.refiner.calls)
	assert.Equal(t, 0, f.telemetry.llmSuccess)
}

func TestSendQueryCSRFStrictMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	issued, err := f.service.IssueSession(ctx)
	require.NoError(t, err)

	t.Run("session without token refused", func(t *testing.T) {
		_, err := f.service.SendQuery(ctx, &dto.QueryRequest{
			Text:      "प्रश्न",
			SessionId: issued.SessionId,
		}, true)
		assert.ErrorIs(t, err, security.ErrCSRFTokenRequired)
	})

	t.Run("wrong token refused", func(t *testing.T) {
		_, err := f.service.SendQuery(ctx, &dto.QueryRequest{
			Text:      "प्रश्न",
			SessionId: issued.SessionId,
			CsrfToken: "forged",
		}, true)
		assert.ErrorIs(t, err, security.ErrInvalidCSRFToken)
	})

	t.Run("valid token accepted", func(t *testing.T) {
		res, err := f.service.SendQuery(ctx, &dto.QueryRequest{
			Text:      "प्रश्न",
			SessionId: issued.SessionId,
			CsrfToken: issued.CsrfToken,
		}, true)
		require.NoError(t, err)
		assert.Equal(t, issued.SessionId, res.SessionId)
	})
}

func TestSendQueryCSRFRelaxedMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	issued, err := f.service.IssueSession(ctx)
	require.NoError(t, err)

	// Missing token passes in relaxed mode.
	res, err := f.service.SendQuery(ctx, &dto.QueryRequest{
		Text:      "प्रश्न",
		SessionId: issued.SessionId,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, issued.SessionId, res.SessionId)

	// A present-but-wrong token is still refused.
	_, err = f.service.SendQuery(ctx, &dto.QueryRequest{
		Text:      "प्रश्न",
		SessionId: issued.SessionId,
		CsrfToken: "forged",
	}, false)
	assert.ErrorIs(t, err, security.ErrInvalidCSRFToken)
}

func TestIssueSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.service.IssueSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionId)
	require.NotEmpty(t, res.CsrfToken)

	assert.NoError(t, f.guard.Validate(ctx, res.CsrfToken, res.SessionId))
}
