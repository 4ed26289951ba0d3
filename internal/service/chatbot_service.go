package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"startup-chatbot-be/internal/dto"
	"startup-chatbot-be/internal/pkg/logger"
	"startup-chatbot-be/internal/pkg/serverutils"
	"startup-chatbot-be/pkg/llm"
	"startup-chatbot-be/pkg/rag/history"
	"startup-chatbot-be/pkg/rag/session"
	"startup-chatbot-be/pkg/retrieval"
	"startup-chatbot-be/pkg/security"
)

// ErrEmptyQuery is returned when the query text is blank after trimming.
// Empty queries are rejected before any session state is touched.
var ErrEmptyQuery = errors.New("query text is empty")

// IRetriever and IRefiner are the two pipeline stages the service
// orchestrates. Both are total: they degrade internally instead of
// returning errors.
type IRetriever interface {
	Retrieve(ctx context.Context, query string) retrieval.Result
}

type IRefiner interface {
	Refine(ctx context.Context, query, rawAnswer string, history []llm.Message) string
}

type IChatbotService interface {
	IssueSession(ctx context.Context) (*dto.CSRFTokenResponse, error)
	SendQuery(ctx context.Context, req *dto.QueryRequest, strictCSRF bool) (*dto.QueryResponse, error)
}

type ChatbotService struct {
	sessions  *session.Manager
	guard     *security.CSRFGuard
	retriever IRetriever
	refiner   IRefiner
	telemetry ITelemetryService
	log       logger.ILogger
}

func NewChatbotService(
	sessions *session.Manager,
	guard *security.CSRFGuard,
	retriever IRetriever,
	refiner IRefiner,
	telemetry ITelemetryService,
	log logger.ILogger,
) IChatbotService {
	return &ChatbotService{
		sessions:  sessions,
		guard:     guard,
		retriever: retriever,
		refiner:   refiner,
		telemetry: telemetry,
		log:       log,
	}
}

// IssueSession mints a new session id with a bound CSRF token.
func (s *ChatbotService) IssueSession(ctx context.Context) (*dto.CSRFTokenResponse, error) {
	sessionID, token, err := s.guard.Issue(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CSRFTokenResponse{
		CsrfToken: token,
		SessionId: sessionID,
	}, nil
}

// SendQuery runs the full answer pipeline for one user turn.
//
// strictCSRF controls the handling of a session id sent without a token:
// the plain query route refuses it, while the obfuscated route lets the
// turn through unvalidated. A request with no session id at all is
// always a fresh contact and skips validation entirely.
func (s *ChatbotService) SendQuery(ctx context.Context, req *dto.QueryRequest, strictCSRF bool) (*dto.QueryResponse, error) {
	if err := s.checkCSRF(ctx, req, strictCSRF); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Text)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	sessionID := req.SessionId
	isNew := sessionID == ""
	if isNew {
		sessionID = uuid.New().String()
	}

	doc := s.sessions.LoadOrCreate(ctx, sessionID)

	if isNew {
		if _, err := s.guard.IssueFor(ctx, sessionID); err != nil {
			s.log.Warn("ChatbotService", "Could not bind CSRF token to new session", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	s.log.Info("ChatbotService", "Processing query", map[string]interface{}{
		"session_id":  sessionID,
		"query":       serverutils.SanitizeForLogging(query, 200),
		"new_session": isNew,
	})

	retrieved := s.retriever.Retrieve(ctx, query)
	answer := s.refiner.Refine(ctx, query, retrieved.Answer, history.FromSession(doc))

	s.sessions.AppendExchange(ctx, sessionID, query, answer)
	s.telemetry.TrackLLMRequest(true)

	return &dto.QueryResponse{
		Answer:           answer,
		SimilarQuestions: retrieved.Suggestions,
		SessionId:        sessionID,
	}, nil
}

func (s *ChatbotService) checkCSRF(ctx context.Context, req *dto.QueryRequest, strict bool) error {
	if req.SessionId == "" {
		return nil
	}
	if req.CsrfToken == "" {
		if strict {
			return security.ErrCSRFTokenRequired
		}
		return nil
	}
	return s.guard.Validate(ctx, req.CsrfToken, req.SessionId)
}
