package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"legal-assistant-be/internal/apperr"
	"legal-assistant-be/internal/constant"
	"legal-assistant-be/internal/dto"
	"legal-assistant-be/internal/pkg/logger"
	"legal-assistant-be/pkg/llm"
	"legal-assistant-be/pkg/retrieval"
	"legal-assistant-be/pkg/session"
)

// Per-call deadlines for external backends. Request cancellation still
// propagates through ctx; these only bound how long one call may hang.
const (
	retrievalTimeout  = 30 * time.Second
	generationTimeout = 90 * time.Second
	sessionTimeout    = 5 * time.Second
)

// IAssistantService defines the legal assistant service interface
type IAssistantService interface {
	Query(ctx context.Context, userId string, request *dto.QueryRequest) (*dto.QueryResponse, error)
	CreateSession(ctx context.Context, userId string) (*dto.CreateSessionResponse, error)
	GetHistory(ctx context.Context, userId, sessionId string) (*dto.GetHistoryResponse, error)
	GetLatestSession(ctx context.Context, userId string) (*dto.LatestSessionResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId string) error
}

// IRetriever is the slice of the retrieval engine the service needs.
type IRetriever interface {
	Retrieve(ctx context.Context, query string) ([]retrieval.Document, error)
}

// ISessionStore is the slice of the session store the service needs.
type ISessionStore interface {
	Create(ctx context.Context, userId string) (string, error)
	GetHistory(ctx context.Context, userId, sessionId string) ([]session.Message, error)
	Append(ctx context.Context, userId, sessionId, role, content string) error
	Latest(ctx context.Context, userId string) (*session.Session, error)
	Delete(ctx context.Context, userId, sessionId string) error
}

type assistantService struct {
	engine           IRetriever
	sessions         ISessionStore
	llmProvider      llm.LLMProvider
	logger           logger.ILogger
	maxContextLength int
}

func NewAssistantService(
	engine IRetriever,
	sessions ISessionStore,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
	maxContextLength int,
) IAssistantService {
	return &assistantService{
		engine:           engine,
		sessions:         sessions,
		llmProvider:      llmProvider,
		logger:           log,
		maxContextLength: maxContextLength,
	}
}

// Query answers one legal question: resolve the session, retrieve statute
// context, generate the answer, then record both turns. The two appends run
// only after generation succeeded, so a failed request commits no partial
// conversation state.
func (s *assistantService) Query(ctx context.Context, userId string, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		created, err := s.CreateSession(ctx, userId)
		if err != nil {
			return nil, err
		}
		sessionId = created.SessionId
	}

	history, err := s.getRawHistory(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	retrieveCtx, cancel := context.WithTimeout(ctx, retrievalTimeout)
	defer cancel()
	documents, err := s.engine.Retrieve(retrieveCtx, request.Query)
	if err != nil {
		return nil, err
	}

	answer, err := s.generateAnswer(ctx, request.Query, documents, history)
	if err != nil {
		return nil, err
	}

	if err := s.appendTurn(ctx, userId, sessionId, constant.ChatMessageRoleUser, request.Query); err != nil {
		return nil, err
	}
	if err := s.appendTurn(ctx, userId, sessionId, constant.ChatMessageRoleAssistant, answer); err != nil {
		return nil, err
	}

	sources := make([]dto.DocumentDTO, len(documents))
	for i, doc := range documents {
		sources[i] = dto.DocumentDTO{
			Section: doc.SectionCode,
			Title:   doc.Title,
			Text:    doc.Text,
			Score:   doc.Score,
		}
	}

	return &dto.QueryResponse{
		Answer:    answer,
		Sources:   sources,
		SessionId: sessionId,
		Query:     request.Query,
	}, nil
}

func (s *assistantService) CreateSession(ctx context.Context, userId string) (*dto.CreateSessionResponse, error) {
	opCtx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()

	sessionId, err := s.sessions.Create(opCtx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.CreateSessionResponse{SessionId: sessionId}, nil
}

func (s *assistantService) GetHistory(ctx context.Context, userId, sessionId string) (*dto.GetHistoryResponse, error) {
	messages, err := s.getRawHistory(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.GetHistoryResponse{
		SessionId: sessionId,
		Messages:  toMessageDTOs(messages),
	}, nil
}

func (s *assistantService) GetLatestSession(ctx context.Context, userId string) (*dto.LatestSessionResponse, error) {
	opCtx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()

	latest, err := s.sessions.Latest(opCtx, userId)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil // no live sessions: absence, not an error
	}
	return &dto.LatestSessionResponse{
		SessionId:    latest.Id,
		Messages:     toMessageDTOs(latest.History),
		LastActivity: latest.LastActivity,
	}, nil
}

func (s *assistantService) DeleteSession(ctx context.Context, userId, sessionId string) error {
	opCtx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()
	return s.sessions.Delete(opCtx, userId, sessionId)
}

func (s *assistantService) getRawHistory(ctx context.Context, userId, sessionId string) ([]session.Message, error) {
	opCtx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()
	return s.sessions.GetHistory(opCtx, userId, sessionId)
}

func (s *assistantService) appendTurn(ctx context.Context, userId, sessionId, role, content string) error {
	opCtx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()
	return s.sessions.Append(opCtx, userId, sessionId, role, content)
}

func (s *assistantService) generateAnswer(
	ctx context.Context,
	query string,
	documents []retrieval.Document,
	history []session.Message,
) (string, error) {
	contextBlock := s.buildContext(documents)

	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SystemPromptV1},
	}

	// Keep chat history minimal (last few turns only)
	start := len(history) - constant.HistoryWindowTurns
	if start < 0 {
		start = 0
	}
	for _, msg := range history[start:] {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: fmt.Sprintf(constant.UserPromptTemplateV1, contextBlock, query),
	})

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	answer, err := s.llmProvider.Chat(genCtx, messages,
		llm.WithTemperature(0.2), // lower = more factual
		llm.WithMaxTokens(900),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrLLMUnavailable, err)
	}
	return strings.TrimSpace(answer), nil
}

func (s *assistantService) buildContext(documents []retrieval.Document) string {
	if len(documents) == 0 {
		return constant.EmptyContextNotice
	}

	parts := make([]string, len(documents))
	for i, doc := range documents {
		parts[i] = fmt.Sprintf("[Source %d]\nSection %s: %s\n%s", i+1, doc.SectionCode, doc.Title, doc.Text)
	}
	contextBlock := strings.Join(parts, "\n\n")

	// rune-wise so Devanagari statute text is never cut mid-character
	if runes := []rune(contextBlock); len(runes) > s.maxContextLength {
		s.logger.Warn("Assistant", "Context truncated", map[string]interface{}{
			"original_length": len(runes),
			"max_length":      s.maxContextLength,
		})
		contextBlock = string(runes[:s.maxContextLength]) + "..."
	}
	return contextBlock
}

func toMessageDTOs(messages []session.Message) []dto.MessageDTO {
	out := make([]dto.MessageDTO, len(messages))
	for i, m := range messages {
		out[i] = dto.MessageDTO{Role: m.Role, Content: m.Content}
	}
	return out
}
