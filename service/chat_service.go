package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"legalens-backend/analyzer"
	"legalens-backend/models"
)

// ChatBackend is the slice of the analysis backend client used for Q&A.
type ChatBackend interface {
	Ask(ctx context.Context, question, documentText string) (string, error)
}

// ChatService runs question-and-answer turns against a session's analyzed
// document.
type ChatService struct {
	backend  ChatBackend
	sessions *SessionManager
	logger   *zap.Logger
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// WithChatBackend sets the analysis backend client
func WithChatBackend(backend ChatBackend) ChatServiceOption {
	return func(s *ChatService) {
		s.backend = backend
	}
}

// WithChatSessionManager sets the session manager
func WithChatSessionManager(sessions *SessionManager) ChatServiceOption {
	return func(s *ChatService) {
		s.sessions = sessions
	}
}

// WithChatLogger sets the logger
func WithChatLogger(logger *zap.Logger) ChatServiceOption {
	return func(s *ChatService) {
		s.logger = logger
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		sessions: NewSessionManager(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AskRequest represents one user question within a session.
type AskRequest struct {
	SessionID uuid.UUID
	Question  string
}

// AskResult carries the full transcript after the exchange.
type AskResult struct {
	Transcript []models.ChatMessage
}

// Ask appends the user's turn, queries the backend and appends exactly one
// assistant turn. A backend failure still produces an assistant turn
// carrying a descriptive error message, so the user's question is never
// silently lost. While a round-trip is running further questions on the
// same session are rejected.
func (s *ChatService) Ask(ctx context.Context, req AskRequest) (*AskResult, error) {
	if s.backend == nil {
		return nil, errors.New("chat backend not set")
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	session, err := s.sessions.Get(req.SessionID)
	if err != nil {
		return nil, err
	}

	docText, gen, err := session.beginChat(question)
	if err != nil {
		return nil, err
	}

	answer, err := s.backend.Ask(ctx, question, docText)
	if err != nil {
		answer = "Error: " + backendDetail(err)
		s.logger.Warn("chat round-trip failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
	}

	transcript := session.resolveChat(gen, answer)
	return &AskResult{Transcript: transcript}, nil
}

// backendDetail prefers the backend's own error message over a generic one.
func backendDetail(err error) string {
	var be *analyzer.BackendError
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail
	}
	return "failed to get a response from the analysis backend"
}
