package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalens-backend/analyzer"
	"legalens-backend/models"
)

type fakeChatBackend struct {
	askFn func(ctx context.Context, question, documentText string) (string, error)
}

func (f *fakeChatBackend) Ask(ctx context.Context, question, documentText string) (string, error) {
	return f.askFn(ctx, question, documentText)
}

func newChatFixture(t *testing.T, backend ChatBackend) (*ChatService, uuid.UUID) {
	t.Helper()
	sessions := NewSessionManager()

	docs := NewDocumentService(
		WithAnalyzerBackend(&fakeAnalyzerBackend{
			analyzeFn: func(ctx context.Context, filename string, file io.Reader) (*models.DocumentAnalysis, error) {
				return &models.DocumentAnalysis{
					Summary:  "a lease",
					FullText: "the term is two years",
				}, nil
			},
		}),
		WithSessionManager(sessions),
	)
	result, err := docs.Analyze(context.Background(), AnalyzeRequest{
		Filename: "lease.pdf",
		File:     strings.NewReader("x"),
	})
	require.NoError(t, err)

	chat := NewChatService(
		WithChatBackend(backend),
		WithChatSessionManager(sessions),
	)
	return chat, result.SessionID
}

func TestAskAppendsBothTurns(t *testing.T) {
	backend := &fakeChatBackend{
		askFn: func(ctx context.Context, question, documentText string) (string, error) {
			assert.Equal(t, "the term is two years", documentText)
			return "two years", nil
		},
	}
	chat, sessionID := newChatFixture(t, backend)

	result, err := chat.Ask(context.Background(), AskRequest{
		SessionID: sessionID,
		Question:  "how long is the term?",
	})
	require.NoError(t, err)

	require.Len(t, result.Transcript, 2)
	assert.Equal(t, models.RoleUser, result.Transcript[0].Role)
	assert.Equal(t, "how long is the term?", result.Transcript[0].Content)
	assert.Equal(t, models.RoleAssistant, result.Transcript[1].Role)
	assert.Equal(t, "two years", result.Transcript[1].Content)
}

func TestAskBackendFailureProducesErrorTurn(t *testing.T) {
	backend := &fakeChatBackend{
		askFn: func(ctx context.Context, question, documentText string) (string, error) {
			return "", &analyzer.BackendError{
				StatusCode: http.StatusServiceUnavailable,
				Detail:     "model overloaded",
			}
		},
	}
	chat, sessionID := newChatFixture(t, backend)

	result, err := chat.Ask(context.Background(), AskRequest{
		SessionID: sessionID,
		Question:  "what about renewal?",
	})
	require.NoError(t, err)

	// The user's turn survives and exactly one assistant turn is added.
	require.Len(t, result.Transcript, 2)
	assert.Equal(t, models.RoleUser, result.Transcript[0].Role)
	assert.Equal(t, models.RoleAssistant, result.Transcript[1].Role)
	assert.Equal(t, "Error: model overloaded", result.Transcript[1].Content)
}

func TestAskRejectsConcurrentQuestion(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeChatBackend{
		askFn: func(ctx context.Context, question, documentText string) (string, error) {
			close(entered)
			<-release
			return "late answer", nil
		},
	}
	chat, sessionID := newChatFixture(t, backend)

	done := make(chan error, 1)
	go func() {
		_, err := chat.Ask(context.Background(), AskRequest{SessionID: sessionID, Question: "first"})
		done <- err
	}()

	<-entered
	_, err := chat.Ask(context.Background(), AskRequest{SessionID: sessionID, Question: "second"})
	assert.ErrorIs(t, err, ErrChatInFlight)

	close(release)
	require.NoError(t, <-done)
}

func TestAskValidation(t *testing.T) {
	chat, sessionID := newChatFixture(t, &fakeChatBackend{
		askFn: func(ctx context.Context, question, documentText string) (string, error) {
			t.Fatal("backend must not be called")
			return "", nil
		},
	})

	_, err := chat.Ask(context.Background(), AskRequest{SessionID: sessionID, Question: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	_, err = chat.Ask(context.Background(), AskRequest{SessionID: uuid.New(), Question: "hello"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
