// Package service holds the business logic between the HTTP handlers and
// the analysis backend: session state, analyze/compare orchestration, chat
// transcripts and contract generation.
package service

import (
	"sync"

	"github.com/google/uuid"

	"legalens-backend/models"
	"legalens-backend/report"
)

// Session owns the state derived from one analyzed document or document
// pair: at most one analysis report, one comparison report and one chat
// transcript. A new analyze or compare replaces the state wholesale; the
// generation counter ensures a superseded request's late response is
// discarded instead of merged.
type Session struct {
	ID uuid.UUID

	mu         sync.Mutex
	generation uint64
	inFlight   bool
	chatBusy   bool

	analysis    *models.DocumentAnalysis
	analysisRep *report.AnalysisReport
	comparison  *report.ComparisonReport
	transcript  []models.ChatMessage
}

// SessionState is a read-only snapshot of a session for handlers to render.
type SessionState struct {
	ID         uuid.UUID                `json:"session_id"`
	Report     *report.AnalysisReport   `json:"report,omitempty"`
	Comparison *report.ComparisonReport `json:"comparison,omitempty"`
	Transcript []models.ChatMessage     `json:"transcript"`
}

// begin claims the session for a new analyze or compare action. It returns
// the generation token the eventual response must present to be applied.
// While a previous action is still in flight the session rejects new ones.
func (s *Session) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return 0, ErrRequestInFlight
	}
	s.inFlight = true
	s.generation++
	return s.generation, nil
}

// finish releases the in-flight slot after a failed action without touching
// the session's last good state.
func (s *Session) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.inFlight = false
	}
}

// applyAnalysis installs a completed analysis if its generation is still
// current. The previous result and the chat transcript are discarded; the
// transcript is scoped to the document it was asked about. A stale
// response is dropped and false is returned.
func (s *Session) applyAnalysis(gen uint64, analysis *models.DocumentAnalysis, rep *report.AnalysisReport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.inFlight = false
	s.analysis = analysis
	s.analysisRep = rep
	s.comparison = nil
	s.transcript = nil
	return true
}

// applyComparison installs a completed comparison if its generation is
// still current, discarding any previous analysis state.
func (s *Session) applyComparison(gen uint64, rep *report.ComparisonReport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.inFlight = false
	s.analysis = nil
	s.analysisRep = nil
	s.comparison = rep
	s.transcript = nil
	return true
}

// beginChat appends the user's turn optimistically and claims the chat
// slot. It fails when no analyzed document is present or a chat round-trip
// is already running. The returned document text feeds the backend and the
// generation token guards the assistant's turn against a concurrent
// re-analysis.
func (s *Session) beginChat(question string) (string, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == nil {
		return "", 0, ErrNoDocument
	}
	if s.chatBusy {
		return "", 0, ErrChatInFlight
	}
	s.chatBusy = true
	s.transcript = append(s.transcript, models.ChatMessage{Role: models.RoleUser, Content: question})
	return s.analysis.FullText, s.generation, nil
}

// resolveChat appends the assistant's turn, which may be an error turn, and
// releases the chat slot. If the document was replaced while the round-trip
// was in flight the reply belongs to a discarded transcript and is dropped.
func (s *Session) resolveChat(gen uint64, content string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatBusy = false
	if gen == s.generation {
		s.transcript = append(s.transcript, models.ChatMessage{Role: models.RoleAssistant, Content: content})
	}
	return s.copyTranscript()
}

// Snapshot returns a copy of the session's renderable state.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ID:         s.ID,
		Report:     s.analysisRep,
		Comparison: s.comparison,
		Transcript: s.copyTranscript(),
	}
}

func (s *Session) copyTranscript() []models.ChatMessage {
	out := make([]models.ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// SessionManager hands out sessions keyed by opaque UUIDs.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[uuid.UUID]*Session)}
}

// Create registers a new empty session.
func (m *SessionManager) Create() *Session {
	session := &Session{ID: uuid.New()}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// Get returns the session for id or ErrSessionNotFound.
func (m *SessionManager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove drops a session. Unknown ids are a no-op.
func (m *SessionManager) Remove(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
