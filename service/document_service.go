package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"legalens-backend/models"
	"legalens-backend/report"
)

// AnalyzerBackend is the slice of the analysis backend client used by the
// document flows.
type AnalyzerBackend interface {
	Analyze(ctx context.Context, filename string, file io.Reader) (*models.DocumentAnalysis, error)
	Compare(ctx context.Context, filename1 string, file1 io.Reader, filename2 string, file2 io.Reader) (*models.ComparisonPayload, error)
}

// DocumentService orchestrates analyze and compare round-trips against the
// analysis backend and installs the derived reports into sessions.
type DocumentService struct {
	backend  AnalyzerBackend
	sessions *SessionManager
	logger   *zap.Logger
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// WithAnalyzerBackend sets the analysis backend client
func WithAnalyzerBackend(backend AnalyzerBackend) DocumentServiceOption {
	return func(s *DocumentService) {
		s.backend = backend
	}
}

// WithSessionManager sets the session manager
func WithSessionManager(sessions *SessionManager) DocumentServiceOption {
	return func(s *DocumentService) {
		s.sessions = sessions
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.logger = logger
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{
		sessions: NewSessionManager(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeRequest represents a request to analyze one document. When
// SessionID is nil a fresh session is created.
type AnalyzeRequest struct {
	SessionID *uuid.UUID
	Filename  string
	File      io.Reader
}

// AnalyzeResult carries the new session id and its display-ready report.
type AnalyzeResult struct {
	SessionID uuid.UUID
	Report    *report.AnalysisReport
}

// Analyze sends the document to the backend and, on success, replaces the
// session's state with the derived report. A failed round-trip leaves the
// session's previous result intact.
func (s *DocumentService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if s.backend == nil {
		return nil, errors.New("analyzer backend not set")
	}
	if req.File == nil || req.Filename == "" {
		return nil, ErrMissingFile
	}

	session, err := s.resolveSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	gen, err := session.begin()
	if err != nil {
		return nil, err
	}

	analysis, err := s.backend.Analyze(ctx, req.Filename, req.File)
	if err != nil {
		session.finish(gen)
		s.logger.Warn("analyze failed",
			zap.String("session_id", session.ID.String()),
			zap.String("filename", req.Filename),
			zap.Error(err))
		return nil, err
	}

	rep := report.BuildAnalysisReport(analysis)
	if !session.applyAnalysis(gen, analysis, rep) {
		return nil, ErrSuperseded
	}

	s.logger.Info("document analyzed",
		zap.String("session_id", session.ID.String()),
		zap.String("filename", req.Filename),
		zap.Int("clause_categories", len(rep.Clauses)))
	return &AnalyzeResult{SessionID: session.ID, Report: rep}, nil
}

// CompareRequest represents a request to compare two documents.
type CompareRequest struct {
	SessionID *uuid.UUID
	Filename1 string
	File1     io.Reader
	Filename2 string
	File2     io.Reader
}

// CompareResult carries the session id and the display-ready comparison.
type CompareResult struct {
	SessionID uuid.UUID
	Report    *report.ComparisonReport
}

// Compare sends both documents to the backend in one request. Selection is
// validated before anything is sent: both files must be present.
func (s *DocumentService) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	if s.backend == nil {
		return nil, errors.New("analyzer backend not set")
	}
	if req.File1 == nil || req.Filename1 == "" || req.File2 == nil || req.Filename2 == "" {
		return nil, ErrMissingPair
	}

	session, err := s.resolveSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	gen, err := session.begin()
	if err != nil {
		return nil, err
	}

	payload, err := s.backend.Compare(ctx, req.Filename1, req.File1, req.Filename2, req.File2)
	if err != nil {
		session.finish(gen)
		s.logger.Warn("compare failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return nil, err
	}

	rep := report.BuildComparisonReport(payload)
	if !session.applyComparison(gen, rep) {
		return nil, ErrSuperseded
	}

	s.logger.Info("documents compared",
		zap.String("session_id", session.ID.String()),
		zap.Float64("overall_similarity", rep.Overall.Percentage))
	return &CompareResult{SessionID: session.ID, Report: rep}, nil
}

// GetSession returns a snapshot of the session's renderable state.
func (s *DocumentService) GetSession(id uuid.UUID) (*SessionState, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	state := session.Snapshot()
	return &state, nil
}

// Sessions exposes the manager so other services share the same sessions.
func (s *DocumentService) Sessions() *SessionManager {
	return s.sessions
}

func (s *DocumentService) resolveSession(id *uuid.UUID) (*Session, error) {
	if id == nil {
		return s.sessions.Create(), nil
	}
	return s.sessions.Get(*id)
}
