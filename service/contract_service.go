package service

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"legalens-backend/analyzer"
	"legalens-backend/models"
	"legalens-backend/repository"
	"legalens-backend/storage"
)

// ContractBackend is the slice of the analysis backend client used for
// contract generation.
type ContractBackend interface {
	Templates(ctx context.Context) (map[string]models.ContractTemplate, error)
	GenerateContract(ctx context.Context, req analyzer.GenerateRequest) (*analyzer.GeneratedDocument, error)
	GenerateFromTemplate(ctx context.Context, templateFilename string, template io.Reader, fields map[string]string) (*analyzer.GeneratedDocument, error)
}

// ContractService generates contract documents through the analysis backend
// and persists the results as downloadable artifacts.
type ContractService struct {
	backend   ContractBackend
	artifacts *repository.ArtifactRepository
	store     storage.Storage
	logger    *zap.Logger
}

// ContractServiceOption is a functional option for ContractService
type ContractServiceOption func(*ContractService)

// WithContractBackend sets the analysis backend client
func WithContractBackend(backend ContractBackend) ContractServiceOption {
	return func(s *ContractService) {
		s.backend = backend
	}
}

// WithArtifactRepository sets the artifact repository
func WithArtifactRepository(repo *repository.ArtifactRepository) ContractServiceOption {
	return func(s *ContractService) {
		s.artifacts = repo
	}
}

// WithStorage sets the artifact storage backend
func WithStorage(store storage.Storage) ContractServiceOption {
	return func(s *ContractService) {
		s.store = store
	}
}

// WithContractLogger sets the logger
func WithContractLogger(logger *zap.Logger) ContractServiceOption {
	return func(s *ContractService) {
		s.logger = logger
	}
}

// NewContractService creates a new contract service
func NewContractService(opts ...ContractServiceOption) *ContractService {
	s := &ContractService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTemplates returns the backend's built-in contract templates.
func (s *ContractService) ListTemplates(ctx context.Context) (map[string]models.ContractTemplate, error) {
	if s.backend == nil {
		return nil, errors.New("contract backend not set")
	}
	return s.backend.Templates(ctx)
}

// GenerateRequest represents a request to render a built-in template.
type GenerateRequest struct {
	SessionID    *uuid.UUID
	ContractType string
	Fields       map[string]string
	FormatType   string
}

// Generate renders a built-in contract template and stores the produced
// document as an artifact.
func (s *ContractService) Generate(ctx context.Context, req GenerateRequest) (*models.Artifact, error) {
	if s.backend == nil {
		return nil, errors.New("contract backend not set")
	}
	if req.ContractType == "" {
		return nil, ErrMissingType
	}

	format := req.FormatType
	if format == "" {
		format = "docx"
	}
	if format != "docx" && format != "txt" {
		return nil, ErrInvalidFormat
	}

	doc, err := s.backend.GenerateContract(ctx, analyzer.GenerateRequest{
		ContractType: req.ContractType,
		UserData:     req.Fields,
		FormatType:   format,
	})
	if err != nil {
		return nil, err
	}

	return s.storeArtifact(ctx, req.SessionID, req.ContractType, format, doc)
}

// GenerateCustomRequest represents a request to fill a user-supplied
// template document.
type GenerateCustomRequest struct {
	SessionID        *uuid.UUID
	TemplateFilename string
	Template         io.Reader
	Fields           map[string]string
}

// GenerateCustom fills an uploaded template's placeholders and stores the
// produced document as an artifact.
func (s *ContractService) GenerateCustom(ctx context.Context, req GenerateCustomRequest) (*models.Artifact, error) {
	if s.backend == nil {
		return nil, errors.New("contract backend not set")
	}
	if req.Template == nil || req.TemplateFilename == "" {
		return nil, ErrMissingTemplate
	}

	doc, err := s.backend.GenerateFromTemplate(ctx, req.TemplateFilename, req.Template, req.Fields)
	if err != nil {
		return nil, err
	}

	return s.storeArtifact(ctx, req.SessionID, "custom", "docx", doc)
}

// ListSessionArtifacts returns the artifacts generated within a session,
// newest first.
func (s *ContractService) ListSessionArtifacts(ctx context.Context, sessionID uuid.UUID) ([]*models.Artifact, error) {
	if s.artifacts == nil {
		return nil, errors.New("artifact persistence not configured")
	}
	return s.artifacts.ListBySession(ctx, sessionID)
}

// GetArtifact returns the artifact record and an open reader on its
// content. The caller closes the reader.
func (s *ContractService) GetArtifact(ctx context.Context, id uuid.UUID) (*models.Artifact, io.ReadCloser, error) {
	if s.artifacts == nil || s.store == nil {
		return nil, nil, errors.New("artifact persistence not configured")
	}

	artifact, err := s.artifacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrArtifactNotFound
		}
		return nil, nil, err
	}

	content, err := s.store.Download(ctx, artifact.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return artifact, content, nil
}

func (s *ContractService) storeArtifact(ctx context.Context, sessionID *uuid.UUID, contractType, format string, doc *analyzer.GeneratedDocument) (*models.Artifact, error) {
	if s.artifacts == nil || s.store == nil {
		return nil, errors.New("artifact persistence not configured")
	}

	filename := doc.Filename
	if filename == "" {
		filename = contractType + "." + format
	}

	artifactID := uuid.New()
	storagePath, err := s.store.Upload(ctx, artifactID, filename, bytes.NewReader(doc.Content))
	if err != nil {
		return nil, err
	}

	artifact := &models.Artifact{
		ID:           artifactID,
		SessionID:    sessionID,
		ContractType: contractType,
		Filename:     filename,
		MimeType:     doc.ContentType,
		Size:         int64(len(doc.Content)),
		StoragePath:  storagePath,
	}

	if err := s.artifacts.Create(ctx, artifact); err != nil {
		// Keep storage and database consistent.
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up orphaned artifact",
				zap.String("storage_path", storagePath),
				zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("contract generated",
		zap.String("artifact_id", artifactID.String()),
		zap.String("contract_type", contractType),
		zap.Int64("size", artifact.Size))
	return artifact, nil
}
