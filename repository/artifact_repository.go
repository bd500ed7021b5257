package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"legalens-backend/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ArtifactRepository handles database operations for generated artifacts
type ArtifactRepository struct {
	db *pgxpool.Pool
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *pgxpool.Pool) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Create creates a new artifact record
func (r *ArtifactRepository) Create(ctx context.Context, artifact *models.Artifact) error {
	query := `
		INSERT INTO artifacts (
			id, session_id, contract_type, filename, mime_type, size, storage_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		artifact.ID,
		artifact.SessionID,
		artifact.ContractType,
		artifact.Filename,
		artifact.MimeType,
		artifact.Size,
		artifact.StoragePath,
	).Scan(&artifact.CreatedAt)

	return err
}

// GetByID retrieves an artifact by ID
func (r *ArtifactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Artifact, error) {
	artifact := &models.Artifact{}
	query := `
		SELECT id, session_id, contract_type, filename, mime_type, size, storage_path, created_at
		FROM artifacts
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&artifact.ID,
		&artifact.SessionID,
		&artifact.ContractType,
		&artifact.Filename,
		&artifact.MimeType,
		&artifact.Size,
		&artifact.StoragePath,
		&artifact.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return artifact, nil
}

// ListBySession retrieves all artifacts generated within a session, newest
// first
func (r *ArtifactRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.Artifact, error) {
	query := `
		SELECT id, session_id, contract_type, filename, mime_type, size, storage_path, created_at
		FROM artifacts
		WHERE session_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artifacts := []*models.Artifact{}
	for rows.Next() {
		artifact := &models.Artifact{}
		err := rows.Scan(
			&artifact.ID,
			&artifact.SessionID,
			&artifact.ContractType,
			&artifact.Filename,
			&artifact.MimeType,
			&artifact.Size,
			&artifact.StoragePath,
			&artifact.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	return artifacts, rows.Err()
}

// Delete removes an artifact record
func (r *ArtifactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM artifacts WHERE id = $1`, id)
	return err
}
