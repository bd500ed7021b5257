package models

import (
	"time"

	"github.com/google/uuid"
)

// Artifact is a generated contract document stored for later download.
type Artifact struct {
	ID           uuid.UUID  `json:"id"`
	SessionID    *uuid.UUID `json:"session_id,omitempty"`
	ContractType string     `json:"contract_type"`
	Filename     string     `json:"filename"`
	MimeType     string     `json:"mime_type"`
	Size         int64      `json:"size"`
	StoragePath  string     `json:"storage_path"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ContractTemplate describes one built-in contract template offered by the
// analyzer backend.
type ContractTemplate struct {
	Description    string   `json:"description"`
	RequiredFields []string `json:"required_fields"`
}
