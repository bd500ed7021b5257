package service

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRequestInFlight  = errors.New("a request is already in flight for this session")
	ErrChatInFlight     = errors.New("a chat request is already in flight for this session")
	ErrNoDocument       = errors.New("no analyzed document in this session")
	ErrSuperseded       = errors.New("request superseded by a newer action")
	ErrMissingFile      = errors.New("a document file is required")
	ErrMissingPair      = errors.New("two document files are required")
	ErrEmptyQuestion    = errors.New("question must not be empty")
	ErrMissingType      = errors.New("contract type is required")
	ErrInvalidFormat    = errors.New("format must be docx or txt")
	ErrMissingTemplate  = errors.New("a template file is required")
	ErrArtifactNotFound = errors.New("artifact not found")
)
