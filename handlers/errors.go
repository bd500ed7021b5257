package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalens-backend/analyzer"
	"legalens-backend/service"
)

// respondServiceError maps service-layer errors to the HTTP error envelope.
// Backend failures keep the backend's own detail message; everything
// unrecognized becomes a 500.
func respondServiceError(c *gin.Context, err error) {
	var backendErr *analyzer.BackendError

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
	case errors.Is(err, service.ErrArtifactNotFound):
		respondError(c, http.StatusNotFound, "ARTIFACT_NOT_FOUND", "Artifact not found")
	case errors.Is(err, service.ErrRequestInFlight), errors.Is(err, service.ErrChatInFlight):
		respondError(c, http.StatusConflict, "REQUEST_IN_FLIGHT", err.Error())
	case errors.Is(err, service.ErrSuperseded):
		respondError(c, http.StatusConflict, "REQUEST_SUPERSEDED", err.Error())
	case errors.Is(err, service.ErrMissingFile),
		errors.Is(err, service.ErrMissingPair),
		errors.Is(err, service.ErrEmptyQuestion),
		errors.Is(err, service.ErrNoDocument),
		errors.Is(err, service.ErrMissingType),
		errors.Is(err, service.ErrInvalidFormat),
		errors.Is(err, service.ErrMissingTemplate):
		respondError(c, http.StatusBadRequest, "INVALID_SELECTION", err.Error())
	case errors.As(err, &backendErr):
		respondError(c, http.StatusBadGateway, "BACKEND_UNAVAILABLE", backendErr.Detail)
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
