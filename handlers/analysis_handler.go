package handlers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalens-backend/service"
)

// AnalysisHandler handles HTTP requests for document analysis and comparison
type AnalysisHandler struct {
	documents         *service.DocumentService
	maxFileSize       int64
	allowedExtensions map[string]bool
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(documents *service.DocumentService) *AnalysisHandler {
	return &AnalysisHandler{
		documents:   documents,
		maxFileSize: 10 * 1024 * 1024, // 10MB
		allowedExtensions: map[string]bool{
			".pdf":  true,
			".docx": true,
			".txt":  true,
		},
	}
}

// AnalyzeDocument handles POST /api/analyze
func (h *AnalysisHandler) AnalyzeDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SELECTION", "A document file is required")
		return
	}
	if !h.validateFile(c, fileHeader) {
		return
	}

	sessionID, ok := optionalSessionID(c)
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.documents.Analyze(c.Request.Context(), service.AnalyzeRequest{
		SessionID: sessionID,
		Filename:  fileHeader.Filename,
		File:      file,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"session_id": result.SessionID,
			"report":     result.Report,
		},
	})
}

// CompareDocuments handles POST /api/compare
func (h *AnalysisHandler) CompareDocuments(c *gin.Context) {
	header1, err1 := c.FormFile("file1")
	header2, err2 := c.FormFile("file2")
	if err1 != nil || err2 != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SELECTION", "Two document files are required")
		return
	}
	if !h.validateFile(c, header1) || !h.validateFile(c, header2) {
		return
	}

	sessionID, ok := optionalSessionID(c)
	if !ok {
		return
	}

	file1, err := header1.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded file")
		return
	}
	defer file1.Close()

	file2, err := header2.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded file")
		return
	}
	defer file2.Close()

	result, err := h.documents.Compare(c.Request.Context(), service.CompareRequest{
		SessionID: sessionID,
		Filename1: header1.Filename,
		File1:     file1,
		Filename2: header2.Filename,
		File2:     file2,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"session_id": result.SessionID,
			"report":     result.Report,
		},
	})
}

// GetSession handles GET /api/sessions/:id
func (h *AnalysisHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Invalid session id format")
		return
	}

	state, err := h.documents.GetSession(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    state,
	})
}

func (h *AnalysisHandler) validateFile(c *gin.Context, header *multipart.FileHeader) bool {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !h.allowedExtensions[ext] {
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
			"Only PDF, DOCX and TXT documents are supported")
		return false
	}
	if header.Size > h.maxFileSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			"File size exceeds the 10MB limit")
		return false
	}
	return true
}

// optionalSessionID parses the optional session_id form value. A missing
// value means a fresh session.
func optionalSessionID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.PostForm("session_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Invalid session_id format")
		return nil, false
	}
	return &id, true
}
