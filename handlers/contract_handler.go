package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"legalens-backend/service"
)

// ContractHandler handles HTTP requests for contract generation and
// artifact download
type ContractHandler struct {
	contracts *service.ContractService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contracts *service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// ListTemplates handles GET /api/contract-templates
func (h *ContractHandler) ListTemplates(c *gin.Context) {
	templates, err := h.contracts.ListTemplates(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"templates": templates,
		},
	})
}

// GenerateContract handles POST /api/contracts/generate
func (h *ContractHandler) GenerateContract(c *gin.Context) {
	var req struct {
		SessionID    *uuid.UUID        `json:"session_id"`
		ContractType string            `json:"contract_type"`
		Fields       map[string]string `json:"fields"`
		FormatType   string            `json:"format_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be JSON")
		return
	}

	artifact, err := h.contracts.Generate(c.Request.Context(), service.GenerateRequest{
		SessionID:    req.SessionID,
		ContractType: req.ContractType,
		Fields:       req.Fields,
		FormatType:   req.FormatType,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"artifact": artifact,
		},
	})
}

// GenerateCustomContract handles POST /api/contracts/generate-custom
func (h *ContractHandler) GenerateCustomContract(c *gin.Context) {
	templateHeader, err := c.FormFile("template_file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SELECTION", "A template file is required")
		return
	}

	fields := map[string]string{}
	if raw := c.PostForm("fields_json"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "fields_json must be a JSON object of strings")
			return
		}
	}

	sessionID, ok := optionalSessionID(c)
	if !ok {
		return
	}

	template, err := templateHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded template")
		return
	}
	defer template.Close()

	artifact, err := h.contracts.GenerateCustom(c.Request.Context(), service.GenerateCustomRequest{
		SessionID:        sessionID,
		TemplateFilename: templateHeader.Filename,
		Template:         template,
		Fields:           fields,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"artifact": artifact,
		},
	})
}

// ListSessionArtifacts handles GET /api/sessions/:id/artifacts
func (h *ContractHandler) ListSessionArtifacts(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Invalid session id format")
		return
	}

	artifacts, err := h.contracts.ListSessionArtifacts(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"artifacts": artifacts,
		},
	})
}

// DownloadArtifact handles GET /api/artifacts/:id
func (h *ContractHandler) DownloadArtifact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ARTIFACT_ID", "Invalid artifact id format")
		return
	}

	artifact, content, err := h.contracts.GetArtifact(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer content.Close()

	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.DataFromReader(http.StatusOK, artifact.Size, artifact.MimeType, content, nil)
}
