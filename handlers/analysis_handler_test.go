package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalens-backend/models"
	"legalens-backend/service"
)

type stubBackend struct {
	analysis *models.DocumentAnalysis
	err      error
}

func (s *stubBackend) Analyze(ctx context.Context, filename string, file io.Reader) (*models.DocumentAnalysis, error) {
	return s.analysis, s.err
}

func (s *stubBackend) Compare(ctx context.Context, f1 string, r1 io.Reader, f2 string, r2 io.Reader) (*models.ComparisonPayload, error) {
	return &models.ComparisonPayload{}, s.err
}

func newAnalysisRouter(backend *stubBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	documents := service.NewDocumentService(service.WithAnalyzerBackend(backend))
	h := NewAnalysisHandler(documents)

	r := gin.New()
	r.POST("/api/analyze", h.AnalyzeDocument)
	r.POST("/api/compare", h.CompareDocuments)
	r.GET("/api/sessions/:id", h.GetSession)
	return r
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	return envelope
}

func TestAnalyzeDocumentSuccess(t *testing.T) {
	router := newAnalysisRouter(&stubBackend{
		analysis: &models.DocumentAnalysis{Summary: "a lease", FullText: "text"},
	})

	body, contentType := multipartUpload(t, "file", "lease.pdf", "%PDF")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec.Body)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	assert.NotEmpty(t, data["session_id"])
	report := data["report"].(map[string]any)
	assert.Equal(t, "a lease", report["summary"])
}

func TestAnalyzeDocumentMissingFile(t *testing.T) {
	router := newAnalysisRouter(&stubBackend{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec.Body)
	assert.Equal(t, false, envelope["success"])
	errObj := envelope["error"].(map[string]any)
	assert.Equal(t, "INVALID_SELECTION", errObj["code"])
}

func TestAnalyzeDocumentRejectsUnsupportedExtension(t *testing.T) {
	router := newAnalysisRouter(&stubBackend{})

	body, contentType := multipartUpload(t, "file", "notes.exe", "MZ")
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeEnvelope(t, rec.Body)["error"].(map[string]any)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", errObj["code"])
}

func TestCompareDocumentsRequiresBothFiles(t *testing.T) {
	router := newAnalysisRouter(&stubBackend{})

	body, contentType := multipartUpload(t, "file1", "a.pdf", "%PDF")
	req := httptest.NewRequest(http.MethodPost, "/api/compare", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeEnvelope(t, rec.Body)["error"].(map[string]any)
	assert.Equal(t, "INVALID_SELECTION", errObj["code"])
}

func TestGetSessionNotFound(t *testing.T) {
	router := newAnalysisRouter(&stubBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/00000000-0000-0000-0000-000000000001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	errObj := decodeEnvelope(t, rec.Body)["error"].(map[string]any)
	assert.Equal(t, "SESSION_NOT_FOUND", errObj["code"])
}

func TestGetSessionInvalidID(t *testing.T) {
	router := newAnalysisRouter(&stubBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
