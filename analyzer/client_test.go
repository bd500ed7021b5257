package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, nil)
}

func TestAnalyze(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "lease.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cleaned_text": "line one\nline two",
			"summary": "a lease",
			"clauses": {"termination": [{"text": "terminate", "line_number": 2}]},
			"entities": {"dates": ["30 days"]},
			"statistics": {"word_count": 4},
			"signing_recommendation": {"percentage": 81, "recommendation": "Sign"}
		}`))
	})

	analysis, err := client.Analyze(context.Background(), "lease.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", analysis.FullText)
	assert.Equal(t, "a lease", analysis.Summary)
	require.Len(t, analysis.Clauses["termination"], 1)
	assert.Equal(t, 2, analysis.Clauses["termination"][0].LineNumber)
	assert.InDelta(t, 81, analysis.Recommendation.Percentage, 0.001)
}

func TestCompareSendsBothFiles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/compare", r.URL.Path)

		_, h1, err := r.FormFile("file1")
		require.NoError(t, err)
		_, h2, err := r.FormFile("file2")
		require.NoError(t, err)
		assert.Equal(t, "a.docx", h1.Filename)
		assert.Equal(t, "b.docx", h2.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"overall_similarity": {"percentage": 55.5}}`))
	})

	payload, err := client.Compare(context.Background(),
		"a.docx", strings.NewReader("one"),
		"b.docx", strings.NewReader("two"))
	require.NoError(t, err)
	assert.InDelta(t, 55.5, payload.OverallSimilarity.Percentage, 0.001)
}

func TestAsk(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "thirty days"}`))
	})

	answer, err := client.Ask(context.Background(), "what is the notice period?", "full text")
	require.NoError(t, err)
	assert.Equal(t, "thirty days", answer)
}

func TestBackendErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "unsupported file format"}`))
	})

	_, err := client.Analyze(context.Background(), "notes.xyz", strings.NewReader("x"))
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusUnprocessableEntity, be.StatusCode)
	assert.Equal(t, "unsupported file format", be.Detail)
}

func TestBackendErrorFallbackDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>Internal Server Error</html>`))
	})

	_, err := client.Ask(context.Background(), "q", "text")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "analysis request failed", be.Detail)
}

func TestGenerateContract(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-contract", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", `attachment; filename="nda.docx"`)
		w.Write([]byte("PK\x03\x04contract-bytes"))
	})

	doc, err := client.GenerateContract(context.Background(), GenerateRequest{
		ContractType: "nda",
		UserData:     map[string]string{"party_1": "Acme"},
		FormatType:   "docx",
	})
	require.NoError(t, err)
	assert.Equal(t, "nda.docx", doc.Filename)
	assert.Contains(t, doc.ContentType, "wordprocessingml")
	assert.NotEmpty(t, doc.Content)
}

func TestGenerateFromTemplate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-contract-from-custom-template", r.URL.Path)
		_, header, err := r.FormFile("template_file")
		require.NoError(t, err)
		assert.Equal(t, "template.docx", header.Filename)
		assert.Contains(t, r.FormValue("fields_json"), "Acme")

		w.Header().Set("Content-Disposition", `attachment; filename="filled.docx"`)
		w.Write([]byte("filled"))
	})

	doc, err := client.GenerateFromTemplate(context.Background(),
		"template.docx", strings.NewReader("tpl"), map[string]string{"company": "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "filled.docx", doc.Filename)
}

func TestTemplates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/contract-templates", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "templates": {"nda": {"description": "Non-disclosure agreement", "required_fields": ["party_1", "party_2"]}}}`))
	})

	templates, err := client.Templates(context.Background())
	require.NoError(t, err)
	require.Contains(t, templates, "nda")
	assert.Equal(t, []string{"party_1", "party_2"}, templates["nda"].RequiredFields)
}
