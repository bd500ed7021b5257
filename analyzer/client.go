// Package analyzer is the HTTP client for the document analysis backend.
// The backend owns extraction, NLP scoring and contract rendering; this
// client only speaks its wire contract and reports failures as
// *BackendError so callers can surface the backend's own detail message.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"legalens-backend/models"
)

// BackendError is a non-2xx response from the analysis backend. Detail is
// the backend's own error message when one could be parsed.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("analysis backend returned %d: %s", e.StatusCode, e.Detail)
}

// GeneratedDocument is a rendered contract returned by the backend.
type GeneratedDocument struct {
	Filename    string
	ContentType string
	Content     []byte
}

// GenerateRequest selects a built-in contract template and fills its fields.
type GenerateRequest struct {
	ContractType string            `json:"contract_type"`
	UserData     map[string]string `json:"user_data"`
	FormatType   string            `json:"format_type"`
}

// Client talks to one analysis backend instance. Requests are not retried;
// a failed round-trip surfaces immediately so the session state machine can
// release its in-flight slot.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Analyze uploads one document and returns its raw analysis.
func (c *Client) Analyze(ctx context.Context, filename string, file io.Reader) (*models.DocumentAnalysis, error) {
	body, contentType, err := encodeMultipart(map[string]string{}, []filePart{{field: "file", filename: filename, data: file}})
	if err != nil {
		return nil, err
	}

	var analysis models.DocumentAnalysis
	if err := c.post(ctx, "/analyze", contentType, body, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Compare uploads a document pair and returns the raw comparison payload.
func (c *Client) Compare(ctx context.Context, filename1 string, file1 io.Reader, filename2 string, file2 io.Reader) (*models.ComparisonPayload, error) {
	body, contentType, err := encodeMultipart(map[string]string{}, []filePart{
		{field: "file1", filename: filename1, data: file1},
		{field: "file2", filename: filename2, data: file2},
	})
	if err != nil {
		return nil, err
	}

	var payload models.ComparisonPayload
	if err := c.post(ctx, "/compare", contentType, body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Ask sends a question about documentText and returns the backend's answer.
func (c *Client) Ask(ctx context.Context, question, documentText string) (string, error) {
	reqBody, err := json.Marshal(map[string]string{
		"question":      question,
		"document_text": documentText,
	})
	if err != nil {
		return "", err
	}

	var result struct {
		Answer string `json:"answer"`
	}
	if err := c.post(ctx, "/chat", "application/json", bytes.NewReader(reqBody), &result); err != nil {
		return "", err
	}
	return result.Answer, nil
}

// Templates lists the backend's built-in contract templates.
func (c *Client) Templates(ctx context.Context) (map[string]models.ContractTemplate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/contract-templates", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var result struct {
		Templates map[string]models.ContractTemplate `json:"templates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode templates response: %w", err)
	}
	return result.Templates, nil
}

// GenerateContract renders a built-in template with the given field values
// and returns the produced document bytes.
func (c *Client) GenerateContract(ctx context.Context, genReq GenerateRequest) (*GeneratedDocument, error) {
	reqBody, err := json.Marshal(genReq)
	if err != nil {
		return nil, err
	}
	return c.postForDocument(ctx, "/generate-contract", "application/json", bytes.NewReader(reqBody))
}

// GenerateFromTemplate uploads a user-supplied template document and fills
// its placeholders with the given field values.
func (c *Client) GenerateFromTemplate(ctx context.Context, templateFilename string, template io.Reader, fields map[string]string) (*GeneratedDocument, error) {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeMultipart(
		map[string]string{"fields_json": string(fieldsJSON)},
		[]filePart{{field: "template_file", filename: templateFilename, data: template}},
	)
	if err != nil {
		return nil, err
	}
	return c.postForDocument(ctx, "/generate-contract-from-custom-template", contentType, body)
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("analysis backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func (c *Client) postForDocument(ctx context.Context, path, contentType string, body io.Reader) (*GeneratedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated document: %w", err)
	}
	return &GeneratedDocument{
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// decodeError extracts the backend's {"detail": "..."} error body. Anything
// unparseable falls back to a generic message so callers never see raw
// bodies.
func (c *Client) decodeError(resp *http.Response) error {
	detail := "analysis request failed"

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil {
		var parsed struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &parsed) == nil && parsed.Detail != "" {
			detail = parsed.Detail
		}
	}

	c.logger.Warn("analysis backend error",
		zap.Int("status", resp.StatusCode),
		zap.String("detail", detail))
	return &BackendError{StatusCode: resp.StatusCode, Detail: detail}
}

type filePart struct {
	field    string
	filename string
	data     io.Reader
}

func encodeMultipart(fields map[string]string, files []filePart) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.data); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
