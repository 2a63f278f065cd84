// Package analysis submits articles to the external analysis service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/types"
)

// DefaultTimeout bounds one analysis request. Analyses run several model calls upstream.
const DefaultTimeout = 3 * time.Minute

// Service endpoints, relative to the base URL.
const (
	PathAnalyzeURL  = "/api/analyze/url"
	PathAnalyzeText = "/api/analyze/text"
	PathAnalyzePDF  = "/api/analyze/pdf"
)

// RequestError is a failed submission. Status is 0 for transport and validation failures.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("analysis request failed (%d): %s", e.Status, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("analysis request failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Client talks to the analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. A nil httpClient gets DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SubmitURL analyzes the article at articleURL and returns the raw report.
func (c *Client) SubmitURL(ctx context.Context, articleURL, purpose string) ([]byte, error) {
	req := &types.AnalyzeURLRequest{URL: strings.TrimSpace(articleURL), Purpose: strings.TrimSpace(purpose)}
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Message: "invalid url request", Cause: err}
	}
	return c.postJSON(ctx, PathAnalyzeURL, req, req.Purpose)
}

// SubmitText analyzes pasted article text and returns the raw report.
func (c *Client) SubmitText(ctx context.Context, text, purpose string) ([]byte, error) {
	req := &types.AnalyzeTextRequest{Text: strings.TrimSpace(text), Purpose: strings.TrimSpace(purpose)}
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Message: fmt.Sprintf("text must be at least %d characters", types.MinTextLength), Cause: err}
	}
	return c.postJSON(ctx, PathAnalyzeText, req, req.Purpose)
}

// SubmitFile uploads a document and returns the raw report.
func (c *Client) SubmitFile(ctx context.Context, filename string, content io.Reader, purpose string) ([]byte, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, &RequestError{Message: "failed to read file", Cause: err}
	}

	req := &types.AnalyzeFileRequest{Filename: filename, Size: int64(len(data)), Purpose: strings.TrimSpace(purpose)}
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Message: "file is missing or empty", Cause: err}
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, &RequestError{Message: "failed to build upload", Cause: err}
	}
	if _, err := part.Write(data); err != nil {
		return nil, &RequestError{Message: "failed to build upload", Cause: err}
	}
	if req.Purpose != "" {
		if err := w.WriteField("purpose", req.Purpose); err != nil {
			return nil, &RequestError{Message: "failed to build upload", Cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &RequestError{Message: "failed to build upload", Cause: err}
	}

	return c.do(ctx, PathAnalyzePDF, w.FormDataContentType(), &body, req.Purpose)
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, purpose string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &RequestError{Message: "failed to encode request", Cause: err}
	}
	return c.do(ctx, path, "application/json", bytes.NewReader(body), purpose)
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, purpose string) ([]byte, error) {
	log := observability.Log.WithFields(logrus.Fields{"path": path})
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, &RequestError{Message: "failed to build request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WithError(err).Warn("analysis request failed")
		return nil, &RequestError{Message: "service unreachable", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "duration": time.Since(start).String()})
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(raw, resp.StatusCode)
		log.WithField("error", msg).Warn("analysis rejected")
		return nil, &RequestError{Status: resp.StatusCode, Message: msg}
	}

	log.Info("analysis complete")
	return markPurpose(raw, purpose)
}

// errorMessage extracts {"error": msg} from a failed response.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(status)
}

// markPurpose sets hasPurpose when the caller supplied a purpose and the service
// left the flag out. Any other payload is returned untouched.
func markPurpose(raw []byte, purpose string) ([]byte, error) {
	if purpose == "" {
		return raw, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &RequestError{Status: http.StatusOK, Message: "service returned malformed report", Cause: err}
	}
	if _, ok := fields["hasPurpose"]; ok {
		return raw, nil
	}
	fields["hasPurpose"] = json.RawMessage("true")

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, &RequestError{Message: "failed to encode report", Cause: err}
	}
	return out, nil
}
