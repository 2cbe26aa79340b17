package httpclient

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"bookkeeping-gateway/internal/config"
	"bookkeeping-gateway/internal/domain/entity"
)

const (
	maxBodyLogLength   = 500   // Maximum characters to log for body
	maxBodyStoreLength = 10000 // Maximum characters stored per API call

	headerRequestID = "X-Request-ID"
)

var (
	ErrUnauthorized = errors.New("bookkeeping rejected the API token")
	ErrNotFound     = errors.New("resource not found")

	// ErrInvalidResponse wraps a 2xx body that could not be decoded into the result
	ErrInvalidResponse = errors.New("invalid response from bookkeeping")
)

// APIError is returned when Bookkeeping answers with a non 2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status=%d, body=%s", e.StatusCode, truncateString(e.Body, maxBodyLogLength))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

type HTTPClient interface {
	// Get performs a GET request, query may be nil
	Get(ctx context.Context, path string, query url.Values, result interface{}) error
	// Post performs a POST request with a JSON body
	Post(ctx context.Context, path string, body interface{}, result interface{}) error
	// PostMultipart performs a multipart/form-data POST request
	PostMultipart(ctx context.Context, path string, form *entity.MultipartForm, result interface{}) error
}

// APICallSaver persists a record of every request sent to Bookkeeping
type APICallSaver interface {
	Save(ctx context.Context, call *entity.APICall) error
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type httpClient struct {
	client       *http.Client
	baseURL      string
	token        string
	apiCallSaver APICallSaver
	logger       *zap.Logger
}

func NewHTTPClient(cfg *config.Config, apiCallSaver APICallSaver, logger *zap.Logger) HTTPClient {
	logger.Info("Bookkeeping HTTP client initialized",
		zap.String("base_url", cfg.Bookkeeping.BaseURL),
		zap.Duration("timeout", cfg.Bookkeeping.Timeout),
		zap.Bool("token_configured", cfg.Bookkeeping.Token != ""),
	)

	return &httpClient{
		client: &http.Client{
			Timeout: cfg.Bookkeeping.Timeout,
		},
		baseURL:      strings.TrimRight(cfg.Bookkeeping.BaseURL, "/"),
		token:        cfg.Bookkeeping.Token,
		apiCallSaver: apiCallSaver,
		logger:       logger,
	}
}

// truncateString truncates a string if it exceeds maxLength
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + fmt.Sprintf("... [truncated, total %d chars]", len(s))
}

var tokenPattern = regexp.MustCompile(`token=[^&]*`)

// redactURL hides the API token in URLs that end up in logs or storage
func redactURL(u string) string {
	return tokenPattern.ReplaceAllString(u, "token=REDACTED")
}

func (c *httpClient) buildURL(path string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if c.token != "" {
		q.Set("token", c.token)
	}

	fullURL := c.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

// logRequest logs the HTTP request details
func (c *httpClient) logRequest(requestID, method, fullURL string, body []byte) {
	c.logger.Info("Bookkeeping request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", redactURL(fullURL)),
		zap.String("body", truncateString(string(body), maxBodyLogLength)),
	)
}

// logResponse logs the HTTP response details
func (c *httpClient) logResponse(requestID string, statusCode int, duration time.Duration, body []byte) {
	c.logger.Info("Bookkeeping response",
		zap.String("request_id", requestID),
		zap.Int("status", statusCode),
		zap.Duration("duration", duration),
		zap.String("body", truncateString(string(body), maxBodyLogLength)),
	)
}

// saveAPICall stores the request/response pair without blocking the caller
func (c *httpClient) saveAPICall(requestID, method, fullURL string, requestBody, responseBody []byte, statusCode int, duration time.Duration) {
	if c.apiCallSaver == nil {
		return
	}

	call := &entity.APICall{
		CorrelationID: requestID,
		Endpoint:      redactURL(fullURL),
		Method:        method,
		RequestBody:   truncateString(string(requestBody), maxBodyStoreLength),
		ResponseBody:  truncateString(string(responseBody), maxBodyStoreLength),
		StatusCode:    statusCode,
		Duration:      duration.Milliseconds(),
		CreatedAt:     time.Now(),
	}

	go func() {
		if err := c.apiCallSaver.Save(context.Background(), call); err != nil {
			c.logger.Warn("Failed to save API call",
				zap.String("request_id", requestID),
				zap.String("endpoint", call.Endpoint),
				zap.Error(err),
			)
		}
	}()
}

// do sends req and decodes a 2xx body into result. logBody is what gets logged
// and stored for the request.
func (c *httpClient) do(req *http.Request, logBody []byte, result interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)

	fullURL := req.URL.String()
	c.logRequest(requestID, req.Method, fullURL, logBody)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logResponse(requestID, resp.StatusCode, duration, respBody)
	c.saveAPICall(requestID, req.Method, fullURL, logBody, respBody, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil && len(respBody) > 0 {
		if err := decodeResponse(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w: %w", ErrInvalidResponse, err)
		}
	}

	return nil
}

// decodeResponse calls a result's own UnmarshalJSON directly, since jsoniter
// flattens the error it returns into a string
func decodeResponse(body []byte, result interface{}) error {
	if u, ok := result.(stdjson.Unmarshaler); ok {
		return u.UnmarshalJSON(body)
	}
	return json.Unmarshal(body, result)
}

func (c *httpClient) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, query), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, nil, result)
}

func (c *httpClient) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path, nil), bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, jsonBody, result)
}

// PostMultipart sends a multipart/form-data POST request
func (c *httpClient) PostMultipart(ctx context.Context, path string, form *entity.MultipartForm, result interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := form.WriteTo(writer); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, multipartSummary(form), result)
}

// multipartSummary describes a form for logging without dumping file contents
func multipartSummary(form *entity.MultipartForm) []byte {
	var fields, files []string
	for _, part := range form.Parts() {
		if part.FileName != "" {
			files = append(files, fmt.Sprintf("%s(%s, %d bytes)", part.Name, part.FileName, len(part.Data)))
			continue
		}
		fields = append(fields, part.Name)
	}
	return []byte(fmt.Sprintf("{fields: [%s], files: [%s]}", strings.Join(fields, ", "), strings.Join(files, ", ")))
}
