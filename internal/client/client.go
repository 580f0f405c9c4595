// Package client talks to a corpus server over its /files HTTP API.
//
// Upload computes the fingerprint locally, so callers only ever handle content.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"corpusapi/internal/fingerprint"
	"corpusapi/internal/model"
)

// Failure codes reported by the server.
const (
	CodeNotFound      = 1
	CodeHashMismatch  = 2
	CodeAlreadyExists = 3
	CodeDBError       = 4
)

const defaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of an unexpected response is kept in an error.
const maxErrorBody = 4 << 10

// APIError is a non-zero code returned inside a response envelope.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("corpus: code %d: %s", e.Code, e.Message)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// StatusError is a response that did not carry an envelope, e.g. a 5xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("corpus: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default traced HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:7001".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

type existsResult struct {
	Exists bool `json:"exists"`
}

type uploadResult struct {
	Success bool `json:"success"`
}

type downloadResult struct {
	Content string `json:"content"`
}

type listResult struct {
	Files []model.DocumentPreview `json:"files"`
}

// Exists reports whether the server stores a document with the fingerprint.
func (c *Client) Exists(ctx context.Context, fp string) (bool, error) {
	res, err := do[existsResult](ctx, c, http.MethodGet, "/files/"+url.PathEscape(fp)+"/exists", nil)
	if err != nil {
		return false, err
	}
	return res.Exists, nil
}

// Upload sends content and returns the fingerprint it is stored under.
// Content that is already stored fails with CodeAlreadyExists.
func (c *Client) Upload(ctx context.Context, content string) (string, error) {
	fp := fingerprint.Of(content)
	res, err := do[uploadResult](ctx, c, http.MethodPost, "/files/"+fp, strings.NewReader(content))
	if err != nil {
		return fp, err
	}
	if !res.Success {
		return fp, fmt.Errorf("corpus: upload of %s not acknowledged", fp)
	}
	return fp, nil
}

// Download returns the content stored under fp.
func (c *Client) Download(ctx context.Context, fp string) (string, error) {
	res, err := do[downloadResult](ctx, c, http.MethodGet, "/files/"+url.PathEscape(fp), nil)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// Compare returns similarity metrics between two stored documents.
func (c *Client) Compare(ctx context.Context, fp1, fp2 string) (model.ComparisonResult, error) {
	return do[model.ComparisonResult](ctx, c, http.MethodGet,
		"/files/"+url.PathEscape(fp1)+"/compare/"+url.PathEscape(fp2), nil)
}

// List returns a preview of every stored document.
func (c *Client) List(ctx context.Context) ([]model.DocumentPreview, error) {
	res, err := do[listResult](ctx, c, http.MethodGet, "/files", nil)
	if err != nil {
		return nil, err
	}
	if res.Files == nil {
		return []model.DocumentPreview{}, nil
	}
	return res.Files, nil
}

// do sends one request and unwraps the response envelope.
func do[T any](ctx context.Context, c *Client, method, path string, body io.Reader) (T, error) {
	var zero T

	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return zero, fmt.Errorf("create request failed: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return zero, &StatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Code != 0 {
		return zero, &APIError{Code: env.Code, Message: env.Message}
	}
	return env.Result, nil
}
