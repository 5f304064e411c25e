package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ren-lyn/midterm-lab3/pkg/ctxutil"
)

// DefaultBaseURL is the users collection of a locally running server.
const DefaultBaseURL = "http://localhost:5000/api/users"

// ErrUnexpected wraps responses the client cannot interpret.
var ErrUnexpected = errors.New("unexpected response")

// APIError is a non-2xx answer from the server. Message is empty when the
// body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

// TransportError means no response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPClient implements API over the REST endpoints.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewHTTPClient creates a client for the collection at baseURL. An empty
// baseURL means DefaultBaseURL.
func NewHTTPClient(baseURL string, logger *slog.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.With("adapter", "users_api"),
	}
}

// List fetches all records.
func (c *HTTPClient) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create posts a new record.
func (c *HTTPClient) Create(ctx context.Context, d Draft) (*Record, error) {
	var r Record
	if err := c.do(ctx, http.MethodPost, c.baseURL, d, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Update replaces the record with the given id.
func (c *HTTPClient) Update(ctx context.Context, id string, d Draft) (*Record, error) {
	var r Record
	if err := c.do(ctx, http.MethodPut, c.recordURL(id), d, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes the record with the given id.
func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.recordURL(id), nil, nil)
}

func (c *HTTPClient) recordURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func (c *HTTPClient) do(ctx context.Context, method, reqURL string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("users api: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("users api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		req.Header.Set(ctxutil.RequestIDHeader, id)
	}

	c.log.DebugContext(ctx, "users api request",
		slog.String("method", method),
		slog.String("url", reqURL),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + reqURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: method + " " + reqURL, Err: err}
	}

	c.log.DebugContext(ctx, "users api response",
		slog.String("method", method),
		slog.String("url", reqURL),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: status %d: %v", ErrUnexpected, resp.StatusCode, err)
	}
	return nil
}

// decodeError reads the server's {"message": ...} body. Any other body
// still yields an APIError, with an empty Message.
func decodeError(status int, data []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &body)
	return &APIError{Status: status, Message: body.Message}
}
