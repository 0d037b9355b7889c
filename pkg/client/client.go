package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cuemby/orka/pkg/log"
	"github.com/cuemby/orka/pkg/metrics"
	"github.com/cuemby/orka/pkg/workload"
	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds every API call
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a fresh uuid on every request
	RequestIDHeader = "X-Request-ID"

	endpointWorkloads = "workloads"
	endpointWorkload  = "workload"
	endpointInstance  = "instance"
)

// ErrMalformedResponse is returned when the API answers with a body that is not JSON
var ErrMalformedResponse = errors.New("the response is not a formatted json")

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Status     string
	// ServerStatus and Message come from a JSON error body, when there is one
	ServerStatus string
	Message      string
	Body         string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("the server returned with error %s", e.Status)
	if e.Message != "" || e.ServerStatus != "" {
		return fmt.Sprintf("%s (status: %s, message: %s)", msg, e.ServerStatus, e.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: %s", msg, e.Body)
	}
	return msg
}

// Client talks to the orka API over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for baseURL. baseURL must end with a slash,
// as produced by config.AddPortToURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateWorkload posts a canonical workload tree
func (c *Client) CreateWorkload(ctx context.Context, tree *workload.Tree) (any, error) {
	return c.do(ctx, http.MethodPost, endpointWorkloads, "", tree)
}

// CreateInstance asks the API to create an instance
func (c *Client) CreateInstance(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodPost, endpointInstance, "", nil)
}

// GetWorkload gets one workload, or all of them when id is empty
func (c *Client) GetWorkload(ctx context.Context, id string) (any, error) {
	return c.do(ctx, http.MethodGet, endpointWorkload, id, nil)
}

// GetInstance gets one instance, or all of them when id is empty
func (c *Client) GetInstance(ctx context.Context, id string) (any, error) {
	return c.do(ctx, http.MethodGet, endpointInstance, id, nil)
}

// DeleteWorkload deletes a workload by ID
func (c *Client) DeleteWorkload(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, errors.New("workload id is required")
	}
	return c.do(ctx, http.MethodDelete, endpointWorkload, id, nil)
}

// DeleteInstance deletes an instance by ID
func (c *Client) DeleteInstance(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, errors.New("instance id is required")
	}
	return c.do(ctx, http.MethodDelete, endpointInstance, id, nil)
}

func (c *Client) url(endpoint, id string) string {
	u := c.baseURL + endpoint
	if id != "" {
		u += "/" + id
	}
	return u
}

// do sends one request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, endpoint, id string, body any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestID := uuid.NewString()
	reqLog := log.WithRequestID(requestID)

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.url(endpoint, id)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqLog.Debug().Str("method", method).Str("url", url).Msg("Sending request")

	timer := metrics.NewTimer()
	resp, err := c.httpClient.Do(req)
	timer.ObserveDurationVec(metrics.APIRequestDuration, method, endpoint)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "error").Inc()
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	reqLog.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", timer.Duration()).
		Msg("Received response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp, data)
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return result, nil
}

func newAPIError(resp *http.Response, data []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err == nil {
		if v, ok := body["status"]; ok {
			apiErr.ServerStatus = fmt.Sprint(v)
		}
		if v, ok := body["message"]; ok {
			apiErr.Message = fmt.Sprint(v)
		}
		return apiErr
	}

	apiErr.Body = strings.TrimSpace(string(data))
	return apiErr
}
