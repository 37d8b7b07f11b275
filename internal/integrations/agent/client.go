// Package agent is the client shim for the remote conversational agent.
// It reports three distinct outcomes: a successful envelope with an opaque
// response payload, a reported failure with a human-readable error string,
// or a transport error (returned as a Go error) when no envelope arrived
// at all.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.aiagent.example.com"

// Session is the per-call context map sent to the agent. The session id is
// the conversation id, correlating turns on the agent side.
type Session struct {
	SessionID string `json:"session_id"`
}

// Result is the normalized agent envelope.
type Result struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// invokeRequest is the wire shape for an agent invocation.
type invokeRequest struct {
	AgentID string  `json:"agent_id"`
	Message string  `json:"message"`
	Context Session `json:"context"`
}

// tokenPayload is the expected JSON shape stored in SSM for the API token.
type tokenPayload struct {
	Token string `json:"token"`
}

// Getter is the parameter source used to resolve the API token when no
// static token is configured.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("agent: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client invokes the remote agent over HTTP.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	getter      Getter
	paramPrefix string
	staticToken string

	keyOnce sync.Once
	token   string
	keyErr  error
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets a static API token, bypassing paramstore resolution.
func WithToken(token string) Option {
	return func(c *Client) {
		c.staticToken = strings.TrimSpace(token)
	}
}

// NewClient creates an agent Client. The API token comes either from
// WithToken or from the paramstore Getter on the first invocation, cached
// for the process lifetime.
func NewClient(ps Getter, paramPrefix string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		getter:      ps,
		paramPrefix: strings.TrimRight(strings.TrimSpace(paramPrefix), "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.staticToken == "" && c.getter == nil {
		return nil, errors.New("agent: either a static token or a paramstore getter is required")
	}
	if c.staticToken == "" && c.paramPrefix == "" {
		return nil, errors.New("agent: parameter prefix must not be empty")
	}
	return c, nil
}

// resolveToken returns the static token, or fetches the token from the
// paramstore on the first call and caches the result.
func (c *Client) resolveToken(ctx context.Context) (string, error) {
	if c.staticToken != "" {
		return c.staticToken, nil
	}
	c.keyOnce.Do(func() {
		c.token, c.keyErr = fetchTokenFromParamStore(ctx, c.getter, c.tokenParameterName())
	})
	return c.token, c.keyErr
}

func (c *Client) tokenParameterName() string {
	return c.paramPrefix + "/agent-token"
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func invokeURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base + "/v1/agents/invoke"
}

// Invoke sends the prompt plus session context to the agent and decodes the
// result envelope. A returned error means transport failure: no envelope
// was received and the caller must treat the outcome as distinct from a
// reported (Success=false) failure.
func (c *Client) Invoke(ctx context.Context, prompt, agentID string, session Session) (Result, error) {
	if strings.TrimSpace(agentID) == "" {
		return Result{}, errors.New("agent: agent id must not be empty")
	}

	token, err := c.resolveToken(ctx)
	if err != nil {
		return Result{}, err
	}

	body, err := json.Marshal(invokeRequest{
		AgentID: agentID,
		Message: prompt,
		Context: session,
	})
	if err != nil {
		return Result{}, fmt.Errorf("agent: marshal request: %w", err)
	}

	url := invokeURL(c.baseURL)

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return Result{}, fmt.Errorf("agent: create request: %w", reqErr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	raw, err := c.doJSONRequest(req, url)
	if err != nil {
		return Result{}, fmt.Errorf("agent: request failed: %w", err)
	}

	var result Result
	if decErr := json.Unmarshal(raw, &result); decErr != nil {
		return Result{}, fmt.Errorf("agent: decode response: %w", decErr)
	}
	return result, nil
}

func (c *Client) doJSONRequest(req *http.Request, url string) ([]byte, error) {
	res, doErr := c.resolvedHTTPClient().Do(req)
	if doErr != nil {
		return nil, doErr
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}

func fetchTokenFromParamStore(ctx context.Context, getter Getter, name string) (string, error) {
	if getter == nil {
		return "", errors.New("agent: paramstore getter is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("agent: token parameter name is empty")
	}

	raw, err := getter.GetParameter(ctx, name)
	if err != nil {
		return "", fmt.Errorf("agent: fetch token from paramstore: %w", err)
	}
	var tp tokenPayload
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return "", fmt.Errorf("agent: unmarshal paramstore token value as JSON: %w", err)
	}
	if tp.Token == "" {
		return "", fmt.Errorf("agent: API token is empty")
	}
	return tp.Token, nil
}
