package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// invokeURL helper
// ---------------------------------------------------------------------------

func TestInvokeURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://api.aiagent.example.com", "https://api.aiagent.example.com/v1/agents/invoke"},
		{"https://api.aiagent.example.com/", "https://api.aiagent.example.com/v1/agents/invoke"},
		{"http://localhost:8080", "http://localhost:8080/v1/agents/invoke"},
		{"", "https://api.aiagent.example.com/v1/agents/invoke"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, invokeURL(tc.base), "base=%q", tc.base)
	}
}

// ---------------------------------------------------------------------------
// NewClient
// ---------------------------------------------------------------------------

func TestNewClient_NoTokenSource(t *testing.T) {
	_, err := NewClient(nil, "/chatterpal")
	require.Error(t, err)
	require.Contains(t, err.Error(), "token")
}

func TestNewClient_StaticTokenNeedsNoGetter(t *testing.T) {
	c, err := NewClient(nil, "", WithToken("tok"))
	require.NoError(t, err)
	key, err := c.resolveToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok", key)
}

func TestNewClient_GetterNeedsPrefix(t *testing.T) {
	_, err := NewClient(&fakeGetter{}, "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "prefix")
}

// ---------------------------------------------------------------------------
// token resolution
// ---------------------------------------------------------------------------

// fakeGetter is a minimal paramstore stub for use within this package.
type fakeGetter struct {
	val    string
	err    error
	onCall func()
}

func (f *fakeGetter) GetParameter(_ context.Context, _ string) (string, error) {
	if f.onCall != nil {
		f.onCall()
	}
	return f.val, f.err
}

func TestResolveToken_FetchedOnce(t *testing.T) {
	calls := 0
	g := &fakeGetter{val: `{"token":"tok-from-ssm"}`}
	g.onCall = func() { calls++ }
	c, err := NewClient(g, "/chatterpal")
	require.NoError(t, err)

	key, err := c.resolveToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-from-ssm", key)

	_, _ = c.resolveToken(context.Background())
	_, _ = c.resolveToken(context.Background())
	require.Equal(t, 1, calls, "paramstore must only be hit once per process lifetime")
}

func TestFetchToken_MalformedJSON(t *testing.T) {
	g := &fakeGetter{val: `{"broken`}
	_, err := fetchTokenFromParamStore(context.Background(), g, "/chatterpal/agent-token")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmarshal")
}

func TestFetchToken_MissingTokenField(t *testing.T) {
	g := &fakeGetter{val: `{"other":"value"}`}
	_, err := fetchTokenFromParamStore(context.Background(), g, "/chatterpal/agent-token")
	require.Error(t, err)
	require.Contains(t, err.Error(), "token is empty")
}

func TestFetchToken_GetterError(t *testing.T) {
	g := &fakeGetter{err: errors.New("ssm unavailable")}
	_, err := fetchTokenFromParamStore(context.Background(), g, "/chatterpal/agent-token")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ssm unavailable")
}

// ---------------------------------------------------------------------------
// Client.Invoke
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(nil, "",
		WithToken("tok-test"),
		WithBaseURL(srv.URL),
		WithHTTPClient(&http.Client{Timeout: 2 * time.Second}),
	)
	require.NoError(t, err)
	return c
}

func TestInvoke_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/agents/invoke", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer tok-test", r.Header.Get("Authorization"))

		var req invokeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "agent-1", req.AgentID)
		require.Equal(t, "Hi", req.Message)
		require.Equal(t, "conv-9", req.Context.SessionID)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"response":{"result":{"response":"Hello!"}}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	res, err := c.Invoke(context.Background(), "Hi", "agent-1", Session{SessionID: "conv-9"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "Hello!", ExtractText(res.Response))
}

func TestInvoke_ReportedFailureIsNotATransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"rate limited"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	res, err := c.Invoke(context.Background(), "Hi", "agent-1", Session{SessionID: "c"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "rate limited", res.Error)
}

func TestInvoke_Non2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(500)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Invoke(context.Background(), "Hi", "agent-1", Session{SessionID: "c"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status")
	require.Contains(t, err.Error(), "500")

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 500, statusErr.HTTPStatusCode())
}

func TestInvoke_UndecodableEnvelopeIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Invoke(context.Background(), "Hi", "agent-1", Session{SessionID: "c"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode response")
}

func TestInvoke_NetworkError(t *testing.T) {
	c, err := NewClient(nil, "", WithToken("tok"))
	require.NoError(t, err)
	c.baseURL = "http://127.0.0.1:1"
	c.httpClient = &http.Client{Timeout: 100 * time.Millisecond}

	_, err = c.Invoke(context.Background(), "Hi", "agent-1", Session{SessionID: "c"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "request failed")
}

func TestInvoke_EmptyAgentID(t *testing.T) {
	c, err := NewClient(nil, "", WithToken("tok"))
	require.NoError(t, err)
	_, err = c.Invoke(context.Background(), "Hi", "  ", Session{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "agent id")
}

func TestInvoke_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}
	_, err := c.Invoke(context.Background(), "Hi", "agent-1", Session{SessionID: "c"})
	require.Error(t, err)
}

func TestInvoke_LargeErrorBodyTruncated(t *testing.T) {
	big := make([]byte, 10000)
	for i := range big {
		big[i] = 'x'
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(503)
		_, _ = w.Write(big)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Invoke(context.Background(), "Hi", "agent-1", Session{SessionID: "c"})
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.LessOrEqual(t, len(statusErr.Body), 4096)
}
