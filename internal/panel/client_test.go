package panel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoNodes = `{
  "object": "list",
  "data": [
    {"object": "node", "attributes": {"id": 1, "name": "node-1", "allocated_resources": {"memory": 2048, "disk": 10240}}},
    {"object": "node", "attributes": {"id": 2, "name": "node-2", "allocated_resources": {"memory": 0, "disk": 512}}}
  ]
}`

func newPanel(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_Success(t *testing.T) {
	var gotPath, gotAuth, gotAccept, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(twoNodes))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "ptla_secret")
	snap := c.Fetch(context.Background())

	require.True(t, snap.Reachable)
	require.NoError(t, snap.Err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, NodesPath, gotPath)
	assert.Equal(t, "Bearer ptla_secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)

	require.Len(t, snap.Nodes, 2)
	assert.Equal(t, Node{Name: "node-1", MemoryMB: 2048, DiskMB: 10240}, snap.Nodes[0])
	assert.Equal(t, Node{Name: "node-2", MemoryMB: 0, DiskMB: 512}, snap.Nodes[1])
}

func TestFetch_EmptyList(t *testing.T) {
	srv := newPanel(t, http.StatusOK, `{"data": []}`)

	snap := NewClient(srv.URL, "k").Fetch(context.Background())

	assert.True(t, snap.Reachable)
	assert.Empty(t, snap.Nodes)
}

func TestFetch_FailuresCollapseToUnreachable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"errors": []}`},
		{name: "server error", status: http.StatusInternalServerError, body: "oops"},
		{name: "redirect-free 204", status: http.StatusNoContent, body: ""},
		{name: "html body", status: http.StatusOK, body: "<html>bad gateway</html>"},
		{name: "truncated json", status: http.StatusOK, body: `{"data": [`},
		{name: "missing data", status: http.StatusOK, body: `{"meta": {}}`},
		{name: "null data", status: http.StatusOK, body: `{"data": null}`},
		{name: "missing attributes", status: http.StatusOK, body: `{"data": [{"object": "node"}]}`},
		{name: "wrong types", status: http.StatusOK, body: `{"data": [{"attributes": {"name": "n", "allocated_resources": {"memory": "lots"}}}]}`},
		{name: "negative memory", status: http.StatusOK, body: `{"data": [{"attributes": {"name": "n", "allocated_resources": {"memory": -1, "disk": 1}}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newPanel(t, tt.status, tt.body)

			snap := NewClient(srv.URL, "k").Fetch(context.Background())

			assert.False(t, snap.Reachable)
			assert.Nil(t, snap.Nodes)
			require.Error(t, snap.Err)
			assert.True(t, errors.IsCode(snap.Err, errors.ErrPanel))
		})
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	snap := NewClient(url, "k").Fetch(context.Background())

	assert.False(t, snap.Reachable)
	assert.True(t, errors.IsCode(snap.Err, errors.ErrPanel))
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, "k", WithTimeout(50*time.Millisecond))
	snap := c.Fetch(context.Background())

	assert.False(t, snap.Reachable)
	assert.Error(t, snap.Err)
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := newPanel(t, http.StatusOK, twoNodes)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := NewClient(srv.URL, "k").Fetch(ctx)

	assert.False(t, snap.Reachable)
}

func TestFetch_BadBaseURL(t *testing.T) {
	snap := NewClient("http://\n", "k").Fetch(context.Background())

	assert.False(t, snap.Reachable)
	assert.Contains(t, snap.Err.Error(), "Cannot build panel request")
}

func TestFetch_StatusHints(t *testing.T) {
	srv := newPanel(t, http.StatusForbidden, "")

	snap := NewClient(srv.URL, "k").Fetch(context.Background())

	require.Error(t, snap.Err)
	assert.Contains(t, snap.Err.Error(), "HTTP 403")
	assert.Contains(t, snap.Err.Error(), "panel.api_key")
}

func TestFetch_AppliesUptimeSource(t *testing.T) {
	srv := newPanel(t, http.StatusOK, twoNodes)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := NewClient(srv.URL, "k", WithClock(clock), WithUptimeSource(NewObservedUptime()))

	first := c.Fetch(context.Background())
	require.True(t, first.Reachable)
	assert.True(t, first.Nodes[0].UptimeKnown)
	assert.Equal(t, time.Duration(0), first.Nodes[0].Uptime)
	assert.Equal(t, now, first.FetchedAt)

	now = now.Add(90 * time.Second)
	second := c.Fetch(context.Background())
	assert.Equal(t, 90*time.Second, second.Nodes[0].Uptime)
}
