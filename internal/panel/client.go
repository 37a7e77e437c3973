// Package panel reads node data from a Pterodactyl-style panel's application API.
package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/errors"
)

// maxBodyBytes caps how much of a response is decoded.
const maxBodyBytes = 8 << 20

// Fetcher is what the scheduler and query paths need from a panel.
type Fetcher interface {
	Fetch(ctx context.Context) Snapshot
}

// Client issues authenticated reads against the panel.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	uptime  UptimeSource
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero leaves the client without a timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUptimeSource selects where node uptime comes from.
func WithUptimeSource(s UptimeSource) Option {
	return func(c *Client) { c.uptime = s }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a client for the panel at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		uptime:  NoUptime{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadOnly returns a client sharing c's transport and clock whose uptime source only
// reads what c has recorded.
func (c *Client) ReadOnly() *Client {
	view := *c
	view.uptime = ReadOnly(c.uptime)
	return &view
}

// Fetch lists the panel's nodes. Every failure (transport error, timeout, non-200 status,
// undecodable body) collapses into an unreachable snapshot; nothing is retried.
func (c *Client) Fetch(ctx context.Context) Snapshot {
	nodes, err := c.listNodes(ctx)
	at := c.now()
	snap := Snapshot{Reachable: err == nil, Nodes: nodes, Err: err, FetchedAt: at}
	if err != nil {
		snap.Nodes = nil
	}
	c.uptime.Apply(&snap)
	return snap
}

func (c *Client) listNodes(ctx context.Context) ([]Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+NodesPath, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPanel,
			"Cannot build panel request",
			"Check panel.url")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPanel,
			"Panel request failed",
			"Check the panel is up and reachable from this host")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.New(errors.ErrPanel,
			fmt.Sprintf("Panel returned HTTP %d", resp.StatusCode),
			statusHint(resp.StatusCode))
	}

	var list nodeList
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&list); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPanel,
			"Panel response is not valid JSON",
			"Check panel.url points at the panel, not a proxy error page")
	}

	return decodeNodes(list)
}

func decodeNodes(list nodeList) ([]Node, error) {
	if list.Data == nil {
		return nil, errors.New(errors.ErrPanel,
			"Panel response has no 'data' list",
			"Check panel.url points at a Pterodactyl application API")
	}

	nodes := make([]Node, 0, len(*list.Data))
	for i, obj := range *list.Data {
		if obj.Attributes == nil {
			return nil, errors.New(errors.ErrPanel,
				fmt.Sprintf("Node %d in the panel response has no attributes", i), "")
		}
		a := obj.Attributes
		if a.AllocatedResources.Memory < 0 || a.AllocatedResources.Disk < 0 {
			return nil, errors.New(errors.ErrPanel,
				fmt.Sprintf("Node '%s' reports negative allocated resources", a.Name), "")
		}
		nodes = append(nodes, Node{
			Name:     a.Name,
			MemoryMB: a.AllocatedResources.Memory,
			DiskMB:   a.AllocatedResources.Disk,
		})
	}
	return nodes, nil
}

func statusHint(code int) string {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "Check panel.api_key is an application key with node read access"
	case http.StatusNotFound:
		return "Check panel.url is the panel root, without /api"
	case http.StatusTooManyRequests:
		return "The panel is rate limiting; consider a longer interval"
	default:
		return ""
	}
}
