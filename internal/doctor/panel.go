package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/panel"
)

// PanelReachableCheck fetches the node listing once, exactly as the poll loop does.
type PanelReachableCheck struct {
	Fetcher panel.Fetcher
	URL     string

	// Nodes is populated after Run.
	Nodes []panel.Node
}

func (c *PanelReachableCheck) Name() string     { return "panel_reachable" }
func (c *PanelReachableCheck) Category() string { return CategoryPanel }

func (c *PanelReachableCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()
	snap := c.Fetcher.Fetch(ctx)
	latency := time.Since(start)

	if !snap.Reachable {
		result := CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot reach panel at %s", c.URL),
			Suggestion: "Check panel.url and that panel.api_key is an application API key",
		}
		if pwErr, ok := errors.As(snap.Err); ok {
			result.Message = fmt.Sprintf("%s (%s)", result.Message, pwErr.Short())
			if pwErr.Suggestion != "" {
				result.Suggestion = pwErr.Suggestion
			}
		} else if snap.Err != nil {
			result.Message = fmt.Sprintf("%s (%v)", result.Message, snap.Err)
		}
		return result
	}

	c.Nodes = snap.Nodes
	if len(snap.Nodes) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Panel reachable but lists no nodes (%s)", formatLatency(latency)),
			Suggestion: "The status message will show an empty dashboard until a node is added",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Panel reachable, %d node%s (%s)",
			len(snap.Nodes), pluralize(len(snap.Nodes)), formatLatency(latency)),
	}
}

func (c *PanelReachableCheck) Fix() error {
	return nil // Network issues can't be auto-fixed
}

// NewPanelChecks creates the panel checks for a configured client.
func NewPanelChecks(fetcher panel.Fetcher, url string) []Check {
	return []Check{&PanelReachableCheck{Fetcher: fetcher, URL: url}}
}

func formatLatency(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
