package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/panel"
	"github.com/rileyhilliard/panelwatch/internal/summary"
	"github.com/rileyhilliard/panelwatch/internal/ui"
)

// statsCardWidth is used when stdout is not a terminal.
const statsCardWidth = 60

// StatsOutput is the --json shape of the stats command.
type StatsOutput struct {
	Reachable bool            `json:"reachable"`
	Error     string          `json:"error,omitempty"`
	Nodes     []NodeOutput    `json:"nodes"`
	Summary   summary.Payload `json:"summary"`
}

// NodeOutput is one node in StatsOutput. UptimeSeconds is omitted when unknown.
type NodeOutput struct {
	Name          string `json:"name"`
	MemoryMB      int64  `json:"memory_mb"`
	DiskMB        int64  `json:"disk_mb"`
	UptimeSeconds *int64 `json:"uptime_seconds,omitempty"`
}

func statsCommand(ctx context.Context, w io.Writer, asJSON bool) error {
	cfg, _, err := loadConfig(config.PanelOnly())
	if err != nil {
		if asJSON {
			_ = WriteJSONFromError(w, err)
		}
		return err
	}

	client := newPanelClient(cfg)
	formatter := newFormatter(cfg)

	if asJSON {
		return writeStats(w, client.Fetch(ctx), formatter, true, 0)
	}

	spinner := ui.NewSpinner("Fetching " + cfg.Panel.URL)
	spinner.Start()
	snap := client.Fetch(ctx)
	if snap.Reachable {
		spinner.Success()
	} else {
		spinner.Fail()
	}
	return writeStats(w, snap, formatter, false, ui.TerminalWidth(os.Stdout, statsCardWidth))
}

// writeStats formats snap and writes either the rendered card or the JSON envelope.
func writeStats(w io.Writer, snap panel.Snapshot, formatter *summary.Formatter, asJSON bool, width int) error {
	p := formatter.Format(snap)

	if !asJSON {
		_, err := fmt.Fprintln(w, summary.Render(p, width))
		return err
	}
	return WriteJSONSuccess(w, newStatsOutput(snap, p))
}

func newStatsOutput(snap panel.Snapshot, p summary.Payload) StatsOutput {
	out := StatsOutput{
		Reachable: snap.Reachable,
		Nodes:     make([]NodeOutput, 0, len(snap.Nodes)),
		Summary:   p,
	}
	if snap.Err != nil {
		out.Error = errors.Brief(snap.Err)
	}
	for _, n := range snap.Nodes {
		node := NodeOutput{Name: n.Name, MemoryMB: n.MemoryMB, DiskMB: n.DiskMB}
		if n.UptimeKnown {
			secs := int64(n.Uptime.Seconds())
			node.UptimeSeconds = &secs
		}
		out.Nodes = append(out.Nodes, node)
	}
	return out
}
