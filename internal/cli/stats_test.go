package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/panel"
	paneltest "github.com/rileyhilliard/panelwatch/internal/panel/testing"
	"github.com/rileyhilliard/panelwatch/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormatter() *summary.Formatter {
	return summary.NewFormatter(summary.Options{Brand: "Acme", RetryInterval: 10 * time.Second})
}

func TestWriteStats_Text(t *testing.T) {
	snap := paneltest.Up(panel.Node{Name: "node-1", MemoryMB: 2048, DiskMB: 10240})

	var buf bytes.Buffer
	require.NoError(t, writeStats(&buf, snap, testFormatter(), false, 60))

	out := buf.String()
	assert.Contains(t, out, "Acme Node Stats Dashboard")
	assert.Contains(t, out, "node-1")
	assert.Contains(t, out, "2048 MB")
}

func TestWriteStats_JSON(t *testing.T) {
	tests := []struct {
		name          string
		snap          panel.Snapshot
		wantReachable bool
		wantNodes     int
		wantError     bool
	}{
		{
			name:          "reachable",
			snap:          paneltest.Up(panel.Node{Name: "a"}, panel.Node{Name: "b"}),
			wantReachable: true,
			wantNodes:     2,
		},
		{
			name:      "unreachable",
			snap:      paneltest.Down(),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeStats(&buf, tt.snap, testFormatter(), true, 0))

			var env struct {
				Success bool        `json:"success"`
				Data    StatsOutput `json:"data"`
			}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
			assert.True(t, env.Success)
			assert.Equal(t, tt.wantReachable, env.Data.Reachable)
			assert.Len(t, env.Data.Nodes, tt.wantNodes)
			assert.Equal(t, tt.wantError, env.Data.Error != "")
		})
	}
}

func TestNewStatsOutput_Uptime(t *testing.T) {
	snap := paneltest.Up(
		panel.Node{Name: "known", Uptime: 90 * time.Minute, UptimeKnown: true},
		panel.Node{Name: "unknown"},
	)

	out := newStatsOutput(snap, testFormatter().Format(snap))

	require.Len(t, out.Nodes, 2)
	require.NotNil(t, out.Nodes[0].UptimeSeconds)
	assert.Equal(t, int64(5400), *out.Nodes[0].UptimeSeconds)
	assert.Nil(t, out.Nodes[1].UptimeSeconds)
}

func TestStatsCommand(t *testing.T) {
	srv := newPanelServer(t, oneNode)
	useConfig(t, panelOnlyConfig(srv.URL))

	var buf bytes.Buffer
	require.NoError(t, statsCommand(context.Background(), &buf, true))

	var env struct {
		Data StatsOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Data.Reachable)
	require.Len(t, env.Data.Nodes, 1)
	assert.Equal(t, "node-1", env.Data.Nodes[0].Name)
	assert.Equal(t, int64(2048), env.Data.Nodes[0].MemoryMB)
}

func TestStatsCommand_InvalidConfig(t *testing.T) {
	useConfig(t, "version: 1\npanel:\n  url: \"\"\n")

	var buf bytes.Buffer
	err := statsCommand(context.Background(), &buf, true)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, buf.String(), `"success": false`)
}
