package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_InvalidConfig(t *testing.T) {
	// Panel section is fine but discord.token is missing.
	useConfig(t, panelOnlyConfig("https://panel.example.com"))

	var buf bytes.Buffer
	err := runCommand(context.Background(), &buf)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "discord.token")
	assert.Contains(t, buf.String(), "Loaded config")
	assert.Contains(t, buf.String(), ui.SymbolFail)
}

func TestRenderRunSettings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Panel.URL = "https://panel.example.com/"
	cfg.Discord.ChannelID = "123"
	cfg.Interval = 30 * time.Second
	cfg.Display.Presence = nil

	var buf bytes.Buffer
	renderRunSettings(ui.NewPhaseDisplay(&buf), cfg)

	out := buf.String()
	assert.Contains(t, out, "Alerts")
	assert.Contains(t, out, "discord.admin_id not set")
	assert.Contains(t, out, "display.presence is empty")
	assert.Contains(t, out, "https://panel.example.com\n")
	assert.Contains(t, out, "30s")
}
