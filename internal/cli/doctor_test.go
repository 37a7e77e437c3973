package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/doctor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscordClient struct {
	verifyErr  error
	resolveErr error
}

func (f *fakeDiscordClient) Verify(context.Context) (string, error) {
	return "panelbot", f.verifyErr
}

func (f *fakeDiscordClient) ResolveChannel(context.Context, string) error {
	return f.resolveErr
}

func checkNames(checks []doctor.Check) []string {
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name())
	}
	return names
}

func TestCollectChecks(t *testing.T) {
	configOnly := []string{"config_file", "config_schema", "config_permissions"}
	withPanel := append(append([]string{}, configOnly...), "panel_reachable")
	all := append(append([]string{}, withPanel...), "discord_token", "discord_channel", "discord_admin")

	panelOnly := config.DefaultConfig()
	panelOnly.Panel.URL = "https://panel.example.com"
	panelOnly.Panel.APIKey = "key"

	full := config.DefaultConfig()
	full.Panel = panelOnly.Panel
	full.Discord.Token = "abc.def"
	full.Discord.ChannelID = "123456789012345678"

	tests := []struct {
		name   string
		cfg    *config.Config
		client doctor.DiscordClient
		want   []string
	}{
		{name: "no config", cfg: nil, want: configOnly},
		{name: "invalid panel", cfg: config.DefaultConfig(), want: configOnly},
		{name: "panel only", cfg: panelOnly, client: &fakeDiscordClient{}, want: withPanel},
		{name: "full config without client", cfg: full, want: withPanel},
		{name: "full config", cfg: full, client: &fakeDiscordClient{}, want: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkNames(collectChecks("panelwatch.yaml", tt.cfg, tt.client)))
		})
	}
}

func TestOutputDoctorText(t *testing.T) {
	checks := doctor.NewDiscordChecks(&fakeDiscordClient{resolveErr: stderrors.New("Unknown Channel")}, "123", "")
	results := doctor.RunAll(context.Background(), checks)

	var buf bytes.Buffer
	outputDoctorText(&buf, checks, results, false)

	out := buf.String()
	assert.Contains(t, out, "DISCORD")
	assert.Contains(t, out, "Bot token valid (panelbot)")
	assert.Contains(t, out, "Unknown Channel")
	assert.Contains(t, out, "Set discord.admin_id")
	assert.Contains(t, out, "2 issues found")
	assert.NotContains(t, out, "CONFIG")
}

func TestOutputDoctorText_AllClear(t *testing.T) {
	checks := doctor.NewDiscordChecks(&fakeDiscordClient{}, "123", "456")
	results := doctor.RunAll(context.Background(), checks)

	var buf bytes.Buffer
	outputDoctorText(&buf, checks, results, false)

	assert.Contains(t, buf.String(), "Everything looks good")
}

func TestOutputDoctorJSON(t *testing.T) {
	checks := doctor.NewDiscordChecks(&fakeDiscordClient{verifyErr: stderrors.New("401 Unauthorized")}, "123", "456")
	results := doctor.RunAll(context.Background(), checks)

	var buf bytes.Buffer
	require.NoError(t, outputDoctorJSON(&buf, checks, results))

	var out struct {
		Categories []struct {
			Name    string `json:"name"`
			Results []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"results"`
		} `json:"categories"`
		Summary SummaryOutput `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Categories, 1)
	assert.Equal(t, doctor.CategoryDiscord, out.Categories[0].Name)
	require.Len(t, out.Categories[0].Results, 3)
	assert.Equal(t, "fail", out.Categories[0].Results[0].Status)
	assert.Equal(t, 2, out.Summary.Pass)
	assert.Equal(t, 1, out.Summary.Fail)
	assert.False(t, out.Summary.AllClear)
}
