package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInitOptions(panelURL string) InitOptions {
	return InitOptions{
		Token:          "abc.def",
		ChannelID:      "123456789012345678",
		AdminID:        "876543210987654321",
		PanelURL:       panelURL,
		APIKey:         "ptla_test",
		Brand:          "Acme",
		NonInteractive: true,
	}
}

func TestBuildInitConfig(t *testing.T) {
	cfg := buildInitConfig(InitOptions{
		Token:     "  abc.def ",
		ChannelID: "123",
		PanelURL:  "https://panel.example.com/ ",
		APIKey:    "key",
	})

	assert.Equal(t, "abc.def", cfg.Discord.Token)
	assert.Equal(t, "https://panel.example.com", cfg.Panel.URL)
	assert.Equal(t, config.DefaultConfig().Display.Brand, cfg.Display.Brand, "empty brand keeps the default")
	assert.Equal(t, config.CurrentConfigVersion, cfg.Version)
}

func TestInit_NonInteractive(t *testing.T) {
	srv := newPanelServer(t, oneNode)
	path := filepath.Join(t.TempDir(), "panelwatch.yaml")

	opts := validInitOptions(srv.URL)
	opts.Path = path

	var buf bytes.Buffer
	require.NoError(t, Init(&buf, opts))

	out := buf.String()
	assert.Contains(t, out, "Found 1 node\n")
	assert.Contains(t, out, "Created "+path)
	assert.Contains(t, out, "Next steps:")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678", cfg.Discord.ChannelID)
	assert.Equal(t, "876543210987654321", cfg.Discord.AdminID)
	assert.Equal(t, srv.URL, cfg.Panel.URL)
	assert.Equal(t, "Acme", cfg.Display.Brand)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestInit_NonInteractiveErrors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		opts := validInitOptions("https://panel.example.com")
		opts.Token = ""
		opts.Path = filepath.Join(t.TempDir(), "panelwatch.yaml")

		err := Init(&bytes.Buffer{}, opts)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
		assert.NoFileExists(t, opts.Path)
	})

	t.Run("existing file without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "panelwatch.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))

		opts := validInitOptions("https://panel.example.com")
		opts.Path = path

		err := Init(&bytes.Buffer{}, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		data, _ := os.ReadFile(path)
		assert.Equal(t, "version: 1\n", string(data))
	})

	t.Run("unreachable panel", func(t *testing.T) {
		srv := newPanelServer(t, oneNode)
		srv.Close()

		opts := validInitOptions(srv.URL)
		opts.Path = filepath.Join(t.TempDir(), "panelwatch.yaml")

		err := Init(&bytes.Buffer{}, opts)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrPanel))
		assert.NoFileExists(t, opts.Path)
	})
}

func TestInit_ForceOverwrites(t *testing.T) {
	srv := newPanelServer(t, oneNode)
	path := filepath.Join(t.TempDir(), "panelwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))

	opts := validInitOptions(srv.URL)
	opts.Path = path
	opts.Overwrite = true

	require.NoError(t, Init(&bytes.Buffer{}, opts))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc.def", cfg.Discord.Token)
}
