package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
version: 1
interval: 10s
discord:
  token: abc.def.ghi
  channel_id: "123456789012345678"
panel:
  url: https://panel.example.com
  api_key: ptla_secret
`

func writeConfig(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestConfigFileCheck(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := writeConfig(t, validConfig, 0o600)
		r := (&ConfigFileCheck{ConfigPath: path}).Run(context.Background())
		assert.Equal(t, StatusPass, r.Status)
		assert.Contains(t, r.Message, path)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		r := (&ConfigFileCheck{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")}).Run(context.Background())
		assert.Equal(t, StatusFail, r.Status)
		assert.Contains(t, r.Message, "not found")
	})

	t.Run("no file anywhere", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())
		r := (&ConfigFileCheck{}).Run(context.Background())
		assert.Equal(t, StatusWarn, r.Status)
		assert.Contains(t, r.Suggestion, "panelwatch init")
	})
}

func TestConfigSchemaCheck(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeConfig(t, validConfig, 0o600)
		r := (&ConfigSchemaCheck{ConfigPath: path}).Run(context.Background())
		assert.Equal(t, StatusPass, r.Status, r.Message)
	})

	t.Run("invalid", func(t *testing.T) {
		path := writeConfig(t, "version: 1\ninterval: 100ms\n", 0o600)
		r := (&ConfigSchemaCheck{ConfigPath: path}).Run(context.Background())
		assert.Equal(t, StatusFail, r.Status)
		assert.Contains(t, r.Message, "interval")
		assert.NotEmpty(t, r.Suggestion)
	})

	t.Run("unparseable", func(t *testing.T) {
		path := writeConfig(t, "version: [\n", 0o600)
		r := (&ConfigSchemaCheck{ConfigPath: path}).Run(context.Background())
		assert.Equal(t, StatusFail, r.Status)
		assert.Contains(t, r.Message, "Failed to load config")
	})
}

func TestConfigPermissionsCheck(t *testing.T) {
	t.Run("private", func(t *testing.T) {
		path := writeConfig(t, validConfig, 0o600)
		r := (&ConfigPermissionsCheck{ConfigPath: path}).Run(context.Background())
		assert.Equal(t, StatusPass, r.Status)
	})

	t.Run("world readable is fixed", func(t *testing.T) {
		path := writeConfig(t, validConfig, 0o644)
		check := &ConfigPermissionsCheck{ConfigPath: path}

		r := check.Run(context.Background())
		require.Equal(t, StatusWarn, r.Status)
		assert.True(t, r.Fixable)

		require.NoError(t, check.Fix())
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		assert.Equal(t, StatusPass, check.Run(context.Background()).Status)
	})

	t.Run("no file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())
		check := &ConfigPermissionsCheck{}
		assert.Equal(t, StatusPass, check.Run(context.Background()).Status)
		assert.NoError(t, check.Fix())
	})
}

func TestNewConfigChecks(t *testing.T) {
	checks := NewConfigChecks("x")
	require.Len(t, checks, 3)
	for _, c := range checks {
		assert.Equal(t, CategoryConfig, c.Category())
	}
}
