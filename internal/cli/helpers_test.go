package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

const oneNode = `{"data":[{"attributes":{"name":"node-1","allocated_resources":{"memory":2048,"disk":10240}}}]}`

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// newPanelServer serves the node listing with body.
func newPanelServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// useConfig writes body to a temp panelwatch.yaml and points --config at it.
func useConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panelwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	setConfigFlag(t, path)
	return path
}

func setConfigFlag(t *testing.T, path string) {
	t.Helper()
	orig := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = orig })
}

func panelOnlyConfig(url string) string {
	return "version: 1\ninterval: 10s\npanel:\n  url: " + url + "\n  api_key: ptla_test\n  uptime: none\ndisplay:\n  brand: Acme\n"
}

func fullConfig(url string) string {
	return panelOnlyConfig(url) + "discord:\n  token: abc.def\n  channel_id: \"123456789012345678\"\n"
}
