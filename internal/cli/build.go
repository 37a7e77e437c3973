package cli

import (
	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/panel"
	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// loadConfig resolves, loads and validates the config named by --config.
func loadConfig(opts ...config.ValidationOption) (*config.Config, string, error) {
	cfg, path, err := config.LoadResolved(Config())
	if err != nil {
		return nil, path, err
	}
	if err := config.Validate(cfg, opts...); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func newPanelClient(cfg *config.Config) *panel.Client {
	return panel.NewClient(cfg.Panel.URL, cfg.Panel.APIKey,
		panel.WithTimeout(cfg.Panel.Timeout),
		panel.WithUptimeSource(panel.NewUptimeSource(cfg.Panel.Uptime)),
	)
}

func newFormatter(cfg *config.Config) *summary.Formatter {
	return summary.NewFormatter(summary.Options{
		Brand:         cfg.Display.Brand,
		LogoURL:       cfg.Display.LogoURL,
		Footer:        cfg.Display.Footer,
		RetryInterval: cfg.Interval,
	})
}
