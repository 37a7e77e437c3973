package cli

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/monitor"
	"github.com/rileyhilliard/panelwatch/internal/summary"
	"github.com/rileyhilliard/panelwatch/internal/ui"
)

func watchCommand(interval time.Duration) error {
	if !isTerminal() {
		return errors.New(errors.ErrConfig,
			"watch needs an interactive terminal",
			"Use 'panelwatch stats' or 'panelwatch stats --json' in scripts")
	}

	cfg, _, err := loadConfig(config.PanelOnly())
	if err != nil {
		return err
	}

	interval, err = watchInterval(interval, cfg.Interval)
	if err != nil {
		return err
	}

	model := monitor.NewModel(newPanelClient(cfg), watchFormatter(cfg, interval), interval, cfg.Panel.Timeout)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Dashboard exited with an error",
			"Try resizing the terminal or running with --no-color")
	}
	return nil
}

// watchInterval picks the flag value when set, else the config interval.
func watchInterval(flag, configured time.Duration) (time.Duration, error) {
	if flag == 0 {
		return configured, nil
	}
	if flag < config.MinInterval {
		return 0, errors.New(errors.ErrConfig,
			"--interval "+flag.String()+" is too short",
			"Use at least "+config.MinInterval.String())
	}
	return flag, nil
}

// watchFormatter retries offline cards at the dashboard's own refresh interval.
func watchFormatter(cfg *config.Config, interval time.Duration) *summary.Formatter {
	scoped := *cfg
	scoped.Interval = interval
	return newFormatter(&scoped)
}

func isTerminal() bool {
	return ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout)
}
