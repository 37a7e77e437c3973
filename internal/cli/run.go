package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rileyhilliard/panelwatch/internal/chat"
	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/lock"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/notify"
	"github.com/rileyhilliard/panelwatch/internal/query"
	"github.com/rileyhilliard/panelwatch/internal/scheduler"
	"github.com/rileyhilliard/panelwatch/internal/status"
	"github.com/rileyhilliard/panelwatch/internal/ui"
	"golang.org/x/sync/errgroup"
)

const statsDescription = "Show live panel and node stats"

// runCommand connects to Discord and runs the poll loop and presence rotation until
// ctx is cancelled or a signal arrives.
func runCommand(ctx context.Context, w io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewEnvLogger("[panelwatch]")
	pd := ui.NewPhaseDisplay(w)

	var cfg *config.Config
	if err := pd.Run("Loaded config", func() error {
		var err error
		cfg, _, err = loadConfig()
		return err
	}); err != nil {
		return err
	}

	var held *lock.Lock
	if err := pd.Run("Claimed channel "+cfg.Discord.ChannelID, func() error {
		var err error
		held, err = lock.Acquire(lock.DefaultDir(), cfg.Discord.ChannelID)
		return err
	}); err != nil {
		return err
	}
	defer held.Release()

	d, err := chat.NewDiscord(cfg.Discord.Token, log)
	if err != nil {
		return err
	}
	if err := pd.Run("Connected to Discord", d.Open); err != nil {
		return err
	}
	defer d.Close()

	formatter := newFormatter(cfg)
	client := newPanelClient(cfg)
	// /stats sees the uptime the poll loop records but never resets it.
	handler := query.NewHandler(client.ReadOnly(), formatter, log)

	var removeStats func()
	if err := pd.Run("Registered /"+chat.StatsCommandName, func() error {
		var err error
		removeStats, err = d.RegisterStats(cfg.Discord.GuildID, statsDescription, handler.CommandHandler())
		return err
	}); err != nil {
		return err
	}
	defer removeStats()

	poller := scheduler.NewPoller(scheduler.PollerConfig{
		ChannelID: cfg.Discord.ChannelID,
		Interval:  cfg.Interval,
		Publisher: d,
		Fetcher:   client,
		Tracker:   status.NewTracker(),
		Alerter:   notify.New(d, cfg.Discord.AdminID, formatter, log),
		Formatter: formatter,
		Logger:    log,
	})
	rotator := scheduler.NewRotator(d, cfg.Display.Presence, cfg.Display.PresenceInterval, log)

	renderRunSettings(pd, cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return poller.Run(gctx) })
	g.Go(func() error { return rotator.Run(gctx) })

	err = g.Wait()
	log.Info("shutting down")
	return err
}

// renderRunSettings prints what the bot is about to do, and what it will skip.
func renderRunSettings(pd *ui.PhaseDisplay, cfg *config.Config) {
	if cfg.Discord.AdminID == "" {
		pd.RenderSkipped("Alerts", "discord.admin_id not set")
	}
	if len(cfg.Display.Presence) == 0 {
		pd.RenderSkipped("Presence", "display.presence is empty")
	}
	pd.RenderInfo("panel", strings.TrimRight(cfg.Panel.URL, "/"))
	pd.RenderInfo("channel", cfg.Discord.ChannelID)
	pd.RenderInfo("every", fmt.Sprint(cfg.Interval))
	pd.Divider()
}
