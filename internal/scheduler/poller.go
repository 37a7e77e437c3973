// Package scheduler drives the periodic work of the bot: the status poll loop and
// the presence rotation.
package scheduler

import (
	"context"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/chat"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/notify"
	"github.com/rileyhilliard/panelwatch/internal/panel"
	"github.com/rileyhilliard/panelwatch/internal/status"
	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// DefaultInterval is used when a Poller is created without one.
const DefaultInterval = 10 * time.Second

// Alerter is notified about reachability transitions.
type Alerter interface {
	Notify(ctx context.Context, t status.Transition) notify.Result
}

// PollerConfig wires a Poller to its collaborators.
type PollerConfig struct {
	ChannelID string
	Interval  time.Duration

	Publisher chat.ChannelPublisher
	Fetcher   panel.Fetcher
	Tracker   *status.Tracker
	Alerter   Alerter
	Formatter *summary.Formatter
	Logger    logger.Logger
}

// TickReport records what one poll cycle did. Failures that the loop swallows end up
// here instead of stopping it.
type TickReport struct {
	Cancelled bool // shutdown began before the tick finished; nothing was recorded

	ChannelUnresolved bool
	ChannelErr        error

	Reachable  bool
	PanelErr   error
	Transition status.Transition // zero when the state did not change
	Notified   *notify.Result    // nil when no transition happened

	DeleteErr  error
	PublishErr error
	MessageID  string
}

// Published reports whether the tick posted a new status message.
func (r TickReport) Published() bool {
	return r.MessageID != ""
}

// Poller periodically fetches the panel and keeps a single status message up to date.
type Poller struct {
	cfg PollerConfig
	log logger.Logger
}

// NewPoller creates a poller. A nil Tracker starts from a fresh Unknown state.
func NewPoller(cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Tracker == nil {
		cfg.Tracker = status.NewTracker()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Noop()
	}
	return &Poller{cfg: cfg, log: log}
}

// Interval returns the time between ticks.
func (p *Poller) Interval() time.Duration {
	return p.cfg.Interval
}

// Run ticks immediately and then once per interval until ctx is cancelled.
// Ticks run serially; a failing tick never stops the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info("polling every %s", p.cfg.Interval)
	p.Tick(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Tick(ctx)
		case <-ctx.Done():
			p.log.Debug("poll loop stopped")
			return nil
		}
	}
}

// Tick runs one poll cycle: resolve the channel, fetch, track, alert, then replace the
// latest channel message with a fresh summary. A tick whose context is done stops
// without touching the tracker, so shutdown never reads as an outage.
func (p *Poller) Tick(ctx context.Context) TickReport {
	var report TickReport

	if ctx.Err() != nil {
		report.Cancelled = true
		return report
	}

	if err := p.cfg.Publisher.ResolveChannel(ctx, p.cfg.ChannelID); err != nil {
		p.log.Error("status channel unavailable, skipping tick: %s", errors.Brief(err))
		report.ChannelUnresolved = true
		report.ChannelErr = err
		return report
	}

	snap := p.cfg.Fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		p.log.Debug("tick cancelled during fetch")
		report.Cancelled = true
		return report
	}
	report.Reachable = snap.Reachable
	report.PanelErr = snap.Err
	if snap.Err != nil {
		p.log.Warn("panel fetch failed: %s", errors.Brief(snap.Err))
	} else {
		p.log.Debug("panel reachable, %d nodes", len(snap.Nodes))
	}

	if t, changed := p.cfg.Tracker.Observe(snap.Reachable); changed {
		p.log.Info("panel %s", t)
		report.Transition = t
		if p.cfg.Alerter != nil {
			res := p.cfg.Alerter.Notify(ctx, t)
			report.Notified = &res
		}
	}

	payload := p.cfg.Formatter.Format(snap)

	// The channel is assumed to hold only our status message.
	if err := p.cfg.Publisher.DeleteLatest(ctx, p.cfg.ChannelID); err != nil {
		p.log.Warn("could not delete previous status message: %s", errors.Brief(err))
		report.DeleteErr = err
	}

	id, err := p.cfg.Publisher.Publish(ctx, p.cfg.ChannelID, payload)
	if err != nil {
		p.log.Error("could not publish status message: %s", errors.Brief(err))
		report.PublishErr = err
		return report
	}
	report.MessageID = id
	return report
}
