package scheduler

import (
	"context"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/chat"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/logger"
)

// DefaultPresenceInterval is used when a Rotator is created without one.
const DefaultPresenceInterval = 5 * time.Second

// Rotator cycles the bot's presence text through a fixed list.
type Rotator struct {
	setter   chat.PresenceSetter
	texts    []string
	interval time.Duration
	log      logger.Logger
}

// NewRotator creates a rotator over texts.
func NewRotator(setter chat.PresenceSetter, texts []string, interval time.Duration, log logger.Logger) *Rotator {
	if interval <= 0 {
		interval = DefaultPresenceInterval
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Rotator{
		setter:   setter,
		texts:    append([]string(nil), texts...),
		interval: interval,
		log:      log,
	}
}

// Run sets the next presence text every interval, wrapping around, until ctx is
// cancelled. It returns immediately when there is nothing to rotate.
func (r *Rotator) Run(ctx context.Context) error {
	if len(r.texts) == 0 {
		return nil
	}

	next := 0
	r.set(ctx, r.texts[next])

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			next = (next + 1) % len(r.texts)
			r.set(ctx, r.texts[next])
		case <-ctx.Done():
			return nil
		}
	}
}

func (r *Rotator) set(ctx context.Context, text string) {
	if err := r.setter.SetPresence(ctx, text); err != nil {
		r.log.Debug("presence update failed: %s", errors.Brief(err))
	}
}
