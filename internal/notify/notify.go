// Package notify sends one-shot reachability alerts to the bot's admin.
package notify

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/panelwatch/internal/chat"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/status"
	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// Result is the outcome of one notification. Delivery failures live here instead of
// being returned, so a failed DM can never interrupt the poll loop.
type Result struct {
	Transition status.Transition
	Delivered  bool
	Skipped    bool
	Err        error
}

// Notifier alerts a single recipient about reachability transitions.
type Notifier struct {
	sender    chat.DirectSender
	recipient string
	formatter *summary.Formatter
	log       logger.Logger
}

// New creates a notifier. An empty recipient disables delivery.
func New(sender chat.DirectSender, recipient string, formatter *summary.Formatter, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Noop()
	}
	return &Notifier{
		sender:    sender,
		recipient: recipient,
		formatter: formatter,
		log:       log,
	}
}

// Notify sends the alert for t. It makes one attempt and never retries.
func (n *Notifier) Notify(ctx context.Context, t status.Transition) Result {
	res := Result{Transition: t}
	if n.recipient == "" {
		n.log.Debug("no admin configured, skipping %s alert", t)
		res.Skipped = true
		return res
	}

	if err := n.sender.SendDirect(ctx, n.recipient, n.Alert(t)); err != nil {
		if !errors.IsCode(err, errors.ErrDelivery) {
			err = errors.WrapWithCode(err, errors.ErrDelivery,
				fmt.Sprintf("Cannot deliver %s alert", t), "")
		}
		n.log.Warn("alert not delivered: %s", errors.Brief(err))
		res.Err = err
		return res
	}

	n.log.Info("sent %s alert to %s", t, n.recipient)
	res.Delivered = true
	return res
}

// Alert builds the payload announcing t.
func (n *Notifier) Alert(t status.Transition) summary.Payload {
	brand := n.formatter.Brand()
	p := summary.Payload{
		Fields:    []summary.Field{},
		Timestamp: n.formatter.Now(),
	}
	if t == status.BecameOnline {
		p.Title = fmt.Sprintf("%s %s Restored", summary.GlyphOnline, brand)
		p.Description = fmt.Sprintf("%s **Panel is back online!**", summary.GlyphCheck)
		p.Color = summary.ColorHealthy
	} else {
		p.Title = fmt.Sprintf("%s %s ALERT", summary.GlyphAlert, brand)
		p.Description = fmt.Sprintf("%s **Panel appears offline!**", summary.GlyphWarning)
		p.Color = summary.ColorAlert
	}
	return p
}
