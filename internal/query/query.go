// Package query answers on-demand status requests. It only reads the panel; the poll
// loop's tracker and alerts are never touched.
package query

import (
	"context"

	"github.com/rileyhilliard/panelwatch/internal/chat"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/panel"
	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// Handler builds a fresh summary for whoever asks.
type Handler struct {
	fetcher   panel.Fetcher
	formatter *summary.Formatter
	log       logger.Logger
}

// NewHandler creates a handler.
func NewHandler(fetcher panel.Fetcher, formatter *summary.Formatter, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Noop()
	}
	return &Handler{fetcher: fetcher, formatter: formatter, log: log}
}

// Query fetches the panel and formats the result.
func (h *Handler) Query(ctx context.Context) summary.Payload {
	snap := h.fetcher.Fetch(ctx)
	if snap.Err != nil {
		h.log.Debug("on-demand fetch failed: %s", errors.Brief(snap.Err))
	}
	return h.formatter.Format(snap)
}

// Handle acknowledges the request before fetching, since the panel may take longer to
// answer than the chat platform allows for a first response.
func (h *Handler) Handle(ctx context.Context, r chat.Responder) (summary.Payload, error) {
	if err := r.Ack(ctx); err != nil {
		return summary.Payload{}, errors.WrapWithCode(err, errors.ErrChat,
			"Cannot acknowledge the stats request", "")
	}

	p := h.Query(ctx)
	if err := r.Respond(ctx, p); err != nil {
		return p, errors.WrapWithCode(err, errors.ErrChat,
			"Cannot send the stats response", "")
	}
	return p, nil
}

// CommandHandler adapts Handle to a chat command callback, logging failures.
func (h *Handler) CommandHandler() chat.CommandHandler {
	return func(ctx context.Context, r chat.Responder) {
		if _, err := h.Handle(ctx, r); err != nil {
			h.log.Warn("/%s failed: %s", chat.StatsCommandName, errors.Brief(err))
		}
	}
}
