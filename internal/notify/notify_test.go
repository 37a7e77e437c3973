package notify

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	chattest "github.com/rileyhilliard/panelwatch/internal/chat/testing"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/status"
	"github.com/rileyhilliard/panelwatch/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newFormatter() *summary.Formatter {
	return summary.NewFormatter(summary.Options{
		Brand: "Acme",
		Now:   func() time.Time { return fixedNow },
	})
}

func TestNotify_Delivers(t *testing.T) {
	tests := []struct {
		name       string
		transition status.Transition
		title      string
		desc       string
		color      int
	}{
		{
			name:       "offline",
			transition: status.BecameOffline,
			title:      "🚨 Acme ALERT",
			desc:       "⚠️ **Panel appears offline!**",
			color:      summary.ColorAlert,
		},
		{
			name:       "online",
			transition: status.BecameOnline,
			title:      "🟢 Acme Restored",
			desc:       "✅ **Panel is back online!**",
			color:      summary.ColorHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := chattest.NewFakeTransport()
			n := New(tr, "42", newFormatter(), nil)

			res := n.Notify(context.Background(), tt.transition)

			assert.True(t, res.Delivered)
			assert.False(t, res.Skipped)
			assert.NoError(t, res.Err)
			assert.Equal(t, tt.transition, res.Transition)

			dms := tr.DirectMessages()
			require.Len(t, dms, 1)
			assert.Equal(t, "42", dms[0].UserID)
			assert.Equal(t, tt.title, dms[0].Payload.Title)
			assert.Equal(t, tt.desc, dms[0].Payload.Description)
			assert.Equal(t, tt.color, dms[0].Payload.Color)
			assert.Equal(t, fixedNow, dms[0].Payload.Timestamp)
		})
	}
}

func TestNotify_EmptyRecipientSkips(t *testing.T) {
	tr := chattest.NewFakeTransport()
	n := New(tr, "", newFormatter(), nil)

	res := n.Notify(context.Background(), status.BecameOffline)

	assert.True(t, res.Skipped)
	assert.False(t, res.Delivered)
	assert.Empty(t, tr.DirectMessages())
}

func TestNotify_FailureIsReportedNotReturned(t *testing.T) {
	tr := chattest.NewFakeTransport()
	tr.DirectErr = stderrors.New("dms closed")
	log := logger.NewBufferLogger()
	n := New(tr, "42", newFormatter(), log)

	res := n.Notify(context.Background(), status.BecameOffline)

	assert.False(t, res.Delivered)
	require.Error(t, res.Err)
	assert.True(t, errors.IsCode(res.Err, errors.ErrDelivery))
	assert.ErrorContains(t, res.Err, "dms closed")
	assert.True(t, log.HasLevel("warn"))
}

func TestNotify_KeepsCodedDeliveryError(t *testing.T) {
	tr := chattest.NewFakeTransport()
	coded := errors.New(errors.ErrDelivery, "Cannot DM user 42", "")
	tr.DirectErr = coded
	n := New(tr, "42", newFormatter(), nil)

	res := n.Notify(context.Background(), status.BecameOnline)

	assert.Same(t, coded, res.Err)
}
