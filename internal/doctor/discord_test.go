package doctor

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscord struct {
	user       string
	verifyErr  error
	resolveErr error
}

func (f *fakeDiscord) Verify(context.Context) (string, error) { return f.user, f.verifyErr }
func (f *fakeDiscord) ResolveChannel(context.Context, string) error {
	return f.resolveErr
}

func TestDiscordTokenCheck(t *testing.T) {
	r := (&DiscordTokenCheck{Verifier: &fakeDiscord{user: "panelbot"}}).Run(context.Background())
	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, "panelbot")

	coded := errors.WrapWithCode(stderrors.New("401 Unauthorized"), errors.ErrChat,
		"Discord rejected the bot token", "Regenerate the token")
	r = (&DiscordTokenCheck{Verifier: &fakeDiscord{verifyErr: coded}}).Run(context.Background())
	require.Equal(t, StatusFail, r.Status)
	assert.Equal(t, "Discord rejected the bot token: 401 Unauthorized", r.Message)
	assert.Equal(t, "Regenerate the token", r.Suggestion)
}

func TestDiscordChannelCheck(t *testing.T) {
	r := (&DiscordChannelCheck{Resolver: &fakeDiscord{}, ChannelID: "42"}).Run(context.Background())
	assert.Equal(t, StatusPass, r.Status)
	assert.Contains(t, r.Message, "42")

	r = (&DiscordChannelCheck{Resolver: &fakeDiscord{resolveErr: stderrors.New("unknown channel")}, ChannelID: "42"}).
		Run(context.Background())
	assert.Equal(t, StatusFail, r.Status)
	assert.Equal(t, "unknown channel", r.Message)
	assert.Contains(t, r.Suggestion, "discord.channel_id")
}

func TestDiscordAdminCheck(t *testing.T) {
	assert.Equal(t, StatusWarn, (&DiscordAdminCheck{}).Run(context.Background()).Status)
	assert.Equal(t, StatusPass, (&DiscordAdminCheck{AdminID: "1"}).Run(context.Background()).Status)
}

func TestNewDiscordChecks(t *testing.T) {
	checks := NewDiscordChecks(&fakeDiscord{}, "1", "2")
	require.Len(t, checks, 3)
	for _, c := range checks {
		assert.Equal(t, CategoryDiscord, c.Category())
	}
}
