package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/panelwatch/internal/errors"
)

// TokenVerifier checks a bot token without opening the gateway.
type TokenVerifier interface {
	Verify(ctx context.Context) (string, error)
}

// ChannelResolver looks up a channel by ID.
type ChannelResolver interface {
	ResolveChannel(ctx context.Context, channelID string) error
}

// DiscordClient is what the Discord checks need from a transport.
type DiscordClient interface {
	TokenVerifier
	ChannelResolver
}

// DiscordTokenCheck verifies the bot token is accepted.
type DiscordTokenCheck struct {
	Verifier TokenVerifier
}

func (c *DiscordTokenCheck) Name() string     { return "discord_token" }
func (c *DiscordTokenCheck) Category() string { return CategoryDiscord }

func (c *DiscordTokenCheck) Run(ctx context.Context) CheckResult {
	user, err := c.Verifier.Verify(ctx)
	if err != nil {
		return failFromError(c.Name(), err,
			"Regenerate the token in the Discord developer portal and update discord.token")
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Bot token valid (%s)", user),
	}
}

func (c *DiscordTokenCheck) Fix() error {
	return nil
}

// DiscordChannelCheck verifies the bot can see the status channel.
type DiscordChannelCheck struct {
	Resolver  ChannelResolver
	ChannelID string
}

func (c *DiscordChannelCheck) Name() string     { return "discord_channel" }
func (c *DiscordChannelCheck) Category() string { return CategoryDiscord }

func (c *DiscordChannelCheck) Run(ctx context.Context) CheckResult {
	if err := c.Resolver.ResolveChannel(ctx, c.ChannelID); err != nil {
		return failFromError(c.Name(), err,
			"Check discord.channel_id and that the bot can view the channel")
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Status channel %s visible", c.ChannelID),
	}
}

func (c *DiscordChannelCheck) Fix() error {
	return nil
}

// DiscordAdminCheck warns when no alert recipient is configured.
type DiscordAdminCheck struct {
	AdminID string
}

func (c *DiscordAdminCheck) Name() string     { return "discord_admin" }
func (c *DiscordAdminCheck) Category() string { return CategoryDiscord }

func (c *DiscordAdminCheck) Run(context.Context) CheckResult {
	if c.AdminID == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No admin configured, online/offline alerts are disabled",
			Suggestion: "Set discord.admin_id to your Discord user ID",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Alerts go to user %s", c.AdminID),
	}
}

func (c *DiscordAdminCheck) Fix() error {
	return nil
}

// NewDiscordChecks creates the Discord checks.
func NewDiscordChecks(client DiscordClient, channelID, adminID string) []Check {
	return []Check{
		&DiscordTokenCheck{Verifier: client},
		&DiscordChannelCheck{Resolver: client, ChannelID: channelID},
		&DiscordAdminCheck{AdminID: adminID},
	}
}

func failFromError(name string, err error, fallback string) CheckResult {
	result := CheckResult{
		Name:       name,
		Status:     StatusFail,
		Message:    errors.Brief(err),
		Suggestion: fallback,
	}
	if pwErr, ok := errors.As(err); ok {
		result.Message = pwErr.Short()
		if pwErr.Suggestion != "" {
			result.Suggestion = pwErr.Suggestion
		}
	}
	return result
}
