// Package chat defines the messaging surface panelwatch publishes through, with a
// Discord implementation backed by discordgo.
package chat

import (
	"context"

	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// ChannelPublisher maintains the rolling status message in one channel.
type ChannelPublisher interface {
	// ResolveChannel fails with an errors.ErrChannel error when the channel can't be used.
	ResolveChannel(ctx context.Context, channelID string) error

	// DeleteLatest deletes the single most recent message in the channel, whoever wrote it.
	// An empty channel is not an error.
	DeleteLatest(ctx context.Context, channelID string) error

	// Publish posts a payload and returns the new message ID.
	Publish(ctx context.Context, channelID string, p summary.Payload) (string, error)
}

// DirectSender delivers a payload privately to one user.
type DirectSender interface {
	SendDirect(ctx context.Context, userID string, p summary.Payload) error
}

// PresenceSetter updates the bot's visible activity.
type PresenceSetter interface {
	SetPresence(ctx context.Context, text string) error
}

// Transport is everything the bot needs from a chat platform.
type Transport interface {
	ChannelPublisher
	DirectSender
	PresenceSetter
}

// Responder answers one synchronous command invocation.
type Responder interface {
	// Ack acknowledges the command before any slow work starts.
	Ack(ctx context.Context) error

	// Respond sends the final payload.
	Respond(ctx context.Context, p summary.Payload) error
}

// CommandHandler serves one invocation of a registered command.
type CommandHandler func(ctx context.Context, r Responder)
