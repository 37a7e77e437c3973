package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/rileyhilliard/panelwatch/internal/logger"
	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// StatsCommandName is the slash command serving the on-demand summary.
const StatsCommandName = "stats"

// Discord implements Transport on a discordgo session.
type Discord struct {
	session *discordgo.Session
	log     logger.Logger

	// commandTimeout bounds one slash command invocation.
	commandTimeout time.Duration
}

// NewDiscord creates a Discord transport for a bot token (without the "Bot " prefix).
// The gateway connection is not opened until Open.
func NewDiscord(token string, log logger.Logger) (*Discord, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrChat,
			"Cannot create Discord session",
			"Check discord.token")
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages
	s.LogLevel = discordgo.LogWarning
	if log == nil {
		log = logger.Noop()
	}

	return &Discord{session: s, log: log, commandTimeout: 30 * time.Second}, nil
}

// Open connects to the gateway.
func (d *Discord) Open() error {
	if err := d.session.Open(); err != nil {
		return errors.WrapWithCode(err, errors.ErrChat,
			"Cannot connect to Discord",
			"Check discord.token and that the bot has been invited to your server")
	}
	if u := d.session.State.User; u != nil {
		d.log.Info("connected to Discord as %s", u.Username)
	}
	return nil
}

// Close disconnects from the gateway.
func (d *Discord) Close() error {
	return d.session.Close()
}

// Verify checks the token by fetching the bot's own user without opening the gateway.
func (d *Discord) Verify(ctx context.Context) (string, error) {
	u, err := d.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrChat,
			"Discord rejected the bot token",
			"Regenerate the token in the developer portal and update discord.token")
	}
	return u.Username, nil
}

func (d *Discord) ResolveChannel(ctx context.Context, channelID string) error {
	if ch, err := d.session.State.Channel(channelID); err == nil && ch != nil {
		return nil
	}
	if _, err := d.session.Channel(channelID, discordgo.WithContext(ctx)); err != nil {
		return errors.WrapWithCode(err, errors.ErrChannel,
			fmt.Sprintf("Channel %s not found", channelID),
			"Check discord.channel_id and that the bot can view the channel")
	}
	return nil
}

func (d *Discord) DeleteLatest(ctx context.Context, channelID string) error {
	msgs, err := d.session.ChannelMessages(channelID, 1, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return errors.Wrap(err, "Cannot read the latest channel message")
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := d.session.ChannelMessageDelete(channelID, msgs[0].ID, discordgo.WithContext(ctx)); err != nil {
		return errors.Wrap(err, "Cannot delete the previous status message")
	}
	return nil
}

func (d *Discord) Publish(ctx context.Context, channelID string, p summary.Payload) (string, error) {
	msg, err := d.session.ChannelMessageSendEmbed(channelID, Embed(p), discordgo.WithContext(ctx))
	if err != nil {
		return "", errors.Wrap(err, "Cannot post the status message")
	}
	return msg.ID, nil
}

func (d *Discord) SendDirect(ctx context.Context, userID string, p summary.Payload) error {
	ch, err := d.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrDelivery,
			fmt.Sprintf("Cannot open a DM with user %s", userID),
			"Check discord.admin_id and that the user shares a server with the bot")
	}
	if _, err := d.session.ChannelMessageSendEmbed(ch.ID, Embed(p), discordgo.WithContext(ctx)); err != nil {
		return errors.WrapWithCode(err, errors.ErrDelivery,
			fmt.Sprintf("Cannot DM user %s", userID),
			"The user may have DMs from server members disabled")
	}
	return nil
}

func (d *Discord) SetPresence(_ context.Context, text string) error {
	return d.session.UpdateWatchStatus(0, text)
}

// RegisterStats creates the /stats command (guild-scoped when guildID is set) and routes
// its invocations to h. The returned func removes the command again.
func (d *Discord) RegisterStats(guildID, description string, h CommandHandler) (func(), error) {
	if d.session.State.User == nil {
		return nil, errors.New(errors.ErrChat,
			"Cannot register commands before the session is open", "")
	}
	appID := d.session.State.User.ID

	cmd, err := d.session.ApplicationCommandCreate(appID, guildID, &discordgo.ApplicationCommand{
		Name:        StatsCommandName,
		Description: description,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Cannot register the /stats command")
	}

	removeHandler := d.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand || i.ApplicationCommandData().Name != StatsCommandName {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), d.commandTimeout)
		defer cancel()
		h(ctx, &interactionResponder{session: s, interaction: i.Interaction})
	})

	return func() {
		removeHandler()
		if err := d.session.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			d.log.Warn("failed to remove /%s command: %v", StatsCommandName, err)
		}
	}, nil
}

// interactionResponder answers a slash command with a deferred response and a follow-up.
type interactionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *interactionResponder) Ack(ctx context.Context) error {
	return r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
}

func (r *interactionResponder) Respond(ctx context.Context, p summary.Payload) error {
	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{Embed(p)},
	}, discordgo.WithContext(ctx))
	return err
}

// Embed converts a payload to a Discord rich embed.
func Embed(p summary.Payload) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       p.Title,
		Description: p.Description,
		Color:       p.Color,
	}
	if !p.Timestamp.IsZero() {
		e.Timestamp = p.Timestamp.UTC().Format(time.RFC3339)
	}
	for _, f := range p.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: false,
		})
	}
	if p.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: p.Footer}
	}
	if p.ThumbnailURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.ThumbnailURL}
	}
	return e
}
