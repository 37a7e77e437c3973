package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Uptime modes select where node uptime comes from.
const (
	// UptimeObserved reports how long this process has seen the node listed while the panel was up.
	UptimeObserved = "observed"
	// UptimePlaceholder reports a random 1h-2h value. The panel API exposes no real uptime.
	UptimePlaceholder = "placeholder"
	// UptimeNone renders uptime as unknown.
	UptimeNone = "none"
)

// Config represents the complete panelwatch.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is how often the panel is polled and the channel message replaced.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	Discord DiscordConfig `yaml:"discord" mapstructure:"discord"`
	Panel   PanelConfig   `yaml:"panel" mapstructure:"panel"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
}

// DiscordConfig holds the bot credential and the identifiers it publishes to.
type DiscordConfig struct {
	// Token is the bot token, without the "Bot " prefix.
	Token string `yaml:"token" mapstructure:"token"`

	// ChannelID is the channel holding the rolling status message.
	ChannelID string `yaml:"channel_id" mapstructure:"channel_id"`

	// AdminID is the user who receives online/offline alerts by DM. Empty disables alerts.
	AdminID string `yaml:"admin_id" mapstructure:"admin_id"`

	// GuildID scopes the /stats command to one guild. Empty registers it globally.
	GuildID string `yaml:"guild_id" mapstructure:"guild_id"`
}

// PanelConfig points at the panel's application API.
type PanelConfig struct {
	// URL is the panel base URL, e.g. https://panel.example.com.
	URL string `yaml:"url" mapstructure:"url"`

	// APIKey is an application API key with read access to nodes.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Timeout bounds a single request to the panel.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Uptime is one of "observed", "placeholder" or "none".
	Uptime string `yaml:"uptime" mapstructure:"uptime"`
}

// DisplayConfig controls how the summary looks.
type DisplayConfig struct {
	// Brand appears in titles and alerts.
	Brand string `yaml:"brand" mapstructure:"brand"`

	// LogoURL is shown as the message thumbnail when set.
	LogoURL string `yaml:"logo_url" mapstructure:"logo_url"`

	// Footer is the footer text of every summary.
	Footer string `yaml:"footer" mapstructure:"footer"`

	// Presence strings are cycled through as the bot's "watching" activity.
	Presence []string `yaml:"presence" mapstructure:"presence"`

	// PresenceInterval is how long each presence string stays up.
	PresenceInterval time.Duration `yaml:"presence_interval" mapstructure:"presence_interval"`
}

// DefaultConfig returns a Config with defaults for everything except credentials and identifiers.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: 10 * time.Second,
		Panel: PanelConfig{
			Timeout: 10 * time.Second,
			Uptime:  UptimeObserved,
		},
		Display: DisplayConfig{
			Brand:  "Panel",
			Footer: "made by gg",
			Presence: []string{
				"pterodactyl nodes",
				"panel health",
				"/stats for details",
			},
			PresenceInterval: 5 * time.Second,
		},
	}
}
