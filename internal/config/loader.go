package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/panelwatch/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "panelwatch.yaml"
	// GlobalConfigDir is the directory for the per-user config.
	GlobalConfigDir = ".config/panelwatch"
	// GlobalConfigFile is the per-user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes every environment override, e.g. PANELWATCH_DISCORD_TOKEN.
	EnvPrefix = "PANELWATCH"
)

// Load reads config from the specified path. An empty path loads defaults plus environment
// overrides only, which is how container deployments usually run.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'panelwatch init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. panelwatch.yaml in current directory
// 3. ~/.config/panelwatch/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadResolved finds the config file (if any) and loads it with environment overrides applied.
func LoadResolved(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key with viper. AutomaticEnv only resolves keys viper
// already knows about, so credentials get empty defaults too.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("version", def.Version)
	v.SetDefault("interval", def.Interval)

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.channel_id", "")
	v.SetDefault("discord.admin_id", "")
	v.SetDefault("discord.guild_id", "")

	v.SetDefault("panel.url", "")
	v.SetDefault("panel.api_key", "")
	v.SetDefault("panel.timeout", def.Panel.Timeout)
	v.SetDefault("panel.uptime", def.Panel.Uptime)

	v.SetDefault("display.brand", def.Display.Brand)
	v.SetDefault("display.logo_url", "")
	v.SetDefault("display.footer", def.Display.Footer)
	v.SetDefault("display.presence", def.Display.Presence)
	v.SetDefault("display.presence_interval", def.Display.PresenceInterval)
}

// parseConfig converts viper config to our Config struct. Defaults come from setDefaults,
// so decoding starts from a zero Config and slices are never merged with default entries.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		where := "your config"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	cfg.Panel.URL = strings.TrimRight(strings.TrimSpace(cfg.Panel.URL), "/")
	cfg.Panel.Uptime = strings.ToLower(strings.TrimSpace(cfg.Panel.Uptime))

	return cfg, nil
}
