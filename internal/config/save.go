package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations spelled as strings ("10s") instead of nanoseconds.
type fileConfig struct {
	Version  int           `yaml:"version"`
	Interval string        `yaml:"interval"`
	Discord  DiscordConfig `yaml:"discord"`
	Panel    struct {
		URL     string `yaml:"url"`
		APIKey  string `yaml:"api_key"`
		Timeout string `yaml:"timeout"`
		Uptime  string `yaml:"uptime"`
	} `yaml:"panel"`
	Display struct {
		Brand            string   `yaml:"brand"`
		LogoURL          string   `yaml:"logo_url,omitempty"`
		Footer           string   `yaml:"footer"`
		Presence         []string `yaml:"presence"`
		PresenceInterval string   `yaml:"presence_interval"`
	} `yaml:"display"`
}

func toFile(cfg *Config) fileConfig {
	var f fileConfig
	f.Version = cfg.Version
	f.Interval = cfg.Interval.String()
	f.Discord = cfg.Discord
	f.Panel.URL = cfg.Panel.URL
	f.Panel.APIKey = cfg.Panel.APIKey
	f.Panel.Timeout = cfg.Panel.Timeout.String()
	f.Panel.Uptime = cfg.Panel.Uptime
	f.Display.Brand = cfg.Display.Brand
	f.Display.LogoURL = cfg.Display.LogoURL
	f.Display.Footer = cfg.Display.Footer
	f.Display.Presence = cfg.Display.Presence
	f.Display.PresenceInterval = cfg.Display.PresenceInterval.String()
	return f
}

// Save writes cfg to path as YAML, creating parent directories as needed.
// The file is written with 0600 permissions since it holds credentials.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(toFile(cfg))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetValue updates a dotted key (e.g. "discord.channel_id") in an existing config file.
// It edits the yaml.Node tree so comments and key order survive, creating missing
// intermediate mappings along the way.
func SetValue(configPath, key, value string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child := findMapValue(node, part)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(part), child)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("'%s' is not a section", part)
		}
		node = child
	}

	leaf := parts[len(parts)-1]
	if existing := findMapValue(node, leaf); existing != nil {
		if existing.Kind != yaml.ScalarNode {
			return fmt.Errorf("'%s' is not a single value", key)
		}
		existing.Value = value
		existing.Tag = "!!str"
		existing.Style = 0
	} else {
		// Tagged as strings so numeric Discord IDs are quoted rather than read back as ints.
		node.Content = append(node.Content, scalar(leaf), scalar(value))
	}

	out, err := yaml.Marshal(&root)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	return os.WriteFile(configPath, out, info.Mode().Perm())
}

// findMapValue finds the value node for a key in a mapping node.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
