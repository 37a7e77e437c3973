package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/rileyhilliard/panelwatch/internal/config"
	"github.com/rileyhilliard/panelwatch/internal/errors"
)

// ConfigFileCheck reports which config file is in use. Running without one is allowed
// (environment-only deployments) but worth pointing out.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Brief(err),
			Suggestion: "Check the --config path or run 'panelwatch init' to create a config",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using defaults and PANELWATCH_ environment variables",
			Suggestion: "Run 'panelwatch init' to create " + config.ConfigFileName,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", path),
	}
}

func (c *ConfigFileCheck) Fix() error {
	return nil // init is interactive
}

// ConfigSchemaCheck loads the resolved config and validates it.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(context.Context) CheckResult {
	cfg, _, err := config.LoadResolved(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load config: %s", errors.Brief(err)),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		result := CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: errors.Brief(err),
		}
		if pwErr, ok := errors.As(err); ok {
			result.Message = pwErr.Message
			result.Suggestion = pwErr.Suggestion
		}
		return result
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Schema valid",
	}
}

func (c *ConfigSchemaCheck) Fix() error {
	return nil // Schema issues require manual intervention
}

// ConfigPermissionsCheck warns when the config file, which holds the bot token and
// panel API key, is readable by other users.
type ConfigPermissionsCheck struct {
	ConfigPath string

	path string // resolved by Run
}

func (c *ConfigPermissionsCheck) Name() string     { return "config_permissions" }
func (c *ConfigPermissionsCheck) Category() string { return CategoryConfig }

func (c *ConfigPermissionsCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil || path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass, // Not applicable without a file
			Message: "No config file to check",
		}
	}
	c.path = path

	info, err := os.Stat(path)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("Cannot stat config file: %v", err),
		}
	}

	if mode := info.Mode().Perm(); mode&0o077 != 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Config file is accessible by other users (%04o)", mode),
			Suggestion: fmt.Sprintf("It contains credentials. Run: chmod 600 %s", path),
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config file permissions are private",
	}
}

func (c *ConfigPermissionsCheck) Fix() error {
	if c.path == "" {
		return nil
	}
	return os.Chmod(c.path, 0o600)
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
		&ConfigPermissionsCheck{ConfigPath: configPath},
	}
}
