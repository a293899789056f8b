package config

import (
	"github.com/arthur-debert/methodlog/pkg/rules"
)

// Config is the full configuration of the call-logging subsystem:
// the global kill switch, the default values rules merge against, the
// ordered rule list, and the two knobs consumed by collaborators
// (base-package for interception scope, auto-reload for the watcher).
type Config struct {
	// Enabled disables all logging when false, regardless of rules
	Enabled bool `koanf:"enabled" toml:"enabled"`

	// Defaults applied when rules do not override a field
	LogArguments   bool  `koanf:"log-arguments" toml:"log-arguments"`
	LogReturnValue bool  `koanf:"log-return-value" toml:"log-return-value"`
	MinDurationMs  int64 `koanf:"min-duration-ms" toml:"min-duration-ms"`
	MaxResultSize  int   `koanf:"max-result-size" toml:"max-result-size"`
	MaskSensitive  bool  `koanf:"mask-sensitive" toml:"mask-sensitive"`

	// BasePackage is the scope within which the host delivers calls
	// to the interceptor; calls outside it are never seen
	BasePackage string `koanf:"base-package" toml:"base-package"`

	// AutoReload controls whether the config watcher is started
	AutoReload bool `koanf:"auto-reload" toml:"auto-reload"`

	// Rules in match-priority order; the first matching enabled rule wins
	Rules []rules.Rule `koanf:"rules" toml:"rules"`
}

// Default returns the built-in configuration: logging enabled, every
// call logged in full, no rules.
func Default() *Config {
	return &Config{
		Enabled:        true,
		LogArguments:   true,
		LogReturnValue: true,
		MinDurationMs:  0,
		MaxResultSize:  -1,
		MaskSensitive:  false,
		AutoReload:     true,
	}
}

// Defaults returns the global default RuleConfig carried by this
// configuration, which the registry merges rule overrides against
func (c *Config) Defaults() rules.RuleConfig {
	return rules.RuleConfig{
		Enabled:        c.Enabled,
		LogArguments:   c.LogArguments,
		LogReturnValue: c.LogReturnValue,
		MinDurationMs:  c.MinDurationMs,
		MaxResultSize:  c.MaxResultSize,
		MaskSensitive:  c.MaskSensitive,
	}
}

// Validate checks field bounds on the defaults and every rule
func (c *Config) Validate() error {
	if err := rules.ValidateConfig(c.Defaults()); err != nil {
		return err
	}
	return rules.Validate(c.Rules)
}
