package rules

// RuleConfig is the concrete, fully-resolved logging configuration that
// the interceptor consults for a matched call. Every field has a value;
// optional overrides have already been merged against the defaults.
type RuleConfig struct {
	// Enabled turns logging for the matched calls on or off
	Enabled bool `koanf:"enabled"`

	// LogArguments controls whether call arguments appear in the
	// invocation record
	LogArguments bool `koanf:"log-arguments"`

	// LogReturnValue controls whether the rendered result appears in
	// the completion record
	LogReturnValue bool `koanf:"log-return-value"`

	// MinDurationMs suppresses the completion record for calls that
	// finish faster than this threshold. 0 logs every call.
	MinDurationMs int64 `koanf:"min-duration-ms"`

	// MaxResultSize truncates the rendered result to this many
	// characters. -1 disables truncation.
	MaxResultSize int `koanf:"max-result-size"`

	// MaskSensitive replaces arguments and results with a
	// "[PROTECTED]" literal
	MaskSensitive bool `koanf:"mask-sensitive"`
}

// DefaultConfig returns the process-wide default RuleConfig
func DefaultConfig() RuleConfig {
	return RuleConfig{
		Enabled:        true,
		LogArguments:   true,
		LogReturnValue: true,
		MinDurationMs:  0,
		MaxResultSize:  -1,
		MaskSensitive:  false,
	}
}

// Rule is one configured logging rule: a match pattern plus optional
// per-field overrides. Override fields are pointers so that an explicit
// false, 0, or -1 is distinguishable from "not set".
type Rule struct {
	// Pattern selects the calls this rule applies to. A rule with a
	// blank pattern contributes nothing.
	Pattern string `koanf:"pattern" toml:"pattern"`

	// Enabled turns the whole rule off. Unlike the override fields it
	// is not optional; a disabled rule is skipped during matching
	// without blocking later rules.
	Enabled *bool `koanf:"enabled" toml:"enabled,omitempty"`

	LogArguments   *bool  `koanf:"log-arguments" toml:"log-arguments,omitempty"`
	LogReturnValue *bool  `koanf:"log-return-value" toml:"log-return-value,omitempty"`
	MinDurationMs  *int64 `koanf:"min-duration-ms" toml:"min-duration-ms,omitempty"`
	MaxResultSize  *int   `koanf:"max-result-size" toml:"max-result-size,omitempty"`
	MaskSensitive  *bool  `koanf:"mask-sensitive" toml:"mask-sensitive,omitempty"`
}

// IsEnabled reports the rule's own enablement flag, defaulting to true
func (r Rule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// MergeWithDefaults resolves the rule's overrides against the given
// defaults into a concrete RuleConfig. Each unset override takes the
// default; Enabled always comes from the rule itself, never from the
// defaults.
func (r Rule) MergeWithDefaults(defaults RuleConfig) RuleConfig {
	cfg := RuleConfig{
		Enabled:        r.IsEnabled(),
		LogArguments:   defaults.LogArguments,
		LogReturnValue: defaults.LogReturnValue,
		MinDurationMs:  defaults.MinDurationMs,
		MaxResultSize:  defaults.MaxResultSize,
		MaskSensitive:  defaults.MaskSensitive,
	}

	if r.LogArguments != nil {
		cfg.LogArguments = *r.LogArguments
	}
	if r.LogReturnValue != nil {
		cfg.LogReturnValue = *r.LogReturnValue
	}
	if r.MinDurationMs != nil {
		cfg.MinDurationMs = *r.MinDurationMs
	}
	if r.MaxResultSize != nil {
		cfg.MaxResultSize = *r.MaxResultSize
	}
	if r.MaskSensitive != nil {
		cfg.MaskSensitive = *r.MaskSensitive
	}

	return cfg
}
