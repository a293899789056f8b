package rules

import (
	"github.com/arthur-debert/methodlog/pkg/errors"
)

// ValidateConfig checks that a resolved RuleConfig holds values in range
func ValidateConfig(cfg RuleConfig) error {
	if cfg.MinDurationMs < 0 {
		return errors.Newf(errors.ErrConfigValid,
			"min-duration-ms must be non-negative, got %d", cfg.MinDurationMs)
	}
	if cfg.MaxResultSize < -1 {
		return errors.Newf(errors.ErrConfigValid,
			"max-result-size must be -1 or greater, got %d", cfg.MaxResultSize)
	}
	return nil
}

// Validate checks the bounds of a rule's overrides. A blank pattern is
// not an error here; blank-pattern rules are dropped when the registry
// builds its snapshot.
func Validate(rs []Rule) error {
	for i, r := range rs {
		if r.MinDurationMs != nil && *r.MinDurationMs < 0 {
			return errors.Newf(errors.ErrRuleInvalid,
				"rule %d: min-duration-ms must be non-negative, got %d", i, *r.MinDurationMs)
		}
		if r.MaxResultSize != nil && *r.MaxResultSize < -1 {
			return errors.Newf(errors.ErrRuleInvalid,
				"rule %d: max-result-size must be -1 or greater, got %d", i, *r.MaxResultSize)
		}
	}
	return nil
}
