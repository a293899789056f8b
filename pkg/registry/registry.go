package registry

import (
	"strings"
	"sync/atomic"

	"github.com/arthur-debert/methodlog/pkg/logging"
	"github.com/arthur-debert/methodlog/pkg/pattern"
	"github.com/arthur-debert/methodlog/pkg/rules"
	"github.com/rs/zerolog"
)

// Entry pairs a compiled matcher with the merged configuration that
// applies when it matches. Entries are immutable once built.
type Entry struct {
	Matcher pattern.Matcher
	Config  rules.RuleConfig
}

// Snapshot is one immutable generation of compiled rules plus the
// defaults they were merged against. A snapshot is built fresh on every
// reload and never mutated afterward, so readers can scan it without
// locking.
type Snapshot struct {
	defaults rules.RuleConfig
	entries  []Entry
}

// Entries returns the ordered rule entries of this snapshot
func (s *Snapshot) Entries() []Entry {
	return s.entries
}

// Defaults returns the global defaults this snapshot was built from
func (s *Snapshot) Defaults() rules.RuleConfig {
	return s.defaults
}

// Registry holds the active snapshot of compiled logging rules and
// answers match lookups against it. Lookups are lock-free; Reload
// replaces the snapshot wholesale with an atomic pointer swap, so a
// lookup in progress sees either the old generation or the new one,
// never a mix.
type Registry struct {
	logger  zerolog.Logger
	current atomic.Pointer[Snapshot]
}

// New creates a registry with its first snapshot built from the given
// defaults and rule list
func New(defaults rules.RuleConfig, rs []rules.Rule) *Registry {
	r := &Registry{
		logger: logging.GetLogger("registry"),
	}
	r.current.Store(r.build(defaults, rs))
	return r
}

// build compiles the rule list into a snapshot. Rules with a blank
// pattern and rules that are disabled contribute no entry; input order
// is preserved and is the match-priority order.
func (r *Registry) build(defaults rules.RuleConfig, rs []rules.Rule) *Snapshot {
	snap := &Snapshot{defaults: defaults}

	for _, rule := range rs {
		if strings.TrimSpace(rule.Pattern) == "" || !rule.IsEnabled() {
			continue
		}
		snap.entries = append(snap.entries, Entry{
			Matcher: pattern.Compile(rule.Pattern),
			Config:  rule.MergeWithDefaults(defaults),
		})
	}

	r.logger.Debug().Int("ruleCount", len(snap.entries)).Msg("Built rule snapshot")
	return snap
}

// Match returns the effective configuration of the first entry whose
// matcher accepts the call and whose merged config is enabled. A
// matching but disabled entry does not stop the scan; later entries may
// still match. The second return is false when no entry matches.
func (r *Registry) Match(typeName, methodName string) (rules.RuleConfig, bool) {
	snap := r.current.Load()
	for _, entry := range snap.entries {
		if entry.Matcher.Matches(typeName, methodName) && entry.Config.Enabled {
			return entry.Config, true
		}
	}
	return rules.RuleConfig{}, false
}

// GlobalEnabled reports the current snapshot's global kill switch.
// When false the interceptor skips all logging without scanning rules.
func (r *Registry) GlobalEnabled() bool {
	return r.current.Load().defaults.Enabled
}

// Defaults returns the current snapshot's global defaults
func (r *Registry) Defaults() rules.RuleConfig {
	return r.current.Load().defaults
}

// Len returns the number of entries in the current snapshot
func (r *Registry) Len() int {
	return len(r.current.Load().entries)
}

// Snapshot returns the currently active snapshot. The returned value is
// immutable; callers may scan it even across a concurrent Reload.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// Reload builds a new snapshot from the given defaults and rules and
// atomically installs it. Every Match that starts after Reload returns
// observes the new snapshot; in-flight lookups finish against the one
// they started with.
func (r *Registry) Reload(defaults rules.RuleConfig, rs []rules.Rule) {
	r.current.Store(r.build(defaults, rs))
	r.logger.Info().Int("ruleCount", r.Len()).Msg("Reloaded logging rules")
}

// ReloadChecked validates the incoming configuration before installing
// it. On validation failure the active snapshot is left untouched and
// the error is returned to the caller.
func (r *Registry) ReloadChecked(defaults rules.RuleConfig, rs []rules.Rule) error {
	if err := rules.ValidateConfig(defaults); err != nil {
		r.logger.Error().Err(err).Msg("Rejected reload, keeping current snapshot")
		return err
	}
	if err := rules.Validate(rs); err != nil {
		r.logger.Error().Err(err).Msg("Rejected reload, keeping current snapshot")
		return err
	}
	r.Reload(defaults, rs)
	return nil
}
