// Package registry holds the active snapshot of compiled logging rules
// and matches intercepted calls against it, first match wins. Snapshots
// are immutable and replaced atomically on reload, so lookups never
// block and never observe a half-updated rule list.
package registry
