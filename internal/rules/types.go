// Package rules defines the core domain types shared by the rule
// composition engine: source tiers, documents discovered in the template
// library, merge groups, and the run context threaded through
// substitution and metadata resolution.
package rules

import "path/filepath"

// Tier identifies the override layer a source document was found in.
type Tier int

const (
	TierGlobal Tier = iota
	TierBase
	TierArchitecture
	TierVersion
	TierStateManagement
	TierTesting
	TierSignals
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierGlobal:
		return "global"
	case TierBase:
		return "base"
	case TierArchitecture:
		return "architecture"
	case TierVersion:
		return "version"
	case TierStateManagement:
		return "state-management"
	case TierTesting:
		return "testing"
	case TierSignals:
		return "signals"
	default:
		return "unknown"
	}
}

// Mergeable reports whether documents in this tier participate in
// cross-tier merging. Global and feature tiers always produce standalone
// outputs.
func (t Tier) Mergeable() bool {
	return t == TierBase || t == TierArchitecture || t == TierVersion
}

// SourceDocument is a single template file discovered by the resolver.
// Content is read lazily through the content cache; the resolver only
// records where the file lives and which tier it belongs to.
type SourceDocument struct {
	Tier     Tier
	Path     string // absolute path to the source file
	BaseName string // file name including the source extension
}

// MergeGroup collects the same-named documents across mergeable tiers
// that collapse into one output. Documents are ordered by ascending tier
// precedence (base, architecture, version).
type MergeGroup struct {
	BaseName  string
	Documents []SourceDocument
}

// OutputDocument is a planned write: destination path, merged routing
// metadata rendered by the frontmatter codec, and the merged body. Sources
// carries every contributing file path so the persistence scheduler can
// perform its modification-time comparison.
type OutputDocument struct {
	Path    string
	Content string
	Sources []string
}

// RunContext carries the per-run values consumed by template substitution
// and frontmatter defaulting. ProjectPath is stored normalized (always
// ending in a single slash).
type RunContext struct {
	Stack            string
	DetectedVersion  string
	VersionRange     string
	VersionRangeName string
	Architecture     string
	ProjectPath      string
	CursorPath       string
	Debug            bool
}

// OutputRoot returns the directory all generated rules live under,
// relative to the run's project path.
func (c RunContext) OutputRoot() string {
	return filepath.Join(c.ProjectPath, ".cursor", "rules", "rules-kit")
}

const (
	// SourceExt is the extension of template library documents.
	SourceExt = ".md"
	// OutputExt marks generated rule documents.
	OutputExt = ".mdc"
)

// OutputName converts a source base name to its generated counterpart
// (controllers.md becomes controllers.mdc).
func OutputName(baseName string) string {
	ext := filepath.Ext(baseName)
	if ext == SourceExt {
		return baseName[:len(baseName)-len(ext)] + OutputExt
	}
	return baseName + OutputExt
}
