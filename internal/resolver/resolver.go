// Package resolver enumerates the ordered source directories a run draws
// rule documents from: global, stack base, version overlay, architecture
// overlay, and the feature tiers (state management, testing, signals).
package resolver

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/conneroisu/rulekit/internal/config"
	"github.com/conneroisu/rulekit/internal/logging"
	"github.com/conneroisu/rulekit/internal/rules"
)

// Stack names with dedicated feature tiers.
const (
	StackReact   = "react"
	StackAngular = "angular"
)

// Options selects which tiers a run includes.
type Options struct {
	Stack           string
	Architecture    string
	VersionRange    string // resolved range directory name, "" for none
	StateManagement string // react only
	IncludeTesting  bool   // react and angular only
	IncludeSignals  bool   // angular only
	IncludeGlobal   bool
}

// Resolver scans the template library for candidate source documents.
type Resolver struct {
	templatesDir string
	logger       logging.Logger
}

// New creates a resolver rooted at the template library directory.
func New(templatesDir string, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		templatesDir: templatesDir,
		logger:       logger.WithComponent("resolver"),
	}
}

// Resolve lists every candidate source document in fixed tier order. A
// directory that does not exist contributes zero documents and is not an
// error.
func (r *Resolver) Resolve(opts Options) []rules.SourceDocument {
	var docs []rules.SourceDocument

	add := func(tier rules.Tier, dir string) {
		docs = append(docs, r.listDocuments(tier, dir)...)
	}

	if opts.IncludeGlobal {
		add(rules.TierGlobal, filepath.Join(r.templatesDir, "global"))
	}

	stackDir := filepath.Join(r.templatesDir, "stacks", opts.Stack)
	add(rules.TierBase, filepath.Join(stackDir, "base"))

	if opts.VersionRange != "" {
		add(rules.TierVersion, filepath.Join(stackDir, opts.VersionRange))
	}

	if opts.Architecture != "" {
		add(rules.TierArchitecture, filepath.Join(stackDir, "architectures", opts.Architecture))
	}

	if opts.Stack == StackReact && opts.StateManagement != "" {
		add(rules.TierStateManagement, filepath.Join(stackDir, "state-management", opts.StateManagement))
	}

	if opts.IncludeTesting && (opts.Stack == StackReact || opts.Stack == StackAngular) {
		add(rules.TierTesting, filepath.Join(stackDir, "testing"))
	}

	if opts.IncludeSignals && opts.Stack == StackAngular {
		add(rules.TierSignals, r.signalsDir(stackDir, opts.VersionRange))
	}

	return docs
}

// signalsDir prefers a version-scoped signals directory over the shared
// one when the run resolved a version range.
func (r *Resolver) signalsDir(stackDir, versionRange string) string {
	shared := filepath.Join(stackDir, "signals")
	if versionRange == "" {
		return shared
	}
	scoped := filepath.Join(shared, versionRange)
	if info, err := os.Stat(scoped); err == nil && info.IsDir() {
		return scoped
	}
	return shared
}

// listDocuments returns one SourceDocument per markdown file in dir.
func (r *Resolver) listDocuments(tier rules.Tier, dir string) []rules.SourceDocument {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.logger.Debug(context.Background(), "tier directory contributes nothing",
			"tier", tier.String(), "dir", dir, "reason", err.Error())
		return nil
	}

	var docs []rules.SourceDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), rules.SourceExt) {
			continue
		}
		docs = append(docs, rules.SourceDocument{
			Tier:     tier,
			Path:     filepath.Join(dir, entry.Name()),
			BaseName: entry.Name(),
		})
	}
	return docs
}

// MapVersionToRange resolves a detected version to the stack's version
// range entry. The version is first tried as a direct key; failing that,
// an integer version is matched against any key parsing to the same
// integer. The boolean result is false when neither succeeds, which
// callers must treat as "no version overlay," not as an error.
func MapVersionToRange(cfg *config.RuleConfig, stack, version string) (config.VersionRange, bool) {
	if version == "" {
		return config.VersionRange{}, false
	}
	stackCfg, ok := cfg.Stack(stack)
	if !ok {
		return config.VersionRange{}, false
	}

	if vr, ok := stackCfg.VersionRanges[version]; ok {
		return vr, true
	}

	major, err := strconv.Atoi(strings.TrimSpace(version))
	if err != nil {
		return config.VersionRange{}, false
	}
	for key, vr := range stackCfg.VersionRanges {
		if parsed, err := strconv.Atoi(key); err == nil && parsed == major {
			return vr, true
		}
	}
	return config.VersionRange{}, false
}
