// Package merger groups same-named source documents found across tiers
// and collapses each group into one output document, merging frontmatter
// and body content with well-defined precedence: base, then architecture,
// then version, with the later tier winning on conflicting keys and
// bodies concatenated as addenda.
package merger

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/rulekit/internal/cache"
	"github.com/conneroisu/rulekit/internal/config"
	rulerr "github.com/conneroisu/rulekit/internal/errors"
	"github.com/conneroisu/rulekit/internal/frontmatter"
	"github.com/conneroisu/rulekit/internal/logging"
	"github.com/conneroisu/rulekit/internal/rules"
	"github.com/conneroisu/rulekit/internal/template"
)

// wildcardGlob matches every file; used for global-tier documents.
const wildcardGlob = "**/*"

// Merger turns resolved source documents into planned output documents.
type Merger struct {
	reader    *cache.FileReader
	logger    logging.Logger
	collector *rulerr.Collector
}

// New creates a merger. Read failures on individual files are recorded in
// the collector and exclude the file from the run's output.
func New(reader *cache.FileReader, logger logging.Logger, collector *rulerr.Collector) *Merger {
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = rulerr.NewCollector()
	}
	return &Merger{
		reader:    reader,
		logger:    logger.WithComponent("merger"),
		collector: collector,
	}
}

// Merge groups the documents and produces one output per group. When two
// groups map to the same destination path the later-resolved one wins,
// which by resolver ordering is the more specific tier.
func (m *Merger) Merge(docs []rules.SourceDocument, cfg *config.RuleConfig, runCtx rules.RunContext) []rules.OutputDocument {
	groups := groupDocuments(docs)

	var order []string
	byPath := make(map[string]rules.OutputDocument)

	for _, group := range groups {
		out, ok := m.mergeGroup(group, cfg, runCtx)
		if !ok {
			continue
		}
		if _, seen := byPath[out.Path]; !seen {
			order = append(order, out.Path)
		}
		byPath[out.Path] = out
	}

	outputs := make([]rules.OutputDocument, 0, len(order))
	for _, path := range order {
		outputs = append(outputs, byPath[path])
	}
	return outputs
}

// groupDocuments builds merge groups: base/architecture/version documents
// sharing a base name collapse together, every other document stands
// alone. Group order follows first appearance in the resolver's output.
func groupDocuments(docs []rules.SourceDocument) []rules.MergeGroup {
	var groups []rules.MergeGroup
	mergeable := make(map[string]int) // baseName -> index into groups

	for _, doc := range docs {
		if !doc.Tier.Mergeable() {
			groups = append(groups, rules.MergeGroup{
				BaseName:  doc.BaseName,
				Documents: []rules.SourceDocument{doc},
			})
			continue
		}
		if idx, ok := mergeable[doc.BaseName]; ok {
			groups[idx].Documents = append(groups[idx].Documents, doc)
			continue
		}
		mergeable[doc.BaseName] = len(groups)
		groups = append(groups, rules.MergeGroup{
			BaseName:  doc.BaseName,
			Documents: []rules.SourceDocument{doc},
		})
	}

	for i := range groups {
		sortByTier(groups[i].Documents)
	}
	return groups
}

// sortByTier orders documents by ascending tier precedence. The order is
// load-bearing: it decides both body concatenation and which tier wins
// conflicting frontmatter keys.
func sortByTier(docs []rules.SourceDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Tier < docs[j].Tier
	})
}

// mergeGroup collapses one group into an output document. Returns false
// when every document in the group failed to read.
func (m *Merger) mergeGroup(group rules.MergeGroup, cfg *config.RuleConfig, runCtx rules.RunContext) (rules.OutputDocument, bool) {
	fm := m.baseMetadata(runCtx)
	var bodyParts []string
	var sources []string
	hasArchitectureTier := false

	for _, doc := range group.Documents {
		raw, err := m.reader.ReadFile(doc.Path)
		if err != nil {
			m.collector.Add(err)
			m.logger.Warn(context.Background(), err, "source document excluded from run", "path", doc.Path)
			continue
		}
		sources = append(sources, doc.Path)
		if doc.Tier == rules.TierArchitecture {
			hasArchitectureTier = true
		}

		embedded, body := frontmatter.Extract(string(raw))
		// Later tiers overwrite keys set by earlier ones; keys a tier
		// does not set explicitly are left alone.
		fm.Merge(embedded)

		if len(bodyParts) > 0 {
			bodyParts = append(bodyParts, tierHeading(doc.Tier, runCtx))
		}
		bodyParts = append(bodyParts, body)
	}

	if len(sources) == 0 {
		return rules.OutputDocument{}, false
	}

	tier := group.Documents[0].Tier
	m.resolveRouting(fm, tier, group.BaseName, cfg, runCtx, hasArchitectureTier)
	m.expandGlobs(fm, runCtx)

	// The transient debug run-flag never reaches the persisted output.
	fm.Delete("debug")

	body := template.Substitute(strings.Join(bodyParts, "\n\n"), runCtx)

	return rules.OutputDocument{
		Path:    outputPath(tier, group.BaseName, runCtx),
		Content: frontmatter.Serialize(fm, body),
		Sources: sources,
	}, true
}

// baseMetadata seeds the output frontmatter from the run values.
func (m *Merger) baseMetadata(runCtx rules.RunContext) *frontmatter.FrontMatter {
	fm := frontmatter.New()
	fm.SetString("stack", runCtx.Stack)
	if runCtx.DetectedVersion != "" {
		fm.SetString("detectedVersion", runCtx.DetectedVersion)
	}
	if runCtx.VersionRange != "" {
		fm.SetString("versionRange", runCtx.VersionRange)
	}
	fm.SetString("projectPath", runCtx.ProjectPath)
	if runCtx.Architecture != "" {
		fm.SetString("architecture", runCtx.Architecture)
	}
	if runCtx.Debug {
		fm.SetBool("debug", true)
	}
	return fm
}

// resolveRouting fills globs and alwaysApply for keys no tier set
// explicitly. An explicit value from any tier always wins over a default:
// the invariant is that routing metadata reflects the highest-precedence
// tier that set it, never a later unrelated default.
func (m *Merger) resolveRouting(fm *frontmatter.FrontMatter, tier rules.Tier, baseName string, cfg *config.RuleConfig, runCtx rules.RunContext, hasArchitectureTier bool) {
	if tier == rules.TierGlobal {
		if config.StringList(cfg.Global.Always).Contains(baseName) {
			fm.SetBool("alwaysApply", true)
			fm.SetString("globs", wildcardGlob)
			return
		}
		if !fm.Has("globs") {
			fm.SetString("globs", wildcardGlob)
		}
		if !fm.Has("alwaysApply") {
			fm.SetBool("alwaysApply", false)
		}
		return
	}

	stackCfg, _ := cfg.Stack(runCtx.Stack)

	if !fm.Has("globs") {
		if pattern, ok := stackCfg.PatternFor(baseName, runCtx.Architecture); ok {
			fm.SetString("globs", pattern)
		} else {
			arch := ""
			if tier == rules.TierArchitecture || hasArchitectureTier {
				arch = runCtx.Architecture
			}
			fm.SetString("globs", strings.Join(stackCfg.DefaultGlobs(arch), ","))
		}
	}
	if !fm.Has("alwaysApply") {
		fm.SetBool("alwaysApply", false)
	}
}

// expandGlobs substitutes the <root>/ prefix in every glob value with the
// run's normalized project path.
func (m *Merger) expandGlobs(fm *frontmatter.FrontMatter, runCtx rules.RunContext) {
	value, ok := fm.Get("globs")
	if !ok {
		return
	}
	switch value.Kind {
	case frontmatter.KindString:
		fm.SetString("globs", template.ExpandRoot(value.Str, runCtx.ProjectPath))
	case frontmatter.KindList:
		expanded := make([]string, len(value.List))
		for i, glob := range value.List {
			expanded[i] = template.ExpandRoot(glob, runCtx.ProjectPath)
		}
		fm.SetList("globs", expanded...)
	}
}

// tierHeading generates the sub-heading marking where an addendum tier's
// content begins.
func tierHeading(tier rules.Tier, runCtx rules.RunContext) string {
	switch tier {
	case rules.TierArchitecture:
		if runCtx.Architecture != "" {
			return fmt.Sprintf("## Architecture overrides (%s)", runCtx.Architecture)
		}
		return "## Architecture overrides"
	case rules.TierVersion:
		name := runCtx.VersionRangeName
		if name == "" {
			name = runCtx.VersionRange
		}
		if name != "" {
			return fmt.Sprintf("## Version overrides (%s)", name)
		}
		return "## Version overrides"
	default:
		return fmt.Sprintf("## %s overrides", cases.Title(language.English).String(tier.String()))
	}
}

// outputPath maps a group to its destination under the generated rules
// root: global documents in the sibling global directory, everything else
// under the stack's directory.
func outputPath(tier rules.Tier, baseName string, runCtx rules.RunContext) string {
	name := rules.OutputName(baseName)
	if tier == rules.TierGlobal {
		return filepath.Join(runCtx.OutputRoot(), "global", name)
	}
	return filepath.Join(runCtx.OutputRoot(), runCtx.Stack, name)
}
