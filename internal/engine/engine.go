// Package engine wires the rule composition pipeline together: the
// resolver enumerates tiers, the merger (reading through the content
// cache) collapses groups, and the persistence scheduler writes the
// results, consulting the injected configuration store for routing
// metadata along the way.
package engine

import (
	"context"
	"path/filepath"

	"github.com/conneroisu/rulekit/internal/backup"
	"github.com/conneroisu/rulekit/internal/cache"
	"github.com/conneroisu/rulekit/internal/config"
	"github.com/conneroisu/rulekit/internal/detect"
	rulerr "github.com/conneroisu/rulekit/internal/errors"
	"github.com/conneroisu/rulekit/internal/logging"
	"github.com/conneroisu/rulekit/internal/merger"
	"github.com/conneroisu/rulekit/internal/resolver"
	"github.com/conneroisu/rulekit/internal/rules"
	"github.com/conneroisu/rulekit/internal/scheduler"
	"github.com/conneroisu/rulekit/internal/template"
)

// Options selects what one generation run produces.
type Options struct {
	Stack           string
	Version         string // "" sniffs the project's manifest
	Architecture    string
	StateManagement string
	IncludeTesting  bool
	IncludeSignals  bool
	IncludeGlobal   bool
	ProjectPath     string
	Backup          bool
	Debug           bool
	OnProgress      scheduler.ProgressFunc
}

// Report summarizes a generation run.
type Report struct {
	Outputs          int
	Written          int
	Skipped          int
	Failed           int
	DetectedVersion  string
	VersionRange     string
	VersionRangeName string
	Errors           []*rulerr.RuleError
}

// Engine owns the long-lived collaborators of the pipeline.
type Engine struct {
	templatesDir string
	store        *config.Store
	cache        *cache.ContentCache
	reader       *cache.FileReader
	logger       logging.Logger
}

// New creates an engine rooted at the template library directory. A nil
// store or cache gets a fresh default.
func New(templatesDir string, store *config.Store, contentCache *cache.ContentCache, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if store == nil {
		store = config.NewStore(logger)
	}
	if contentCache == nil {
		contentCache = cache.New(cache.DefaultMaxSize, cache.DefaultTTL)
	}
	return &Engine{
		templatesDir: templatesDir,
		store:        store,
		cache:        contentCache,
		reader:       cache.NewFileReader(contentCache),
		logger:       logger.WithComponent("engine"),
	}
}

// Store exposes the injected configuration store.
func (e *Engine) Store() *config.Store { return e.store }

// Refresh drops cached template contents and the memoized configuration
// so the next run rereads the library from disk.
func (e *Engine) Refresh() {
	e.cache.Clear()
	e.store.Invalidate()
}

// Generate runs the full pipeline. Per-file problems are reported in the
// returned Report; only an unrecoverable top-level failure (the output
// root cannot be created) returns a non-nil error.
func (e *Engine) Generate(ctx context.Context, opts Options) (*Report, error) {
	cfg := e.store.Load(e.templatesDir)
	collector := rulerr.NewCollector()

	version := opts.Version
	if version == "" {
		version = detect.Version(opts.ProjectPath, opts.Stack)
		if version != "" {
			e.logger.Debug(ctx, "detected framework version", "stack", opts.Stack, "version", version)
		}
	}

	runCtx := rules.RunContext{
		Stack:           opts.Stack,
		DetectedVersion: version,
		Architecture:    opts.Architecture,
		ProjectPath:     template.NormalizeProjectPath(opts.ProjectPath),
		Debug:           opts.Debug,
	}
	runCtx.CursorPath = filepath.Join(runCtx.ProjectPath, ".cursor")

	if vr, ok := resolver.MapVersionToRange(cfg, opts.Stack, version); ok {
		runCtx.VersionRange = vr.RangeName
		runCtx.VersionRangeName = vr.Name
	}

	docs := resolver.New(e.templatesDir, e.logger).Resolve(resolver.Options{
		Stack:           opts.Stack,
		Architecture:    opts.Architecture,
		VersionRange:    runCtx.VersionRange,
		StateManagement: opts.StateManagement,
		IncludeTesting:  opts.IncludeTesting,
		IncludeSignals:  opts.IncludeSignals,
		IncludeGlobal:   opts.IncludeGlobal,
	})

	outputs := merger.New(e.reader, e.logger, collector).Merge(docs, cfg, runCtx)

	var backupWriter *backup.Writer
	if opts.Backup {
		backupWriter = backup.New(runCtx.OutputRoot())
	}

	sched := scheduler.New(e.logger, collector, scheduler.Options{
		Backup:     backupWriter,
		OnProgress: opts.OnProgress,
	})
	result, err := sched.WriteAll(ctx, runCtx.OutputRoot(), outputs)
	if err != nil {
		return nil, err
	}

	return &Report{
		Outputs:          len(outputs),
		Written:          result.Written,
		Skipped:          result.Skipped,
		Failed:           result.Failed,
		DetectedVersion:  version,
		VersionRange:     runCtx.VersionRange,
		VersionRangeName: runCtx.VersionRangeName,
		Errors:           collector.Errors(),
	}, nil
}
