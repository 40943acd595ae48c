// Package scheduler persists planned output documents: writes are issued
// in fixed-size batches with full concurrency inside a batch and a
// cooperative yield between batches, unchanged destinations are skipped
// by modification-time comparison, and per-file failures never abort
// sibling writes.
package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/conneroisu/rulekit/internal/backup"
	rulerr "github.com/conneroisu/rulekit/internal/errors"
	"github.com/conneroisu/rulekit/internal/logging"
	"github.com/conneroisu/rulekit/internal/rules"
)

// DefaultBatchSize is the number of writes issued concurrently between
// yields.
const DefaultBatchSize = 10

// ProgressFunc is invoked once per completed output, written or skipped,
// with the monotonically incremented completion count.
type ProgressFunc func(completed int)

// Options configures a scheduler.
type Options struct {
	BatchSize  int
	Backup     *backup.Writer // nil disables backups
	OnProgress ProgressFunc
}

// Result summarizes one persistence run.
type Result struct {
	Written int
	Skipped int
	Failed  int
}

// Scheduler writes output documents to disk.
type Scheduler struct {
	batchSize  int
	backup     *backup.Writer
	onProgress ProgressFunc
	logger     logging.Logger
	collector  *rulerr.Collector
	completed  int64
}

// New creates a scheduler. Per-file errors are recorded in the collector.
func New(logger logging.Logger, collector *rulerr.Collector, opts Options) *Scheduler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = rulerr.NewCollector()
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Scheduler{
		batchSize:  batchSize,
		backup:     opts.Backup,
		onProgress: opts.OnProgress,
		logger:     logger.WithComponent("scheduler"),
		collector:  collector,
	}
}

// WriteAll persists the documents. Only a failure to create the output
// root itself is fatal; everything else is per-file and the run
// continues.
func (s *Scheduler) WriteAll(ctx context.Context, outputRoot string, docs []rules.OutputDocument) (Result, error) {
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return Result{}, rulerr.IO("mkdir", outputRoot, err)
	}

	var written, skipped, failed int64

	for start := 0; start < len(docs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		g, _ := errgroup.WithContext(ctx)
		for _, doc := range docs[start:end] {
			doc := doc
			g.Go(func() error {
				if !s.needsUpdate(doc) {
					atomic.AddInt64(&skipped, 1)
					s.progress()
					return nil
				}
				if err := s.write(outputRoot, doc); err != nil {
					atomic.AddInt64(&failed, 1)
					s.collector.Add(err)
					s.logger.Warn(ctx, err, "output excluded from run", "path", doc.Path)
				} else {
					atomic.AddInt64(&written, 1)
				}
				s.progress()
				return nil
			})
		}
		_ = g.Wait()

		// Yield so a host event loop is not starved between batches.
		runtime.Gosched()
	}

	return Result{
		Written: int(written),
		Skipped: int(skipped),
		Failed:  int(failed),
	}, nil
}

// needsUpdate reports whether the destination must be rewritten: it is
// missing, or older than any contributing source. The check is
// best-effort; any filesystem error means "needs update," never "skip."
func (s *Scheduler) needsUpdate(doc rules.OutputDocument) bool {
	destInfo, err := os.Stat(doc.Path)
	if err != nil {
		return true
	}
	for _, source := range doc.Sources {
		srcInfo, err := os.Stat(source)
		if err != nil {
			return true
		}
		if destInfo.ModTime().Before(srcInfo.ModTime()) {
			return true
		}
	}
	return false
}

func (s *Scheduler) write(outputRoot string, doc rules.OutputDocument) error {
	if err := os.MkdirAll(filepath.Dir(doc.Path), 0o755); err != nil {
		return rulerr.IO("mkdir", filepath.Dir(doc.Path), err)
	}

	if s.backup != nil {
		rel, err := filepath.Rel(outputRoot, doc.Path)
		if err != nil {
			rel = filepath.Base(doc.Path)
		}
		if err := s.backup.Backup(doc.Path, rel); err != nil {
			// Backup failure is logged but does not block the write.
			s.logger.Warn(context.Background(), err, "backup failed", "path", doc.Path)
		}
	}

	if err := os.WriteFile(doc.Path, []byte(doc.Content), 0o644); err != nil {
		return rulerr.IO("write", doc.Path, err)
	}
	return nil
}

// progress bumps the completion counter and notifies the reporter.
func (s *Scheduler) progress() {
	n := atomic.AddInt64(&s.completed, 1)
	if s.onProgress != nil {
		s.onProgress(int(n))
	}
}
