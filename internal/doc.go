// Package internal contains the core implementation packages for rulekit.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the rulekit CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - resolver: Tier discovery across the template library
//   - merger: Document grouping, frontmatter merging, and routing
//   - frontmatter: Parsing and serialization of rule metadata blocks
//   - template: Placeholder substitution and path normalization
//   - config: The rules configuration document and its memoized store
//   - cache: TTL-bounded content cache backing template reads
//   - scheduler: Batched, change-aware persistence of outputs
//   - engine: Pipeline orchestration behind the CLI commands
//   - watcher: File system monitoring with debouncing
//   - backup: Timestamped copies of outputs before overwrite
//   - detect: Framework version sniffing from project manifests
//   - errors: Classified errors and the per-run collector
//   - logging: Structured logging wrapper used by every component
//   - rules: Shared tier and document types plus the run context
//
// # Inter-Package Communication
//
// The pipeline runs resolver -> merger -> scheduler. The engine owns
// the long-lived pieces (configuration store, content cache, logger)
// and hands each run its own error collector, so concurrent runs never
// share failure state. The merger reads template bodies through the
// cache's FileReader and reports unreadable sources to the collector
// instead of failing the run.
//
// For detailed documentation, see the individual package documentation.
package internal
