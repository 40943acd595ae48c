// Package errors defines the error taxonomy for the rule composition
// engine. Every recoverable failure is classified as absent, malformed,
// I/O, or configuration so callers can distinguish "contributes nothing"
// from "needs attention" without string matching.
package errors

import (
	stderrors "errors"
	"fmt"
	"sync"
)

// Kind classifies a rule engine error.
type Kind int

const (
	// KindAbsent marks a missing directory, file, or configuration
	// document. Never fatal; the resource contributes nothing.
	KindAbsent Kind = iota
	// KindMalformed marks unparsable input (frontmatter line, config
	// value). The offending field is skipped, never the document.
	KindMalformed
	// KindIO marks a read/write/stat failure on an individual file.
	KindIO
	// KindConfig marks a configuration load or save failure.
	KindConfig
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindMalformed:
		return "malformed"
	case KindIO:
		return "io"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// RuleError is a classified error tied to the path it occurred on.
type RuleError struct {
	Kind Kind
	Op   string // operation that failed, e.g. "read", "write", "stat"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s %s", e.Kind, e.Op, e.Path)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RuleError) Unwrap() error { return e.Err }

// Absent constructs a KindAbsent error.
func Absent(op, path string, err error) *RuleError {
	return &RuleError{Kind: KindAbsent, Op: op, Path: path, Err: err}
}

// Malformed constructs a KindMalformed error.
func Malformed(op, path string, err error) *RuleError {
	return &RuleError{Kind: KindMalformed, Op: op, Path: path, Err: err}
}

// IO constructs a KindIO error.
func IO(op, path string, err error) *RuleError {
	return &RuleError{Kind: KindIO, Op: op, Path: path, Err: err}
}

// Config constructs a KindConfig error.
func Config(op, path string, err error) *RuleError {
	return &RuleError{Kind: KindConfig, Op: op, Path: path, Err: err}
}

// IsKind reports whether err is a RuleError of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *RuleError
	if stderrors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

// Collector accumulates per-file errors during a batch run without
// aborting sibling work.
type Collector struct {
	mutex sync.RWMutex
	errs  []*RuleError
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{errs: make([]*RuleError, 0)}
}

// Add records an error. Nil errors are ignored; plain errors are wrapped
// as KindIO.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	var re *RuleError
	if !stderrors.As(err, &re) {
		re = &RuleError{Kind: KindIO, Op: "run", Err: err}
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errs = append(c.errs, re)
}

// Errors returns a copy of the collected errors.
func (c *Collector) Errors() []*RuleError {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]*RuleError, len(c.errs))
	copy(result, c.errs)
	return result
}

// HasErrors reports whether anything was collected.
func (c *Collector) HasErrors() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.errs) > 0
}

// ByKind returns the collected errors of a specific kind.
func (c *Collector) ByKind(kind Kind) []*RuleError {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	var result []*RuleError
	for _, err := range c.errs {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}

// Clear discards all collected errors.
func (c *Collector) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errs = c.errs[:0]
}
