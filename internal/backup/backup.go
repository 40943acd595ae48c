// Package backup preserves existing destination files before the
// scheduler overwrites them, copying each into a timestamped directory
// under the generated rules root.
package backup

import (
	"io"
	"os"
	"path/filepath"
	"time"

	rulerr "github.com/conneroisu/rulekit/internal/errors"
)

// DirName is the backup directory under the output root.
const DirName = ".backup"

// Writer copies files into one run-scoped backup directory.
type Writer struct {
	root  string
	stamp string
}

// New creates a writer for one run. outputRoot is the generated rules
// root the backed-up files live under.
func New(outputRoot string) *Writer {
	return &Writer{
		root:  filepath.Join(outputRoot, DirName),
		stamp: time.Now().Format("20060102-150405"),
	}
}

// Dir returns the run's backup directory.
func (w *Writer) Dir() string {
	return filepath.Join(w.root, w.stamp)
}

// Backup copies the file at path into the run's backup directory,
// preserving rel as its relative location. A missing source is not an
// error; there is nothing to preserve.
func (w *Writer) Backup(path, rel string) error {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return rulerr.IO("open", path, err)
	}
	defer src.Close()

	dest := filepath.Join(w.Dir(), rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return rulerr.IO("mkdir", filepath.Dir(dest), err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return rulerr.IO("create", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return rulerr.IO("copy", dest, err)
	}
	return nil
}
