package cache

import (
	"os"

	rulerr "github.com/conneroisu/rulekit/internal/errors"
)

// FileReader is a read-through view over the content cache for paths
// where stale-within-TTL data is safe to serve (template source files).
// Destination existence checks must never go through it.
type FileReader struct {
	cache *ContentCache
}

// NewFileReader wraps cache.
func NewFileReader(cache *ContentCache) *FileReader {
	return &FileReader{cache: cache}
}

// ReadFile returns the file's content, serving from cache when live.
func (r *FileReader) ReadFile(path string) ([]byte, error) {
	if data, ok := r.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rulerr.Absent("read", path, err)
		}
		return nil, rulerr.IO("read", path, err)
	}

	r.cache.Set(path, data)
	return data, nil
}
