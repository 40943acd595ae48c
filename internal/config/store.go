package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	rulerr "github.com/conneroisu/rulekit/internal/errors"
	"github.com/conneroisu/rulekit/internal/logging"
)

// Store owns the in-memory rules configuration for one engine instance.
type Store struct {
	mutex  sync.Mutex
	dir    string
	config *RuleConfig
	logger logging.Logger
}

// NewStore creates an empty store.
func NewStore(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{logger: logger.WithComponent("config")}
}

// Load returns the rules configuration for the template library at dir.
// The first call wins: the result is memoized and later directory
// arguments are ignored until Invalidate. A missing or unreadable
// document yields the built-in default, never an error.
func (s *Store) Load(dir string) *RuleConfig {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.config != nil {
		return s.config
	}

	path := filepath.Join(dir, FileName)
	cfg, err := readDocument(path)
	if err != nil {
		s.logger.Debug(context.Background(), "rules config unavailable, using built-in defaults",
			"path", path, "reason", err.Error())
		cfg = DefaultConfig()
	}

	s.config = cfg
	s.dir = dir
	return cfg
}

// Save writes cfg to the rules document under dir and, on success,
// replaces the memoized configuration. On failure the previous in-memory
// configuration is left untouched.
func (s *Store) Save(cfg *RuleConfig, dir string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return rulerr.Config("marshal", filepath.Join(dir, FileName), err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rulerr.Config("mkdir", dir, err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return rulerr.Config("write", path, err)
	}

	s.mutex.Lock()
	s.config = cfg
	s.dir = dir
	s.mutex.Unlock()
	return nil
}

// Invalidate drops the memoized configuration so the next Load rereads
// from disk.
func (s *Store) Invalidate() {
	s.mutex.Lock()
	s.config = nil
	s.dir = ""
	s.mutex.Unlock()
}

// Dir returns the directory the current configuration was loaded from,
// or "" when nothing is loaded.
func (s *Store) Dir() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.dir
}

func readDocument(path string) (*RuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rulerr.Absent("read", path, err)
		}
		return nil, rulerr.IO("read", path, err)
	}

	var cfg RuleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		// Parsing failure is treated identically to "file absent."
		return nil, rulerr.Malformed("parse", path, err)
	}
	if cfg.Stacks == nil {
		cfg.Stacks = make(map[string]StackConfig)
	}
	return &cfg, nil
}
