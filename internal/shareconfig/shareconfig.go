// Package shareconfig persists the operator-managed share settings as a YAML file.
package shareconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"eventshare/internal/domain"
)

// Default returns the share configuration used until an operator changes it
func Default() domain.ShareConfig {
	return domain.ShareConfig{
		DestinationURL: "https://example.com/events",
		Hashtags:       []string{"#イベント", "#勉強会"},
		BaseMessage:    "今月のイベント情報です！",
	}
}

// Normalize cleans up a share configuration: fields are trimmed, empty
// hashtags dropped, and bare tags get their # prefix.
func Normalize(cfg domain.ShareConfig) domain.ShareConfig {
	cfg.DestinationURL = strings.TrimSpace(cfg.DestinationURL)
	cfg.BaseMessage = strings.TrimSpace(cfg.BaseMessage)

	tags := make([]string, 0, len(cfg.Hashtags))
	for _, tag := range cfg.Hashtags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		tags = append(tags, tag)
	}
	cfg.Hashtags = tags

	return cfg
}

// FileStore loads and saves the share configuration at a fixed path
type FileStore struct {
	path string
}

// NewFileStore creates a file store for the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path backing the store
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the share configuration from disk. On first run the file does
// not exist yet; the defaults are written out and returned. Fields missing
// from an existing file fall back to their defaults.
func (s *FileStore) Load() (domain.ShareConfig, error) {
	if s.path == "" {
		return domain.ShareConfig{}, errors.New("share config path is empty")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := s.Save(cfg); err != nil {
				return cfg, fmt.Errorf("failed to write default share config: %w", err)
			}
			return cfg, nil
		}
		return domain.ShareConfig{}, fmt.Errorf("failed to read share config: %w", err)
	}

	var cfg domain.ShareConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ShareConfig{}, fmt.Errorf("failed to parse share config: %w", err)
	}

	defaults := Default()
	if cfg.DestinationURL == "" {
		cfg.DestinationURL = defaults.DestinationURL
	}
	if cfg.BaseMessage == "" {
		cfg.BaseMessage = defaults.BaseMessage
	}
	// A missing hashtags key means defaults; an explicit empty list means none.
	if cfg.Hashtags == nil {
		cfg.Hashtags = defaults.Hashtags
	}

	return Normalize(cfg), nil
}

// Save writes the share configuration atomically: temp file in the same
// directory, then rename. The file ends up 0600, the parent directory 0700.
func (s *FileStore) Save(cfg domain.ShareConfig) error {
	if s.path == "" {
		return errors.New("share config path is empty")
	}

	data, err := yaml.Marshal(Normalize(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal share config: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create share config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".eventshare-config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp share config: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write share config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync share config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close share config: %w", err)
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to set share config permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace share config: %w", err)
	}

	return nil
}
