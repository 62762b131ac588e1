// Package settings persists the assistant settings: the enabled switch and
// the optional user API key override.
package settings

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type fileSettings struct {
	AIEnabled bool   `yaml:"aiEnabled"`
	APIKey    string `yaml:"apiKey"`
}

// Store holds assistant settings backed by a YAML file. It implements
// ai.SettingsSource. A missing file means defaults: assistant off, no
// key override.
type Store struct {
	path          string
	defaultAPIKey string

	mu   sync.RWMutex
	data fileSettings
}

// NewStore loads settings from path. defaultAPIKey is the configured
// fallback used when no override has been saved.
func NewStore(path, defaultAPIKey string) (*Store, error) {
	s := &Store{path: path, defaultAPIKey: strings.TrimSpace(defaultAPIKey)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.data); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// AIEnabled reports the persisted assistant switch.
func (s *Store) AIEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.AIEnabled
}

// APIKey returns the user override when set, otherwise the configured
// default. Blank means no key is available.
func (s *Store) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if key := strings.TrimSpace(s.data.APIKey); key != "" {
		return key
	}
	return s.defaultAPIKey
}

// SetAIEnabled flips the assistant switch and persists.
func (s *Store) SetAIEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AIEnabled = enabled
	return s.persist()
}

// SetAPIKey saves the user key override and persists. Blank clears the
// override, falling back to the configured default.
func (s *Store) SetAPIKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.APIKey = strings.TrimSpace(key)
	return s.persist()
}

func (s *Store) persist() error {
	data, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
