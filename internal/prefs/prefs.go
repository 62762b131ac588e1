// Package prefs holds the reader display preferences: a single-writer state
// holder with change notification, persisted as YAML.
package prefs

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type ThemeMode string

const (
	ThemeSystem ThemeMode = "system"
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSepia  ThemeMode = "sepia"
)

type ScrollMode string

const (
	ScrollPaged      ScrollMode = "paged"
	ScrollContinuous ScrollMode = "continuous"
)

type FontFamily string

const (
	FontSerif     FontFamily = "serif"
	FontSansSerif FontFamily = "sans-serif"
	FontMonospace FontFamily = "monospace"
)

type LineSpacing string

const (
	SpacingCompact     LineSpacing = "compact"
	SpacingNormal      LineSpacing = "normal"
	SpacingComfortable LineSpacing = "comfortable"
)

const (
	minFontScale = 0.75
	maxFontScale = 2.0
)

// Preferences is one immutable snapshot of the reader display settings.
type Preferences struct {
	FontScale   float64     `yaml:"fontScale"`
	Theme       ThemeMode   `yaml:"theme"`
	Scroll      ScrollMode  `yaml:"scroll"`
	FontFamily  FontFamily  `yaml:"fontFamily"`
	LineSpacing LineSpacing `yaml:"lineSpacing"`
}

// Defaults returns the out-of-the-box preferences.
func Defaults() Preferences {
	return Preferences{
		FontScale:   1.0,
		Theme:       ThemeSystem,
		Scroll:      ScrollPaged,
		FontFamily:  FontSerif,
		LineSpacing: SpacingNormal,
	}
}

// sanitize clamps the scale and replaces unknown enum values with defaults,
// so a hand-edited file can never produce an unusable state.
func sanitize(p Preferences) Preferences {
	if p.FontScale < minFontScale {
		p.FontScale = minFontScale
	}
	if p.FontScale > maxFontScale {
		p.FontScale = maxFontScale
	}
	switch p.Theme {
	case ThemeSystem, ThemeLight, ThemeDark, ThemeSepia:
	default:
		p.Theme = ThemeSystem
	}
	switch p.Scroll {
	case ScrollPaged, ScrollContinuous:
	default:
		p.Scroll = ScrollPaged
	}
	switch p.FontFamily {
	case FontSerif, FontSansSerif, FontMonospace:
	default:
		p.FontFamily = FontSerif
	}
	switch p.LineSpacing {
	case SpacingCompact, SpacingNormal, SpacingComfortable:
	default:
		p.LineSpacing = SpacingNormal
	}
	return p
}

// Store is the preferences state holder. Updates are serialized; subscribers
// always observe the latest state, in update order.
type Store struct {
	path string

	mu      sync.Mutex
	current Preferences
	subs    map[int]func(Preferences)
	nextSub int
}

// NewStore loads preferences from path, sanitizing whatever it finds. A
// missing file yields defaults.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, current: Defaults(), subs: map[int]func(Preferences){}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	s.current = sanitize(loaded)
	return s, nil
}

// Current returns the latest snapshot.
func (s *Store) Current() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn to run on every update, starting with the current
// state. The returned cancel func removes the subscription.
func (s *Store) Subscribe(fn func(Preferences)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(current)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Update applies mutate to a copy of the current state, sanitizes, persists,
// and notifies subscribers with the result.
func (s *Store) Update(mutate func(*Preferences)) (Preferences, error) {
	s.mu.Lock()
	next := s.current
	mutate(&next)
	next = sanitize(next)
	s.current = next
	fns := make([]func(Preferences), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	if err := s.persist(next); err != nil {
		return next, err
	}
	for _, fn := range fns {
		fn(next)
	}
	return next, nil
}

func (s *Store) persist(p Preferences) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
