package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsWhenFileMissing(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if got := s.Current(); got != Defaults() {
		t.Fatalf("Current = %+v, want defaults", got)
	}
}

func TestUpdateClampsFontScale(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	got, err := s.Update(func(p *Preferences) { p.FontScale = 9.0 })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FontScale != 2.0 {
		t.Fatalf("FontScale = %v, want clamped 2.0", got.FontScale)
	}
	got, err = s.Update(func(p *Preferences) { p.FontScale = 0.1 })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FontScale != 0.75 {
		t.Fatalf("FontScale = %v, want clamped 0.75", got.FontScale)
	}
}

func TestUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := s.Update(func(p *Preferences) {
		p.Theme = ThemeDark
		p.Scroll = ScrollContinuous
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.Current()
	if got.Theme != ThemeDark || got.Scroll != ScrollContinuous {
		t.Fatalf("reloaded = %+v", got)
	}
}

func TestLoadSanitizesUnknownValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	raw := "fontScale: 5.5\ntheme: neon\nscroll: diagonal\nfontFamily: wingdings\nlineSpacing: quadruple\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	got := s.Current()
	want := Defaults()
	want.FontScale = 2.0
	if got != want {
		t.Fatalf("sanitized = %+v, want %+v", got, want)
	}
}

func TestSubscribeReceivesCurrentAndUpdates(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	var seen []Preferences
	cancel := s.Subscribe(func(p Preferences) { seen = append(seen, p) })
	if len(seen) != 1 || seen[0] != Defaults() {
		t.Fatalf("subscriber did not receive the current state first: %+v", seen)
	}

	if _, err := s.Update(func(p *Preferences) { p.Theme = ThemeSepia }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(seen) != 2 || seen[1].Theme != ThemeSepia {
		t.Fatalf("subscriber missed the update: %+v", seen)
	}

	cancel()
	if _, err := s.Update(func(p *Preferences) { p.Theme = ThemeLight }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("cancelled subscriber still notified: %+v", seen)
	}
}
