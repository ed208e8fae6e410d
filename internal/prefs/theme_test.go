package prefs

import (
	"testing"

	"github.com/rs/zerolog"

	"console/internal/localstore"
)

func TestThemeDefaultsToLight(t *testing.T) {
	ls, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	defer ls.Close()

	s := NewThemeStore(ls, zerolog.Nop())
	if got := s.Current(); got != ThemeLight {
		t.Fatalf("expected light default, got %q", got)
	}
}

func TestThemeToggleAndPersist(t *testing.T) {
	ls, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	defer ls.Close()

	s := NewThemeStore(ls, zerolog.Nop())
	if got := s.Toggle(); got != ThemeDark {
		t.Fatalf("expected dark after toggle, got %q", got)
	}

	restored := NewThemeStore(ls, zerolog.Nop())
	if got := restored.Current(); got != ThemeDark {
		t.Fatalf("expected dark after restore, got %q", got)
	}
}

func TestThemeRejectsUnknownValue(t *testing.T) {
	ls, err := localstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	defer ls.Close()

	s := NewThemeStore(ls, zerolog.Nop())
	s.Set("sepia")
	if got := s.Current(); got != ThemeLight {
		t.Fatalf("unknown theme should be ignored, got %q", got)
	}
}
