// Package prefs stores small user preferences in durable client
// storage. Currently that is just the theme.
package prefs

import (
	"sync"

	"github.com/rs/zerolog"
)

// ThemeStorageKey is the fixed namespace the theme persists under.
const ThemeStorageKey = "theme-storage"

// Theme is a display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Storage matches localstore.Store.
type Storage interface {
	Get(namespace string, v any) (bool, error)
	Put(namespace string, v any) error
}

type themeBlob struct {
	Theme Theme `json:"theme"`
}

// ThemeStore holds the persisted theme preference. Absence of the key
// means light.
type ThemeStore struct {
	mu      sync.RWMutex
	theme   Theme
	storage Storage
	logger  zerolog.Logger
}

// NewThemeStore restores the persisted preference, defaulting to
// light.
func NewThemeStore(storage Storage, logger zerolog.Logger) *ThemeStore {
	s := &ThemeStore{theme: ThemeLight, storage: storage, logger: logger}
	var blob themeBlob
	ok, err := storage.Get(ThemeStorageKey, &blob)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to restore theme, using light")
		return s
	}
	if ok && (blob.Theme == ThemeLight || blob.Theme == ThemeDark) {
		s.theme = blob.Theme
	}
	return s
}

// Current returns the active theme.
func (s *ThemeStore) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Set switches to the given theme and persists it. Unknown values are
// ignored.
func (s *ThemeStore) Set(theme Theme) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	if err := s.storage.Put(ThemeStorageKey, themeBlob{Theme: theme}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist theme")
	}
}

// Toggle flips between light and dark.
func (s *ThemeStore) Toggle() Theme {
	next := ThemeLight
	if s.Current() == ThemeLight {
		next = ThemeDark
	}
	s.Set(next)
	return next
}
