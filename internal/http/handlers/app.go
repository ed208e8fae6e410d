package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"console/internal/domain"
	"console/internal/gateway"
	"console/internal/prefs"
	"console/internal/reconcile"
	"console/internal/session"

	"github.com/rs/zerolog"
)

// App carries the console's shared dependencies into the handlers.
type App struct {
	Engine   *reconcile.Engine
	Gateway  *gateway.Client
	Sessions *session.Store
	Prefs    *prefs.ThemeStore
	Logger   zerolog.Logger

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"code": errCode, "message": message})
}

// failure maps gateway and engine errors onto console responses.
func (a *App) failure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "session is no longer valid")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "not allowed")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, reconcile.ErrSuperseded):
		a.error(w, http.StatusConflict, "superseded", "a newer refresh replaced this one")
	case errors.Is(err, domain.ErrUnavailable):
		a.error(w, http.StatusBadGateway, "bad_gateway", "backend unavailable")
	default:
		a.Logger.Error().Err(err).Msg("unhandled backend error")
		a.error(w, http.StatusInternalServerError, "internal", "unexpected error")
	}
}

// requireSession rejects the request when no one is signed in.
func (a *App) requireSession(w http.ResponseWriter) bool {
	if !a.Sessions.Authenticated() {
		a.error(w, http.StatusUnauthorized, "unauthorized", "sign in first")
		return false
	}
	return true
}

// requireAdmin rejects the request unless an admin is signed in.
func (a *App) requireAdmin(w http.ResponseWriter) bool {
	if !a.requireSession(w) {
		return false
	}
	if !a.Sessions.Admin() {
		a.error(w, http.StatusForbidden, "forbidden", "admin role required")
		return false
	}
	return true
}
