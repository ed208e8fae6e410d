package handlers

import (
	"encoding/json"
	"net/http"

	"console/internal/prefs"
)

type themePayload struct {
	Theme string `json:"theme"`
}

func (a *App) ThemeGet(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, themePayload{Theme: string(a.Prefs.Current())})
}

func (a *App) ThemePut(w http.ResponseWriter, r *http.Request) {
	var req themePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	switch prefs.Theme(req.Theme) {
	case prefs.ThemeLight, prefs.ThemeDark:
		a.Prefs.Set(prefs.Theme(req.Theme))
	default:
		a.error(w, http.StatusBadRequest, "validation", "theme must be light or dark")
		return
	}
	a.json(w, http.StatusOK, themePayload{Theme: string(a.Prefs.Current())})
}

func (a *App) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, themePayload{Theme: string(a.Prefs.Toggle())})
}
