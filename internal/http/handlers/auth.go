package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"console/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Role          string       `json:"role"`
}

func (a *App) sessionPayload() sessionResponse {
	cur := a.Sessions.Current()
	resp := sessionResponse{
		Authenticated: cur.Authenticated(),
		Role:          string(cur.Role()),
	}
	if cur.Authenticated() {
		u := cur.User
		resp.User = &u
	}
	return resp
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password required")
		return
	}

	token, user, err := a.Gateway.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotVerified):
			a.error(w, http.StatusForbidden, "not_verified", "account email is not verified")
		case errors.Is(err, domain.ErrUnauthorized):
			a.error(w, http.StatusUnauthorized, "invalid_credentials", "email or password is wrong")
		default:
			a.failure(w, err)
		}
		return
	}

	a.Sessions.Login(token, user)
	a.json(w, http.StatusOK, a.sessionPayload())
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	a.Sessions.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) Session(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.sessionPayload())
}

// RefreshSession revalidates the stored token against the backend and
// refreshes the cached profile. A 401 tears the session down through
// the gateway's token source before this handler sees the error.
func (a *App) RefreshSession(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	user, err := a.Gateway.RefreshSession(r.Context())
	if err != nil {
		a.failure(w, err)
		return
	}
	a.Sessions.UpdateUser(user)
	a.json(w, http.StatusOK, a.sessionPayload())
}
