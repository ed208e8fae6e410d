package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"console/internal/gateway"
	"console/internal/reconcile"
	"console/internal/views"

	"github.com/go-chi/chi/v5"
)

type donationOutcome struct {
	State   string `json:"state"`
	Warning string `json:"warning,omitempty"`
}

func outcomePayload(o reconcile.Outcome) donationOutcome {
	out := donationOutcome{State: string(o.State)}
	if o.Err != nil {
		out.Warning = "donation data is unavailable, showing stored totals"
	}
	return out
}

func (a *App) CampaignCards(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	overview, err := a.Engine.Overview(r.Context())
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaigns": views.Cards(overview.Campaigns, a.Sessions.Role(), a.now()),
		"donations": outcomePayload(overview.Donations),
	})
}

func (a *App) CampaignPage(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	detail, err := a.Engine.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"campaign":  views.Page(detail.Campaign, a.Sessions.Role(), a.now()),
		"donations": outcomePayload(detail.Donations),
	})
}

type campaignForm struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GoalAmount  float64 `json:"goalAmount"`
	Deadline    string  `json:"deadline"`
}

// validate collects per-field errors; an empty map means the form is
// fine. The deadline comparison is date granular: today is still
// acceptable.
func (f campaignForm) validate(now time.Time) map[string]string {
	fields := map[string]string{}
	if f.Title == "" {
		fields["title"] = "title is required"
	}
	if f.Description == "" {
		fields["description"] = "description is required"
	}
	if f.GoalAmount <= 0 {
		fields["goalAmount"] = "goal amount must be positive"
	}
	if deadline, err := time.Parse("2006-01-02", f.Deadline); err != nil {
		fields["deadline"] = "deadline must be a YYYY-MM-DD date"
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if deadline.Before(today) {
			fields["deadline"] = "deadline cannot be in the past"
		}
	}
	return fields
}

func (f campaignForm) draft() gateway.CampaignDraft {
	return gateway.CampaignDraft{
		Title:       f.Title,
		Description: f.Description,
		GoalAmount:  f.GoalAmount,
		Deadline:    f.Deadline,
	}
}

func (a *App) CampaignCreate(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w) {
		return
	}
	var form campaignForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if fields := form.validate(a.now()); len(fields) > 0 {
		a.json(w, http.StatusBadRequest, map[string]any{"code": "validation", "fields": fields})
		return
	}
	if err := a.Gateway.CreateCampaign(r.Context(), form.draft()); err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (a *App) CampaignUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w) {
		return
	}
	var form campaignForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if fields := form.validate(a.now()); len(fields) > 0 {
		a.json(w, http.StatusBadRequest, map[string]any{"code": "validation", "fields": fields})
		return
	}
	if err := a.Gateway.UpdateCampaign(r.Context(), chi.URLParam(r, "id"), form.draft()); err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *App) CampaignDelete(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w) {
		return
	}
	if err := a.Gateway.DeleteCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
