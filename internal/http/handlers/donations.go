package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"console/internal/domain"
	"console/internal/gateway"
	"console/internal/views"
	"console/pkg/zip"

	"github.com/go-chi/chi/v5"
)

type donationForm struct {
	CampaignID string  `json:"campaignId"`
	Category   string  `json:"campaign"`
	Amount     float64 `json:"amount"`
	Type       string  `json:"donationType"`
	Method     string  `json:"paymentMethod"`
}

func (f donationForm) validate() string {
	if f.CampaignID == "" {
		return "campaignId is required"
	}
	if f.Amount <= 0 {
		return "amount must be positive"
	}
	if !domain.ValidType(domain.DonationType(f.Type)) {
		return "unknown donation type"
	}
	if !domain.ValidMethod(domain.PaymentMethod(f.Method)) {
		return "unknown payment method"
	}
	return ""
}

func (a *App) DonationCreate(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	var form donationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if msg := form.validate(); msg != "" {
		a.error(w, http.StatusBadRequest, "validation", msg)
		return
	}
	err := a.Gateway.CreateDonation(r.Context(), gateway.DonationDraft{
		CampaignID: form.CampaignID,
		Amount:     form.Amount,
		Type:       form.Type,
		Method:     form.Method,
		Category:   form.Category,
	})
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"status": "created"})
}

// fetchDonations loads the donation collection for the current role:
// admins read the full admin listing with backend-side filters, other
// roles read only their own records.
func (a *App) fetchDonations(ctx context.Context, c views.Criteria) ([]domain.Donation, error) {
	if a.Sessions.Admin() {
		return a.Gateway.Donations(ctx, gateway.ScopeAll, gateway.DonationQuery{
			Status: c.Status,
			Type:   c.Type,
			Method: c.Method,
		})
	}
	return a.Gateway.Donations(ctx, gateway.ScopeMine, gateway.DonationQuery{})
}

func criteriaFromQuery(r *http.Request) views.Criteria {
	q := r.URL.Query()
	return views.Criteria{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Method: q.Get("method"),
	}
}

func (a *App) DonationTable(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	criteria := criteriaFromQuery(r)
	donations, err := a.fetchDonations(r.Context(), criteria)
	if err != nil {
		a.failure(w, err)
		return
	}
	role := a.Sessions.Role()
	filtered := views.Filter(donations, criteria, role)
	a.json(w, http.StatusOK, map[string]any{
		"table":  views.Table(filtered, role),
		"filter": views.FormFor(role),
	})
}

func (a *App) Receipts(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	donations, err := a.fetchDonations(r.Context(), views.Criteria{})
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"table": views.Receipts(donations, a.Sessions.Role()),
	})
}

// ReceiptsExport bundles every verified donation in scope into a zip
// of plain-text receipts.
func (a *App) ReceiptsExport(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	donations, err := a.fetchDonations(r.Context(), views.Criteria{})
	if err != nil {
		a.failure(w, err)
		return
	}
	role := a.Sessions.Role()
	var files []zip.File
	for _, d := range donations {
		if d.Status != domain.StatusVerified {
			continue
		}
		files = append(files, zip.File{
			Name: views.ReceiptFilename(d),
			Data: views.ReceiptText(d, role),
		})
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="receipts.zip"`)
	_, _ = w.Write(zip.Archive(files))
}

func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !a.requireSession(w) {
		return
	}
	donations, err := a.fetchDonations(r.Context(), views.Criteria{})
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, views.Dashboard(donations, a.Sessions.Role()))
}

type statusForm struct {
	Status string `json:"status"`
}

// DonationStatusUpdate verifies or rejects a donation. The backend
// returns no body on success, so the response echoes the requested
// transition for the client to apply in place.
func (a *App) DonationStatusUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w) {
		return
	}
	var form statusForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	status := domain.DonationStatus(form.Status)
	if !domain.ValidStatus(status) {
		a.error(w, http.StatusBadRequest, "validation", "unknown status")
		return
	}
	id := chi.URLParam(r, "id")
	if err := a.Gateway.SetDonationStatus(r.Context(), id, status); err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}
