package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
)

func donationListing() []map[string]any {
	return []map[string]any{
		{
			"_id":           "d-1",
			"campaignId":    map[string]any{"_id": "c-1", "title": "Water Wells"},
			"amount":        500,
			"donationType":  "Zakat",
			"paymentMethod": "Online",
			"status":        "Pending",
			"createdAt":     "2026-08-10T08:00:00Z",
			"user":          map[string]any{"name": "Bilal", "email": "bilal@example.com"},
		},
		{
			"_id":           "d-2",
			"campaign":      "Education",
			"amount":        120,
			"donationType":  "Sadqah",
			"paymentMethod": "Cash",
			"status":        "Verified",
			"createdAt":     "2026-08-12T08:00:00Z",
			"donorName":     "Hafsa",
		},
	}
}

func TestDonationCreateValidation(t *testing.T) {
	app := newTestApp(t, http.NewServeMux())
	signIn(app, "user")

	cases := []struct {
		name string
		form map[string]any
	}{
		{"missing campaign", map[string]any{"amount": 10, "donationType": "Zakat", "paymentMethod": "Cash"}},
		{"zero amount", map[string]any{"campaignId": "c-1", "amount": 0, "donationType": "Zakat", "paymentMethod": "Cash"}},
		{"bad type", map[string]any{"campaignId": "c-1", "amount": 10, "donationType": "Tithe", "paymentMethod": "Cash"}},
		{"bad method", map[string]any{"campaignId": "c-1", "amount": 10, "donationType": "Zakat", "paymentMethod": "Wire"}},
	}
	for _, tc := range cases {
		rr := doJSON(app.DonationCreate, "POST", "/donations", tc.form)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, rr.Code)
		}
	}
}

func TestDonationCreateForwardsDraft(t *testing.T) {
	mux := http.NewServeMux()
	var got map[string]any
	mux.HandleFunc("POST /donation/createDonation", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})
	app := newTestApp(t, mux)
	signIn(app, "user")

	rr := doJSON(app.DonationCreate, "POST", "/donations", map[string]any{
		"campaignId":    "c-1",
		"campaign":      "Water Wells",
		"amount":        250,
		"donationType":  "Zakat",
		"paymentMethod": "Online",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got["campaignId"] != "c-1" || got["donationType"] != "Zakat" || got["amount"] != float64(250) {
		t.Fatalf("unexpected forwarded draft: %#v", got)
	}
}

func TestDonationTableUserScopeHidesDonorColumns(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /donation/getMyDonation", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(donationListing())
	})
	mux.HandleFunc("GET /donation/admin", func(w http.ResponseWriter, r *http.Request) {
		t.Error("non-admin table must not hit the admin listing")
	})
	app := newTestApp(t, mux)
	signIn(app, "user")

	rr := doJSON(app.DonationTable, "GET", "/views/donations", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Table struct {
			Columns []string `json:"columns"`
			Rows    []struct {
				Donor string `json:"donor"`
			} `json:"rows"`
		} `json:"table"`
		Filter struct {
			Search bool `json:"search"`
			Status bool `json:"status"`
		} `json:"filter"`
	}
	decodeBody(t, rr, &resp)
	for _, col := range resp.Table.Columns {
		if col == "Donor Name" || col == "Email" {
			t.Fatalf("donor column leaked to non-admin view: %v", resp.Table.Columns)
		}
	}
	if resp.Filter.Search || !resp.Filter.Status {
		t.Fatalf("unexpected filter form: %+v", resp.Filter)
	}
	for _, row := range resp.Table.Rows {
		if row.Donor != "" {
			t.Fatal("donor field leaked to non-admin row")
		}
	}
}

func TestDonationTableAdminPassesFiltersThrough(t *testing.T) {
	mux := http.NewServeMux()
	var query url.Values
	mux.HandleFunc("GET /donation/admin", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(donationListing())
	})
	app := newTestApp(t, mux)
	signIn(app, "admin")

	rr := doJSON(app.DonationTable, "GET", "/views/donations?status=Pending&type=Zakat&method=Online&search=bilal", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if query.Get("status") != "Pending" || query.Get("donationType") != "Zakat" || query.Get("paymentMethod") != "Online" {
		t.Fatalf("filters not forwarded: %v", query)
	}

	var resp struct {
		Table struct {
			Rows []struct {
				ID    string `json:"id"`
				Donor string `json:"donor"`
			} `json:"rows"`
		} `json:"table"`
	}
	decodeBody(t, rr, &resp)
	if len(resp.Table.Rows) != 1 || resp.Table.Rows[0].ID != "d-1" {
		t.Fatalf("search filter not applied: %+v", resp.Table.Rows)
	}
	if resp.Table.Rows[0].Donor != "Bilal" {
		t.Fatalf("admin row missing donor: %+v", resp.Table.Rows[0])
	}
}

func TestReceiptsOnlyVerified(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /donation/getMyDonation", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(donationListing())
	})
	app := newTestApp(t, mux)
	signIn(app, "user")

	rr := doJSON(app.Receipts, "GET", "/views/receipts", nil)
	var resp struct {
		Table struct {
			Rows []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"rows"`
		} `json:"table"`
	}
	decodeBody(t, rr, &resp)
	if len(resp.Table.Rows) != 1 || resp.Table.Rows[0].ID != "d-2" {
		t.Fatalf("receipts must list only verified donations: %+v", resp.Table.Rows)
	}
}

func TestReceiptsExportBundlesVerifiedOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /donation/getMyDonation", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(donationListing())
	})
	app := newTestApp(t, mux)
	signIn(app, "user")

	rr := doJSON(app.ReceiptsExport, "GET", "/views/receipts/export", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type = %q", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "receipt-d-2.txt" {
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		t.Fatalf("archive entries = %v, want only the verified receipt", names)
	}
}

func TestDashboardTotals(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /donation/getMyDonation", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(donationListing())
	})
	app := newTestApp(t, mux)
	signIn(app, "user")

	rr := doJSON(app.Dashboard, "GET", "/views/dashboard", nil)
	var resp struct {
		Total    string `json:"total"`
		Verified string `json:"verified"`
		Pending  string `json:"pending"`
		Recent   []struct {
			ID string `json:"id"`
		} `json:"recent"`
	}
	decodeBody(t, rr, &resp)
	if resp.Total != "620" || resp.Verified != "120" || resp.Pending != "500" {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	if len(resp.Recent) != 2 || resp.Recent[0].ID != "d-2" {
		t.Fatalf("recent must sort newest first: %+v", resp.Recent)
	}
}

func TestDonationStatusUpdateRequiresAdmin(t *testing.T) {
	app := newTestApp(t, http.NewServeMux())
	signIn(app, "user")

	rr := doJSONParam(app.DonationStatusUpdate, "PUT", "/donations/d-1/status", "id", "d-1",
		map[string]string{"status": "Verified"})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rr.Code)
	}
}

func TestDonationStatusUpdateEchoesTransition(t *testing.T) {
	mux := http.NewServeMux()
	var got map[string]any
	mux.HandleFunc("PUT /donation/update/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})
	app := newTestApp(t, mux)
	signIn(app, "admin")

	rr := doJSONParam(app.DonationStatusUpdate, "PUT", "/donations/d-1/status", "id", "d-1",
		map[string]string{"status": "Verified"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if got["status"] != "Verified" {
		t.Fatalf("backend payload = %#v", got)
	}

	var resp map[string]string
	decodeBody(t, rr, &resp)
	if resp["id"] != "d-1" || resp["status"] != "Verified" {
		t.Fatalf("echo mismatch: %v", resp)
	}
}

func TestDonationStatusUpdateRejectsUnknownStatus(t *testing.T) {
	app := newTestApp(t, http.NewServeMux())
	signIn(app, "admin")

	rr := doJSONParam(app.DonationStatusUpdate, "PUT", "/donations/d-1/status", "id", "d-1",
		map[string]string{"status": "Approved"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
