package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"console/internal/gateway"
	"console/internal/http/handlers"
	"console/internal/prefs"
	"console/internal/reconcile"
	"console/internal/session"

	"github.com/rs/zerolog"
)

type nopStorage struct{}

func (nopStorage) Get(string, any) (bool, error) { return false, nil }
func (nopStorage) Put(string, any) error         { return nil }
func (nopStorage) Delete(string) error           { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	store := session.NewStore(nopStorage{}, logger)
	client, err := gateway.NewClient(gateway.Options{BaseURL: "http://backend.invalid", Logger: logger, Tokens: store})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	app := &handlers.App{
		Engine:   reconcile.New(client, store, logger),
		Gateway:  client,
		Sessions: store,
		Prefs:    prefs.NewThemeStore(nopStorage{}, logger),
		Logger:   logger,
	}
	return NewRouter(app, logger, []string{"http://localhost:5173"})
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id header missing")
	}
}

func TestRouterViewsRequireSession(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/views/campaigns", "/views/dashboard", "/views/donations", "/views/receipts"} {
		req := httptest.NewRequest("GET", path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s status = %d, want 401", path, rr.Code)
		}
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/views/campaigns", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatal("allowed origin header missing")
	}
}
