package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"console/internal/domain"
	"console/internal/gateway"
	"console/internal/prefs"
	"console/internal/reconcile"
	"console/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// memStorage is an in-memory stand-in for the sqlite state store.
type memStorage struct {
	data map[string]json.RawMessage
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]json.RawMessage{}}
}

func (m *memStorage) Get(namespace string, v any) (bool, error) {
	raw, ok := m.data[namespace]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (m *memStorage) Put(namespace string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[namespace] = raw
	return nil
}

func (m *memStorage) Delete(namespace string) error {
	delete(m.data, namespace)
	return nil
}

var testTime = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

// newTestApp wires a full App against a fake backend handler.
func newTestApp(t *testing.T, backend http.Handler) *App {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	store := session.NewStore(newMemStorage(), logger)
	client, err := gateway.NewClient(gateway.Options{
		BaseURL: srv.URL,
		Logger:  logger,
		Tokens:  store,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	return &App{
		Engine:   reconcile.New(client, store, logger),
		Gateway:  client,
		Sessions: store,
		Prefs:    prefs.NewThemeStore(newMemStorage(), logger),
		Logger:   logger,
		Now:      func() time.Time { return testTime },
	}
}

func signIn(app *App, role string) {
	app.Sessions.Login("token-1", domain.User{
		ID:       "u-1",
		Name:     "Console User",
		Email:    "user@example.com",
		Role:     role,
		Verified: true,
	})
}

// doJSON runs a request through a handler and returns the recorder.
func doJSON(handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// doJSONParam is doJSON with a chi route parameter attached.
func doJSONParam(handler http.HandlerFunc, method, target, key, value string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
