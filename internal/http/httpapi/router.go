package httpapi

import (
	stdhttp "net/http"

	"console/internal/http/handlers"
	consolemw "console/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(app *handlers.App, logger zerolog.Logger, allowedOrigins []string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		consolemw.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		consolemw.Logger(logger),
		consolemw.CORS(allowedOrigins),
	)

	r.Get("/healthz", app.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", app.Login)
		r.Post("/logout", app.Logout)
		r.Get("/session", app.Session)
		r.Post("/refresh", app.RefreshSession)
	})

	r.Route("/views", func(r chi.Router) {
		r.Get("/campaigns", app.CampaignCards)
		r.Get("/campaigns/{id}", app.CampaignPage)
		r.Get("/dashboard", app.Dashboard)
		r.Get("/donations", app.DonationTable)
		r.Get("/receipts", app.Receipts)
		r.Get("/receipts/export", app.ReceiptsExport)
	})

	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", app.CampaignCreate)
		r.Put("/{id}", app.CampaignUpdate)
		r.Delete("/{id}", app.CampaignDelete)
	})

	r.Route("/donations", func(r chi.Router) {
		r.Post("/", app.DonationCreate)
		r.Put("/{id}/status", app.DonationStatusUpdate)
	})

	r.Route("/prefs", func(r chi.Router) {
		r.Get("/theme", app.ThemeGet)
		r.Put("/theme", app.ThemePut)
		r.Post("/theme/toggle", app.ThemeToggle)
	})

	return r
}
