package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"console/internal/gateway"
	"console/internal/http/handlers"
	httpapi "console/internal/http/httpapi"
	"console/internal/infra"
	"console/internal/localstore"
	"console/internal/prefs"
	"console/internal/reconcile"
	"console/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Durable client state: the persisted session and preferences.
	store, err := localstore.Open(cfg.StatePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open state store")
	}
	defer store.Close()

	sessions := session.NewStore(store, logger)
	themes := prefs.NewThemeStore(store, logger)

	client, err := gateway.NewClient(gateway.Options{
		BaseURL:        cfg.BackendBaseURL,
		Logger:         logger,
		RequestTimeout: cfg.BackendTimeout,
		Tokens:         sessions,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build backend gateway")
	}

	engine := reconcile.New(client, sessions, logger)

	app := &handlers.App{
		Engine:   engine,
		Gateway:  client,
		Sessions: sessions,
		Prefs:    themes,
		Logger:   logger,
	}

	router := httpapi.NewRouter(app, logger, cfg.AllowedOrigins)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("console listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("console stopped")
}
