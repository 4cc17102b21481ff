package main

import (
	"net/http"
	"os"
	"time"

	_ "github.com/pbrose82/google-calendar-middleware/docs"
	"github.com/pbrose82/google-calendar-middleware/internal/config"
	"github.com/pbrose82/google-calendar-middleware/internal/platform/logger"
	"github.com/pbrose82/google-calendar-middleware/internal/router"
)

// @title Google Calendar ↔ Alchemy Middleware
// @version 1.0
// @description Puente de sincronización entre reservas de Alchemy y eventos de Google Calendar.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Credenciales incompletas no frenan el arranque: los requests que las
	// necesiten fallan con error de credenciales.
	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		log.Warn("missing credentials", map[string]any{"vars": missing})
	}

	r, err := router.NewRouter(router.Options{Config: cfg, Logger: log})
	if err != nil {
		log.Error("router setup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr, "alchemy_env": cfg.AlchemyEnv})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
