package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pbrose82/google-calendar-middleware/internal/adapters/calendar/google"
	"github.com/pbrose82/google-calendar-middleware/internal/adapters/registry/alchemy"
	"github.com/pbrose82/google-calendar-middleware/internal/config"
	"github.com/pbrose82/google-calendar-middleware/internal/domain/sync"
	"github.com/pbrose82/google-calendar-middleware/internal/middleware"
	"github.com/pbrose82/google-calendar-middleware/internal/platform/logger"
)

type Options struct {
	Config *config.Config
	Logger logger.Logger

	// Opcional: clientes inyectados (tests). Si vienen nil, se construyen
	// desde Config contra los upstreams reales.
	Calendar sync.CalendarAPI
	Registry sync.RegistryAPI
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		// Config vacía solo aparece en tests; los defaults alcanzan.
		cfg = &config.Config{DefaultTimeZone: config.DefaultTimeZone}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(opts.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	cal := opts.Calendar
	if cal == nil {
		googleCfg := google.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RefreshToken: cfg.GoogleRefreshToken,
			CalendarID:   cfg.GoogleCalendarID,
			Timeout:      cfg.RequestTimeout(),
		}
		client, err := google.NewClient(googleCfg, google.NewTokenManager(googleCfg))
		if err != nil {
			return nil, err
		}
		cal = client
	}

	reg := opts.Registry
	if reg == nil {
		alchemyCfg := alchemy.Config{
			BaseURL:      cfg.ResolvedAlchemyBaseURL(),
			RefreshToken: cfg.AlchemyRefreshToken,
			Tenant:       cfg.AlchemyTenant,
			Timeout:      cfg.RequestTimeout(),
		}
		tokens, err := alchemy.NewTokenManager(alchemyCfg)
		if err != nil {
			return nil, err
		}
		client, err := alchemy.NewClient(alchemyCfg, tokens)
		if err != nil {
			return nil, err
		}
		reg = client
	}

	svc := sync.NewService(cal, reg, cfg.GoogleCalendarID, cfg.DefaultTimeZone)
	sync.RegisterRoutes(r, svc)

	return r, nil
}
