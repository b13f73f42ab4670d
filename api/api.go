package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"hermannm.dev/csvexplorer/config"
)

type CSVExplorerAPI struct {
	sessions *sessionRegistry
	router   chi.Router
	config   Config
}

type Config struct {
	Port                  string
	MaxUploadBytes        int64
	DefaultRowsPerPage    int
	DelimiterLinesToCheck int
	SessionIdleTimeout    time.Duration
}

func ConfigFromEnv(cfg config.Config) Config {
	return Config{
		Port:                  cfg.API.Port,
		MaxUploadBytes:        cfg.API.MaxUploadBytes,
		DefaultRowsPerPage:    cfg.CSV.DefaultRowsPerPage,
		DelimiterLinesToCheck: cfg.CSV.DelimiterLinesToCheck,
		SessionIdleTimeout:    cfg.API.SessionIdleTimeout,
	}
}

func NewCSVExplorerAPI(config Config) *CSVExplorerAPI {
	api := &CSVExplorerAPI{
		sessions: newSessionRegistry(config.SessionIdleTimeout),
		router:   chi.NewRouter(),
		config:   config,
	}

	api.router.Use(middleware.Recoverer)

	api.router.Post("/sessions", api.CreateSession)
	api.router.Route("/sessions/{sessionID}", func(router chi.Router) {
		router.Delete("/", api.DeleteSession)
		router.Get("/schema", api.withSession(api.GetSchema))
		router.Put("/columns", api.withSession(api.SelectColumns))

		router.Get("/filters", api.withSession(api.GetFilterControls))
		router.Delete("/filters", api.withSession(api.ClearFilters))
		router.Put("/filters/{column}", api.withSession(api.SetFilter))
		router.Delete("/filters/{column}", api.withSession(api.ClearFilter))

		router.Put("/rows-per-page", api.withSession(api.SetRowsPerPage))
		router.Post("/page", api.withSession(api.ChangePage))
		router.Get("/view", api.withSession(api.GetView))

		router.Post("/charts", api.withSession(api.GenerateChart))
		router.Get("/chart", api.withSession(api.GetChart))

		router.Get("/export", api.withSession(api.ExportCSV))
	})

	return api
}

func (api *CSVExplorerAPI) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	api.router.ServeHTTP(res, req)
}

func (api *CSVExplorerAPI) ListenAndServe() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if api.config.SessionIdleTimeout > 0 {
		go api.sessions.removeIdleEvery(ctx, idleCheckInterval(api.config.SessionIdleTimeout))
	}

	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.router)
}
