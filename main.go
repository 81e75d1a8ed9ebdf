package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/surveyline/intake/app"
	"github.com/surveyline/intake/config"
	"github.com/surveyline/intake/log"
	"github.com/surveyline/intake/metrics"
	"github.com/surveyline/intake/routes"
	"github.com/surveyline/intake/storage"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(cfg.LogPath)
	if err != nil {
		log.Fatal("main.storage.open:", err)
	}
	defer store.Close()

	app := app.App{
		Store:   store,
		Config:  cfg,
		Metrics: metrics.New(prometheus.DefaultRegisterer),
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
