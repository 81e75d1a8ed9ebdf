package app

import (
	"github.com/surveyline/intake/config"
	"github.com/surveyline/intake/metrics"
	"github.com/surveyline/intake/storage"
)

type App struct {
	storage.Store
	config.Config
	*metrics.Metrics
}
