package api

import (
	"github.com/senya/senya/internal/classifier"
	"github.com/senya/senya/internal/db"
	"github.com/senya/senya/internal/services"
	"github.com/senya/senya/internal/worker"
)

// Server wires the HTTP surface to the service layer.
type Server struct {
	DB               *db.DB
	AuthService      *services.AuthService
	CatalogService   *services.CatalogService
	ProgressService  *services.ProgressService
	EconomyService   *services.EconomyService
	ShopService      *services.ShopService
	PracticeService  *services.PracticeService
	AnalyticsService *services.AnalyticsService
	Classifier       classifier.Classifier
	Pool             *worker.Pool
}
