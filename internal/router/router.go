package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "medication-tracker/docs"
	mem "medication-tracker/internal/adapters/storage/memory"
	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/middleware"
	"medication-tracker/internal/platform/logger"
)

type Options struct {
	// Opcionales: si no vienen, repos in-memory.
	Medications medications.Repository
	Doses       doses.Repository

	Logger logger.Logger

	// Zona que define el día calendario (default time.Local).
	Location *time.Location

	// Reloj del motor de tomas (tests).
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	medRepo := opts.Medications
	if medRepo == nil {
		medRepo = mem.NewMedicationRepo()
	}
	doseRepo := opts.Doses
	if doseRepo == nil {
		doseRepo = mem.NewDoseRepo()
	}

	// Services por módulo
	medsSvc := medications.NewService(medRepo)
	dosesSvc := doses.NewService(doseRepo, medsSvc, log, opts.Location)
	if opts.Now != nil {
		dosesSvc.SetClock(opts.Now)
	}

	// Rutas por módulo
	medications.RegisterRoutes(r, medsSvc)
	doses.RegisterRoutes(r, dosesSvc)

	return r
}
