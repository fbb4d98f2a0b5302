package router

import (
	"context"
	"net/http"

	_ "pillpal/docs"

	mem "pillpal/internal/adapters/storage/memory"
	"pillpal/internal/domain/medinfo"
	"pillpal/internal/domain/tracker"
	"pillpal/internal/middleware"
	"pillpal/internal/observability/metrics"
	"pillpal/internal/platform/logger"
	"pillpal/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, usa un tracker in-memory (dev/tests).
	Tracker *tracker.Service

	// Opcional: sin servicio de info, /info responde "not configured".
	MedInfo *medinfo.Service

	// Opcional: sin métricas no se expone /metrics.
	Metrics *metrics.Metrics

	Logger logger.Logger
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

	var obs middleware.Observer
	if opts.Metrics != nil {
		obs = opts.Metrics
	}
	r.Use(middleware.RequestLog(log, obs))
	r.Use(middleware.Confirm)

	r.Get("/health", healthHandler)

	trackerSvc := opts.Tracker
	if trackerSvc == nil {
		trackerSvc = tracker.NewService(store.NewRepository(mem.NewKV(), log))
		_ = trackerSvc.Load(context.Background())
	}

	infoSvc := opts.MedInfo
	if infoSvc == nil {
		infoSvc = medinfo.NewService(nil, log)
	}

	// Rutas por módulo
	tracker.RegisterRoutes(r, trackerSvc)
	medinfo.RegisterRoutes(r, infoSvc, trackerSvc)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
