package main

import (
	"context"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/config"
	"github.com/minimart-io/minimart/internal/stock/application"
	httptransport "github.com/minimart-io/minimart/internal/stock/infrastructure/http"
	"github.com/minimart-io/minimart/internal/stock/infrastructure/memory"
	"github.com/minimart-io/minimart/pkg/httpserver"
	"github.com/minimart-io/minimart/pkg/ids"
	"github.com/minimart-io/minimart/pkg/logging"
)

func main() {
	config.Load()

	serviceName := config.Getenv("SERVICE_NAME", "stock")
	env := config.Getenv("ENV", "dev")
	logger := logging.MustNew(serviceName, env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	service := application.NewService(memory.NewProductRepository(), ids.NewUUIDGenerator())

	seeded, err := service.Seed(context.Background(),
		config.Getenv("SEED_PRODUCT_NAME", "Sample Product"),
		int64(config.GetenvInt("SEED_PRODUCT_PRICE", 1999)),
		config.GetenvInt("SEED_PRODUCT_STOCK", 100),
	)
	if err != nil {
		logger.Fatal("seed_product_failed", zap.Error(err))
	}
	logger.Info("seed_product_created",
		zap.String("product_id", seeded.ID),
		zap.Int64("price", seeded.Price),
		zap.Int("stock", seeded.Stock),
	)

	router := chi.NewRouter()
	router.Use(chimw.RequestID, chimw.Recoverer)
	router.Use(httpserver.Observability(logger, httpserver.NewHTTPMetrics(prometheus.DefaultRegisterer)))
	router.Handle("/metrics", promhttp.Handler())
	httptransport.NewHandler(service).RegisterRoutes(router)

	addr := ":" + config.Getenv("PORT", "3002")
	if err := httpserver.Run(context.Background(), addr, router, logger); err != nil {
		logger.Fatal("http_server_error", zap.Error(err))
	}
}
