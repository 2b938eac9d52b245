package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/minimart-io/minimart/internal/config"
	"github.com/minimart-io/minimart/internal/order/application"
	httptransport "github.com/minimart-io/minimart/internal/order/infrastructure/http"
	"github.com/minimart-io/minimart/internal/order/infrastructure/httpclient"
	"github.com/minimart-io/minimart/internal/order/infrastructure/memory"
	"github.com/minimart-io/minimart/pkg/httpserver"
	"github.com/minimart-io/minimart/pkg/ids"
	"github.com/minimart-io/minimart/pkg/logging"
)

func main() {
	config.Load()

	serviceName := config.Getenv("SERVICE_NAME", "order")
	env := config.Getenv("ENV", "dev")
	logger := logging.MustNew(serviceName, env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	timeout := config.GetenvDuration("COLLABORATOR_TIMEOUT", 5*time.Second)
	extMetrics := httpclient.NewMetrics(prometheus.DefaultRegisterer)
	stockClient := httpclient.NewStockClient(
		config.Getenv("PRODUCT_URL", "http://localhost:3002"),
		timeout, extMetrics, logger,
	)
	paymentClient := httpclient.NewPaymentClient(
		config.Getenv("PAYMENT_URL", "http://localhost:3004"),
		timeout, extMetrics, logger,
	)

	service := application.NewService(
		memory.NewOrderRepository(),
		stockClient,
		paymentClient,
		ids.NewUUIDGenerator(),
		otel.Tracer("order-service"),
		application.NewMetrics(prometheus.DefaultRegisterer),
		logger,
	)

	router := chi.NewRouter()
	router.Use(chimw.RequestID, chimw.Recoverer)
	router.Use(httpserver.Observability(logger, httpserver.NewHTTPMetrics(prometheus.DefaultRegisterer)))
	router.Handle("/metrics", promhttp.Handler())
	httptransport.NewHandler(service).RegisterRoutes(router)

	addr := ":" + config.Getenv("PORT", "3003")
	if err := httpserver.Run(context.Background(), addr, router, logger); err != nil {
		logger.Fatal("http_server_error", zap.Error(err))
	}
}
