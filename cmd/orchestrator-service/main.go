package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nazeru/contractforge-go/internal/checkout"
	"github.com/nazeru/contractforge-go/internal/upstream"
	"github.com/nazeru/contractforge-go/pkg/config"
	"github.com/nazeru/contractforge-go/pkg/httpapi"
	"github.com/nazeru/contractforge-go/pkg/metrics"
)

func main() {
	cfg, err := config.LoadOrchestrator()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	client := &http.Client{Timeout: cfg.UpstreamTimeout}
	products := upstream.NewInventoryClient(cfg.InventoryBaseURL, client)
	users := upstream.NewUserClient(cfg.UserBaseURL, client)
	quotes := upstream.NewPricingClient(cfg.PricingBaseURL, client)

	srvMetrics := metrics.NewServerMetrics(prometheus.DefaultRegisterer, "orchestrator_service")
	r := httpapi.NewRouter(httpapi.Options{
		Service:     cfg.Name,
		Metrics:     srvMetrics,
		Gatherer:    prometheus.DefaultGatherer,
		LogRequests: cfg.LogRequests,
		Resolve:     checkout.ResolveError,
	})
	checkout.NewHandler(checkout.NewService(products, users, quotes), products, users, srvMetrics).Mount(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	log.Printf("orchestrator-service listening on :%s (inventory=%s users=%s pricing=%s timeout=%s)",
		cfg.Port, cfg.InventoryBaseURL, cfg.UserBaseURL, cfg.PricingBaseURL, cfg.UpstreamTimeout)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
