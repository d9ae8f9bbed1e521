package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nazeru/contractforge-go/internal/pricing"
	"github.com/nazeru/contractforge-go/internal/seed"
	"github.com/nazeru/contractforge-go/pkg/config"
	"github.com/nazeru/contractforge-go/pkg/httpapi"
	"github.com/nazeru/contractforge-go/pkg/kafka"
	"github.com/nazeru/contractforge-go/pkg/metrics"
)

func main() {
	cfg, err := config.LoadService(pricing.ServiceName)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Fatalf("seed error: %v", err)
	}

	events, closeEvents := kafka.NewPublisherFromEnv(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer closeEvents()

	svc := pricing.NewService(pricing.NewStore(data.Rules), events)

	r := httpapi.NewRouter(httpapi.Options{
		Service:     cfg.Name,
		Metrics:     metrics.NewServerMetrics(prometheus.DefaultRegisterer, "pricing_service"),
		Gatherer:    prometheus.DefaultGatherer,
		LogRequests: cfg.LogRequests,
	})
	pricing.NewHandler(svc).Mount(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	log.Printf("pricing-service listening on :%s (%d discount rules seeded)", cfg.Port, len(data.Rules))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
