package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nazeru/contractforge-go/internal/user"
	"github.com/nazeru/contractforge-go/internal/seed"
	"github.com/nazeru/contractforge-go/pkg/config"
	"github.com/nazeru/contractforge-go/pkg/httpapi"
	"github.com/nazeru/contractforge-go/pkg/kafka"
	"github.com/nazeru/contractforge-go/pkg/metrics"
)

func main() {
	cfg, err := config.LoadService(user.ServiceName)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Fatalf("seed error: %v", err)
	}

	events, closeEvents := kafka.NewPublisherFromEnv(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer closeEvents()

	svc := user.NewService(user.NewStore(data.Users), events)

	r := httpapi.NewRouter(httpapi.Options{
		Service:     cfg.Name,
		Metrics:     metrics.NewServerMetrics(prometheus.DefaultRegisterer, "user_service"),
		Gatherer:    prometheus.DefaultGatherer,
		LogRequests: cfg.LogRequests,
	})
	user.NewHandler(svc).Mount(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	log.Printf("user-service listening on :%s (%d users seeded)", cfg.Port, len(data.Users))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
