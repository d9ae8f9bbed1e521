package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Service is the configuration every leaf service reads.
type Service struct {
	Name         string
	Port         string
	SeedFile     string
	KafkaBrokers string
	KafkaTopic   string
	LogRequests  bool
}

type Orchestrator struct {
	Service
	InventoryBaseURL string
	UserBaseURL      string
	PricingBaseURL   string
	UpstreamTimeout  time.Duration
}

func LoadService(name string) (Service, error) {
	port := Getenv("PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		return Service{}, fmt.Errorf("PORT must be numeric, got %q", port)
	}
	return Service{
		Name:         name,
		Port:         port,
		SeedFile:     Getenv("SEED_FILE", ""),
		KafkaBrokers: Getenv("KAFKA_BROKERS", ""),
		KafkaTopic:   Getenv("KAFKA_TOPIC", "contractforge.catalog"),
		LogRequests:  GetenvBool("LOG_REQUESTS", true),
	}, nil
}

func LoadOrchestrator() (Orchestrator, error) {
	svc, err := LoadService("orchestrator-service")
	if err != nil {
		return Orchestrator{}, err
	}
	cfg := Orchestrator{
		Service:          svc,
		InventoryBaseURL: strings.TrimRight(Getenv("INVENTORY_BASE_URL", ""), "/"),
		UserBaseURL:      strings.TrimRight(Getenv("USER_BASE_URL", ""), "/"),
		PricingBaseURL:   strings.TrimRight(Getenv("PRICING_BASE_URL", ""), "/"),
	}
	var missing []string
	if cfg.InventoryBaseURL == "" {
		missing = append(missing, "INVENTORY_BASE_URL")
	}
	if cfg.UserBaseURL == "" {
		missing = append(missing, "USER_BASE_URL")
	}
	if cfg.PricingBaseURL == "" {
		missing = append(missing, "PRICING_BASE_URL")
	}
	if len(missing) > 0 {
		return Orchestrator{}, errors.New(strings.Join(missing, ", ") + " required")
	}
	toutMS, err := strconv.Atoi(Getenv("UPSTREAM_TIMEOUT_MS", "2500"))
	if err != nil || toutMS <= 0 {
		return Orchestrator{}, fmt.Errorf("UPSTREAM_TIMEOUT_MS must be a positive integer")
	}
	cfg.UpstreamTimeout = time.Duration(toutMS) * time.Millisecond
	return cfg, nil
}

func Getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func GetenvBool(k string, def bool) bool {
	switch strings.ToLower(Getenv(k, "")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return def
	}
}
