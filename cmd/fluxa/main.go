package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rbas/fluxa/internal/config"
	"github.com/rbas/fluxa/internal/domain"
	"github.com/rbas/fluxa/internal/httpapi"
	"github.com/rbas/fluxa/internal/logging"
	"github.com/rbas/fluxa/internal/monitor"
	"github.com/rbas/fluxa/internal/notify"
	"github.com/rbas/fluxa/internal/probe"
	"github.com/rbas/fluxa/internal/state"
)

func main() {
	configPath := os.Getenv("FLUXA_CONFIG")
	if configPath == "" {
		configPath = "fluxa.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogToConsole)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	services := make([]domain.Service, 0, len(cfg.Services))
	for _, sc := range cfg.Services {
		svc, err := domain.NewService(
			sc.URL,
			time.Duration(sc.IntervalSeconds)*time.Second,
			sc.MaxRetries,
			time.Duration(sc.RetryIntervalSeconds)*time.Second,
		)
		if err != nil {
			log.Fatal(err)
		}
		services = append(services, svc)
	}

	var channels notify.Multi
	if p := notify.NewPushover(cfg.PushoverAPIKey, cfg.PushoverUserKey); p != nil {
		channels = append(channels, p)
	}
	if s := notify.NewSlack(cfg.SlackWebhook); s != nil {
		channels = append(channels, s)
	}

	stats := state.New()
	checker := probe.NewHTTPChecker(cfg.ProbeTimeout)

	sup, err := monitor.NewSupervisor(logger, services, checker, channels, stats, cfg.ProbeTimeout)
	if err != nil {
		log.Fatal(err)
	}
	go sup.Run(context.Background())

	api := httpapi.NewServer(logger, stats)
	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
