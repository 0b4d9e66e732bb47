package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/annvec/annvec/internal/httpapi"
	"github.com/annvec/annvec/internal/httpapi/middleware"
	"github.com/annvec/annvec/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP search service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := observability.NewDefaultLogger()
	metrics := observability.NewMetrics()

	k, closeStore, err := buildKernel(cfg, log, metrics)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := k.Load(context.Background()); err != nil {
		return err
	}

	server := httpapi.NewServer(httpapi.Config{
		Addr: cfg.HTTP.Addr,
		Auth: middleware.AuthConfig{
			Enabled:     cfg.HTTP.JWTSecret != "",
			JWTSecret:   cfg.HTTP.JWTSecret,
			PublicPaths: []string{"/v1/health", "/metrics"},
		},
		RateLimit: middleware.RateLimitConfig{
			Enabled:        cfg.HTTP.RateLimitRPS > 0,
			RequestsPerSec: float64(cfg.HTTP.RateLimitRPS),
			Burst:          cfg.HTTP.RateLimitBurst,
		},
	}, k, log, metrics)

	printInfo(cmd.OutOrStdout(), "listening on %s", server.Addr())
	return server.ListenAndServe()
}
