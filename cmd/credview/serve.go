package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jonathan/credibility-report/internal/analysis"
	"github.com/jonathan/credibility-report/internal/config"
	"github.com/jonathan/credibility-report/internal/export"
	"github.com/jonathan/credibility-report/internal/modal"
	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/server"
	"github.com/jonathan/credibility-report/internal/server/ratelimit"
	"github.com/jonathan/credibility-report/internal/session"
)

type serveOptions struct {
	port int
}

func newServeCmd(a *app) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that accepts article submissions and serves the results view, exports and share payloads.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = opts.port
			}
			srv, err := buildServer(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&opts.port, "port", 8080, "Port to listen on")
	return cmd
}

// buildServer wires the configured session store, analysis client and export engine.
func buildServer(ctx context.Context, cfg *config.Config) (*server.Server, error) {
	store, err := newSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Server.Port,
		Analyzer:       analysis.NewClient(cfg.Analysis.BaseURL, &http.Client{Timeout: cfg.Analysis.Timeout}),
		Store:          store,
		Engine:         export.NewEngine(export.NewLoader(export.FontLoader(nil, cfg.Document.FontURL))),
		Scheduler:      modal.ClockScheduler{},
		SessionTTL:     cfg.Session.TTL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      rateLimitConfig(cfg.Server.RateLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}

// rateLimitConfig applies the configured toggle and address lists to the default tiers.
func rateLimitConfig(cfg config.RateLimitConfig) *ratelimit.Config {
	rl := ratelimit.DefaultConfig()
	rl.Enabled = cfg.Enabled
	rl.Whitelist = ratelimit.ParseIPList(cfg.Whitelist)
	rl.Blacklist = ratelimit.ParseIPList(cfg.Blacklist)
	return rl
}

func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		store, err := session.NewRedisStore(ctx, session.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Session.TTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect session store: %w", err)
		}
		observability.Log.WithField("addr", cfg.Redis.Addr).Info("using redis session store")
		return store, nil
	default:
		return session.NewMemoryStore(cfg.Session.TTL), nil
	}
}
