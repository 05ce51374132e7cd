package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/intellihire/internal/augment"
	"github.com/jonathan/intellihire/internal/cache"
	"github.com/jonathan/intellihire/internal/config"
	"github.com/jonathan/intellihire/internal/db"
	"github.com/jonathan/intellihire/internal/llm"
	"github.com/jonathan/intellihire/internal/logger"
	"github.com/jonathan/intellihire/internal/metrics"
	"github.com/jonathan/intellihire/internal/pipeline"
)

// app holds the configuration and shared services for one command run.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Recorder
	closers []func()
}

// newApp loads configuration and builds the logger.
func newApp() (*app, error) {
	if envFile != "" {
		config.LoadEnvFile(envFile)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	log, err := logger.New(logger.Options{Format: cfg.Log.Format, Level: cfg.Log.Level})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &app{cfg: cfg, log: log, metrics: metrics.New()}, nil
}

// Close releases everything opened through the app, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.log.Sync()
}

// llmClient returns nil without error when no model credentials are configured.
func (a *app) llmClient(ctx context.Context) (llm.Client, error) {
	if !a.cfg.LLM.Usable() {
		a.log.Info("language model disabled, using algorithmic scoring")
		return nil, nil
	}
	provider, err := llm.ParseProvider(a.cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}

	llmCfg := llm.DefaultConfig()
	if provider == llm.ProviderVertex {
		llmCfg = llm.DefaultVertexConfig(a.cfg.LLM.Project, a.cfg.LLM.Location)
	}
	if a.cfg.LLM.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, a.cfg.LLM.Model)
	}

	client, err := llm.NewClient(ctx, llmCfg, a.cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	a.log.Info("language model enabled",
		zap.String("provider", string(provider)),
		zap.String("model", client.GetModel(llm.TierStandard)))
	return client, nil
}

// analysisCache connects to Redis when configured. A failed connection is
// logged and screening continues uncached.
func (a *app) analysisCache(ctx context.Context) cache.AnalysisCache {
	if !a.cfg.Redis.Enabled() {
		return nil
	}
	c, err := cache.NewRedisCache(ctx, cache.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
		TTL:      a.cfg.Redis.TTL,
	})
	if err != nil {
		a.log.Warn("analysis cache unavailable", zap.String("addr", a.cfg.Redis.Addr), zap.Error(err))
		return nil
	}
	a.closers = append(a.closers, func() { _ = c.Close() })
	return c
}

// engine builds the screening engine. client may be nil.
func (a *app) engine(ctx context.Context, client llm.Client, onProgress pipeline.ProgressCallback) *pipeline.Engine {
	opts := pipeline.Options{
		Cache:            a.analysisCache(ctx),
		Logger:           a.log,
		Metrics:          a.metrics,
		Workers:          a.cfg.Screening.Workers,
		AugmenterTimeout: a.cfg.Screening.AugmenterTimeout,
		OnProgress:       onProgress,
	}
	if client != nil {
		opts.Augmenter = augment.NewLLMAugmenter(client)
	}
	return pipeline.NewEngine(opts)
}

// database connects to PostgreSQL.
func (a *app) database(ctx context.Context) (*db.DB, error) {
	if a.cfg.Database.URL == "" {
		return nil, fmt.Errorf("database url is required (set DATABASE_URL or database.url)")
	}
	database, err := db.Connect(ctx, a.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, database.Close)
	return database, nil
}
