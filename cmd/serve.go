// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/alumnify/tenant-isolation/internal/config"
	"github.com/alumnify/tenant-isolation/internal/db"
	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/monitoring/prometheus"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/tracing"
	"github.com/alumnify/tenant-isolation/pkg/schema"
	tenantsync "github.com/alumnify/tenant-isolation/pkg/sync"
	"github.com/alumnify/tenant-isolation/pkg/tenantctx"
	"github.com/alumnify/tenant-isolation/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}
	if err := specs.Validate(); err != nil {
		panic(fmt.Errorf("invalid environment configuration: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("tenant-isolation", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var cache tenantctx.CacheInterface
	if specs.RedisURL != "" {
		opts, err := redis.ParseURL(specs.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %v", err)
		}
		cache = tenantctx.NewRedisCache(redis.NewClient(opts), logger)
		logger.Info("Using redis resolver cache")
	} else {
		cache = tenantctx.NewMemoryCache()
		logger.Info("Using in-memory resolver cache")
	}
	resolver := tenantctx.NewResolver(s, cache, specs.ResolverCacheTTL, tracer, logger)

	localData := schema.NewSchemaStore(dbClient)
	syncService := tenantsync.NewService(s, localData, tenantsync.LatestWins{}, tracer, logger)
	syncWorker := tenantsync.NewWorker(syncService, s, specs.SyncInterval, logger)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go syncWorker.Run(workerCtx)
	logger.Infof("Sync worker sweeping every %v", specs.SyncInterval)

	router := web.NewRouter(resolver, tracer, monitor, logger)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	stopWorker()

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
