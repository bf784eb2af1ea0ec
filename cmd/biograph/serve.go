package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	bioconfig "github.com/c360studio/biograph/config"
	"github.com/c360studio/biograph/metrics"
	recordingester "github.com/c360studio/biograph/processor/record-ingester"

	// Register vocabularies via init()
	_ "github.com/c360studio/biograph/vocabulary/bio"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/componentregistry"
	"github.com/c360studio/semstreams/config"
	"github.com/c360studio/semstreams/metric"
	"github.com/c360studio/semstreams/service"
	"github.com/c360studio/semstreams/types"
	"github.com/spf13/cobra"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the streaming ingestion service",
		Long: `Serve connects to NATS, provisions the ingest and graph streams,
and runs the record-ingester processor: source files dropped into the
watch directory or named in ingest requests are parsed and published
to the graph stream. Prometheus metrics are exposed over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg *bioconfig.Config) error {
	logger := slog.Default()
	ctx := context.Background()

	platformCfg, err := buildServeConfig(cfg)
	if err != nil {
		return fmt.Errorf("build service config: %w", err)
	}
	if err := platformCfg.Validate(); err != nil {
		return fmt.Errorf("invalid service configuration: %w", err)
	}

	natsClient, err := connectNATS(ctx, cfg)
	if err != nil {
		return err
	}
	defer natsClient.Close(ctx)

	// Ensure JetStream streams exist
	streamsManager := config.NewStreamsManager(natsClient, logger)
	if err := streamsManager.EnsureStreams(ctx, platformCfg); err != nil {
		return fmt.Errorf("ensure streams: %w", err)
	}

	slog.Info("biograph ready",
		"version", Version,
		"drop_dir", cfg.Inputs.DropDir,
		"ingest_stream", cfg.NATS.IngestStream,
		"graph_stream", cfg.NATS.GraphStream)

	metricsRegistry := metric.NewMetricsRegistry()
	platform := types.PlatformMeta{
		Org:      platformCfg.Platform.Org,
		Platform: platformCfg.Platform.ID,
	}

	configManager, err := config.NewConfigManager(platformCfg, natsClient, logger)
	if err != nil {
		return fmt.Errorf("create config manager: %w", err)
	}
	if err := configManager.Start(ctx); err != nil {
		return fmt.Errorf("start config manager: %w", err)
	}
	defer configManager.Stop(5 * time.Second)

	// Create and populate component registry
	componentRegistry := component.NewRegistry()

	slog.Debug("Registering platform component factories")
	if err := componentregistry.Register(componentRegistry); err != nil {
		return fmt.Errorf("register platform components: %w", err)
	}

	slog.Debug("Registering biograph component factories")
	if err := recordingester.Register(componentRegistry); err != nil {
		return fmt.Errorf("register record-ingester: %w", err)
	}

	factories := componentRegistry.ListFactories()
	slog.Info("Component factories registered", "count", len(factories))

	serviceRegistry := service.NewServiceRegistry()
	if err := service.RegisterAll(serviceRegistry); err != nil {
		return fmt.Errorf("register services: %w", err)
	}

	manager := service.NewServiceManager(serviceRegistry)
	ensureServiceManagerConfig(platformCfg)

	svcDeps := &service.Dependencies{
		NATSClient:        natsClient,
		MetricsRegistry:   metricsRegistry,
		Logger:            logger,
		Platform:          platform,
		Manager:           configManager,
		ComponentRegistry: componentRegistry,
	}

	if err := configureAndCreateServices(platformCfg, manager, svcDeps); err != nil {
		return err
	}

	slog.Info("All services configured")

	// Setup signal handling
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// Serve the pipeline's Prometheus collectors
	metricsServer := startMetricsServer(cfg.Serve.MetricsAddr, logger)

	slog.Info("Starting all services")
	if err := manager.StartAll(signalCtx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	slog.Info("All services started successfully")

	// Block until shutdown signal
	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	shutdownTimeout := 30 * time.Second
	if err := manager.StopAll(shutdownTimeout); err != nil {
		slog.Error("Error stopping services", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping metrics server", "error", err)
	}

	slog.Info("Biograph shutdown complete")
	return nil
}

// startMetricsServer exposes the pipeline recorder's scrape endpoint.
func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Default().Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}

// ensureServiceManagerConfig ensures service-manager config exists with
// defaults.
func ensureServiceManagerConfig(cfg *config.Config) {
	if cfg.Services == nil {
		cfg.Services = make(types.ServiceConfigs)
	}

	if _, exists := cfg.Services["service-manager"]; !exists {
		slog.Debug("Adding default service-manager config")
		defaultConfig := map[string]any{
			"http_port":  8080,
			"swagger_ui": false,
			"server_info": map[string]string{
				"title":       "Biograph API",
				"description": "association graph builder - source ingestion and graph publishing",
				"version":     Version,
			},
		}
		defaultConfigJSON, _ := json.Marshal(defaultConfig)
		cfg.Services["service-manager"] = types.ServiceConfig{
			Name:    "service-manager",
			Enabled: true,
			Config:  defaultConfigJSON,
		}
	}
}

// configureAndCreateServices configures the manager and creates all
// services.
func configureAndCreateServices(
	cfg *config.Config,
	manager *service.Manager,
	svcDeps *service.Dependencies,
) error {
	slog.Debug("Configuring Manager")
	if err := manager.ConfigureFromServices(cfg.Services, svcDeps); err != nil {
		return fmt.Errorf("configure service manager: %w", err)
	}

	slog.Debug("Creating services from config", "count", len(cfg.Services))
	for name, svcConfig := range cfg.Services {
		if name == "service-manager" {
			continue
		}

		if !svcConfig.Enabled {
			slog.Info("Service disabled in config", "name", name)
			continue
		}

		if !manager.HasConstructor(name) {
			slog.Warn("Service configured but not registered", "key", name, "available_constructors", manager.ListConstructors())
			continue
		}

		if _, err := manager.CreateService(name, svcConfig.Config, svcDeps); err != nil {
			return fmt.Errorf("create service %s: %w", name, err)
		}

		slog.Info("Created service", "name", name, "config_name", svcConfig.Name)
	}

	return nil
}

// buildServeConfig assembles the platform service configuration from the
// biograph config: the two streams, the record-ingester component, and
// platform identity.
func buildServeConfig(cfg *bioconfig.Config) (*config.Config, error) {
	ingesterConfig := map[string]any{
		"stream_name":        cfg.NATS.IngestStream,
		"drop_dir":           cfg.Inputs.DropDir,
		"genes_lookup":       cfg.Lookups.Genes,
		"coordinates_lookup": cfg.Lookups.Coordinates,
	}
	ingesterJSON, err := json.Marshal(ingesterConfig)
	if err != nil {
		return nil, err
	}

	return &config.Config{
		Version: "1.0.0",
		Platform: config.PlatformConfig{
			Org:         appName,
			ID:          appName + "-local",
			Environment: "dev",
		},
		NATS: config.NATSConfig{
			URLs:          []string{cfg.NATSURL()},
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
			JetStream: config.JetStreamConfig{
				Enabled: true,
			},
		},
		Services: types.ServiceConfigs{},
		Components: config.ComponentConfigs{
			"record-ingester": types.ComponentConfig{
				Name:    "record-ingester",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  ingesterJSON,
			},
		},
		Streams: config.StreamConfigs{
			cfg.NATS.IngestStream: config.StreamConfig{
				Subjects: []string{
					"ingest.request.>",
				},
				MaxAge:   "24h",
				Storage:  "file",
				Replicas: 1,
			},
			cfg.NATS.GraphStream: config.StreamConfig{
				Subjects: []string{
					"graph.ingest.entity",
					"graph.export.>",
				},
				MaxAge:   "24h",
				Storage:  "file",
				Replicas: 1,
			},
		},
	}, nil
}
