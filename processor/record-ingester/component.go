// Package recordingester provides a component that runs source table
// files through the ingestion pipeline as they arrive, either by request
// message or by landing in the drop directory.
package recordingester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/ingest/udp"
	"github.com/c360studio/biograph/ingest/wormbase"
	"github.com/c360studio/biograph/lookup"
	"github.com/c360studio/biograph/metrics"
	"github.com/c360studio/biograph/storage"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"
)

// recordIngesterSchema defines the configuration schema.
var recordIngesterSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// pipelineTag names this pipeline on published triples.
const pipelineTag = "biograph"

// Component implements the record-ingester processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	platform   component.PlatformMeta

	registry *ingest.Registry
	pipeline *ingest.Pipeline
	store    *storage.Store
	watcher  *DropWatcher

	// Lifecycle management
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	filesIngested  atomic.Int64
	filesSkipped   atomic.Int64
	errors         atomic.Int64
	lastActivityMu sync.RWMutex
	lastActivity   time.Time
}

// NewComponent creates a new record-ingester processor component.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Use default config if ports not set
	if config.Ports == nil {
		config = DefaultConfig()
		// Re-unmarshal to get user-provided values
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Component{
		name:       "record-ingester",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
		platform:   deps.Platform,
	}

	return c, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins processing ingest requests and drop-directory arrivals.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}
	c.running = true
	c.startTime = time.Now()
	c.mu.Unlock()

	c.registry = ingest.NewRegistry(wormbase.New(), udp.New())

	genes, coords := c.loadLookups()
	pipeline, err := ingest.New(ingest.Config{
		Registry:    c.registry,
		Emitter:     graph.NewPublisher(c.natsClient, pipelineTag),
		Logger:      c.logger,
		Recorder:    metrics.Default(),
		Genes:       genes,
		Coordinates: coords,
	})
	if err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return fmt.Errorf("create pipeline: %w", err)
	}
	c.pipeline = pipeline

	js, err := c.natsClient.JetStream()
	if err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return fmt.Errorf("get JetStream context: %w", err)
	}
	store, err := storage.NewStore(ctx, js)
	if err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return fmt.Errorf("create manifest store: %w", err)
	}
	c.store = store

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	go c.consumeMessages(runCtx)

	if c.config.WatchConfig.Enabled {
		watcher, err := NewDropWatcher(c.config.WatchConfig, c.config.DropDir, c.logger)
		if err != nil {
			c.logger.Error("failed to create drop watcher", "error", err)
		} else {
			c.watcher = watcher
			if err := watcher.Start(runCtx); err != nil {
				c.logger.Error("failed to start drop watcher", "error", err)
			} else {
				go c.processWatchEvents(runCtx)
			}
		}
	}

	c.logger.Info("record ingester started",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"drop_dir", c.config.DropDir,
		"sources", c.registry.Names(),
		"watching", c.config.WatchConfig.Enabled)

	return nil
}

// loadLookups reads the optional enrichment tables. A missing or
// unreadable table degrades to an empty map — enrichment, not input.
func (c *Component) loadLookups() (lookup.GeneMap, lookup.CoordinateMap) {
	var genes lookup.GeneMap
	var coords lookup.CoordinateMap

	if c.config.GenesLookup != "" {
		m, err := lookup.LoadGeneMap(c.config.GenesLookup)
		if err != nil {
			c.logger.Warn("failed to load gene lookup", "path", c.config.GenesLookup, "error", err)
		} else {
			genes = m
		}
	}
	if c.config.CoordinatesLookup != "" {
		m, err := lookup.LoadCoordinates(c.config.CoordinatesLookup)
		if err != nil {
			c.logger.Warn("failed to load coordinate lookup", "path", c.config.CoordinatesLookup, "error", err)
		} else {
			coords = m
		}
	}
	return genes, coords
}

// consumeMessages processes incoming ingest requests.
func (c *Component) consumeMessages(ctx context.Context) {
	js, err := c.natsClient.JetStream()
	if err != nil {
		c.logger.Error("failed to get JetStream context", "error", err)
		return
	}

	stream, err := js.Stream(ctx, c.config.StreamName)
	if err != nil {
		c.logger.Error("failed to get stream", "error", err, "stream", c.config.StreamName)
		return
	}

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		FilterSubject: "ingest.request.>",
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       60 * time.Second,
		MaxDeliver:    3,
	}
	consumer, err := stream.CreateOrUpdateConsumer(ctx, consumerConfig)
	if err != nil {
		c.logger.Error("failed to create consumer", "error", err, "stream", c.config.StreamName, "consumer", c.config.ConsumerName)
		return
	}

	c.logger.Info("consumer connected", "stream", c.config.StreamName, "consumer", c.config.ConsumerName)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue // timeout, try again
		}

		for msg := range msgs.Messages() {
			select {
			case <-ctx.Done():
				_ = msg.Nak()
				return
			default:
				c.handleMessage(ctx, msg)
			}
		}
	}
}

// handleMessage processes a single ingest request.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.updateLastActivity()

	var req IngestRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		c.logger.Warn("failed to parse ingest request", "error", err)
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}
	if err := req.Validate(); err != nil {
		c.logger.Warn("invalid ingest request", "error", err)
		c.errors.Add(1)
		// A request that will never validate is not worth redelivering.
		_ = msg.Ack()
		return
	}

	c.logger.Info("processing ingest request", "path", req.Path, "source", req.Source)

	if err := c.ingestFile(ctx, req.Path, req.Source); err != nil {
		c.logger.Error("failed to ingest file", "path", req.Path, "error", err)
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}

	_ = msg.Ack()
}

// ingestFile runs one file through the pipeline and records its manifest.
// A pinned source name wins over name-based routing.
func (c *Component) ingestFile(ctx context.Context, path, pinned string) error {
	var source ingest.Source
	var ok bool
	if pinned != "" {
		source, ok = c.registry.Named(pinned)
		if !ok {
			return fmt.Errorf("unknown source %q", pinned)
		}
		if !source.Accepts(path) {
			return fmt.Errorf("source %q does not accept file %q", pinned, path)
		}
	} else {
		source, ok = c.registry.ForFile(path)
		if !ok {
			return fmt.Errorf("no source accepts file %q", path)
		}
	}

	if c.config.SkipUnchanged {
		skip, err := c.alreadyIngested(ctx, source.Name(), path)
		if err != nil {
			c.logger.Warn("manifest lookup failed, ingesting anyway", "error", err)
		} else if skip {
			c.filesSkipped.Add(1)
			c.logger.Info("file unchanged since last run, skipping", "path", path, "source", source.Name())
			return nil
		}
	}

	started := time.Now()
	result, err := c.pipeline.Run(ctx, []string{path})
	metrics.Default().RunCompleted(source.Name(), err, time.Since(started).Seconds())
	if err != nil {
		return err
	}

	manifest := &storage.RunManifest{
		Source: source.Name(),
		Counts: storage.Counts{
			RowsRead:     result.RowsRead,
			RowsSkipped:  result.RowsSkipped,
			Entities:     result.Entities,
			Associations: result.Associations,
		},
		Started:  started,
		Finished: time.Now(),
	}
	for _, f := range result.Files {
		manifest.Files = append(manifest.Files, storage.FileDigest{
			Path:   f.Path,
			SHA256: f.SHA256,
			Rows:   f.Rows,
		})
	}
	if _, err := c.store.Create(ctx, manifest); err != nil {
		// The graph already has the data; losing the manifest only costs
		// change suppression on the next drop.
		c.logger.Warn("failed to store run manifest", "error", err)
	}

	c.filesIngested.Add(1)
	c.logger.Info("file ingested",
		"path", path,
		"source", source.Name(),
		"rows", result.RowsRead,
		"skipped", result.RowsSkipped,
		"entities", result.Entities,
		"associations", result.Associations)
	return nil
}

// alreadyIngested reports whether the source's latest manifest consumed
// exactly this file with identical content.
func (c *Component) alreadyIngested(ctx context.Context, sourceName, path string) (bool, error) {
	latest, err := c.store.Latest(ctx, sourceName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	return latest.SameInputs([]storage.FileDigest{{
		Path:   path,
		SHA256: ContentHash(content),
	}}), nil
}

// processWatchEvents handles drop-directory events and triggers ingestion.
func (c *Component) processWatchEvents(ctx context.Context) {
	if c.watcher == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-c.watcher.Events():
			if !ok {
				return
			}
			c.handleWatchEvent(ctx, event)
		}
	}
}

// handleWatchEvent processes a single drop-directory arrival.
func (c *Component) handleWatchEvent(ctx context.Context, event WatchEvent) {
	c.updateLastActivity()

	c.logger.Info("source file dropped, triggering ingestion", "path", event.Path)

	if _, ok := c.registry.ForFile(event.Path); !ok {
		c.logger.Warn("dropped file matches no registered source", "path", event.Path)
		return
	}

	if err := c.ingestFile(ctx, event.Path, ""); err != nil {
		c.logger.Error("failed to ingest dropped file", "path", event.Path, "error", err)
		c.errors.Add(1)
	}
}

// updateLastActivity safely updates the last activity timestamp.
func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

// getLastActivity safely retrieves the last activity timestamp.
func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}

// Stop gracefully stops the component within the given timeout.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Error("failed to stop drop watcher", "error", err)
		}
	}

	c.running = false
	c.logger.Info("record ingester stopped",
		"files_ingested", c.filesIngested.Load(),
		"files_skipped", c.filesSkipped.Load(),
		"errors", c.errors.Load())

	return nil
}

// Discoverable interface implementation

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "record-ingester",
		Type:        "processor",
		Description: "Source table ingester for association graph population",
		Version:     "0.1.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return recordIngesterSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errors.Load()),
		Uptime:     time.Since(startTime),
		Status:     c.getStatusString(running),
	}
}

// getStatusString returns a status string based on running state.
func (c *Component) getStatusString(running bool) string {
	if running {
		return "running"
	}
	return "stopped"
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}
