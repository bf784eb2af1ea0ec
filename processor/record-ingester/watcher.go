package recordingester

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 500
)

// WatchConfig configures drop-directory watching.
type WatchConfig struct {
	// Enabled controls whether drop-directory watching is active.
	Enabled bool `json:"enabled" schema:"type:bool,description:Enable drop directory watching,category:advanced,default:true"`

	// DebounceDelay is how long to wait for more changes before processing.
	// Exports are written incrementally, so a short settle window avoids
	// parsing half-written tables.
	DebounceDelay string `json:"debounce_delay" schema:"type:string,description:Debounce delay before processing file changes,category:advanced,default:2s"`

	// FileExtensions lists file extensions to watch.
	FileExtensions []string `json:"file_extensions" schema:"type:array,description:File extensions accepted as source tables,category:advanced,default:[.tsv,.csv,.txt,.gff3,.gz]"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:        true,
		DebounceDelay:  "2s",
		FileExtensions: []string{".tsv", ".csv", ".txt", ".gff3", ".gz"},
	}
}

func (c *WatchConfig) debounce() (time.Duration, error) {
	return time.ParseDuration(c.DebounceDelay)
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 2 * time.Second
	}
	d, err := c.debounce()
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// WatchEvent represents a source file arrival in the drop directory.
type WatchEvent struct {
	// Path is the absolute file path.
	Path string
}

// DropWatcher watches the drop directory for source table files and emits
// events for new or changed content. Deletions are not interesting — the
// graph keeps what was already ingested.
type DropWatcher struct {
	config     WatchConfig
	dropDir    string
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]struct{}

	// Hash-based change suppression
	hashMu sync.RWMutex
	hashes map[string]string

	// Output channel
	events chan WatchEvent

	// Metrics
	droppedEvents atomic.Int64
}

// NewDropWatcher creates a new drop-directory watcher.
func NewDropWatcher(config WatchConfig, dropDir string, logger *slog.Logger) (*DropWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	extensions := make(map[string]bool)
	exts := config.FileExtensions
	if len(exts) == 0 {
		exts = DefaultWatchConfig().FileExtensions
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	return &DropWatcher{
		config:     config,
		dropDir:    dropDir,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		pending:    make(map[string]struct{}),
		hashes:     make(map[string]string),
		events:     make(chan WatchEvent, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *DropWatcher) Events() <-chan WatchEvent {
	return w.events
}

// Start begins watching the drop directory for changes.
func (w *DropWatcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dropDir, 0755); err != nil {
		return err
	}

	if err := w.watcher.Add(w.dropDir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("drop watcher started",
		"drop_dir", w.dropDir,
		"debounce", w.config.GetDebounceDelay(),
		"extensions", w.config.FileExtensions)

	return nil
}

// Stop stops the watcher. The events channel is closed by processEvents
// when it exits.
func (w *DropWatcher) Stop() error {
	return w.watcher.Close()
}

// SetHash records the content hash for a file, suppressing a re-event for
// identical content.
func (w *DropWatcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// GetHash returns the recorded hash for a file.
func (w *DropWatcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// processEvents handles fsnotify events with debouncing.
func (w *DropWatcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent accumulates a single fsnotify event.
func (w *DropWatcher) handleFSEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	path := event.Name
	if !w.accepts(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("source file change detected",
		"path", filepath.Base(path),
		"op", event.Op.String())
}

// accepts reports whether the path looks like a source table.
func (w *DropWatcher) accepts(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

// flushPending processes accumulated changes.
func (w *DropWatcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := make([]string, 0, len(w.pending))
	for path := range w.pending {
		toProcess = append(toProcess, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	for _, path := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		content, err := os.ReadFile(path)
		if err != nil {
			// Deleted or unreadable between the event and the flush.
			w.logger.Warn("failed to read dropped file",
				"path", filepath.Base(path),
				"error", err)
			continue
		}

		newHash := ContentHash(content)
		oldHash, hadHash := w.GetHash(path)
		if hadHash && oldHash == newHash {
			continue
		}
		w.SetHash(path, newHash)

		w.sendEvent(WatchEvent{Path: path})
	}
}

// sendEvent sends an event to the output channel.
func (w *DropWatcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("sent watch event", "path", filepath.Base(event.Path))
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("event channel full, dropping event",
			"path", filepath.Base(event.Path),
			"total_dropped", dropped)
	}
}

// DroppedEvents returns the number of events dropped due to channel
// overflow.
func (w *DropWatcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// ContentHash digests file content for change suppression.
func ContentHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}
