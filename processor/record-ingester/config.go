package recordingester

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// Config holds configuration for the record-ingester processor component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// StreamName is the JetStream stream for ingest request messages.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream name,category:basic,default:INGEST"`

	// ConsumerName is the durable consumer name.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name,category:basic,default:record-ingester"`

	// DropDir is the directory watched for newly exported source tables.
	DropDir string `json:"drop_dir" schema:"type:string,description:Directory watched for source table drops,category:basic,default:.biograph/drop"`

	// GenesLookup is the optional gene symbol to identifier table path.
	GenesLookup string `json:"genes_lookup" schema:"type:string,description:Gene symbol lookup table path,category:advanced"`

	// CoordinatesLookup is the optional gene coordinate table path.
	CoordinatesLookup string `json:"coordinates_lookup" schema:"type:string,description:Gene coordinate table path,category:advanced"`

	// SkipUnchanged suppresses re-ingestion of files whose digests match
	// the source's latest run manifest.
	SkipUnchanged bool `json:"skip_unchanged" schema:"type:bool,description:Skip files whose digests match the latest run manifest,category:advanced,default:true"`

	// WatchConfig holds drop-directory watching configuration.
	WatchConfig WatchConfig `json:"watch_config" schema:"type:object,description:Drop directory watching configuration,category:advanced"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.DropDir == "" {
		return fmt.Errorf("drop_dir is required")
	}
	if c.WatchConfig.DebounceDelay != "" {
		if _, err := c.WatchConfig.debounce(); err != nil {
			return fmt.Errorf("invalid debounce_delay format: %w", err)
		}
	}
	return nil
}

// DefaultConfig returns default configuration for the record-ingester
// processor.
func DefaultConfig() Config {
	inputDefs := []component.PortDefinition{
		{
			Name:        "ingest.in",
			Type:        "jetstream",
			Subject:     "ingest.request.>",
			StreamName:  "INGEST",
			Required:    true,
			Description: "Source file ingestion requests",
		},
	}

	outputDefs := []component.PortDefinition{
		{
			Name:        "graph.out",
			Type:        "jetstream",
			Subject:     "graph.ingest.entity",
			StreamName:  "GRAPH",
			Required:    true,
			Description: "Entity payloads for graph ingestion",
		},
	}

	return Config{
		Ports: &component.PortConfig{
			Inputs:  inputDefs,
			Outputs: outputDefs,
		},
		StreamName:    "INGEST",
		ConsumerName:  "record-ingester",
		DropDir:       ".biograph/drop",
		SkipUnchanged: true,
		WatchConfig:   DefaultWatchConfig(),
	}
}
