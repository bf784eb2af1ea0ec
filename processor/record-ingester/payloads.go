package recordingester

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "ingest",
		Category:    "request",
		Version:     "v1",
		Description: "Source file ingestion request",
		Factory:     func() any { return &IngestRequest{} },
	})
	if err != nil {
		panic("failed to register IngestRequest: " + err.Error())
	}
}

// IngestRequestType is the message type for ingest request payloads.
var IngestRequestType = message.Type{Domain: "ingest", Category: "request", Version: "v1"}

// IngestRequest asks the processor to run one source file through the
// pipeline. Source is optional; when empty the file is routed by name.
type IngestRequest struct {
	// Path is the source file to ingest.
	Path string `json:"path"`
	// Source optionally pins the file to a registered source by name.
	Source string `json:"source,omitempty"`
}

// Schema returns the message type for Payload interface.
func (r *IngestRequest) Schema() message.Type { return IngestRequestType }

// Validate validates the payload for Payload interface.
func (r *IngestRequest) Validate() error {
	if r.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *IngestRequest) MarshalJSON() ([]byte, error) {
	type Alias IngestRequest
	return json.Marshal((*Alias)(r))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *IngestRequest) UnmarshalJSON(data []byte) error {
	type Alias IngestRequest
	return json.Unmarshal(data, (*Alias)(r))
}
