package recordingester

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the record-ingester processor component with the
// given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "record-ingester",
		Factory:     NewComponent,
		Schema:      recordIngesterSchema,
		Type:        "processor",
		Protocol:    "nats",
		Domain:      "bio",
		Description: "Source table ingester for association graph population",
		Version:     "0.1.0",
	})
}
