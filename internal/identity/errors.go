package identity

import "fmt"

// ProviderError is returned when the identity provider refuses a password
// update. Message is the provider's own explanation and is safe to surface.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("identity provider: status %d: %s", e.StatusCode, e.Message)
	}
	return "identity provider: " + e.Message
}

func (e *ProviderError) ProviderMessage() string {
	return e.Message
}
