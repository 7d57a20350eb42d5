package catalog

import (
	"errors"
	"fmt"
)

const (
	// DefaultDomainMessage is shown when the API flags a failure without a message.
	DefaultDomainMessage = "Failed to fetch movies."

	// GenericFailureMessage is shown for transport failures.
	GenericFailureMessage = "Error fetching movies. Please try again later."
)

// TransportError reports a non-2xx status, a network failure or an unreadable body.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "fetch failed"
	}
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("catalog %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("catalog %s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("catalog %s returned status %d", e.Endpoint, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DomainError reports a 2xx response whose payload signals failure.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	if e == nil || e.Message == "" {
		return DefaultDomainMessage
	}
	return e.Message
}

// UserMessage maps a FetchCatalog error to the single line shown in place of
// the results. Domain failures keep the server text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var domain *DomainError
	if errors.As(err, &domain) {
		return domain.Error()
	}
	return GenericFailureMessage
}
