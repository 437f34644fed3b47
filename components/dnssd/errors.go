package dnssd

import (
	"errors"
	"fmt"

	"github.com/open-control-systems/wasd/components/status"
)

var (
	// ErrMissingDomain is returned when neither the call nor the client provides a domain.
	ErrMissingDomain = errors.New("no domain given")

	// ErrMissingResolver is returned when a descriptor is resolved without a resolver.
	ErrMissingResolver = errors.New("no resolver given")
)

// Descriptor identifies what is being resolved, Service or Instance.
type Descriptor interface {
	// DNSName returns the DNS-SD name of the descriptor.
	DNSName() string

	// String returns the human readable form of the descriptor.
	String() string
}

// NoEndpointsError is returned when the service record lookup finds nothing.
//
// Remarks:
//   - errors.Is(err, status.StatusNoData) reports true for it.
type NoEndpointsError struct {
	// Target is the Service or Instance that was resolved.
	Target Descriptor
}

// Error implements the error interface.
func (e *NoEndpointsError) Error() string {
	return fmt.Sprintf("no endpoints found: %s", e.Target.DNSName())
}

// Unwrap returns status.StatusNoData.
func (*NoEndpointsError) Unwrap() error {
	return status.StatusNoData
}
