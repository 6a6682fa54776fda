package skadmin

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// TransportError is returned when the registry could not be reached.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RegistryError is returned when the registry answered with a non 2xx status.
type RegistryError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *RegistryError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: registry returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: registry returned status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// IsRejected reports whether err is the registry refusing the request,
// as opposed to the registry being unreachable.
func IsRejected(err error) bool {
	var registryErr *RegistryError
	return errors.As(err, &registryErr)
}

// IsUnreachable reports whether err is a transport failure.
func IsUnreachable(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
