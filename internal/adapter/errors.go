package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	// ErrUnauthorized is returned when the service rejects the bearer token.
	// Call sites treat it as a forced logout; the reconciliation engine never
	// silently refreshes a captured token.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrConnectivity is returned when a request never reached the service:
	// DNS failure, refused connection, unreachable network, timeout. It is
	// the only failure kind that triggers offline capture.
	ErrConnectivity = errors.New("network unreachable")
)

// APIError is a non-auth, non-connectivity rejection from the service,
// carrying the HTTP status and the service's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// IsConnectivityError reports whether err represents an unreachable network
// rather than a service-side rejection. Only net-level causes qualify: the
// syscall set, DNS failures, dial errors, and timeouts. A *url.Error wrapping
// anything else (a malformed URL, for instance) is not connectivity.
// Timeouts count as unreachable: the capture path handles a link too slow to
// answer the same as no link at all.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnectivity) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
