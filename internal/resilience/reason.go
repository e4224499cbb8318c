package resilience

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Reason classifies why a guarded call failed. Used as a log field and a
// metric label, so the set is small and fixed.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonCircuitOpen Reason = "circuit_open"
	ReasonTimeout     Reason = "timeout"
	ReasonStatus      Reason = "http_status"
	ReasonNetwork     Reason = "network"
	ReasonOther       Reason = "error"
)

// statusCoder is implemented by errors that carry an HTTP status code.
type statusCoder interface {
	HTTPStatus() int
}

// Classify maps an error to a Reason.
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	if errors.Is(err, ErrOpen) {
		return ReasonCircuitOpen
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		return ReasonStatus
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return ReasonNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ReasonNetwork
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonNetwork
	}
	return ReasonOther
}
