package errors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"

	"github.com/agentstation/modelprobe/pkg/constants"
)

// Normalize maps any error from the catalog or generation clients to the
// message shown to the user. Transport failures that never produced an HTTP
// response collapse into a single diagnostic; everything else passes through
// unchanged.
func Normalize(err error) string {
	if err == nil {
		return ""
	}
	if IsTransportFailure(err) {
		return constants.ErrMsgNetworkBlocked
	}
	return err.Error()
}

// IsTransportFailure reports whether err describes a request that was blocked
// or could not reach the provider. Caller-initiated cancellation and
// deadlines are not transport failures.
func IsTransportFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind == KindNetwork
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return false
	}

	var (
		urlErr *url.Error
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	switch {
	case errors.As(err, &urlErr), errors.As(err, &opErr), errors.As(err, &dnsErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	}
	return false
}
