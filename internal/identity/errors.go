package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a rejection from the provider's HTTP API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity provider: %s (status %d)", e.Message, e.StatusCode)
}

// FailureReason is the fixed four-class taxonomy for sign-in rejections.
type FailureReason string

const (
	FailureInvalidCredentials FailureReason = "invalid_credentials"
	FailureUnconfirmedContact FailureReason = "unconfirmed_contact"
	FailureRateLimited        FailureReason = "rate_limited"
	FailureUnknown            FailureReason = "unknown"
)

// ClassifyFailure maps a provider rejection onto the failure taxonomy.
// The substring rules mirror the provider's stable error strings; anything
// unrecognized is FailureUnknown, never a grant.
func ClassifyFailure(err error) FailureReason {
	var provErr *Error
	if !errors.As(err, &provErr) {
		return FailureUnknown
	}
	if provErr.StatusCode == http.StatusTooManyRequests {
		return FailureRateLimited
	}
	msg := provErr.Message
	switch {
	case strings.Contains(msg, "Invalid login credentials"):
		return FailureInvalidCredentials
	case strings.Contains(msg, "not confirmed"):
		return FailureUnconfirmedContact
	case strings.Contains(msg, "Too many requests"):
		return FailureRateLimited
	default:
		return FailureUnknown
	}
}
