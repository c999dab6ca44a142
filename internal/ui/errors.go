package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/coolctl/internal/auth"
	"github.com/five82/coolctl/internal/remote"
)

// DescribeError maps a request failure to the short label shown next to the
// status badge and in command results.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}
	var (
		missing  *auth.MissingCredentialError
		rejected *remote.AuthRejectedError
		httpErr  *remote.HTTPError
		netErr   *remote.NetworkError
		decode   *remote.DecodeError
	)
	switch {
	case errors.As(err, &missing):
		return "credential missing"
	case errors.As(err, &rejected):
		return "credential rejected"
	case errors.As(err, &httpErr):
		return fmt.Sprintf("HTTP %d", httpErr.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return "unreachable (timeout)"
	case errors.As(err, &netErr):
		return "unreachable"
	case errors.As(err, &decode):
		return "bad response"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return err.Error()
	}
}
