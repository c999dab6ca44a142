package remote

import "fmt"

// AuthRejectedError means the server answered 401. The stored credential has
// already been cleared when this is returned.
type AuthRejectedError struct {
	Path string
}

func (e *AuthRejectedError) Error() string {
	return fmt.Sprintf("api %s rejected the credential; it was cleared, restart coolctl to enter a new one", e.Path)
}

// HTTPError is any other non-2xx response. BodyErr is set when the response
// text could not be read in full; Body then holds whatever arrived.
type HTTPError struct {
	StatusCode int
	Path       string
	Body       string
	BodyErr    error
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.BodyErr != nil {
		msg += fmt.Sprintf(" (reading body: %v)", e.BodyErr)
	}
	return msg
}

// NetworkError wraps transport-level failures such as refused connections,
// DNS errors and timeouts.
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("execute request %s: %v", e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError means a successful response carried a body that is not the
// expected JSON.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
