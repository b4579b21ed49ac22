package client

import (
	"errors"
	"fmt"
)

// ErrNoResponse marks transport failures where no HTTP response arrived at
// all, as opposed to a response with an error status.
var ErrNoResponse = errors.New("no response from server")

// APIError is the normalized form of every non-2xx response. Message is the
// server body's message field when present, otherwise the HTTP status text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
