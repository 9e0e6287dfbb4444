package reddit

import (
	"errors"
	"fmt"
)

// ErrTooManyRedirects is returned when a download is abandoned after
// following the maximum number of redirects.
var ErrTooManyRedirects = errors.New("reddit: stopped after too many redirects")

// StatusError reports a non-success HTTP response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("reddit: HTTP error: %s", e.Status)
}
