package fetch

import (
	"errors"
	"fmt"
)

// FetchError captures a non-2xx response from the data host.
type FetchError struct {
	URL     string
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "fetch failed"
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", msg, e.URL, e.Status)
	}
	return fmt.Sprintf("%s: %s", msg, e.URL)
}

// NotFound reports whether the error represents a missing resource.
func (e *FetchError) NotFound() bool {
	return e.Status == 404
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
