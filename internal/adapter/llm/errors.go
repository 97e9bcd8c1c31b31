package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the upstream API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Detail     *APIError
	Body       string
}

func (e *StatusError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("LLM API error [%d]: %s (type: %s)", e.StatusCode, e.Detail.Message, e.Detail.Type)
	}
	return fmt.Sprintf("LLM API error [%d]: %s", e.StatusCode, e.Body)
}

// IsRateLimited reports whether err carries an upstream 429.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}
