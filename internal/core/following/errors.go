package following

import (
	"errors"
	"fmt"
)

// ErrCircuitOpen is returned while the follower service is considered down
var ErrCircuitOpen = errors.New("following service circuit breaker open")

// StatusError is returned when the follower service answers with a non-200 status
type StatusError struct {
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}
