package following

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// circuitState represents the state of a circuit breaker
type circuitState int

const (
	stateClosed   circuitState = iota // Normal operation
	stateOpen                         // Follower service failing
	stateHalfOpen                     // Testing if it recovered
)

func (s circuitState) String() string {
	switch s {
	case stateOpen:
		return "OPEN (failing)"
	case stateHalfOpen:
		return "HALF-OPEN (testing)"
	default:
		return "CLOSED (recovered)"
	}
}

// circuitBreaker stops calling the follower service after repeated failures
// so requests fail fast instead of each waiting out the timeout.
type circuitBreaker struct {
	lastFailure      time.Time
	now              func() time.Time
	state            circuitState
	failures         int
	failureThreshold int
	openDuration     time.Duration
	mu               sync.Mutex
}

func newCircuitBreaker(failureThreshold int, openDuration time.Duration) *circuitBreaker {
	return &circuitBreaker{
		failureThreshold: failureThreshold,
		openDuration:     openDuration,
		now:              time.Now,
	}
}

// canAttempt reports whether a call may be made. An open circuit moves to
// half-open once openDuration has passed, letting one probe through.
func (cb *circuitBreaker) canAttempt() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case stateOpen:
		nextRetry := cb.lastFailure.Add(cb.openDuration)
		if cb.now().After(nextRetry) {
			cb.setState(stateHalfOpen)
			return nil
		}
		return fmt.Errorf("%w (failures: %d, next retry: %s)",
			ErrCircuitOpen, cb.failures, nextRetry.Format("15:04:05"))
	case stateHalfOpen:
		// One probe is already in flight
		return fmt.Errorf("%w (probe in progress)", ErrCircuitOpen)
	default:
		return nil
	}
}

// recordSuccess resets failure tracking
func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.lastFailure = time.Time{}
	if cb.state != stateClosed {
		cb.setState(stateClosed)
	}
}

// recordFailure counts a failed call and opens the circuit at the threshold
func (cb *circuitBreaker) recordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	if cb.state == stateHalfOpen || cb.failures >= cb.failureThreshold {
		if cb.state != stateOpen {
			log.Printf("[FOLLOWING-CIRCUIT] Opening circuit after %d consecutive failures. Last error: %v",
				cb.failures, err)
		}
		cb.state = stateOpen
		return
	}

	log.Printf("[FOLLOWING-CIRCUIT] Failure %d/%d: %v", cb.failures, cb.failureThreshold, err)
}

// release abandons an in-flight probe without judging upstream health
func (cb *circuitBreaker) release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == stateHalfOpen {
		cb.state = stateOpen
	}
}

// setState must be called with the lock held
func (cb *circuitBreaker) setState(state circuitState) {
	cb.state = state
	log.Printf("[FOLLOWING-CIRCUIT] Circuit is now %s", state)
}
