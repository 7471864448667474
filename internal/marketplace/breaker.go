package marketplace

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrCircuitOpen is returned while the scraper is backing off after
// repeated upstream failures.
var ErrCircuitOpen = errors.New("circuit breaker open")

type circuitState string

const (
	stateClosed   circuitState = "closed"
	stateOpen     circuitState = "open"
	stateHalfOpen circuitState = "half-open"
)

// circuitBreaker stops hammering the marketplace after consecutive scrape
// failures and probes again after a cooldown.
type circuitBreaker struct {
	mu sync.Mutex

	state            circuitState
	failureCount     int
	successCount     int
	lastFailureTime  time.Time
	failureThreshold int
	successThreshold int
	timeout          time.Duration
	logger           *logrus.Logger
}

func newCircuitBreaker(failureThreshold int, timeout time.Duration, logger *logrus.Logger) *circuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 3
	}
	if timeout < time.Second {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &circuitBreaker{
		state:            stateClosed,
		failureThreshold: failureThreshold,
		successThreshold: 2,
		timeout:          timeout,
		logger:           logger,
	}
}

// Call runs fn unless the circuit is open. Failures count toward opening
// the circuit; successes in half-open state close it again.
func (cb *circuitBreaker) Call(fn func() error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}
	err := fn()
	cb.afterRequest(err == nil)
	return err
}

func (cb *circuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == stateOpen {
		if time.Since(cb.lastFailureTime) < cb.timeout {
			return ErrCircuitOpen
		}
		cb.state = stateHalfOpen
		cb.successCount = 0
		cb.logger.Info("marketplace circuit half-open, probing upstream")
	}
	return nil
}

func (cb *circuitBreaker) afterRequest(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if success {
		cb.failureCount = 0
		if cb.state == stateHalfOpen {
			cb.successCount++
			if cb.successCount >= cb.successThreshold {
				cb.state = stateClosed
				cb.logger.Info("marketplace circuit closed")
			}
		}
		return
	}

	cb.failureCount++
	cb.lastFailureTime = time.Now()
	if cb.state == stateHalfOpen || cb.failureCount >= cb.failureThreshold {
		if cb.state != stateOpen {
			cb.logger.WithField("failures", cb.failureCount).Warn("marketplace circuit opened")
		}
		cb.state = stateOpen
	}
}

// State reports the current circuit state (tests).
func (cb *circuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return string(cb.state)
}
