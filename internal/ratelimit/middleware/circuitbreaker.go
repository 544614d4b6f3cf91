package middleware

import "sync"

// CircuitBreaker counts consecutive errors from the shared limiter. It opens
// after openAfter failures in a row and closes again once closeAfter checks in
// a row have succeeded. While open the middleware answers from the fallback.
type CircuitBreaker struct {
	mu         sync.Mutex
	open       bool
	failures   int
	recoveries int
	openAfter  int
	closeAfter int
}

func newCircuitBreaker(openAfter, closeAfter int) *CircuitBreaker {
	return &CircuitBreaker{openAfter: openAfter, closeAfter: closeAfter}
}

func (c *CircuitBreaker) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// RecordFailure reports whether the circuit is open afterwards.
func (c *CircuitBreaker) RecordFailure() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recoveries = 0
	c.failures++
	if c.failures >= c.openAfter {
		c.open = true
	}
	return c.open
}

// RecordSuccess reports whether the circuit is closed afterwards.
func (c *CircuitBreaker) RecordSuccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
	if !c.open {
		return true
	}
	c.recoveries++
	if c.recoveries >= c.closeAfter {
		c.open = false
		c.recoveries = 0
	}
	return !c.open
}
