// Package resilience guards calls to optional backends so a failing dependency
// is skipped quickly instead of being waited on.
package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// State is the state of a Breaker.
type State int

const (
	// Closed lets calls through.
	Closed State = iota
	// Open rejects calls until the reset timeout elapses.
	Open
	// HalfOpen lets a single probe through to test recovery.
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned when a call is rejected because the breaker is open.
var ErrOpen = eris.New("circuit breaker is open")

// Config controls a Breaker.
type Config struct {
	// Name labels log lines, e.g. "prediction-api".
	Name string
	// FailureThreshold is the number of consecutive failures that opens the
	// breaker. Default: 5.
	FailureThreshold int
	// ResetTimeout is how long the breaker stays open before a probe. Default: 30s.
	ResetTimeout time.Duration
}

// Breaker is a consecutive-failure circuit breaker. Safe for concurrent use.
type Breaker struct {
	cfg Config

	mu          sync.Mutex
	state       State
	failures    int
	openedAt    time.Time
	probeActive bool

	now func() time.Time
}

// NewBreaker creates a closed breaker, filling defaults for zero values.
func NewBreaker(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}
	return &Breaker{cfg: cfg, now: time.Now}
}

// Do runs fn unless the breaker is open, recording its outcome.
func Do[T any](ctx context.Context, b *Breaker, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := b.allow(); err != nil {
		return zero, err
	}
	v, err := fn(ctx)
	b.record(err)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// State returns the current state, reporting HalfOpen once an open breaker's
// reset timeout has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Open && b.now().Sub(b.openedAt) >= b.cfg.ResetTimeout {
		return HalfOpen
	}
	return b.state
}

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Reset closes the breaker and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.probeActive = false
	b.setState(Closed)
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		if b.now().Sub(b.openedAt) < b.cfg.ResetTimeout {
			return ErrOpen
		}
		b.setState(HalfOpen)
		b.probeActive = true
		return nil
	case HalfOpen:
		if b.probeActive {
			return ErrOpen
		}
		b.probeActive = true
		return nil
	default:
		return nil
	}
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.probeActive = false
		b.setState(Closed)
		return
	}

	b.failures++
	switch b.state {
	case HalfOpen:
		b.probeActive = false
		b.openedAt = b.now()
		b.setState(Open)
	case Closed:
		if b.failures >= b.cfg.FailureThreshold {
			b.openedAt = b.now()
			b.setState(Open)
		}
	}
}

// setState must be called with mu held.
func (b *Breaker) setState(to State) {
	if b.state == to {
		return
	}
	zap.L().Info("resilience: breaker state change",
		zap.String("breaker", b.cfg.Name),
		zap.String("from", b.state.String()),
		zap.String("to", to.String()),
		zap.Int("failures", b.failures),
	)
	b.state = to
}
