package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestBreaker(threshold, halfOpenMax int, timeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(threshold, timeout, halfOpenMax)
	current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return current }
	return b, &current
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, 1, 10*time.Second)

	for i := 0; i < 2; i++ {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected closed breaker below threshold, got %v", err)
	}

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	b, current := newTestBreaker(1, 2, 10*time.Second)

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}

	*current = current.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected second probe within limit, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected probe limit to reject, got %v", err)
	}
}

func TestCircuitBreaker_ClosesAfterProbeSuccesses(t *testing.T) {
	b, current := newTestBreaker(1, 2, 10*time.Second)

	b.RecordFailure()
	*current = current.Add(11 * time.Second)

	for i := 0; i < 2; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("probe %d rejected: %v", i, err)
		}
		b.RecordSuccess()
	}

	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("expected closed state, got %s", got)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected closed breaker to allow, got %v", err)
	}
}

func TestCircuitBreaker_ReopensOnProbeFailure(t *testing.T) {
	b, current := newTestBreaker(1, 2, 10*time.Second)

	b.RecordFailure()
	*current = current.Add(11 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected reopened breaker, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	b, _ := newTestBreaker(3, 1, 10*time.Second)

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()

	if err := b.Allow(); err != nil {
		t.Fatalf("expected closed breaker after streak reset, got %v", err)
	}
}

func TestSingleFlight_SharesResult(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int32

	start := make(chan struct{})
	results := make(chan any, 8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("sessions", func() (any, error) {
				calls.Add(1)
				time.Sleep(5 * time.Millisecond)
				return "principal", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results <- val
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
	for val := range results {
		if val != "principal" {
			t.Fatalf("unexpected shared value %v", val)
		}
	}
}

func TestSingleFlight_IndependentKeys(t *testing.T) {
	var g SingleFlight

	a, _, _ := g.Do("a", func() (any, error) { return 1, nil })
	b, _, _ := g.Do("b", func() (any, error) { return 2, nil })

	if a != 1 || b != 2 {
		t.Fatalf("expected per-key results, got %v and %v", a, b)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})

	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold != defaults.FailureThreshold {
		t.Fatalf("expected default threshold, got %d", cfg.FailureThreshold)
	}
	if cfg.OpenTimeout != defaults.OpenTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.OpenTimeout)
	}
	if cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("expected default half-open limit, got %d", cfg.HalfOpenMaxReq)
	}
}
