package admission

import (
	"sync"
	"testing"
	"time"
)

func TestGate_QuotaExhaustion(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 15, time.Hour)

	for i := 0; i < 15; i++ {
		if !gate.CheckLimit("1.2.3.4") {
			t.Fatalf("request %d should be admitted", i+1)
		}
	}

	// 16th call within the window
	if gate.CheckLimit("1.2.3.4") {
		t.Errorf("16th request should be rejected")
	}
	if got := gate.Remaining("1.2.3.4"); got != 0 {
		t.Errorf("expected remaining 0, got %d", got)
	}

	// Other keys are unaffected
	if !gate.CheckLimit("5.6.7.8") {
		t.Errorf("different key should be admitted")
	}
}

func TestGate_WindowRollsOver(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 2, time.Hour)

	current := time.Unix(1_700_000_000, 0)
	gate.now = func() time.Time { return current }

	if !gate.CheckLimit("k") {
		t.Fatalf("first request should be admitted")
	}
	current = current.Add(10 * time.Minute)
	if !gate.CheckLimit("k") {
		t.Fatalf("second request should be admitted")
	}
	if gate.CheckLimit("k") {
		t.Errorf("third request within window should be rejected")
	}

	// Advance past the earliest timestamp's window; one slot frees up
	current = current.Add(51 * time.Minute)
	if got := gate.Remaining("k"); got != 1 {
		t.Errorf("expected remaining 1 after rollover, got %d", got)
	}
	if !gate.CheckLimit("k") {
		t.Errorf("request after window rollover should be admitted")
	}
}

func TestGate_RejectionNotRecorded(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 1, time.Hour)

	current := time.Unix(1_700_000_000, 0)
	gate.now = func() time.Time { return current }

	gate.CheckLimit("k")
	for i := 0; i < 5; i++ {
		gate.CheckLimit("k") // rejected, must not extend the window
	}

	current = current.Add(time.Hour + time.Second)
	if !gate.CheckLimit("k") {
		t.Errorf("rejected attempts must not count against the window")
	}
}

func TestGate_RemainingBounds(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 3, time.Hour)

	if got := gate.Remaining("fresh"); got != 3 {
		t.Errorf("expected remaining 3 for fresh key, got %d", got)
	}

	for i := 0; i < 10; i++ {
		gate.CheckLimit("k")
	}
	if got := gate.Remaining("k"); got < 0 || got > 3 {
		t.Errorf("remaining out of bounds: %d", got)
	}
}

func TestGate_ConcurrentAdmission(t *testing.T) {
	const limit = 15
	gate := NewGate(NewMemoryStore(), limit, time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if gate.CheckLimit("shared") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != limit {
		t.Errorf("expected exactly %d admitted, got %d", limit, admitted)
	}
}

func TestAdvisoryGate(t *testing.T) {
	gate := NewAdvisoryGate(2, time.Hour)

	if gate.Remaining() != 2 {
		t.Errorf("expected remaining 2, got %d", gate.Remaining())
	}
	if !gate.Allow() || !gate.Allow() {
		t.Fatalf("first two attempts should be allowed")
	}
	if gate.Allow() {
		t.Errorf("third attempt should be refused")
	}
}
