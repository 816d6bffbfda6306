package monitor

import (
	"testing"
	"time"

	"github.com/rbas/fluxa/internal/domain"
)

func testService(maxRetries int) domain.Service {
	return domain.Service{
		URL:           "https://example.com",
		Interval:      60 * time.Second,
		MaxRetries:    maxRetries,
		RetryInterval: 5 * time.Second,
	}
}

func TestHealthState_StartsHealthy(t *testing.T) {
	h := newHealthState()
	if h.status != domain.Healthy || h.failures != 0 {
		t.Fatalf("unexpected initial state: %+v", h)
	}
}

func TestHealthState_DownAfterMaxRetriesPlusOneFailures(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		svc := testService(n)
		h := newHealthState()

		// n failures keep the service healthy (probation).
		for i := 0; i < n; i++ {
			tr, wait := h.apply(false, svc)
			if tr != transitionNone {
				t.Fatalf("maxRetries=%d: failure %d fired %v early", n, i+1, tr)
			}
			if h.status != domain.Healthy {
				t.Fatalf("maxRetries=%d: went down after only %d failures", n, i+1)
			}
			if wait != svc.RetryInterval {
				t.Fatalf("maxRetries=%d: probation wait = %v, want retry interval %v", n, wait, svc.RetryInterval)
			}
		}

		// Failure n+1 crosses the threshold.
		tr, wait := h.apply(false, svc)
		if tr != transitionDown {
			t.Fatalf("maxRetries=%d: failure %d did not fire down", n, n+1)
		}
		if h.status != domain.Unhealthy || h.failures != n+1 {
			t.Fatalf("maxRetries=%d: unexpected state after threshold: %+v", n, h)
		}
		if wait != svc.Interval {
			t.Fatalf("maxRetries=%d: wait after down = %v, want interval %v", n, wait, svc.Interval)
		}
	}
}

func TestHealthState_DownFiresOncePerEpisode(t *testing.T) {
	svc := testService(0)
	h := newHealthState()

	if tr, _ := h.apply(false, svc); tr != transitionDown {
		t.Fatalf("first failure with maxRetries=0 should go down, got %v", tr)
	}
	for i := 0; i < 10; i++ {
		tr, wait := h.apply(false, svc)
		if tr != transitionNone {
			t.Fatalf("repeat failure %d re-fired %v", i, tr)
		}
		if wait != svc.Interval {
			t.Fatalf("unhealthy cadence = %v, want interval %v", wait, svc.Interval)
		}
	}
}

func TestHealthState_RecoveryFiresExactlyOnce(t *testing.T) {
	svc := testService(0)
	h := newHealthState()
	h.apply(false, svc) // down

	tr, wait := h.apply(true, svc)
	if tr != transitionUp {
		t.Fatalf("success after down should fire up, got %v", tr)
	}
	if h.status != domain.Healthy || h.failures != 0 {
		t.Fatalf("unexpected state after recovery: %+v", h)
	}
	if wait != svc.Interval {
		t.Fatalf("wait after recovery = %v, want interval %v", wait, svc.Interval)
	}

	// Steady healthy probes never notify again.
	for i := 0; i < 10; i++ {
		if tr, _ := h.apply(true, svc); tr != transitionNone {
			t.Fatalf("steady success %d fired %v", i, tr)
		}
		if h.failures != 0 {
			t.Fatalf("steady success left failures=%d", h.failures)
		}
	}
}

func TestHealthState_SingleProbeDownEpisode(t *testing.T) {
	// Transient outage: one failing probe past the threshold, then
	// immediate recovery. Exactly one down and one up alert.
	svc := testService(0)
	h := newHealthState()

	down, _ := h.apply(false, svc)
	up, _ := h.apply(true, svc)
	if down != transitionDown || up != transitionUp {
		t.Fatalf("want down then up, got %v then %v", down, up)
	}
}

func TestHealthState_SuccessResetsProbationCounter(t *testing.T) {
	svc := testService(3)
	h := newHealthState()

	// Two failures, then a success: counter back to zero, no alerts.
	h.apply(false, svc)
	h.apply(false, svc)
	if tr, _ := h.apply(true, svc); tr != transitionNone {
		t.Fatalf("recovery inside probation must not notify, got %v", tr)
	}
	if h.failures != 0 {
		t.Fatalf("counter not reset: %d", h.failures)
	}

	// The streak starts over: three more failures still tolerated.
	for i := 0; i < 3; i++ {
		if tr, _ := h.apply(false, svc); tr != transitionNone {
			t.Fatalf("failure %d of fresh streak fired %v", i+1, tr)
		}
	}
	if tr, _ := h.apply(false, svc); tr != transitionDown {
		t.Fatalf("fourth failure of fresh streak should go down")
	}
}
