package monitor

import (
	"time"

	"github.com/rbas/fluxa/internal/domain"
)

// transition is the observable effect of applying one probe outcome.
type transition int

const (
	transitionNone transition = iota
	transitionDown             // healthy -> unhealthy, fire the down alert
	transitionUp               // unhealthy -> healthy, fire the recovery alert
)

// healthState couples the status with the consecutive-failure counter so
// the pair cannot drift apart. It is owned and mutated by exactly one
// ServiceMonitor.
//
// Policy: the retry cadence applies only to the probation window (failing
// but not yet past max retries). Once a service is declared unhealthy,
// probing reverts to the normal interval, matching the meaning of
// "retry": the quick re-checks that decide whether a blip is an outage.
type healthState struct {
	status   domain.HealthStatus
	failures int
}

// newHealthState starts optimistic: the first probe determines reality
// before any notification is possible.
func newHealthState() healthState {
	return healthState{status: domain.Healthy, failures: 0}
}

// apply folds one probe outcome into the state and returns the resulting
// transition plus the wait before the next probe.
//
// Exactly max retries + 1 consecutive failures are needed to go down; any
// success resets the counter. Each transition is reported exactly once,
// repeated probes in the same status never re-fire it.
func (h *healthState) apply(success bool, svc domain.Service) (transition, time.Duration) {
	if success {
		wasDown := h.status == domain.Unhealthy
		h.status = domain.Healthy
		h.failures = 0
		if wasDown {
			return transitionUp, svc.Interval
		}
		return transitionNone, svc.Interval
	}

	if h.status == domain.Unhealthy {
		// Already down, already alerted.
		return transitionNone, svc.Interval
	}

	h.failures++
	if h.failures > svc.MaxRetries {
		h.status = domain.Unhealthy
		return transitionDown, svc.Interval
	}
	// Probation: still healthy, probe again sooner.
	return transitionNone, svc.RetryInterval
}
