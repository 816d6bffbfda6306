package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rbas/fluxa/internal/domain"
	"github.com/rbas/fluxa/internal/notify"
	"github.com/rbas/fluxa/internal/probe"
	"github.com/rbas/fluxa/internal/state"
)

// ServiceMonitor runs the availability loop for one service. It is the
// sole owner of that service's health state; nothing else reads or
// writes it, so no locking is involved.
type ServiceMonitor struct {
	log      *zap.Logger
	svc      domain.Service
	checker  probe.Checker
	notifier notify.Notifier
	stats    *state.Store
	timeout  time.Duration

	state healthState
}

func NewServiceMonitor(
	log *zap.Logger,
	svc domain.Service,
	checker probe.Checker,
	notifier notify.Notifier,
	stats *state.Store,
	timeout time.Duration,
) *ServiceMonitor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ServiceMonitor{
		log:      log.With(zap.String("url", svc.URL)),
		svc:      svc,
		checker:  checker,
		notifier: notifier,
		stats:    stats,
		timeout:  timeout,
	}
}

// Run probes until ctx is cancelled. The first probe happens immediately
// at start; every later wait is chosen by the state machine (normal
// interval, or the retry interval during a probation streak). Within one
// cycle probe, state update and notification are strictly sequential: the
// next wait does not start until the whole cycle is done.
func (m *ServiceMonitor) Run(ctx context.Context) {
	m.state = newHealthState()

	wait := m.runOnce(ctx)
	for {
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
			wait = m.runOnce(ctx)
		}
	}
}

func (m *ServiceMonitor) runOnce(ctx context.Context) time.Duration {
	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	out := m.checker.Check(cctx, m.svc.URL)
	cancel()

	tr, wait := m.state.apply(out.Success, m.svc)

	if out.Success {
		m.log.Debug("probe_ok",
			zap.Int("status", out.StatusCode),
			zap.Float64("latency_ms", out.LatencyMS),
		)
	} else {
		m.log.Debug("probe_failed",
			zap.Int("status", out.StatusCode),
			zap.String("reason", out.Message),
			zap.Int("consecutive_failures", m.state.failures),
		)
	}

	switch tr {
	case transitionDown:
		fields := []zap.Field{
			zap.Int("status", out.StatusCode),
			zap.String("reason", out.Message),
			zap.Int("consecutive_failures", m.state.failures),
		}
		if out.StatusCode == 0 {
			// Transport-level failure: tell a dead name from a dead host.
			fields = append(fields, zap.String("dns", probe.ClassifyDNS(m.svc.URL)))
		}
		m.log.Warn("service_down", fields...)
		m.send(ctx, "Service down", fmt.Sprintf("%s is unhealthy!", m.svc.URL))
	case transitionUp:
		m.log.Info("service_recovered",
			zap.Int("status", out.StatusCode),
			zap.Float64("latency_ms", out.LatencyMS),
		)
		m.send(ctx, "Service recovered", fmt.Sprintf("%s is now healthy!", m.svc.URL))
	}

	m.publish(out, wait)
	return wait
}

// send delivers a transition alert best-effort: an unreachable
// notification channel is logged and otherwise ignored.
func (m *ServiceMonitor) send(ctx context.Context, title, text string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Send(ctx, title, text); err != nil {
		m.log.Error("notify_error", zap.Error(err))
	}
}

func (m *ServiceMonitor) publish(out probe.CheckResult, wait time.Duration) {
	if m.stats == nil {
		return
	}
	now := time.Now().UTC()
	var latency *float64
	if out.StatusCode != 0 {
		v := out.LatencyMS
		latency = &v
	}
	lastErr := ""
	if !out.Success {
		lastErr = out.Message
	}
	m.stats.Update(state.ServiceStats{
		URL:                 m.svc.URL,
		Status:              m.state.status,
		LatencyMS:           latency,
		LastError:           lastErr,
		ConsecutiveFailures: m.state.failures,
		CheckedAt:           now,
		NextCheckAt:         now.Add(wait),
	})
}
