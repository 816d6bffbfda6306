package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rbas/fluxa/internal/domain"
	"github.com/rbas/fluxa/internal/notify"
	"github.com/rbas/fluxa/internal/probe"
	"github.com/rbas/fluxa/internal/state"
)

// Supervisor fans out one ServiceMonitor per configured service. It
// holds no health logic and no shared mutable state: monitors never
// serialize on each other, a stuck probe on one service cannot delay
// another.
type Supervisor struct {
	log      *zap.Logger
	monitors []*ServiceMonitor
}

func NewSupervisor(
	log *zap.Logger,
	services []domain.Service,
	checker probe.Checker,
	notifier notify.Notifier,
	stats *state.Store,
	timeout time.Duration,
) (*Supervisor, error) {
	if len(services) == 0 {
		return nil, errors.New("no services configured for monitoring")
	}
	ms := make([]*ServiceMonitor, 0, len(services))
	for _, svc := range services {
		ms = append(ms, NewServiceMonitor(log, svc, checker, notifier, stats, timeout))
	}
	return &Supervisor{log: log, monitors: ms}, nil
}

// Run starts every monitor and blocks until all of them stop, which in
// normal operation means until ctx is cancelled. A monitor that dies for
// any other reason is logged as a fatal per-service condition and not
// restarted: from then on that service is simply unmonitored.
func (s *Supervisor) Run(ctx context.Context) {
	s.log.Info("monitoring_started", zap.Int("services", len(s.monitors)))

	var wg sync.WaitGroup
	for _, m := range s.monitors {
		m := m
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("monitor_stopped",
						zap.String("url", m.svc.URL),
						zap.Any("panic", r),
					)
				}
			}()
			m.Run(ctx)
			if ctx.Err() == nil {
				s.log.Error("monitor_stopped", zap.String("url", m.svc.URL))
			}
		}()
	}
	wg.Wait()
}
