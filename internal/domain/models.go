package domain

import (
	"fmt"
	"net/url"
	"time"
)

// HealthStatus is the two-state health of a monitored service.
type HealthStatus int

const (
	Healthy HealthStatus = iota
	Unhealthy
)

func (s HealthStatus) String() string {
	if s == Healthy {
		return "healthy"
	}
	return "unhealthy"
}

func (s HealthStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *HealthStatus) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"healthy"`:
		*s = Healthy
	case `"unhealthy"`:
		*s = Unhealthy
	default:
		return fmt.Errorf("unknown health status %s", b)
	}
	return nil
}

// Service is the immutable definition of one monitored service. A
// ServiceMonitor owns exactly one of these for its whole lifetime.
type Service struct {
	URL           string
	Interval      time.Duration // normal polling cadence
	MaxRetries    int           // consecutive failures tolerated before declaring down
	RetryInterval time.Duration // cadence while failing but not yet down
}

// NewService validates the fields and returns a Service.
func NewService(rawURL string, interval time.Duration, maxRetries int, retryInterval time.Duration) (Service, error) {
	if !isValidURL(rawURL) {
		return Service{}, fmt.Errorf("%q is not a valid url", rawURL)
	}
	if interval <= 0 {
		return Service{}, fmt.Errorf("service %s: interval must be > 0", rawURL)
	}
	if retryInterval <= 0 {
		return Service{}, fmt.Errorf("service %s: retry interval must be > 0", rawURL)
	}
	if maxRetries < 0 {
		return Service{}, fmt.Errorf("service %s: max retries cannot be negative", rawURL)
	}
	return Service{
		URL:           rawURL,
		Interval:      interval,
		MaxRetries:    maxRetries,
		RetryInterval: retryInterval,
	}, nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
