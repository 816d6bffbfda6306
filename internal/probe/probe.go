package probe

import "context"

// CheckResult holds the outcome of a single probe.
//
// StatusCode is the HTTP status when a response was received; 0 for
// transport errors (timeout, connection refused, DNS failure).
type CheckResult struct {
	Success    bool    `json:"success"`
	StatusCode int     `json:"status_code,omitempty"`
	LatencyMS  float64 `json:"latency_ms,omitempty"`
	Message    string  `json:"message"`
}

// Checker performs one availability check against a target URL. A single
// call issues at most one outbound request; retry policy belongs to the
// monitoring loop, never here. Implementations must be safe for
// concurrent use from multiple monitors.
type Checker interface {
	Check(ctx context.Context, target string) CheckResult
}
