package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers one human-readable alert. Delivery is best-effort:
// callers log and swallow errors, a failed send never affects monitoring.
// Implementations must be safe for concurrent use from multiple monitors.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans an alert out to every configured channel and reports the
// combined failures.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, title, text))
	}
	return errs
}
