package validate

import "log/slog"

// Atomic runs op and propagates its error after logging it. Quota mutations
// are structured as "validate everything, then commit": op performs all
// validation up front and only touches state once nothing can fail, so a
// returned error means no partial mutation happened. Atomic gives every such
// mutation a single choke point with a stable log shape.
func Atomic(log *slog.Logger, label string, op func() error) error {
	if log == nil {
		log = slog.Default()
	}

	if err := op(); err != nil {
		log.Warn("usage limit update rejected",
			slog.String("operation", label),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}
