package transpo

import (
	"fmt"
	"log/slog"

	"github.com/costela/transpo/golp"
)

type Option func(*runner) error

func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		r.logger = logger

		return nil
	}
}

// WithEngineOptions passes options to the engine model created for the run.
func WithEngineOptions(opts ...golp.Option) Option {
	return func(r *runner) error {
		r.engineOpts = append(r.engineOpts, opts...)

		return nil
	}
}

// WithTolerance sets the absolute slack used when checking the solution.
func WithTolerance(tol float64) Option {
	return func(r *runner) error {
		if !(tol > 0) {
			return fmt.Errorf("tolerance must be positive, got %g", tol)
		}
		r.tolerance = tol

		return nil
	}
}
