package golp

import "fmt"

type Option func(*Model) error

func WithLogger(logger Logger) Option {
	return func(m *Model) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		m.logger = logger

		return nil
	}
}

func WithMethod(method Method) Option {
	return func(m *Model) error {
		switch method {
		case Primal, Dual:
		default:
			return fmt.Errorf("unknown simplex method %d", int(method))
		}
		m.Method = method

		return nil
	}
}

func WithPresolve(enabled bool) Option {
	return func(m *Model) error {
		m.Presolve = enabled

		return nil
	}
}

func WithVerbose(enabled bool) Option {
	return func(m *Model) error {
		m.Verbose = enabled

		return nil
	}
}
