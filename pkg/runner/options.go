package runner

import (
	"log/slog"

	"github.com/michal-shasha/bayesnet"
	"github.com/michal-shasha/bayesnet/pkg/registry"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithOutputHandler configures how answers are written.
func WithOutputHandler(handler OutputHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithRegistry configures the formats recognised as network lines.
func WithRegistry(formats *registry.Registry) Option {
	return func(r *Runner) {
		r.Formats = formats
	}
}

// WithBaseDir sets the directory relative network paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(r *Runner) {
		r.BaseDir = dir
	}
}

// WithEngineOptions configures every engine the runner creates (cache, hooks).
func WithEngineOptions(opts ...bayesnet.Option) Option {
	return func(r *Runner) {
		r.EngineOptions = append(r.EngineOptions, opts...)
	}
}
