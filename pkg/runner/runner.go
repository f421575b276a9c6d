package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/michal-shasha/bayesnet"
	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/registry"
)

// Runner executes query files line by line.
type Runner struct {
	// Handler presents the answers. If nil, a TextHandler on Stdout is used.
	Handler OutputHandler

	// Logger is used for warnings about skipped lines and failed loads.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Formats decides which lines name networks. If nil, registry.Default() is used.
	Formats *registry.Registry

	// BaseDir resolves relative network paths. RunFile sets it to the input's directory.
	BaseDir string

	// EngineOptions are applied to every engine the runner creates.
	EngineOptions []bayesnet.Option
}

// Stats summarises one run.
type Stats struct {
	Networks int
	Queries  int
	Failed   int
	Skipped  int
}

// NewRunner creates a new Runner with options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdout)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Formats == nil {
		r.Formats = registry.Default()
	}
	return r
}

// RunFile opens path and runs it, resolving networks relative to its directory
// unless BaseDir is set.
func (r *Runner) RunFile(ctx context.Context, path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	base := r.BaseDir
	if base == "" {
		base = filepath.Dir(path)
	}
	return r.run(ctx, f, base)
}

// Run reads lines from in until EOF. A failed query is reported through the handler
// and processing continues; only I/O errors and cancellation stop the run.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Stats, error) {
	return r.run(ctx, in, r.BaseDir)
}

func (r *Runner) run(ctx context.Context, in io.Reader, base string) (Stats, error) {
	var (
		stats  Stats
		engine *bayesnet.Engine
		lineNo int
	)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		lineNo++

		line, err := SanitizeLine(scanner.Text())
		if err != nil {
			r.Logger.Warn("skipping line", "line", lineNo, "error", err)
			stats.Skipped++
			continue
		}
		if line == "" {
			continue
		}

		if r.Formats.Supports(line) {
			engine = r.load(line, base, lineNo)
			if engine != nil {
				stats.Networks++
			}
			continue
		}

		if engine == nil {
			r.Logger.Warn("no network loaded, skipping query", "line", lineNo, "query", line)
			stats.Skipped++
			continue
		}

		outcome := r.answer(ctx, engine, line, lineNo)
		stats.Queries++
		if outcome.Err != nil {
			stats.Failed++
			r.Logger.Error("query failed", "line", lineNo, "query", line, "error", outcome.Err)
		}
		if err := r.Handler.Output(outcome); err != nil {
			return stats, fmt.Errorf("output error: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read error: %w", err)
	}
	return stats, nil
}

func (r *Runner) load(path, base string, lineNo int) *bayesnet.Engine {
	if !filepath.IsAbs(path) && base != "" {
		path = filepath.Join(base, path)
	}
	opts := append([]bayesnet.Option{
		bayesnet.WithLogger(r.Logger),
		bayesnet.WithRegistry(r.Formats),
	}, r.EngineOptions...)

	engine, err := bayesnet.Open(path, opts...)
	if err != nil {
		r.Logger.Error("failed to load network", "line", lineNo, "path", path, "error", err)
		return nil
	}
	r.Logger.Debug("loaded network", "path", path, "variables", engine.Network().Len())
	return engine
}

func (r *Runner) answer(ctx context.Context, engine *bayesnet.Engine, line string, lineNo int) Outcome {
	outcome := Outcome{Line: lineNo, Query: line}

	parsed, err := query.Parse(line)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Kind = parsed.Kind

	switch parsed.Kind {
	case domain.KindProbability:
		res, err := engine.Query(ctx, *parsed.Probability)
		if err == nil {
			err = res.Check()
		}
		if err != nil {
			outcome.Err = err
			return outcome
		}
		outcome.Result = &res
	case domain.KindIndependence:
		independent, err := engine.Independent(ctx, *parsed.Independence)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		outcome.Independent = &independent
	}
	return outcome
}
