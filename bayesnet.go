package bayesnet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/michal-shasha/bayesnet/internal/ball"
	"github.com/michal-shasha/bayesnet/internal/elimination"
	"github.com/michal-shasha/bayesnet/internal/keylock"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/ports"
	"github.com/michal-shasha/bayesnet/pkg/registry"
)

// Engine is the high-level entry point for the library.
// It binds one network to the inference algorithms and the optional cache and hooks.
// An Engine is safe for concurrent use.
type Engine struct {
	network     *domain.Network
	eliminator  *elimination.Engine
	oracle      *ball.Oracle
	cache       ports.ResultCache
	locks       *keylock.Locks
	formats     *registry.Registry
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	fingerprint string
}

var _ ports.QueryEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCache memoises answers in cache. Keys include the network fingerprint,
// so one cache may be shared by engines over different networks.
func WithCache(cache ports.ResultCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithRegistry sets the format registry Open uses to decode network files.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.formats = r
	}
}

// New creates an engine over an already built network.
func New(net *domain.Network, opts ...Option) (*Engine, error) {
	if net == nil {
		return nil, errors.New("network is required")
	}
	eng := &Engine{network: net}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so the elimination engine gets a usable one.
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("network", net.Name())

	eng.eliminator = elimination.New(elimination.WithLogger(eng.logger))
	eng.oracle = ball.New(net)
	eng.fingerprint = Fingerprint(net)
	eng.locks = keylock.New()
	return eng, nil
}

// Open reads the network at path, choosing the decoder by file extension.
func Open(path string, opts ...Option) (*Engine, error) {
	probe := &Engine{}
	for _, opt := range opts {
		opt(probe)
	}
	formats := probe.formats
	if formats == nil {
		formats = registry.Default()
	}

	net, err := formats.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load network %s: %w", path, err)
	}
	return New(net, opts...)
}

// Network returns the network the engine answers queries about.
func (e *Engine) Network() *domain.Network {
	return e.network
}

// Fingerprint returns the content hash of the engine's network.
func (e *Engine) Fingerprint() string {
	return e.fingerprint
}

// Inspect returns the network definition for visualization or introspection tools.
func (e *Engine) Inspect() []domain.Definition {
	return e.network.Definitions()
}

// Query answers P(q.Variable = q.Value | q.Evidence) by variable elimination.
func (e *Engine) Query(ctx context.Context, q domain.ProbabilityQuery) (domain.QueryResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.QueryResult{}, err
	}

	start := time.Now()
	event := &domain.QueryEvent{Timestamp: start, Kind: domain.KindProbability, Query: q.String()}
	defer e.emit(ctx, event, start)

	var result domain.QueryResult
	key := e.probabilityKey(q)
	err := e.once(ctx, key, func(ctx context.Context) error {
		if answer, ok := e.lookup(ctx, key); ok && answer.Result != nil {
			event.Cached = true
			result = *answer.Result
			return nil
		}

		r, err := e.eliminator.Answer(e.network, q)
		if err != nil {
			return err
		}
		result = r
		// Undefined answers are not cached: they do not survive JSON encoding.
		if r.Check() == nil {
			e.store(ctx, key, &domain.Answer{Kind: domain.KindProbability, Result: &r})
		}
		return nil
	})
	if err != nil {
		event.Err = err
		return domain.QueryResult{}, err
	}
	event.Result = &result
	return result, nil
}

// Independent reports whether q.A and q.B are conditionally independent given q.Evidence.
func (e *Engine) Independent(ctx context.Context, q domain.IndependenceQuery) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	start := time.Now()
	event := &domain.QueryEvent{Timestamp: start, Kind: domain.KindIndependence, Query: q.String()}
	defer e.emit(ctx, event, start)

	var independent bool
	key := e.independenceKey(q)
	err := e.once(ctx, key, func(ctx context.Context) error {
		if answer, ok := e.lookup(ctx, key); ok && answer.Independent != nil {
			event.Cached = true
			independent = *answer.Independent
			return nil
		}

		ind, err := e.oracle.Independent(q.A, q.B, q.Evidence)
		if err != nil {
			return err
		}
		independent = ind
		e.store(ctx, key, &domain.Answer{Kind: domain.KindIndependence, Independent: &ind})
		return nil
	})
	if err != nil {
		event.Err = err
		return false, err
	}
	event.Independent = &independent
	return independent, nil
}

// once runs fn under the lock for key when a cache is configured, so concurrent
// identical queries compute the answer once and the rest read it back.
func (e *Engine) once(ctx context.Context, key string, fn func(context.Context) error) error {
	if e.cache == nil {
		return fn(ctx)
	}
	return e.locks.WithLock(ctx, key, fn)
}

func (e *Engine) emit(ctx context.Context, event *domain.QueryEvent, start time.Time) {
	event.Duration = time.Since(start)
	if event.Err != nil {
		e.logger.Debug("query failed", "kind", event.Kind, "query", event.Query, "error", event.Err)
	}
	if e.hooks.OnQuery != nil {
		e.hooks.OnQuery(ctx, event)
	}
}

// probabilityKey identifies q within the engine's network. Names and outcomes may contain
// any character, so the parts are length-prefixed and hashed instead of joined.
// Evidence is hashed in sorted name order; the elimination order is kept as given.
func (e *Engine) probabilityKey(q domain.ProbabilityQuery) string {
	k := newKeyHash()
	k.part(q.Variable)
	k.part(q.Value)
	k.evidence(q.Evidence)
	k.count(len(q.Order))
	for _, v := range q.Order {
		k.part(v)
	}
	return e.fingerprint + ":" + domain.KindProbability + ":" + k.sum()
}

// independenceKey identifies q within the engine's network.
func (e *Engine) independenceKey(q domain.IndependenceQuery) string {
	k := newKeyHash()
	k.part(q.A)
	k.part(q.B)
	k.evidence(q.Evidence)
	return e.fingerprint + ":" + domain.KindIndependence + ":" + k.sum()
}

type keyHash struct {
	d *xxhash.Digest
}

func newKeyHash() keyHash {
	return keyHash{d: xxhash.New()}
}

func (k keyHash) count(n int) {
	_, _ = k.d.WriteString(strconv.Itoa(n))
	_, _ = k.d.WriteString(";")
}

func (k keyHash) part(s string) {
	k.count(len(s))
	_, _ = k.d.WriteString(s)
}

func (k keyHash) evidence(ev domain.Evidence) {
	names := ev.Names()
	k.count(len(names))
	for _, name := range names {
		k.part(name)
		k.part(ev[name])
	}
}

func (k keyHash) sum() string {
	return strconv.FormatUint(k.d.Sum64(), 16)
}

func (e *Engine) lookup(ctx context.Context, key string) (*domain.Answer, bool) {
	if e.cache == nil {
		return nil, false
	}
	answer, err := e.cache.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			e.logger.Warn("cache load failed", "key", key, "error", err)
		}
		return nil, false
	}
	return answer, true
}

func (e *Engine) store(ctx context.Context, key string, answer *domain.Answer) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Save(ctx, key, answer); err != nil {
		e.logger.Warn("cache save failed", "key", key, "error", err)
	}
}

// Fingerprint hashes the structure and parameters of net.
// Two networks with the same variables, outcomes, parents and tables in the same
// order share a fingerprint regardless of their names.
func Fingerprint(net *domain.Network) string {
	d := xxhash.New()
	sep := []byte{0}
	for _, def := range net.Definitions() {
		_, _ = d.WriteString(def.Name)
		_, _ = d.Write(sep)
		for _, o := range def.Outcomes {
			_, _ = d.WriteString(o)
			_, _ = d.Write(sep)
		}
		_, _ = d.WriteString("|")
		for _, p := range def.Parents {
			_, _ = d.WriteString(p)
			_, _ = d.Write(sep)
		}
		_, _ = d.WriteString("|")
		for _, p := range def.Table {
			_, _ = d.WriteString(strconv.FormatUint(math.Float64bits(p), 16))
			_, _ = d.Write(sep)
		}
		_, _ = d.WriteString("\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
