// Package elimination answers conditional probability queries by variable elimination.
package elimination

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/michal-shasha/bayesnet/internal/ball"
	"github.com/michal-shasha/bayesnet/internal/factor"
	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// Engine runs variable elimination over a network.
// It keeps no per-query state, so one Engine may serve concurrent queries.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger used for debug tracing of elimination steps.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an elimination engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Answer computes P(q.Variable = q.Value | q.Evidence), eliminating the hidden variables
// in q.Order. The probability is rounded half-up to five decimals; the counters report the
// additions and multiplications performed for this query only.
func (e *Engine) Answer(net *domain.Network, q domain.ProbabilityQuery) (domain.QueryResult, error) {
	if err := validate(net, q); err != nil {
		return domain.QueryResult{}, err
	}

	var c factor.Counters
	factors := initialize(net, q.Evidence)
	order, factors := e.prune(net, q, factors)

	for _, v := range order {
		var relevant, rest []*factor.Factor
		for _, f := range factors {
			if f.Contains(v) {
				relevant = append(relevant, f)
			} else {
				rest = append(rest, f)
			}
		}
		factor.SortForElimination(relevant)

		product, err := fold(relevant, &c)
		if err != nil {
			return domain.QueryResult{}, fmt.Errorf("eliminating %q: %w", v, err)
		}
		summed, err := factor.SumOut(product, v, &c)
		if err != nil {
			return domain.QueryResult{}, fmt.Errorf("eliminating %q: %w", v, err)
		}
		e.logger.Debug("eliminated variable",
			"variable", v,
			"factors", len(relevant),
			"rows", summed.Len(),
		)
		factors = append(rest, summed)
	}

	result, err := fold(factors, &c)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("combining factors: %w", err)
	}
	if result.Width() > 1 {
		factor.Normalize(result, &c)
	}

	p := factor.Value(result, q.Variable, q.Value)
	return domain.QueryResult{
		Probability:     Round(p),
		Additions:       c.Additions,
		Multiplications: c.Multiplications,
	}, nil
}

// Round rounds p half-up to five decimal places.
func Round(p float64) float64 {
	return math.Floor(p*1e5+0.5) / 1e5
}

func validate(net *domain.Network, q domain.ProbabilityQuery) error {
	if err := net.CheckOutcome(q.Variable, q.Value); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if err := net.CheckEvidence(q.Evidence); err != nil {
		return err
	}
	for _, v := range q.Order {
		if !net.Has(v) {
			return fmt.Errorf("elimination order: %w: variable %q", domain.ErrNotFound, v)
		}
	}
	return nil
}

// initialize builds one evidence-restricted factor per node in network order,
// dropping factors with at most one row.
func initialize(net *domain.Network, evidence domain.Evidence) []*factor.Factor {
	factors := make([]*factor.Factor, 0, net.Len())
	for i := 0; i < net.Len(); i++ {
		local := evidence.Subset(append(net.ParentNames(i), net.Node(i).Name)...)
		f := factor.FromNode(net, i, local)
		if f.Len() > 1 {
			factors = append(factors, f)
		}
	}
	return factors
}

// prune drops from the order, together with every factor mentioning them, the variables
// that are neither ancestors of the query or evidence nor dependent on the query.
func (e *Engine) prune(net *domain.Network, q domain.ProbabilityQuery, factors []*factor.Factor) ([]string, []*factor.Factor) {
	oracle := ball.New(net)
	query, _ := net.Lookup(q.Variable)

	observed := make([]int, 0, len(q.Evidence))
	for _, name := range q.Evidence.Names() {
		i, _ := net.Lookup(name)
		observed = append(observed, i)
	}

	order := make([]string, 0, len(q.Order))
	for _, v := range q.Order {
		vi, _ := net.Lookup(v)
		ancestor := net.IsAncestor(vi, query) || slices.ContainsFunc(observed, func(x int) bool {
			return net.IsAncestor(vi, x)
		})
		if ancestor && !oracle.IndependentIndex(query, vi, q.Evidence) {
			order = append(order, v)
			continue
		}
		e.logger.Debug("pruned variable", "variable", v, "ancestor", ancestor)
		factors = slices.DeleteFunc(factors, func(f *factor.Factor) bool {
			return f.Contains(v)
		})
	}
	return order, factors
}

// fold multiplies the factors left to right.
func fold(factors []*factor.Factor, c *factor.Counters) (*factor.Factor, error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("%w: no factors to combine", domain.ErrInvalidElimination)
	}
	result := factors[0]
	for _, f := range factors[1:] {
		result = factor.Multiply(result, f, c)
	}
	return result, nil
}
