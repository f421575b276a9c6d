package ports

import (
	"context"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// QueryEngine is the interface front-ends (HTTP, MCP, batch runner) use to reach the core.
type QueryEngine interface {
	// Query answers P(X=x | evidence) by variable elimination.
	Query(ctx context.Context, q domain.ProbabilityQuery) (domain.QueryResult, error)

	// Independent reports whether two variables are independent given evidence.
	Independent(ctx context.Context, q domain.IndependenceQuery) (bool, error)

	// Network returns the network queries run against.
	Network() *domain.Network
}
