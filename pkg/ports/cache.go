package ports

import (
	"context"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// ResultCache defines the interface for memoising query answers.
// Keys already identify the network, so one cache can serve several networks.
type ResultCache interface {
	// Save stores the answer under key.
	Save(ctx context.Context, key string, answer *domain.Answer) error

	// Load retrieves the answer stored under key.
	// Returns domain.ErrCacheMiss if nothing is stored.
	Load(ctx context.Context, key string) (*domain.Answer, error)

	// Delete removes the answer stored under key.
	Delete(ctx context.Context, key string) error
}
