package ports

import (
	"context"
	"testing"
	"time"

	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache implementation
// adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load probability", func(t *testing.T) {
		answer := &domain.Answer{
			Kind:   domain.KindProbability,
			Result: &domain.QueryResult{Probability: 0.28417, Additions: 7, Multiplications: 16},
		}

		err := cache.Save(ctx, key+"-p", answer)
		require.NoError(t, err, "Save should not return error")

		loaded, err := cache.Load(ctx, key+"-p")
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, answer, loaded)
	})

	t.Run("Save and Load independence", func(t *testing.T) {
		yes := true
		answer := &domain.Answer{Kind: domain.KindIndependence, Independent: &yes}

		require.NoError(t, cache.Save(ctx, key+"-i", answer))

		loaded, err := cache.Load(ctx, key+"-i")
		require.NoError(t, err)
		require.NotNil(t, loaded.Independent)
		assert.True(t, *loaded.Independent)
		assert.Nil(t, loaded.Result)
	})

	t.Run("Load Missing", func(t *testing.T) {
		_, err := cache.Load(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Loaded answer is isolated", func(t *testing.T) {
		answer := &domain.Answer{Kind: domain.KindProbability, Result: &domain.QueryResult{Probability: 0.5}}
		require.NoError(t, cache.Save(ctx, key+"-iso", answer))
		answer.Result.Probability = 0.9

		loaded, err := cache.Load(ctx, key+"-iso")
		require.NoError(t, err)
		assert.Equal(t, 0.5, loaded.Result.Probability)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key+"-d", &domain.Answer{Kind: domain.KindProbability}))

		err := cache.Delete(ctx, key+"-d")
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Load(ctx, key+"-d")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})
}
