package elimination_test

import (
	"math"
	"testing"

	"github.com/michal-shasha/bayesnet/internal/elimination"
	"github.com/michal-shasha/bayesnet/internal/factor"
	"github.com/michal-shasha/bayesnet/internal/testutils"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_SprinklerScenario(t *testing.T) {
	net := testutils.Sprinkler(t)
	eng := elimination.New()

	res, err := eng.Answer(net, domain.ProbabilityQuery{
		Variable: "Rain",
		Value:    "true",
		Evidence: domain.Evidence{"WetGrass": "true"},
		Order:    []string{"Sprinkler"},
	})
	require.NoError(t, err)

	// 0.2*(0.01*0.99 + 0.99*0.8) / (0.16038 + 0.8*0.4*0.9)
	assert.Equal(t, 0.35769, res.Probability)
	assert.Equal(t, 3, res.Additions)
	assert.Equal(t, 6, res.Multiplications)
}

func TestAnswer_Alarm(t *testing.T) {
	net := testutils.Alarm(t)
	eng := elimination.New()

	tests := []struct {
		name  string
		query domain.ProbabilityQuery
		want  domain.QueryResult
	}{
		{
			name: "burglary given both calls, A-E",
			query: domain.ProbabilityQuery{
				Variable: "B", Value: "T",
				Evidence: domain.Evidence{"J": "T", "M": "T"},
				Order:    []string{"A", "E"},
			},
			want: domain.QueryResult{Probability: 0.28417, Additions: 7, Multiplications: 16},
		},
		{
			name: "burglary given both calls, E-A",
			query: domain.ProbabilityQuery{
				Variable: "B", Value: "T",
				Evidence: domain.Evidence{"J": "T", "M": "T"},
				Order:    []string{"E", "A"},
			},
			want: domain.QueryResult{Probability: 0.28417, Additions: 7, Multiplications: 16},
		},
		{
			name: "no burglary given both calls",
			query: domain.ProbabilityQuery{
				Variable: "B", Value: "F",
				Evidence: domain.Evidence{"J": "T", "M": "T"},
				Order:    []string{"A", "E"},
			},
			want: domain.QueryResult{Probability: 0.71583, Additions: 7, Multiplications: 16},
		},
		{
			name: "john calls given burglary, M eliminated last",
			query: domain.ProbabilityQuery{
				Variable: "J", Value: "T",
				Evidence: domain.Evidence{"B": "T"},
				Order:    []string{"A", "E", "M"},
			},
			want: domain.QueryResult{Probability: 0.84902, Additions: 7, Multiplications: 12},
		},
		{
			name: "john calls given burglary, M pruned first",
			query: domain.ProbabilityQuery{
				Variable: "J", Value: "T",
				Evidence: domain.Evidence{"B": "T"},
				Order:    []string{"M", "E", "A"},
			},
			want: domain.QueryResult{Probability: 0.84902, Additions: 5, Multiplications: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.Answer(net, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswer_CountersDoNotLeak(t *testing.T) {
	net := testutils.Alarm(t)
	eng := elimination.New()
	q := domain.ProbabilityQuery{
		Variable: "B", Value: "T",
		Evidence: domain.Evidence{"J": "T", "M": "T"},
		Order:    []string{"A", "E"},
	}

	first, err := eng.Answer(net, q)
	require.NoError(t, err)
	second, err := eng.Answer(net, q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnswer_AllPrunedNoArithmetic(t *testing.T) {
	net := testutils.Collider(t)
	res, err := elimination.New().Answer(net, domain.ProbabilityQuery{
		Variable: "A", Value: "T",
		Order: []string{"B", "C", "D"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QueryResult{Probability: 0.5}, res)
}

// bruteForce multiplies every node factor, sums out all but the query and normalizes.
func bruteForce(t *testing.T, net *domain.Network, q domain.ProbabilityQuery) float64 {
	t.Helper()
	var c factor.Counters
	joint := factor.FromNode(net, 0, q.Evidence)
	for i := 1; i < net.Len(); i++ {
		joint = factor.Multiply(joint, factor.FromNode(net, i, q.Evidence), &c)
	}
	for _, name := range net.Names() {
		if name == q.Variable {
			continue
		}
		var err error
		joint, err = factor.SumOut(joint, name, &c)
		require.NoError(t, err)
	}
	factor.Normalize(joint, &c)
	return factor.Value(joint, q.Variable, q.Value)
}

func TestAnswer_PruningPreservesAnswer(t *testing.T) {
	tests := []struct {
		name  string
		net   func(testing.TB) *domain.Network
		query domain.ProbabilityQuery
	}{
		{
			name: "collider with observed descendant",
			net:  testutils.Collider,
			query: domain.ProbabilityQuery{
				Variable: "A", Value: "T",
				Evidence: domain.Evidence{"D": "T"},
				Order:    []string{"B", "C"},
			},
		},
		{
			name: "collider order reversed",
			net:  testutils.Collider,
			query: domain.ProbabilityQuery{
				Variable: "A", Value: "T",
				Evidence: domain.Evidence{"D": "T"},
				Order:    []string{"C", "B"},
			},
		},
		{
			name: "chain blocked by evidence",
			net:  testutils.Chain,
			query: domain.ProbabilityQuery{
				Variable: "C", Value: "T",
				Evidence: domain.Evidence{"A": "T"},
				Order:    []string{"B"},
			},
		},
		{
			name: "alarm with irrelevant leaf",
			net:  testutils.Alarm,
			query: domain.ProbabilityQuery{
				Variable: "J", Value: "T",
				Evidence: domain.Evidence{"B": "T"},
				Order:    []string{"M", "E", "A"},
			},
		},
		{
			name: "alarm marginal of a root",
			net:  testutils.Alarm,
			query: domain.ProbabilityQuery{
				Variable: "E", Value: "T",
				Order:    []string{"B", "A", "J", "M"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := tt.net(t)
			got, err := elimination.New().Answer(net, tt.query)
			require.NoError(t, err)
			assert.InDelta(t, elimination.Round(bruteForce(t, net, tt.query)), got.Probability, 1e-5)
		})
	}
}

func TestAnswer_CollideWithDescendantLiteral(t *testing.T) {
	net := testutils.Collider(t)
	res, err := elimination.New().Answer(net, domain.ProbabilityQuery{
		Variable: "A", Value: "T",
		Evidence: domain.Evidence{"D": "T"},
		Order:    []string{"B", "C"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QueryResult{Probability: 0.71754, Additions: 7, Multiplications: 14}, res)
}

func TestAnswer_Errors(t *testing.T) {
	net := testutils.Sprinkler(t)
	eng := elimination.New()

	tests := []struct {
		name  string
		query domain.ProbabilityQuery
		want  error
	}{
		{
			name:  "unknown query variable",
			query: domain.ProbabilityQuery{Variable: "Snow", Value: "true"},
			want:  domain.ErrNotFound,
		},
		{
			name:  "unknown query outcome",
			query: domain.ProbabilityQuery{Variable: "Rain", Value: "maybe"},
			want:  domain.ErrNotFound,
		},
		{
			name: "unknown evidence variable",
			query: domain.ProbabilityQuery{
				Variable: "Rain", Value: "true",
				Evidence: domain.Evidence{"Fog": "true"},
			},
			want: domain.ErrNotFound,
		},
		{
			name: "unknown hidden variable",
			query: domain.ProbabilityQuery{
				Variable: "Rain", Value: "true",
				Evidence: domain.Evidence{"WetGrass": "true"},
				Order:    []string{"Hail"},
			},
			want: domain.ErrNotFound,
		},
		{
			name: "variable eliminated twice",
			query: domain.ProbabilityQuery{
				Variable: "Rain", Value: "true",
				Evidence: domain.Evidence{"WetGrass": "true"},
				Order:    []string{"Sprinkler", "Sprinkler"},
			},
			want: domain.ErrInvalidElimination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Answer(net, tt.query)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.12346, elimination.Round(0.123455))
	assert.Equal(t, 0.5, elimination.Round(0.5))
	assert.Equal(t, 0.0, elimination.Round(0.000004))
}

func TestAnswer_ZeroProbabilityEvidence(t *testing.T) {
	net := testutils.Impossible(t)

	res, err := elimination.New().Answer(net, domain.ProbabilityQuery{
		Variable: "X",
		Value:    "T",
		Evidence: domain.Evidence{"Y": "T"},
	})
	require.NoError(t, err)

	// Both joint rows are zero, so normalization divides 0 by 0.
	assert.True(t, math.IsNaN(res.Probability))
	assert.Equal(t, 1, res.Additions)
	assert.Equal(t, 2, res.Multiplications)
	assert.ErrorIs(t, res.Check(), domain.ErrUndefinedProbability)
}
