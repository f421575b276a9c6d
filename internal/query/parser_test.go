package query_test

import (
	"testing"

	"github.com/michal-shasha/bayesnet/internal/query"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Probability(t *testing.T) {
	tests := []struct {
		line string
		want domain.ProbabilityQuery
	}{
		{
			line: "P(B=T|J=T,M=T) A-E",
			want: domain.ProbabilityQuery{
				Variable: "B", Value: "T",
				Evidence: domain.Evidence{"J": "T", "M": "T"},
				Order:    []string{"A", "E"},
			},
		},
		{
			line: "  P( Rain = true | WetGrass = true )  Sprinkler ",
			want: domain.ProbabilityQuery{
				Variable: "Rain", Value: "true",
				Evidence: domain.Evidence{"WetGrass": "true"},
				Order:    []string{"Sprinkler"},
			},
		},
		{
			line: "P(A=T)",
			want: domain.ProbabilityQuery{Variable: "A", Value: "T", Evidence: domain.Evidence{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := query.Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, domain.KindProbability, got.Kind)
			assert.Nil(t, got.Independence)
			require.NotNil(t, got.Probability)
			assert.Equal(t, tt.want, *got.Probability)
		})
	}
}

func TestParse_Independence(t *testing.T) {
	tests := []struct {
		line string
		want domain.IndependenceQuery
	}{
		{"B-E|", domain.IndependenceQuery{A: "B", B: "E", Evidence: domain.Evidence{}}},
		{"B-E", domain.IndependenceQuery{A: "B", B: "E", Evidence: domain.Evidence{}}},
		{"B-E|J=T", domain.IndependenceQuery{A: "B", B: "E", Evidence: domain.Evidence{"J": "T"}}},
		{"J - M | A=T, B=F", domain.IndependenceQuery{A: "J", B: "M", Evidence: domain.Evidence{"A": "T", "B": "F"}}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := query.Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, domain.KindIndependence, got.Kind)
			require.NotNil(t, got.Independence)
			assert.Equal(t, tt.want, *got.Independence)
		})
	}
}

func TestParse_RoundTripsString(t *testing.T) {
	for _, line := range []string{"P(B=T|J=T,M=T) A-E", "P(A=T)", "B-E|J=T", "B-E|"} {
		got, err := query.Parse(line)
		require.NoError(t, err)
		if got.Probability != nil {
			assert.Equal(t, line, got.Probability.String())
		} else {
			assert.Equal(t, line, got.Independence.String())
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, line := range []string{
		"",
		"P(B=T",
		"P(B|J=T) A",
		"P(B=T|J) A",
		"P(B=T) A--E",
		"P(B=T|J=T,J=F)",
		"A-B-C|",
		"A-|J=T",
		"A-B|J",
		"hello",
	} {
		t.Run(line, func(t *testing.T) {
			_, err := query.Parse(line)
			assert.ErrorIs(t, err, query.ErrSyntax)
		})
	}
}
