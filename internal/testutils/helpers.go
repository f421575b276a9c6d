// Package testutils holds fixture networks shared by package tests.
package testutils

import (
	"testing"

	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// Sprinkler is the Rain -> Sprinkler -> WetGrass v-structure (Rain also points at WetGrass).
func Sprinkler(t testing.TB) *domain.Network {
	t.Helper()
	b := dsl.New("sprinkler")
	b.Add("Rain").Outcomes("true", "false").Table(0.2, 0.8)
	b.Add("Sprinkler").Outcomes("true", "false").
		Given("Rain").
		Table(0.01, 0.99, 0.4, 0.6)
	b.Add("WetGrass").Outcomes("true", "false").
		Given("Sprinkler", "Rain").
		Table(0.99, 0.01, 0.9, 0.1, 0.8, 0.2, 0.0, 1.0)
	return build(t, b)
}

// Alarm is the burglary/earthquake alarm network with two callers.
func Alarm(t testing.TB) *domain.Network {
	t.Helper()
	b := dsl.New("alarm")
	b.Add("B").Binary().Table(0.001, 0.999)
	b.Add("E").Binary().Table(0.002, 0.998)
	b.Add("A").Binary().
		Given("E", "B").
		Table(0.95, 0.05, 0.29, 0.71, 0.94, 0.06, 0.001, 0.999)
	b.Add("J").Binary().Given("A").Table(0.9, 0.1, 0.05, 0.95)
	b.Add("M").Binary().Given("A").Table(0.7, 0.3, 0.01, 0.99)
	return build(t, b)
}

// Chain is A -> B -> C.
func Chain(t testing.TB) *domain.Network {
	t.Helper()
	b := dsl.New("chain")
	b.Add("A").Binary().Table(0.3, 0.7)
	b.Add("B").Binary().Given("A").Table(0.9, 0.1, 0.2, 0.8)
	b.Add("C").Binary().Given("B").Table(0.6, 0.4, 0.25, 0.75)
	return build(t, b)
}

// Fork is the common cause B -> A, B -> C.
func Fork(t testing.TB) *domain.Network {
	t.Helper()
	b := dsl.New("fork")
	b.Add("B").Binary().Table(0.4, 0.6)
	b.Add("A").Binary().Given("B").Table(0.7, 0.3, 0.1, 0.9)
	b.Add("C").Binary().Given("B").Table(0.2, 0.8, 0.5, 0.5)
	return build(t, b)
}

// Collider is the common effect A -> C <- B, with D a child of C.
func Collider(t testing.TB) *domain.Network {
	t.Helper()
	b := dsl.New("collider")
	b.Add("A").Binary().Table(0.5, 0.5)
	b.Add("B").Binary().Table(0.3, 0.7)
	b.Add("C").Binary().Given("A", "B").Table(0.9, 0.1, 0.6, 0.4, 0.5, 0.5, 0.05, 0.95)
	b.Add("D").Binary().Given("C").Table(0.8, 0.2, 0.1, 0.9)
	return build(t, b)
}

// Impossible is X -> Y where Y is never T, so any evidence Y=T has probability zero.
func Impossible(t testing.TB) *domain.Network {
	t.Helper()
	b := dsl.New("impossible")
	b.Add("X").Binary().Table(0.5, 0.5)
	b.Add("Y").Binary().Given("X").Table(0, 1, 0, 1)
	return build(t, b)
}

func build(t testing.TB, b *dsl.Builder) *domain.Network {
	t.Helper()
	net, err := b.Build()
	require.NoError(t, err)
	return net
}
