package dsl

import "github.com/michal-shasha/bayesnet/pkg/domain"

// NodeBuilder provides a fluent API for configuring a variable.
type NodeBuilder struct {
	def     domain.Definition
	builder *Builder
}

// Outcomes sets the ordered outcome labels of the variable.
func (n *NodeBuilder) Outcomes(outcomes ...string) *NodeBuilder {
	n.def.Outcomes = outcomes
	return n
}

// Binary is shorthand for Outcomes("T", "F").
func (n *NodeBuilder) Binary() *NodeBuilder {
	return n.Outcomes("T", "F")
}

// Given sets the parents of the variable. Their order defines the CPT layout.
func (n *NodeBuilder) Given(parents ...string) *NodeBuilder {
	n.def.Parents = parents
	return n
}

// Table sets the conditional probability table in authoring order:
// the first parent varies slowest and the variable's own outcome fastest.
func (n *NodeBuilder) Table(probabilities ...float64) *NodeBuilder {
	n.def.Table = probabilities
	return n
}

// Build returns the underlying definition.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Definition {
	return n.def
}
