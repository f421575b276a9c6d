package domain

import "slices"

// Variable is a discrete random variable.
// Outcome order is significant: it fixes the row layout of every CPT that mentions the variable.
type Variable struct {
	Name     string   `json:"name" yaml:"name"`
	Outcomes []string `json:"outcomes" yaml:"outcomes"`
}

// HasOutcome reports whether value is one of the variable's outcomes.
func (v Variable) HasOutcome(value string) bool {
	return slices.Contains(v.Outcomes, value)
}

// Definition is the serializable description of one network node.
// Table lists probabilities in authoring order: the first parent varies slowest
// and the node's own outcome varies fastest.
type Definition struct {
	Variable `yaml:",inline"`
	Parents  []string  `json:"parents,omitempty" yaml:"parents,omitempty"`
	Table    []float64 `json:"table" yaml:"table"`
}

// Node is a variable inside a Network.
// Parents and Children are indices into the owning Network.
type Node struct {
	Variable
	Parents  []int
	Children []int
	Table    []float64
}

// Row is one line of a node's conditional probability table.
// Assignment holds the parent outcomes in parent order followed by the node's own outcome.
type Row struct {
	Assignment  []string
	Probability float64
}
