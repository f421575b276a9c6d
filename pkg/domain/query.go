package domain

import (
	"fmt"
	"math"
	"strings"
)

// Query kinds, used as metric labels and cache namespaces.
const (
	KindProbability  = "probability"
	KindIndependence = "independence"
)

// ProbabilityQuery asks for P(Variable=Value | Evidence), eliminating hidden variables in Order.
type ProbabilityQuery struct {
	Variable string   `json:"variable" mapstructure:"variable"`
	Value    string   `json:"value" mapstructure:"value"`
	Evidence Evidence `json:"evidence,omitempty" mapstructure:"evidence"`
	Order    []string `json:"order,omitempty" mapstructure:"order"`
}

// String renders the query in the input syntax: "P(Q=q|E=e) H1-H2".
func (q ProbabilityQuery) String() string {
	var sb strings.Builder
	sb.WriteString("P(")
	sb.WriteString(q.Variable)
	sb.WriteString("=")
	sb.WriteString(q.Value)
	if len(q.Evidence) > 0 {
		sb.WriteString("|")
		sb.WriteString(q.Evidence.String())
	}
	sb.WriteString(")")
	if len(q.Order) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(q.Order, "-"))
	}
	return sb.String()
}

// IndependenceQuery asks whether A and B are independent given Evidence.
type IndependenceQuery struct {
	A        string   `json:"a" mapstructure:"a"`
	B        string   `json:"b" mapstructure:"b"`
	Evidence Evidence `json:"evidence,omitempty" mapstructure:"evidence"`
}

// String renders the query in the input syntax: "A-B|E=e".
func (q IndependenceQuery) String() string {
	return q.A + "-" + q.B + "|" + q.Evidence.String()
}

// QueryResult is the answer to a ProbabilityQuery together with the operation counts
// spent computing it.
type QueryResult struct {
	Probability     float64 `json:"probability"`
	Additions       int     `json:"additions"`
	Multiplications int     `json:"multiplications"`
}

// Check returns an error wrapping ErrUndefinedProbability when the probability is NaN or
// infinite. Inference itself never special-cases zero-probability evidence; callers that
// present or serialize answers use Check to report it.
func (r QueryResult) Check() error {
	if math.IsNaN(r.Probability) || math.IsInf(r.Probability, 0) {
		return fmt.Errorf("%w: the evidence has probability zero", ErrUndefinedProbability)
	}
	return nil
}

// Answer is the cacheable outcome of either query kind.
type Answer struct {
	Kind        string       `json:"kind"`
	Result      *QueryResult `json:"result,omitempty"`
	Independent *bool        `json:"independent,omitempty"`
}
