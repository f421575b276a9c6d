// Package factor implements the sparse probability factors used by variable elimination.
//
// A Factor maps assignments over an ordered scope to real numbers. Assignments that are
// not stored are implicit zeros, so factors restricted by evidence stay small.
package factor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// keySep joins assignment values into a map key. Outcome labels never contain it.
const keySep = "\x1f"

// Counters accumulates the arithmetic performed during one query evaluation.
type Counters struct {
	Additions       int
	Multiplications int
}

// Row is one stored assignment of a factor.
type Row struct {
	Assignment []string
	Value      float64
}

// Factor is a sparse function from assignments over Scope to real numbers.
// Rows keep insertion order so iteration, and therefore float summation, is deterministic.
type Factor struct {
	scope []string
	rows  []Row
	index map[string]int
}

// New creates an empty factor over the given scope.
func New(scope ...string) *Factor {
	return &Factor{
		scope: slices.Clone(scope),
		index: make(map[string]int),
	}
}

// FromNode builds the factor of node i restricted by evidence.
// The scope is the node's parents in parent order followed by the node itself. A CPT row
// is kept only if it agrees with every evidence entry on those variables.
func FromNode(net *domain.Network, i int, evidence domain.Evidence) *Factor {
	scope := append(net.ParentNames(i), net.Node(i).Name)
	f := New(scope...)

	net.Rows(i, func(r domain.Row) bool {
		if consistent(scope, r.Assignment, evidence) {
			f.Set(r.Assignment, r.Probability)
		}
		return true
	})
	return f
}

// Scope returns a copy of the factor's variable order.
func (f *Factor) Scope() []string {
	return slices.Clone(f.scope)
}

// Width returns the number of variables in scope.
func (f *Factor) Width() int {
	return len(f.scope)
}

// Len returns the number of stored (non-implicit) rows.
func (f *Factor) Len() int {
	return len(f.rows)
}

// Contains reports whether name is in the factor's scope.
func (f *Factor) Contains(name string) bool {
	return slices.Contains(f.scope, name)
}

// Rows returns a copy of the stored rows in insertion order.
func (f *Factor) Rows() []Row {
	out := make([]Row, len(f.rows))
	for i, r := range f.rows {
		out[i] = Row{Assignment: slices.Clone(r.Assignment), Value: r.Value}
	}
	return out
}

// Set stores value for the assignment, replacing any previous value.
// The assignment must list one value per scope variable, in scope order.
func (f *Factor) Set(assignment []string, value float64) {
	if len(assignment) != len(f.scope) {
		panic(fmt.Sprintf("factor: assignment of width %d for scope %v", len(assignment), f.scope))
	}
	key := strings.Join(assignment, keySep)
	if i, ok := f.index[key]; ok {
		f.rows[i].Value = value
		return
	}
	f.index[key] = len(f.rows)
	f.rows = append(f.rows, Row{Assignment: slices.Clone(assignment), Value: value})
}

// Get returns the value stored for the assignment and whether it is present.
func (f *Factor) Get(assignment ...string) (float64, bool) {
	i, ok := f.index[strings.Join(assignment, keySep)]
	if !ok {
		return 0, false
	}
	return f.rows[i].Value, true
}

// Sum adds every stored value without touching any counters.
func (f *Factor) Sum() float64 {
	total := 0.0
	for _, r := range f.rows {
		total += r.Value
	}
	return total
}

func (f *Factor) String() string {
	return fmt.Sprintf("Factor%v[%d rows]", f.scope, len(f.rows))
}
