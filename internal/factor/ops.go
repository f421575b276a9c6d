package factor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// Multiply joins two factors.
// The result scope is f1's scope followed by the variables of f2 not already in it.
// Every pair of rows that agrees on the shared variables produces one product row and
// counts one multiplication; disagreeing pairs are dropped.
func Multiply(f1, f2 *Factor, c *Counters) *Factor {
	scope := slices.Clone(f1.scope)
	pos := make([]int, len(f2.scope))
	for j, v := range f2.scope {
		k := slices.Index(scope, v)
		if k < 0 {
			k = len(scope)
			scope = append(scope, v)
		}
		pos[j] = k
	}
	shared := len(f1.scope)

	out := New(scope...)
	merged := make([]string, len(scope))
	for _, r1 := range f1.rows {
		copy(merged, r1.Assignment)
	pairs:
		for _, r2 := range f2.rows {
			for j, v := range r2.Assignment {
				k := pos[j]
				if k < shared {
					if merged[k] != v {
						continue pairs
					}
					continue
				}
				merged[k] = v
			}
			c.Multiplications++
			out.Set(merged, r1.Value*r2.Value)
		}
	}
	return out
}

// SumOut marginalizes name out of f.
// The first value landing on a reduced assignment is free; every later one merged
// into the same assignment counts one addition.
func SumOut(f *Factor, name string, c *Counters) (*Factor, error) {
	drop := slices.Index(f.scope, name)
	if drop < 0 {
		return nil, fmt.Errorf("%w: %q is not in scope %v", domain.ErrNotFound, name, f.scope)
	}

	out := New(slices.Delete(slices.Clone(f.scope), drop, drop+1)...)
	reduced := make([]string, 0, len(f.scope)-1)
	for _, r := range f.rows {
		reduced = append(reduced[:0], r.Assignment[:drop]...)
		reduced = append(reduced, r.Assignment[drop+1:]...)

		key := strings.Join(reduced, keySep)
		if i, ok := out.index[key]; ok {
			out.rows[i].Value += r.Value
			c.Additions++
			continue
		}
		out.Set(reduced, r.Value)
	}
	return out, nil
}

// Normalize scales f in place so its values sum to one.
// Summation is counted like SumOut: the first value is free, each further one costs an addition.
func Normalize(f *Factor, c *Counters) {
	total := 0.0
	for i, r := range f.rows {
		if i > 0 {
			c.Additions++
		}
		total += r.Value
	}
	for i := range f.rows {
		f.rows[i].Value /= total
	}
}

// Value returns the value of the first row whose name column equals value, or 0.
// It is meant for a factor already reduced to the query variable.
func Value(f *Factor, name, value string) float64 {
	k := slices.Index(f.scope, name)
	if k < 0 {
		return 0
	}
	for _, r := range f.rows {
		if r.Assignment[k] == value {
			return r.Value
		}
	}
	return 0
}

// Restrict keeps only the rows consistent with evidence on variables in f's scope.
func Restrict(f *Factor, evidence domain.Evidence) *Factor {
	out := New(f.scope...)
	for _, r := range f.rows {
		if consistent(f.scope, r.Assignment, evidence) {
			out.Set(r.Assignment, r.Value)
		}
	}
	return out
}

func consistent(scope, assignment []string, evidence domain.Evidence) bool {
	for k, name := range scope {
		if v, ok := evidence[name]; ok && assignment[k] != v {
			return false
		}
	}
	return true
}
