// Package ball decides conditional independence between two variables with a
// "bayes ball" reachability walk over the network.
//
// The walk starts at the source in the descending mode and moves through the network
// according to whether each visited node is observed:
//
//   - observed, ascending: continue to every parent, descending
//   - observed, descending: blocked
//   - unobserved, ascending: continue to every child, ascending
//   - unobserved, descending: continue to every child ascending, then every parent descending
//
// The target is reachable if any branch arrives at it. The walk is directional and is
// not guaranteed to be symmetric in source and target.
package ball

import (
	"fmt"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

type mode uint8

const (
	descending mode = iota
	ascending
)

func (m mode) String() string {
	if m == ascending {
		return "ascending"
	}
	return "descending"
}

type visit struct {
	node int
	mode mode
}

// Oracle answers reachability and independence questions for one network.
// It holds no per-query state and is safe for concurrent use.
type Oracle struct {
	net *domain.Network
}

// New creates an oracle over net.
func New(net *domain.Network) *Oracle {
	return &Oracle{net: net}
}

// Reachable reports whether the walk from source reaches target given the evidence.
func (o *Oracle) Reachable(source, target string, evidence domain.Evidence) (bool, error) {
	src, err := o.net.Lookup(source)
	if err != nil {
		return false, fmt.Errorf("source: %w", err)
	}
	dst, err := o.net.Lookup(target)
	if err != nil {
		return false, fmt.Errorf("target: %w", err)
	}
	if err := o.net.CheckEvidence(evidence); err != nil {
		return false, err
	}
	return o.reachable(src, dst, o.observed(evidence)), nil
}

// Independent reports whether a and b are independent given the evidence.
func (o *Oracle) Independent(a, b string, evidence domain.Evidence) (bool, error) {
	ok, err := o.Reachable(a, b, evidence)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// IndependentIndex is Independent for already resolved node indices.
// Evidence must have been validated against the network.
func (o *Oracle) IndependentIndex(a, b int, evidence domain.Evidence) bool {
	return !o.reachable(a, b, o.observed(evidence))
}

func (o *Oracle) observed(evidence domain.Evidence) []bool {
	obs := make([]bool, o.net.Len())
	for name := range evidence {
		if i, err := o.net.Lookup(name); err == nil {
			obs[i] = true
		}
	}
	return obs
}

func (o *Oracle) reachable(source, target int, observed []bool) bool {
	visited := make(map[visit]bool)

	var walk func(cur int, m mode) bool
	walk = func(cur int, m mode) bool {
		if cur == target {
			return true
		}
		v := visit{node: cur, mode: m}
		if visited[v] {
			return false
		}
		visited[v] = true

		node := o.net.Node(cur)
		if observed[cur] {
			if m == descending {
				return false
			}
			for _, p := range node.Parents {
				if walk(p, descending) {
					return true
				}
			}
			return false
		}

		for _, c := range node.Children {
			if walk(c, ascending) {
				return true
			}
		}
		if m == descending {
			for _, p := range node.Parents {
				if walk(p, descending) {
					return true
				}
			}
		}
		return false
	}

	return walk(source, descending)
}
