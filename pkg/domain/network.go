package domain

import (
	"fmt"
	"math"
	"slices"
)

// tableTolerance bounds how far a CPT row may drift from summing to one.
const tableTolerance = 1e-3

// Network is a directed acyclic graph of discrete variables.
// It is immutable once NewNetwork returns and safe to share between goroutines.
type Network struct {
	name  string
	nodes []Node
	index map[string]int
}

// NewNetwork validates the definitions and builds a Network.
// Nodes keep the order of defs. Every problem found is reported in a single *NetworkError.
func NewNetwork(name string, defs []Definition) (*Network, error) {
	net := &Network{
		name:  name,
		nodes: make([]Node, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}

	var problems []string
	for _, d := range defs {
		if d.Name == "" {
			problems = append(problems, "variable with empty name")
			continue
		}
		if _, dup := net.index[d.Name]; dup {
			problems = append(problems, fmt.Sprintf("variable %q defined twice", d.Name))
			continue
		}
		if len(d.Outcomes) == 0 {
			problems = append(problems, fmt.Sprintf("variable %q has no outcomes", d.Name))
		}
		seen := make(map[string]bool, len(d.Outcomes))
		for _, o := range d.Outcomes {
			if seen[o] {
				problems = append(problems, fmt.Sprintf("variable %q repeats outcome %q", d.Name, o))
			}
			seen[o] = true
		}
		net.index[d.Name] = len(net.nodes)
		net.nodes = append(net.nodes, Node{
			Variable: Variable{Name: d.Name, Outcomes: slices.Clone(d.Outcomes)},
			Table:    slices.Clone(d.Table),
		})
	}

	// Parents are resolved in a second pass so definitions may reference later variables.
	for _, d := range defs {
		i, ok := net.index[d.Name]
		if !ok || len(net.nodes[i].Parents) > 0 {
			continue
		}
		for _, p := range d.Parents {
			pi, ok := net.index[p]
			if !ok {
				problems = append(problems, fmt.Sprintf("variable %q has unknown parent %q", d.Name, p))
				continue
			}
			if slices.Contains(net.nodes[i].Parents, pi) {
				problems = append(problems, fmt.Sprintf("variable %q lists parent %q twice", d.Name, p))
				continue
			}
			net.nodes[i].Parents = append(net.nodes[i].Parents, pi)
			net.nodes[pi].Children = append(net.nodes[pi].Children, i)
		}
	}

	if len(problems) == 0 {
		if cycle := net.findCycle(); cycle != "" {
			problems = append(problems, fmt.Sprintf("cycle through %q", cycle))
		}
	}
	if len(problems) == 0 {
		for i := range net.nodes {
			problems = append(problems, net.checkTable(i)...)
		}
	}

	if len(problems) > 0 {
		return nil, &NetworkError{Problems: problems}
	}
	return net, nil
}

func (n *Network) checkTable(i int) []string {
	node := &n.nodes[i]
	want := len(node.Outcomes)
	for _, p := range node.Parents {
		want *= len(n.nodes[p].Outcomes)
	}
	if len(node.Table) != want {
		return []string{fmt.Sprintf("variable %q: table has %d entries, want %d", node.Name, len(node.Table), want)}
	}

	var problems []string
	k := len(node.Outcomes)
	for start := 0; start < len(node.Table); start += k {
		sum := 0.0
		for _, p := range node.Table[start : start+k] {
			if p < 0 || p > 1 || math.IsNaN(p) {
				problems = append(problems, fmt.Sprintf("variable %q: probability %v out of range", node.Name, p))
			}
			sum += p
		}
		if math.Abs(sum-1) > tableTolerance {
			problems = append(problems, fmt.Sprintf("variable %q: table row %d sums to %v", node.Name, start/k, sum))
		}
	}
	return problems
}

// findCycle returns the name of a node on a parent cycle, or "" if the graph is acyclic.
func (n *Network) findCycle() string {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(n.nodes))

	var visit func(i int) int
	visit = func(i int) int {
		color[i] = grey
		for _, p := range n.nodes[i].Parents {
			switch color[p] {
			case grey:
				return p
			case white:
				if c := visit(p); c >= 0 {
					return c
				}
			}
		}
		color[i] = black
		return -1
	}

	for i := range n.nodes {
		if color[i] == white {
			if c := visit(i); c >= 0 {
				return n.nodes[c].Name
			}
		}
	}
	return ""
}

// Name returns the label the network was built with (usually its source file).
func (n *Network) Name() string {
	return n.name
}

// Len returns the number of nodes.
func (n *Network) Len() int {
	return len(n.nodes)
}

// Node returns the node at index i. The returned node must not be modified.
func (n *Network) Node(i int) *Node {
	return &n.nodes[i]
}

// Lookup returns the index of the named variable.
func (n *Network) Lookup(name string) (int, error) {
	i, ok := n.index[name]
	if !ok {
		return -1, notFound("variable %q", name)
	}
	return i, nil
}

// Has reports whether the network defines the named variable.
func (n *Network) Has(name string) bool {
	_, ok := n.index[name]
	return ok
}

// CheckOutcome returns ErrNotFound unless name is a variable with the given outcome.
func (n *Network) CheckOutcome(name, value string) error {
	i, err := n.Lookup(name)
	if err != nil {
		return err
	}
	if !n.nodes[i].HasOutcome(value) {
		return notFound("outcome %q of variable %q", value, name)
	}
	return nil
}

// CheckEvidence validates every variable and outcome referenced by ev.
func (n *Network) CheckEvidence(ev Evidence) error {
	for _, name := range ev.Names() {
		if err := n.CheckOutcome(name, ev[name]); err != nil {
			return fmt.Errorf("evidence: %w", err)
		}
	}
	return nil
}

// Names returns variable names in definition order.
func (n *Network) Names() []string {
	names := make([]string, len(n.nodes))
	for i := range n.nodes {
		names[i] = n.nodes[i].Name
	}
	return names
}

// ParentNames returns the names of node i's parents in parent order.
func (n *Network) ParentNames(i int) []string {
	parents := n.nodes[i].Parents
	names := make([]string, len(parents))
	for j, p := range parents {
		names[j] = n.nodes[p].Name
	}
	return names
}

// IsAncestor reports whether a is x or an ancestor of x, following parent edges upward.
// The graph is acyclic, so the recursion needs no visited set.
func (n *Network) IsAncestor(a, x int) bool {
	if a == x {
		return true
	}
	for _, p := range n.nodes[x].Parents {
		if n.IsAncestor(a, p) {
			return true
		}
	}
	return false
}

// Rows walks every row of node i's CPT in authoring order.
// The assignment slice is reused between calls; fn must copy it to keep it.
// Iteration stops early when fn returns false.
func (n *Network) Rows(i int, fn func(Row) bool) {
	node := &n.nodes[i]
	domains := make([][]string, 0, len(node.Parents)+1)
	for _, p := range node.Parents {
		domains = append(domains, n.nodes[p].Outcomes)
	}
	domains = append(domains, node.Outcomes)

	// Mixed-radix odometer: the last digit (own outcome) turns fastest.
	digits := make([]int, len(domains))
	assignment := make([]string, len(domains))
	for k, d := range domains {
		if len(d) == 0 {
			return
		}
		assignment[k] = d[0]
	}

	for _, p := range node.Table {
		if !fn(Row{Assignment: assignment, Probability: p}) {
			return
		}
		for k := len(digits) - 1; k >= 0; k-- {
			digits[k]++
			if digits[k] < len(domains[k]) {
				assignment[k] = domains[k][digits[k]]
				break
			}
			digits[k] = 0
			assignment[k] = domains[k][0]
		}
	}
}

// Definitions returns the serializable form of the network in definition order.
func (n *Network) Definitions() []Definition {
	defs := make([]Definition, len(n.nodes))
	for i := range n.nodes {
		node := &n.nodes[i]
		defs[i] = Definition{
			Variable: Variable{Name: node.Name, Outcomes: slices.Clone(node.Outcomes)},
			Parents:  n.ParentNames(i),
			Table:    slices.Clone(node.Table),
		}
	}
	return defs
}
