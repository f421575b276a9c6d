// Package query parses the textual query syntax used by the batch runner and the CLI.
//
// Two forms are recognised:
//
//	P(B=T|J=T,M=T) A-E     probability query with elimination order A, E
//	B-E|J=T                independence query between B and E given J=T
//
// Whitespace around separators is ignored. The elimination order and the evidence
// may both be empty.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// ErrSyntax is returned for lines that match neither query form.
var ErrSyntax = errors.New("syntax error")

// Parsed is the result of parsing one line. Exactly one of the query fields is set.
type Parsed struct {
	Kind         string
	Probability  *domain.ProbabilityQuery
	Independence *domain.IndependenceQuery
}

// Parse reads one query line.
func Parse(line string) (Parsed, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "P(") {
		q, err := ParseProbability(line)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Kind: domain.KindProbability, Probability: &q}, nil
	}
	q, err := ParseIndependence(line)
	if err != nil {
		return Parsed{}, err
	}
	return Parsed{Kind: domain.KindIndependence, Independence: &q}, nil
}

// ParseProbability reads "P(Q=q|E1=e1,...) H1-H2-...".
func ParseProbability(line string) (domain.ProbabilityQuery, error) {
	line = strings.TrimSpace(line)
	body, ok := strings.CutPrefix(line, "P(")
	if !ok {
		return domain.ProbabilityQuery{}, syntaxf(line, "probability query must start with \"P(\"")
	}
	end := strings.LastIndex(body, ")")
	if end < 0 {
		return domain.ProbabilityQuery{}, syntaxf(line, "missing \")\"")
	}
	inner, tail := body[:end], strings.TrimSpace(body[end+1:])

	head, given, _ := strings.Cut(inner, "|")
	variable, value, err := assignment(head)
	if err != nil {
		return domain.ProbabilityQuery{}, syntaxf(line, "query variable: %v", err)
	}
	evidence, err := ParseEvidence(given)
	if err != nil {
		return domain.ProbabilityQuery{}, syntaxf(line, "%v", err)
	}

	var order []string
	if tail != "" {
		for _, name := range strings.Split(tail, "-") {
			name = strings.TrimSpace(name)
			if name == "" {
				return domain.ProbabilityQuery{}, syntaxf(line, "empty name in elimination order")
			}
			order = append(order, name)
		}
	}

	return domain.ProbabilityQuery{
		Variable: variable,
		Value:    value,
		Evidence: evidence,
		Order:    order,
	}, nil
}

// ParseIndependence reads "A-B|E1=e1,...".
func ParseIndependence(line string) (domain.IndependenceQuery, error) {
	line = strings.TrimSpace(line)
	pair, given, _ := strings.Cut(line, "|")

	names := strings.Split(pair, "-")
	if len(names) != 2 {
		return domain.IndependenceQuery{}, syntaxf(line, "expected two variables joined by \"-\"")
	}
	a, b := strings.TrimSpace(names[0]), strings.TrimSpace(names[1])
	if a == "" || b == "" {
		return domain.IndependenceQuery{}, syntaxf(line, "empty variable name")
	}

	evidence, err := ParseEvidence(given)
	if err != nil {
		return domain.IndependenceQuery{}, syntaxf(line, "%v", err)
	}
	return domain.IndependenceQuery{A: a, B: b, Evidence: evidence}, nil
}

// ParseEvidence reads a comma separated list of NAME=value pairs.
// An empty string yields empty evidence. A variable may be observed only once.
func ParseEvidence(s string) (domain.Evidence, error) {
	evidence := make(domain.Evidence)
	if strings.TrimSpace(s) == "" {
		return evidence, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, value, err := assignment(part)
		if err != nil {
			return nil, fmt.Errorf("evidence: %w", err)
		}
		if prev, ok := evidence[name]; ok && prev != value {
			return nil, fmt.Errorf("evidence: %q observed as both %q and %q", name, prev, value)
		}
		evidence[name] = value
	}
	return evidence, nil
}

func assignment(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return "", "", fmt.Errorf("expected NAME=value, got %q", strings.TrimSpace(s))
	}
	return name, value, nil
}

func syntaxf(line, format string, args ...any) error {
	return fmt.Errorf("%w in %q: %s", ErrSyntax, line, fmt.Sprintf(format, args...))
}
