/*
Package bayesnet answers exact queries over discrete Bayesian networks.

A network is a directed acyclic graph of discrete variables, each carrying a
conditional probability table over its parents. The engine answers two kinds of
question against it:

  - Probability queries, P(Q=q | E1=e1, ...), computed by variable elimination along a
    caller-supplied order. Each answer reports the probability rounded to five decimals
    together with the number of additions and multiplications spent computing it.
  - Independence queries, asking whether two variables are d-separated given a set of
    observations, decided by the Bayes-ball reachability walk.

# Architecture

The core (pkg/domain, internal/factor, internal/elimination, internal/ball) is pure and
synchronous. Adapters read networks from XMLBIF or YAML, cache answers in memory or
Redis, and expose the engine over HTTP, MCP and a batch command line.

# Usage

	eng, err := bayesnet.Open("alarm_net.xml")
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Query(ctx, domain.ProbabilityQuery{
		Variable: "B",
		Value:    "T",
		Evidence: domain.Evidence{"J": "T", "M": "T"},
		Order:    []string{"A", "E"},
	})
	// res.Probability == 0.28417, res.Additions == 7, res.Multiplications == 16

	independent, err := eng.Independent(ctx, domain.IndependenceQuery{A: "B", B: "E"})
	// independent == true

Networks can also be assembled in code with the pkg/dsl builder.
*/
package bayesnet
