/*
Package domain contains the core model of a discrete Bayesian network and the
values that flow in and out of the inference engine.

It is kept free of I/O and persistence. Loaders in pkg/adapters build a
Network from files, and the engine in internal/elimination only reads it.

# Key Entities

  - Variable: a named variable with an ordered, finite set of outcomes.
  - Node: a Variable plus its parents, children and conditional probability table.
  - Network: an arena of Nodes addressed by index, immutable once built.
  - Evidence: observed outcomes for a subset of variables.
  - ProbabilityQuery / IndependenceQuery: the two questions the engine answers.
*/
package domain
