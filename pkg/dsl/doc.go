/*
Package dsl provides a fluent Go builder for Bayesian networks.

It is an alternative to the XML and YAML loaders, useful for tests, examples and
networks generated by code.

Example usage:

	package main

	import (
		"github.com/michal-shasha/bayesnet/pkg/dsl"
	)

	func main() {
		b := dsl.New("sprinkler")

		b.Add("Rain").Binary().Table(0.2, 0.8)

		b.Add("Sprinkler").Binary().
			Given("Rain").
			Table(0.01, 0.99, 0.4, 0.6)

		b.Add("WetGrass").Binary().
			Given("Sprinkler", "Rain").
			Table(0.99, 0.01, 0.9, 0.1, 0.8, 0.2, 0.0, 1.0)

		net, err := b.Build()
		// ... pass net to bayesnet.New(net)
	}
*/
package dsl
