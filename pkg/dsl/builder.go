package dsl

import (
	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// Builder manages the network construction.
type Builder struct {
	name  string
	nodes []*NodeBuilder
	byID  map[string]*NodeBuilder
}

// New creates a new network builder.
func New(name string) *Builder {
	return &Builder{
		name: name,
		byID: make(map[string]*NodeBuilder),
	}
}

// Add creates a new variable in the network.
// If the variable already exists, it returns the existing builder.
func (b *Builder) Add(name string) *NodeBuilder {
	if nb, ok := b.byID[name]; ok {
		return nb
	}
	nb := &NodeBuilder{
		def: domain.Definition{
			Variable: domain.Variable{Name: name},
		},
		builder: b,
	}
	b.byID[name] = nb
	b.nodes = append(b.nodes, nb)
	return nb
}

// Build validates the definitions and returns the network.
// Variables keep the order in which they were added.
func (b *Builder) Build() (*domain.Network, error) {
	defs := make([]domain.Definition, 0, len(b.nodes))
	for _, nb := range b.nodes {
		defs = append(defs, nb.def)
	}
	return domain.NewNetwork(b.name, defs)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *domain.Network {
	net, err := b.Build()
	if err != nil {
		panic(err)
	}
	return net
}
