// Package yamlnet reads networks written as YAML documents.
//
//	name: sprinkler
//	variables:
//	  - name: Rain
//	    outcomes: [T, F]
//	    table: [0.2, 0.8]
//	  - name: Sprinkler
//	    outcomes: [T, F]
//	    parents: [Rain]
//	    table: [0.01, 0.99, 0.4, 0.6]
//
// Tables follow the same layout as XMLBIF: the first parent varies slowest.
package yamlnet

import (
	"fmt"
	"io"

	"github.com/michal-shasha/bayesnet/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Document is the YAML representation of a network.
type Document struct {
	Name      string              `yaml:"name,omitempty"`
	Variables []domain.Definition `yaml:"variables"`
}

// Decoder implements ports.NetworkDecoder for YAML documents.
type Decoder struct{}

// New creates a YAML decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode reads the document and builds a validated network.
// The document's own name, when present, takes precedence over name.
func (d *Decoder) Decode(r io.Reader, name string) (*domain.Network, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedNetwork, name, err)
	}
	if doc.Name != "" {
		name = doc.Name
	}
	return domain.NewNetwork(name, doc.Variables)
}

// Encode writes net as a YAML document.
func Encode(w io.Writer, net *domain.Network) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Name: net.Name(), Variables: net.Definitions()}); err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	return enc.Close()
}
