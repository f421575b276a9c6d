package ports

import (
	"io"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// NetworkDecoder defines how a network definition is read from storage.
// This allows the file formats (XML, YAML) to be decoupled from the engine.
type NetworkDecoder interface {
	// Decode reads a complete definition from r and returns a validated network.
	// name labels the network, usually with its source path.
	// Structural problems are reported as domain.ErrMalformedNetwork.
	Decode(r io.Reader, name string) (*domain.Network, error)
}
