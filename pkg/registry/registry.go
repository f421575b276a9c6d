// Package registry maps network file extensions to the decoders that read them.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/michal-shasha/bayesnet/pkg/adapters/xmlbif"
	"github.com/michal-shasha/bayesnet/pkg/adapters/yamlnet"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/ports"
)

// Registry manages the available network formats.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]ports.NetworkDecoder
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]ports.NetworkDecoder),
	}
}

// Default returns a registry with the built-in formats: .xml, .yaml and .yml.
func Default() *Registry {
	r := NewRegistry()
	r.Register(".xml", xmlbif.New())
	r.Register(".yaml", yamlnet.New())
	r.Register(".yml", yamlnet.New())
	return r
}

// Register adds a decoder for the extension (with or without the leading dot).
// If a decoder for the extension exists, it is overwritten.
func (r *Registry) Register(ext string, dec ports.NetworkDecoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[normalize(ext)] = dec
}

// Lookup returns the decoder registered for path's extension.
func (r *Registry) Lookup(path string) (ports.NetworkDecoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dec, ok := r.decoders[normalize(filepath.Ext(path))]
	return dec, ok
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Extensions lists the registered extensions in lexical order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Open reads and decodes the network stored at path.
// The network is named after the file's base name.
func (r *Registry) Open(path string) (*domain.Network, error) {
	dec, ok := r.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("unsupported network format %q (known: %s)", filepath.Ext(path), strings.Join(r.Extensions(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network: %w", err)
	}
	defer f.Close()

	return dec.Decode(f, filepath.Base(path))
}

func normalize(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
