package registry_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDecoder struct{ called bool }

func (s *stubDecoder) Decode(r io.Reader, name string) (*domain.Network, error) {
	s.called = true
	return domain.NewNetwork(name, []domain.Definition{
		{Variable: domain.Variable{Name: "X", Outcomes: []string{"a", "b"}}, Table: []float64{0.5, 0.5}},
	})
}

func TestDefault_Open(t *testing.T) {
	r := registry.Default()
	assert.Equal(t, []string{".xml", ".yaml", ".yml"}, r.Extensions())

	net, err := r.Open("testdata/alarm_net.xml")
	require.NoError(t, err)
	assert.Equal(t, "alarm_net.xml", net.Name())
	assert.Equal(t, 5, net.Len())

	net, err = r.Open("testdata/chain.yml")
	require.NoError(t, err)
	assert.Equal(t, "chain.yml", net.Name())
	assert.Equal(t, []string{"A", "B", "C"}, net.Names())
}

func TestRegistry_Errors(t *testing.T) {
	r := registry.Default()

	_, err := r.Open("testdata/network.json")
	assert.ErrorContains(t, err, "unsupported network format")

	_, err = r.Open("testdata/missing.xml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistry_RegisterCustom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.BIF")
	require.NoError(t, os.WriteFile(path, []byte("anything"), 0o644))

	stub := &stubDecoder{}
	r := registry.NewRegistry()
	r.Register("bif", stub)

	assert.True(t, r.Supports(path))
	net, err := r.Open(path)
	require.NoError(t, err)
	assert.True(t, stub.called)
	assert.Equal(t, "net.BIF", net.Name())
}
