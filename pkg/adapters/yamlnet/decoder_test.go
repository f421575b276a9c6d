package yamlnet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/michal-shasha/bayesnet/internal/testutils"
	"github.com/michal-shasha/bayesnet/pkg/adapters/yamlnet"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.NetworkDecoder = (*yamlnet.Decoder)(nil)

const sprinkler = `
name: sprinkler
variables:
  - name: Rain
    outcomes: [T, F]
    table: [0.2, 0.8]
  - name: Sprinkler
    outcomes: [T, F]
    parents: [Rain]
    table: [0.01, 0.99, 0.4, 0.6]
`

func TestDecode(t *testing.T) {
	net, err := yamlnet.New().Decode(strings.NewReader(sprinkler), "file.yaml")
	require.NoError(t, err)

	assert.Equal(t, "sprinkler", net.Name())
	assert.Equal(t, []string{"Rain", "Sprinkler"}, net.Names())

	s, _ := net.Lookup("Sprinkler")
	assert.Equal(t, []string{"Rain"}, net.ParentNames(s))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "variables: [::"},
		{"unknown field", "variables:\n  - name: A\n    outcome: [T]\n"},
		{"bad table", "variables:\n  - name: A\n    outcomes: [T, F]\n    table: [0.1]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := yamlnet.New().Decode(strings.NewReader(tt.doc), tt.name)
			assert.ErrorIs(t, err, domain.ErrMalformedNetwork)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	net := testutils.Alarm(t)

	var buf bytes.Buffer
	require.NoError(t, yamlnet.Encode(&buf, net))

	again, err := yamlnet.New().Decode(&buf, "ignored")
	require.NoError(t, err)
	assert.Equal(t, net.Name(), again.Name())
	assert.Equal(t, net.Definitions(), again.Definitions())
}
