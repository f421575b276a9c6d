package xmlbif_test

import (
	"os"
	"strings"
	"testing"

	"github.com/michal-shasha/bayesnet/pkg/adapters/xmlbif"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.NetworkDecoder = (*xmlbif.Decoder)(nil)

func TestDecode_AlarmFile(t *testing.T) {
	f, err := os.Open("testdata/alarm_net.xml")
	require.NoError(t, err)
	defer f.Close()

	net, err := xmlbif.New().Decode(f, "alarm_net.xml")
	require.NoError(t, err)

	assert.Equal(t, "alarm_net.xml", net.Name())
	assert.Equal(t, []string{"B", "E", "A", "J", "M"}, net.Names())

	a, err := net.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"E", "B"}, net.ParentNames(a))
	assert.Equal(t, []float64{0.95, 0.05, 0.29, 0.71, 0.94, 0.06, 0.001, 0.999}, net.Node(a).Table)
	assert.Equal(t, []string{"T", "F"}, net.Node(a).Outcomes)
}

func TestDecode_WrappedAndOutOfOrder(t *testing.T) {
	doc := `<BIF VERSION="0.3"><NETWORK><NAME>tiny</NAME>
<DEFINITION><FOR> Y </FOR><GIVEN>X</GIVEN><TABLE>
  0.1 0.9
  0.7 0.3
</TABLE></DEFINITION>
<VARIABLE TYPE="nature"><NAME>X</NAME><OUTCOME>on</OUTCOME><OUTCOME>off</OUTCOME></VARIABLE>
<VARIABLE TYPE="nature"><NAME>Y</NAME><OUTCOME>yes</OUTCOME><OUTCOME>no</OUTCOME></VARIABLE>
<DEFINITION><FOR>X</FOR><TABLE>0.5 0.5</TABLE></DEFINITION>
</NETWORK></BIF>`

	net, err := xmlbif.New().Decode(strings.NewReader(doc), "tiny")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, net.Names())

	y, _ := net.Lookup("Y")
	assert.Equal(t, []string{"X"}, net.ParentNames(y))
	assert.Equal(t, []float64{0.1, 0.9, 0.7, 0.3}, net.Node(y).Table)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "<NETWORK><VARIABLE>"},
		{"empty", "<NETWORK></NETWORK>"},
		{"bad number", `<VARIABLE><NAME>X</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>
<DEFINITION><FOR>X</FOR><TABLE>0.5 half</TABLE></DEFINITION>`},
		{"undeclared", `<VARIABLE><NAME>X</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>
<DEFINITION><FOR>X</FOR><TABLE>0.5 0.5</TABLE></DEFINITION>
<DEFINITION><FOR>Z</FOR><TABLE>0.5 0.5</TABLE></DEFINITION>`},
		{"missing definition", `<VARIABLE><NAME>X</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>`},
		{"unknown parent", `<VARIABLE><NAME>X</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>
<DEFINITION><FOR>X</FOR><GIVEN>W</GIVEN><TABLE>0.5 0.5 0.5 0.5</TABLE></DEFINITION>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xmlbif.New().Decode(strings.NewReader(tt.doc), tt.name)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedNetwork)
		})
	}
}

func TestDecode_DuplicateDefinition(t *testing.T) {
	doc := `<VARIABLE><NAME>X</NAME><OUTCOME>T</OUTCOME><OUTCOME>F</OUTCOME></VARIABLE>
<DEFINITION><FOR>X</FOR><TABLE>0.5 0.5</TABLE></DEFINITION>
<DEFINITION><FOR>X</FOR><TABLE>0.9 0.1</TABLE></DEFINITION>`

	_, err := xmlbif.New().Decode(strings.NewReader(doc), "dup")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedNetwork)
	assert.Equal(t, []string{`duplicate definition for variable "X"`}, domain.Problems(err))
}
