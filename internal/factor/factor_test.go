package factor_test

import (
	"math"
	"testing"

	"github.com/michal-shasha/bayesnet/internal/factor"
	"github.com/michal-shasha/bayesnet/internal/testutils"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binary(scope []string, values map[string]float64) *factor.Factor {
	f := factor.New(scope...)
	for key, v := range values {
		a := make([]string, len(key))
		for i, r := range key {
			a[i] = string(r)
		}
		f.Set(a, v)
	}
	return f
}

func TestFromNode_NoEvidence(t *testing.T) {
	net := testutils.Sprinkler(t)
	wet, _ := net.Lookup("WetGrass")

	f := factor.FromNode(net, wet, nil)
	assert.Equal(t, []string{"Sprinkler", "Rain", "WetGrass"}, f.Scope())
	assert.Equal(t, 8, f.Len())

	v, ok := f.Get("true", "false", "true")
	require.True(t, ok)
	assert.Equal(t, 0.9, v)
}

func TestFromNode_Evidence(t *testing.T) {
	net := testutils.Sprinkler(t)
	wet, _ := net.Lookup("WetGrass")

	f := factor.FromNode(net, wet, domain.Evidence{"WetGrass": "true", "Rain": "false"})
	assert.Equal(t, 2, f.Len())

	_, ok := f.Get("true", "true", "true")
	assert.False(t, ok, "rows inconsistent with evidence are not materialized")

	v, ok := f.Get("false", "false", "true")
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestMultiply_ScopeAndConsistency(t *testing.T) {
	f1 := binary([]string{"A", "B"}, map[string]float64{"TT": 0.1, "TF": 0.2, "FT": 0.3, "FF": 0.4})
	f2 := binary([]string{"C", "B"}, map[string]float64{"TT": 0.5, "TF": 0.6, "FT": 0.7})

	var c factor.Counters
	p := factor.Multiply(f1, f2, &c)

	assert.Equal(t, []string{"A", "B", "C"}, p.Scope())
	// B=T pairs with (C=T) and (C=F); B=F pairs with (C=T) only, for each A.
	assert.Equal(t, 6, p.Len())
	assert.Equal(t, 6, c.Multiplications)
	assert.Zero(t, c.Additions)

	v, ok := p.Get("T", "T", "F")
	require.True(t, ok)
	assert.InDelta(t, 0.1*0.7, v, 1e-12)

	_, ok = p.Get("T", "F", "F")
	assert.False(t, ok, "C=F,B=F is an implicit zero in f2")
}

func TestSumOut_CountsAdditions(t *testing.T) {
	f := binary([]string{"A", "B"}, map[string]float64{"TT": 0.1, "TF": 0.2, "FT": 0.3, "FF": 0.4})

	var c factor.Counters
	s, err := factor.SumOut(f, "A", &c)
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, s.Scope())
	assert.Equal(t, 2, c.Additions, "first contribution per key is free")

	v, _ := s.Get("T")
	assert.InDelta(t, 0.4, v, 1e-12)
	v, _ = s.Get("F")
	assert.InDelta(t, 0.6, v, 1e-12)
}

func TestSumOut_ZeroValuedRowStillCounts(t *testing.T) {
	f := binary([]string{"A", "B"}, map[string]float64{"TT": 0, "FT": 0.5})

	var c factor.Counters
	_, err := factor.SumOut(f, "A", &c)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Additions)
}

func TestSumOut_UnknownVariable(t *testing.T) {
	f := factor.New("A")
	_, err := factor.SumOut(f, "Z", &factor.Counters{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNormalize(t *testing.T) {
	f := binary([]string{"A", "B"}, map[string]float64{"TT": 1, "TF": 1, "FT": 2})

	var c factor.Counters
	factor.Normalize(f, &c)

	assert.Equal(t, 2, c.Additions)
	assert.InDelta(t, 1.0, f.Sum(), 1e-12)
	v, _ := f.Get("F", "T")
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestValue(t *testing.T) {
	f := binary([]string{"A"}, map[string]float64{"T": 0.25, "F": 0.75})

	assert.Equal(t, 0.75, factor.Value(f, "A", "F"))
	assert.Equal(t, 0.0, factor.Value(f, "A", "X"))
	assert.Equal(t, 0.0, factor.Value(f, "B", "T"))
}

func TestRestrict_ConsistentEvidenceIsIdentity(t *testing.T) {
	net := testutils.Alarm(t)
	a, _ := net.Lookup("A")
	ev := domain.Evidence{"A": "T", "B": "T"}

	f := factor.FromNode(net, a, ev)
	again := factor.Restrict(f, ev)

	assert.Equal(t, f.Rows(), again.Rows())
}

func TestCompare_TieBreak(t *testing.T) {
	small := factor.New("Z")
	ab := factor.New("A", "B")
	xy := factor.New("X", "Y")
	xy2 := factor.New("Y", "X")

	fs := []*factor.Factor{ab, xy, small, xy2}
	factor.SortForElimination(fs)

	// Size first, then larger initial sum first, stable among equals.
	assert.Same(t, small, fs[0])
	assert.Same(t, xy, fs[1])
	assert.Same(t, xy2, fs[2])
	assert.Same(t, ab, fs[3])
}

func TestSet_PanicsOnWidthMismatch(t *testing.T) {
	f := factor.New("A", "B")
	assert.Panics(t, func() { f.Set([]string{"T"}, 1) })
}

func TestNormalize_ZeroTotalIsNaN(t *testing.T) {
	f := binary([]string{"A"}, map[string]float64{"T": 0, "F": 0})

	var c factor.Counters
	factor.Normalize(f, &c)

	assert.Equal(t, 1, c.Additions)
	assert.True(t, math.IsNaN(factor.Value(f, "A", "T")))
	assert.True(t, math.IsNaN(factor.Value(f, "A", "F")))
}
