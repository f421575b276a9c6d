package factor_test

import (
	"math"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/michal-shasha/bayesnet/internal/factor"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/dsl"
)

const tolerance = 1e-5

// rows turns raw weights into CPT rows of width k that each sum to one.
func rows(weights []float64, k int) []float64 {
	out := make([]float64, len(weights))
	for start := 0; start < len(weights); start += k {
		sum := 0.0
		for _, w := range weights[start : start+k] {
			sum += w
		}
		for i := start; i < start+k; i++ {
			out[i] = weights[i] / sum
		}
	}
	return out
}

// diamond builds A -> {B, C} -> D with a ternary C and the given raw weights.
func diamond(w []float64) (*domain.Network, error) {
	b := dsl.New("diamond")
	b.Add("A").Binary().Table(rows(w[0:2], 2)...)
	b.Add("B").Binary().Given("A").Table(rows(w[2:6], 2)...)
	b.Add("C").Outcomes("lo", "mid", "hi").Given("A").Table(rows(w[6:12], 3)...)
	b.Add("D").Binary().Given("B", "C").Table(rows(w[12:24], 2)...)
	return b.Build()
}

func randomFactor(scope []string, values []float64) *factor.Factor {
	f := factor.New(scope...)
	a := make([]string, len(scope))
	for i, v := range values {
		for k := range scope {
			if i>>k&1 == 1 {
				a[k] = "T"
			} else {
				a[k] = "F"
			}
		}
		f.Set(a, v)
	}
	return f
}

func TestFactorAlgebraProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("joint distribution of all node factors sums to one", prop.ForAll(
		func(w []float64) bool {
			net, err := diamond(w)
			if err != nil {
				return false
			}
			var c factor.Counters
			joint := factor.FromNode(net, 0, nil)
			for i := 1; i < net.Len(); i++ {
				joint = factor.Multiply(joint, factor.FromNode(net, i, nil), &c)
			}
			if joint.Len() != 2*2*3*2 {
				return false
			}
			for _, name := range net.Names() {
				if joint, err = factor.SumOut(joint, name, &c); err != nil {
					return false
				}
			}
			return joint.Width() == 0 && math.Abs(joint.Sum()-1) < tolerance
		},
		gen.SliceOfN(24, gen.Float64Range(0.01, 1)),
	))

	properties.Property("sum out drops one variable and conserves mass", prop.ForAll(
		func(values []float64, drop int) bool {
			f := randomFactor([]string{"X", "Y", "Z"}, values)
			name := f.Scope()[drop]
			s, err := factor.SumOut(f, name, &factor.Counters{})
			if err != nil {
				return false
			}
			return s.Width() == f.Width()-1 &&
				!s.Contains(name) &&
				math.Abs(s.Sum()-f.Sum()) < tolerance
		},
		gen.SliceOfN(8, gen.Float64Range(0, 1)),
		gen.IntRange(0, 2),
	))

	properties.Property("normalize sums to one", prop.ForAll(
		func(values []float64) bool {
			f := randomFactor([]string{"X", "Y"}, values)
			var c factor.Counters
			factor.Normalize(f, &c)
			return c.Additions == f.Len()-1 && math.Abs(f.Sum()-1) < tolerance
		},
		gen.SliceOfN(4, gen.Float64Range(0.01, 1)),
	))

	properties.Property("multiply is the pointwise product over the ordered union", prop.ForAll(
		func(v1, v2 []float64) bool {
			f1 := randomFactor([]string{"X", "Y"}, v1)
			f2 := randomFactor([]string{"Z", "Y"}, v2)
			var c factor.Counters
			p := factor.Multiply(f1, f2, &c)
			if !slices.Equal(p.Scope(), []string{"X", "Y", "Z"}) || c.Multiplications != p.Len() {
				return false
			}
			for _, r := range p.Rows() {
				x, y, z := r.Assignment[0], r.Assignment[1], r.Assignment[2]
				a, _ := f1.Get(x, y)
				b, _ := f2.Get(z, y)
				if math.Abs(r.Value-a*b) > 1e-12 {
					return false
				}
			}
			return p.Len() == 8
		},
		gen.SliceOfN(4, gen.Float64Range(0, 1)),
		gen.SliceOfN(4, gen.Float64Range(0, 1)),
	))

	properties.Property("restricting by consistent evidence leaves values unchanged", prop.ForAll(
		func(values []float64) bool {
			f := randomFactor([]string{"X", "Y"}, values)
			ev := domain.Evidence{"X": "T"}
			once := factor.Restrict(f, ev)
			twice := factor.Restrict(once, ev)
			return slices.EqualFunc(once.Rows(), twice.Rows(), func(a, b factor.Row) bool {
				return slices.Equal(a.Assignment, b.Assignment) && a.Value == b.Value
			})
		},
		gen.SliceOfN(4, gen.Float64Range(0, 1)),
	))

	properties.TestingRun(t)
}
