package graph_test

import (
	"strings"
	"testing"

	"github.com/michal-shasha/bayesnet/internal/presentation/graph"
	"github.com/michal-shasha/bayesnet/internal/testutils"
	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/michal-shasha/bayesnet/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(testutils.Alarm(t), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`B(["B<br/>T | F"])`,
		`A["A<br/>T | F"]`,
		"E --> A",
		"B --> A",
		"A --> J",
		"A --> M",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	q := domain.ProbabilityQuery{
		Variable: "B",
		Value:    "T",
		Evidence: domain.Evidence{"J": "T", "M": "T"},
		Order:    []string{"A", "E", "B", "Ghost"},
	}
	out := graph.GenerateMermaid(testutils.Alarm(t), graph.OverlayFor(q))

	assert.Contains(t, out, "class B query;")
	assert.Contains(t, out, "class J observed;")
	assert.Contains(t, out, "class M observed;")
	assert.Contains(t, out, "class A hidden;")
	assert.Equal(t, 1, strings.Count(out, "class B "))
	assert.NotContains(t, out, "Ghost")
}

func TestGenerateMermaid_SanitizesIDs(t *testing.T) {
	b := dsl.New("names")
	b.Add("wet grass").Outcomes("yes", "no").Table(0.5, 0.5)
	b.Add("x.y-z").Outcomes(`"on"`, "off").Given("wet grass").Table(0.5, 0.5, 0.5, 0.5)

	out := graph.GenerateMermaid(b.MustBuild(), nil)
	assert.Contains(t, out, `wet_grass(["wet grass<br/>yes | no"])`)
	assert.Contains(t, out, `x_y_z["x.y-z<br/>'on' | off"]`)
	assert.Contains(t, out, "wet_grass --> x_y_z")
}
