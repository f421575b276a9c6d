package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// Describe renders the network as markdown: a summary table followed by one
// conditional probability table per variable.
func Describe(net *domain.Network) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", net.Name())
	fmt.Fprintf(&sb, "%d variables.\n\n", net.Len())

	sb.WriteString("| Variable | Outcomes | Parents | Children |\n")
	sb.WriteString("|---|---|---|---|\n")
	for i := 0; i < net.Len(); i++ {
		node := net.Node(i)
		children := make([]string, len(node.Children))
		for j, c := range node.Children {
			children[j] = net.Node(c).Name
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			node.Name,
			strings.Join(node.Outcomes, ", "),
			dash(strings.Join(net.ParentNames(i), ", ")),
			dash(strings.Join(children, ", ")),
		)
	}

	for i := 0; i < net.Len(); i++ {
		describeTable(&sb, net, i)
	}
	return sb.String()
}

func describeTable(sb *strings.Builder, net *domain.Network, i int) {
	node := net.Node(i)
	parents := net.ParentNames(i)

	fmt.Fprintf(sb, "\n## %s\n\n", node.Name)
	header := append(parents, node.Name, "P")
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString(strings.Repeat("|---", len(header)) + "|\n")

	net.Rows(i, func(r domain.Row) bool {
		cells := append(append([]string(nil), r.Assignment...), strconv.FormatFloat(r.Probability, 'f', -1, 64))
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		return true
	})
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
