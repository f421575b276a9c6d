// Package graph renders networks as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// GraphOverlay highlights the variables involved in a query.
type GraphOverlay struct {
	Query    string
	Observed []string
	Hidden   []string
}

// GenerateMermaid produces a Mermaid flowchart of the network, one edge per parent link.
// Root variables are drawn as stadiums, the rest as rectangles; each label lists the outcomes.
// It also applies overlay styles (query, observed, hidden) if provided.
func GenerateMermaid(net *domain.Network, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i := 0; i < net.Len(); i++ {
		node := net.Node(i)
		safeID := sanitizeMermaidID(node.Name)

		opener, closer := "[", "]"
		if len(node.Parents) == 0 {
			opener, closer = "([", "])"
		}
		label := fmt.Sprintf("%s<br/>%s", escapeLabel(node.Name), escapeLabel(strings.Join(node.Outcomes, " | ")))
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
	}

	for i := 0; i < net.Len(); i++ {
		safeTo := sanitizeMermaidID(net.Node(i).Name)
		for _, parent := range net.ParentNames(i) {
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(parent), safeTo)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light fills regardless of theme.
		sb.WriteString("    classDef query fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef observed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef hidden fill:#f5f5f5,stroke:#9e9e9e,stroke-dasharray:4 2,color:#000;\n")

		styled := make(map[string]bool)
		apply := func(names []string, class string) {
			for _, name := range names {
				if !net.Has(name) || styled[name] {
					continue
				}
				styled[name] = true
				fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(name), class)
			}
		}
		if overlay.Query != "" {
			apply([]string{overlay.Query}, "query")
		}
		apply(overlay.Observed, "observed")
		apply(overlay.Hidden, "hidden")
	}

	return sb.String()
}

// OverlayFor builds the overlay of a probability query.
func OverlayFor(q domain.ProbabilityQuery) *GraphOverlay {
	return &GraphOverlay{
		Query:    q.Variable,
		Observed: q.Evidence.Names(),
		Hidden:   q.Order,
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
