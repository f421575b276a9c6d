package domain

import (
	"sort"
	"strings"
)

// Evidence maps a variable name to its observed outcome.
type Evidence map[string]string

// Has reports whether the variable is observed.
func (e Evidence) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Names returns the observed variable names sorted lexically.
func (e Evidence) Names() []string {
	names := make([]string, 0, len(e))
	for k := range e {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Subset returns the entries of e whose names are listed.
func (e Evidence) Subset(names ...string) Evidence {
	out := make(Evidence)
	for _, n := range names {
		if v, ok := e[n]; ok {
			out[n] = v
		}
	}
	return out
}

// String renders the evidence canonically, e.g. "A=T,B=F".
func (e Evidence) String() string {
	parts := make([]string, 0, len(e))
	for _, n := range e.Names() {
		parts = append(parts, n+"="+e[n])
	}
	return strings.Join(parts, ",")
}
