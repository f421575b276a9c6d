// Package xmlbif reads networks written in the XMLBIF interchange format.
//
// Only the elements needed for discrete networks are read:
//
//	<VARIABLE TYPE="nature">
//	    <NAME>Alarm</NAME>
//	    <OUTCOME>T</OUTCOME>
//	    <OUTCOME>F</OUTCOME>
//	</VARIABLE>
//	<DEFINITION>
//	    <FOR>Alarm</FOR>
//	    <GIVEN>Burglary</GIVEN>
//	    <GIVEN>Earthquake</GIVEN>
//	    <TABLE>0.95 0.05 0.94 0.06 0.29 0.71 0.001 0.999</TABLE>
//	</DEFINITION>
//
// The elements are found at any depth, so both bare documents and ones wrapped in
// <BIF><NETWORK> are accepted. Variables keep document order.
package xmlbif

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

type variable struct {
	Name     string   `xml:"NAME"`
	Outcomes []string `xml:"OUTCOME"`
}

type definition struct {
	For   string   `xml:"FOR"`
	Given []string `xml:"GIVEN"`
	Table string   `xml:"TABLE"`
}

// Decoder implements ports.NetworkDecoder for XMLBIF documents.
type Decoder struct{}

// New creates an XMLBIF decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode reads the document and builds a validated network.
// Syntax errors and structural problems both match domain.ErrMalformedNetwork.
func (d *Decoder) Decode(r io.Reader, name string) (*domain.Network, error) {
	vars, defs, err := scan(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedNetwork, name, err)
	}

	var problems []string
	byName := make(map[string]int, len(vars))
	out := make([]domain.Definition, len(vars))
	for i, v := range vars {
		byName[v.Name] = i
		out[i].Variable = domain.Variable{Name: v.Name, Outcomes: v.Outcomes}
	}

	defined := make(map[string]bool, len(defs))
	for _, def := range defs {
		i, ok := byName[def.For]
		if !ok {
			problems = append(problems, fmt.Sprintf("definition for undeclared variable %q", def.For))
			continue
		}
		if defined[def.For] {
			problems = append(problems, fmt.Sprintf("duplicate definition for variable %q", def.For))
			continue
		}
		defined[def.For] = true
		table, err := parseTable(def.Table)
		if err != nil {
			problems = append(problems, fmt.Sprintf("variable %q: %v", def.For, err))
			continue
		}
		out[i].Parents = def.Given
		out[i].Table = table
	}
	if len(problems) > 0 {
		return nil, &domain.NetworkError{Problems: problems}
	}

	return domain.NewNetwork(name, out)
}

func scan(r io.Reader) ([]variable, []definition, error) {
	var (
		vars []variable
		defs []definition
	)
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "VARIABLE":
			var v variable
			if err := dec.DecodeElement(&v, &start); err != nil {
				return nil, nil, err
			}
			v.Name = strings.TrimSpace(v.Name)
			for i := range v.Outcomes {
				v.Outcomes[i] = strings.TrimSpace(v.Outcomes[i])
			}
			vars = append(vars, v)
		case "DEFINITION":
			var d definition
			if err := dec.DecodeElement(&d, &start); err != nil {
				return nil, nil, err
			}
			d.For = strings.TrimSpace(d.For)
			for i := range d.Given {
				d.Given[i] = strings.TrimSpace(d.Given[i])
			}
			defs = append(defs, d)
		}
	}
	if len(vars) == 0 {
		return nil, nil, errors.New("no VARIABLE elements")
	}
	return vars, defs, nil
}

func parseTable(s string) ([]float64, error) {
	fields := strings.Fields(s)
	table := make([]float64, len(fields))
	for i, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("table entry %d: %q is not a number", i, f)
		}
		table[i] = p
	}
	return table, nil
}
