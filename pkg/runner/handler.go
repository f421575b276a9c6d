package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// Outcome is the answer to one input line.
type Outcome struct {
	Line        int                 `json:"line"`
	Query       string              `json:"query"`
	Kind        string              `json:"kind"`
	Result      *domain.QueryResult `json:"result,omitempty"`
	Independent *bool               `json:"independent,omitempty"`
	Err         error               `json:"-"`
}

// OutputHandler defines how answers are presented.
// This allows switching between the classic text format and JSON lines.
type OutputHandler interface {
	Output(o Outcome) error
}

// TextHandler writes answers in the classic line format.
type TextHandler struct {
	Writer io.Writer
}

// NewTextHandler creates a handler writing to w (os.Stdout if nil).
func NewTextHandler(w io.Writer) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{Writer: w}
}

func (h *TextHandler) Output(o Outcome) error {
	_, err := fmt.Fprintln(h.Writer, FormatOutcome(o))
	return err
}

// JSONHandler writes one JSON object per answer.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler writing to w (os.Stdout if nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

type jsonOutcome struct {
	Outcome
	Error string `json:"error,omitempty"`
}

func (h *JSONHandler) Output(o Outcome) error {
	if o.Err == nil && o.Result != nil {
		if err := o.Result.Check(); err != nil {
			o.Result, o.Err = nil, err
		}
	}
	out := jsonOutcome{Outcome: o}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return h.Encoder.Encode(out)
}

// FormatOutcome renders an answer as "p,adds,muls", "yes", "no" or "error: <msg>".
func FormatOutcome(o Outcome) string {
	switch {
	case o.Err != nil:
		return "error: " + strings.ReplaceAll(o.Err.Error(), "\n", " ")
	case o.Result != nil:
		if err := o.Result.Check(); err != nil {
			return "error: " + err.Error()
		}
		return FormatResult(*o.Result)
	case o.Independent != nil:
		return FormatIndependence(*o.Independent)
	}
	return ""
}

// FormatResult renders a probability answer as "p,adds,muls".
func FormatResult(r domain.QueryResult) string {
	return FormatProbability(r.Probability) + "," + strconv.Itoa(r.Additions) + "," + strconv.Itoa(r.Multiplications)
}

// FormatProbability prints p with the fewest digits that read back exactly,
// keeping at least one decimal ("0.5", "1.0").
func FormatProbability(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// FormatIndependence renders an independence answer.
func FormatIndependence(independent bool) string {
	if independent {
		return "yes"
	}
	return "no"
}
