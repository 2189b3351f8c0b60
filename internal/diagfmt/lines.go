package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"markxs/internal/line"
)

// LineJSON is one classified line in the classify output.
type LineJSON struct {
	Line int    `json:"line"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// LinesJSON serializes classification results, one entry per physical line.
func LinesJSON(w io.Writer, lines []line.Line, kinds []line.Kind) error {
	out := make([]LineJSON, 0, len(lines))
	for i, l := range lines {
		out = append(out, LineJSON{
			Line: int(l.Num),
			Kind: kinds[i].String(),
			Text: l.Text,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// LinesPretty writes one aligned row per line: number, kind, text.
func LinesPretty(w io.Writer, lines []line.Line, kinds []line.Kind, colored bool) {
	kindColor := color.New(color.FgCyan)
	numColor := color.New(color.Faint)
	if !colored {
		kindColor.DisableColor()
		numColor.DisableColor()
	}
	for i, l := range lines {
		fmt.Fprintf(w, "%s %s %s\n",
			numColor.Sprintf("%4d", l.Num),
			kindColor.Sprintf("%-14s", kinds[i].String()),
			l.Text)
	}
}
