package diagfmt

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"markxs/internal/diag"
	"markxs/internal/source"
)

// Pretty writes diagnostics in a human-readable form. Each diagnostic is
// printed as
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//
// followed by the offending source line with a caret underline covering the
// primary span. Callers should bag.Sort() first if they want stable order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	for i := range maxItems {
		printDiagnostic(w, items[i], fs, opts)
	}
	if maxItems < len(items) {
		fmt.Fprintf(w, "... and %d more diagnostics\n", len(items)-maxItems)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "<unknown>: %s %s: %s\n", d.Severity, d.Code.ID(), d.Message)
		return
	}

	start, end := fs.Resolve(d.Primary)
	path := f.FormatPath(formatPath(opts.PathMode), fs.BaseDir())

	sev := severityColor(d.Severity, opts.Color)
	bold := color.New(color.Bold)
	if !opts.Color {
		bold.DisableColor()
	}

	fmt.Fprintf(w, "%s: %s %s: %s\n",
		bold.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		sev.Sprint(d.Severity.String()),
		d.Code.ID(),
		d.Message)

	srcLine := f.GetLine(start.Line)
	if srcLine == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", srcLine)

	pad := runewidth.StringWidth(string([]rune(srcLine)[:min(int(start.Col)-1, utf8.RuneCountInString(srcLine))]))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), sev.Sprint("^"+strings.Repeat("~", width-1)))
}

func severityColor(sev diag.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if !enabled {
		c.DisableColor()
	}
	return c
}
