package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"markxs/internal/ast"
)

// Outline writes a compact tree view of the document structure: one line
// per block, indented by nesting depth, with locs. Inline content is
// summarized, not expanded.
func Outline(w io.Writer, doc *ast.Document, colored bool) {
	kindColor := color.New(color.FgCyan, color.Bold)
	locColor := color.New(color.Faint)
	if !colored {
		kindColor.DisableColor()
		locColor.DisableColor()
	}

	p := outlinePrinter{w: w, kind: kindColor, loc: locColor}

	if doc.Header != nil {
		p.line(0, ast.TypeHeader, fmt.Sprintf("%s: %s", doc.Header.Tag, doc.Header.Text), doc.Header.Loc)
	} else {
		fmt.Fprintf(w, "%s (none)\n", kindColor.Sprint(ast.TypeHeader))
	}
	for _, m := range doc.Metadata {
		p.line(0, ast.TypeMetadataEntry, fmt.Sprintf("%s = %s", m.Key, m.Value), m.Loc)
	}
	p.blocks(0, doc.Body)
}

type outlinePrinter struct {
	w    io.Writer
	kind *color.Color
	loc  *color.Color
}

func (p outlinePrinter) line(depth int, kind, detail string, loc ast.Loc) {
	indent := strings.Repeat("  ", depth)
	locStr := fmt.Sprintf("%d:%d-%d:%d", loc.Start.Line, loc.Start.Col, loc.End.Line, loc.End.Col)
	if detail != "" {
		fmt.Fprintf(p.w, "%s%s %s %s\n", indent, p.kind.Sprint(kind), detail, p.loc.Sprint(locStr))
		return
	}
	fmt.Fprintf(p.w, "%s%s %s\n", indent, p.kind.Sprint(kind), p.loc.Sprint(locStr))
}

func (p outlinePrinter) blocks(depth int, blocks []ast.Block) {
	for _, b := range blocks {
		switch n := b.(type) {
		case *ast.Section:
			p.line(depth, ast.TypeSection, fmt.Sprintf("%s %s", dottedNumber(n.Number), n.Title), n.Loc)
			p.blocks(depth+1, n.Body)
		case *ast.Paragraph:
			p.line(depth, ast.TypeParagraph, summarizeInline(n.Inline), n.Loc)
		case *ast.BulletList:
			p.line(depth, ast.TypeBulletList, fmt.Sprintf("%d items", len(n.Items)), n.Loc)
			for _, it := range n.Items {
				p.line(depth+1, ast.TypeBulletItem, summarizeInline(it.Inline), it.Loc)
			}
		case *ast.Table:
			rows := len(n.Rows)
			p.line(depth, ast.TypeTable, fmt.Sprintf("%d columns, %d rows", len(n.Header.Cells), rows), n.Loc)
		case *ast.FencedCodeBlock:
			info := n.Info
			if info == "" {
				info = "(no info)"
			}
			p.line(depth, ast.TypeFencedCodeBlock, fmt.Sprintf("%s, %d lines", info, len(n.Content)), n.Loc)
		case *ast.WholeLineComment:
			p.line(depth, ast.TypeWholeLineComment, summarize(n.Text), n.Loc)
		case *ast.BlankLine:
			p.line(depth, ast.TypeBlankLine, "", n.Loc)
		}
	}
}

func dottedNumber(number []int) string {
	parts := make([]string, len(number))
	for i, n := range number {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

func summarizeInline(nodes []ast.Inline) string {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.Text:
			b.WriteString(v.Value)
		case *ast.InlineCode:
			b.WriteString("`" + v.Code + "`")
		case *ast.InlineLabel:
			b.WriteString(v.Identifier + ":" + v.Text)
		case *ast.InlineComment:
			// hidden content stays out of the outline
		}
	}
	return summarize(b.String())
}

func summarize(s string) string {
	const limit = 60
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
