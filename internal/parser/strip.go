package parser

import (
	"strings"
	"unicode"

	"markxs/internal/diag"
	"markxs/internal/line"
)

// stripIllegalInlineComment removes an inline comment from a context where
// comments are not allowed (header, metadata, section heading) and records a
// warning diagnostic at the stripped span. Backtick code spans shield the
// marker.
func (p *Parser) stripIllegalInlineComment(l line.Line) string {
	runes := []rune(l.Text)
	inCode := false
	for i := 0; i < len(runes); i++ {
		if runes[i] == '`' {
			inCode = !inCode
			continue
		}
		if !inCode && runes[i] == 'i' && i+1 < len(runes) && runes[i+1] == '#' {
			start := offsetAt(l, i)
			p.report(diag.InlineCommentIllegal, diag.SevWarning, p.span(start, start+2),
				"Inline comment not allowed in this context; stripped before parsing.")
			return strings.TrimRightFunc(string(runes[:i]), unicode.IsSpace)
		}
	}
	return l.Text
}
