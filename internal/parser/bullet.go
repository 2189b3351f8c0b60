package parser

import (
	"strings"

	"markxs/internal/ast"
	"markxs/internal/line"
	"markxs/internal/source"
)

// parseBulletList groups contiguous bullet item lines. A blank line or any
// foreign block kind terminates the list without being consumed, so a
// bullet after a blank starts a fresh list.
func (p *Parser) parseBulletList() {
	startLine := p.lines[p.idx].Num
	var items []ast.BulletItem

	for p.idx < len(p.lines) {
		l := p.lines[p.idx]
		indent, marker, text, ok := line.MatchBullet(l.Text)
		if !ok {
			break
		}

		// Wrapped continuation lines: indented to at least the bullet text
		// column, not blank, and not the start of another block kind.
		var cont []string
		la := p.idx + 1
		baseIndent := indent + 2 // marker + space
		for la < len(p.lines) {
			laText := p.lines[la].Text
			if line.IsBlank(laText) || line.IsBulletItem(laText) {
				break
			}
			if line.IsFenceDelim(laText) || line.IsTableRow(laText) || line.IsSectionHeading(laText) {
				break
			}
			if leadingSpaces(laText) < baseIndent {
				break
			}
			cont = append(cont, strings.TrimSpace(laText))
			la++
		}

		fullText := text
		if len(cont) > 0 {
			fullText = strings.Join(append([]string{text}, cont...), " ")
		}
		inline := p.segmentRun(fullText, true, l.Num, uint32(indent)+3, l)

		last := p.lines[la-1]
		items = append(items, ast.BulletItem{
			Marker:       marker,
			Inline:       inline,
			Continuation: cont,
			Loc:          ast.NewLoc(l.Num, uint32(indent)+1, last.Num, runeLen(rstrip(last.Text))+1),
		})
		p.idx = la
	}

	lastItem := items[len(items)-1]
	p.addBlock(&ast.BulletList{
		Items: items,
		Loc: ast.Loc{
			Start: source.LineCol{Line: startLine, Col: 1},
			End:   lastItem.Loc.End,
		},
	})
}

// parseParagraph collects contiguous fallback lines, joins them with single
// spaces, and segments the result as one inline run.
func (p *Parser) parseParagraph() {
	var collected []line.Line
	for p.idx < len(p.lines) {
		text := p.lines[p.idx].Text
		if line.IsBlank(text) {
			break
		}
		if line.IsFenceDelim(text) || line.IsTableRow(text) || line.IsSectionHeading(text) ||
			line.IsComment(text) || line.IsBulletItem(text) {
			break
		}
		collected = append(collected, p.lines[p.idx])
		p.idx++
	}
	if len(collected) == 0 {
		p.idx++
		return
	}

	parts := make([]string, len(collected))
	for i, l := range collected {
		parts[i] = strings.TrimSpace(l.Text)
	}
	text := strings.Join(parts, " ")

	first := collected[0]
	last := collected[len(collected)-1]
	p.addBlock(&ast.Paragraph{
		Inline: p.segmentRun(text, true, first.Num, 1, first),
		Loc:    ast.NewLoc(first.Num, 1, last.Num, runeLen(rstrip(last.Text))+1),
	})
}
