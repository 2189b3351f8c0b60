package parser

import (
	"fmt"
	"strconv"
	"strings"

	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/line"
)

func (p *Parser) parseSectionHeading() {
	l := p.lines[p.idx]
	cleaned := p.stripIllegalInlineComment(l)
	numberStr, title, desc, ok := line.MatchSection(cleaned)
	if !ok {
		// Classification saw a heading through the detection-only strip, so
		// the cleaned line matches too; this is unreachable in practice.
		p.parseParagraph()
		return
	}

	parts := strings.Split(numberStr, ".")
	number := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			p.parseParagraph()
			return
		}
		number = append(number, n)
	}

	raw := rstrip(l.Text)
	sec := &ast.Section{
		Number:      number,
		Title:       title,
		Description: desc,
		Body:        []ast.Block{},
		RawHeading:  raw,
		Loc:         ast.NewLoc(l.Num, 1, l.Num, runeLen(raw)+1),
	}
	p.placeSection(sec, l)
	p.idx++
}

// placeSection re-parents a section using the ancestor stack: pop until the
// top's number is the strict one-shorter prefix of the incoming number. A
// multi-part number with no surviving ancestor is orphaned: it attaches at
// the document root and draws an error diagnostic.
func (p *Parser) placeSection(sec *ast.Section, l line.Line) {
	for len(p.stack) > 0 && !isParentNumber(p.stack[len(p.stack)-1].Number, sec.Number) {
		p.stack = p.stack[:len(p.stack)-1]
	}

	if len(p.stack) == 0 {
		if len(sec.Number) > 1 {
			p.report(diag.SectionParentMissing, diag.SevError, p.pointSpan(l.Start),
				fmt.Sprintf("Missing parent section %s; attached to document root.", dotted(sec.Number[:len(sec.Number)-1])))
		}
		p.doc.Body = append(p.doc.Body, sec)
	} else {
		top := p.stack[len(p.stack)-1]
		top.Body = append(top.Body, sec)
	}
	p.stack = append(p.stack, sec)
}

// isParentNumber reports whether parent is exactly child minus its last
// element.
func isParentNumber(parent, child []int) bool {
	if len(parent) != len(child)-1 {
		return false
	}
	for i := range parent {
		if parent[i] != child[i] {
			return false
		}
	}
	return true
}

func dotted(number []int) string {
	parts := make([]string, len(number))
	for i, n := range number {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
