package parser

import (
	"strings"

	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/line"
)

// parseFence consumes a fence-open line and everything after it verbatim
// until a close with the exact opening indentation. Classification is
// suspended for the whole region. An unterminated fence consumes to
// end-of-input and draws an error; a close-looking line at the wrong
// indentation stays content and draws one too.
func (p *Parser) parseFence() {
	open := p.lines[p.idx]
	indent, rawInfo, ok := line.MatchFenceOpen(open.Text)
	if !ok {
		p.parseParagraph()
		return
	}
	info := strings.TrimSpace(rawInfo)
	p.idx++

	content := []string{}
	closed := false
	var closing line.Line
	for p.idx < len(p.lines) {
		l := p.lines[p.idx]
		if line.IsFenceClose(l.Text, indent) {
			closed = true
			closing = l
			p.idx++
			break
		}
		if line.LooksLikeFenceClose(l.Text) {
			p.report(diag.FenceIndentMismatch, diag.SevError, p.pointSpan(l.Start),
				"Fence close indentation does not match its opener; treated as content.")
		}
		content = append(content, l.Text)
		p.idx++
	}

	endLine := open.Num + uint32(len(content))
	var endCol uint32
	switch {
	case closed:
		endLine++
		endCol = runeLen(closing.Text) + 1
	case len(content) > 0:
		endCol = runeLen(content[len(content)-1]) + 1
	default:
		endCol = 1
	}

	if !closed {
		// p.idx-1 is the last consumed line: the final content line, or the
		// opener itself when the fence is empty.
		p.report(diag.FenceUnterminated, diag.SevError, p.pointSpan(p.lines[p.idx-1].Start),
			"Unterminated fenced code block")
	}

	p.addBlock(&ast.FencedCodeBlock{
		Info:    info,
		Indent:  indent,
		Content: content,
		Loc:     ast.NewLoc(open.Num, 1, endLine, endCol),
	})
}
