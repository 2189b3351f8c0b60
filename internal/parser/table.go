package parser

import (
	"strings"

	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/line"
)

// parseTable groups the run of contiguous row-delimiter lines. Anything
// else, including a comment or blank line, terminates the table without
// being consumed, so table syntax resuming after an interruption forms a
// second table.
func (p *Parser) parseTable() {
	start := p.idx
	for p.idx < len(p.lines) && line.IsTableRow(p.lines[p.idx].Text) {
		p.idx++
	}
	rows := p.lines[start:p.idx]

	parsed := make([]ast.TableRow, 0, len(rows))
	for _, r := range rows {
		if ci := strings.Index(r.Text, "```"); ci >= 0 {
			off := r.Start + uint32(ci)
			p.report(diag.FenceInTable, diag.SevError, p.span(off, off+3),
				"Fenced code block delimiter inside table is not allowed.")
		}
		parsed = append(parsed, ast.TableRow{
			Cells: splitCells(r.Text),
			Loc:   ast.NewLoc(r.Num, 1, r.Num, runeLen(rstrip(r.Text))+1),
		})
	}

	last := rows[len(rows)-1]
	table := &ast.Table{
		Header: parsed[0],
		Loc:    ast.NewLoc(rows[0].Num, 1, last.Num, runeLen(rstrip(last.Text))+1),
	}
	if len(parsed) > 1 {
		table.Align = &parsed[1]
	}
	if len(parsed) > 2 {
		table.Rows = parsed[2:]
	}
	p.addBlock(table)
}

// splitCells drops the text outside the outer delimiters and trims each
// cell. A row without both outer delimiters yields no cells.
func splitCells(text string) []string {
	parts := strings.Split(strings.TrimSpace(text), "|")
	if len(parts) <= 2 {
		return []string{}
	}
	cells := make([]string, 0, len(parts)-2)
	for _, c := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(c))
	}
	return cells
}
