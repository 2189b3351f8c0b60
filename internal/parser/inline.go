package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/line"
)

var labelRE = regexp.MustCompile(`([A-Za-z0-9_-]+):`)

// segmentRun produces the ordered inline nodes of one text run. The run may
// span several physical lines already joined with spaces, so columns are
// computed in the run's own coordinate space: the rune at index i sits at
// column startCol+i on lineNo. origin is the physical line the run starts
// on, used only to anchor diagnostics.
//
// Segmentation is pure and order-stable: the same text and context always
// yield the same node sequence.
func (p *Parser) segmentRun(text string, allowComment bool, lineNo, startCol uint32, origin line.Line) []ast.Inline {
	runes := []rune(text)

	if allowComment {
		commentPos := -1
		inCode := false
		for i, ch := range runes {
			if ch == '`' {
				inCode = !inCode
			}
			if !inCode && ch == 'i' && i+1 < len(runes) && runes[i+1] == '#' {
				commentPos = i
				break
			}
		}
		if commentPos >= 0 {
			nodes := p.segmentSpans(runes[:commentPos], lineNo, startCol, origin)
			nodes = append(nodes, &ast.InlineComment{
				Text: strings.TrimLeftFunc(string(runes[commentPos+2:]), unicode.IsSpace),
				Loc:  ast.NewLoc(lineNo, startCol+uint32(commentPos), lineNo, startCol+uint32(len(runes))),
			})
			return nodes
		}
	}

	return p.segmentSpans(runes, lineNo, startCol, origin)
}

// segmentSpans extracts inline code and labels, treating the remainder as
// text.
func (p *Parser) segmentSpans(runes []rune, lineNo, startCol uint32, origin line.Line) []ast.Inline {
	result := []ast.Inline{}
	inCode := false
	codeStart := 0
	plainStart := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '`' {
			continue
		}
		if inCode {
			result = append(result, &ast.InlineCode{
				Code: string(runes[codeStart:i]),
				Loc:  ast.NewLoc(lineNo, startCol+uint32(codeStart), lineNo, startCol+uint32(i)),
			})
			plainStart = i + 1
			inCode = false
		} else {
			if plainStart < i {
				result = p.appendLabels(result, runes[plainStart:i], lineNo, startCol+uint32(plainStart))
			}
			codeStart = i + 1
			inCode = true
		}
	}

	if inCode {
		// Unmatched backtick: everything from the opener is literal text.
		plainStart = codeStart - 1
		p.report(diag.InlineStrayBacktick, diag.SevInfo, origin.Span(p.file.ID),
			"Unmatched backtick treated as literal text.")
	}
	if plainStart < len(runes) {
		result = p.appendLabels(result, runes[plainStart:], lineNo, startCol+uint32(plainStart))
	}
	return result
}

// appendLabels splits a plain run into InlineLabel and Text nodes. A label
// claims its identifier plus any trailing text up to the next label or the
// end of the run.
func (p *Parser) appendLabels(out []ast.Inline, runes []rune, lineNo, baseCol uint32) []ast.Inline {
	s := string(runes)
	pos := 0
	for {
		m := labelRE.FindStringSubmatchIndex(s[pos:])
		if m == nil {
			if pos < len(s) {
				out = append(out, &ast.Text{
					Value: s[pos:],
					Loc:   ast.NewLoc(lineNo, baseCol+runesBefore(s, pos), lineNo, baseCol+runesBefore(s, len(s))),
				})
			}
			return out
		}

		mStart, mEnd := pos+m[0], pos+m[1]
		if mStart > pos {
			out = append(out, &ast.Text{
				Value: s[pos:mStart],
				Loc:   ast.NewLoc(lineNo, baseCol+runesBefore(s, pos), lineNo, baseCol+runesBefore(s, mStart)),
			})
		}

		identifier := s[pos+m[2] : pos+m[3]]
		end := len(s)
		if next := labelRE.FindStringIndex(s[mEnd:]); next != nil {
			end = mEnd + next[0]
		}
		out = append(out, &ast.InlineLabel{
			Identifier: identifier,
			Text:       s[mEnd:end],
			Loc:        ast.NewLoc(lineNo, baseCol+runesBefore(s, mStart), lineNo, baseCol+runesBefore(s, end)),
		})
		pos = end
	}
}

// runesBefore counts the runes preceding a byte index.
func runesBefore(s string, byteIdx int) uint32 {
	return uint32(utf8.RuneCountInString(s[:byteIdx]))
}
