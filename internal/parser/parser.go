package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/line"
	"markxs/internal/source"
)

type Options struct {
	Reporter diag.Reporter
}

// Parser holds the state for one file. Every field, including the section
// stack and the classifier context, is owned by a single parse invocation.
type Parser struct {
	file     *source.File
	lines    []line.Line
	idx      int
	ctx      line.Context
	reporter diag.Reporter
	doc      *ast.Document
	stack    []*ast.Section // open sections, outermost first
}

// ParseFile is the entry point for parsing one document. The parse never
// fails: every input yields a Document, with diagnostics describing whatever
// had to be sanitized or recovered. When the reporter is a BagReporter the
// collected diagnostics are attached to the Document root.
func ParseFile(file *source.File, opts Options) *ast.Document {
	reporter := opts.Reporter
	var bag *diag.Bag
	if reporter == nil {
		bag = diag.NewBag(100)
		reporter = &diag.BagReporter{Bag: bag}
	} else if br, ok := reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}

	p := Parser{
		file:     file,
		lines:    line.Scan(file),
		reporter: reporter,
		doc: &ast.Document{
			Metadata: []ast.MetadataEntry{},
			Body:     []ast.Block{},
		},
	}
	p.run()

	if bag != nil {
		p.doc.Diagnostics = bag.Items()
	}
	return p.doc
}

func (p *Parser) run() {
	first := -1
	for i, l := range p.lines {
		if !line.IsBlank(l.Text) {
			first = i
			break
		}
	}
	if first < 0 {
		p.report(diag.DocEmpty, diag.SevError, p.pointSpan(0), "Empty document")
		return
	}

	p.idx = first
	p.parseHeader()
	if p.doc.Header != nil {
		p.parseMetadata()
	}
	p.parseBody()
}

// parseHeader consumes the first non-blank line as the header candidate.
// Header recognition is strictly positional and is never re-attempted.
func (p *Parser) parseHeader() {
	l := p.lines[p.idx]
	cleaned := p.stripIllegalInlineComment(l)
	if tag, text, ok := line.MatchHeader(cleaned); ok {
		p.doc.Header = &ast.Header{
			Tag:  tag,
			Text: text,
			Loc:  ast.NewLoc(l.Num, 1, l.Num, runeLen(cleaned)+1),
		}
	} else {
		p.report(diag.DocHeaderInvalid, diag.SevError, p.pointSpan(l.Start), "Invalid or missing header line")
	}
	p.idx++
	p.ctx.FirstLineSeen = true
	p.ctx.HeaderAssigned = p.doc.Header != nil
}

// parseMetadata consumes the contiguous key/value run immediately after the
// header. The run terminates permanently on the first blank or non-metadata
// line and is never re-entered.
func (p *Parser) parseMetadata() {
	for p.idx < len(p.lines) {
		l := p.lines[p.idx]
		if line.IsBlank(l.Text) {
			p.idx++
			break
		}
		if _, _, ok := line.MatchMetadata(l.Text); !ok {
			break
		}
		cleaned := p.stripIllegalInlineComment(l)
		key, value, ok := line.MatchMetadata(cleaned)
		if !ok {
			break
		}
		p.doc.Metadata = append(p.doc.Metadata, ast.MetadataEntry{
			Key:   key,
			Value: value,
			Loc:   ast.NewLoc(l.Num, 1, l.Num, runeLen(l.Text)+1),
		})
		p.idx++
	}
}

// parseBody is the assembler loop: classify the current line, then hand off
// to the block parser for that kind. Block parsers advance p.idx.
func (p *Parser) parseBody() {
	for p.idx < len(p.lines) {
		l := p.lines[p.idx]
		switch line.Classify(l.Text, p.ctx) {
		case line.Blank:
			p.addBlock(&ast.BlankLine{Loc: ast.NewLoc(l.Num, 1, l.Num, runeLen(l.Text)+1)})
			p.idx++
		case line.FenceDelim:
			p.parseFence()
		case line.TableRow:
			p.parseTable()
		case line.SectionHeading:
			p.parseSectionHeading()
		case line.Comment:
			p.addBlock(&ast.WholeLineComment{
				Text: commentText(l.Text),
				Loc:  ast.NewLoc(l.Num, 1, l.Num, runeLen(l.Text)+1),
			})
			p.idx++
		case line.Bullet:
			p.parseBulletList()
		default:
			p.parseParagraph()
		}
	}
}

// addBlock appends a non-section block to the currently deepest open
// section, or to the document root when no section is open.
func (p *Parser) addBlock(b ast.Block) {
	if len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		top.Body = append(top.Body, b)
		return
	}
	p.doc.Body = append(p.doc.Body, b)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, primary source.Span, msg string) {
	if p.reporter == nil {
		return
	}
	p.reporter.Report(code, sev, primary, msg, nil)
}

// pointSpan builds an empty span anchored at a byte offset.
func (p *Parser) pointSpan(off uint32) source.Span {
	return source.Span{File: p.file.ID, Start: off, End: off}
}

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: end}
}

// offsetAt returns the byte offset of the rune with the given index on l.
func offsetAt(l line.Line, runeIdx int) uint32 {
	byteIdx := 0
	for i := 0; i < runeIdx; i++ {
		_, size := utf8.DecodeRuneInString(l.Text[byteIdx:])
		byteIdx += size
	}
	off, err := safecast.Conv[uint32](byteIdx)
	if err != nil {
		panic(fmt.Errorf("line offset overflow: %w", err))
	}
	return l.Start + off
}

func commentText(text string) string {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	trimmed = strings.TrimPrefix(trimmed, "#")
	return strings.TrimLeftFunc(trimmed, unicode.IsSpace)
}

func runeLen(s string) uint32 {
	return uint32(utf8.RuneCountInString(s))
}

func rstrip(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}
