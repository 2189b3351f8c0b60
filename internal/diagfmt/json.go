package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/source"
)

// PointJSON is a single line/column position.
type PointJSON struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// LocJSON is a start/end range in line/column coordinates.
type LocJSON struct {
	Start PointJSON `json:"start"`
	End   PointJSON `json:"end"`
}

// HeaderJSON mirrors ast.Header.
type HeaderJSON struct {
	Type string  `json:"type"`
	Tag  string  `json:"tag"`
	Text string  `json:"text"`
	Loc  LocJSON `json:"loc"`
}

// MetadataEntryJSON mirrors ast.MetadataEntry.
type MetadataEntryJSON struct {
	Type  string  `json:"type"`
	Key   string  `json:"key"`
	Value string  `json:"value"`
	Loc   LocJSON `json:"loc"`
}

// DiagnosticJSON is the serialized form of a diagnostic. The loc is the
// resolved position of the primary span's start.
type DiagnosticJSON struct {
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Code     string    `json:"code"`
	Loc      PointJSON `json:"loc"`
}

// DocumentJSON is the root of the snapshot output. Header is emitted as an
// explicit null when the document has none; diagnostics are omitted entirely
// when the parse was clean.
type DocumentJSON struct {
	Type        string              `json:"type"`
	Header      *HeaderJSON         `json:"header"`
	Metadata    []MetadataEntryJSON `json:"metadata"`
	Body        []any               `json:"body"`
	Diagnostics []DiagnosticJSON    `json:"diagnostics,omitempty"`
}

type sectionJSON struct {
	Type        string  `json:"type"`
	Number      []int   `json:"number"`
	Title       string  `json:"title"`
	Body        []any   `json:"body"`
	Level       int     `json:"level"`
	Loc         LocJSON `json:"loc"`
	Description string  `json:"description,omitempty"`
	RawHeading  string  `json:"rawHeading,omitempty"`
}

type paragraphJSON struct {
	Type   string  `json:"type"`
	Inline []any   `json:"inline"`
	Loc    LocJSON `json:"loc"`
}

type bulletListJSON struct {
	Type  string           `json:"type"`
	Items []bulletItemJSON `json:"items"`
	Loc   LocJSON          `json:"loc"`
}

type bulletItemJSON struct {
	Type         string   `json:"type"`
	Marker       string   `json:"marker"`
	Inline       []any    `json:"inline"`
	Continuation []string `json:"continuation,omitempty"`
	Loc          LocJSON  `json:"loc"`
}

type tableJSON struct {
	Type   string         `json:"type"`
	Header tableRowJSON   `json:"header"`
	Rows   []tableRowJSON `json:"rows"`
	Loc    LocJSON        `json:"loc"`
	Align  *tableRowJSON  `json:"align,omitempty"`
}

type tableRowJSON struct {
	Type  string   `json:"type"`
	Cells []string `json:"cells"`
	Loc   LocJSON  `json:"loc"`
}

type fencedJSON struct {
	Type       string   `json:"type"`
	InfoString *string  `json:"infoString"`
	Indent     int      `json:"indent"`
	Content    []string `json:"content"`
	Loc        LocJSON  `json:"loc"`
}

type commentJSON struct {
	Type string  `json:"type"`
	Text string  `json:"text"`
	Loc  LocJSON `json:"loc"`
}

type blankJSON struct {
	Type string  `json:"type"`
	Loc  LocJSON `json:"loc"`
}

type textJSON struct {
	Type  string  `json:"type"`
	Value string  `json:"value"`
	Loc   LocJSON `json:"loc"`
}

type inlineCodeJSON struct {
	Type string  `json:"type"`
	Code string  `json:"code"`
	Loc  LocJSON `json:"loc"`
}

type inlineLabelJSON struct {
	Type       string  `json:"type"`
	Identifier string  `json:"identifier"`
	Text       string  `json:"text,omitempty"`
	Loc        LocJSON `json:"loc"`
}

type inlineCommentJSON struct {
	Type string  `json:"type"`
	Text string  `json:"text"`
	Loc  LocJSON `json:"loc"`
}

func makeLoc(loc ast.Loc) LocJSON {
	return LocJSON{
		Start: PointJSON{Line: loc.Start.Line, Column: loc.Start.Col},
		End:   PointJSON{Line: loc.End.Line, Column: loc.End.Col},
	}
}

// BuildDocumentJSON converts a parsed document into its serializable shape.
// The file is needed to resolve diagnostic spans into line/column positions.
func BuildDocumentJSON(doc *ast.Document, f *source.File) DocumentJSON {
	out := DocumentJSON{
		Type:     ast.TypeDocument,
		Metadata: make([]MetadataEntryJSON, 0, len(doc.Metadata)),
		Body:     blocksJSON(doc.Body),
	}
	if doc.Header != nil {
		out.Header = &HeaderJSON{
			Type: ast.TypeHeader,
			Tag:  doc.Header.Tag,
			Text: doc.Header.Text,
			Loc:  makeLoc(doc.Header.Loc),
		}
	}
	for _, m := range doc.Metadata {
		out.Metadata = append(out.Metadata, MetadataEntryJSON{
			Type:  ast.TypeMetadataEntry,
			Key:   m.Key,
			Value: m.Value,
			Loc:   makeLoc(m.Loc),
		})
	}
	for _, d := range doc.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticJSON(d, f))
	}
	return out
}

func diagnosticJSON(d diag.Diagnostic, f *source.File) DiagnosticJSON {
	pos := f.Pos(d.Primary.Start)
	return DiagnosticJSON{
		Severity: d.Severity.Label(),
		Message:  d.Message,
		Code:     d.Code.ID(),
		Loc:      PointJSON{Line: pos.Line, Column: pos.Col},
	}
}

func blocksJSON(blocks []ast.Block) []any {
	out := make([]any, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockJSON(b))
	}
	return out
}

func blockJSON(b ast.Block) any {
	switch n := b.(type) {
	case *ast.Section:
		return sectionJSON{
			Type:        ast.TypeSection,
			Number:      n.Number,
			Title:       n.Title,
			Body:        blocksJSON(n.Body),
			Level:       n.Level(),
			Loc:         makeLoc(n.Loc),
			Description: n.Description,
			RawHeading:  n.RawHeading,
		}
	case *ast.Paragraph:
		return paragraphJSON{
			Type:   ast.TypeParagraph,
			Inline: inlinesJSON(n.Inline),
			Loc:    makeLoc(n.Loc),
		}
	case *ast.BulletList:
		items := make([]bulletItemJSON, 0, len(n.Items))
		for _, it := range n.Items {
			items = append(items, bulletItemJSON{
				Type:         ast.TypeBulletItem,
				Marker:       string(it.Marker),
				Inline:       inlinesJSON(it.Inline),
				Continuation: it.Continuation,
				Loc:          makeLoc(it.Loc),
			})
		}
		return bulletListJSON{Type: ast.TypeBulletList, Items: items, Loc: makeLoc(n.Loc)}
	case *ast.Table:
		t := tableJSON{
			Type:   ast.TypeTable,
			Header: tableRowToJSON(n.Header),
			Rows:   make([]tableRowJSON, 0, len(n.Rows)),
			Loc:    makeLoc(n.Loc),
		}
		for _, r := range n.Rows {
			t.Rows = append(t.Rows, tableRowToJSON(r))
		}
		if n.Align != nil {
			align := tableRowToJSON(*n.Align)
			t.Align = &align
		}
		return t
	case *ast.FencedCodeBlock:
		f := fencedJSON{
			Type:    ast.TypeFencedCodeBlock,
			Indent:  n.Indent,
			Content: n.Content,
			Loc:     makeLoc(n.Loc),
		}
		if n.Info != "" {
			info := n.Info
			f.InfoString = &info
		}
		return f
	case *ast.WholeLineComment:
		return commentJSON{Type: ast.TypeWholeLineComment, Text: n.Text, Loc: makeLoc(n.Loc)}
	case *ast.BlankLine:
		return blankJSON{Type: ast.TypeBlankLine, Loc: makeLoc(n.Loc)}
	default:
		panic(fmt.Sprintf("diagfmt: unknown block node %T", b))
	}
}

func tableRowToJSON(r ast.TableRow) tableRowJSON {
	return tableRowJSON{Type: ast.TypeTableRow, Cells: r.Cells, Loc: makeLoc(r.Loc)}
}

func inlinesJSON(nodes []ast.Inline) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, inlineJSON(n))
	}
	return out
}

func inlineJSON(n ast.Inline) any {
	switch v := n.(type) {
	case *ast.Text:
		return textJSON{Type: ast.TypeText, Value: v.Value, Loc: makeLoc(v.Loc)}
	case *ast.InlineCode:
		return inlineCodeJSON{Type: ast.TypeInlineCode, Code: v.Code, Loc: makeLoc(v.Loc)}
	case *ast.InlineLabel:
		return inlineLabelJSON{
			Type:       ast.TypeInlineLabel,
			Identifier: v.Identifier,
			Text:       v.Text,
			Loc:        makeLoc(v.Loc),
		}
	case *ast.InlineComment:
		return inlineCommentJSON{Type: ast.TypeInlineComment, Text: v.Text, Loc: makeLoc(v.Loc)}
	default:
		panic(fmt.Sprintf("diagfmt: unknown inline node %T", n))
	}
}

// JSON serializes a parsed document with two-space indentation and a
// trailing newline. The byte output is deterministic for a given document.
func JSON(w io.Writer, doc *ast.Document, f *source.File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDocumentJSON(doc, f))
}
