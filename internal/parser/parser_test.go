package parser_test

import (
	"reflect"
	"testing"

	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/parser"
	"markxs/internal/source"
)

func parse(t *testing.T, input string) (*ast.Document, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.xs", []byte(input))
	bag := diag.NewBag(100)
	doc := parser.ParseFile(fs.Get(id), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return doc, bag
}

func diagCodes(bag *diag.Bag) []diag.Code {
	codes := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestHeaderMetadataSectionParagraph(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\nKey: V\n\n1. A\nHello.\n")

	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if doc.Header == nil || doc.Header.Tag != "SPEC" || doc.Header.Text != "X" {
		t.Fatalf("unexpected header: %+v", doc.Header)
	}
	if len(doc.Metadata) != 1 || doc.Metadata[0].Key != "Key" || doc.Metadata[0].Value != "V" {
		t.Fatalf("unexpected metadata: %+v", doc.Metadata)
	}
	if len(doc.Body) != 1 {
		t.Fatalf("expected 1 body block, got %d", len(doc.Body))
	}

	sec, ok := doc.Body[0].(*ast.Section)
	if !ok {
		t.Fatalf("expected Section, got %T", doc.Body[0])
	}
	if !reflect.DeepEqual(sec.Number, []int{1}) || sec.Title != "A" {
		t.Fatalf("unexpected section: %+v", sec)
	}
	if len(sec.Body) != 1 {
		t.Fatalf("expected paragraph inside section, got %+v", sec.Body)
	}

	para, ok := sec.Body[0].(*ast.Paragraph)
	if !ok {
		t.Fatalf("expected Paragraph, got %T", sec.Body[0])
	}
	text, ok := para.Inline[0].(*ast.Text)
	if !ok || text.Value != "Hello." {
		t.Fatalf("unexpected inline content: %+v", para.Inline)
	}
}

func TestHeaderOnlyOnFirstNonBlankLine(t *testing.T) {
	doc, _ := parse(t, "\n\nSPEC: after blanks\n")
	if doc.Header == nil || doc.Header.Text != "after blanks" {
		t.Fatalf("leading blanks must not disable the header: %+v", doc.Header)
	}
	if doc.Header.Loc.Start.Line != 3 {
		t.Errorf("header line = %d, want 3", doc.Header.Loc.Start.Line)
	}

	// A header-shaped line later in the document is an ordinary paragraph.
	doc, _ = parse(t, "SPEC: X\n\nTITLE: not a header\n")
	if len(doc.Body) != 1 {
		t.Fatalf("unexpected body: %+v", doc.Body)
	}
	if _, ok := doc.Body[0].(*ast.Paragraph); !ok {
		t.Fatalf("expected Paragraph, got %T", doc.Body[0])
	}
}

func TestInvalidHeaderConsumedWithDiagnostic(t *testing.T) {
	doc, bag := parse(t, "not a header\nbody line\n")
	if doc.Header != nil {
		t.Fatalf("expected nil header, got %+v", doc.Header)
	}
	if !reflect.DeepEqual(diagCodes(bag), []diag.Code{diag.DocHeaderInvalid}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	// The candidate line is consumed; the rest parses normally.
	if len(doc.Body) != 1 {
		t.Fatalf("unexpected body: %+v", doc.Body)
	}
}

func TestEmptyDocument(t *testing.T) {
	doc, bag := parse(t, "\n  \n")
	if doc.Header != nil || len(doc.Body) != 0 || len(doc.Metadata) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
	if !reflect.DeepEqual(diagCodes(bag), []diag.Code{diag.DocEmpty}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestMetadataRunTerminatesPermanently(t *testing.T) {
	doc, _ := parse(t, "SPEC: X\nA: 1\nB: 2\n\nC: 3\nD: 4\n")

	if len(doc.Metadata) != 2 {
		t.Fatalf("expected 2 metadata entries, got %+v", doc.Metadata)
	}
	// Metadata-shaped lines after the break are paragraph content, forever.
	if len(doc.Body) != 1 {
		t.Fatalf("unexpected body: %+v", doc.Body)
	}
	para, ok := doc.Body[0].(*ast.Paragraph)
	if !ok {
		t.Fatalf("expected Paragraph, got %T", doc.Body[0])
	}
	if text := para.Inline[0].(*ast.InlineLabel); text.Identifier != "C" {
		t.Fatalf("unexpected inline: %+v", para.Inline[0])
	}
}

func TestMetadataRunBrokenByForeignLine(t *testing.T) {
	doc, _ := parse(t, "SPEC: X\nA: 1\n# comment\nB: 2\n")
	if len(doc.Metadata) != 1 {
		t.Fatalf("expected metadata to stop at the comment, got %+v", doc.Metadata)
	}
	if _, ok := doc.Body[0].(*ast.WholeLineComment); !ok {
		t.Fatalf("expected WholeLineComment, got %T", doc.Body[0])
	}
}

func TestCommentSplitsTables(t *testing.T) {
	doc, _ := parse(t, "SPEC: X\n\n| a | b |\n| - | - |\n# interlude\n\n| c |\n")

	var tables []*ast.Table
	var comments []*ast.WholeLineComment
	for _, b := range doc.Body {
		switch n := b.(type) {
		case *ast.Table:
			tables = append(tables, n)
		case *ast.WholeLineComment:
			comments = append(comments, n)
		}
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if len(comments) != 1 || comments[0].Text != "interlude" {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	first := tables[0]
	if !reflect.DeepEqual(first.Header.Cells, []string{"a", "b"}) {
		t.Errorf("unexpected header cells: %+v", first.Header.Cells)
	}
	if first.Align == nil || len(first.Rows) != 0 {
		t.Errorf("expected align row and no data rows, got %+v", first)
	}
}

func TestBlankLineSplitsBulletLists(t *testing.T) {
	doc, _ := parse(t, "SPEC: X\n\n- first\n  wrapped tail\n\n* second\n")

	var lists []*ast.BulletList
	for _, b := range doc.Body {
		if l, ok := b.(*ast.BulletList); ok {
			lists = append(lists, l)
		}
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 bullet lists, got %d", len(lists))
	}

	item := lists[0].Items[0]
	if item.Marker != '-' {
		t.Errorf("marker = %q, want '-'", item.Marker)
	}
	if !reflect.DeepEqual(item.Continuation, []string{"wrapped tail"}) {
		t.Errorf("unexpected continuation: %+v", item.Continuation)
	}
	// Continuations fold into the inline content as well.
	if text := item.Inline[0].(*ast.Text); text.Value != "first wrapped tail" {
		t.Errorf("unexpected folded inline: %+v", item.Inline)
	}
	if item.Loc.End.Line != 4 {
		t.Errorf("item end line = %d, want 4", item.Loc.End.Line)
	}

	if lists[1].Items[0].Marker != '*' {
		t.Errorf("unexpected second list: %+v", lists[1].Items)
	}
}

func TestBulletContinuationStopsAtForeignBlocks(t *testing.T) {
	doc, _ := parse(t, "SPEC: X\n\n- item\n  | not a continuation |\n")
	list := doc.Body[0].(*ast.BulletList)
	if len(list.Items[0].Continuation) != 0 {
		t.Fatalf("table row must terminate continuation lookahead: %+v", list.Items[0])
	}
	if _, ok := doc.Body[1].(*ast.Table); !ok {
		t.Fatalf("expected Table after the list, got %T", doc.Body[1])
	}
}

func TestLowercaseSectionTitleIsParagraph(t *testing.T) {
	doc, _ := parse(t, "SPEC: X\n\n1. not uppercase title\n")
	if _, ok := doc.Body[0].(*ast.Paragraph); !ok {
		t.Fatalf("expected Paragraph, got %T", doc.Body[0])
	}
}

func TestSectionNestingClosure(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\n\n1. ONE\n1.1 ONE ONE\n1.1.1 DEEP\n1.2 ONE TWO\n2. TWO\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	if len(doc.Body) != 2 {
		t.Fatalf("expected 2 root sections, got %d", len(doc.Body))
	}
	one := doc.Body[0].(*ast.Section)
	if len(one.Body) != 2 {
		t.Fatalf("expected 1.1 and 1.2 under 1, got %+v", one.Body)
	}
	oneOne := one.Body[0].(*ast.Section)
	if len(oneOne.Body) != 1 {
		t.Fatalf("expected 1.1.1 under 1.1, got %+v", oneOne.Body)
	}
	deep := oneOne.Body[0].(*ast.Section)
	if !reflect.DeepEqual(deep.Number, []int{1, 1, 1}) || deep.Level() != 3 {
		t.Fatalf("unexpected deep section: %+v", deep)
	}
}

func TestOrphanedSectionAttachesAtRoot(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\n\n2.1 ORPHAN\n")

	if !reflect.DeepEqual(diagCodes(bag), []diag.Code{diag.SectionParentMissing}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if bag.Items()[0].Severity != diag.SevError {
		t.Errorf("orphaned numbering must be an error, got %v", bag.Items()[0].Severity)
	}
	sec, ok := doc.Body[0].(*ast.Section)
	if !ok || !reflect.DeepEqual(sec.Number, []int{2, 1}) {
		t.Fatalf("orphan must attach at root: %+v", doc.Body)
	}
}

func TestNonSectionBlocksAttachToDeepestOpenSection(t *testing.T) {
	doc, _ := parse(t, "SPEC: X\n\n1. ONE\n1.1 SUB\ninside sub\n2. TWO\nafter two\n")

	one := doc.Body[0].(*ast.Section)
	sub := one.Body[0].(*ast.Section)
	if _, ok := sub.Body[0].(*ast.Paragraph); !ok {
		t.Fatalf("paragraph should land in 1.1, got %+v", sub.Body)
	}
	two := doc.Body[1].(*ast.Section)
	if _, ok := two.Body[0].(*ast.Paragraph); !ok {
		t.Fatalf("paragraph should land in 2, got %+v", two.Body)
	}
}

func TestFenceOpacity(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\n\n```txt\n| table |\n# comment\n- bullet\n1. TITLE\n```\nafter\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	fence, ok := doc.Body[0].(*ast.FencedCodeBlock)
	if !ok {
		t.Fatalf("expected FencedCodeBlock, got %T", doc.Body[0])
	}
	if fence.Info != "txt" || fence.Indent != 0 {
		t.Errorf("unexpected fence metadata: %+v", fence)
	}
	want := []string{"| table |", "# comment", "- bullet", "1. TITLE"}
	if !reflect.DeepEqual(fence.Content, want) {
		t.Errorf("content = %+v, want %+v", fence.Content, want)
	}
	if _, ok := doc.Body[1].(*ast.Paragraph); !ok {
		t.Fatalf("expected paragraph after fence, got %T", doc.Body[1])
	}
}

func TestUnterminatedFence(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\n\n```\ntrailing\n")

	if !reflect.DeepEqual(diagCodes(bag), []diag.Code{diag.FenceUnterminated}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fence := doc.Body[0].(*ast.FencedCodeBlock)
	if !reflect.DeepEqual(fence.Content, []string{"trailing"}) {
		t.Errorf("unterminated fence must consume to end of input: %+v", fence.Content)
	}
}

func TestFenceCloseIndentMismatch(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\n\n  ```\ncontent\n```\n  ```\n")

	fence := doc.Body[0].(*ast.FencedCodeBlock)
	if fence.Indent != 2 {
		t.Fatalf("fence indent = %d, want 2", fence.Indent)
	}
	// The mis-indented close stays inside the fence as raw content.
	if !reflect.DeepEqual(fence.Content, []string{"content", "```"}) {
		t.Errorf("unexpected content: %+v", fence.Content)
	}

	codes := diagCodes(bag)
	if !reflect.DeepEqual(codes, []diag.Code{diag.FenceIndentMismatch}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestFenceDelimiterInsideTable(t *testing.T) {
	_, bag := parse(t, "SPEC: X\n\n| a | ``` |\n")
	if !reflect.DeepEqual(diagCodes(bag), []diag.Code{diag.FenceInTable}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestHeaderInlineCommentStripped(t *testing.T) {
	doc, bag := parse(t, "SPEC: X i# hidden note\n")

	if doc.Header == nil || doc.Header.Text != "X" {
		t.Fatalf("comment must be stripped from header text: %+v", doc.Header)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.InlineCommentIllegal || items[0].Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostics: %v", items)
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.xs", []byte("SPEC: X i# hidden note\n"))
	start := fs.Get(id).Pos(items[0].Primary.Start)
	if start.Line != 1 || start.Col != 9 {
		t.Errorf("diagnostic position = %+v, want 1:9", start)
	}
}

func TestSectionHeadingInlineCommentStripped(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\n\n1. TITLE: desc i# note\n")

	sec := doc.Body[0].(*ast.Section)
	if sec.Description != "desc" {
		t.Errorf("description = %q, want %q", sec.Description, "desc")
	}
	if !reflect.DeepEqual(diagCodes(bag), []diag.Code{diag.InlineCommentIllegal}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestInlineCommentLegalInParagraphAndBullet(t *testing.T) {
	doc, bag := parse(t, "SPEC: X\n\nvisible i# aside\n- item i# note\n")
	if bag.Len() != 0 {
		t.Fatalf("legal inline comments must not draw diagnostics: %v", bag.Items())
	}

	para := doc.Body[0].(*ast.Paragraph)
	last := para.Inline[len(para.Inline)-1].(*ast.InlineComment)
	if last.Text != "aside" {
		t.Errorf("paragraph comment = %q, want %q", last.Text, "aside")
	}

	list := doc.Body[1].(*ast.BulletList)
	inline := list.Items[0].Inline
	if c, ok := inline[len(inline)-1].(*ast.InlineComment); !ok || c.Text != "note" {
		t.Errorf("unexpected bullet inline: %+v", inline)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := "SPEC: X\nA: 1\n\n1. S\n- a `code` b\n| t |\n\ntext Label: tail\n"
	first, _ := parse(t, input)
	second, _ := parse(t, input)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical input must produce identical trees")
	}
}
