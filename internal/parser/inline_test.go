package parser_test

import (
	"reflect"
	"testing"

	"markxs/internal/ast"
	"markxs/internal/diag"
)

func paraInline(t *testing.T, line string) ([]ast.Inline, *diag.Bag) {
	t.Helper()
	doc, bag := parse(t, "SPEC: X\n\n"+line+"\n")
	if len(doc.Body) != 1 {
		t.Fatalf("expected a single paragraph, got %+v", doc.Body)
	}
	para, ok := doc.Body[0].(*ast.Paragraph)
	if !ok {
		t.Fatalf("expected Paragraph, got %T", doc.Body[0])
	}
	return para.Inline, bag
}

func inlineTypes(nodes []ast.Inline) []string {
	types := make([]string, len(nodes))
	for i, n := range nodes {
		types[i] = n.NodeType()
	}
	return types
}

func TestInlineCodeSpan(t *testing.T) {
	inline, bag := paraInline(t, "before `x := 1` after")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	want := []string{ast.TypeText, ast.TypeInlineCode, ast.TypeText}
	if !reflect.DeepEqual(inlineTypes(inline), want) {
		t.Fatalf("segments = %v, want %v", inlineTypes(inline), want)
	}
	code := inline[1].(*ast.InlineCode)
	if code.Code != "x := 1" {
		t.Errorf("code = %q, want %q", code.Code, "x := 1")
	}
	// The loc covers the span content, not the delimiting backticks.
	if code.Loc.Start.Col != 9 || code.Loc.End.Col != 15 {
		t.Errorf("code loc = %+v", code.Loc)
	}
}

func TestInlineLabels(t *testing.T) {
	inline, _ := paraInline(t, "see Label-1: tail Other: rest")

	want := []string{ast.TypeText, ast.TypeInlineLabel, ast.TypeInlineLabel}
	if !reflect.DeepEqual(inlineTypes(inline), want) {
		t.Fatalf("segments = %v, want %v", inlineTypes(inline), want)
	}

	first := inline[1].(*ast.InlineLabel)
	if first.Identifier != "Label-1" || first.Text != " tail " {
		t.Errorf("unexpected first label: %+v", first)
	}
	second := inline[2].(*ast.InlineLabel)
	if second.Identifier != "Other" || second.Text != " rest" {
		t.Errorf("unexpected second label: %+v", second)
	}
}

func TestLabelsNotRecognizedInsideCode(t *testing.T) {
	inline, _ := paraInline(t, "`Key: value` outside")

	want := []string{ast.TypeInlineCode, ast.TypeText}
	if !reflect.DeepEqual(inlineTypes(inline), want) {
		t.Fatalf("segments = %v, want %v", inlineTypes(inline), want)
	}
	if inline[0].(*ast.InlineCode).Code != "Key: value" {
		t.Errorf("unexpected code: %+v", inline[0])
	}
}

func TestInlineCommentSplit(t *testing.T) {
	inline, _ := paraInline(t, "visible `a` text i# hidden `b`")

	last := inline[len(inline)-1]
	c, ok := last.(*ast.InlineComment)
	if !ok {
		t.Fatalf("expected trailing InlineComment, got %T", last)
	}
	if c.Text != "hidden `b`" {
		t.Errorf("comment = %q, want %q", c.Text, "hidden `b`")
	}
	// Nothing before the marker is a comment; the code span survives.
	if !reflect.DeepEqual(inlineTypes(inline[:len(inline)-1]),
		[]string{ast.TypeText, ast.TypeInlineCode, ast.TypeText}) {
		t.Errorf("prefix segments = %v", inlineTypes(inline))
	}
}

func TestCommentMarkerInsideCodeIgnored(t *testing.T) {
	inline, bag := paraInline(t, "text `i# not a comment` end")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	for _, n := range inline {
		if n.NodeType() == ast.TypeInlineComment {
			t.Fatalf("i# inside a code span must be literal: %+v", inline)
		}
	}
}

func TestUnmatchedBacktickIsLiteral(t *testing.T) {
	inline, bag := paraInline(t, "broken `span")

	if !reflect.DeepEqual(diagCodes(bag), []diag.Code{diag.InlineStrayBacktick}) {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if bag.Items()[0].Severity != diag.SevInfo {
		t.Errorf("stray backtick should be informational, got %v", bag.Items()[0].Severity)
	}
	if len(inline) != 2 {
		t.Fatalf("segments = %v", inlineTypes(inline))
	}
	if text := inline[1].(*ast.Text); text.Value != "`span" {
		t.Errorf("text = %q, want literal backtick preserved", text.Value)
	}
}

func TestInlineColumnsCountRunes(t *testing.T) {
	inline, _ := paraInline(t, "héllo `c`")

	code := inline[1].(*ast.InlineCode)
	// 6 runes of text and one opening backtick precede the span.
	if code.Loc.Start.Col != 8 {
		t.Errorf("code start col = %d, want 8", code.Loc.Start.Col)
	}
}
