package line

import (
	"testing"
)

func TestClassifyRecognitionOrder(t *testing.T) {
	body := Context{FirstLineSeen: true, HeaderAssigned: true}

	cases := []struct {
		name string
		text string
		ctx  Context
		want Kind
	}{
		{"header on first line", "SPEC: Example", Context{}, Header},
		{"header pattern later is a paragraph", "SPEC: Example", body, Paragraph},
		{"metadata only in metadata mode", "Key: value", Context{FirstLineSeen: true, HeaderAssigned: true, MetadataMode: true}, Metadata},
		{"metadata pattern outside mode is a paragraph", "Key: value", body, Paragraph},
		{"fence open", "```go", body, FenceDelim},
		{"indented fence open", "  ```", body, FenceDelim},
		{"blank", "   ", body, Blank},
		{"empty", "", body, Blank},
		{"table row", "| a | b |", body, TableRow},
		{"indented table row", "  | a |", body, TableRow},
		{"section heading", "1. TITLE", body, SectionHeading},
		{"nested section heading", "2.1 DETAILS: more", body, SectionHeading},
		{"lowercase title is a paragraph", "1. not uppercase title", body, Paragraph},
		{"comment", "# note", body, Comment},
		{"indented comment", "   # note", body, Comment},
		{"bullet dash", "- item", body, Bullet},
		{"bullet star", "* item", body, Bullet},
		{"bullet plus", "+ item", body, Bullet},
		{"bullet without space is a paragraph", "-item", body, Paragraph},
		{"paragraph fallback", "plain text", body, Paragraph},
	}
	for _, tc := range cases {
		if got := Classify(tc.text, tc.ctx); got != tc.want {
			t.Errorf("%s: Classify(%q) = %v, want %v", tc.name, tc.text, got, tc.want)
		}
	}
}

// A line matching several patterns must resolve to the earliest kind in the
// nine-step order.
func TestClassifyPrecedence(t *testing.T) {
	body := Context{FirstLineSeen: true, HeaderAssigned: true}

	cases := []struct {
		name string
		text string
		want Kind
	}{
		// Table wins over comment: '|' is the first non-space character.
		{"table beats paragraph", "| # not a comment |", TableRow},
		// Comment wins over bullet: '#' precedes the marker test.
		{"comment beats bullet", "# - not a bullet", Comment},
		// Section wins over bullet-looking continuations.
		{"section beats paragraph", "1. UPPER: desc", SectionHeading},
		// Fence wins over table.
		{"fence beats everything", "```| not a row", FenceDelim},
	}
	for _, tc := range cases {
		if got := Classify(tc.text, body); got != tc.want {
			t.Errorf("%s: Classify(%q) = %v, want %v", tc.name, tc.text, got, tc.want)
		}
	}
}

func TestClassifyInsideFence(t *testing.T) {
	ctx := Context{FirstLineSeen: true, HeaderAssigned: true, InsideFence: true, FenceIndent: 2}

	// Content lines keep their raw shape regardless of what they resemble.
	for _, text := range []string{"| table |", "# comment", "- bullet", "1. TITLE", "SPEC: X"} {
		if got := Classify(text, ctx); got != Paragraph {
			t.Errorf("Classify(%q) inside fence = %v, want Paragraph", text, got)
		}
	}

	if got := Classify("  ```", ctx); got != FenceDelim {
		t.Errorf("matching close = %v, want FenceDelim", got)
	}
	// Wrong indentation does not close the fence.
	if got := Classify("```", ctx); got != Paragraph {
		t.Errorf("mis-indented close = %v, want Paragraph", got)
	}
	if got := Classify("  ``` trailing", ctx); got != Paragraph {
		t.Errorf("close with trailing content = %v, want Paragraph", got)
	}
}

func TestFindInlineComment(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"plain text", -1},
		{"before i# after", 7},
		{"`i# inside code`", -1},
		{"`code` then i# comment", 12},
		{"i# at start", 0},
	}
	for _, tc := range cases {
		if got := FindInlineComment(tc.text); got != tc.want {
			t.Errorf("FindInlineComment(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestStripInlineComment(t *testing.T) {
	if got := StripInlineComment("SPEC: X i# hidden"); got != "SPEC: X" {
		t.Errorf("StripInlineComment = %q, want %q", got, "SPEC: X")
	}
	if got := StripInlineComment("untouched"); got != "untouched" {
		t.Errorf("StripInlineComment = %q, want unchanged", got)
	}
}

func TestMatchSection(t *testing.T) {
	number, title, desc, ok := MatchSection("2.1 DETAILS: the fine print")
	if !ok || number != "2.1" || title != "DETAILS" || desc != "the fine print" {
		t.Errorf("MatchSection = (%q, %q, %q, %v)", number, title, desc, ok)
	}

	// Optional trailing dot after the number.
	if _, _, _, ok := MatchSection("1. OVERVIEW"); !ok {
		t.Error("expected '1. OVERVIEW' to match")
	}
	if _, _, _, ok := MatchSection("3 SCOPE"); !ok {
		t.Error("expected '3 SCOPE' to match")
	}
	if _, _, _, ok := MatchSection("1. lowercase"); ok {
		t.Error("lowercase title must not match")
	}
}

func TestScanLines(t *testing.T) {
	fsFile := newVirtualFile(t, "SPEC: X\n\nbody\n")
	lines := Scan(fsFile)

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	wantTexts := []string{"SPEC: X", "", "body"}
	wantStarts := []uint32{0, 8, 9}
	for i, l := range lines {
		if l.Text != wantTexts[i] || l.Start != wantStarts[i] || l.Num != uint32(i+1) {
			t.Errorf("line %d = %+v, want text %q start %d", i, l, wantTexts[i], wantStarts[i])
		}
	}
}

func TestScanNoTrailingNewline(t *testing.T) {
	lines := Scan(newVirtualFile(t, "one\ntwo"))
	if len(lines) != 2 || lines[1].Text != "two" {
		t.Fatalf("unexpected lines: %+v", lines)
	}

	if got := Scan(newVirtualFile(t, "")); got != nil {
		t.Errorf("empty file should scan to nil, got %+v", got)
	}
}
