package line

import (
	"regexp"
	"strings"
)

// Patterns are pinned by the snapshot corpus; changing any of them changes
// classification for existing documents.
var (
	headerRE   = regexp.MustCompile(`^([A-Z]+(?: [A-Z]+)*): (.+)$`)
	metadataRE = regexp.MustCompile(`^\s*([A-Za-z0-9_-]+(?: [A-Za-z0-9_-]+)*): (.*)$`)
	sectionRE  = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.? ([A-Z](?:[A-Z ]*[A-Z])?)(?:: (.*))?$`)
	bulletRE   = regexp.MustCompile(`^(\s*)([-*+]) (.+)$`)
	tableRE    = regexp.MustCompile(`^\s*\|`)
	fenceRE    = regexp.MustCompile("^(\\s*)```(.*)$")
	commentRE  = regexp.MustCompile(`^\s*#`)
)

// Context is the per-parse state the classifier depends on. It is threaded
// through one parse invocation and never shared.
type Context struct {
	FirstLineSeen  bool
	HeaderAssigned bool
	MetadataMode   bool
	InsideFence    bool
	FenceIndent    int
}

// Classify resolves a line to exactly one kind using the fixed recognition
// order: Header, Metadata, FenceDelim, Blank, TableRow, SectionHeading,
// Comment, Bullet, Paragraph. First match wins. Inside an open fence only
// the fence-close test applies; everything else is raw content.
func Classify(text string, ctx Context) Kind {
	if ctx.InsideFence {
		if IsFenceClose(text, ctx.FenceIndent) {
			return FenceDelim
		}
		return Paragraph
	}

	if !ctx.FirstLineSeen && !ctx.HeaderAssigned {
		if headerRE.MatchString(StripInlineComment(text)) {
			return Header
		}
	}
	if ctx.MetadataMode && metadataRE.MatchString(StripInlineComment(text)) {
		return Metadata
	}
	if fenceRE.MatchString(text) {
		return FenceDelim
	}
	if strings.TrimSpace(text) == "" {
		return Blank
	}
	if tableRE.MatchString(text) {
		return TableRow
	}
	if sectionRE.MatchString(StripInlineComment(text)) {
		return SectionHeading
	}
	if commentRE.MatchString(text) {
		return Comment
	}
	if bulletRE.MatchString(text) {
		return Bullet
	}
	return Paragraph
}

// MatchHeader extracts the tag and free text of a header line.
func MatchHeader(text string) (tag, rest string, ok bool) {
	m := headerRE.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// MatchMetadata extracts the key and value of a metadata line.
func MatchMetadata(text string) (key, value string, ok bool) {
	m := metadataRE.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// MatchSection extracts the dotted number, title, and optional description
// of a section heading.
func MatchSection(text string) (number, title, desc string, ok bool) {
	m := sectionRE.FindStringSubmatch(text)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// MatchBullet extracts the indentation, marker glyph, and text of a bullet
// item line.
func MatchBullet(text string) (indent int, marker byte, rest string, ok bool) {
	m := bulletRE.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, "", false
	}
	return len(m[1]), m[2][0], m[3], true
}

// MatchFenceOpen extracts the indentation and raw info string of a fence
// delimiter line.
func MatchFenceOpen(text string) (indent int, info string, ok bool) {
	m := fenceRE.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// IsFenceClose reports whether text closes a fence opened at the given
// indentation: exactly that indent, three backticks, and nothing else but
// trailing whitespace.
func IsFenceClose(text string, indent int) bool {
	return strings.HasPrefix(text, strings.Repeat(" ", indent)+"```") &&
		strings.TrimSpace(text) == "```"
}

// LooksLikeFenceClose reports whether text would close a fence at some
// indentation. Used to flag indentation mismatches inside open fences.
func LooksLikeFenceClose(text string) bool {
	return strings.TrimSpace(text) == "```"
}

// IsTableRow reports whether the row delimiter is the first non-space
// character.
func IsTableRow(text string) bool {
	return tableRE.MatchString(text)
}

// IsComment reports whether text is a whole-line comment.
func IsComment(text string) bool {
	return commentRE.MatchString(text)
}

// IsBlank reports whether text is whitespace-only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// IsFenceDelim reports whether text opens a fence.
func IsFenceDelim(text string) bool {
	return fenceRE.MatchString(text)
}

// IsBulletItem reports whether text is a bullet item line.
func IsBulletItem(text string) bool {
	return bulletRE.MatchString(text)
}

// IsSectionHeading reports whether text (after detection-only comment
// stripping) is a section heading.
func IsSectionHeading(text string) bool {
	return sectionRE.MatchString(StripInlineComment(text))
}

// FindInlineComment returns the byte index of the first `i#` marker outside
// inline code spans, or -1 when the line carries none.
func FindInlineComment(text string) int {
	inCode := false
	for i := 0; i < len(text); i++ {
		if text[i] == '`' {
			inCode = !inCode
			continue
		}
		if !inCode && strings.HasPrefix(text[i:], "i#") {
			return i
		}
	}
	return -1
}

// StripInlineComment removes an inline comment without emitting diagnostics.
// Used for lookahead and detection checks only; the parser re-strips with a
// diagnostic when it actually consumes the line.
func StripInlineComment(text string) string {
	if i := FindInlineComment(text); i >= 0 {
		return strings.TrimRight(text[:i], " \t")
	}
	return text
}
