package diag

type Code uint16

// Code buckets: 1xxx document-level, 2xxx inline, 3xxx fence, 4xxx section,
// 5xxx I/O.
// The ID strings are pinned by the snapshot format and must never change.
const (
	UnknownCode Code = 0

	// Document-level
	DocEmpty         Code = 1000
	DocHeaderInvalid Code = 1001

	// Inline
	InlineCommentIllegal Code = 2000
	InlineStrayBacktick  Code = 2001

	// Fences
	FenceUnterminated   Code = 3000
	FenceIndentMismatch Code = 3001
	FenceInTable        Code = 3002

	// Sections
	SectionParentMissing Code = 4000

	// I/O
	IOLoadFileError Code = 5000
)

var codeIDs = map[Code]string{
	DocEmpty:             "EMPTY",
	DocHeaderInvalid:     "HEADER_INVALID",
	InlineCommentIllegal: "INLINE_COMMENT_ILLEGAL",
	InlineStrayBacktick:  "STRAY_BACKTICK",
	FenceUnterminated:    "FENCE_UNTERMINATED",
	FenceIndentMismatch:  "FENCE_INDENT_MISMATCH",
	FenceInTable:         "FENCE_IN_TABLE",
	SectionParentMissing: "SECTION_PARENT_MISSING",
	IOLoadFileError:      "IO_LOAD_FILE",
}

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown diagnostic",
	DocEmpty:             "Empty document",
	DocHeaderInvalid:     "Invalid or missing header line",
	InlineCommentIllegal: "Inline comment not allowed in this context",
	InlineStrayBacktick:  "Unmatched backtick treated as literal text",
	FenceUnterminated:    "Unterminated fenced code block",
	FenceIndentMismatch:  "Fence close indentation does not match its opener",
	FenceInTable:         "Fenced code block delimiter inside table is not allowed",
	SectionParentMissing: "Missing parent section",
	IOLoadFileError:      "Failed to load file",
}

// ID returns the stable identifier used in serialized diagnostics.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return "[" + c.ID() + "]: " + c.Title()
}
