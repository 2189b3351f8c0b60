package line

// Kind represents the classification of a single input line.
type Kind uint8

const (
	// Invalid indicates a line that could not be classified.
	Invalid Kind = iota
	// Header is the document header line (first non-blank line only).
	Header
	// Metadata is a key/value line inside the metadata run.
	Metadata
	// FenceDelim opens or closes a fenced code block.
	FenceDelim
	// Blank is a whitespace-only line.
	Blank
	// TableRow starts with the row delimiter after optional indentation.
	TableRow
	// SectionHeading is a dotted-number heading with an uppercase title.
	SectionHeading
	// Comment is a whole-line comment.
	Comment
	// Bullet is a bullet list item line.
	Bullet
	// Paragraph is the fallback for any other non-blank line.
	Paragraph
)

func (k Kind) String() string {
	switch k {
	case Header:
		return "Header"
	case Metadata:
		return "Metadata"
	case FenceDelim:
		return "FenceDelim"
	case Blank:
		return "Blank"
	case TableRow:
		return "TableRow"
	case SectionHeading:
		return "SectionHeading"
	case Comment:
		return "Comment"
	case Bullet:
		return "Bullet"
	case Paragraph:
		return "Paragraph"
	}
	return "Invalid"
}
