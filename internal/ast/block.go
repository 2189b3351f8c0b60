package ast

// Section is a numbered heading with its owned body. Its number sequence,
// minus the last element, must equal an ancestor's full number sequence, or
// it attaches at the document root with a diagnostic.
type Section struct {
	Number      []int // non-empty, positive integers
	Title       string
	Description string // optional
	Body        []Block
	RawHeading  string // optional, the heading line as written
	Loc         Loc
}

func (*Section) NodeType() string { return TypeSection }
func (s *Section) Location() Loc  { return s.Loc }

// Level is the nesting depth derived from the dotted number.
func (s *Section) Level() int { return len(s.Number) }

// Paragraph is one or more contiguous non-blank lines that fail every other
// block-kind test, joined into a single inline run.
type Paragraph struct {
	Inline []Inline
	Loc    Loc
}

func (*Paragraph) NodeType() string { return TypeParagraph }
func (p *Paragraph) Location() Loc  { return p.Loc }

// BulletList groups contiguous bullet items. A blank line or foreign block
// kind between items splits the list.
type BulletList struct {
	Items []BulletItem
	Loc   Loc
}

func (*BulletList) NodeType() string { return TypeBulletList }
func (b *BulletList) Location() Loc  { return b.Loc }

// BulletItem is a single marker line plus any wrapped continuation lines.
// Continuations are folded into Inline and also preserved raw.
type BulletItem struct {
	Marker       byte // one of '-', '*', '+'
	Inline       []Inline
	Continuation []string // optional, raw wrapped lines
	Loc          Loc
}

func (*BulletItem) NodeType() string { return TypeBulletItem }
func (b *BulletItem) Location() Loc  { return b.Loc }

// Table is a run of contiguous row-delimiter lines: a mandatory header row,
// an optional alignment row, and zero or more data rows.
type Table struct {
	Header TableRow
	Align  *TableRow // optional
	Rows   []TableRow
	Loc    Loc
}

func (*Table) NodeType() string { return TypeTable }
func (t *Table) Location() Loc  { return t.Loc }

// TableRow is one delimiter line split into trimmed cells.
type TableRow struct {
	Cells []string
	Loc   Loc
}

func (*TableRow) NodeType() string { return TypeTableRow }
func (t *TableRow) Location() Loc  { return t.Loc }

// FencedCodeBlock holds verbatim content between a matched fence pair. The
// delimiters are part of the block's extent but not of Content.
type FencedCodeBlock struct {
	Info    string // optional, unparsed info string
	Indent  int    // leading-space count of the opening fence
	Content []string
	Loc     Loc
}

func (*FencedCodeBlock) NodeType() string { return TypeFencedCodeBlock }
func (f *FencedCodeBlock) Location() Loc  { return f.Loc }

// WholeLineComment is a line whose first non-space character is '#'.
type WholeLineComment struct {
	Text string // comment text without the marker
	Loc  Loc
}

func (*WholeLineComment) NodeType() string { return TypeWholeLineComment }
func (c *WholeLineComment) Location() Loc  { return c.Loc }

// BlankLine is a retained whitespace-only line.
type BlankLine struct {
	Loc Loc
}

func (*BlankLine) NodeType() string { return TypeBlankLine }
func (b *BlankLine) Location() Loc  { return b.Loc }

func (*Section) blockNode()          {}
func (*Paragraph) blockNode()        {}
func (*BulletList) blockNode()       {}
func (*Table) blockNode()            {}
func (*FencedCodeBlock) blockNode()  {}
func (*WholeLineComment) blockNode() {}
func (*BlankLine) blockNode()        {}
