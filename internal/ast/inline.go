package ast

// Text is a maximal run of characters claimed by no other inline kind.
type Text struct {
	Value string
	Loc   Loc
}

func (*Text) NodeType() string { return TypeText }
func (t *Text) Location() Loc  { return t.Loc }

// InlineCode is a span delimited by a single backtick pair.
type InlineCode struct {
	Code string
	Loc  Loc
}

func (*InlineCode) NodeType() string { return TypeInlineCode }
func (c *InlineCode) Location() Loc  { return c.Loc }

// InlineLabel is an identifier followed by a colon, optionally with trailing
// text up to the next recognized boundary.
type InlineLabel struct {
	Identifier string
	Text       string // optional
	Loc        Loc
}

func (*InlineLabel) NodeType() string { return TypeInlineLabel }
func (l *InlineLabel) Location() Loc  { return l.Loc }

// InlineComment is an `i#` span running to end of line. Only legal inside
// paragraph and bullet text.
type InlineComment struct {
	Text string
	Loc  Loc
}

func (*InlineComment) NodeType() string { return TypeInlineComment }
func (c *InlineComment) Location() Loc  { return c.Loc }

func (*Text) inlineNode()          {}
func (*InlineCode) inlineNode()    {}
func (*InlineLabel) inlineNode()   {}
func (*InlineComment) inlineNode() {}
