package ast

import (
	"markxs/internal/source"
)

// Stable node type names. The editor grammar layer and the snapshot corpus
// key off these strings; they must never change.
const (
	TypeDocument         = "Document"
	TypeHeader           = "Header"
	TypeMetadataEntry    = "MetadataEntry"
	TypeSection          = "Section"
	TypeParagraph        = "Paragraph"
	TypeBulletList       = "BulletList"
	TypeBulletItem       = "BulletItem"
	TypeTable            = "Table"
	TypeTableRow         = "TableRow"
	TypeFencedCodeBlock  = "FencedCodeBlock"
	TypeWholeLineComment = "WholeLineComment"
	TypeBlankLine        = "BlankLine"
	TypeText             = "Text"
	TypeInlineCode       = "InlineCode"
	TypeInlineLabel      = "InlineLabel"
	TypeInlineComment    = "InlineComment"
)

// Loc is a 1-based start/end position pair attached to every node.
type Loc struct {
	Start source.LineCol
	End   source.LineCol
}

// NewLoc builds a Loc from raw 1-based line/column values.
func NewLoc(startLine, startCol, endLine, endCol uint32) Loc {
	return Loc{
		Start: source.LineCol{Line: startLine, Col: startCol},
		End:   source.LineCol{Line: endLine, Col: endCol},
	}
}

// Node is implemented by every AST node.
type Node interface {
	NodeType() string
	Location() Loc
}

// Block is a structural unit spanning one or more whole lines.
type Block interface {
	Node
	blockNode()
}

// Inline is a structural unit within a single text run inside a block.
type Inline interface {
	Node
	inlineNode()
}
