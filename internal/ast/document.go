package ast

import (
	"markxs/internal/diag"
)

// Document is the root node of a parsed MarkXS file. It is created once per
// parse invocation and never mutated afterwards.
type Document struct {
	Header      *Header // nil when the first non-blank line did not match
	Metadata    []MetadataEntry
	Body        []Block // tree-shaped after section nesting
	Diagnostics []diag.Diagnostic
	Loc         Loc
}

func (*Document) NodeType() string { return TypeDocument }
func (d *Document) Location() Loc  { return d.Loc }

// Header is the document header. Only the first non-blank line of the
// document may produce it; at most one per document.
type Header struct {
	Tag  string // non-empty run of uppercase words
	Text string
	Loc  Loc
}

func (*Header) NodeType() string { return TypeHeader }
func (h *Header) Location() Loc  { return h.Loc }

// MetadataEntry is one key/value line of the contiguous run immediately
// following the header. The run terminates permanently once broken.
type MetadataEntry struct {
	Key   string
	Value string
	Loc   Loc
}

func (*MetadataEntry) NodeType() string { return TypeMetadataEntry }
func (m *MetadataEntry) Location() Loc  { return m.Loc }
