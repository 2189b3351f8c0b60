package line

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"markxs/internal/source"
)

// Line is one physical input line with its position in the file.
type Line struct {
	Num   uint32 // 1-based
	Start uint32 // byte offset of the first character
	Text  string // without the trailing newline
}

// End returns the byte offset one past the last character (excluding the
// newline).
func (l Line) End() uint32 {
	lenText, err := safecast.Conv[uint32](len(l.Text))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	return l.Start + lenText
}

// Span returns the byte span of the line text within file.
func (l Line) Span(file source.FileID) source.Span {
	return source.Span{File: file, Start: l.Start, End: l.End()}
}

// Scan splits normalized file content into lines. A trailing newline does
// not produce an empty final line; an empty file produces no lines at all.
func Scan(f *source.File) []Line {
	content := string(f.Content)
	if content == "" {
		return nil
	}

	parts := strings.Split(content, "\n")
	if parts[len(parts)-1] == "" && strings.HasSuffix(content, "\n") {
		parts = parts[:len(parts)-1]
	}

	lines := make([]Line, 0, len(parts))
	var off uint32
	for i, text := range parts {
		lines = append(lines, Line{
			Num:   uint32(i + 1),
			Start: off,
			Text:  text,
		})
		lenText, err := safecast.Conv[uint32](len(text))
		if err != nil {
			panic(fmt.Errorf("line length overflow: %w", err))
		}
		off += lenText + 1 // +1 for the newline
	}
	return lines
}
