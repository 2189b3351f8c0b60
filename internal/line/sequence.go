package line

// ClassifyAll classifies every scanned line in document order, threading the
// context record through the same transitions the parser applies: the first
// non-blank line is the only header candidate, metadata mode opens right
// after a successful header and closes permanently on the first
// non-metadata line, and fence delimiters toggle the opaque region.
func ClassifyAll(lines []Line) []Kind {
	var ctx Context
	kinds := make([]Kind, len(lines))
	for i, l := range lines {
		k := Classify(l.Text, ctx)
		kinds[i] = k

		if !ctx.FirstLineSeen {
			if k == Blank {
				continue // leading blanks do not start the document
			}
			ctx.FirstLineSeen = true
			if k == Header {
				ctx.HeaderAssigned = true
				ctx.MetadataMode = true
				continue
			}
		} else if ctx.MetadataMode && k != Metadata {
			ctx.MetadataMode = false
		}

		if k == FenceDelim {
			if ctx.InsideFence {
				ctx.InsideFence = false
				ctx.FenceIndent = 0
			} else if indent, _, ok := MatchFenceOpen(l.Text); ok {
				ctx.InsideFence = true
				ctx.FenceIndent = indent
			}
		}
	}
	return kinds
}
