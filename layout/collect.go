package layout

import "pageflow/document"

// ContentEntry is one element of the flattened content stream: a node and
// its start position in the pre-pass document. Entries are ephemeral and
// recomputed on every pass.
type ContentEntry struct {
	Node    *document.Node
	OrigPos int
}

// Collect flattens the document into its logical content stream. Page
// containers are unwrapped one level so that repeated repagination sees the
// same stream; anything else at the top level is emitted as-is. Pure
// function of the document.
func Collect(doc *document.Node) []ContentEntry {
	entries := make([]ContentEntry, 0)
	off := 0
	for _, child := range doc.Children {
		if child.Kind == document.KindPage {
			inner := off + 1
			for _, ch := range child.Children {
				entries = append(entries, ContentEntry{Node: ch, OrigPos: inner})
				inner += ch.Size()
			}
		} else {
			entries = append(entries, ContentEntry{Node: child, OrigPos: off})
		}
		off += child.Size()
	}
	return entries
}
