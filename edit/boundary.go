// Package edit customizes the Enter, Backspace and Delete commands when the
// edit point sits at a page or paragraph boundary, where default editing
// would violate page structure. Every handler is all-or-nothing: it either
// computes a coherent edit and dispatches exactly one transaction, or
// reports the command as not handled so the host's default behavior applies.
package edit

import (
	"go.uber.org/zap"

	"pageflow/document"
)

// CommandFunc is the shape of a boundary edit command handler.
type CommandFunc func(st *document.State, dispatch document.DispatchFunc) bool

// Controller hosts the three boundary edit commands. States are implicit in
// document structure; the controller itself is stateless apart from its
// logger.
type Controller struct {
	log *zap.Logger
}

func NewController(log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{log: log}
}

// Commands returns the handlers keyed by command name.
func (c *Controller) Commands() map[string]CommandFunc {
	return map[string]CommandFunc{
		"Enter":     c.Enter,
		"Backspace": c.Backspace,
		"Delete":    c.Delete,
	}
}

// Enter handles the return key inside a paragraph: an empty paragraph grows
// an empty sibling, a caret at the exact start or end gets a fresh paragraph
// on that side, and an interior caret splits the paragraph's text in two.
// The selection always moves into the newly created block. Range selections
// and non-paragraph contexts are not handled.
func (c *Controller) Enter(st *document.State, dispatch document.DispatchFunc) bool {
	if !st.Selection.IsCaret() {
		return false
	}
	rp, err := document.Resolve(st.Doc, st.Selection.Head)
	if err != nil {
		return false
	}
	pd := rp.FindKind(document.KindParagraph)
	if pd < 0 {
		return false
	}
	para := rp.Node(pd)
	paraStart := rp.Start(pd)
	nodeStart := rp.NodeStart(pd)
	offset := st.Selection.Head - paraStart
	content := para.ContentSize()

	tr := st.NewTransaction()
	switch {
	case content == 0:
		after := nodeStart + para.Size()
		if err := tr.InsertAt(after, document.NewParagraph("")); err != nil {
			return false
		}
		tr.SetSelection(after + 1)
	case offset <= 0:
		if err := tr.InsertAt(nodeStart, document.NewParagraph("")); err != nil {
			return false
		}
		tr.SetSelection(nodeStart + 1)
	case offset >= content:
		after := nodeStart + para.Size()
		if err := tr.InsertAt(after, document.NewParagraph("")); err != nil {
			return false
		}
		tr.SetSelection(after + 1)
	default:
		runes := []rune(para.TextContent())
		left := paragraphWithText(para, string(runes[:offset]))
		right := paragraphWithText(para, string(runes[offset:]))
		if err := tr.ReplaceRange(nodeStart, nodeStart+para.Size(), []*document.Node{left, right}); err != nil {
			return false
		}
		tr.SetSelection(nodeStart + left.Size() + 1)
	}
	dispatch(tr)
	return true
}

// Backspace handles deletion at page boundaries. At the exact start of a
// page the current paragraph's content is appended to the previous page's
// last paragraph and the source paragraph removed, with the selection placed
// at the merge point. At the end of a page an empty paragraph is deleted
// (selection moving to the previous text block), a non-empty one loses its
// trailing unit. Everything else defers to default behavior.
func (c *Controller) Backspace(st *document.State, dispatch document.DispatchFunc) bool {
	loc, ok := c.paragraphInPage(st)
	if !ok {
		return false
	}

	if loc.paraIndex == 0 && loc.offset == 0 {
		return c.mergeWithPreviousPage(st, dispatch, loc)
	}

	atPageEnd := loc.paraIndex == loc.page.ChildCount()-1 && loc.offset == loc.para.ContentSize()
	if !atPageEnd {
		return false
	}

	tr := st.NewTransaction()
	if loc.para.ContentSize() == 0 {
		prevEnd, ok := prevTextBlockEnd(st.Doc, loc.nodeStart)
		if !ok {
			return false
		}
		if err := tr.DeleteRange(loc.nodeStart, loc.nodeStart+loc.para.Size()); err != nil {
			return false
		}
		tr.SetSelection(prevEnd)
	} else {
		runes := []rune(loc.para.TextContent())
		trimmed := paragraphWithText(loc.para, string(runes[:len(runes)-1]))
		if err := tr.ReplaceNodeAt(loc.nodeStart, trimmed); err != nil {
			return false
		}
		tr.SetSelection(loc.nodeStart + 1 + trimmed.ContentSize())
	}
	dispatch(tr)
	return true
}

func (c *Controller) mergeWithPreviousPage(st *document.State, dispatch document.DispatchFunc, loc paraLocation) bool {
	if loc.pageIndex == 0 {
		// document start, nothing before this page
		return false
	}
	prevPage := st.Doc.Child(loc.pageIndex - 1)
	if prevPage == nil || prevPage.Kind != document.KindPage {
		c.log.Error("page region is not a page node", zap.Int("index", loc.pageIndex-1))
		return false
	}
	destIndex := -1
	for i := prevPage.ChildCount() - 1; i >= 0; i-- {
		if prevPage.Child(i).Kind == document.KindParagraph {
			destIndex = i
			break
		}
	}
	if destIndex < 0 {
		return false
	}
	dest := prevPage.Child(destIndex)

	prevPageStart := docChildOffset(st.Doc, loc.pageIndex-1)
	destNodeStart := prevPageStart + 1
	for i := 0; i < destIndex; i++ {
		destNodeStart += prevPage.Child(i).Size()
	}

	destText := dest.TextContent()
	merged := paragraphWithText(dest, destText+loc.para.TextContent())

	tr := st.NewTransaction()
	// the source paragraph sits after the destination, so remove it first
	if err := tr.DeleteRange(loc.nodeStart, loc.nodeStart+loc.para.Size()); err != nil {
		return false
	}
	if err := tr.ReplaceNodeAt(destNodeStart, merged); err != nil {
		return false
	}
	tr.SetSelection(destNodeStart + 1 + len([]rune(destText)))
	dispatch(tr)
	return true
}

// Delete handles forward deletion at the exact end of a page. With no page
// following this is the end of the document: a no-op transaction is
// dispatched so default paragraph deletion cannot fire. Otherwise the next
// page's first paragraph is merged into the current one.
func (c *Controller) Delete(st *document.State, dispatch document.DispatchFunc) bool {
	loc, ok := c.paragraphInPage(st)
	if !ok {
		return false
	}
	if loc.paraIndex != loc.page.ChildCount()-1 || loc.offset != loc.para.ContentSize() {
		return false
	}

	if loc.pageIndex == st.Doc.ChildCount()-1 {
		tr := st.NewTransaction()
		tr.SetSelection(st.Selection.Head)
		dispatch(tr)
		return true
	}

	nextPage := st.Doc.Child(loc.pageIndex + 1)
	if nextPage == nil || nextPage.Kind != document.KindPage {
		c.log.Error("page region is not a page node", zap.Int("index", loc.pageIndex+1))
		return false
	}
	nextPara := nextPage.Child(0)
	if nextPara == nil || nextPara.Kind != document.KindParagraph {
		return false
	}
	nextNodeStart := docChildOffset(st.Doc, loc.pageIndex+1) + 1

	curEmpty := loc.para.ContentSize() == 0
	nextEmpty := nextPara.ContentSize() == 0
	merged := paragraphWithText(loc.para, loc.para.TextContent()+nextPara.TextContent())

	tr := st.NewTransaction()
	// remove the absorbed paragraph first; it sits after the current one
	if err := tr.DeleteRange(nextNodeStart, nextNodeStart+nextPara.Size()); err != nil {
		return false
	}
	if err := tr.ReplaceNodeAt(loc.nodeStart, merged); err != nil {
		return false
	}
	mergePoint := st.Selection.Head
	if curEmpty && nextEmpty {
		if next, ok := nextTextBlockStart(tr.Doc(), loc.nodeStart+merged.Size()); ok {
			mergePoint = next
		}
	}
	tr.SetSelection(mergePoint)
	dispatch(tr)
	return true
}

// paraLocation describes a caret inside a paragraph that is a direct child
// of a page.
type paraLocation struct {
	para      *document.Node
	page      *document.Node
	nodeStart int
	offset    int
	paraIndex int
	pageIndex int
}

func (c *Controller) paragraphInPage(st *document.State) (paraLocation, bool) {
	if !st.Selection.IsCaret() {
		return paraLocation{}, false
	}
	rp, err := document.Resolve(st.Doc, st.Selection.Head)
	if err != nil {
		return paraLocation{}, false
	}
	pd := rp.FindKind(document.KindParagraph)
	if pd < 0 {
		return paraLocation{}, false
	}
	pg := rp.FindKind(document.KindPage)
	if pg != 1 || pd != pg+1 {
		// pages live at the top level with paragraphs as direct children;
		// anything else defers to default behavior
		return paraLocation{}, false
	}
	return paraLocation{
		para:      rp.Node(pd),
		page:      rp.Node(pg),
		nodeStart: rp.NodeStart(pd),
		offset:    st.Selection.Head - rp.Start(pd),
		paraIndex: rp.Index(pg),
		pageIndex: rp.Index(0),
	}, true
}

// paragraphWithText rebuilds a paragraph-like node around new text content,
// preserving its attributes.
func paragraphWithText(proto *document.Node, text string) *document.Node {
	if len(text) == 0 {
		return proto.WithChildren(nil)
	}
	return proto.WithChildren([]*document.Node{document.NewText(text)})
}

func docChildOffset(doc *document.Node, index int) int {
	off := 0
	for i := 0; i < index && i < doc.ChildCount(); i++ {
		off += doc.Child(i).Size()
	}
	return off
}

// prevTextBlockEnd finds the content end of the closest text block that ends
// at or before pos.
func prevTextBlockEnd(doc *document.Node, pos int) (int, bool) {
	best, ok := -1, false
	for _, s := range textBlockSpans(doc) {
		if s.end <= pos && s.end > best {
			best, ok = s.end, true
		}
	}
	return best, ok
}

// nextTextBlockStart finds the content start of the closest text block that
// starts at or after pos.
func nextTextBlockStart(doc *document.Node, pos int) (int, bool) {
	best, ok := -1, false
	for _, s := range textBlockSpans(doc) {
		if s.start >= pos && (!ok || s.start < best) {
			best, ok = s.start, true
		}
	}
	return best, ok
}

type textSpan struct{ start, end int }

func textBlockSpans(doc *document.Node) []textSpan {
	var spans []textSpan
	var walk func(n *document.Node, start int)
	walk = func(n *document.Node, start int) {
		if n.IsTextBlock() {
			spans = append(spans, textSpan{start: start, end: start + n.ContentSize()})
			return
		}
		childPos := start
		for _, ch := range n.Children {
			if ch.Kind != document.KindText {
				walk(ch, childPos+1)
			}
			childPos += ch.Size()
		}
	}
	walk(doc, 0)
	return spans
}
