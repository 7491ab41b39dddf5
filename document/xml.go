package document

import (
	"fmt"
	"io"
	"sort"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ReadXML parses a document from its XML interchange form. Non UTF-8
// encodings are handled through the standard charset reader.
func ReadXML(r io.Reader) (*Node, error) {
	tree := etree.NewDocument()
	tree.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse document XML: %w", err)
	}
	root := tree.Root()
	if root == nil {
		return nil, fmt.Errorf("document XML has no root element")
	}
	if root.Tag != KindDoc.String() {
		return nil, fmt.Errorf("unexpected root element '%s', want '%s'", root.Tag, KindDoc.String())
	}
	node, err := nodeFromElement(root)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func nodeFromElement(el *etree.Element) (*Node, error) {
	kind, ok := ParseKind(el.Tag)
	if !ok {
		return nil, fmt.Errorf("unknown element '%s' in document XML", el.Tag)
	}
	n := &Node{Kind: kind}
	for _, a := range el.Attr {
		if n.Attrs == nil {
			n.Attrs = make(map[string]any)
		}
		n.Attrs[a.Key] = a.Value
	}
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			ch, err := nodeFromElement(t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, ch)
		case *etree.CharData:
			if t.IsWhitespace() && kind != KindParagraph && kind != KindTableCell {
				continue
			}
			if len(t.Data) > 0 {
				n.Children = append(n.Children, NewText(t.Data))
			}
		}
	}
	return n, nil
}

// WriteXML serializes a document to its XML interchange form.
func WriteXML(w io.Writer, doc *Node) error {
	if doc == nil || doc.Kind != KindDoc {
		return fmt.Errorf("cannot serialize a non-document node")
	}
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	tree.SetRoot(elementFromNode(doc))
	tree.Indent(2)
	if _, err := tree.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write document XML: %w", err)
	}
	return nil
}

func elementFromNode(n *Node) *etree.Element {
	el := etree.NewElement(n.Kind.String())
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.CreateAttr(k, fmt.Sprintf("%v", n.Attrs[k]))
	}
	for _, ch := range n.Children {
		if ch.Kind == KindText {
			el.CreateText(ch.Text)
			continue
		}
		el.AddChild(elementFromNode(ch))
	}
	return el
}
