package html

import (
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// attr is one attribute. Values are escaped by the renderer.
type attr struct {
	key, val string
}

// elem creates an element node. Tag names are always constants.
func elem(a atom.Atom, attrs ...attr) *xhtml.Node {
	n := &xhtml.Node{Type: xhtml.ElementNode, DataAtom: a, Data: a.String()}
	for _, at := range attrs {
		n.Attr = append(n.Attr, xhtml.Attribute{Key: at.key, Val: at.val})
	}
	return n
}

// text creates a text node. This is the only way user text enters the
// document body.
func text(s string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: s}
}

// raw creates the content of a <script> or <style> element. The renderer
// writes these verbatim, so callers must only pass embedded assets.
func raw(asset string) *xhtml.Node {
	return &xhtml.Node{Type: xhtml.TextNode, Data: asset}
}

// add appends children to parent and returns parent.
func add(parent *xhtml.Node, children ...*xhtml.Node) *xhtml.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

func doctype() *xhtml.Node {
	return &xhtml.Node{Type: xhtml.DoctypeNode, Data: "html"}
}
