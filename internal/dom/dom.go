// Package dom is a minimal, in-memory DOM tree: enough structure for tests
// and the demo CLI to hand the layout engine a layout.DOMNode, with no HTML
// parser of its own.
package dom

import "github.com/kenshaw/pageflow/internal/layout"

// Node is a single DOM node, either an element or a text node. The zero
// value is not useful; build trees with NewElement/NewText and AppendChild.
type Node struct {
	tag        string
	attrs      map[string]string
	text       string
	isText     bool
	firstChild *Node
	lastChild  *Node
	nextSib    *Node
}

// NewElement returns an empty element node with the given tag and
// attributes (attrs may be nil).
func NewElement(tag string, attrs map[string]string) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{tag: tag, attrs: attrs}
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{isText: true, text: text}
}

// AppendChild appends child as n's last child and returns n for chaining.
func (n *Node) AppendChild(child *Node) *Node {
	if n.firstChild == nil {
		n.firstChild = child
	} else {
		n.lastChild.nextSib = child
	}
	n.lastChild = child
	return n
}

// FirstChild implements layout.DOMNode. It returns a literal nil interface
// value (not a *Node(nil) wrapped in one) when there is no first child, so
// callers' `n == nil` checks behave as expected.
func (n *Node) FirstChild() layout.DOMNode {
	if n == nil || n.firstChild == nil {
		return nil
	}
	return n.firstChild
}

// NextSibling implements layout.DOMNode, with the same nil-interface care as
// FirstChild.
func (n *Node) NextSibling() layout.DOMNode {
	if n == nil || n.nextSib == nil {
		return nil
	}
	return n.nextSib
}

// IsElement implements layout.DOMNode.
func (n *Node) IsElement() bool { return n != nil && !n.isText }

// TagName implements layout.DOMNode.
func (n *Node) TagName() string { return n.tag }

// Attributes implements layout.DOMNode.
func (n *Node) Attributes() map[string]string { return n.attrs }

// IsText implements layout.DOMNode.
func (n *Node) IsText() bool { return n != nil && n.isText }

// TextData implements layout.DOMNode.
func (n *Node) TextData() string { return n.text }
