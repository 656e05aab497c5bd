package layout

// DOMNode is the external DOM builder's node, referenced here only by
// interface: the layout core never constructs or mutates one. Sibling and
// child access mirrors the DOM's own first_child/next_sibling chain.
type DOMNode interface {
	FirstChild() DOMNode
	NextSibling() DOMNode
	IsElement() bool
	TagName() string
	Attributes() map[string]string
	IsText() bool
	TextData() string
}

// NodeKind is an immutable descriptor copied out of a DOMNode at LayoutObject
// creation time, so the layout tree never holds a live reference back into
// the DOM once built.
type NodeKind struct {
	IsElement bool
	Tag       string
	Attrs     map[string]string
	IsText    bool
	Text      string
}

func nodeKindOf(n DOMNode) NodeKind {
	if n.IsText() {
		return NodeKind{IsText: true, Text: n.TextData()}
	}
	return NodeKind{IsElement: true, Tag: n.TagName(), Attrs: n.Attributes()}
}

// FindElement returns the first element in n's subtree (searching n, then
// its descendants and siblings depth-first) whose tag matches, or nil.
func FindElement(n DOMNode, tag string) DOMNode {
	if n == nil {
		return nil
	}
	if n.IsElement() && n.TagName() == tag {
		return n
	}
	if found := FindElement(n.FirstChild(), tag); found != nil {
		return found
	}
	return FindElement(n.NextSibling(), tag)
}
