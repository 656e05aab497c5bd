package layout

import "github.com/kenshaw/pageflow/internal/config"

// LayoutView is the laid-out, paintable projection of a document: everything
// below the document's <body>, positioned and sized against a fixed content
// area.
type LayoutView struct {
	Root *LayoutObject
}

// New finds docRoot's <body> element, builds a layout tree rooted at it, and
// runs the size and position passes.
func New(docRoot DOMNode, sheet StyleSheet, resolver StyleResolver, cfg *config.Config) *LayoutView {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	body := FindElement(docRoot, "body")
	builder := NewBuilder(sheet, resolver, cfg)
	v := &LayoutView{Root: builder.Build(body, nil, DefaultComputedStyle())}
	v.updateLayout(cfg)
	return v
}

func (v *LayoutView) updateLayout(cfg *config.Config) {
	calculateSize(v.Root, LayoutSize{Width: cfg.ContentAreaWidth})
	calculatePosition(v.Root, LayoutPoint{}, KindBlock, nil, nil)
}

// calculateSize sizes n's children before n itself, since a block's height
// depends on them; n's own width (for Block nodes) still has to be known
// going in so inline children can wrap correctly, so ComputeSize against
// parentSize is called both before and after recursing.
func calculateSize(n *LayoutObject, parentSize LayoutSize) {
	if n == nil {
		return
	}
	if n.Kind == KindBlock {
		n.ComputeSize(parentSize)
	}
	calculateSize(n.FirstChild, n.Size)
	calculateSize(n.NextSibling, parentSize)
	n.ComputeSize(parentSize)
}

func calculatePosition(n *LayoutObject, parentPoint LayoutPoint, prevKind LayoutObjectKind, prevPoint *LayoutPoint, prevSize *LayoutSize) {
	if n == nil {
		return
	}
	n.ComputePosition(parentPoint, prevKind, prevPoint, prevSize)
	calculatePosition(n.FirstChild, n.Point, KindBlock, nil, nil)
	point, size := n.Point, n.Size
	calculatePosition(n.NextSibling, parentPoint, n.Kind, &point, &size)
}

// Paint returns every DisplayItem in the tree, in depth-first pre-order:
// a node paints before its children, and a node's subtree paints before its
// next sibling's.
func (v *LayoutView) Paint() []DisplayItem {
	var items []DisplayItem
	paintNode(v.Root, &items)
	return items
}

func paintNode(n *LayoutObject, items *[]DisplayItem) {
	if n == nil {
		return
	}
	*items = append(*items, n.Paint()...)
	paintNode(n.FirstChild, items)
	paintNode(n.NextSibling, items)
}
