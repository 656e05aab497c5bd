package layout

import "github.com/kenshaw/pageflow/internal/config"

// StyleSheet is an opaque collection of cascade rules. The layout core never
// inspects it directly; it only ever hands it to a StyleResolver.
type StyleSheet interface{}

// StyleResolver computes a DOMNode's style given its parent's already
// resolved style and the active style sheet. It owns the cascade, selector
// matching, intrinsic tag defaults and inheritance entirely; layout only
// consumes the result.
type StyleResolver interface {
	Resolve(n DOMNode, parent ComputedStyle, sheet StyleSheet) ComputedStyle
}

// neverRendered is the set of element tags that never produce a LayoutObject
// regardless of what the style resolver says about display, matching the
// renderer's document-metadata exclusion list.
var neverRendered = map[string]bool{
	"head":   true,
	"script": true,
	"style":  true,
	"title":  true,
	"meta":   true,
	"link":   true,
	"base":   true,
}

// Builder constructs a layout tree from a DOM tree and a style sheet.
type Builder struct {
	Sheet    StyleSheet
	Resolver StyleResolver
	Config   *config.Config
}

// NewBuilder returns a Builder; cfg defaults to config.DefaultConfig when nil.
func NewBuilder(sheet StyleSheet, resolver StyleResolver, cfg *config.Config) *Builder {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Builder{Sheet: sheet, Resolver: resolver, Config: cfg}
}

// createLayoutObject resolves n's style and returns a LayoutObject for it,
// or nil if n is absent, is a never-rendered element, or resolves to
// display:none.
func (b *Builder) createLayoutObject(n DOMNode, parentStyle ComputedStyle) (*LayoutObject, ComputedStyle) {
	if n == nil {
		return nil, ComputedStyle{}
	}
	if n.IsElement() && neverRendered[n.TagName()] {
		return nil, ComputedStyle{}
	}
	style := b.Resolver.Resolve(n, parentStyle, b.Sheet)
	if style.Display == DisplayNone {
		return nil, style
	}
	kind := KindBlock
	switch {
	case n.IsText():
		kind = KindText
	case style.Display == DisplayInline:
		kind = KindInline
	}
	obj := &LayoutObject{
		Kind:     kind,
		NodeKind: nodeKindOf(n),
		Style:    style,
		config:   b.Config,
	}
	if n.IsText() {
		obj.Text = n.TextData()
	}
	return obj, style
}

// Build walks n and its descendants/siblings, producing the layout subtree
// rooted at the first DOM node (searching forward through siblings) that
// yields a LayoutObject. parent is wired as the non-owning back-edge on
// every object this call produces directly.
//
// Unlike the renderer this was learned from, the next-sibling recursive call
// below is given the true parent object rather than a placeholder that the
// caller patches up afterward: Go's garbage-collected pointers don't suffer
// the borrow-checker conflict that motivated deferring that wiring, so there
// is nothing to fix up later.
func (b *Builder) Build(n DOMNode, parent *LayoutObject, parentStyle ComputedStyle) *LayoutObject {
	target := n
	obj, _ := b.createLayoutObject(target, parentStyle)
	for obj == nil {
		if target == nil {
			return nil
		}
		target = target.NextSibling()
		if target == nil {
			return nil
		}
		obj, _ = b.createLayoutObject(target, parentStyle)
	}
	obj.parent = parent

	// Build already walks forward through siblings internally when a
	// candidate fails to produce a LayoutObject (display:none, a
	// never-rendered tag), so handing it the raw first child/next sibling
	// is enough to skip over those without breaking the chain.
	obj.FirstChild = b.Build(target.FirstChild(), obj, obj.Style)
	obj.NextSibling = b.Build(target.NextSibling(), parent, parentStyle)
	return obj
}
