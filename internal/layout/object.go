package layout

import "github.com/kenshaw/pageflow/internal/config"

// LayoutObjectKind is the box type a LayoutObject settles into once its
// style is resolved.
type LayoutObjectKind int

const (
	KindBlock LayoutObjectKind = iota
	KindInline
	KindText
)

func (k LayoutObjectKind) String() string {
	switch k {
	case KindBlock:
		return "Block"
	case KindInline:
		return "Inline"
	case KindText:
		return "Text"
	}
	return "Invalid"
}

// LayoutSize is a non-negative width/height pair in device pixels.
type LayoutSize struct {
	Width, Height int
}

// LayoutPoint is a top-left origin in device pixels.
type LayoutPoint struct {
	X, Y int
}

// LayoutObject is a geometrically laid-out box. Children are exclusively
// owned through FirstChild/NextSibling; parent is a non-owning back-edge
// used only so callers can walk upward (the layout passes themselves thread
// inherited style and parent geometry explicitly, rather than walking
// parent pointers, so this field never needs fixing up after the fact).
type LayoutObject struct {
	Kind     LayoutObjectKind
	NodeKind NodeKind
	Style    ComputedStyle
	Size     LayoutSize
	Point    LayoutPoint
	Text     string

	FirstChild  *LayoutObject
	NextSibling *LayoutObject

	parent *LayoutObject
	config *config.Config
}

// Parent returns the non-owning parent back-edge, or nil at the root.
func (o *LayoutObject) Parent() *LayoutObject {
	return o.parent
}

// ComputeSize fills in o.Size from parentSize and, for Block/Inline nodes,
// from the already-computed sizes of o's children.
func (o *LayoutObject) ComputeSize(parentSize LayoutSize) {
	switch o.Kind {
	case KindBlock:
		o.Size = LayoutSize{Width: parentSize.Width, Height: o.blockChildrenHeight()}
	case KindInline:
		width, lines := o.inlineChildrenMetrics(parentSize.Width)
		o.Size = LayoutSize{Width: width, Height: lines * o.glyphHeight()}
	case KindText:
		runes := []rune(o.Text)
		o.Size = LayoutSize{Width: o.glyphWidth() * len(runes), Height: o.glyphHeight()}
	}
}

// blockChildrenHeight sums child heights, treating a run of consecutive
// Inline children as a single shared line rather than stacking each one.
func (o *LayoutObject) blockChildrenHeight() int {
	var total, lineHeight int
	prevWasInline := false
	for c := o.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == KindInline {
			if prevWasInline {
				if c.Size.Height > lineHeight {
					lineHeight = c.Size.Height
				}
			} else {
				lineHeight = c.Size.Height
			}
			prevWasInline = true
			continue
		}
		if prevWasInline {
			total += lineHeight
			lineHeight = 0
			prevWasInline = false
		}
		total += c.Size.Height
	}
	if prevWasInline {
		total += lineHeight
	}
	return total
}

// inlineChildrenMetrics sums child widths, capping at maxWidth and counting
// how many lines that wrapping produces.
func (o *LayoutObject) inlineChildrenMetrics(maxWidth int) (width, lines int) {
	lines = 1
	lineWidth := 0
	total := 0
	for c := o.FirstChild; c != nil; c = c.NextSibling {
		w := c.Size.Width
		if maxWidth > 0 && lineWidth > 0 && lineWidth+w > maxWidth {
			lines++
			lineWidth = 0
		}
		lineWidth += w
		total += w
	}
	if maxWidth > 0 && total > maxWidth {
		total = maxWidth
	}
	return total, lines
}

// ComputePosition fills in o.Point from parentPoint and the previous
// sibling's kind/point/size (nil/nil when o has no previous sibling).
//
// Wrapping for adjacent Inline siblings is judged against the configured
// content-area width rather than the immediate parent's box width, since
// that is the only width the position pass has in scope; this mirrors the
// original renderer's use of a single global content-area constant here.
func (o *LayoutObject) ComputePosition(parentPoint LayoutPoint, prevKind LayoutObjectKind, prevPoint *LayoutPoint, prevSize *LayoutSize) {
	switch {
	case prevPoint == nil:
		o.Point = parentPoint
	case prevKind == KindBlock:
		o.Point = LayoutPoint{X: parentPoint.X, Y: prevPoint.Y + prevSize.Height}
	case prevKind == KindInline && o.Kind == KindInline:
		x := prevPoint.X + prevSize.Width
		if o.contentAreaWidth() > 0 && x+o.Size.Width > o.contentAreaWidth() {
			o.Point = LayoutPoint{X: parentPoint.X, Y: prevPoint.Y + prevSize.Height}
			return
		}
		o.Point = LayoutPoint{X: x, Y: prevPoint.Y}
	default: // prevKind == KindText, or prevKind == KindInline && o.Kind != KindInline
		o.Point = LayoutPoint{X: parentPoint.X, Y: prevPoint.Y + prevSize.Height}
	}
}

// Paint yields this node's own display items: a background rectangle when
// one was explicitly resolved, a text run for Text nodes, and a link
// underline when the originating element is an anchor. Children are painted
// separately by the traversal in LayoutView.Paint.
func (o *LayoutObject) Paint() []DisplayItem {
	var items []DisplayItem
	if o.Style.BackgroundColor != nil {
		items = append(items, DisplayItem{
			Type:  RectItem,
			Point: o.Point,
			Size:  o.Size,
			Color: *o.Style.BackgroundColor,
		})
	}
	if o.Kind == KindText {
		items = append(items, DisplayItem{
			Type:     TextItem,
			Point:    o.Point,
			Text:     o.Text,
			Color:    o.Style.Color,
			FontSize: o.Style.FontSize,
		})
	}
	if o.NodeKind.IsElement && o.NodeKind.Tag == "a" {
		items = append(items, DisplayItem{
			Type:  LinkItem,
			Point: o.Point,
			Text:  collectText(o),
			Href:  o.NodeKind.Attrs["href"],
		})
	}
	return items
}

// collectText concatenates every Text-kind descendant's text, depth-first,
// for an anchor's link label.
func collectText(o *LayoutObject) string {
	var s string
	for c := o.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == KindText {
			s += c.Text
		}
		s += collectText(c)
	}
	return s
}

func (o *LayoutObject) glyphWidth() int {
	if o.config == nil {
		return 0
	}
	return o.config.GlyphWidth
}

func (o *LayoutObject) glyphHeight() int {
	if o.config == nil {
		return 0
	}
	return o.config.GlyphHeight
}

func (o *LayoutObject) contentAreaWidth() int {
	if o.config == nil {
		return 0
	}
	return o.config.ContentAreaWidth
}
