package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/kenshaw/pageflow/internal/layout"
	"github.com/kenshaw/pageflow/internal/stylesheet"
)

// TestPaintOrderIsDepthFirstPreOrder pins the ordering contract: a node's
// own items precede its children's, and its whole subtree precedes its next
// sibling's.
func TestPaintOrderIsDepthFirstPreOrder(t *testing.T) {
	root := el("html", nil, el("head", nil), el("body", nil,
		el("p", nil, text("one")),
		el("p", nil, text("two")),
	))
	v := newView(root, nil)
	items := v.Paint()

	var texts []string
	for _, it := range items {
		if it.Type == layout.TextItem {
			texts = append(texts, it.Text)
		}
	}
	gtassert.DeepEqual(t, []string{"one", "two"}, texts)
}

func TestPaintLinkItem(t *testing.T) {
	root := el("html", nil, el("head", nil), el("body", nil,
		el("a", map[string]string{"href": "https://example.com"}, text("click")),
	))
	v := newView(root, nil)
	items := v.Paint()

	var link *layout.DisplayItem
	for i := range items {
		if items[i].Type == layout.LinkItem {
			link = &items[i]
		}
	}
	if !assert.NotNil(t, link) {
		return
	}
	assert.Equal(t, "click", link.Text)
	assert.Equal(t, "https://example.com", link.Href)
}

func TestEveryLayoutObjectHasNonNoneDisplay(t *testing.T) {
	root := el("html", nil, el("head", nil), el("body", nil,
		el("p", map[string]string{"class": "hidden"}, text("gone")),
		el("p", nil, text("kept")),
	))
	sheet := &stylesheet.Sheet{Rules: []stylesheet.Rule{
		{Selector: ".hidden", Declarations: map[string]string{"display": "none"}},
	}}
	v := newView(root, sheet)

	var walk func(n *layout.LayoutObject)
	walk = func(n *layout.LayoutObject) {
		if n == nil {
			return
		}
		assert.NotEqual(t, layout.DisplayNone, n.Style.Display)
		walk(n.FirstChild)
		walk(n.NextSibling)
	}
	walk(v.Root)
}
