package layout_test

import (
	"fmt"
	"testing"

	"github.com/kenshaw/pageflow/internal/dom"
	"github.com/kenshaw/pageflow/internal/stylesheet"
	"github.com/kenshaw/pageflow/internal/test_utils"
)

// TestPaintSnapshots freezes the display-item ordering contract for a
// handful of representative trees.
func TestPaintSnapshots(t *testing.T) {
	cases := []struct {
		name  string
		html  string
		root  func() *dom.Node
		sheet *stylesheet.Sheet
	}{
		{
			name: "heading and paragraph",
			html: "<body><h1>Title</h1><p>Body text</p></body>",
			root: func() *dom.Node {
				return el("html", nil, el("head", nil), el("body", nil,
					el("h1", nil, text("Title")),
					el("p", nil, text("Body text")),
				))
			},
		},
		{
			name: "link with styled background",
			html: `<body><p class="card"><a href="/x">go</a></p></body>`,
			root: func() *dom.Node {
				return el("html", nil, el("head", nil), el("body", nil,
					el("p", map[string]string{"class": "card"}, el("a", map[string]string{"href": "/x"}, text("go"))),
				))
			},
			sheet: &stylesheet.Sheet{Rules: []stylesheet.Rule{
				{Selector: ".card", Declarations: map[string]string{"background-color": "#eeeeee"}},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newView(tc.root(), tc.sheet)
			var out string
			for _, item := range v.Paint() {
				out += fmt.Sprintf("%s %+v\n", item.Type, item)
			}
			test_utils.MakeSnapshot(&test_utils.SnapshotOptions{
				Testing:      t,
				TestCaseName: t.Name(),
				Input:        tc.html,
				Output:       out,
				Kind:         test_utils.LayoutOutput,
			})
		})
	}
}
