package layout

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// dumpNode is the JSON-friendly mirror of a LayoutObject: a plain tree
// rather than the sibling-linked-list shape layout itself uses internally,
// since that's what's actually useful to a consumer dumping the tree.
type dumpNode struct {
	Kind     string     `json:"kind"`
	Tag      string     `json:"tag,omitempty"`
	Text     string     `json:"text,omitempty"`
	Point    LayoutPoint `json:"point"`
	Size     LayoutSize  `json:"size"`
	Color    string     `json:"color,omitempty"`
	Children []dumpNode `json:"children,omitempty"`
}

func toDumpNode(n *LayoutObject) dumpNode {
	d := dumpNode{
		Kind:  n.Kind.String(),
		Tag:   n.NodeKind.Tag,
		Text:  n.Text,
		Point: n.Point,
		Size:  n.Size,
	}
	if n.Style.BackgroundColor != nil {
		d.Color = colorHex(*n.Style.BackgroundColor)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.Children = append(d.Children, toDumpNode(c))
	}
	return d
}

func colorHex(c Color) string {
	const hex = "0123456789abcdef"
	b := make([]byte, 7)
	b[0] = '#'
	put := func(i int, v uint8) {
		b[i] = hex[v>>4]
		b[i+1] = hex[v&0xf]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return string(b)
}

// DumpJSON renders the layout tree rooted at v.Root as indented JSON, for
// debugging and for the demo CLI's -json flag.
func (v *LayoutView) DumpJSON() ([]byte, error) {
	if v.Root == nil {
		return []byte("null"), nil
	}
	return json.Marshal(toDumpNode(v.Root), jsontext.WithIndent("  "))
}
