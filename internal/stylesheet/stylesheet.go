// Package stylesheet is a minimal demo CSS cascade: selector matching over
// a flat rule list plus a kebab-case declaration map, good enough to drive
// the layout engine's tests and the cmd/pageflow demo without a real CSS
// parser.
package stylesheet

import (
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/net/html/atom"

	"github.com/kenshaw/pageflow/internal/layout"
)

// Rule is one selector plus the declarations it carries.
type Rule struct {
	Selector     string
	Declarations map[string]string
}

// Sheet is a flat, ordered rule list; later rules override earlier ones on
// conflicting properties, matching simple last-write-wins cascade order
// with no specificity weighting.
type Sheet struct {
	Rules []Rule
}

// blockAtoms are the tags that default to block display absent an explicit
// style rule.
var blockAtoms = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Div: true, atom.P: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true, atom.Nav: true,
	atom.Table: true, atom.Form: true, atom.Blockquote: true, atom.Pre: true,
}

// intrinsicDisplay returns the tag's default display absent any matching
// rule: block for the fixed block-tag table, inline for everything else
// (including unknown/custom tags), per the "unknown display defaults to the
// element's intrinsic default" contract.
func intrinsicDisplay(tag string) layout.Display {
	if blockAtoms[atom.Lookup([]byte(tag))] {
		return layout.DisplayBlock
	}
	return layout.DisplayInline
}

// Resolve implements layout.StyleResolver: it derives the node's intrinsic
// display, applies every matching rule in order, and falls back to parent
// inheritance for Color/FontSize.
func (s *Sheet) Resolve(n layout.DOMNode, parent layout.ComputedStyle, sheetArg layout.StyleSheet) layout.ComputedStyle {
	style := layout.ComputedStyle{
		Display:  layout.DisplayInline,
		Color:    parent.Color,
		FontSize: parent.FontSize,
	}
	if n.IsText() {
		style.Display = layout.DisplayInline
		return style
	}
	style.Display = intrinsicDisplay(n.TagName())

	sheet, _ := sheetArg.(*Sheet)
	if sheet == nil {
		sheet = s
	}
	for _, rule := range sheet.Rules {
		if !matches(rule.Selector, n) {
			continue
		}
		style = FromDeclarations(style, rule.Declarations)
	}
	return style
}

// matches reports whether selector (a bare tag name, ".class", "#id" or "*")
// matches n.
func matches(selector string, n layout.DOMNode) bool {
	if !n.IsElement() {
		return false
	}
	switch {
	case selector == "*":
		return true
	case strings.HasPrefix(selector, "."):
		return hasClass(n, selector[1:])
	case strings.HasPrefix(selector, "#"):
		return n.Attributes()["id"] == selector[1:]
	default:
		return n.TagName() == selector
	}
}

func hasClass(n layout.DOMNode, class string) bool {
	for _, c := range strings.Fields(n.Attributes()["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// FromDeclarations applies a flat kebab-case property map on top of base,
// recognizing exactly the properties the layout core understands: display,
// background-color, color, font-size. Unrecognized properties and
// unparseable values are ignored rather than treated as errors.
func FromDeclarations(base layout.ComputedStyle, decl map[string]string) layout.ComputedStyle {
	style := base
	for prop, value := range decl {
		switch strcase.ToSnake(prop) {
		case "display":
			switch value {
			case "block":
				style.Display = layout.DisplayBlock
			case "inline":
				style.Display = layout.DisplayInline
			case "none":
				style.Display = layout.DisplayNone
			}
		case "background_color":
			if c, ok := layout.ParseColor(value); ok {
				style.BackgroundColor = &c
			}
		case "color":
			if c, ok := layout.ParseColor(value); ok {
				style.Color = c
			}
		case "font_size":
			switch value {
			case "medium":
				style.FontSize = layout.FontMedium
			case "x-large", "xlarge":
				style.FontSize = layout.FontXLarge
			case "xx-large", "xxlarge":
				style.FontSize = layout.FontXXLarge
			}
		}
	}
	return style
}
