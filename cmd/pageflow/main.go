// Command pageflow tokenizes HTML from stdin or a file and, with -layout,
// runs a small built-in document through the layout engine using the
// terminal's width as the content area.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	jsonv2 "github.com/go-json-experiment/json"
	"golang.org/x/sys/unix"

	pageflow "github.com/kenshaw/pageflow/internal"
	"github.com/kenshaw/pageflow/internal/config"
	"github.com/kenshaw/pageflow/internal/dom"
	"github.com/kenshaw/pageflow/internal/handler"
	"github.com/kenshaw/pageflow/internal/layout"
	"github.com/kenshaw/pageflow/internal/stylesheet"
)

func main() {
	var (
		jsonOut     = flag.Bool("json", false, "emit JSON instead of text")
		layoutDemo  = flag.Bool("layout", false, "run the built-in layout demo instead of tokenizing input")
		widthFlag   = flag.Int("width", 0, "content area width in pixels (0: detect from terminal, falling back to 800)")
	)
	flag.Parse()

	if *layoutDemo {
		runLayoutDemo(*widthFlag, *jsonOut)
		return
	}
	runTokenizer(*jsonOut)
}

func runTokenizer(jsonOut bool) {
	src, err := readInput()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pageflow:", err)
		os.Exit(1)
	}

	h := handler.NewHandler("stdin")
	z := pageflow.NewTokenizerWithHandler(src, h)

	var tokens []pageflow.Token
	for {
		tok, ok := z.Next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	if jsonOut {
		b, err := jsonv2.Marshal(tokens)
		if err != nil {
			fmt.Fprintln(os.Stderr, "pageflow:", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
	} else {
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
	}

	for _, w := range h.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w.Text)
	}
}

func readInput() (string, error) {
	if flag.NArg() > 0 {
		b, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// runLayoutDemo lays out a small hand-built document: there is no HTML/CSS
// parser in scope here (tree construction is the DOM builder's job, outside
// the tokenizer and layout core), so the demo tree is built directly with
// the dom and stylesheet packages.
func runLayoutDemo(width int, jsonOut bool) {
	if width <= 0 {
		width = terminalWidth()
	}
	cfg := &config.Config{ContentAreaWidth: width, GlyphWidth: 8, GlyphHeight: 16}

	root := dom.NewElement("html", nil).AppendChild(
		dom.NewElement("head", nil),
	).AppendChild(
		dom.NewElement("body", nil).AppendChild(
			dom.NewElement("h1", nil).AppendChild(dom.NewText("pageflow")),
		).AppendChild(
			dom.NewElement("p", map[string]string{"class": "lede"}).AppendChild(
				dom.NewText("a tiny layout engine")),
		),
	)

	sheet := &stylesheet.Sheet{Rules: []stylesheet.Rule{
		{Selector: ".lede", Declarations: map[string]string{"color": "gray"}},
	}}
	view := layout.New(root, sheet, sheet, cfg)

	if jsonOut {
		b, err := view.DumpJSON()
		if err != nil {
			fmt.Fprintln(os.Stderr, "pageflow:", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}

	for _, item := range view.Paint() {
		fmt.Printf("%s %+v\n", item.Type, item)
	}
}

// terminalWidth queries the controlling terminal's column width, converting
// it to a pixel width at the demo's fixed 8px glyph width; it falls back to
// the default content area when stdout isn't a terminal.
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return config.DefaultConfig().ContentAreaWidth
	}
	return int(ws.Col) * 8
}
