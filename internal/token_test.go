package pageflow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/kenshaw/pageflow/internal/test_utils"
)

func collectTokens(t *testing.T, z *Tokenizer) []Token {
	t.Helper()
	var got []Token
	for {
		tok, ok := z.Next()
		if !ok {
			break
		}
		got = append(got, tok)
	}
	return got
}

func TestEmpty(t *testing.T) {
	z := NewTokenizer("")
	_, ok := z.Next()
	assert.False(t, ok)
}

func TestCharText(t *testing.T) {
	z := NewTokenizer("abc")
	got := collectTokens(t, z)
	want := []Token{
		{Type: CharToken, Char: 'a'},
		{Type: CharToken, Char: 'b'},
		{Type: CharToken, Char: 'c'},
	}
	assert.Empty(t, test_utils.ANSIDiff(want, got))
}

func TestStartAndEndTag(t *testing.T) {
	z := NewTokenizer("<body></body>")
	got := collectTokens(t, z)
	want := []Token{
		{Type: StartTagToken, Name: "body"},
		{Type: EndTagToken, Name: "body"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestUppercaseTagNameIsLowered(t *testing.T) {
	z := NewTokenizer("<DIV></DIV>")
	got := collectTokens(t, z)
	want := []Token{
		{Type: StartTagToken, Name: "div"},
		{Type: EndTagToken, Name: "div"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeQuoting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Attribute
	}{
		{"double quoted", `<a href="example.com">`, Attribute{Name: "href", Value: "example.com"}},
		{"single quoted", `<a href='example.com'>`, Attribute{Name: "href", Value: "example.com"}},
		{"unquoted", `<a href=example.com>`, Attribute{Name: "href", Value: "example.com"}},
		{"uppercase name lowered", `<a HREF="example.com">`, Attribute{Name: "href", Value: "example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewTokenizer(tt.input)
			tok, ok := z.Next()
			assert.True(t, ok)
			assert.Equal(t, StartTagToken, tok.Type)
			assert.Equal(t, []Attribute{tt.want}, tok.Attr)
		})
	}
}

func TestMultipleAttributes(t *testing.T) {
	z := NewTokenizer(`<h1 id="title" class="big">`)
	tok, ok := z.Next()
	assert.True(t, ok)
	want := []Attribute{
		{Name: "id", Value: "title"},
		{Name: "class", Value: "big"},
	}
	if diff := cmp.Diff(want, tok.Attr); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestSelfClosingTagSlash(t *testing.T) {
	z := NewTokenizer(`<img src="test.jpg" />`)
	tok, ok := z.Next()
	assert.True(t, ok)
	assert.Equal(t, StartTagToken, tok.Type)
	assert.True(t, tok.SelfClosing)
	assert.Equal(t, []Attribute{{Name: "src", Value: "test.jpg"}}, tok.Attr)
}

func TestMixedSelfClosingAndRegularTags(t *testing.T) {
	html := `<div><img src="test.jpg" /><p>Text</p><br/></div>`
	z := NewTokenizer(html)
	got := collectTokens(t, z)
	want := []Token{
		{Type: StartTagToken, Name: "div"},
		{Type: StartTagToken, Name: "img", SelfClosing: true, Attr: []Attribute{{Name: "src", Value: "test.jpg"}}},
		{Type: StartTagToken, Name: "p"},
		{Type: CharToken, Char: 'T'},
		{Type: CharToken, Char: 'e'},
		{Type: CharToken, Char: 'x'},
		{Type: CharToken, Char: 't'},
		{Type: EndTagToken, Name: "p"},
		{Type: StartTagToken, Name: "br", SelfClosing: true},
		{Type: EndTagToken, Name: "div"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteHTMLDocument(t *testing.T) {
	html := test_utils.Dedent(`
		<html>
		<head></head>
		<body>
		  <h1 id="title">H1 title</h1>
		  <h2 class="class">H2 title</h2>
		  <p>Test text.</p>
		  <p>
		    <a href="example.com">Link1</a>
		    <a href="example.com">Link2</a>
		  </p>
		</body>
		</html>`)
	z := NewTokenizer(html)
	got := collectTokens(t, z)

	var tags, ends int
	for _, tok := range got {
		switch tok.Type {
		case StartTagToken:
			tags++
		case EndTagToken:
			ends++
		}
	}
	// html, head, body, h1, h2, p, p, a, a = 9 start tags and end tags each.
	assert.Equal(t, 9, tags)
	assert.Equal(t, 9, ends)
	assert.Equal(t, StartTagToken, got[0].Type)
	assert.Equal(t, "html", got[0].Name)
	assert.Equal(t, EndTagToken, got[len(got)-1].Type)
	assert.Equal(t, "html", got[len(got)-1].Name)
}

func TestComment(t *testing.T) {
	z := NewTokenizer(`<!-- a comment --><p></p>`)
	got := collectTokens(t, z)
	want := []Token{
		{Type: CommentToken, Name: " a comment "},
		{Type: StartTagToken, Name: "p"},
		{Type: EndTagToken, Name: "p"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDoctype(t *testing.T) {
	z := NewTokenizer(`<!DOCTYPE html><html></html>`)
	tok, ok := z.Next()
	assert.True(t, ok)
	assert.Equal(t, DoctypeToken, tok.Type)
	assert.Equal(t, "html", tok.Name)
}

func TestUnterminatedCommentWarns(t *testing.T) {
	z := NewTokenizer(`<!-- oops`)
	_, ok := z.Next()
	assert.True(t, ok)
	assert.Len(t, z.Handler().Warnings(), 1)
}

func TestUnclosedTagEmitsEOF(t *testing.T) {
	z := NewTokenizer(`<div`)
	tok, ok := z.Next()
	assert.True(t, ok)
	assert.Equal(t, EOFToken, tok.Type)
	_, ok = z.Next()
	assert.False(t, ok)
}

func TestUnterminatedAttributeValueEmitsEOF(t *testing.T) {
	z := NewTokenizer(`<div class="foo`)
	tok, ok := z.Next()
	assert.True(t, ok)
	assert.Equal(t, EOFToken, tok.Type)
}

func TestScriptDataSubMachine(t *testing.T) {
	z := NewTokenizer(`var x = 1 < 2;</script>`)
	z.SetState(StateScriptData)

	var got []Token
	for {
		tok, ok := z.Next()
		if !ok {
			break
		}
		got = append(got, tok)
		if tok.Type == EndTagToken {
			break
		}
	}

	if len(got) == 0 || got[len(got)-1].Type != EndTagToken {
		t.Fatalf("expected a trailing </script> end tag, got %v", got)
	}
	assert.Equal(t, "script", got[len(got)-1].Name)

	var text string
	for _, tok := range got {
		if tok.Type == CharToken {
			text += string(tok.Char)
		}
	}
	assert.Equal(t, "var x = 1 < 2;", text)
}

func TestScriptDataLessThanNotFollowedBySlashStaysLiteral(t *testing.T) {
	z := NewTokenizer(`1 < 2`)
	z.SetState(StateScriptData)
	got := collectTokens(t, z)
	var text []rune
	for _, tok := range got {
		if tok.Type == CharToken {
			text = append(text, tok.Char)
		}
	}
	assert.Equal(t, "1 < 2", string(text))
}

func TestPlainTextNeverEmitsEOF(t *testing.T) {
	// Well-formed input that ends cleanly never produces a synthetic Eof
	// token: pos reaches exactly len(input) after the final character, and
	// isEOF only flips true one read past that.
	z := NewTokenizer("hello")
	got := collectTokens(t, z)
	for _, tok := range got {
		assert.NotEqual(t, EOFToken, tok.Type)
	}
	assert.Len(t, got, 5)
}
