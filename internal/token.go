// Package pageflow implements the HTML tokenizer at the core of the
// rendering engine: a standards-derived state machine that turns a rune
// stream into a lazy sequence of markup tokens.
package pageflow

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kenshaw/pageflow/internal/handler"
	"github.com/kenshaw/pageflow/internal/loc"
)

// TokenType is the type of a Token.
type TokenType int

const (
	// ErrorToken is the zero value; it is never returned by Next.
	ErrorToken TokenType = iota
	// StartTagToken looks like <a>.
	StartTagToken
	// EndTagToken looks like </a>.
	EndTagToken
	// CharToken is a single character of text content.
	CharToken
	// CommentToken looks like <!--x-->. Content is not decoded.
	CommentToken
	// DoctypeToken looks like <!DOCTYPE x>.
	DoctypeToken
	// EOFToken signals that tokenization stopped mid-construct because the
	// input ran out (an unclosed tag, an unterminated attribute value, ...).
	// It is distinct from Next simply returning ok == false: plain,
	// well-formed input that ends cleanly never produces an EOFToken.
	EOFToken
)

func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CharToken:
		return "Char"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "Doctype"
	case EOFToken:
		return "EOF"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// Attribute is a finalized name/value pair read from a tag. Name is
// lowercase ASCII; Value is unescaped and preserved exactly as read.
type Attribute struct {
	Name  string
	Value string
}

// AttributeBuilder is the Attribute Accumulator: a small mutable record with
// a name buffer and a value buffer, appended one character at a time while
// the tokenizer scans an attribute. Names are expected to already be
// lowercased by the caller (the tokenizer lowercases upper-case ASCII before
// calling AddChar).
type AttributeBuilder struct {
	name  []rune
	value []rune
}

// NewAttributeBuilder returns an empty AttributeBuilder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{}
}

// AddChar appends c to the name buffer when isName is true, otherwise to the
// value buffer.
func (b *AttributeBuilder) AddChar(c rune, isName bool) {
	if isName {
		b.name = append(b.name, c)
	} else {
		b.value = append(b.value, c)
	}
}

// Attribute finalizes the builder into an immutable Attribute.
func (b *AttributeBuilder) Attribute() Attribute {
	return Attribute{Name: string(b.name), Value: string(b.value)}
}

// Token is a tagged variant describing one unit of HTML syntax: a start tag
// (name, self-closing flag, attributes), an end tag (name), a single
// character, a comment, a doctype, or the synthetic EOF marker.
type Token struct {
	Type        TokenType
	Name        string
	SelfClosing bool
	Attr        []Attribute
	Char        rune
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Type {
	case StartTagToken:
		return "<" + t.tagString() + ">"
	case EndTagToken:
		return "</" + t.Name + ">"
	case CharToken:
		return string(t.Char)
	case CommentToken:
		return "<!--" + t.Name + "-->"
	case DoctypeToken:
		return "<!DOCTYPE " + t.Name + ">"
	case EOFToken:
		return ""
	}
	return "Invalid(" + strconv.Itoa(int(t.Type)) + ")"
}

func (t Token) tagString() string {
	if len(t.Attr) == 0 {
		return t.Name
	}
	var b strings.Builder
	b.WriteString(t.Name)
	for _, a := range t.Attr {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
	return b.String()
}

// TokenizerState is one of the 18 WHATWG-derived states the tokenizer's main
// loop can be in.
type TokenizerState int

const (
	StateData TokenizerState = iota
	StateTagOpen
	StateEndTagOpen
	StateTagName
	StateBeforeAttributeName
	StateAttributeName
	StateAfterAttributeName
	StateBeforeAttributeValue
	StateAttributeValueDoubleQuoted
	StateAttributeValueSingleQuoted
	StateAttributeValueUnquoted
	StateAfterAttributeValueQuoted
	StateSelfClosingStartTag
	StateScriptData
	StateScriptDataLessThanSign
	StateScriptDataEndTagOpen
	StateScriptDataEndTagName
	StateTemporaryBuffer
)

func (s TokenizerState) String() string {
	switch s {
	case StateData:
		return "Data"
	case StateTagOpen:
		return "TagOpen"
	case StateEndTagOpen:
		return "EndTagOpen"
	case StateTagName:
		return "TagName"
	case StateBeforeAttributeName:
		return "BeforeAttributeName"
	case StateAttributeName:
		return "AttributeName"
	case StateAfterAttributeName:
		return "AfterAttributeName"
	case StateBeforeAttributeValue:
		return "BeforeAttributeValue"
	case StateAttributeValueDoubleQuoted:
		return "AttributeValueDoubleQuoted"
	case StateAttributeValueSingleQuoted:
		return "AttributeValueSingleQuoted"
	case StateAttributeValueUnquoted:
		return "AttributeValueUnquoted"
	case StateAfterAttributeValueQuoted:
		return "AfterAttributeValueQuoted"
	case StateSelfClosingStartTag:
		return "SelfClosingStartTag"
	case StateScriptData:
		return "ScriptData"
	case StateScriptDataLessThanSign:
		return "ScriptDataLessThanSign"
	case StateScriptDataEndTagOpen:
		return "ScriptDataEndTagOpen"
	case StateScriptDataEndTagName:
		return "ScriptDataEndTagName"
	case StateTemporaryBuffer:
		return "TemporaryBuffer"
	}
	return "Invalid(" + strconv.Itoa(int(s)) + ")"
}

// pendingTag is the token under construction: present in every state that
// appends to a tag name or attribute, absent in the Data/ScriptData-class
// states that emit characters directly.
type pendingTag struct {
	isStart     bool
	name        []rune
	selfClosing bool
	attrs       []*AttributeBuilder
}

// Tokenizer is a stateful lazy producer of Tokens over an input rune
// sequence. Construct one with NewTokenizer and call Next repeatedly; once
// Next returns ok == false, every subsequent call returns ok == false too.
type Tokenizer struct {
	state     TokenizerState
	input     []rune
	pos       int
	reconsume bool
	lastChar  rune
	pending   *pendingTag
	scratch   []rune

	handler *handler.Handler
}

// NewTokenizer constructs a Tokenizer over html, starting in the Data state.
func NewTokenizer(html string) *Tokenizer {
	return NewTokenizerWithHandler(html, handler.NewHandler(""))
}

// NewTokenizerWithHandler is like NewTokenizer but routes malformed-input
// warnings to an explicit Handler instead of allocating a private one.
func NewTokenizerWithHandler(html string, h *handler.Handler) *Tokenizer {
	return &Tokenizer{
		state:   StateData,
		input:   []rune(html),
		handler: h,
	}
}

// Handler returns the diagnostics collector this tokenizer reports to.
func (z *Tokenizer) Handler() *handler.Handler {
	return z.handler
}

// SetState lets the consumer (a DOM tree builder) switch the tokenizer into
// ScriptData mode after it has emitted a `script` start tag, and back again
// once the matching `</script>` end tag has been produced. The tokenizer
// never enters ScriptData on its own.
func (z *Tokenizer) SetState(s TokenizerState) {
	z.state = s
}

// State returns the tokenizer's current state.
func (z *Tokenizer) State() TokenizerState {
	return z.state
}

// isEOF reports whether the scanner has read past the end of input. pos can
// legitimately equal len(input) right after the last real character is
// consumed; isEOF only becomes true once a further read is attempted, which
// performs one synthetic pass so that states can observe it and emit Eof
// instead of indexing out of bounds.
func (z *Tokenizer) isEOF() bool {
	return z.pos > len(z.input)
}

// nextChar returns the next input character, honoring a pending reconsume
// request. At true end of input it returns a sentinel rune and advances pos
// one more step so isEOF becomes true.
func (z *Tokenizer) nextChar() rune {
	if z.reconsume {
		z.reconsume = false
		return z.lastChar
	}
	if z.pos >= len(z.input) {
		z.pos++
		z.lastChar = 0
		return z.lastChar
	}
	c := z.input[z.pos]
	z.pos++
	z.lastChar = c
	return c
}

func (z *Tokenizer) reconsumeNext() {
	z.reconsume = true
}

func (z *Tokenizer) createTag(isStart bool) {
	z.pending = &pendingTag{isStart: isStart}
}

func (z *Tokenizer) appendTagName(c rune) {
	if z.pending == nil {
		panic("pageflow: pending token must exist when appending to tag name")
	}
	z.pending.name = append(z.pending.name, c)
}

func (z *Tokenizer) startNewAttribute() {
	if z.pending == nil {
		panic("pageflow: pending token must exist when starting an attribute")
	}
	z.pending.attrs = append(z.pending.attrs, NewAttributeBuilder())
}

func (z *Tokenizer) appendAttribute(c rune, isName bool) {
	if z.pending == nil || len(z.pending.attrs) == 0 {
		panic("pageflow: pending token must have a current attribute")
	}
	z.pending.attrs[len(z.pending.attrs)-1].AddChar(c, isName)
}

func (z *Tokenizer) setSelfClosing() {
	if z.pending == nil {
		panic("pageflow: pending token must exist to set self-closing")
	}
	z.pending.selfClosing = true
}

func (z *Tokenizer) takePendingToken() Token {
	p := z.pending
	if p == nil {
		panic("pageflow: pending token must exist to be taken")
	}
	z.pending = nil
	var attrs []Attribute
	for _, a := range p.attrs {
		attrs = append(attrs, a.Attribute())
	}
	tt := StartTagToken
	if !p.isStart {
		tt = EndTagToken
	}
	return Token{Type: tt, Name: string(p.name), SelfClosing: p.selfClosing, Attr: attrs}
}

func isASCIIAlpha(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIUpper(c rune) bool {
	return 'A' <= c && c <= 'Z'
}

func toASCIILower(c rune) rune {
	return c + ('a' - 'A')
}

// Next scans and returns the next token. It returns ok == false once Eof has
// been returned or the input is exhausted with no token pending.
func (z *Tokenizer) Next() (Token, bool) {
	if z.pos >= len(z.input) && !z.reconsume {
		return Token{}, false
	}

	for {
		c := z.nextChar()

		switch z.state {
		case StateData:
			if c == '<' {
				z.state = StateTagOpen
				continue
			}
			if z.isEOF() {
				return Token{Type: EOFToken}, true
			}
			return Token{Type: CharToken, Char: c}, true

		case StateTagOpen:
			switch {
			case c == '/':
				z.state = StateEndTagOpen
				continue
			case c == '!':
				return z.readMarkupDeclaration(), true
			case isASCIIAlpha(c):
				z.reconsumeNext()
				z.state = StateTagName
				z.createTag(true)
				continue
			case z.isEOF():
				return Token{Type: EOFToken}, true
			default:
				z.reconsumeNext()
				z.state = StateData
			}

		case StateEndTagOpen:
			if z.isEOF() {
				return Token{Type: EOFToken}, true
			}
			if isASCIIAlpha(c) {
				z.reconsumeNext()
				z.state = StateTagName
				z.createTag(false)
				continue
			}

		case StateTagName:
			switch c {
			case ' ':
				z.state = StateBeforeAttributeName
				continue
			case '/':
				z.state = StateSelfClosingStartTag
				continue
			case '>':
				z.state = StateData
				return z.takePendingToken(), true
			default:
				if isASCIIUpper(c) {
					z.appendTagName(toASCIILower(c))
					continue
				}
				if z.isEOF() {
					return Token{Type: EOFToken}, true
				}
				z.appendTagName(c)
			}

		case StateBeforeAttributeName:
			if c == '/' || c == '>' || z.isEOF() {
				z.reconsumeNext()
				z.state = StateAfterAttributeName
				continue
			}
			z.reconsumeNext()
			z.state = StateAttributeName
			z.startNewAttribute()

		case StateAttributeName:
			if c == ' ' || c == '/' || c == '>' || z.isEOF() {
				z.reconsumeNext()
				z.state = StateAfterAttributeName
				continue
			}
			if c == '=' {
				z.state = StateBeforeAttributeValue
				continue
			}
			if isASCIIUpper(c) {
				z.appendAttribute(toASCIILower(c), true)
				continue
			}
			z.appendAttribute(c, true)

		case StateAfterAttributeName:
			switch c {
			case ' ':
				continue
			case '/':
				z.state = StateSelfClosingStartTag
				continue
			case '=':
				z.state = StateBeforeAttributeValue
				continue
			case '>':
				z.state = StateData
				return z.takePendingToken(), true
			default:
				if z.isEOF() {
					return Token{Type: EOFToken}, true
				}
				z.reconsumeNext()
				z.state = StateAttributeName
				z.startNewAttribute()
			}

		case StateBeforeAttributeValue:
			switch c {
			case ' ':
				continue
			case '"':
				z.state = StateAttributeValueDoubleQuoted
				continue
			case '\'':
				z.state = StateAttributeValueSingleQuoted
				continue
			default:
				z.reconsumeNext()
				z.state = StateAttributeValueUnquoted
			}

		case StateAttributeValueDoubleQuoted:
			if c == '"' {
				z.state = StateAfterAttributeValueQuoted
				continue
			}
			if z.isEOF() {
				return Token{Type: EOFToken}, true
			}
			z.appendAttribute(c, false)

		case StateAttributeValueSingleQuoted:
			if c == '\'' {
				z.state = StateAfterAttributeValueQuoted
				continue
			}
			if z.isEOF() {
				return Token{Type: EOFToken}, true
			}
			z.appendAttribute(c, false)

		case StateAttributeValueUnquoted:
			if c == ' ' {
				z.state = StateBeforeAttributeName
				continue
			}
			if c == '>' {
				z.state = StateData
				return z.takePendingToken(), true
			}
			if z.isEOF() {
				return Token{Type: EOFToken}, true
			}
			z.appendAttribute(c, false)

		case StateAfterAttributeValueQuoted:
			switch c {
			case ' ':
				z.state = StateBeforeAttributeName
				continue
			case '/':
				z.state = StateSelfClosingStartTag
				continue
			case '>':
				z.state = StateData
				return z.takePendingToken(), true
			default:
				if z.isEOF() {
					return Token{Type: EOFToken}, true
				}
				z.reconsumeNext()
				z.state = StateBeforeAttributeName
			}

		case StateSelfClosingStartTag:
			if c == '>' {
				z.setSelfClosing()
				z.state = StateData
				return z.takePendingToken(), true
			}
			if z.isEOF() {
				return Token{Type: EOFToken}, true
			}

		case StateScriptData:
			if c == '<' {
				z.state = StateScriptDataLessThanSign
				continue
			}
			if z.isEOF() {
				return Token{Type: EOFToken}, true
			}
			return Token{Type: CharToken, Char: c}, true

		case StateScriptDataLessThanSign:
			if c == '/' {
				z.scratch = z.scratch[:0]
				z.state = StateScriptDataEndTagOpen
				continue
			}
			z.reconsumeNext()
			z.state = StateScriptData
			// Next returns one token per call: "<" is emitted now and the
			// reconsumed character is emitted by ScriptData on the next call.
			return Token{Type: CharToken, Char: '<'}, true

		case StateScriptDataEndTagOpen:
			if isASCIIAlpha(c) {
				z.reconsumeNext()
				z.state = StateScriptDataEndTagName
				z.createTag(false)
				continue
			}
			z.reconsumeNext()
			z.state = StateScriptData
			// Only "<" is emitted; the "/" already consumed is dropped.
			return Token{Type: CharToken, Char: '<'}, true

		case StateScriptDataEndTagName:
			if c == '>' {
				z.state = StateData
				return z.takePendingToken(), true
			}
			if isASCIIAlpha(c) {
				z.scratch = append(z.scratch, c)
				z.appendTagName(toASCIILower(c))
				continue
			}
			buf := make([]rune, 0, len(z.scratch)+3)
			buf = append(buf, '<', '/')
			buf = append(buf, z.scratch...)
			buf = append(buf, c)
			z.scratch = buf
			z.state = StateTemporaryBuffer
			continue

		case StateTemporaryBuffer:
			z.reconsumeNext()
			if len(z.scratch) == 0 {
				z.state = StateScriptData
				continue
			}
			ch := z.scratch[0]
			z.scratch = z.scratch[1:]
			return Token{Type: CharToken, Char: ch}, true
		}
	}
}

// readMarkupDeclaration handles "<!", dispatching to a comment, a doctype,
// or a bogus comment. It is not part of the 18-state table: once "<!" is
// seen, none of these constructs need per-character state transitions, so
// each is scanned forward to its terminator in one pass instead.
func (z *Tokenizer) readMarkupDeclaration() Token {
	start := z.pos
	switch {
	case z.matchLiteral("--"):
		text := z.readUntilLiteral("-->", loc.WARNING_UNTERMINATED_HTML_COMMENT, "unterminated comment", z.pos)
		z.state = StateData
		return Token{Type: CommentToken, Name: text}
	case z.matchLiteralFold("DOCTYPE"):
		z.skipSpaces()
		text := z.readUntilLiteral(">", loc.WARNING_UNCLOSED_HTML_TAG, "unclosed doctype", z.pos)
		z.state = StateData
		return Token{Type: DoctypeToken, Name: strings.TrimSpace(text)}
	default:
		text := z.readUntilLiteral(">", loc.WARNING_UNCLOSED_HTML_TAG, "unclosed bogus comment", start)
		z.state = StateData
		return Token{Type: CommentToken, Name: text}
	}
}

func (z *Tokenizer) matchLiteral(s string) bool {
	rs := []rune(s)
	if z.pos+len(rs) > len(z.input) {
		return false
	}
	for i, r := range rs {
		if z.input[z.pos+i] != r {
			return false
		}
	}
	z.pos += len(rs)
	return true
}

func (z *Tokenizer) matchLiteralFold(s string) bool {
	rs := []rune(s)
	if z.pos+len(rs) > len(z.input) {
		return false
	}
	for i, r := range rs {
		if unicode.ToUpper(z.input[z.pos+i]) != unicode.ToUpper(r) {
			return false
		}
	}
	z.pos += len(rs)
	return true
}

func (z *Tokenizer) skipSpaces() {
	for z.pos < len(z.input) && unicode.IsSpace(z.input[z.pos]) {
		z.pos++
	}
}

// readUntilLiteral consumes runes up to and including terminator, returning
// the runes in between. If the input ends first, it warns via the handler
// and returns everything read.
func (z *Tokenizer) readUntilLiteral(terminator string, code loc.DiagnosticCode, message string, start int) string {
	term := []rune(terminator)
	for z.pos < len(z.input) {
		if z.pos+len(term) <= len(z.input) {
			match := true
			for i, r := range term {
				if z.input[z.pos+i] != r {
					match = false
					break
				}
			}
			if match {
				text := string(z.input[start:z.pos])
				z.pos += len(term)
				return text
			}
		}
		z.pos++
	}
	text := string(z.input[start:z.pos])
	z.handler.AppendWarning(&loc.ErrorWithRange{
		Code: code,
		Text: message,
		Range: loc.Range{
			Loc: loc.Loc{Start: start},
			Len: z.pos - start,
		},
	})
	return text
}
