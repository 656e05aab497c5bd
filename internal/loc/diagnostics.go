package loc

// DiagnosticCode identifies the kind of warning or error a Handler collected.
type DiagnosticCode int

const (
	ERROR                             DiagnosticCode = 1000
	ERROR_UNTERMINATED_STRING         DiagnosticCode = 1001
	WARNING                           DiagnosticCode = 2000
	WARNING_UNTERMINATED_HTML_COMMENT DiagnosticCode = 2001
	WARNING_UNCLOSED_HTML_TAG         DiagnosticCode = 2002
	WARNING_UNEXPECTED_CHARACTER      DiagnosticCode = 2003
	WARNING_UNRESOLVED_STYLE          DiagnosticCode = 2004
	INFO                              DiagnosticCode = 3000
	HINT                              DiagnosticCode = 4000
)

// DiagnosticSeverity classifies a DiagnosticMessage for display purposes.
type DiagnosticSeverity int

const (
	ErrorType DiagnosticSeverity = iota
	WarningType
	InformationType
	HintType
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case ErrorType:
		return "error"
	case WarningType:
		return "warning"
	case InformationType:
		return "info"
	case HintType:
		return "hint"
	}
	return "unknown"
}

// DiagnosticLocation pinpoints where a DiagnosticMessage occurred. The
// Handler fills in File and Length only; Line and Column are left zero.
type DiagnosticLocation struct {
	File   string
	Line   int
	Column int
	Length int
}

// DiagnosticMessage is a Handler-collected warning or error, ready to be
// surfaced to a consumer.
type DiagnosticMessage struct {
	Code     DiagnosticCode
	Text     string
	Severity int
	Location *DiagnosticLocation
}

// ErrorWithRange is an error tied to a span of the original input. Handlers
// use it so that callers can report precise positions without the
// tokenizer/layout code depending on any particular source-map format.
type ErrorWithRange struct {
	Code  DiagnosticCode
	Text  string
	Range Range
}

func (e *ErrorWithRange) Error() string {
	return e.Text
}

// ToMessage converts the error into a DiagnosticMessage, attaching location
// if one is provided.
func (e *ErrorWithRange) ToMessage(location *DiagnosticLocation) DiagnosticMessage {
	return DiagnosticMessage{
		Code:     e.Code,
		Text:     e.Text,
		Location: location,
	}
}
