// Package handler collects tokenizer diagnostics without ever aborting the
// operation that produced them; the layout engine reports none. Nothing in this core returns a
// Go error from its hot path; callers that care about malformed input pull
// Warnings()/Errors() out of the Handler after the fact.
package handler

import (
	"errors"

	"github.com/kenshaw/pageflow/internal/loc"
)

// Handler accumulates warnings and errors produced while tokenizing a
// document. It never stops the caller's traversal.
type Handler struct {
	filename string
	errors   []error
	warnings []error
}

// NewHandler creates a Handler for the named input. filename is cosmetic; it
// only annotates DiagnosticLocation.
func NewHandler(filename string) *Handler {
	return &Handler{
		filename: filename,
		errors:   make([]error, 0),
		warnings: make([]error, 0),
	}
}

// HasErrors reports whether any error-level diagnostic was collected.
func (h *Handler) HasErrors() bool {
	return len(h.errors) > 0
}

// AppendError records an error-level diagnostic.
func (h *Handler) AppendError(err error) {
	h.errors = append(h.errors, err)
}

// AppendWarning records a warning-level diagnostic.
func (h *Handler) AppendWarning(err error) {
	h.warnings = append(h.warnings, err)
}

// Errors returns all collected error-level diagnostics.
func (h *Handler) Errors() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0, len(h.errors))
	for _, err := range h.errors {
		if err != nil {
			msgs = append(msgs, ErrorToMessage(h, loc.ErrorType, err))
		}
	}
	return msgs
}

// Warnings returns all collected warning-level diagnostics.
func (h *Handler) Warnings() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0, len(h.warnings))
	for _, err := range h.warnings {
		if err != nil {
			msgs = append(msgs, ErrorToMessage(h, loc.WarningType, err))
		}
	}
	return msgs
}

// Diagnostics returns every collected diagnostic, errors first.
func (h *Handler) Diagnostics() []loc.DiagnosticMessage {
	return append(h.Errors(), h.Warnings()...)
}

// ErrorToMessage converts a collected error into a DiagnosticMessage,
// attaching a DiagnosticLocation when the error carries an *loc.ErrorWithRange.
func ErrorToMessage(h *Handler, severity loc.DiagnosticSeverity, err error) loc.DiagnosticMessage {
	var rangedError *loc.ErrorWithRange
	switch {
	case errors.As(err, &rangedError):
		location := &loc.DiagnosticLocation{
			File:   h.filename,
			Length: rangedError.Range.Len,
		}
		message := rangedError.ToMessage(location)
		message.Severity = int(severity)
		return message
	default:
		return loc.DiagnosticMessage{Text: err.Error(), Severity: int(severity)}
	}
}
