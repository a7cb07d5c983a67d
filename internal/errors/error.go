package errors

import (
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender   Category = "render"
	CategoryDocument Category = "document"
	CategoryStore    Category = "store"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// Error is a structured error with a stable code, the element path where it
// occurred, and a hint on how to fix it.
type Error struct {
	// Code is a unique error identifier (e.g., "M001").
	Code string

	// Category is the error type (render, document, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail describes this particular occurrence, e.g. the offending value.
	Detail string

	// Path locates the failing element inside the rendered tree,
	// outermost element first.
	Path []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Path) > 0 {
		b.WriteString(" (at ")
		b.WriteString(e.PathString())
		b.WriteString(")")
	}
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code. It lets
// package-level sentinels built with New match errors created at the point
// of failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// PathString joins Path with " > ".
func (e *Error) PathString() string {
	return strings.Join(e.Path, " > ")
}

// WithDetail sets the occurrence detail.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithDetailf sets the occurrence detail using a format string.
func (e *Error) WithDetailf(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithPath prepends an element path segment. Renderers call it while the
// error unwinds, so the outermost element ends up first.
func (e *Error) WithPath(segment string) *Error {
	e.Path = append([]string{segment}, e.Path...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
		DocURL:     template.DocURL,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if me, ok := err.(*Error); ok {
		return me
	}
	return New(code).Wrap(err)
}
