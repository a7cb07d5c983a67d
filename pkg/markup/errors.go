package markup

import (
	"github.com/courseforge/markup/internal/errors"
)

// Error is the error type returned by the renderers.
type Error = errors.Error

// Error codes, re-exported for callers that switch on Error.Code.
const (
	CodeInvalidElement          = errors.CodeInvalidElement
	CodeInvalidTag              = errors.CodeInvalidTag
	CodeInvalidTagName          = errors.CodeInvalidTagName
	CodeAmbiguousChildren       = errors.CodeAmbiguousChildren
	CodeInvalidChildrenType     = errors.CodeInvalidChildrenType
	CodeIllegalAttributeName    = errors.CodeIllegalAttributeName
	CodeIllegalEmptyTagProps    = errors.CodeIllegalEmptyTagProps
	CodeInvalidRawHTML          = errors.CodeInvalidRawHTML
	CodeRawHTMLChildrenConflict = errors.CodeRawHTMLChildrenConflict
	CodeVoidTagHasChildren      = errors.CodeVoidTagHasChildren
	CodeVoidTagHasRawHTML       = errors.CodeVoidTagHasRawHTML
	CodeDepthExceeded           = errors.CodeDepthExceeded
)

// Sentinels for errors.Is. Errors match by code; the sentinels themselves
// carry no detail or path.
var (
	ErrInvalidElement          = errors.New(CodeInvalidElement)
	ErrInvalidTag              = errors.New(CodeInvalidTag)
	ErrInvalidTagName          = errors.New(CodeInvalidTagName)
	ErrAmbiguousChildren       = errors.New(CodeAmbiguousChildren)
	ErrInvalidChildrenType     = errors.New(CodeInvalidChildrenType)
	ErrIllegalAttributeName    = errors.New(CodeIllegalAttributeName)
	ErrIllegalEmptyTagProps    = errors.New(CodeIllegalEmptyTagProps)
	ErrInvalidRawHTML          = errors.New(CodeInvalidRawHTML)
	ErrRawHTMLChildrenConflict = errors.New(CodeRawHTMLChildrenConflict)
	ErrVoidTagHasChildren      = errors.New(CodeVoidTagHasChildren)
	ErrVoidTagHasRawHTML       = errors.New(CodeVoidTagHasRawHTML)
	ErrDepthExceeded           = errors.New(CodeDepthExceeded)
)

func newError(code string) *Error {
	return errors.New(code)
}

// withPath records segment as the next-outer element of err's path.
func withPath(err error, segment string) error {
	if me, ok := err.(*Error); ok {
		return me.WithPath(segment)
	}
	return err
}
