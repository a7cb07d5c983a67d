// Package htmlmin minifies rendered HTML, including inline style and
// script content.
package htmlmin

import (
	"io"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

const mediaType = "text/html"

var scriptTypes = regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$")

// Minifier minifies HTML documents and fragments. It is safe for
// concurrent use.
type Minifier struct {
	m *minify.M
}

// New creates a Minifier. End tags and document tags are kept so that
// fragments stay well-formed when embedded in other pages.
func New() *Minifier {
	m := minify.New()
	m.Add(mediaType, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(scriptTypes, js.Minify)
	return &Minifier{m: m}
}

// String minifies s.
func (m *Minifier) String(s string) (string, error) {
	return m.m.String(mediaType, s)
}

// Bytes minifies b.
func (m *Minifier) Bytes(b []byte) ([]byte, error) {
	return m.m.Bytes(mediaType, b)
}

// Writer returns a writer that minifies everything written to it into w.
// The returned writer must be closed to flush the output.
func (m *Minifier) Writer(w io.Writer) io.WriteCloser {
	return m.m.Writer(mediaType, w)
}
