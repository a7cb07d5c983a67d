package markup

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// DefaultMaxDepth bounds element nesting plus component expansion.
const DefaultMaxDepth = 512

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// MaxDepth is the deepest element (counting component expansions) the
	// renderer descends into before failing with ErrDepthExceeded.
	// Defaults to DefaultMaxDepth if not specified.
	MaxDepth int

	// Logger receives debug records for component expansion.
	// Nil disables logging.
	Logger *slog.Logger
}

// Renderer materializes element trees. A Renderer holds no per-render state
// and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	return &Renderer{config: config}
}

var defaultRenderer = NewRenderer(RendererConfig{})

// RenderToHTML renders el to an HTML string with the default renderer.
func RenderToHTML(el Element) (string, error) {
	return defaultRenderer.RenderToHTML(el)
}

// RenderToJSON renders el to a JSON-serializable tree with the default renderer.
func RenderToJSON(el Element) (any, error) {
	return defaultRenderer.RenderToJSON(el)
}

// MaxDepth returns the configured depth bound.
func (r *Renderer) MaxDepth() int {
	return r.config.MaxDepth
}

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64<<10 {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// RenderToHTML renders el to an HTML string. On error the result is "".
func (r *Renderer) RenderToHTML(el Element) (string, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := r.renderHTML(buf, el, 0); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter renders el and writes the HTML to w. Nothing is written
// when rendering fails.
func (r *Renderer) RenderToWriter(w io.Writer, el Element) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := r.renderHTML(buf, el, 0); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// renderHTML dispatches rendering based on element shape.
func (r *Renderer) renderHTML(buf *bytes.Buffer, el Element, depth int) error {
	if depth > r.config.MaxDepth {
		return newError(CodeDepthExceeded).
			WithDetailf("depth %d exceeds limit %d", depth, r.config.MaxDepth)
	}

	switch v := el.(type) {
	case nil:
		return nil
	case bool:
		if v {
			buf.WriteString("true")
		}
		return nil
	case string:
		buf.WriteString(Escape(v))
		return nil
	case []any:
		return r.renderComposite(buf, v, depth)
	}

	if s, ok := scalarString(el); ok {
		buf.WriteString(s)
		return nil
	}
	return newError(CodeInvalidElement).WithDetailf("cannot render %s", describe(el))
}

func (r *Renderer) renderComposite(buf *bytes.Buffer, tuple []any, depth int) error {
	p, err := Parse(tuple)
	if err != nil {
		return err
	}

	switch p.Kind() {
	case KindComponent:
		c := p.Component()
		if err := r.renderHTML(buf, r.expand(c, p, depth), depth+1); err != nil {
			return withPath(err, componentName(c))
		}
		return nil
	case KindFragment:
		if err := r.renderFragment(buf, p, depth); err != nil {
			return withPath(err, "<>")
		}
		return nil
	default:
		if err := r.renderElement(buf, p, depth); err != nil {
			return withPath(err, p.TagName())
		}
		return nil
	}
}

// renderFragment renders a "" tag: either its rawHtml verbatim or its
// children without a wrapper element.
func (r *Renderer) renderFragment(buf *bytes.Buffer, p Parsed, depth int) error {
	if extra := p.Props.Without(rawHTMLProp); len(extra) > 0 {
		return newError(CodeIllegalEmptyTagProps).
			WithDetailf("got %s", strings.Join(extra.Names(), ", "))
	}

	if raw, ok := p.Props.Get(rawHTMLProp); ok && raw != nil {
		html, ok := raw.(string)
		if !ok {
			return newError(CodeInvalidRawHTML).WithDetailf("got %s", describe(raw))
		}
		if len(p.Children) > 0 {
			return newError(CodeRawHTMLChildrenConflict).
				WithDetailf("fragment has rawHtml and %d children", len(p.Children))
		}
		buf.WriteString(html)
		return nil
	}

	return r.renderChildren(buf, p.Children, depth)
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(buf *bytes.Buffer, p Parsed, depth int) error {
	tag := p.TagName()
	if !ValidTagName(tag) {
		return newError(CodeInvalidTagName).WithDetailf("%q", tag)
	}

	raw, hasRaw := p.Props.Get(rawHTMLProp)
	hasRaw = hasRaw && raw != nil
	attrs := p.Props
	if attrs.Has(rawHTMLProp) {
		attrs = attrs.Without(rawHTMLProp)
	}

	buf.WriteByte('<')
	buf.WriteString(tag)
	if err := writeAttrs(buf, attrs); err != nil {
		return err
	}
	buf.WriteByte('>')

	if IsVoidTag(tag) || isDoctype(tag) {
		if len(p.Children) > 0 {
			return newError(CodeVoidTagHasChildren).
				WithDetailf("<%s> received %d children", tag, len(p.Children))
		}
		if hasRaw {
			return newError(CodeVoidTagHasRawHTML).WithDetailf("<%s> received rawHtml", tag)
		}
		return nil
	}

	if hasRaw {
		html, ok := raw.(string)
		if !ok {
			return newError(CodeInvalidRawHTML).WithDetailf("got %s", describe(raw))
		}
		if len(p.Children) > 0 {
			return newError(CodeRawHTMLChildrenConflict).
				WithDetailf("<%s> has rawHtml and %d children", tag, len(p.Children))
		}
		buf.WriteString(html)
	} else if err := r.renderChildren(buf, p.Children, depth); err != nil {
		return err
	}

	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteByte('>')
	return nil
}

func (r *Renderer) renderChildren(buf *bytes.Buffer, children []any, depth int) error {
	for _, child := range children {
		if err := r.renderHTML(buf, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// expand invokes a component with its props plus the children attribute.
func (r *Renderer) expand(c Component, p Parsed, depth int) Element {
	children := p.Children
	if children == nil {
		children = []any{}
	}

	props := p.Props.With(childrenProp, children)

	if r.config.Logger != nil {
		r.config.Logger.Debug("expanding component",
			"component", componentName(c),
			"depth", depth,
			"children", len(children),
		)
	}
	return c(props)
}
