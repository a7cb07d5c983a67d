// Package markup renders element trees built from plain Go values into HTML
// strings or JSON-serializable trees.
//
// An element is one of:
//
//   - nil or false, which render to nothing
//   - a string, which renders as escaped text
//   - true, a Go number, *big.Int or *big.Float, which render verbatim
//   - a non-empty []any tuple: {tag, props?, children...}
//
// The tuple head is either an HTML tag name, the empty string (a fragment),
// or a Component. Props are optional; when the second entry is a Props or a
// map[string]any it is taken as the element's properties, otherwise every
// entry after the head is a child.
//
// # Basic Usage
//
//	html, err := markup.RenderToHTML([]any{"div", "Hello, ", []any{"strong", "world"}, "!"})
//	// <div>Hello, <strong>world</strong>!</div>
//
//	tree, err := markup.RenderToJSON([]any{"div", markup.Props{{"class", "c"}}, "Hello"})
//	// []any{"div", markup.Props{{"class", "c"}}, "Hello"}
//
// # Props
//
// Props is an ordered attribute list, so attributes are emitted in the order
// they were written. A map[string]any is also accepted and is emitted in
// sorted key order. Two keys are reserved:
//
//   - children: a []any of child elements, used instead of positional children
//   - rawHtml: a string written to the HTML output without escaping
//
// Attribute values nil and false are omitted, true renders as a bare
// attribute name, and anything else is stringified and escaped.
//
// # Components
//
// A Component receives the element's props with a "children" attribute
// appended and returns a replacement element:
//
//	greeting := markup.Component(func(p markup.Props) markup.Element {
//	    return append([]any{"div", []any{"strong", "Hello, ", p.Value("name"), "!"}}, p.Children()...)
//	})
//	markup.RenderToHTML([]any{greeting, markup.Props{{"name", "X"}}, []any{"span", "Y"}})
//	// <div><strong>Hello, X!</strong><span>Y</span></div>
//
// Components are expanded eagerly by both renderers and never appear in the
// output.
//
// # Errors
//
// Every failure is a *Error with a stable code; match it with errors.Is
// against the Err* sentinels. Rendering is fail-fast: on error no output is
// produced.
//
// # Security
//
// All text and attribute values are escaped. rawHtml is the only way to
// bypass escaping and must only carry trusted markup.
package markup
