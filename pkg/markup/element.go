package markup

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Element is anything the renderers accept: nil, false, a raw scalar, or a
// composite []any tuple.
type Element = any

// Component computes a replacement element from its props. The props always
// carry a "children" attribute holding the element's children.
type Component func(props Props) Element

// Reserved prop names.
const (
	childrenProp = "children"
	rawHTMLProp  = "rawHtml"
)

// Kind is the composite element discriminator.
type Kind uint8

const (
	KindTag       Kind = iota // "div", "my-widget", ...
	KindFragment              // "" tag: children or rawHtml without a wrapper
	KindComponent             // Component to expand
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindTag:
		return "Tag"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Raw returns a fragment that injects html into the HTML output unescaped.
func Raw(html string) Element {
	return []any{"", Props{{Name: rawHTMLProp, Value: html}}}
}

// Fragment groups children without a wrapping element.
func Fragment(children ...Element) Element {
	return append([]any{""}, children...)
}

// describe formats a value for error details, bounded in length.
func describe(v any) string {
	if v == nil {
		return "nil"
	}
	s := fmt.Sprintf("%v", v)
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return fmt.Sprintf("%s (%T)", s, v)
}

// componentName returns the short function name of c, used in error paths
// and logs.
func componentName(c Component) string {
	fn := runtime.FuncForPC(reflect.ValueOf(c).Pointer())
	if fn == nil {
		return "component"
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name + "()"
}
