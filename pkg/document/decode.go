package document

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/courseforge/markup/internal/errors"
	"github.com/courseforge/markup/pkg/markup"
)

// ComponentPrefix marks a tuple head that names a registered component.
const ComponentPrefix = "@"

const childrenKey = "children"

// Decode parses a YAML or JSON document into an element tree. Component
// names are resolved against reg, which may be nil for documents that use
// none.
func Decode(data []byte, reg *Registry) (markup.Element, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, errors.New(errors.CodeDocumentDecode).
			WithDetail(firstLine(err.Error())).
			Wrap(err)
	}

	d := decoder{reg: reg}
	return d.element(raw)
}

type decoder struct {
	reg *Registry
}

// element converts a decoded YAML value into an element.
func (d decoder) element(v any) (markup.Element, error) {
	switch t := v.(type) {
	case []any:
		return d.tuple(t)
	case yaml.MapSlice:
		return d.props(t)
	default:
		return data(v), nil
	}
}

func (d decoder) tuple(seq []any) (markup.Element, error) {
	out := make([]any, len(seq))
	for i, v := range seq {
		if i == 0 {
			head, err := d.head(v)
			if err != nil {
				return nil, err
			}
			out[0] = head
			continue
		}

		el, err := d.element(v)
		if err != nil {
			if name, ok := seq[0].(string); ok {
				return nil, withSegment(err, name)
			}
			return nil, err
		}
		out[i] = el
	}
	return out, nil
}

// head resolves "@Name" tuple heads to registered components.
func (d decoder) head(v any) (any, error) {
	name, ok := v.(string)
	if !ok || !strings.HasPrefix(name, ComponentPrefix) {
		return d.element(v)
	}

	key := strings.TrimPrefix(name, ComponentPrefix)
	c, ok := d.reg.Lookup(key)
	if !ok {
		err := errors.New(errors.CodeUnknownComponent).WithDetailf("%q", key)
		if names := d.reg.Names(); len(names) > 0 {
			err = err.WithSuggestion(fmt.Sprintf("Registered components: %s", strings.Join(names, ", ")))
		}
		return nil, err.WithPath(name)
	}
	return c, nil
}

// props decodes a props mapping. Only the children list holds elements;
// every other value is caller data and never resolves components.
func (d decoder) props(m yaml.MapSlice) (markup.Props, error) {
	props := make(markup.Props, 0, len(m))
	for _, item := range m {
		key := fmt.Sprint(item.Key)
		if key != childrenKey {
			props = append(props, markup.Attr{Name: key, Value: data(item.Value)})
			continue
		}
		val, err := d.children(item.Value)
		if err != nil {
			return nil, err
		}
		props = append(props, markup.Attr{Name: key, Value: val})
	}
	return props, nil
}

// children decodes each entry of a children list as an element. The list
// itself is not a tuple, so its first entry is never a component name.
func (d decoder) children(v any) (any, error) {
	seq, ok := v.([]any)
	if !ok {
		return data(v), nil
	}
	out := make([]any, len(seq))
	for i, child := range seq {
		el, err := d.element(child)
		if err != nil {
			return nil, err
		}
		out[i] = el
	}
	return out, nil
}

// data converts a decoded value without treating lists as tuples.
func data(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = data(item)
		}
		return out
	case yaml.MapSlice:
		props := make(markup.Props, 0, len(t))
		for _, item := range t {
			props = append(props, markup.Attr{Name: fmt.Sprint(item.Key), Value: data(item.Value)})
		}
		return props
	case uint64:
		if t <= 1<<63-1 {
			return int64(t)
		}
		return t
	default:
		return v
	}
}

func withSegment(err error, segment string) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithPath(segment)
	}
	return err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
