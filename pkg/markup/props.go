package markup

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Attr is a single named property.
type Attr struct {
	Name  string
	Value any
}

// Props is an ordered property list. Attributes render in slice order.
type Props []Attr

// PropsFromMap converts m to Props with keys in sorted order.
func PropsFromMap(m map[string]any) Props {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Props, 0, len(keys))
	for _, k := range keys {
		p = append(p, Attr{Name: k, Value: m[k]})
	}
	return p
}

// asProps reports whether v occupies the props slot of a tuple.
func asProps(v any) (Props, bool) {
	switch p := v.(type) {
	case Props:
		return p, true
	case map[string]any:
		return PropsFromMap(p), true
	default:
		return nil, false
	}
}

// Get returns the value of the first attribute named name.
func (p Props) Get(name string) (any, bool) {
	for _, a := range p {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Has reports whether an attribute named name is present.
func (p Props) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Value returns the value of name, or nil.
func (p Props) Value(name string) any {
	v, _ := p.Get(name)
	return v
}

// String returns the value of name formatted as text, or "" when absent.
func (p Props) String(name string) string {
	v, ok := p.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return attrValueString(v)
}

// Children returns the "children" attribute a Component receives.
func (p Props) Children() []any {
	c, _ := p.Value(childrenProp).([]any)
	return c
}

// Without returns a copy of p with every attribute named name removed.
func (p Props) Without(name string) Props {
	out := make(Props, 0, len(p))
	for _, a := range p {
		if a.Name != name {
			out = append(out, a)
		}
	}
	return out
}

// With returns a copy of p with name set to value, replacing an existing
// attribute in place or appending a new one.
func (p Props) With(name string, value any) Props {
	out := make(Props, len(p), len(p)+1)
	copy(out, p)
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attr{Name: name, Value: value})
}

// Names returns the attribute names in order.
func (p Props) Names() []string {
	names := make([]string, len(p))
	for i, a := range p {
		names[i] = a.Name
	}
	return names
}

// MarshalJSON encodes p as a JSON object, keeping attribute order.
func (p Props) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.Value)
		if err != nil {
			return nil, fmt.Errorf("prop %q: %w", a.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
