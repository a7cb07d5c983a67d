package markup

import (
	"bytes"
	"reflect"
)

// AttrsToString serializes p as an HTML attribute string. Each emitted
// attribute starts with a space; the result is "" when nothing is emitted.
// Values nil, nil pointers and false are omitted and true renders as a bare
// name.
func AttrsToString(p Props) (string, error) {
	var buf bytes.Buffer
	if err := writeAttrs(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeAttrs(buf *bytes.Buffer, p Props) error {
	for _, a := range p {
		if !ValidAttrName(a.Name) {
			return newError(CodeIllegalAttributeName).WithDetailf("%q", a.Name)
		}

		if isNilPointer(a.Value) {
			continue
		}
		switch v := a.Value.(type) {
		case nil:
			continue
		case bool:
			if v {
				buf.WriteByte(' ')
				buf.WriteString(a.Name)
			}
			continue
		}

		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(Escape(attrValueString(a.Value)))
		buf.WriteByte('"')
	}
	return nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
