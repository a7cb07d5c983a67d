package markup

import "strings"

// Escape escapes text for safe inclusion in HTML content and quoted
// attribute values. It replaces &, <, >, " and ' with entities and leaves
// every other byte alone, including invalid UTF-8. Escaping twice
// double-escapes '&'.
func Escape(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + len(s)/4)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteByte(c)
		}
	}

	return buf.String()
}
