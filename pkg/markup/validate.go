package markup

import "unicode"

// ValidAttrName reports whether name may be used as an attribute name.
// Names must be non-empty and may not contain spaces, quotes, '<', '>',
// '/', '=', '\', C0 controls or Unicode noncharacters.
func ValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= 0x1F:
			return false
		case r == ' ', r == '"', r == '\'', r == '<', r == '>', r == '/', r == '=', r == '\\':
			return false
		case r >= 0xFDD0 && r <= 0xFDEF:
			return false
		case r == 0xFFFE, r == 0xFFFF:
			return false
		}
	}
	return true
}

// ValidTagName reports whether name is "!doctype", a plain HTML element
// name, or a custom element name.
func ValidTagName(name string) bool {
	if isDoctype(name) {
		return true
	}
	return isHTMLTagName(name) || isCustomElementName(name)
}

// isHTMLTagName matches [A-Za-z][A-Za-z0-9]*.
func isHTMLTagName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// isCustomElementName follows the WHATWG valid custom element name rule:
// a leading ASCII lowercase letter, at least one hyphen, and only PCENChar
// characters.
func isCustomElementName(name string) bool {
	hyphen := false
	for i, r := range name {
		if i == 0 && !(r >= 'a' && r <= 'z') {
			return false
		}
		if r == '-' {
			hyphen = true
		}
		if !isPCENChar(r) {
			return false
		}
	}
	return hyphen
}

func isPCENChar(r rune) bool {
	switch {
	case r == '-', r == '.', r == '_':
		return true
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
		return true
	}
	return unicode.Is(pcenWide, r)
}

// pcenWide holds the non-ASCII PCENChar ranges.
var pcenWide = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00B7, Hi: 0x00B7, Stride: 1},
		{Lo: 0x00C0, Hi: 0x00D6, Stride: 1},
		{Lo: 0x00D8, Hi: 0x00F6, Stride: 1},
		{Lo: 0x00F8, Hi: 0x037D, Stride: 1},
		{Lo: 0x037F, Hi: 0x1FFF, Stride: 1},
		{Lo: 0x200C, Hi: 0x200D, Stride: 1},
		{Lo: 0x203F, Hi: 0x2040, Stride: 1},
		{Lo: 0x2070, Hi: 0x218F, Stride: 1},
		{Lo: 0x2C00, Hi: 0x2FEF, Stride: 1},
		{Lo: 0x3001, Hi: 0xD7FF, Stride: 1},
		{Lo: 0xF900, Hi: 0xFDCF, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFFFD, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0xEFFFF, Stride: 1},
	},
	LatinOffset: 3,
}
