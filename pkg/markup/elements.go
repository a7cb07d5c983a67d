package markup

import "strings"

// voidTags are elements that cannot have children and have no closing tag.
var voidTags = map[string]bool{
	"area":    true,
	"base":    true,
	"br":      true,
	"col":     true,
	"command": true,
	"embed":   true,
	"hr":      true,
	"img":     true,
	"input":   true,
	"keygen":  true,
	"link":    true,
	"meta":    true,
	"param":   true,
	"source":  true,
	"track":   true,
	"wbr":     true,
}

// IsVoidTag returns true if tag is a void element. The match is
// ASCII case-insensitive.
func IsVoidTag(tag string) bool {
	if voidTags[tag] {
		return true
	}
	return voidTags[strings.ToLower(tag)]
}

// VoidTags returns the void element names.
func VoidTags() []string {
	tags := make([]string, 0, len(voidTags))
	for tag := range voidTags {
		tags = append(tags, tag)
	}
	return tags
}

// isDoctype matches the "!doctype" pseudo-tag, which renders like a void tag.
func isDoctype(tag string) bool {
	return strings.EqualFold(tag, "!doctype")
}
