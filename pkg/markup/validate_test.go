package markup

import "testing"

func TestValidTagName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"div", true},
		{"h1", true},
		{"H1", true},
		{"DIV", true},
		{"!doctype", true},
		{"!DOCTYPE", true},
		{"my-element", true},
		{"x-foo.bar_baz", true},
		{"div-", true},
		{"math-α", true},
		{"x-ß", true},
		{"", false},
		{"1div", false},
		{"-foo", false},
		{"My-Element", false},
		{"é-x", false},
		{"·-x", false},
		{"foo_bar", false},
		{"my element", false},
		{"a<b", false},
		{"!doc", false},
		{"x-🙂\u0000", false},
	}

	for _, tt := range tests {
		if got := ValidTagName(tt.name); got != tt.want {
			t.Errorf("ValidTagName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidAttrName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"class", true},
		{"data-x", true},
		{"aria-label", true},
		{"@click", true},
		{":prop", true},
		{"ünïcode", true},
		{"", false},
		{"a b", false},
		{`a"`, false},
		{"a'", false},
		{"a<", false},
		{"a>", false},
		{"a/b", false},
		{"a=b", false},
		{`a\b`, false},
		{"a\tb", false},
		{"a\x00", false},
		{"a\uFDD0", false},
		{"a\uFDEF", false},
		{"a\uFFFE", false},
		{"a\uFFFF", false},
	}

	for _, tt := range tests {
		if got := ValidAttrName(tt.name); got != tt.want {
			t.Errorf("ValidAttrName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsVoidTag(t *testing.T) {
	for _, tag := range []string{"br", "img", "input", "meta", "wbr", "keygen", "command", "BR", "Img"} {
		if !IsVoidTag(tag) {
			t.Errorf("IsVoidTag(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"div", "span", "script", "", "image"} {
		if IsVoidTag(tag) {
			t.Errorf("IsVoidTag(%q) = true, want false", tag)
		}
	}
	if n := len(VoidTags()); n != 16 {
		t.Errorf("len(VoidTags()) = %d, want 16", n)
	}
}
