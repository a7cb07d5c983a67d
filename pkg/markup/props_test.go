package markup

import (
	"reflect"
	"testing"
)

func TestPropsWith(t *testing.T) {
	p := Props{{"id", "a"}, {"class", "b"}}

	replaced := p.With("id", "z")
	if want := (Props{{"id", "z"}, {"class", "b"}}); !reflect.DeepEqual(replaced, want) {
		t.Errorf("With(id) = %v, want %v", replaced, want)
	}
	if p[0].Value != "a" {
		t.Errorf("With modified the receiver: %v", p)
	}

	added := p.With("title", "t")
	if want := []string{"id", "class", "title"}; !reflect.DeepEqual(added.Names(), want) {
		t.Errorf("With(title) names = %v, want %v", added.Names(), want)
	}

	if got := added.Without("class").Names(); !reflect.DeepEqual(got, []string{"id", "title"}) {
		t.Errorf("Without(class) names = %v", got)
	}
}

func TestComponentReceivesChildrenLast(t *testing.T) {
	var got Props
	c := Component(func(p Props) Element {
		got = p
		return nil
	})

	if _, err := RenderToHTML([]any{c, Props{{"a", 1}}, "x", "y"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"a", "children"}; !reflect.DeepEqual(got.Names(), want) {
		t.Errorf("names = %v, want %v", got.Names(), want)
	}
	if !reflect.DeepEqual(got.Children(), []any{"x", "y"}) {
		t.Errorf("Children() = %v", got.Children())
	}
}
