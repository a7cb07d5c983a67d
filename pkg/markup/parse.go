package markup

// Parsed is the normalized form of a composite element.
type Parsed struct {
	// Tag is a string tag name ("" for fragments) or a Component.
	Tag any

	// Props excludes the children attribute.
	Props Props

	// Children are the positional or embedded children, in order.
	Children []any
}

// Kind classifies the parsed element.
func (p Parsed) Kind() Kind {
	switch t := p.Tag.(type) {
	case Component:
		return KindComponent
	case string:
		if t == "" {
			return KindFragment
		}
	}
	return KindTag
}

// TagName returns the string tag, or "" for components.
func (p Parsed) TagName() string {
	s, _ := p.Tag.(string)
	return s
}

// Component returns the component tag, or nil.
func (p Parsed) Component() Component {
	c, _ := p.Tag.(Component)
	return c
}

// Parse normalizes a composite element into its tag, props and children.
// Both renderers go through Parse, so children/props resolution is identical
// for HTML and JSON output.
func Parse(el Element) (Parsed, error) {
	tuple, ok := el.([]any)
	if !ok || len(tuple) == 0 {
		return Parsed{}, newError(CodeInvalidElement).
			WithDetailf("expected a non-empty []any, got %s", describe(el))
	}

	tag, err := parseTag(tuple[0])
	if err != nil {
		return Parsed{}, err
	}

	rest := tuple[1:]
	if len(rest) == 0 {
		return Parsed{Tag: tag}, nil
	}

	props, ok := asProps(rest[0])
	if !ok {
		return Parsed{Tag: tag, Children: rest}, nil
	}
	positional := rest[1:]

	embedded, ok := props.Get(childrenProp)
	if !ok {
		return Parsed{Tag: tag, Props: props, Children: positional}, nil
	}
	if len(positional) > 0 {
		return Parsed{}, newError(CodeAmbiguousChildren).
			WithDetailf("props.children and %d positional children", len(positional))
	}
	children, ok := embedded.([]any)
	if !ok {
		return Parsed{}, newError(CodeInvalidChildrenType).
			WithDetailf("got %s", describe(embedded))
	}
	return Parsed{Tag: tag, Props: props.Without(childrenProp), Children: children}, nil
}

func parseTag(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case Component:
		if t != nil {
			return t, nil
		}
	case func(Props) Element:
		if t != nil {
			return Component(t), nil
		}
	}
	return nil, newError(CodeInvalidTag).
		WithDetailf("tag must be a string or a Component, got %s", describe(v))
}
