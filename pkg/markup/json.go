package markup

// RenderToJSON renders el to a JSON-serializable tree. Components are
// expanded; everything else is carried through unchanged: scalars are not
// stringified, text is not escaped, and props are not rendered. A string tag
// becomes []any{tag, props, children...}, with props omitted when empty.
func (r *Renderer) RenderToJSON(el Element) (any, error) {
	return r.renderJSON(el, 0)
}

func (r *Renderer) renderJSON(el Element, depth int) (any, error) {
	if depth > r.config.MaxDepth {
		return nil, newError(CodeDepthExceeded).
			WithDetailf("depth %d exceeds limit %d", depth, r.config.MaxDepth)
	}

	tuple, ok := el.([]any)
	if !ok {
		return el, nil
	}

	p, err := Parse(tuple)
	if err != nil {
		return nil, err
	}

	if p.Kind() == KindComponent {
		c := p.Component()
		out, err := r.renderJSON(r.expand(c, p, depth), depth+1)
		if err != nil {
			return nil, withPath(err, componentName(c))
		}
		return out, nil
	}

	tag := p.TagName()
	out := make([]any, 0, len(p.Children)+2)
	out = append(out, tag)
	if len(p.Props) > 0 {
		out = append(out, p.Props)
	}
	for _, child := range p.Children {
		rendered, err := r.renderJSON(child, depth+1)
		if err != nil {
			if tag == "" {
				tag = "<>"
			}
			return nil, withPath(err, tag)
		}
		out = append(out, rendered)
	}
	return out, nil
}
