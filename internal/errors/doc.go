// Package errors provides structured, actionable error messages for markup.
//
// Every failure raised by the renderer, the document decoder, the page
// stores and the configuration loader is an *Error carrying:
//   - a stable code (e.g. "M010") that callers can match with errors.Is
//   - a short message and a per-occurrence detail
//   - the path of the failing element inside the tree
//   - a hint and a documentation URL
//
// # Error Categories
//
//   - render: malformed element trees (M001-M099)
//   - document: YAML/JSON documents and component references (D001-D099)
//   - store: page lookup (P001-P099)
//   - config: markup.yaml (C001-C099)
//
// # Usage
//
//	err := errors.New(errors.CodeVoidTagHasChildren).
//	    WithDetailf("<%s> received %d children", "img", 1).
//	    WithPath("img").
//	    WithPath("div")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR M010: Void tag cannot have children
//	//
//	//   div > img
//	//
//	//   <img> received 1 children
//	//
//	//   Learn more: https://courseforge.dev/docs/markup/errors/M010
package errors
