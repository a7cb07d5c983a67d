// Package document decodes element trees stored as YAML or JSON and encodes
// rendered JSON trees.
//
// A document is a single element written with plain YAML (or JSON) values:
//
//	- div
//	- class: card
//	- - h1
//	  - Hello
//	- - "@Greeting"
//	  - name: X
//
// Sequences become []any tuples and mappings become markup.Props with their
// key order preserved. A tuple head starting with "@" names a component
// registered in a Registry.
package document
