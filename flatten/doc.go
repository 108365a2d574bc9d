// Package flatten converts nested JSON documents into single-level mappings
// whose keys encode the path to each value.
//
// A document like
//
//	{"a":{"b":1,"c":null,"d":[false,true]},"e":"f","g":2.3}
//
// flattens to
//
//	{"a.b":1,"a.c":null,"a.d[0]":false,"a.d[1]":true,"e":"f","g":2.3}
//
// Member names join with the separator ('.' unless configured otherwise) and
// array positions become bracketed indexes. A name containing the separator,
// a bracket or whitespace is fenced instead of joined, so the key still
// splits unambiguously back into path segments:
//
//	{"a.b":1}  ->  {"[\"a.b\"]":1}
//
// # Traversal
//
// The engine walks the parsed value depth-first with an explicit cursor
// stack, never recursing, so arbitrarily deep input cannot exhaust the call
// stack. Emission order is pre-order and preserves both member order and
// array index order, and the output mapping iterates in emission order.
//
// ModeKeepArrays stops the split at arrays: an array stays whole as a
// materialized list value, and any non-empty object inside it is re-flattened
// into a nested mapping of its own under the same configuration.
//
// When the source is a bare scalar, null or an empty array, the result is
// stored under the reserved key "root". An empty root object contributes no
// entry at all.
//
// # Usage
//
//	f, err := flatten.New(`{"a":{"b":1}}`)
//	if err != nil {
//		...
//	}
//	m, _ := f.FlattenAsMap() // ordered map {"a.b": Number("1")}
//	s, _ := f.Flatten()      // `{"a.b":1}`
//
// Behavior is adjusted with functional options:
//
//	f, err := flatten.New(doc,
//		flatten.WithFlattenMode(flatten.ModeKeepArrays),
//		flatten.WithSeparator('/'),
//		flatten.WithPrintMode(flatten.PrintPretty),
//	)
//
// Values in the output mapping are nil, bool, string, Number (the exact
// source literal, never a float64), *List or *OrderedMap.
package flatten
