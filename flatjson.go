// Package flatjson flattens nested JSON documents into flat, single-level
// mappings and nests them back.
//
// A flattened document encodes each leaf value under a key that spells out
// the path from the root: object members are joined with a separator, array
// elements are addressed with bracketed indexes, and member names that
// contain key punctuation or whitespace are fenced in bracketed quotes so
// the key stays parseable.
//
// # Core Features
//
//   - Deterministic key order following the source document
//   - Exact number round-trips (literals are never rewritten as floats)
//   - Configurable separator, brackets, string escaping and key casing
//   - Keep-arrays mode that flattens objects but leaves arrays intact
//   - Full reversal through the unflatten package
//   - Transparent reading of gzip, zstd, lz4 and s2 compressed input
//
// # Basic Usage
//
// Flattening and unflattening JSON text:
//
//	flat, _ := flatjson.Flatten(`{"a":{"b":1,"c":[2,3]}}`)
//	// {"a.b":1,"a.c[0]":2,"a.c[1]":3}
//
//	nested, _ := flatjson.Unflatten(`{"a.b":1,"a.c[0]":2,"a.c[1]":3}`)
//	// {"a":{"b":1,"c":[2,3]}}
//
// Working with the flattened mapping directly:
//
//	m, _ := flatjson.FlattenAsMap(`{"a":{"b":1}}`)
//	for key, value := range m.All() {
//	    fmt.Println(key, value)
//	}
//
// Tuning the key syntax:
//
//	flat, _ := flatjson.Flatten(doc,
//	    flatten.WithFlattenMode(flatten.ModeKeepArrays),
//	    flatten.WithSeparator('/'),
//	    flatten.WithLeftAndRightBrackets('(', ')'),
//	)
//
// # Package Structure
//
// This package provides one-shot wrappers around the flatten and unflatten
// packages, which hold the full configurable API. The jsonval package
// parses and renders JSON with member order and number literals preserved,
// escape controls string escaping, and compress reads and writes compressed
// document streams.
package flatjson

import (
	"github.com/flatjson/flatjson/flatten"
	"github.com/flatjson/flatjson/internal/hash"
	"github.com/flatjson/flatjson/unflatten"
)

// Flatten flattens a JSON document into a single-level JSON object, keyed
// by the path to each leaf value.
//
// Example:
//
//	flat, err := flatjson.Flatten(`{"a":{"b":1}}`)
//	// flat == `{"a.b":1}`
func Flatten(json string, opts ...flatten.Option) (string, error) {
	f, err := flatten.New(json, opts...)
	if err != nil {
		return "", err
	}

	return f.Flatten()
}

// FlattenAsMap flattens a JSON document into an ordered key-to-value
// mapping, preserving the order leaves appear in the source.
//
// Example:
//
//	m, err := flatjson.FlattenAsMap(`{"a":{"b":1}}`)
//	// m.Keys() == []string{"a.b"}
func FlattenAsMap(json string, opts ...flatten.Option) (*flatten.OrderedMap, error) {
	f, err := flatten.New(json, opts...)
	if err != nil {
		return nil, err
	}

	return f.FlattenAsMap()
}

// Unflatten rebuilds the nested document from flattened JSON text. The
// separator and bracket options must match the ones the input was
// flattened with.
//
// Example:
//
//	nested, err := flatjson.Unflatten(`{"a.b":1}`)
//	// nested == `{"a":{"b":1}}`
func Unflatten(json string, opts ...unflatten.Option) (string, error) {
	u, err := unflatten.New(json, opts...)
	if err != nil {
		return "", err
	}

	return u.Unflatten()
}

// KeyID converts a flattened key to a stable 64-bit hash identifier.
//
// The hash is deterministic across runs and processes, making it suitable
// for fixed-size indexes, deduplication sets and cache keys where storing
// full path strings is too costly.
//
// Example:
//
//	id := flatjson.KeyID("a.b.c[0]")
func KeyID(key string) uint64 {
	return hash.ID(key)
}

// Fingerprint flattens a document and hashes the flattened rendering,
// giving a stable 64-bit identity for its leaf paths and values.
//
// Two documents fingerprint equally exactly when their flattened text is
// identical under the given options, so member order and number literal
// spelling both count.
func Fingerprint(json string, opts ...flatten.Option) (uint64, error) {
	flat, err := Flatten(json, opts...)
	if err != nil {
		return 0, err
	}

	return hash.ID(flat), nil
}
