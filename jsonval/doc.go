// Package jsonval implements the parsed JSON value model consumed by the
// flattening and unflattening engines.
//
// A Value is a tagged union over the six JSON kinds. Two properties matter to
// the rest of the module and drive the hand-rolled design:
//
//   - Object members keep their source order. Flattened output is defined in
//     document order, which map-based decoding cannot provide.
//   - Numbers keep their literal source text. 0.1, 1e2 and 100 stay exactly
//     as written; nothing is ever routed through a float64.
//
// The parser accepts strict JSON only: one top-level value, no trailing
// garbage, strict number grammar, and \uXXXX escapes decoded with UTF-16
// surrogate pairing. Errors carry the line and column of the offense and
// unwrap to errs.ErrMalformedJSON.
package jsonval
