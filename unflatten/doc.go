// Package unflatten rebuilds nested JSON from the flattened form produced by
// the flatten package.
//
// A flattened document like
//
//	{"a.b":1,"a.c":null,"a.d[0]":false,"a.d[1]":true}
//
// unflattens to
//
//	{"a":{"b":1,"c":null,"d":[false,true]}}
//
// Keys are split back into path segments: bracketed digits select array
// positions, fenced names ([\"a.b\"]) decode to literal member names, and
// everything between separators is a plain name. Gaps between array indexes
// fill with nulls. A mapping whose only key is "root" resolves to the bare
// root value, and leaf arrays are unflattened element-wise so keep-arrays
// output round-trips.
//
// The separator and bracket pair must match the ones used to flatten:
//
//	u, err := unflatten.New(`{"a/b":1}`, unflatten.WithSeparator('/'))
//
// Conflicting keys, ones that need the same position to be both a container
// and a scalar, or an object and an array, fail with errs.ErrKeyConflict.
package unflatten
