// Package errs defines the sentinel errors shared across flatjson packages.
//
// Production code wraps these with fmt.Errorf("...: %w", err) to add context;
// callers test for them with errors.Is.
package errs

import "errors"

// Input errors.
var (
	// ErrMalformedJSON indicates the input text or stream is not valid JSON.
	// Parse errors wrap it together with the line and column of the offense.
	ErrMalformedJSON = errors.New("malformed JSON input")

	// ErrNilValue indicates a nil value tree or nil reader was supplied.
	ErrNilValue = errors.New("nil input value")
)

// Configuration errors.
var (
	// ErrInvalidSeparator indicates a separator that is whitespace, a double
	// quote, or collides with a bracket character.
	ErrInvalidSeparator = errors.New("invalid separator character")

	// ErrInvalidBrackets indicates bracket characters that are equal to each
	// other, whitespace, a double quote, or collide with the separator.
	ErrInvalidBrackets = errors.New("invalid bracket characters")
)

// Unflattening errors.
var (
	// ErrMalformedKey indicates a flattened key that cannot be split into
	// path segments, or a segment with a broken escape sequence.
	ErrMalformedKey = errors.New("malformed flattened key")

	// ErrKeyConflict indicates two flattened keys that demand incompatible
	// structures for the same path, e.g. "a" holding a scalar while "a.b"
	// requires "a" to be an object.
	ErrKeyConflict = errors.New("conflicting flattened keys")
)

// Compressed-input errors.
var (
	// ErrUnknownFormat indicates a compression format that is not supported
	// or could not be detected.
	ErrUnknownFormat = errors.New("unknown compression format")
)
