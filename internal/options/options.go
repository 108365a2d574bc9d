// Package options implements the generic functional-option machinery shared
// by the configurable packages of this module.
package options

// Option configures a target of type T. Implementations are produced by New
// and NoError; the apply method is unexported so that option values are
// opaque to callers.
type Option[T any] interface {
	apply(T) error
}

// funcOption adapts a plain function to the Option interface.
type funcOption[T any] struct {
	fn func(T) error
}

func (o funcOption[T]) apply(target T) error {
	return o.fn(target)
}

// New wraps a validating setter into an Option. The error returned by fn
// aborts Apply and rejects the configuration it was part of.
func New[T any](fn func(T) error) Option[T] {
	return funcOption[T]{fn: fn}
}

// NoError wraps a setter that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return funcOption[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply runs opts against target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
