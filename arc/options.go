// File: arc/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package arc

// Option customizes a control block at creation.
type Option[T any] func(*options[T])

type options[T any] struct {
	drop func(*T)
}

// WithDrop sets the destructor run when the last handle is released.
// It takes precedence over a Dropper implementation on the payload.
func WithDrop[T any](fn func(*T)) Option[T] {
	return func(o *options[T]) {
		o.drop = fn
	}
}
