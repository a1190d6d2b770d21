// Package future runs a function on its own goroutine and lets callers wait
// for its result with a context.
package future

import (
	"context"
	"fmt"
	"sync"
)

// Future holds the eventual result of a function started with Go.
type Future[T any] struct {
	done   chan struct{}
	once   sync.Once
	cancel context.CancelFunc
	val    T
	err    error
}

// Go starts fn on a new goroutine. The context passed to fn is derived from
// ctx and is canceled when fn returns or Cancel is called.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[T]{done: make(chan struct{}), cancel: cancel}

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.resolve(zero, fmt.Errorf("future: panic: %v", r))
			}
		}()

		v, err := fn(ctx)
		f.resolve(v, err)
	}()

	return f
}

// Resolved returns a future that is already complete.
func Resolved[T any](v T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), cancel: func() {}}
	f.resolve(v, err)
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
	})
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel asks the running function to stop. It does not wait.
func (f *Future[T]) Cancel() {
	f.cancel()
}

// Await blocks until the result is ready or ctx is done. A canceled ctx does
// not stop the underlying function; use Cancel for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
