// Package aggregate runs independent reads concurrently and joins their
// results.
package aggregate

import (
	"context"

	"github.com/pkg/errors"
)

// Task is a single named read.
type Task func(ctx context.Context) (any, error)

// Tasks maps a result key to the task producing it.
type Tasks map[string]Task

// Results maps each task key to the value it produced.
type Results map[string]any

type outcome struct {
	key   string
	value any
	err   error
}

// Parallel starts every task at once and waits for them. It returns as soon as
// any task fails, with that task's error; the tasks still running are not
// cancelled and their results are dropped. When every task succeeds, the
// results are returned keyed like the tasks.
func Parallel(ctx context.Context, tasks Tasks) (Results, error) {
	// Buffered so tasks finishing after a failure don't block forever.
	outcomes := make(chan outcome, len(tasks))

	for key, task := range tasks {
		go func(key string, task Task) {
			value, err := run(ctx, task)
			outcomes <- outcome{key, value, err}
		}(key, task)
	}

	results := make(Results, len(tasks))
	for range tasks {
		o := <-outcomes
		if o.err != nil {
			return nil, o.err
		}
		results[o.key] = o.value
	}
	return results, nil
}

func run(ctx context.Context, task Task) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("aggregate task panicked: %v", r)
		}
	}()
	return task(ctx)
}

// Value returns the result stored under key, or the zero value of T when it's
// missing or has a different type.
func Value[T any](results Results, key string) T {
	v, _ := results[key].(T)
	return v
}
