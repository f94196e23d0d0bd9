package concurrent

import (
	"golang.org/x/sync/errgroup"
)

// Map applies mapFn to every element of in with at most workers goroutines,
// preserving order. It returns the first error encountered. A workers value
// below 2 runs sequentially on the calling goroutine.
func Map[T any, R any](in []T, workers int, mapFn func(T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	if workers < 2 || len(in) < 2 {
		for i, v := range in {
			r, err := mapFn(v)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}

	errGroup := errgroup.Group{}
	errGroup.SetLimit(workers)
	for i, v := range in {
		errGroup.Go(func() error {
			r, err := mapFn(v)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MapMust is Map for functions that cannot fail.
func MapMust[T any, R any](in []T, workers int, mapFn func(T) R) []R {
	out, _ := Map(in, workers, func(v T) (R, error) {
		return mapFn(v), nil
	})
	return out
}
