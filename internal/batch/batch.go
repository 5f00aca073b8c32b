// Package batch evaluates many expressions concurrently with bounded
// parallelism, preserving input order.
package batch

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// EvalFunc computes a single expression. Both the local engine and the
// remote API client satisfy this shape.
type EvalFunc func(ctx context.Context, expression string) (decimal.Decimal, error)

// Result pairs an expression with its value or failure. Failures are
// isolated per expression; one bad input never aborts the rest.
type Result struct {
	Expression string
	Value      decimal.Decimal
	Err        error
}

// Evaluate runs eval over every expression with at most concurrency workers.
// Results come back in input order. The returned error is non-nil only when
// the context is cancelled.
func Evaluate(ctx context.Context, expressions []string, concurrency int, eval EvalFunc) ([]Result, error) {
	if len(expressions) == 0 {
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]Result, len(expressions))
	sem := make(chan struct{}, concurrency)
	g, groupCtx := errgroup.WithContext(ctx)

	for i, expression := range expressions {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
			defer func() { <-sem }()

			// Do not start new work once the group is cancelled, even if a
			// slot freed up first.
			if err := groupCtx.Err(); err != nil {
				return err
			}

			value, err := eval(groupCtx, expression)
			results[i] = Result{Expression: expression, Value: value, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
