package calcapi

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Evaluate submits an expression to the service and returns its value.
func (c *Client) Evaluate(ctx context.Context, expression string) (decimal.Decimal, error) {
	if expression == "" {
		return decimal.Decimal{}, fmt.Errorf("expression cannot be empty")
	}

	var resp EvalResponse
	req := EvalRequest{Expression: expression}
	if err := c.do(ctx, httpMethodPost, "v1/eval", req, &resp); err != nil {
		return decimal.Decimal{}, err
	}

	result, err := decimal.NewFromString(resp.Result)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse result %q: %w", resp.Result, err)
	}
	return result, nil
}

// ListConstants returns the constants the service supports.
func (c *Client) ListConstants(ctx context.Context) ([]ConstantInfo, error) {
	var resp ConstantsResponse
	if err := c.do(ctx, httpMethodGet, "v1/constants", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Constants, nil
}

// Health probes the service liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, httpMethodGet, "health", nil, nil); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}
