// Package policy evaluates booking admission rules written in Rego.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	decision rego.PreparedEvalQuery
	reason   rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
// The module must define data.booking_policy.decision and may define
// data.booking_policy.reason.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	decision, err := rego.New(
		rego.Query("data.booking_policy.decision"),
		rego.Module("booking_policy.rego", policyContent),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	reason, err := rego.New(
		rego.Query("data.booking_policy.reason"),
		rego.Module("booking_policy.rego", policyContent),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{decision: decision, reason: reason}, nil
}

// Evaluate checks a booking against the policy.
// Input should be a map with keys customer_id, designer_id, service_type, booking_date.
// Returns: decision (allow, block), reason (optional), error
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, string, error) {
	results, err := e.decision.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "allow", "default", nil
	}

	decision, ok := results[0].Expressions[0].Value.(string)
	if !ok {
		return "allow", "unexpected return type", nil
	}

	var reason string
	rs, err := e.reason.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy reason: %w", err)
	}
	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		reason, _ = rs[0].Expressions[0].Value.(string)
	}
	return decision, reason, nil
}

// DefaultBookingPolicy is the default booking admission policy.
const DefaultBookingPolicy = `
package booking_policy

default decision = "allow"

# Customers cannot book themselves.
decision = "block" {
	input.customer_id == input.designer_id
}

reason = "customer and designer must be different users" {
	input.customer_id == input.designer_id
}
`
