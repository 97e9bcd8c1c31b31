package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingInput(customer, designer string, when time.Time) map[string]interface{} {
	return map[string]interface{}{
		"customer_id":  customer,
		"designer_id":  designer,
		"service_type": "fitting",
		"booking_date": when.Format(time.RFC3339),
	}
}

func TestDefaultBookingPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultBookingPolicy)
	require.NoError(t, err)

	decision, reason, err := engine.Evaluate(ctx, bookingInput("c1", "d1", time.Now().Add(48*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "allow", decision)
	assert.Empty(t, reason)

	decision, reason, err = engine.Evaluate(ctx, bookingInput("u1", "u1", time.Now().Add(48*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "block", decision)
	assert.Contains(t, reason, "different users")
}

func TestCustomPolicyWithoutReason(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, `
package booking_policy

default decision = "allow"

decision = "block" {
	input.service_type == "fitting"
}
`)
	require.NoError(t, err)

	decision, reason, err := engine.Evaluate(ctx, bookingInput("c1", "d1", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "block", decision)
	assert.Empty(t, reason)
}

func TestNewEngineRejectsInvalidPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package booking_policy\n decision = {")
	assert.Error(t, err)
}
