package ports

import (
	"context"

	"github.com/musicstore/orders-api/internal/orders/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations for order placement.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderRepresentation, error)
}
