package ports

import (
	"context"

	"github.com/musicstore/orders-api/internal/orders/application/types"
)

// Service exposes the order use cases consumed by the transport layer.
type Service interface {
	GetOrder(ctx context.Context, key types.OrderKey) (*types.OrderRepresentation, error)
	ListOrders(ctx context.Context, customerID string) ([]*types.OrderRepresentation, error)
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderRepresentation, error)
	UpdateOrder(ctx context.Context, input types.UpdateOrderInput) (*types.OrderRepresentation, error)
	DeleteOrder(ctx context.Context, key types.OrderKey) error
}
