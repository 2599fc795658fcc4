package ports

import (
	"context"
	"errors"

	"github.com/musicstore/orders-api/internal/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists the order aggregate. Lookups are by the composite
// (customerId, orderId) key or by customer alone; it owns no business logic.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByCustomerAndOrderID(ctx context.Context, customerID, orderID string) (*domain.Order, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]*domain.Order, error)
	Delete(ctx context.Context, customerID, orderID string) error
}
