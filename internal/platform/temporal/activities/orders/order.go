package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/musicstore/orders-api/internal/orders/application"
	orderstypes "github.com/musicstore/orders-api/internal/orders/application/types"
	ordersports "github.com/musicstore/orders-api/internal/orders/ports"
)

const (
	// PlaceOrderActivityName validates upstream references and persists an order.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// InvalidOrderErrorType marks rejections that must not be retried.
	InvalidOrderErrorType = "InvalidOrder"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders application service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the full placement use case: upstream validation, the
// bargain condition rule, and persistence of the denormalized aggregate.
func (a *Activities) PlaceOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.OrderRepresentation, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "customerId", input.CustomerID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", input.CustomerID, "albumId", input.Request.AlbumID)
	representation, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		if errors.Is(err, application.ErrInvalidInput) || errors.Is(err, application.ErrInvalidOrderPrice) {
			logger.Warn("PlaceOrder activity rejected", "customerId", input.CustomerID, "error", err)
			return nil, temporal.NewApplicationError(err.Error(), InvalidOrderErrorType)
		}
		logger.Error("PlaceOrder activity failed", "customerId", input.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", representation.OrderID)
	return representation, nil
}
