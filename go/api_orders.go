package ordersserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/musicstore/orders-api/internal/orders/adapters/http/mapper"
	orderstypes "github.com/musicstore/orders-api/internal/orders/application/types"
	ordersports "github.com/musicstore/orders-api/internal/orders/ports"
)

// uuidLength is the canonical textual length of the upstream identifiers.
const uuidLength = 36

// OrdersAPI wires HTTP transport with the orders bounded context service and workflows.
type OrdersAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Get /api/v1/customers/:customerId/orders
// List all orders owned by a customer
func (api *OrdersAPI) ListCustomerOrders(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}
	result, err := api.service.ListOrders(c.Request.Context(), customerID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromRepresentationList(result))
}

// Get /api/v1/customers/:customerId/orders/:orderId
// Find one order by its identifier
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	key, ok := orderKeyParams(c)
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), key)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromRepresentation(order))
}

// Post /api/v1/customers/:customerId/orders
// Place a new order for a customer
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	request, err := orderhttpmapper.ToOrderRequest(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := orderstypes.CreateOrderInput{CustomerID: customerID, Request: request}
	placed, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromRepresentation(placed))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.OrderRepresentation, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Put /api/v1/customers/:customerId/orders/:orderId
// Replace an existing order
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	key, ok := orderKeyParams(c)
	if !ok {
		return
	}
	var payload orderhttpmapper.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	request, err := orderhttpmapper.ToOrderRequest(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := orderstypes.UpdateOrderInput{CustomerID: key.CustomerID, OrderID: key.OrderID, Request: request}
	updated, err := api.service.UpdateOrder(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromRepresentation(updated))
}

// Delete /api/v1/customers/:customerId/orders/:orderId
// Remove an order
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	key, ok := orderKeyParams(c)
	if !ok {
		return
	}
	if err := api.service.DeleteOrder(c.Request.Context(), key); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func customerIDParam(c *gin.Context) (string, bool) {
	customerID := c.Param("customerId")
	if len(customerID) != uuidLength {
		respondUnprocessable(c, fmt.Sprintf("Invalid customerId provided: %s", customerID))
		return "", false
	}
	return customerID, true
}

func orderKeyParams(c *gin.Context) (orderstypes.OrderKey, bool) {
	customerID, ok := customerIDParam(c)
	if !ok {
		return orderstypes.OrderKey{}, false
	}
	orderID := c.Param("orderId")
	if len(orderID) != uuidLength {
		respondUnprocessable(c, fmt.Sprintf("Invalid orderId provided: %s", orderID))
		return orderstypes.OrderKey{}, false
	}
	return orderstypes.OrderKey{CustomerID: customerID, OrderID: orderID}, true
}
