package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// Routes is a map of defined api endpoints.
type Routes map[string][]Route

// ApiHandleFunctions groups the per-context API handlers wired into the router.
type ApiHandleFunctions struct {
	OrdersAPI OrdersAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the api routes to the passed gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, routes := range getRoutes(handleFunctions) {
		for _, route := range routes {
			if route.HandlerFunc == nil {
				route.HandlerFunc = DefaultHandleFunc
			}
			switch route.Method {
			case http.MethodGet:
				router.GET(route.Pattern, route.HandlerFunc)
			case http.MethodPost:
				router.POST(route.Pattern, route.HandlerFunc)
			case http.MethodPut:
				router.PUT(route.Pattern, route.HandlerFunc)
			case http.MethodPatch:
				router.PATCH(route.Pattern, route.HandlerFunc)
			case http.MethodDelete:
				router.DELETE(route.Pattern, route.HandlerFunc)
			}
		}
	}
	return router
}

// DefaultHandleFunc returns a 501 for unimplemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		"OrdersAPI": {
			{
				Name:        "ListCustomerOrders",
				Method:      http.MethodGet,
				Pattern:     "/api/v1/customers/:customerId/orders",
				HandlerFunc: handleFunctions.OrdersAPI.ListCustomerOrders,
			},
			{
				Name:        "PlaceOrder",
				Method:      http.MethodPost,
				Pattern:     "/api/v1/customers/:customerId/orders",
				HandlerFunc: handleFunctions.OrdersAPI.PlaceOrder,
			},
			{
				Name:        "GetOrderById",
				Method:      http.MethodGet,
				Pattern:     "/api/v1/customers/:customerId/orders/:orderId",
				HandlerFunc: handleFunctions.OrdersAPI.GetOrderById,
			},
			{
				Name:        "UpdateOrder",
				Method:      http.MethodPut,
				Pattern:     "/api/v1/customers/:customerId/orders/:orderId",
				HandlerFunc: handleFunctions.OrdersAPI.UpdateOrder,
			},
			{
				Name:        "DeleteOrder",
				Method:      http.MethodDelete,
				Pattern:     "/api/v1/customers/:customerId/orders/:orderId",
				HandlerFunc: handleFunctions.OrdersAPI.DeleteOrder,
			},
		},
	}
}
