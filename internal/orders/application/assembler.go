package application

import (
	"fmt"

	"github.com/musicstore/orders-api/internal/orders/application/types"
	"github.com/musicstore/orders-api/internal/orders/domain"
)

// Assemble flattens the order aggregate and its embedded snapshots into the
// outward-facing representation, attaching navigation links. Pure function;
// no upstream calls, no side effects.
func Assemble(order *domain.Order) *types.OrderRepresentation {
	ordersHref := fmt.Sprintf("/api/v1/customers/%s/orders", order.Customer.CustomerID)
	return &types.OrderRepresentation{
		OrderID:           order.OrderID,
		ArtistID:          order.Album.ArtistID,
		ArtistName:        order.Album.ArtistName,
		AlbumID:           order.Album.AlbumID,
		AlbumTitle:        order.Album.AlbumTitle,
		Condition:         order.Album.Condition,
		CustomerID:        order.Customer.CustomerID,
		CustomerFirstName: order.Customer.FirstName,
		CustomerLastName:  order.Customer.LastName,
		StoreID:           order.Store.StoreID,
		OwnerName:         order.Store.OwnerName,
		ManagerName:       order.Store.ManagerName,
		OrderDate:         order.OrderDate,
		OrderStatus:       order.OrderStatus,
		OrderPrice:        order.OrderPrice,
		PaymentMethod:     order.PaymentMethod,
		Links: []types.Link{
			{Rel: "self", Href: fmt.Sprintf("%s/%s", ordersHref, order.OrderID)},
			{Rel: "allOrdersInCustomer", Href: ordersHref},
			{Rel: "customer", Href: fmt.Sprintf("/api/v1/customers/%s", order.Customer.CustomerID)},
		},
	}
}
