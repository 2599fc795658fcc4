// Package types carries the application-layer inputs and the outward-facing
// order representation shared by transport, workflows, and tests.
package types

import (
	"time"

	"github.com/musicstore/orders-api/internal/orders/domain"
)

// OrderRequest is the validated payload for create and update flows.
type OrderRequest struct {
	ArtistID      string
	AlbumID       string
	StoreID       string
	OrderDate     time.Time
	OrderStatus   domain.OrderStatus
	OrderPrice    float64
	PaymentMethod domain.PaymentMethod
}

// CreateOrderInput binds a request to the owning customer.
type CreateOrderInput struct {
	CustomerID string
	Request    OrderRequest
}

// UpdateOrderInput addresses an existing order by its composite key.
type UpdateOrderInput struct {
	CustomerID string
	OrderID    string
	Request    OrderRequest
}

// OrderKey identifies one order for reads and deletes.
type OrderKey struct {
	CustomerID string
	OrderID    string
}

// Link is a navigation entry attached to a representation.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// OrderRepresentation flattens the order aggregate and its embedded
// snapshots into the shape consumed by the outer transport layer.
type OrderRepresentation struct {
	OrderID           string               `json:"orderId"`
	ArtistID          string               `json:"artistId"`
	ArtistName        string               `json:"artistName"`
	AlbumID           string               `json:"albumId"`
	AlbumTitle        string               `json:"albumTitle"`
	Condition         domain.Condition     `json:"conditionType"`
	CustomerID        string               `json:"customerId"`
	CustomerFirstName string               `json:"customerFirstName"`
	CustomerLastName  string               `json:"customerLastName"`
	StoreID           string               `json:"storeId"`
	OwnerName         string               `json:"ownerName"`
	ManagerName       string               `json:"managerName"`
	OrderDate         time.Time            `json:"orderDate"`
	OrderStatus       domain.OrderStatus   `json:"orderStatus"`
	OrderPrice        float64              `json:"orderPrice"`
	PaymentMethod     domain.PaymentMethod `json:"paymentMethod"`
	Links             []Link               `json:"_links,omitempty"`
}
