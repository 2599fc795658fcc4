// Package mapper converts between the HTTP wire shapes and the application
// layer's inputs and representations.
package mapper

import (
	"fmt"
	"time"

	orderstypes "github.com/musicstore/orders-api/internal/orders/application/types"
	"github.com/musicstore/orders-api/internal/orders/domain"
)

// DateLayout is the wire format for order dates.
const DateLayout = "2006-01-02"

// OrderPayload captures inbound create and update requests.
type OrderPayload struct {
	ArtistID      string  `json:"artistId"`
	AlbumID       string  `json:"albumId"`
	StoreID       string  `json:"storeId"`
	OrderDate     string  `json:"orderDate"`
	OrderStatus   string  `json:"orderStatus,omitempty"`
	OrderPrice    float64 `json:"orderPrice"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Link is the HTTP representation of a navigation link.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Order is the HTTP representation of a fully assembled order view.
type Order struct {
	OrderID           string  `json:"orderId"`
	ArtistID          string  `json:"artistId"`
	ArtistName        string  `json:"artistName"`
	AlbumID           string  `json:"albumId"`
	AlbumTitle        string  `json:"albumTitle"`
	Condition         string  `json:"conditionType"`
	CustomerID        string  `json:"customerId"`
	CustomerFirstName string  `json:"customerFirstName"`
	CustomerLastName  string  `json:"customerLastName"`
	StoreID           string  `json:"storeId"`
	OwnerName         string  `json:"ownerName"`
	ManagerName       string  `json:"managerName"`
	OrderDate         string  `json:"orderDate"`
	OrderStatus       string  `json:"orderStatus"`
	OrderPrice        float64 `json:"orderPrice"`
	PaymentMethod     string  `json:"paymentMethod"`
	Links             []Link  `json:"_links,omitempty"`
}

// ToOrderRequest validates the payload scalars and produces the application
// request. Reference checks against the upstream services happen later, in
// the application layer.
func ToOrderRequest(payload OrderPayload) (orderstypes.OrderRequest, error) {
	orderDate, err := parseOrderDate(payload.OrderDate)
	if err != nil {
		return orderstypes.OrderRequest{}, err
	}
	status, err := domain.ParseOrderStatus(payload.OrderStatus)
	if err != nil {
		return orderstypes.OrderRequest{}, fmt.Errorf("unknown orderStatus provided: %s", payload.OrderStatus)
	}
	payment, err := domain.ParsePaymentMethod(payload.PaymentMethod)
	if err != nil {
		return orderstypes.OrderRequest{}, fmt.Errorf("unknown paymentMethod provided: %s", payload.PaymentMethod)
	}
	return orderstypes.OrderRequest{
		ArtistID:      payload.ArtistID,
		AlbumID:       payload.AlbumID,
		StoreID:       payload.StoreID,
		OrderDate:     orderDate,
		OrderStatus:   status,
		OrderPrice:    payload.OrderPrice,
		PaymentMethod: payment,
	}, nil
}

// FromRepresentation maps an application representation into the wire shape.
func FromRepresentation(rep *orderstypes.OrderRepresentation) Order {
	links := make([]Link, 0, len(rep.Links))
	for _, link := range rep.Links {
		links = append(links, Link{Rel: link.Rel, Href: link.Href})
	}
	return Order{
		OrderID:           rep.OrderID,
		ArtistID:          rep.ArtistID,
		ArtistName:        rep.ArtistName,
		AlbumID:           rep.AlbumID,
		AlbumTitle:        rep.AlbumTitle,
		Condition:         string(rep.Condition),
		CustomerID:        rep.CustomerID,
		CustomerFirstName: rep.CustomerFirstName,
		CustomerLastName:  rep.CustomerLastName,
		StoreID:           rep.StoreID,
		OwnerName:         rep.OwnerName,
		ManagerName:       rep.ManagerName,
		OrderDate:         rep.OrderDate.Format(DateLayout),
		OrderStatus:       string(rep.OrderStatus),
		OrderPrice:        rep.OrderPrice,
		PaymentMethod:     string(rep.PaymentMethod),
		Links:             links,
	}
}

// FromRepresentationList maps a slice of representations into wire shapes.
func FromRepresentationList(list []*orderstypes.OrderRepresentation) []Order {
	result := make([]Order, 0, len(list))
	for _, rep := range list {
		result = append(result, FromRepresentation(rep))
	}
	return result
}

func parseOrderDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("orderDate is required")
	}
	orderDate, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("orderDate must be formatted as %s: %s", DateLayout, raw)
	}
	return orderDate, nil
}
