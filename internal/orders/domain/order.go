package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Condition is the catalog's availability classification for an album.
type Condition string

const (
	ConditionNew         Condition = "NEW"
	ConditionUsed        Condition = "USED"
	ConditionBargain     Condition = "BARGAIN"
	ConditionUnavailable Condition = "UNAVAILABLE"
)

// ParseCondition normalizes a raw condition token. Unknown or empty values
// fall back to NEW so that upstream schema drift never fails a decode.
func ParseCondition(raw string) Condition {
	switch Condition(strings.ToUpper(strings.TrimSpace(raw))) {
	case ConditionUsed:
		return ConditionUsed
	case ConditionBargain:
		return ConditionBargain
	case ConditionUnavailable:
		return ConditionUnavailable
	default:
		return ConditionNew
	}
}

// OrderStatus tracks the fulfilment state of an order.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// PaymentMethod enumerates the accepted payment instruments.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentCash       PaymentMethod = "CASH"
	PaymentPayPal     PaymentMethod = "PAYPAL"
)

var (
	ErrInvalidPrice         = errors.New("order price must be greater than 0")
	ErrUnknownOrderStatus   = errors.New("unknown order status")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// ParseOrderStatus validates a status token. An empty token defaults to PLACED.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case "":
		return StatusPlaced, nil
	case StatusPlaced:
		return StatusPlaced, nil
	case StatusShipped:
		return StatusShipped, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", ErrUnknownOrderStatus
	}
}

// ParsePaymentMethod validates a payment method token.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(raw))) {
	case PaymentCreditCard:
		return PaymentCreditCard, nil
	case PaymentDebitCard:
		return PaymentDebitCard, nil
	case PaymentCash:
		return PaymentCash, nil
	case PaymentPayPal:
		return PaymentPayPal, nil
	default:
		return "", ErrUnknownPaymentMethod
	}
}

// AlbumSnapshot is a denormalized copy of the catalog's view of an album.
// It may lag behind the catalog; reads refresh it.
type AlbumSnapshot struct {
	ArtistID   string
	ArtistName string
	AlbumID    string
	AlbumTitle string
	Condition  Condition
}

// CustomerSnapshot is the minimal projection of a customer-directory record.
type CustomerSnapshot struct {
	CustomerID string
	FirstName  string
	LastName   string
}

// StoreSnapshot is the minimal projection of a store-directory record.
type StoreSnapshot struct {
	StoreID     string
	OwnerName   string
	ManagerName string
}

// Order is the aggregate root. The embedded snapshots are copies, not
// references; there is no referential integrity with the upstream services.
type Order struct {
	// ID is the storage-internal surrogate key, distinct from OrderID.
	ID            int64
	OrderID       string
	Album         AlbumSnapshot
	Customer      CustomerSnapshot
	Store         StoreSnapshot
	OrderDate     time.Time
	OrderStatus   OrderStatus
	OrderPrice    float64
	PaymentMethod PaymentMethod
}

// NewOrder assembles an order from the three upstream snapshots and the
// request scalars, minting a fresh order identifier. The price-positivity
// invariant is enforced here, before anything can be persisted.
func NewOrder(customer CustomerSnapshot, album AlbumSnapshot, store StoreSnapshot, orderDate time.Time, status OrderStatus, price float64, payment PaymentMethod) (*Order, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	return &Order{
		OrderID:       uuid.NewString(),
		Album:         album,
		Customer:      customer,
		Store:         store,
		OrderDate:     orderDate,
		OrderStatus:   status,
		OrderPrice:    price,
		PaymentMethod: payment,
	}, nil
}

// Replace rebuilds the order's mutable state while preserving both the
// order identifier and the storage key. Update semantics are replace-in-place.
func (o *Order) Replace(customer CustomerSnapshot, album AlbumSnapshot, store StoreSnapshot, orderDate time.Time, status OrderStatus, price float64, payment PaymentMethod) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	o.Album = album
	o.Customer = customer
	o.Store = store
	o.OrderDate = orderDate
	o.OrderStatus = status
	o.OrderPrice = price
	o.PaymentMethod = payment
	return nil
}

// RefreshSnapshots overwrites the embedded snapshots with freshly fetched
// copies. Used on the read path; the repository is not re-written.
func (o *Order) RefreshSnapshots(customer CustomerSnapshot, album AlbumSnapshot, store StoreSnapshot) {
	o.Customer = customer
	o.Album = album
	o.Store = store
}

// Validate re-checks the aggregate invariants before persistence.
func (o *Order) Validate() error {
	if o.OrderPrice <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
