package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/musicstore/orders-api/internal/orders/domain"
	"github.com/musicstore/orders-api/internal/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter used in tests and
// when no POSTGRES_DSN is configured.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func key(customerID, orderID string) string {
	return customerID + "/" + orderID
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.orders[key(clone.Customer.CustomerID, clone.OrderID)] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByCustomerAndOrderID(_ context.Context, customerID, orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[key(customerID, orderID)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *Repository) ListByCustomerID(_ context.Context, customerID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Order
	for _, order := range r.orders {
		if order.Customer.CustomerID == customerID {
			clone := *order
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) Delete(_ context.Context, customerID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(customerID, orderID)
	if _, ok := r.orders[k]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, k)
	return nil
}

// Seed loads a sample order for DSN-less development.
func (r *Repository) Seed() {
	sample := &domain.Order{
		OrderID: "f8cf87c1-45bd-4dbb-a7b2-5f9c9e0f5a11",
		Album: domain.AlbumSnapshot{
			ArtistID:   "e5913a79-9b1e-4516-9ffd-06578e7af261",
			ArtistName: "The Beatles",
			AlbumID:    "84c5f33e-8e5d-4eb5-b35d-79272355fa72",
			AlbumTitle: "Abbey Road",
			Condition:  domain.ConditionNew,
		},
		Customer: domain.CustomerSnapshot{
			CustomerID: "c3540a89-cb47-4c96-888e-ff96708db4d8",
			FirstName:  "Alick",
			LastName:   "Ucceli",
		},
		Store: domain.StoreSnapshot{
			StoreID:     "b2d3a4e7-f29b-4f5e-bf1c-8a77a7319a1e",
			OwnerName:   "John Doe",
			ManagerName: "Jane Smith",
		},
		OrderDate:     time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		OrderStatus:   domain.StatusShipped,
		OrderPrice:    29.99,
		PaymentMethod: domain.PaymentCreditCard,
	}
	_, _ = r.Save(context.Background(), sample)
}
