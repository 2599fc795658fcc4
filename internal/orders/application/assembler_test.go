package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicstore/orders-api/internal/orders/domain"
)

func TestAssembleFlattensSnapshots(t *testing.T) {
	order := &domain.Order{
		OrderID: "o-1",
		Album: domain.AlbumSnapshot{
			ArtistID:   "a-1",
			ArtistName: "The Beatles",
			AlbumID:    "b-1",
			AlbumTitle: "Abbey Road",
			Condition:  domain.ConditionUsed,
		},
		Customer: domain.CustomerSnapshot{
			CustomerID: "c-1",
			FirstName:  "Alick",
			LastName:   "Ucceli",
		},
		Store: domain.StoreSnapshot{
			StoreID:     "s-1",
			OwnerName:   "John Doe",
			ManagerName: "Jane Smith",
		},
		OrderDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		OrderStatus:   domain.StatusShipped,
		OrderPrice:    29.99,
		PaymentMethod: domain.PaymentCreditCard,
	}

	rep := Assemble(order)

	assert.Equal(t, "o-1", rep.OrderID)
	assert.Equal(t, "The Beatles", rep.ArtistName)
	assert.Equal(t, "Abbey Road", rep.AlbumTitle)
	assert.Equal(t, domain.ConditionUsed, rep.Condition)
	assert.Equal(t, "Alick", rep.CustomerFirstName)
	assert.Equal(t, "Jane Smith", rep.ManagerName)
	assert.Equal(t, domain.StatusShipped, rep.OrderStatus)
	assert.Equal(t, domain.PaymentCreditCard, rep.PaymentMethod)

	require.Len(t, rep.Links, 3)
	assert.Equal(t, "self", rep.Links[0].Rel)
	assert.Equal(t, "/api/v1/customers/c-1/orders/o-1", rep.Links[0].Href)
	assert.Equal(t, "allOrdersInCustomer", rep.Links[1].Rel)
	assert.Equal(t, "/api/v1/customers/c-1/orders", rep.Links[1].Href)
	assert.Equal(t, "customer", rep.Links[2].Rel)
	assert.Equal(t, "/api/v1/customers/c-1", rep.Links[2].Href)
}

func TestAssembleHasNoSideEffects(t *testing.T) {
	order := &domain.Order{
		OrderID:     "o-1",
		Customer:    domain.CustomerSnapshot{CustomerID: "c-1"},
		OrderPrice:  10,
		OrderStatus: domain.StatusPlaced,
	}
	before := *order
	_ = Assemble(order)
	assert.Equal(t, before, *order)
}
