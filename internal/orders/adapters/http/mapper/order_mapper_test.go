package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderstypes "github.com/musicstore/orders-api/internal/orders/application/types"
	"github.com/musicstore/orders-api/internal/orders/domain"
)

func TestToOrderRequest(t *testing.T) {
	request, err := ToOrderRequest(OrderPayload{
		ArtistID:      "a-1",
		AlbumID:       "b-1",
		StoreID:       "s-1",
		OrderDate:     "2026-03-14",
		OrderStatus:   "shipped",
		OrderPrice:    29.99,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), request.OrderDate)
	assert.Equal(t, domain.StatusShipped, request.OrderStatus)
	assert.Equal(t, domain.PaymentCreditCard, request.PaymentMethod)
	assert.Equal(t, 29.99, request.OrderPrice)
}

func TestToOrderRequestDefaultsStatusToPlaced(t *testing.T) {
	request, err := ToOrderRequest(OrderPayload{
		OrderDate:     "2026-03-14",
		OrderPrice:    10,
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, request.OrderStatus)
}

func TestToOrderRequestRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		payload OrderPayload
		wantErr string
	}{
		{
			name:    "missing date",
			payload: OrderPayload{PaymentMethod: "CASH"},
			wantErr: "orderDate is required",
		},
		{
			name:    "malformed date",
			payload: OrderPayload{OrderDate: "14-03-2026", PaymentMethod: "CASH"},
			wantErr: "orderDate must be formatted",
		},
		{
			name:    "unknown status",
			payload: OrderPayload{OrderDate: "2026-03-14", OrderStatus: "PENDING", PaymentMethod: "CASH"},
			wantErr: "unknown orderStatus provided: PENDING",
		},
		{
			name:    "unknown payment method",
			payload: OrderPayload{OrderDate: "2026-03-14", PaymentMethod: "BITCOIN"},
			wantErr: "unknown paymentMethod provided: BITCOIN",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToOrderRequest(tt.payload)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFromRepresentationFormatsDate(t *testing.T) {
	rep := &orderstypes.OrderRepresentation{
		OrderID:       "o-1",
		CustomerID:    "c-1",
		Condition:     domain.ConditionBargain,
		OrderDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		OrderStatus:   domain.StatusPlaced,
		OrderPrice:    9.99,
		PaymentMethod: domain.PaymentPayPal,
		Links: []orderstypes.Link{
			{Rel: "self", Href: "/api/v1/customers/c-1/orders/o-1"},
		},
	}

	order := FromRepresentation(rep)
	assert.Equal(t, "2026-03-14", order.OrderDate)
	assert.Equal(t, "BARGAIN", order.Condition)
	assert.Equal(t, "PAYPAL", order.PaymentMethod)
	require.Len(t, order.Links, 1)
	assert.Equal(t, "self", order.Links[0].Rel)
}

func TestFromRepresentationList(t *testing.T) {
	list := FromRepresentationList([]*orderstypes.OrderRepresentation{
		{OrderID: "o-1"},
		{OrderID: "o-2"},
	})
	require.Len(t, list, 2)
	assert.Equal(t, "o-1", list[0].OrderID)
	assert.Equal(t, "o-2", list[1].OrderID)
}
