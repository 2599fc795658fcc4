package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musicstore/orders-api/internal/clients/http/remote"
	"github.com/musicstore/orders-api/internal/orders/adapters/memory"
	"github.com/musicstore/orders-api/internal/orders/application/types"
	"github.com/musicstore/orders-api/internal/orders/domain"
)

const (
	testCustomerID = "c3540a89-cb47-4c96-888e-ff96708db4d8"
	testArtistID   = "2f2b1a17-7b16-44a9-9db4-3f0e1a548808"
	testAlbumID    = "6bf88a3e-95d1-4d21-9222-a4a3a4e67d0b"
	testStoreID    = "b2d3a4e7-6e2c-4e27-9f24-6a3f1a5b0c6d"
)

type stubCustomers struct {
	snapshot domain.CustomerSnapshot
	err      error
	calls    int
}

func (c *stubCustomers) GetCustomer(_ context.Context, customerID string) (domain.CustomerSnapshot, error) {
	c.calls++
	if c.err != nil {
		return domain.CustomerSnapshot{}, c.err
	}
	snapshot := c.snapshot
	snapshot.CustomerID = customerID
	return snapshot, nil
}

// stubCatalog keeps one mutable album so a patched condition is visible to
// the re-fetch that follows it.
type stubCatalog struct {
	current    domain.AlbumSnapshot
	artistName string
	albumErr   error
	artistErr  error
	patchErr   error

	getAlbumCalls  int
	getArtistCalls int
	patchCalls     []domain.Condition
}

func (c *stubCatalog) GetAlbum(context.Context, string, string) (domain.AlbumSnapshot, error) {
	c.getAlbumCalls++
	if c.albumErr != nil {
		return domain.AlbumSnapshot{}, c.albumErr
	}
	return c.current, nil
}

func (c *stubCatalog) GetArtist(_ context.Context, artistID string) (domain.AlbumSnapshot, error) {
	c.getArtistCalls++
	if c.artistErr != nil {
		return domain.AlbumSnapshot{}, c.artistErr
	}
	return domain.AlbumSnapshot{ArtistID: artistID, ArtistName: c.artistName}, nil
}

func (c *stubCatalog) PatchCondition(_ context.Context, _, _ string, condition domain.Condition) (domain.AlbumSnapshot, error) {
	c.patchCalls = append(c.patchCalls, condition)
	if c.patchErr != nil {
		return domain.AlbumSnapshot{}, c.patchErr
	}
	c.current.Condition = condition
	return c.current, nil
}

type stubStores struct {
	snapshot domain.StoreSnapshot
	err      error
	calls    int
}

func (s *stubStores) GetStore(_ context.Context, storeID string) (domain.StoreSnapshot, error) {
	s.calls++
	if s.err != nil {
		return domain.StoreSnapshot{}, s.err
	}
	snapshot := s.snapshot
	snapshot.StoreID = storeID
	return snapshot, nil
}

// recordingRepo counts writes so tests can assert that failed validations
// never touch storage.
type recordingRepo struct {
	*memory.Repository
	saveCalls   int
	deleteCalls int
}

func (r *recordingRepo) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	r.saveCalls++
	return r.Repository.Save(ctx, order)
}

func (r *recordingRepo) Delete(ctx context.Context, customerID, orderID string) error {
	r.deleteCalls++
	return r.Repository.Delete(ctx, customerID, orderID)
}

type fixture struct {
	service   *Service
	repo      *recordingRepo
	customers *stubCustomers
	catalog   *stubCatalog
	stores    *stubStores
}

func newFixture() *fixture {
	repo := &recordingRepo{Repository: memory.NewRepository()}
	customers := &stubCustomers{snapshot: domain.CustomerSnapshot{FirstName: "Alick", LastName: "Ucceli"}}
	catalog := &stubCatalog{
		current: domain.AlbumSnapshot{
			ArtistID:   testArtistID,
			ArtistName: "The Beatles",
			AlbumID:    testAlbumID,
			AlbumTitle: "Abbey Road",
			Condition:  domain.ConditionNew,
		},
		artistName: "The Beatles",
	}
	stores := &stubStores{snapshot: domain.StoreSnapshot{OwnerName: "John Doe", ManagerName: "Jane Smith"}}
	return &fixture{
		service:   NewService(repo, customers, catalog, stores),
		repo:      repo,
		customers: customers,
		catalog:   catalog,
		stores:    stores,
	}
}

func newOrderRequest(price float64) types.OrderRequest {
	return types.OrderRequest{
		ArtistID:      testArtistID,
		AlbumID:       testAlbumID,
		StoreID:       testStoreID,
		OrderDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		OrderStatus:   domain.StatusPlaced,
		OrderPrice:    price,
		PaymentMethod: domain.PaymentCreditCard,
	}
}

func TestCreateOrderPersistsDenormalizedSnapshots(t *testing.T) {
	fix := newFixture()

	rep, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Len(t, rep.OrderID, 36)
	assert.Equal(t, testCustomerID, rep.CustomerID)
	assert.Equal(t, "Alick", rep.CustomerFirstName)
	assert.Equal(t, "Ucceli", rep.CustomerLastName)
	assert.Equal(t, "The Beatles", rep.ArtistName)
	assert.Equal(t, "Abbey Road", rep.AlbumTitle)
	assert.Equal(t, domain.ConditionNew, rep.Condition)
	assert.Equal(t, "John Doe", rep.OwnerName)
	assert.Equal(t, "Jane Smith", rep.ManagerName)
	assert.Equal(t, 29.99, rep.OrderPrice)

	require.Len(t, rep.Links, 3)
	assert.Equal(t, "self", rep.Links[0].Rel)
	assert.Equal(t, "/api/v1/customers/"+testCustomerID+"/orders/"+rep.OrderID, rep.Links[0].Href)
	assert.Equal(t, "allOrdersInCustomer", rep.Links[1].Rel)
	assert.Equal(t, "/api/v1/customers/"+testCustomerID+"/orders", rep.Links[1].Href)
	assert.Equal(t, "customer", rep.Links[2].Rel)
	assert.Equal(t, "/api/v1/customers/"+testCustomerID, rep.Links[2].Href)

	stored, err := fix.repo.GetByCustomerAndOrderID(context.Background(), testCustomerID, rep.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "The Beatles", stored.Album.ArtistName)
	assert.Empty(t, fix.catalog.patchCalls, "price above threshold must not patch the catalog")
}

func TestCreateOrderRejectsNonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -5} {
		fix := newFixture()

		_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
			CustomerID: testCustomerID,
			Request:    newOrderRequest(price),
		})
		require.ErrorIs(t, err, ErrInvalidOrderPrice)
		assert.ErrorContains(t, err, "Order price must be greater than 0")
		assert.Zero(t, fix.repo.saveCalls)
		assert.Empty(t, fix.catalog.patchCalls, "rejected orders must not patch the catalog")
	}
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	fix := newFixture()
	fix.customers.err = remote.ErrNotFound

	_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "Unknown customerId provided: "+testCustomerID)
	assert.Zero(t, fix.catalog.getAlbumCalls, "customer check precedes the album fetch")
	assert.Zero(t, fix.stores.calls)
	assert.Zero(t, fix.repo.saveCalls)
}

func TestCreateOrderUnknownAlbum(t *testing.T) {
	fix := newFixture()
	fix.catalog.albumErr = remote.ErrNotFound

	_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "No album with id: "+testAlbumID+" for artistId: "+testArtistID)
	assert.Zero(t, fix.stores.calls, "album check precedes the store fetch")
	assert.Zero(t, fix.repo.saveCalls)
}

func TestCreateOrderUnavailableAlbum(t *testing.T) {
	fix := newFixture()
	fix.catalog.current.Condition = domain.ConditionUnavailable

	_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, `Album "Abbey Road" is unavailable and cannot be ordered`)
	assert.Zero(t, fix.stores.calls)
	assert.Zero(t, fix.repo.saveCalls)
	assert.Empty(t, fix.catalog.patchCalls)
}

func TestCreateOrderUnknownStore(t *testing.T) {
	fix := newFixture()
	fix.stores.err = remote.ErrNotFound

	_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "Unknown storeId provided: "+testStoreID)
	assert.Zero(t, fix.repo.saveCalls)
}

func TestCreateOrderTransportFailurePropagates(t *testing.T) {
	fix := newFixture()
	fatal := &remote.StatusError{Service: "customers-service", Status: 503}
	fix.customers.err = fatal

	_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput, "transport failures are not business rejections")
	var statusErr *remote.StatusError
	assert.ErrorAs(t, err, &statusErr)
}

func TestCreateOrderBelowThresholdPatchesCondition(t *testing.T) {
	fix := newFixture()

	rep, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(9.99),
	})
	require.NoError(t, err)

	require.Len(t, fix.catalog.patchCalls, 1, "exactly one patch per qualifying order")
	assert.Equal(t, domain.ConditionBargain, fix.catalog.patchCalls[0])
	assert.Equal(t, 2, fix.catalog.getAlbumCalls, "validation fetch plus post-patch re-fetch")
	assert.Equal(t, domain.ConditionBargain, rep.Condition, "persisted snapshot reflects the patched condition")

	stored, err := fix.repo.GetByCustomerAndOrderID(context.Background(), testCustomerID, rep.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionBargain, stored.Album.Condition)
}

func TestCreateOrderAtThresholdDoesNotPatch(t *testing.T) {
	fix := newFixture()

	rep, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(10.00),
	})
	require.NoError(t, err)
	assert.Empty(t, fix.catalog.patchCalls, "threshold is strict less-than")
	assert.Equal(t, 1, fix.catalog.getAlbumCalls)
	assert.Equal(t, domain.ConditionNew, rep.Condition)
}

func TestCreateOrderPatchFailureIsNotCompensated(t *testing.T) {
	fix := newFixture()
	fix.catalog.patchErr = &remote.StatusError{Service: "music-catalog-service", Status: 500}

	_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(5.00),
	})
	require.Error(t, err)
	assert.Len(t, fix.catalog.patchCalls, 1)
	assert.Zero(t, fix.repo.saveCalls, "no order is persisted when the patch fails")
}

func TestCreateOrderBackfillsArtistName(t *testing.T) {
	fix := newFixture()
	fix.catalog.current.ArtistName = ""

	rep, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fix.catalog.getArtistCalls, "exactly one artist fetch for the backfill")
	assert.Equal(t, "The Beatles", rep.ArtistName)
}

func TestCreateOrderSkipsBackfillWhenArtistNamePresent(t *testing.T) {
	fix := newFixture()

	_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)
	assert.Zero(t, fix.catalog.getArtistCalls)
}

func TestUpdateOrderPreservesIdentifier(t *testing.T) {
	fix := newFixture()
	created, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)

	request := newOrderRequest(15.50)
	request.OrderStatus = domain.StatusShipped
	updated, err := fix.service.UpdateOrder(context.Background(), types.UpdateOrderInput{
		CustomerID: testCustomerID,
		OrderID:    created.OrderID,
		Request:    request,
	})
	require.NoError(t, err)

	assert.Equal(t, created.OrderID, updated.OrderID, "update is replace-in-place")
	assert.Equal(t, domain.StatusShipped, updated.OrderStatus)
	assert.Equal(t, 15.50, updated.OrderPrice)

	all, err := fix.repo.ListByCustomerID(context.Background(), testCustomerID)
	require.NoError(t, err)
	assert.Len(t, all, 1, "update must not create a second row")
}

func TestUpdateOrderAppliesBargainRule(t *testing.T) {
	fix := newFixture()
	created, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)
	require.Empty(t, fix.catalog.patchCalls)

	updated, err := fix.service.UpdateOrder(context.Background(), types.UpdateOrderInput{
		CustomerID: testCustomerID,
		OrderID:    created.OrderID,
		Request:    newOrderRequest(7.49),
	})
	require.NoError(t, err)
	require.Len(t, fix.catalog.patchCalls, 1)
	assert.Equal(t, domain.ConditionBargain, updated.Condition)
}

func TestUpdateOrderUnknownOrder(t *testing.T) {
	fix := newFixture()
	const orderID = "a7f6ec5a-9d30-4d9e-baf6-0f6e1c9e3f41"

	_, err := fix.service.UpdateOrder(context.Background(), types.UpdateOrderInput{
		CustomerID: testCustomerID,
		OrderID:    orderID,
		Request:    newOrderRequest(29.99),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "Unknown orderId: "+orderID+" for customerId: "+testCustomerID)
	assert.Zero(t, fix.customers.calls, "existence check precedes upstream validation")
}

func TestGetOrderRefreshesSnapshotsWithoutRewriting(t *testing.T) {
	fix := newFixture()
	created, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)
	savesAfterCreate := fix.repo.saveCalls

	// Upstream state moves on after the order was persisted.
	fix.customers.snapshot.FirstName = "Alexandra"
	fix.catalog.current.AlbumTitle = "Abbey Road (Remastered)"
	fix.stores.snapshot.ManagerName = "Janet Smith"

	rep, err := fix.service.GetOrder(context.Background(), types.OrderKey{CustomerID: testCustomerID, OrderID: created.OrderID})
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", rep.CustomerFirstName)
	assert.Equal(t, "Abbey Road (Remastered)", rep.AlbumTitle)
	assert.Equal(t, "Janet Smith", rep.ManagerName)

	assert.Equal(t, savesAfterCreate, fix.repo.saveCalls, "reads must not write back refreshed snapshots")
	stored, err := fix.repo.GetByCustomerAndOrderID(context.Background(), testCustomerID, created.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Abbey Road", stored.Album.AlbumTitle, "the stored snapshot keeps its stale copy")
	assert.Empty(t, fix.catalog.patchCalls, "the bargain rule does not run on reads")
}

func TestGetOrderUnknownOrder(t *testing.T) {
	fix := newFixture()
	const orderID = "a7f6ec5a-9d30-4d9e-baf6-0f6e1c9e3f41"

	_, err := fix.service.GetOrder(context.Background(), types.OrderKey{CustomerID: testCustomerID, OrderID: orderID})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "Unknown orderId: "+orderID+" for customerId: "+testCustomerID)
}

func TestListOrdersSharesCustomerFetch(t *testing.T) {
	fix := newFixture()
	for _, price := range []float64{29.99, 15.00} {
		_, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
			CustomerID: testCustomerID,
			Request:    newOrderRequest(price),
		})
		require.NoError(t, err)
	}
	fix.customers.calls = 0

	result, err := fix.service.ListOrders(context.Background(), testCustomerID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, 1, fix.customers.calls, "one customer fetch shared across the batch")
}

func TestListOrdersEmptyForUnknownCustomer(t *testing.T) {
	fix := newFixture()

	result, err := fix.service.ListOrders(context.Background(), testCustomerID)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDeleteOrder(t *testing.T) {
	fix := newFixture()
	created, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)

	require.NoError(t, fix.service.DeleteOrder(context.Background(), types.OrderKey{CustomerID: testCustomerID, OrderID: created.OrderID}))

	_, err = fix.repo.GetByCustomerAndOrderID(context.Background(), testCustomerID, created.OrderID)
	require.Error(t, err)
}

func TestDeleteOrderUnknownOrder(t *testing.T) {
	fix := newFixture()
	const orderID = "a7f6ec5a-9d30-4d9e-baf6-0f6e1c9e3f41"

	err := fix.service.DeleteOrder(context.Background(), types.OrderKey{CustomerID: testCustomerID, OrderID: orderID})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorContains(t, err, "Unknown orderId: "+orderID+" for customerId: "+testCustomerID)
	assert.Zero(t, fix.repo.deleteCalls, "the existence check guards the repository delete")
}

func TestGetOrderIsIdempotent(t *testing.T) {
	fix := newFixture()
	created, err := fix.service.CreateOrder(context.Background(), types.CreateOrderInput{
		CustomerID: testCustomerID,
		Request:    newOrderRequest(29.99),
	})
	require.NoError(t, err)

	first, err := fix.service.GetOrder(context.Background(), types.OrderKey{CustomerID: testCustomerID, OrderID: created.OrderID})
	require.NoError(t, err)
	second, err := fix.service.GetOrder(context.Background(), types.OrderKey{CustomerID: testCustomerID, OrderID: created.OrderID})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMapDomainErrorPassesThroughUnknownErrors(t *testing.T) {
	sentinel := errors.New("boom")
	assert.Equal(t, sentinel, mapDomainError(sentinel, 1.0))
	assert.ErrorIs(t, mapDomainError(domain.ErrInvalidPrice, -1), ErrInvalidOrderPrice)
}
