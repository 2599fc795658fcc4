package application

import (
	"context"
	"errors"

	"github.com/musicstore/orders-api/internal/clients/http/remote"
	"github.com/musicstore/orders-api/internal/orders/application/types"
	"github.com/musicstore/orders-api/internal/orders/domain"
	"github.com/musicstore/orders-api/internal/orders/ports"
)

// bargainPriceThreshold is a business invariant, not an optimization: any
// order priced below it forces the referenced album's condition to BARGAIN
// in the catalog service before the order is persisted.
const bargainPriceThreshold = 10.0

// Service is the order orchestrator. Every read or write fans out to the
// three upstream gateways, enforces the cross-service invariants, and
// denormalizes the fetched snapshots onto the persisted order aggregate.
//
// Validation failures are checked in a fixed order (customer, album,
// availability, store, price) so error precedence stays deterministic; the
// upstream fetches are issued sequentially for the same reason.
type Service struct {
	repo      ports.Repository
	customers ports.CustomerClient
	catalog   ports.CatalogClient
	stores    ports.StoreClient
}

// NewService wires the orchestrator with its repository and gateways.
func NewService(repo ports.Repository, customers ports.CustomerClient, catalog ports.CatalogClient, stores ports.StoreClient) *Service {
	return &Service{repo: repo, customers: customers, catalog: catalog, stores: stores}
}

// GetOrder loads one order and refreshes its snapshots from the upstream
// services. The persisted copies are treated as a cache: they are
// overwritten in the returned representation but not re-written to storage.
func (s *Service) GetOrder(ctx context.Context, key types.OrderKey) (*types.OrderRepresentation, error) {
	order, err := s.repo.GetByCustomerAndOrderID(ctx, key.CustomerID, key.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, invalidInputf("Unknown orderId: %s for customerId: %s", key.OrderID, key.CustomerID)
		}
		return nil, err
	}
	customer, err := s.customers.GetCustomer(ctx, key.CustomerID)
	if err != nil {
		return nil, err
	}
	album, err := s.fetchAlbum(ctx, order.Album.ArtistID, order.Album.AlbumID)
	if err != nil {
		return nil, err
	}
	store, err := s.stores.GetStore(ctx, order.Store.StoreID)
	if err != nil {
		return nil, err
	}
	order.RefreshSnapshots(customer, album, store)
	return Assemble(order), nil
}

// ListOrders returns every order owned by the customer, each with refreshed
// snapshots. The customer snapshot is fetched once and shared across the
// batch; album and store enrichment stays per order since each order may
// reference a different album or store.
func (s *Service) ListOrders(ctx context.Context, customerID string) ([]*types.OrderRepresentation, error) {
	orders, err := s.repo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	result := make([]*types.OrderRepresentation, 0, len(orders))
	for _, order := range orders {
		album, err := s.fetchAlbum(ctx, order.Album.ArtistID, order.Album.AlbumID)
		if err != nil {
			return nil, err
		}
		store, err := s.stores.GetStore(ctx, order.Store.StoreID)
		if err != nil {
			return nil, err
		}
		order.RefreshSnapshots(customer, album, store)
		result = append(result, Assemble(order))
	}
	return result, nil
}

// CreateOrder validates the request against all three upstream services,
// applies the bargain-threshold rule, and persists the new aggregate.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderRepresentation, error) {
	customer, album, store, err := s.validateRequest(ctx, input.CustomerID, input.Request)
	if err != nil {
		return nil, err
	}
	album, err = s.applyBargainRule(ctx, input.Request, album)
	if err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(customer, album, store,
		input.Request.OrderDate, input.Request.OrderStatus, input.Request.OrderPrice, input.Request.PaymentMethod)
	if err != nil {
		return nil, mapDomainError(err, input.Request.OrderPrice)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	return Assemble(saved), nil
}

// UpdateOrder re-runs the create validation sequence against an existing
// order, preserving both the order identifier and the internal storage key
// (replace-in-place, not insert).
func (s *Service) UpdateOrder(ctx context.Context, input types.UpdateOrderInput) (*types.OrderRepresentation, error) {
	existing, err := s.repo.GetByCustomerAndOrderID(ctx, input.CustomerID, input.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, invalidInputf("Unknown orderId: %s for customerId: %s", input.OrderID, input.CustomerID)
		}
		return nil, err
	}
	customer, album, store, err := s.validateRequest(ctx, input.CustomerID, input.Request)
	if err != nil {
		return nil, err
	}
	album, err = s.applyBargainRule(ctx, input.Request, album)
	if err != nil {
		return nil, err
	}
	if err := existing.Replace(customer, album, store,
		input.Request.OrderDate, input.Request.OrderStatus, input.Request.OrderPrice, input.Request.PaymentMethod); err != nil {
		return nil, mapDomainError(err, input.Request.OrderPrice)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	return Assemble(saved), nil
}

// DeleteOrder removes one order. There are no cascading effects on the
// upstream services.
func (s *Service) DeleteOrder(ctx context.Context, key types.OrderKey) error {
	if _, err := s.repo.GetByCustomerAndOrderID(ctx, key.CustomerID, key.OrderID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return invalidInputf("Unknown orderId: %s for customerId: %s", key.OrderID, key.CustomerID)
		}
		return err
	}
	return s.repo.Delete(ctx, key.CustomerID, key.OrderID)
}

// validateRequest runs the ordered precondition checks shared by create and
// update: customer exists, album exists and is orderable, store exists,
// price is positive. Gateway not-found results are translated into
// InvalidInput here; transport failures propagate untouched.
func (s *Service) validateRequest(ctx context.Context, customerID string, req types.OrderRequest) (domain.CustomerSnapshot, domain.AlbumSnapshot, domain.StoreSnapshot, error) {
	var none domain.AlbumSnapshot
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			err = invalidInputf("Unknown customerId provided: %s", customerID)
		}
		return domain.CustomerSnapshot{}, none, domain.StoreSnapshot{}, err
	}
	album, err := s.catalog.GetAlbum(ctx, req.ArtistID, req.AlbumID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			err = invalidInputf("No album with id: %s for artistId: %s", req.AlbumID, req.ArtistID)
		}
		return customer, none, domain.StoreSnapshot{}, err
	}
	if album.Condition == domain.ConditionUnavailable {
		return customer, album, domain.StoreSnapshot{},
			invalidInputf("Album %q is unavailable and cannot be ordered", album.AlbumTitle)
	}
	store, err := s.stores.GetStore(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			err = invalidInputf("Unknown storeId provided: %s", req.StoreID)
		}
		return customer, album, domain.StoreSnapshot{}, err
	}
	if req.OrderPrice <= 0 {
		return customer, album, store, invalidPricef(req.OrderPrice)
	}
	return customer, album, store, nil
}

// applyBargainRule patches the album's condition to BARGAIN when the order
// price is below the threshold, then re-fetches so the persisted snapshot
// reflects the new state. The patch and the re-fetch are strictly
// sequential: the write must be visible before the read. A failure after
// the patch is not compensated; the catalog keeps the new condition.
func (s *Service) applyBargainRule(ctx context.Context, req types.OrderRequest, album domain.AlbumSnapshot) (domain.AlbumSnapshot, error) {
	if req.OrderPrice < bargainPriceThreshold {
		if _, err := s.catalog.PatchCondition(ctx, req.ArtistID, req.AlbumID, domain.ConditionBargain); err != nil {
			return album, err
		}
		refreshed, err := s.catalog.GetAlbum(ctx, req.ArtistID, req.AlbumID)
		if err != nil {
			return album, err
		}
		album = refreshed
	}
	return s.backfillArtistName(ctx, album)
}

// fetchAlbum loads an album and backfills the artist name when the album
// payload does not carry it. Used on the read path.
func (s *Service) fetchAlbum(ctx context.Context, artistID, albumID string) (domain.AlbumSnapshot, error) {
	album, err := s.catalog.GetAlbum(ctx, artistID, albumID)
	if err != nil {
		return domain.AlbumSnapshot{}, err
	}
	return s.backfillArtistName(ctx, album)
}

// backfillArtistName performs the artist-only enrichment fetch. The second
// call exists solely because the catalog's album-detail response does not
// always carry the denormalized artist name.
func (s *Service) backfillArtistName(ctx context.Context, album domain.AlbumSnapshot) (domain.AlbumSnapshot, error) {
	if album.ArtistName != "" {
		return album, nil
	}
	artistOnly, err := s.catalog.GetArtist(ctx, album.ArtistID)
	if err != nil {
		return album, err
	}
	album.ArtistName = artistOnly.ArtistName
	return album, nil
}

func mapDomainError(err error, price float64) error {
	if errors.Is(err, domain.ErrInvalidPrice) {
		return invalidPricef(price)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
