package ports

import (
	"context"

	"github.com/musicstore/orders-api/internal/orders/domain"
)

// CustomerClient reads the customer directory.
type CustomerClient interface {
	GetCustomer(ctx context.Context, customerID string) (domain.CustomerSnapshot, error)
}

// CatalogClient reads and conditionally patches the music catalog. GetArtist
// returns artist-only data; the orchestrator uses it to backfill the artist
// name when the album payload omits it.
type CatalogClient interface {
	GetAlbum(ctx context.Context, artistID, albumID string) (domain.AlbumSnapshot, error)
	GetArtist(ctx context.Context, artistID string) (domain.AlbumSnapshot, error)
	PatchCondition(ctx context.Context, artistID, albumID string, condition domain.Condition) (domain.AlbumSnapshot, error)
}

// StoreClient reads the store directory.
type StoreClient interface {
	GetStore(ctx context.Context, storeID string) (domain.StoreSnapshot, error)
}
