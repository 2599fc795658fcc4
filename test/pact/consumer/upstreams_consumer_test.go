//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	catalogclient "github.com/musicstore/orders-api/internal/clients/http/catalog"
	customersclient "github.com/musicstore/orders-api/internal/clients/http/customers"
	"github.com/musicstore/orders-api/internal/clients/http/remote"
	storesclient "github.com/musicstore/orders-api/internal/clients/http/stores"
	"github.com/musicstore/orders-api/internal/orders/domain"
	pacttest "github.com/musicstore/orders-api/test/pact"
)

var jsonContentType = matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

func newPact(t *testing.T, provider string) *pactconsumer.V2HTTPMockProvider {
	t.Helper()
	pactlog.SetLogLevel("INFO")
	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: provider,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)
	return pact
}

func mockBaseURL(config pactconsumer.MockServerConfig) string {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, config.Port)
}

func mockHTTPClient(config pactconsumer.MockServerConfig) *http.Client {
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &http.Client{Transport: transport, Timeout: 10 * time.Second}
}

func TestCustomerDirectoryContract(t *testing.T) {
	pact := newPact(t, pacttest.CustomersProvider)

	pact.AddInteraction().
		Given(pacttest.StateCustomerExists).
		UponReceiving("a request for an existing customer").
		WithRequest("GET", "/customers/"+pacttest.ExistingCustomerID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"customerId": matchers.Like(pacttest.ExistingCustomerID),
				"firstName":  matchers.Like("Alick"),
				"lastName":   matchers.Like("Ucceli"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCustomerMissing).
		UponReceiving("a request for a missing customer").
		WithRequest("GET", "/customers/"+pacttest.MissingCustomerID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.Like("Unknown customerId provided: " + pacttest.MissingCustomerID),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		gateway, err := customersclient.NewClient(mockBaseURL(config), mockHTTPClient(config))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		customer, err := gateway.GetCustomer(ctx, pacttest.ExistingCustomerID)
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}
		if customer.FirstName != "Alick" {
			return fmt.Errorf("unexpected customer snapshot: %+v", customer)
		}

		if _, err := gateway.GetCustomer(ctx, pacttest.MissingCustomerID); !errors.Is(err, remote.ErrNotFound) {
			return fmt.Errorf("expected remote.ErrNotFound, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestMusicCatalogContract(t *testing.T) {
	pact := newPact(t, pacttest.CatalogProvider)

	albumPath := fmt.Sprintf("/artists/%s/albums/%s", pacttest.ExistingArtistID, pacttest.ExistingAlbumID)
	albumBody := matchers.Map{
		"artistId":      matchers.Like(pacttest.ExistingArtistID),
		"artistName":    matchers.Like("The Beatles"),
		"albumId":       matchers.Like(pacttest.ExistingAlbumID),
		"albumTitle":    matchers.Like("Abbey Road"),
		"conditionType": matchers.Term("NEW", "NEW|USED|BARGAIN|UNAVAILABLE"),
	}

	pact.AddInteraction().
		Given(pacttest.StateAlbumExists).
		UponReceiving("a request for an existing album").
		WithRequest("GET", albumPath).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(albumBody)
		})

	pact.AddInteraction().
		Given(pacttest.StateAlbumPatchable).
		UponReceiving("a request to mark an album as a bargain").
		WithRequest("PATCH", albumPath+"/condition", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("text/plain"))
			b.Body("text/plain", []byte("BARGAIN"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"artistId":      matchers.Like(pacttest.ExistingArtistID),
				"albumId":       matchers.Like(pacttest.ExistingAlbumID),
				"albumTitle":    matchers.Like("Abbey Road"),
				"conditionType": matchers.S("BARGAIN"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateArtistExists).
		UponReceiving("a request for artist-only data").
		WithRequest("GET", "/artists/"+pacttest.ExistingArtistID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"artistId":   matchers.Like(pacttest.ExistingArtistID),
				"artistName": matchers.Like("The Beatles"),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		gateway, err := catalogclient.NewClient(mockBaseURL(config), mockHTTPClient(config))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		album, err := gateway.GetAlbum(ctx, pacttest.ExistingArtistID, pacttest.ExistingAlbumID)
		if err != nil {
			return fmt.Errorf("get album: %w", err)
		}
		if album.AlbumTitle != "Abbey Road" {
			return fmt.Errorf("unexpected album snapshot: %+v", album)
		}

		patched, err := gateway.PatchCondition(ctx, pacttest.ExistingArtistID, pacttest.ExistingAlbumID, domain.ConditionBargain)
		if err != nil {
			return fmt.Errorf("patch condition: %w", err)
		}
		if patched.Condition != domain.ConditionBargain {
			return fmt.Errorf("expected BARGAIN condition, got %s", patched.Condition)
		}

		artist, err := gateway.GetArtist(ctx, pacttest.ExistingArtistID)
		if err != nil {
			return fmt.Errorf("get artist: %w", err)
		}
		if artist.ArtistName != "The Beatles" {
			return fmt.Errorf("unexpected artist snapshot: %+v", artist)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestStoreDirectoryContract(t *testing.T) {
	pact := newPact(t, pacttest.StoresProvider)

	pact.AddInteraction().
		Given(pacttest.StateStoreExists).
		UponReceiving("a request for an existing store").
		WithRequest("GET", "/stores/"+pacttest.ExistingStoreID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"storeId":     matchers.Like(pacttest.ExistingStoreID),
				"ownerName":   matchers.Like("John Doe"),
				"managerName": matchers.Like("Jane Smith"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateStoreMissing).
		UponReceiving("a request for a missing store").
		WithRequest("GET", "/stores/"+pacttest.MissingStoreID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.Like("Unknown storeId provided: " + pacttest.MissingStoreID),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		gateway, err := storesclient.NewClient(mockBaseURL(config), mockHTTPClient(config))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := gateway.GetStore(ctx, pacttest.ExistingStoreID)
		if err != nil {
			return fmt.Errorf("get store: %w", err)
		}
		if store.OwnerName != "John Doe" {
			return fmt.Errorf("unexpected store snapshot: %+v", store)
		}

		if _, err := gateway.GetStore(ctx, pacttest.MissingStoreID); !errors.Is(err, remote.ErrNotFound) {
			return fmt.Errorf("expected remote.ErrNotFound, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}
