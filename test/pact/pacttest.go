//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ConsumerName = "orders-api"

	CustomersProvider = "customers-service"
	CatalogProvider   = "musiccatalog-service"
	StoresProvider    = "storelocation-service"

	// The orders API is itself a provider for the storefront portal.
	PortalConsumerName = "music-portal"
	OrdersProviderName = "orders-api"

	StateCustomerExists  = "customer c3540a89 exists"
	StateCustomerMissing = "no customer with id 00000000"
	StateAlbumExists     = "album 6bf88a3e exists for artist 2f2b1a17"
	StateAlbumPatchable  = "album 6bf88a3e accepts condition patches"
	StateArtistExists    = "artist 2f2b1a17 exists"
	StateStoreExists     = "store b2d3a4e7 exists"
	StateStoreMissing    = "no store with id 00000000"
)

const (
	ExistingCustomerID = "c3540a89-cb47-4c96-888e-ff96708db4d8"
	MissingCustomerID  = "00000000-0000-0000-0000-000000000000"
	ExistingArtistID   = "2f2b1a17-7b16-44a9-9db4-3f0e1a548808"
	ExistingAlbumID    = "6bf88a3e-95d1-4d21-9222-a4a3a4e67d0b"
	ExistingStoreID    = "b2d3a4e7-6e2c-4e27-9f24-6a3f1a5b0c6d"
	MissingStoreID     = "00000000-0000-0000-0000-000000000000"
	ExistingOrderID    = "0b5f7a2e-8c41-4c36-9d1a-5e2f3a6b7c8d"
	MissingOrderID     = "11111111-1111-1111-1111-111111111111"
)

const (
	StateOrderExists  = "order 0b5f7a2e exists for customer c3540a89"
	StateOrderMissing = "no order with id 11111111"
	StateOrdersBase   = "orders baseline"
)

// ExampleCustomerPayload provides stable test data for customer interactions.
func ExampleCustomerPayload() map[string]any {
	return map[string]any{
		"customerId": ExistingCustomerID,
		"firstName":  "Alick",
		"lastName":   "Ucceli",
	}
}

// ExampleAlbumPayload provides stable test data for album interactions.
func ExampleAlbumPayload() map[string]any {
	return map[string]any{
		"artistId":      ExistingArtistID,
		"artistName":    "The Beatles",
		"albumId":       ExistingAlbumID,
		"albumTitle":    "Abbey Road",
		"conditionType": "NEW",
	}
}

// ExampleStorePayload provides stable test data for store interactions.
func ExampleStorePayload() map[string]any {
	return map[string]any{
		"storeId":     ExistingStoreID,
		"ownerName":   "John Doe",
		"managerName": "Jane Smith",
	}
}

// PortalPactFile returns the canonical pact file path for the portal consumer.
func PortalPactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), PortalConsumerName+"-"+OrdersProviderName+".json")
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
