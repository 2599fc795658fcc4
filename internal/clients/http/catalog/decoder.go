package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/musicstore/orders-api/internal/orders/domain"
)

// rawAlbum mirrors the loose shape the catalog emits. Every field is
// optional; unknown fields are ignored.
type rawAlbum struct {
	ArtistID      string `json:"artistId"`
	ArtistName    string `json:"artistName"`
	AlbumID       string `json:"albumId"`
	AlbumTitle    string `json:"albumTitle"`
	ConditionType string `json:"conditionType"`
}

// DecodeAlbum normalizes a free-form catalog payload into a typed album
// snapshot. This is the single point where catalog schema drift is absorbed:
// missing artistName/albumTitle map to empty strings and a missing or
// unrecognized conditionType defaults to NEW (case-insensitive match).
func DecodeAlbum(data []byte) (domain.AlbumSnapshot, error) {
	var raw rawAlbum
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.AlbumSnapshot{}, fmt.Errorf("decode album payload: %w", err)
	}
	return domain.AlbumSnapshot{
		ArtistID:   raw.ArtistID,
		ArtistName: raw.ArtistName,
		AlbumID:    raw.AlbumID,
		AlbumTitle: raw.AlbumTitle,
		Condition:  domain.ParseCondition(raw.ConditionType),
	}, nil
}
