// Package model contains domain models passed between layers.
package model

import "time"

// AssetType identifies the kind of media an asset holds.
type AssetType string

// Supported asset types.
const (
	AssetTypePhoto    AssetType = "photo"
	AssetTypeVideo    AssetType = "video"
	AssetTypeAudio    AssetType = "audio"
	AssetTypeDocument AssetType = "document"
)

// Coordinate is a geographic position. Accuracy and Altitude are optional
// and are ignored for distance computations.
type Coordinate struct {
	Lat      float64
	Lon      float64
	Accuracy *float64 // meters, optional
	Altitude *float64 // meters, optional
}

// MediaAsset is a single timestamped media item from a user's library.
// CreatedAt is required and totally orders assets; Location and FaceIDs
// come from upstream extraction and may be absent.
type MediaAsset struct {
	ID         string
	CreatedAt  time.Time
	Location   *Coordinate
	Type       AssetType
	IsKeyAsset bool
	FaceIDs    []string // opaque person identifiers, consumed only
}

// HasLocation reports whether the asset carries a geographic position.
func (a MediaAsset) HasLocation() bool {
	return a.Location != nil
}
