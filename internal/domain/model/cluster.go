package model

import "time"

// EventCluster is a group of temporally (and optionally spatially) adjacent
// assets treated as one timeline entry. Assets are non-empty and sorted
// ascending by CreatedAt; exactly one asset has IsKeyAsset set and its ID
// matches KeyAssetID.
type EventCluster struct {
	Assets     []MediaAsset
	IsBurst    bool
	KeyAssetID string
}

// Size returns the number of assets in the cluster.
func (c EventCluster) Size() int {
	return len(c.Assets)
}

// Start returns the timestamp of the earliest asset.
func (c EventCluster) Start() time.Time {
	if len(c.Assets) == 0 {
		return time.Time{}
	}
	return c.Assets[0].CreatedAt
}

// End returns the timestamp of the latest asset.
func (c EventCluster) End() time.Time {
	if len(c.Assets) == 0 {
		return time.Time{}
	}
	return c.Assets[len(c.Assets)-1].CreatedAt
}

// Span returns the duration between the first and last asset.
func (c EventCluster) Span() time.Duration {
	return c.End().Sub(c.Start())
}

// KeyAsset returns the key asset of the cluster, or false if none is marked.
func (c EventCluster) KeyAsset() (MediaAsset, bool) {
	for _, a := range c.Assets {
		if a.ID == c.KeyAssetID {
			return a, true
		}
	}
	return MediaAsset{}, false
}
