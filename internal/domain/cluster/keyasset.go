package cluster

import (
	"github.com/lumeo/reel/internal/domain/model"
)

// markKeyAsset flags exactly one representative asset per cluster. Clusters
// of three or more favor the temporal midpoint over the boundary shots;
// smaller clusters take the first asset. Selection is a pure function of the
// ordered asset list, so re-runs pick the same key.
func markKeyAsset(c *model.EventCluster) {
	if len(c.Assets) == 0 {
		return
	}

	key := 0
	if len(c.Assets) > 2 {
		key = len(c.Assets) / 2
	}

	for i := range c.Assets {
		c.Assets[i].IsKeyAsset = i == key
	}
	c.KeyAssetID = c.Assets[key].ID
}
