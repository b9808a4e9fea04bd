package testassets

import (
	"fmt"

	"github.com/lumeo/reel/internal/domain/cluster"
	"github.com/lumeo/reel/internal/domain/model"
)

// VerifyPartition checks that clusters partition the input exactly: every
// input asset appears in exactly one cluster, no duplicates, no omissions.
func VerifyPartition(input []model.MediaAsset, clusters []model.EventCluster) error {
	seen := make(map[string]int, len(input))
	for _, c := range clusters {
		if len(c.Assets) == 0 {
			return fmt.Errorf("empty cluster in output")
		}
		for _, a := range c.Assets {
			seen[a.ID]++
		}
	}

	total := 0
	for id, n := range seen {
		if n > 1 {
			return fmt.Errorf("asset %s appears in %d clusters", id, n)
		}
		total += n
	}
	if total != len(input) {
		return fmt.Errorf("clusters hold %d assets, input has %d", total, len(input))
	}
	for _, a := range input {
		if seen[a.ID] == 0 {
			return fmt.Errorf("asset %s missing from output", a.ID)
		}
	}
	return nil
}

// VerifyBurstBounds checks that every burst cluster respects the size
// bounds and that all adjacent gaps inside it fit the burst window, and
// that single-asset clusters are never bursts.
func VerifyBurstBounds(clusters []model.EventCluster, cfg cluster.Config) error {
	for i, c := range clusters {
		if len(c.Assets) == 1 && c.IsBurst {
			return fmt.Errorf("cluster %d: single asset flagged as burst", i)
		}
		if !c.IsBurst {
			continue
		}
		if len(c.Assets) < cfg.MinBurstSize || len(c.Assets) > cfg.MaxBurstSize {
			return fmt.Errorf("cluster %d: burst size %d outside [%d,%d]",
				i, len(c.Assets), cfg.MinBurstSize, cfg.MaxBurstSize)
		}
		for j := 1; j < len(c.Assets); j++ {
			gap := c.Assets[j].CreatedAt.Sub(c.Assets[j-1].CreatedAt)
			if gap > cfg.BurstThreshold {
				return fmt.Errorf("cluster %d: burst gap %v exceeds threshold %v",
					i, gap, cfg.BurstThreshold)
			}
		}
	}
	return nil
}

// VerifyKeyAssets checks that each cluster has exactly one key asset and
// that it is a member of the cluster.
func VerifyKeyAssets(clusters []model.EventCluster) error {
	for i, c := range clusters {
		keys := 0
		found := false
		for _, a := range c.Assets {
			if a.IsKeyAsset {
				keys++
			}
			if a.ID == c.KeyAssetID {
				found = true
			}
		}
		if keys != 1 {
			return fmt.Errorf("cluster %d: %d key assets, want exactly 1", i, keys)
		}
		if !found {
			return fmt.Errorf("cluster %d: key asset %s not a member", i, c.KeyAssetID)
		}
	}
	return nil
}

// VerifyChronology checks that each cluster's assets are sorted ascending
// by timestamp.
func VerifyChronology(clusters []model.EventCluster) error {
	for i, c := range clusters {
		for j := 1; j < len(c.Assets); j++ {
			if c.Assets[j].CreatedAt.Before(c.Assets[j-1].CreatedAt) {
				return fmt.Errorf("cluster %d: assets out of order at index %d", i, j)
			}
		}
	}
	return nil
}

// VerifyAll runs every invariant check.
func VerifyAll(input []model.MediaAsset, clusters []model.EventCluster, cfg cluster.Config) error {
	if err := VerifyPartition(input, clusters); err != nil {
		return err
	}
	if err := VerifyBurstBounds(clusters, cfg); err != nil {
		return err
	}
	if err := VerifyKeyAssets(clusters); err != nil {
		return err
	}
	return VerifyChronology(clusters)
}
