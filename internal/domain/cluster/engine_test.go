package cluster_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/lumeo/reel/internal/domain/cluster"
	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/internal/testassets"
	. "github.com/smartystreets/goconvey/convey"
)

var t0 = time.Date(2025, time.June, 4, 10, 0, 0, 0, time.UTC) // a Wednesday

// photosAt builds assets at the given offsets from t0, in offset order.
func photosAt(offsets ...time.Duration) []model.MediaAsset {
	out := make([]model.MediaAsset, len(offsets))
	for i, off := range offsets {
		out[i] = model.MediaAsset{
			ID:        fmt.Sprintf("asset-%03d", i),
			CreatedAt: t0.Add(off),
			Type:      model.AssetTypePhoto,
		}
	}
	return out
}

func mustEngine(cfg cluster.Config) *cluster.Engine {
	eng, err := cluster.New(cluster.WithConfig(cfg))
	So(err, ShouldBeNil)
	return eng
}

func TestEngineBasics(t *testing.T) {
	ctx := context.Background()

	Convey("Given a clustering engine with default thresholds", t, func() {
		eng, err := cluster.New()
		So(err, ShouldBeNil)

		Convey("When clustering an empty input", func() {
			clusters := eng.Cluster(ctx, nil)

			Convey("Then the output is empty and no error occurs", func() {
				So(clusters, ShouldBeEmpty)
			})
		})

		Convey("When clustering a single asset", func() {
			clusters := eng.Cluster(ctx, photosAt(0))

			Convey("Then it forms its own non-burst cluster with itself as key", func() {
				So(clusters, ShouldHaveLength, 1)
				So(clusters[0].Size(), ShouldEqual, 1)
				So(clusters[0].IsBurst, ShouldBeFalse)
				So(clusters[0].KeyAssetID, ShouldEqual, "asset-000")
				So(clusters[0].Assets[0].IsKeyAsset, ShouldBeTrue)
			})
		})

		Convey("When the input is unsorted", func() {
			assets := photosAt(10*time.Minute, 0, 5*time.Minute)
			clusters := eng.Cluster(ctx, assets)

			Convey("Then the cluster is chronologically sorted", func() {
				So(clusters, ShouldHaveLength, 1)
				So(clusters[0].Assets[0].ID, ShouldEqual, "asset-001")
				So(clusters[0].Assets[1].ID, ShouldEqual, "asset-002")
				So(clusters[0].Assets[2].ID, ShouldEqual, "asset-000")
			})

			Convey("And the caller's slice is left untouched", func() {
				So(assets[0].ID, ShouldEqual, "asset-000")
				So(assets[0].IsKeyAsset, ShouldBeFalse)
			})
		})

		Convey("When two assets share a timestamp", func() {
			assets := photosAt(0, 0, 0)
			clusters := eng.Cluster(ctx, assets)

			Convey("Then input order is preserved", func() {
				So(clusters, ShouldHaveLength, 1)
				So(clusters[0].Assets[0].ID, ShouldEqual, "asset-000")
				So(clusters[0].Assets[1].ID, ShouldEqual, "asset-001")
				So(clusters[0].Assets[2].ID, ShouldEqual, "asset-002")
			})
		})

		Convey("When an invalid config is supplied", func() {
			bad := cluster.DefaultConfig()
			bad.MinBurstSize = 10
			bad.MaxBurstSize = 5
			_, err := cluster.New(cluster.WithConfig(bad))

			Convey("Then engine construction fails eagerly", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestTemporalSplitting(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine with a 24h temporal window", t, func() {
		cfg, err := cluster.NewConfig(24*time.Hour, math.Inf(1), 30*time.Second, 3, 20)
		So(err, ShouldBeNil)
		eng := mustEngine(cfg)

		Convey("When two photos are taken 10 minutes apart", func() {
			clusters := eng.Cluster(ctx, photosAt(0, 10*time.Minute))

			Convey("Then they form one cluster that is not a burst", func() {
				So(clusters, ShouldHaveLength, 1)
				So(clusters[0].Size(), ShouldEqual, 2)
				So(clusters[0].IsBurst, ShouldBeFalse)
			})
		})

		Convey("When the timeline has a two-week gap", func() {
			clusters := eng.Cluster(ctx, photosAt(
				0, time.Hour, 2*time.Hour,
				14*24*time.Hour, 14*24*time.Hour+time.Hour,
			))

			Convey("Then exactly two clusters come out", func() {
				So(clusters, ShouldHaveLength, 2)
				So(clusters[0].Size(), ShouldEqual, 3)
				So(clusters[1].Size(), ShouldEqual, 2)
			})
		})

		Convey("When gaps chain just inside the window", func() {
			clusters := eng.Cluster(ctx, photosAt(
				0, 20*time.Hour, 40*time.Hour, 60*time.Hour,
			))

			Convey("Then the chain stays one cluster even past a single window", func() {
				So(clusters, ShouldHaveLength, 1)
				So(clusters[0].Span(), ShouldEqual, 60*time.Hour)
			})
		})
	})
}

func TestSpatialSplitting(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine with a 1km spatial threshold", t, func() {
		cfg, err := cluster.NewConfig(24*time.Hour, 1000, 30*time.Second, 3, 20)
		So(err, ShouldBeNil)
		eng := mustEngine(cfg)

		berlin := model.Coordinate{Lat: 52.5200, Lon: 13.4050}
		potsdam := model.Coordinate{Lat: 52.3906, Lon: 13.0645} // ~27km away

		Convey("When consecutive photos are far apart in space", func() {
			assets := photosAt(0, time.Minute)
			assets[0].Location = &berlin
			assets[1].Location = &potsdam
			clusters := eng.Cluster(ctx, assets)

			Convey("Then the spatial gate splits them", func() {
				So(clusters, ShouldHaveLength, 2)
			})
		})

		Convey("When one photo has no location", func() {
			assets := photosAt(0, time.Minute)
			assets[0].Location = &berlin
			clusters := eng.Cluster(ctx, assets)

			Convey("Then missing location never splits a cluster", func() {
				So(clusters, ShouldHaveLength, 1)
			})
		})

		Convey("When photos are close together", func() {
			near := model.Coordinate{Lat: 52.5205, Lon: 13.4060}
			assets := photosAt(0, time.Minute)
			assets[0].Location = &berlin
			assets[1].Location = &near
			clusters := eng.Cluster(ctx, assets)

			Convey("Then they stay in one cluster", func() {
				So(clusters, ShouldHaveLength, 1)
			})
		})
	})
}

func TestKeyAssetSelection(t *testing.T) {
	ctx := context.Background()

	Convey("Given a default engine", t, func() {
		eng, err := cluster.New()
		So(err, ShouldBeNil)

		Convey("When a cluster has five assets", func() {
			clusters := eng.Cluster(ctx, photosAt(
				0, time.Minute, 2*time.Minute, 3*time.Minute, 4*time.Minute,
			))

			Convey("Then the middle asset is the key, not a boundary one", func() {
				So(clusters, ShouldHaveLength, 1)
				So(clusters[0].KeyAssetID, ShouldEqual, "asset-002")

				key, ok := clusters[0].KeyAsset()
				So(ok, ShouldBeTrue)
				So(key.IsKeyAsset, ShouldBeTrue)
			})

			Convey("And exactly one asset carries the flag", func() {
				flagged := 0
				for _, a := range clusters[0].Assets {
					if a.IsKeyAsset {
						flagged++
					}
				}
				So(flagged, ShouldEqual, 1)
			})
		})

		Convey("When a cluster has two assets", func() {
			clusters := eng.Cluster(ctx, photosAt(0, time.Minute))

			Convey("Then the first asset is the key", func() {
				So(clusters[0].KeyAssetID, ShouldEqual, "asset-000")
			})
		})
	})
}

func TestEngineInvariants(t *testing.T) {
	ctx := context.Background()

	Convey("Given a generated month-long timeline", t, func() {
		assets, stats := testassets.Generate(testassets.DefaultConfig())
		So(stats.Assets, ShouldBeGreaterThan, 0)

		cfg := cluster.DefaultConfig()
		eng := mustEngine(cfg)

		Convey("When clustering it", func() {
			clusters := eng.Cluster(ctx, assets)

			Convey("Then all partition, burst, key and order invariants hold", func() {
				So(testassets.VerifyAll(assets, clusters, cfg), ShouldBeNil)
			})

			Convey("And re-running produces the identical result", func() {
				again := eng.Cluster(ctx, assets)
				So(again, ShouldHaveLength, len(clusters))
				for i := range clusters {
					So(again[i].IsBurst, ShouldEqual, clusters[i].IsBurst)
					So(again[i].KeyAssetID, ShouldEqual, clusters[i].KeyAssetID)
					So(again[i].Size(), ShouldEqual, clusters[i].Size())
				}
			})
		})
	})
}
