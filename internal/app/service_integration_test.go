package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/lumeo/reel/internal/app"
	"github.com/lumeo/reel/internal/domain/cluster"
	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/internal/testassets"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServicePipeline(t *testing.T) {
	ctx := context.Background()

	Convey("Given a generated three-month timeline", t, func() {
		genCfg := testassets.DefaultConfig()
		genCfg.NumDays = 90
		genCfg.WithFaces = true
		assets, stats := testassets.Generate(genCfg)
		So(stats.Assets, ShouldBeGreaterThan, 500)

		svc, err := service.New()
		So(err, ShouldBeNil)

		Convey("When the full timeline is clustered", func() {
			clusters := svc.ClusterAssets(ctx, assets)

			Convey("Then every clustering invariant holds at scale", func() {
				So(testassets.VerifyAll(assets, clusters, cluster.DefaultConfig()), ShouldBeNil)
			})

			Convey("And clustering is deterministic", func() {
				again := svc.ClusterAssets(ctx, assets)
				So(again, ShouldHaveLength, len(clusters))
				for i := range clusters {
					So(again[i].KeyAssetID, ShouldEqual, clusters[i].KeyAssetID)
					So(again[i].Size(), ShouldEqual, clusters[i].Size())
				}
			})
		})

		Convey("When suggestions are produced for the timeline", func() {
			suggestions := svc.AnalyzeAndSuggestEvents(ctx, assets, nil)

			Convey("Then every suggestion clears the confidence floor", func() {
				for _, sg := range suggestions {
					So(sg.Confidence, ShouldBeGreaterThanOrEqualTo, 0.5)
					So(sg.Confidence, ShouldBeLessThanOrEqualTo, 1)
				}
			})

			Convey("And suggestions are ranked by confidence", func() {
				for i := 1; i < len(suggestions); i++ {
					So(suggestions[i].Confidence, ShouldBeLessThanOrEqualTo, suggestions[i-1].Confidence)
				}
			})

			Convey("And no two suggestions share a type and start day", func() {
				seen := make(map[string]bool)
				for _, sg := range suggestions {
					k := string(sg.Type) + sg.StartDate.Format("2006-01-02")
					So(seen[k], ShouldBeFalse)
					seen[k] = true
				}
			})

			Convey("And every suggestion is internally consistent", func() {
				for _, sg := range suggestions {
					So(sg.ID, ShouldNotBeEmpty)
					So(sg.Title, ShouldNotBeEmpty)
					So(len(sg.PhotoIDs), ShouldBeGreaterThanOrEqualTo, 2)
					So(sg.EndDate.Before(sg.StartDate), ShouldBeFalse)
					So(sg.Metadata, ShouldContainKey, "asset_count")
				}
			})

			Convey("And feedback on a real suggestion round-trips", func() {
				if len(suggestions) == 0 {
					return
				}
				sg := suggestions[0]
				So(svc.AcceptSuggestion(ctx, sg.ID), ShouldBeNil)
				So(svc.Feedback().Weight(sg.Type), ShouldBeGreaterThan, 1.0)
			})
		})

		Convey("When the travel preset is applied", func() {
			cfg, cfgErr := cluster.PresetConfig(cluster.ContextTravel)
			So(cfgErr, ShouldBeNil)

			loose, err := svc.ClusterAssetsWith(ctx, assets, cfg)
			So(err, ShouldBeNil)

			Convey("Then the invariants hold under the preset too", func() {
				So(testassets.VerifyAll(assets, loose, cfg), ShouldBeNil)
			})
		})
	})
}

func TestServiceCacheWindowing(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with a short cache TTL", t, func() {
		svc, err := service.New(service.WithCacheTTL(time.Minute))
		So(err, ShouldBeNil)

		genCfg := testassets.DefaultConfig()
		genCfg.NumDays = 14
		assets, _ := testassets.Generate(genCfg)

		first := svc.AnalyzeAndSuggestEvents(ctx, assets, nil)

		Convey("When the same window is asked again", func() {
			second := svc.AnalyzeAndSuggestEvents(ctx, assets, nil)

			Convey("Then the cached suggestions are returned verbatim", func() {
				So(second, ShouldHaveLength, len(first))
				for i := range first {
					So(second[i].ID, ShouldEqual, first[i].ID)
				}
			})
		})

		Convey("When the window shifts", func() {
			shifted := make([]model.MediaAsset, len(assets))
			copy(shifted, assets)
			for i := range shifted {
				shifted[i].CreatedAt = shifted[i].CreatedAt.Add(time.Second)
			}
			second := svc.AnalyzeAndSuggestEvents(ctx, shifted, nil)

			Convey("Then fresh suggestions are computed", func() {
				if len(first) == 0 || len(second) == 0 {
					return
				}
				So(second[0].ID, ShouldNotEqual, first[0].ID)
			})
		})
	})
}
