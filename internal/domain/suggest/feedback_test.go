package suggest_test

import (
	"context"
	"sync"
	"testing"

	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/internal/domain/suggest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFeedbackWeights(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh feedback store", t, func() {
		store := suggest.NewFeedbackStore()

		Convey("When no feedback has been recorded", func() {
			Convey("Then the weight is neutral and suggestions are allowed", func() {
				So(store.Weight(model.EventTypeWeekend), ShouldEqual, 1.0)
				So(store.ShouldSuggest(ctx, model.EventTypeWeekend), ShouldBeTrue)

				_, ok := store.Preference(model.EventTypeWeekend)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a suggestion is accepted", func() {
			before := store.Weight(model.EventTypeHoliday)
			store.Accept(ctx, model.EventTypeHoliday)

			Convey("Then the weight strictly increases and the counter moves", func() {
				So(store.Weight(model.EventTypeHoliday), ShouldBeGreaterThan, before)

				p, ok := store.Preference(model.EventTypeHoliday)
				So(ok, ShouldBeTrue)
				So(p.Accepts, ShouldEqual, 1)
				So(p.Rejects, ShouldEqual, 0)
			})
		})

		Convey("When a suggestion is rejected", func() {
			before := store.Weight(model.EventTypeGeneral)
			store.Reject(ctx, model.EventTypeGeneral)

			Convey("Then the weight strictly decreases", func() {
				So(store.Weight(model.EventTypeGeneral), ShouldBeLessThan, before)
			})
		})

		Convey("When a type is rejected many times", func() {
			for i := 0; i < 100; i++ {
				store.Reject(ctx, model.EventTypeCelebration)
			}

			Convey("Then the weight bottoms out above zero", func() {
				So(store.Weight(model.EventTypeCelebration), ShouldBeGreaterThan, 0)
			})

			Convey("And the type is suppressed", func() {
				So(store.ShouldSuggest(ctx, model.EventTypeCelebration), ShouldBeFalse)
			})
		})

		Convey("When a type is accepted many times", func() {
			for i := 0; i < 100; i++ {
				store.Accept(ctx, model.EventTypeWeekend)
			}

			Convey("Then growth is bounded", func() {
				So(store.Weight(model.EventTypeWeekend), ShouldBeLessThanOrEqualTo, 3.0)
			})

			Convey("And the type stays suggestible", func() {
				So(store.ShouldSuggest(ctx, model.EventTypeWeekend), ShouldBeTrue)
			})
		})

		Convey("When rejects outnumber accepts early", func() {
			store.Accept(ctx, model.EventTypeGeneral)
			store.Reject(ctx, model.EventTypeGeneral)
			store.Reject(ctx, model.EventTypeGeneral)
			store.Reject(ctx, model.EventTypeGeneral)

			Convey("Then the ratio cutoff suppresses the type", func() {
				So(store.ShouldSuggest(ctx, model.EventTypeGeneral), ShouldBeFalse)
			})
		})
	})
}

func TestFeedbackConcurrency(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent accepts and rejects on the same type", t, func() {
		store := suggest.NewFeedbackStore()

		const rounds = 200
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				store.Accept(ctx, model.EventTypeWeekend)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				store.Reject(ctx, model.EventTypeWeekend)
			}
		}()
		wg.Wait()

		Convey("Then no updates are lost", func() {
			p, ok := store.Preference(model.EventTypeWeekend)
			So(ok, ShouldBeTrue)
			So(p.Accepts, ShouldEqual, rounds)
			So(p.Rejects, ShouldEqual, rounds)
			So(p.Weight, ShouldBeGreaterThan, 0)
		})
	})
}
