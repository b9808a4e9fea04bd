package testassets

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lumeo/reel/internal/domain/model"
)

// Day scene selection cases.
const (
	caseQuietDay  = 0
	caseOutingDay = 1
	caseBurstDay  = 2
	casePartyDay  = 3
	sceneKinds    = 4
)

// Generation ranges per scene.
const (
	quietMaxPhotos  = 3
	outingMinPhotos = 8
	outingMaxPhotos = 25
	burstMinPhotos  = 5
	burstMaxPhotos  = 15
	partyMinPhotos  = 30
	partyMaxPhotos  = 60
)

// Base coordinates around which scenes scatter.
var basePoints = []model.Coordinate{
	{Lat: 52.5200, Lon: 13.4050}, // Berlin
	{Lat: 48.8566, Lon: 2.3522},  // Paris
	{Lat: 41.3874, Lon: 2.1686},  // Barcelona
	{Lat: 59.3293, Lon: 18.0686}, // Stockholm
}

// Generate produces a synthetic timeline. The same config (seed included)
// always yields the same shape of timeline; asset IDs are fresh UUIDs per
// call.
func Generate(cfg Config) ([]model.MediaAsset, Stats) {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible timelines

	var assets []model.MediaAsset
	var stats Stats

	for day := 0; day < cfg.NumDays; day++ {
		dayStart := cfg.Start.AddDate(0, 0, day)

		switch rng.Intn(sceneKinds) {
		case caseQuietDay:
			stats.QuietDays++
			assets = append(assets, quietDay(rng, dayStart, cfg)...)
		case caseOutingDay:
			stats.OutingDays++
			assets = append(assets, outingDay(rng, dayStart, cfg)...)
		case caseBurstDay:
			stats.BurstDays++
			assets = append(assets, burstDay(rng, dayStart, cfg)...)
		case casePartyDay:
			stats.PartyDays++
			assets = append(assets, partyDay(rng, dayStart, cfg)...)
		}
	}

	stats.Assets = len(assets)
	return assets, stats
}

// quietDay scatters a handful of unrelated photos across the day.
func quietDay(rng *rand.Rand, dayStart time.Time, cfg Config) []model.MediaAsset {
	n := rng.Intn(quietMaxPhotos + 1)
	out := make([]model.MediaAsset, 0, n)
	for i := 0; i < n; i++ {
		ts := dayStart.Add(time.Duration(rng.Intn(12)) * time.Hour).
			Add(time.Duration(rng.Intn(3600)) * time.Second)
		out = append(out, newAsset(rng, ts, nil, cfg))
	}
	return out
}

// outingDay produces a multi-hour session at one location, photos minutes
// apart.
func outingDay(rng *rand.Rand, dayStart time.Time, cfg Config) []model.MediaAsset {
	n := outingMinPhotos + rng.Intn(outingMaxPhotos-outingMinPhotos+1)
	loc := jitter(rng, basePoints[rng.Intn(len(basePoints))], 0.01)

	out := make([]model.MediaAsset, 0, n)
	ts := dayStart.Add(2 * time.Hour)
	for i := 0; i < n; i++ {
		ts = ts.Add(time.Duration(2+rng.Intn(20)) * time.Minute)
		l := jitter(rng, loc, 0.001)
		out = append(out, newAsset(rng, ts, &l, cfg))
	}
	return out
}

// burstDay produces one rapid-fire sequence, gaps of a few seconds.
func burstDay(rng *rand.Rand, dayStart time.Time, cfg Config) []model.MediaAsset {
	n := burstMinPhotos + rng.Intn(burstMaxPhotos-burstMinPhotos+1)
	loc := jitter(rng, basePoints[rng.Intn(len(basePoints))], 0.01)

	out := make([]model.MediaAsset, 0, n)
	ts := dayStart.Add(time.Duration(9+rng.Intn(8)) * time.Hour)
	for i := 0; i < n; i++ {
		ts = ts.Add(time.Duration(1+rng.Intn(5)) * time.Second)
		out = append(out, newAsset(rng, ts, &loc, cfg))
	}
	return out
}

// partyDay produces a dense evening at one venue, mixing short gaps and
// burst-paced stretches.
func partyDay(rng *rand.Rand, dayStart time.Time, cfg Config) []model.MediaAsset {
	n := partyMinPhotos + rng.Intn(partyMaxPhotos-partyMinPhotos+1)
	loc := jitter(rng, basePoints[rng.Intn(len(basePoints))], 0.005)

	out := make([]model.MediaAsset, 0, n)
	ts := dayStart.Add(19 * time.Hour)
	for i := 0; i < n; i++ {
		if rng.Intn(3) == 0 {
			ts = ts.Add(time.Duration(1+rng.Intn(10)) * time.Second)
		} else {
			ts = ts.Add(time.Duration(1+rng.Intn(5)) * time.Minute)
		}
		l := jitter(rng, loc, 0.0005)
		out = append(out, newAsset(rng, ts, &l, cfg))
	}
	return out
}

func newAsset(rng *rand.Rand, ts time.Time, loc *model.Coordinate, cfg Config) model.MediaAsset {
	a := model.MediaAsset{
		ID:        uuid.New().String(),
		CreatedAt: ts,
		Location:  loc,
		Type:      model.AssetTypePhoto,
	}
	if cfg.WithFaces && rng.Intn(2) == 0 {
		n := 1 + rng.Intn(3)
		a.FaceIDs = make([]string, n)
		for i := 0; i < n; i++ {
			a.FaceIDs[i] = "person-" + string(rune('a'+rng.Intn(8)))
		}
	}
	return a
}

func jitter(rng *rand.Rand, c model.Coordinate, amount float64) model.Coordinate {
	return model.Coordinate{
		Lat: c.Lat + (rng.Float64()-0.5)*amount,
		Lon: c.Lon + (rng.Float64()-0.5)*amount,
	}
}
