// Package geo provides great-circle distance computation between coordinates.
package geo

import (
	"math"

	"github.com/lumeo/reel/internal/domain/model"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

const degToRad = math.Pi / 180

// Distance returns the great-circle distance in meters between two
// coordinates using the haversine formula on a spherical Earth.
// It is symmetric, returns 0 for identical points, and is total for any
// valid lat/lon pair. Accuracy and altitude fields are ignored.
func Distance(a, b model.Coordinate) float64 {
	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dLat := (b.Lat - a.Lat) * degToRad
	dLon := (b.Lon - a.Lon) * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}
