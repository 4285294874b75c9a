// README: Pure geographic helpers for place distances.
package maps

import (
	"math"

	"googlemaps.github.io/maps"
)

const earthRadiusKm = 6371.0

// distanceKm is the haversine great-circle distance between two coordinates.
func distanceKm(from, to maps.LatLng) float64 {
	lat1, lat2 := radians(from.Lat), radians(to.Lat)
	dLat := lat2 - lat1
	dLng := radians(to.Lng - from.Lng)

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// roundKm keeps one decimal; enough for a prompt.
func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}
