package geo

import (
	"fmt"
	"math"

	"github.com/openshelf/branch-events/internal/cache"
	"github.com/openshelf/branch-events/internal/domain"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in
// kilometres.
func Haversine(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// DistanceCalculator memoizes repeated pair distances in a bounded FIFO
// cache. The map UI asks for the same origin against the same branch set
// on every interaction, so the hit rate is high.
type DistanceCalculator struct {
	cache *cache.FIFO
}

func NewDistanceCalculator(c *cache.FIFO) *DistanceCalculator {
	return &DistanceCalculator{cache: c}
}

func (dc *DistanceCalculator) Distance(a, b domain.Coordinates) float64 {
	if dc.cache == nil {
		return Haversine(a, b)
	}
	key := pairKey(a, b)
	if v, ok := dc.cache.Get(key); ok {
		return v.(float64)
	}
	d := Haversine(a, b)
	dc.cache.Set(key, d)
	return d
}

func pairKey(a, b domain.Coordinates) string {
	// Order-independent: distance is symmetric.
	if b.Lat < a.Lat || (b.Lat == a.Lat && b.Lng < a.Lng) {
		a, b = b, a
	}
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", a.Lat, a.Lng, b.Lat, b.Lng)
}
