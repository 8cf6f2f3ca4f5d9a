// Package geo provides the offline geographic core: great-circle distance,
// nearest-of-N search, location resolution against the gazetteer, and the
// depot proximity score.
package geo

import (
	"math"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// earthRadiusKM is the mean Earth radius used for all distances.
const earthRadiusKM = 6371

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(a, b model.Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lon1 := a.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return earthRadiusKM * c
}

// Nearest returns the index of the candidate nearest to p and its distance.
// Ties keep the first-encountered candidate. An empty candidate list yields
// (-1, +Inf).
func Nearest(p model.Coord, candidates []model.Coord) (int, float64) {
	best := -1
	min := math.Inf(1)
	for i, c := range candidates {
		if d := Haversine(p, c); d < min {
			min = d
			best = i
		}
	}
	return best, min
}
