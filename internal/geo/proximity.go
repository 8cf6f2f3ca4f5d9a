package geo

import "github.com/petro-intel/leadgen-cli/internal/model"

// Proximity bucket thresholds (kilometers). Step functions, inclusive on the
// lower bound of each bucket.
const (
	proximityExcellentKM = 50
	proximityVeryGoodKM  = 100
	proximityGoodKM      = 200
	proximityModerateKM  = 300
	proximityDistantKM   = 500
)

// neutralProximity is used when a location cannot be resolved: neither
// penalized nor rewarded.
const neutralProximity = 0.5

// ProximityScorer maps lead locations to a [0,1] depot-proximity score.
type ProximityScorer struct {
	resolver *Resolver
	depots   []model.Coord
}

// NewProximityScorer builds a scorer over the fixed depot list.
func NewProximityScorer(resolver *Resolver, depots []model.Coord) *ProximityScorer {
	return &ProximityScorer{resolver: resolver, depots: depots}
}

// Score resolves the location and maps the nearest-depot distance to a score.
func (p *ProximityScorer) Score(locationText, state, description string) float64 {
	coord, ok := p.resolver.Resolve(locationText, description, state)
	if !ok {
		return neutralProximity
	}
	_, dist := Nearest(coord, p.depots)
	return bucketDistance(dist)
}

// NearestDepot returns the nearest depot index and distance for a resolved
// location, or (-1, +Inf) when unresolved.
func (p *ProximityScorer) NearestDepot(locationText, state, description string) (int, float64) {
	coord, ok := p.resolver.Resolve(locationText, description, state)
	if !ok {
		return Nearest(coord, nil)
	}
	return Nearest(coord, p.depots)
}

func bucketDistance(km float64) float64 {
	switch {
	case km < proximityExcellentKM:
		return 1.0
	case km < proximityVeryGoodKM:
		return 0.9
	case km < proximityGoodKM:
		return 0.8
	case km < proximityModerateKM:
		return 0.7
	case km < proximityDistantKM:
		return 0.6
	default:
		return 0.5
	}
}
