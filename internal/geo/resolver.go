package geo

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

// markerPatterns extract an administrative unit from free text. Order is a
// priority: the first matching pattern supplies the candidate.
var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)district[:\-\s]+([a-z\s]+)`),
	regexp.MustCompile(`(?i)dist[.\-\s]+([a-z\s]+)`),
	regexp.MustCompile(`(?i)taluka[:\-\s]+([a-z\s]+)`),
	regexp.MustCompile(`(?i)tal[.\-\s]+([a-z\s]+)`),
}

// trailingJunk strips conjunctions and punctuation tails from an extracted
// candidate ("Purulia And Adjoining Areas" -> "Purulia").
var trailingJunk = regexp.MustCompile(`(?i)\s+(and|,|\.|\().*$`)

// minCandidateLen rejects extracted tokens too short to be a real district.
const minCandidateLen = 4

var titleCaser = cases.Title(language.English)

// Geocoder is an optional external lookup consulted only when the gazetteer
// cannot resolve a candidate. Implementations must treat failures as a plain
// miss; the resolver never sees an error from this path.
type Geocoder interface {
	Lookup(place, state string) (model.Coord, bool)
}

// Resolver turns location strings into coordinates using the gazetteer.
type Resolver struct {
	gaz *refdata.Gazetteer
	ext Geocoder // nil unless the external geocoder is enabled
}

// NewResolver creates a Resolver over the given gazetteer.
func NewResolver(gaz *refdata.Gazetteer) *Resolver {
	return &Resolver{gaz: gaz}
}

// WithGeocoder returns a copy of the resolver that consults ext before the
// state-capital fallback.
func (r *Resolver) WithGeocoder(ext Geocoder) *Resolver {
	return &Resolver{gaz: r.gaz, ext: ext}
}

// ExtractDistrict scans the location string and auxiliary free text for an
// administrative marker and returns the cleaned candidate, or the state when
// nothing usable is found.
func ExtractDistrict(locationText, freeText, state string) string {
	if strings.TrimSpace(locationText) == "" && strings.TrimSpace(freeText) == "" {
		return state
	}

	combined := strings.ToLower(locationText + " " + freeText)
	for _, re := range markerPatterns {
		m := re.FindStringSubmatch(combined)
		if m == nil {
			continue
		}
		candidate := titleCaser.String(strings.TrimSpace(m[1]))
		candidate = strings.TrimSpace(trailingJunk.ReplaceAllString(candidate, ""))
		if len(candidate) >= minCandidateLen {
			return candidate
		}
	}
	return state
}

// Resolve maps a location string (plus auxiliary free text and state) to
// coordinates. The second return value is false when the location cannot be
// resolved; that is a neutral outcome, never an error.
func (r *Resolver) Resolve(locationText, freeText, state string) (model.Coord, bool) {
	candidate := ExtractDistrict(locationText, freeText, state)
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		candidate = strings.TrimSpace(state)
	}
	if candidate == "" {
		// An empty candidate would substring-match every place.
		return model.Coord{}, false
	}
	candidate = titleCaser.String(strings.ToLower(candidate))

	// Exact gazetteer hit.
	if c, ok := r.gaz.Lookup(candidate); ok {
		return c, true
	}

	// Substring fallback in table order, both directions. Known-imprecise:
	// "East Midnapur" resolves through "Midnapur"-style containment.
	lower := strings.ToLower(candidate)
	for _, p := range r.gaz.Places {
		pl := strings.ToLower(p.Name)
		if strings.Contains(lower, pl) || strings.Contains(pl, lower) {
			return model.Coord{Lat: p.Lat, Lon: p.Lon}, true
		}
	}

	if r.ext != nil {
		if c, ok := r.ext.Lookup(candidate, state); ok {
			return c, true
		}
		zap.L().Debug("geo: external geocoder miss", zap.String("place", candidate))
	}

	if c, ok := r.gaz.Capital(state); ok {
		return c, true
	}

	return model.Coord{}, false
}
