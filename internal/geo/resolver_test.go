package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

func testGazetteer() *refdata.Gazetteer {
	return refdata.NewGazetteer(
		[]refdata.Place{
			{Name: "Purulia", Lat: 23.3387, Lon: 86.3660},
			{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777},
			{Name: "Pune", Lat: 18.5204, Lon: 73.8567},
			{Name: "Satna", Lat: 24.6005, Lon: 80.8322},
		},
		[]refdata.Depot{
			{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777},
			{Name: "Kolkata", Lat: 22.5726, Lon: 88.3639},
		},
		[]refdata.StateCapital{
			{State: "Maharashtra", Lat: 19.0760, Lon: 72.8777},
			{State: "West Bengal", Lat: 22.5726, Lon: 88.3639},
		},
	)
}

func TestExtractDistrict(t *testing.T) {
	tests := []struct {
		name     string
		location string
		freeText string
		state    string
		expected string
	}{
		{
			name:     "district marker with colon",
			location: "Village Raghunathpur, District: Purulia",
			state:    "West Bengal",
			expected: "Purulia",
		},
		{
			name:     "dist abbreviation",
			location: "Dist. Satna",
			state:    "Madhya Pradesh",
			expected: "Satna",
		},
		{
			name:     "trailing conjunction trimmed",
			location: "District: Purulia and adjoining areas",
			state:    "West Bengal",
			expected: "Purulia",
		},
		{
			name:     "marker in free text only",
			location: "Site Office",
			freeText: "Expansion of plant at Taluka: Khandala region",
			state:    "Maharashtra",
			expected: "Khandala Region",
		},
		{
			name:     "no marker falls back to state",
			location: "Plot 14, Industrial Area",
			state:    "Maharashtra",
			expected: "Maharashtra",
		},
		{
			name:     "empty input falls back to state",
			location: "",
			freeText: "",
			state:    "Haryana",
			expected: "Haryana",
		},
		{
			name:     "too-short candidate rejected",
			location: "District: Ab",
			state:    "Maharashtra",
			expected: "Maharashtra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDistrict(tt.location, tt.freeText, tt.state)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testGazetteer())

	t.Run("exact gazetteer hit", func(t *testing.T) {
		coord, ok := r.Resolve("District: Purulia", "", "West Bengal")
		require.True(t, ok)
		assert.InDelta(t, 23.3387, coord.Lat, 1e-6)
		assert.InDelta(t, 86.3660, coord.Lon, 1e-6)
	})

	t.Run("case insensitive", func(t *testing.T) {
		coord, ok := r.Resolve("district: PURULIA", "", "West Bengal")
		require.True(t, ok)
		assert.InDelta(t, 23.3387, coord.Lat, 1e-6)
	})

	t.Run("substring fallback", func(t *testing.T) {
		coord, ok := r.Resolve("District: Greater Mumbai Area", "", "Maharashtra")
		require.True(t, ok)
		assert.InDelta(t, 19.0760, coord.Lat, 1e-6)
	})

	t.Run("state capital fallback", func(t *testing.T) {
		coord, ok := r.Resolve("District: Nowhereville", "", "West Bengal")
		require.True(t, ok)
		assert.InDelta(t, 22.5726, coord.Lat, 1e-6)
	})

	t.Run("unresolvable", func(t *testing.T) {
		_, ok := r.Resolve("District: Nowhereville", "", "Kerala")
		assert.False(t, ok)
	})

	t.Run("fully empty input", func(t *testing.T) {
		_, ok := r.Resolve("", "", "")
		assert.False(t, ok)
	})
}

type stubGeocoder struct {
	coord model.Coord
	hits  int
}

func (s *stubGeocoder) Lookup(place, state string) (model.Coord, bool) {
	s.hits++
	return s.coord, true
}

func TestResolveExternalGeocoder(t *testing.T) {
	stub := &stubGeocoder{coord: model.Coord{Lat: 11.0, Lon: 77.0}}
	r := NewResolver(testGazetteer()).WithGeocoder(stub)

	t.Run("consulted before capital fallback", func(t *testing.T) {
		coord, ok := r.Resolve("District: Nowhereville", "", "West Bengal")
		require.True(t, ok)
		assert.Equal(t, 1, stub.hits)
		assert.InDelta(t, 11.0, coord.Lat, 1e-6)
	})

	t.Run("not consulted on gazetteer hit", func(t *testing.T) {
		before := stub.hits
		_, ok := r.Resolve("District: Purulia", "", "West Bengal")
		require.True(t, ok)
		assert.Equal(t, before, stub.hits)
	})
}
