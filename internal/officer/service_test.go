package officer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petro-intel/leadgen-cli/internal/geo"
	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

func testService() *Service {
	gaz := refdata.NewGazetteer(
		[]refdata.Place{
			{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777},
			{Name: "Pune", Lat: 18.5204, Lon: 73.8567},
			{Name: "Lucknow", Lat: 26.8467, Lon: 80.9462},
			{Name: "Kolkata", Lat: 22.5726, Lon: 88.3639},
		},
		[]refdata.Depot{{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777}},
		[]refdata.StateCapital{
			{State: "Maharashtra", Lat: 19.0760, Lon: 72.8777},
			{State: "Uttar Pradesh", Lat: 26.8467, Lon: 80.9462},
			{State: "West Bengal", Lat: 22.5726, Lon: 88.3639},
		},
	)

	officers := []model.Officer{
		{
			Name: "Rajesh Kulkarni", Role: "Regional Sales Manager",
			Phone: "+91-22-0000", Email: "rajesh@hpcl.in",
			Address: "Mumbai RO", Location: "Mumbai", State: "Maharashtra",
		},
		{
			Name: "Anil Srivastava", Role: "Sales Officer",
			Email:   "anil@hpcl.in",
			Address: "Lucknow RO", Location: "Lucknow", State: "Uttar Pradesh",
		},
		{
			Name: "", Role: "Sales Officer",
			Location: "Kolkata", State: "West Bengal",
		},
		{
			// Location not in the gazetteer: unusable for proximity,
			// still reachable through the state fallback.
			Name: "Kavita Jain", Role: "Sales Officer",
			Location: "Indore", State: "Madhya Pradesh",
		},
	}

	return NewService(officers, geo.NewResolver(gaz))
}

func TestAssignNearest(t *testing.T) {
	svc := testService()

	a := svc.Assign("District: Pune", "Maharashtra")
	assert.Equal(t, "Rajesh Kulkarni", a.Name)
	assert.Equal(t, "Regional Sales Manager", a.Role)
	require.NotNil(t, a.DistanceKM)
	assert.InDelta(t, 120, *a.DistanceKM, 5)
}

func TestAssignMissingContactFieldsBecomeNA(t *testing.T) {
	svc := testService()

	a := svc.Assign("District: Lucknow", "Uttar Pradesh")
	assert.Equal(t, "Anil Srivastava", a.Name)
	assert.Equal(t, "N/A", a.Phone)
	assert.Equal(t, "anil@hpcl.in", a.Email)
}

func TestAssignBlankNameSynthesized(t *testing.T) {
	svc := testService()

	a := svc.Assign("District: Kolkata", "West Bengal")
	assert.Equal(t, "Sales Officer - Kolkata", a.Name)
}

func TestAssignStateFallback(t *testing.T) {
	svc := testService()

	// Unresolvable location in a state whose only officer sits at an
	// ungazetted location: state match, no distance.
	a := svc.Assign("District: Nowhereville", "Madhya Pradesh")
	assert.Equal(t, "Kavita Jain", a.Name)
	assert.Nil(t, a.DistanceKM)
}

func TestAssignHQFallback(t *testing.T) {
	svc := testService()

	a := svc.Assign("District: Nowhereville", "Kerala")
	assert.Equal(t, HQFallback, a)
}

func TestAssignCapitalFallback(t *testing.T) {
	svc := testService()

	a := svc.Assign("District: Nowhereville", "Uttar Pradesh")
	// Capital fallback resolves to Lucknow itself, so the nearest officer
	// wins with a concrete distance.
	assert.Equal(t, "Anil Srivastava", a.Name)
	require.NotNil(t, a.DistanceKM)
	assert.Equal(t, 0.0, *a.DistanceKM)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Priya Nair", model.Officer{Name: "Priya Nair"}.DisplayName())
	assert.Equal(t, "Sales Officer - Indore", model.Officer{Role: "Sales Officer", Location: "Indore"}.DisplayName())
	assert.Equal(t, "Officer - HPCL", model.Officer{Name: "N/A"}.DisplayName())
}
