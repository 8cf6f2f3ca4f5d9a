package scorer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petro-intel/leadgen-cli/internal/geo"
	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

var testRefDate = time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

func scoringTables(t *testing.T) *refdata.NormalizeTables {
	t.Helper()
	tables := &refdata.NormalizeTables{
		HighIntent: []refdata.WeightedPattern{
			{Pattern: `\btender\b`, Weight: 1.0},
			{Pattern: `\bcontract\b`, Weight: 0.9},
			{Pattern: `\bfuel supply\b`, Weight: 0.85},
		},
		MediumIntent: []refdata.WeightedPattern{
			{Pattern: `\bexpansion\b`, Weight: 0.7},
			{Pattern: `\bgreenfield\b`, Weight: 0.75},
		},
		LowIntent: []refdata.WeightedPattern{
			{Pattern: `\bproposed\b`, Weight: 0.3},
			{Pattern: `\bunder consideration\b`, Weight: 0.2},
		},
		SectorScores: map[string]int{"MIN": 25, "INFRA-2": 22, "Industrial": 18},
		StatusScores: []refdata.StatusScore{
			{Match: "Under Verification", Points: 20},
			{Match: "Under Examination", Points: 18},
			{Match: "EDS Raised", Points: 10},
		},
		ProductRules: []refdata.ProductRule{
			{Sector: "MIN", Products: []string{"Diesel", "Lubricants", "Transportation Fuel"}},
			{Sector: "INFRA-2", Products: []string{"Diesel", "Bitumen", "Lubricants", "Generator Fuel"}},
		},
		DefaultProducts: []string{"Diesel", "Lubricants"},
	}
	require.NoError(t, tables.Compile())
	return tables
}

func testScorer(t *testing.T) *Scorer {
	t.Helper()
	gaz := refdata.NewGazetteer(
		[]refdata.Place{
			{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777},
			{Name: "Pune", Lat: 18.5204, Lon: 73.8567},
		},
		[]refdata.Depot{{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777}},
		[]refdata.StateCapital{{State: "Maharashtra", Lat: 19.0760, Lon: 72.8777}},
	)
	proximity := geo.NewProximityScorer(geo.NewResolver(gaz), gaz.DepotCoords())
	return New(DefaultConfig(), scoringTables(t), proximity, testRefDate)
}

func TestIntentStrength(t *testing.T) {
	s := testScorer(t)

	tests := []struct {
		name        string
		description string
		expected    float64
	}{
		{"empty description", "", 0.3},
		{"no keywords", "iron ore beneficiation facility", 0.3},
		{"high intent", "Tender for diesel supply", 1.0},
		{"medium intent", "Capacity expansion at existing site", 0.7},
		{"high beats medium", "Tender for expansion works", 1.0},
		{"greenfield", "Greenfield cement unit", 0.75},
		{"low tier cannot beat base", "Under consideration by the board", 0.3},
		{"low tier equals base", "Proposed integrated steel plant", 0.3},
		{"multi-word high intent", "Long-term fuel supply arrangement", 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.IntentStrength(tt.description))
		})
	}
}

func TestFreshness(t *testing.T) {
	s := testScorer(t)

	tests := []struct {
		name     string
		details  string
		expected float64
	}{
		{"same day", "Date of Submission: 15/05/2026", 1.0},
		{"fifteen days old", "Date of Submission: 30/04/2026", 0.5},
		{"thirty days old", "Date of Submission: 15/04/2026", 0.0},
		{"older than window", "Date of Submission: 31/03/2026", 0.0},
		{"future dated", "Date of Submission: 20/05/2026", 1.0},
		{"missing date", "Sector: MIN", 0.5},
		{"garbage date", "Date of Submission: 99/99/2026", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.Freshness(tt.details), 1e-9)
		})
	}
}

func TestSizeProxy(t *testing.T) {
	s := testScorer(t)

	tests := []struct {
		name        string
		description string
		category    string
		expected    float64
	}{
		{"large power plant", "Proposed 150 MW captive power plant", "B2", 0.8},
		{"gigawatt normalizes", "2 GW solar park", "B2", 0.8},
		{"medium power", "60 MW unit", "B2", 0.6},
		{"small power", "25 MW unit", "A", 0.4},
		{"large production mtpa", "Cement plant of 1.2 MTPA", "B2", 0.8},
		{"production tpa normalized", "Expansion to 600000 TPA", "B2", 0.6},
		{"large area", "Mining lease over 250 ha", "B2", 0.8},
		{"medium area", "Site of 120 hectare", "B2", 0.6},
		{"category fallback A", "New manufacturing unit", "A", 0.7},
		{"category fallback B1", "New manufacturing unit", "B1", 0.6},
		{"category fallback B2", "New manufacturing unit", "B2", 0.4},
		{"unknown category", "New manufacturing unit", "", 0.5},
		{"empty description uses category", "", "A", 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.SizeProxy(tt.description, tt.category))
		})
	}
}

func TestLegacyScore(t *testing.T) {
	s := testScorer(t)

	tests := []struct {
		name     string
		rec      model.RawRecord
		year     int
		expected int
	}{
		{
			name:     "full house capped at 100",
			rec:      model.RawRecord{Category: "A", Sector: "MIN", Status: "Under Verification"},
			year:     2026,
			expected: 100,
		},
		{
			name:     "previous year",
			rec:      model.RawRecord{Category: "B1", Sector: "MIN", Status: "Under Examination"},
			year:     2025,
			expected: 15 + 20 + 25 + 18,
		},
		{
			name:     "unknown sector gets default points",
			rec:      model.RawRecord{Category: "B2", Sector: "Agro"},
			year:     2026,
			expected: 30 + 10 + 5,
		},
		{
			name:     "status is first substring match",
			rec:      model.RawRecord{Status: "EDS Raised and Under Verification"},
			year:     0,
			expected: 5 + 20,
		},
		{
			name:     "stale lead scores sector default only",
			rec:      model.RawRecord{},
			year:     2020,
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.LegacyScore(tt.rec, tt.year))
		})
	}
}

func TestAssignTier(t *testing.T) {
	s := testScorer(t)

	tests := []struct {
		name     string
		final    float64
		status   string
		year     int
		expected model.Tier
	}{
		{"immediate", 72, "Under Verification", 2026, model.TierImmediate},
		{"under examination also qualifies", 80, "Under Examination", 2026, model.TierImmediate},
		{"high score without active review", 80, "EDS Raised", 2026, model.TierHighPriority},
		{"high score wrong year", 80, "Under Verification", 2025, model.TierMonitor},
		{"mid score current year", 60, "EDS Raised", 2026, model.TierHighPriority},
		{"mid score old year", 60, "EDS Raised", 2024, model.TierMonitor},
		{"monitor", 45, "", 2026, model.TierMonitor},
		{"low priority", 30, "Under Verification", 2026, model.TierLowPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.AssignTier(tt.final, tt.status, tt.year))
		})
	}
}

func TestRecommendProducts(t *testing.T) {
	s := testScorer(t)

	assert.Equal(t, []string{"Diesel", "Lubricants", "Transportation Fuel"}, s.RecommendProducts("MIN"))
	assert.Equal(t, []string{"Diesel", "Bitumen", "Lubricants", "Generator Fuel"}, s.RecommendProducts("INFRA-2 Road Projects"))
	assert.Equal(t, []string{"Diesel", "Lubricants"}, s.RecommendProducts("Agriculture"))
}

func TestConfidence(t *testing.T) {
	full := model.RawRecord{
		CompanyName: "Acme", ProjectName: "Plant", Description: "desc",
		SourceURL: "https://example.com", State: "Maharashtra", Sector: "MIN",
	}
	assert.Equal(t, 100.0, Confidence(full))

	assert.Equal(t, 0.0, Confidence(model.RawRecord{}))

	partial := model.RawRecord{CompanyName: "Acme", State: "Maharashtra", Sector: "Unknown"}
	assert.Equal(t, 30.0, Confidence(partial))
}

func TestScoreEndToEnd(t *testing.T) {
	s := testScorer(t)

	rec := model.RawRecord{
		CompanyName: "Acme Mining Ltd",
		ProjectName: "Limestone Mine Expansion",
		Location:    "District: Mumbai",
		State:       "Maharashtra",
		Sector:      "MIN",
		Category:    "A",
		Status:      "Under Verification",
		Description: "Tender for mining operations",
		SourceURL:   "https://parivesh.nic.in/p/123",
		Details:     "Date of Submission: 15/05/2026",
	}

	b := s.Score(rec)

	assert.Equal(t, 1.0, b.Intent)
	assert.Equal(t, 1.0, b.Freshness)
	assert.Equal(t, 0.7, b.Size) // no capacity figure, category A
	assert.Equal(t, 1.0, b.Proximity)

	// 100 * (0.4*1.0 + 0.3*1.0 + 0.2*0.7 + 0.1*1.0)
	assert.InDelta(t, 94.0, b.Enhanced, 1e-9)
	// 30 recency + 25 category + 25 sector + 20 status, capped at 100
	assert.Equal(t, 100.0, b.Legacy)
	// 0.3*100 + 0.7*94
	assert.InDelta(t, 95.8, b.Final, 1e-9)

	assert.True(t, b.HighUrgency)
	assert.Equal(t, model.TierImmediate, b.Tier)
	assert.Equal(t, 2026, b.SubmissionYear)
	assert.Equal(t, 100.0, b.Confidence)
	assert.Equal(t, []string{"Diesel", "Lubricants", "Transportation Fuel"}, b.Products)
}

func TestScoreIdempotent(t *testing.T) {
	s := testScorer(t)

	rec := model.RawRecord{
		Description: "Proposed expansion of 60 MW plant",
		State:       "Maharashtra",
		Location:    "District: Pune",
		Category:    "B1",
		Details:     "Date of Submission: 01/05/2026",
	}

	first := s.Score(rec)
	second := s.Score(rec)
	assert.Equal(t, first, second)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))

	bad := DefaultConfig()
	bad.IntentWeight = 0.9
	assert.Error(t, Validate(bad))

	blend := DefaultConfig()
	blend.LegacyBlend = 0.5
	assert.Error(t, Validate(blend))

	ladder := DefaultConfig()
	ladder.Tier3Min = 99
	assert.Error(t, Validate(ladder))
}
