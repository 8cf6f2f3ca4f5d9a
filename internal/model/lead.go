// Package model defines the typed records flowing through the lead pipeline.
package model

// Coord is a WGS84 latitude/longitude pair.
type Coord struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Tier is the ordinal priority bucket of a scored lead (1 is highest).
type Tier int

const (
	TierImmediate    Tier = 1
	TierHighPriority Tier = 2
	TierMonitor      Tier = 3
	TierLowPriority  Tier = 4
)

// Label returns the human-readable tier name used in exports.
func (t Tier) Label() string {
	switch t {
	case TierImmediate:
		return "Tier 1 - Immediate"
	case TierHighPriority:
		return "Tier 2 - High Priority"
	case TierMonitor:
		return "Tier 3 - Monitor"
	default:
		return "Tier 4 - Low Priority"
	}
}

// RawRecord is a single ingested row before enrichment. IDs are preserved
// verbatim once assigned; the merge step never regenerates them.
type RawRecord struct {
	ID           string `csv:"id" json:"id"`
	SourceSystem string `csv:"source_system" json:"source_system"`
	CompanyName  string `csv:"company_name" json:"company_name"`
	ProjectName  string `csv:"project_name" json:"project_name"`
	Location     string `csv:"location" json:"location"`
	State        string `csv:"state" json:"state"`
	Sector       string `csv:"sector" json:"sector"`
	Category     string `csv:"category" json:"category"`
	Status       string `csv:"status" json:"status"`
	Description  string `csv:"description" json:"description"`
	SourceURL    string `csv:"source_url" json:"source_url"`
	Details      string `csv:"details" json:"details"`
	DiscoveredAt string `csv:"discovered_at" json:"discovered_at"`
}

// Lead is the canonical enriched record. Descriptive attributes come from the
// raw record; everything else is derived by the pipeline and must never be
// hand-edited.
type Lead struct {
	ID            string `csv:"id" json:"id"`
	CompanyName   string `csv:"company_name" json:"company_name"`
	CanonicalName string `csv:"canonical_name" json:"canonical_name"`
	SignalType    string `csv:"signal_type" json:"signal_type"`
	ProjectName   string `csv:"project_name" json:"project_name"`
	Description   string `csv:"description" json:"description"`
	Sector        string `csv:"sector" json:"sector"`
	Category      string `csv:"category" json:"category"`
	SourceSystem  string `csv:"source_system" json:"source_system"`
	SourceURL     string `csv:"source_url" json:"source_url"`
	Status        string `csv:"status" json:"status"`
	State         string `csv:"state" json:"state"`
	Location      string `csv:"location" json:"location"`
	Details       string `csv:"details" json:"details"`
	Keywords      string `csv:"keywords" json:"keywords"` // JSON: category -> matched terms

	IntentScore     float64 `csv:"intent_score" json:"intent_score"`
	FreshnessScore  float64 `csv:"freshness_score" json:"freshness_score"`
	SizeScore       float64 `csv:"size_score" json:"size_score"`
	ProximityScore  float64 `csv:"proximity_score" json:"proximity_score"`
	LegacyScore     float64 `csv:"legacy_score" json:"legacy_score"`
	EnhancedScore   float64 `csv:"enhanced_score" json:"enhanced_score"`
	FinalScore      float64 `csv:"final_score" json:"final_score"`
	HighUrgency     bool    `csv:"high_urgency" json:"high_urgency"`
	PriorityTier    Tier    `csv:"priority_tier" json:"priority_tier"`
	TierLabel       string  `csv:"tier_label" json:"tier_label"`
	Confidence      float64 `csv:"confidence" json:"confidence"`
	SubmissionYear  int     `csv:"submission_year" json:"submission_year"`
	Products        string  `csv:"recommended_products" json:"recommended_products"`
	Territory       string  `csv:"territory" json:"territory"`
	OfficerName     string  `csv:"officer_name" json:"officer_name"`
	OfficerRole     string  `csv:"officer_role" json:"officer_role"`
	OfficerPhone    string  `csv:"officer_phone" json:"officer_phone"`
	OfficerEmail    string  `csv:"officer_email" json:"officer_email"`
	OfficerAddress  string  `csv:"officer_address" json:"officer_address"`
	OfficerDistance *float64 `csv:"officer_distance_km" json:"officer_distance_km,omitempty"`
}

// Officer is a fixed personnel reference point. Its coordinates are resolved
// through the gazetteer at assignment time, never stored.
type Officer struct {
	Name     string `yaml:"name" json:"name"`
	Role     string `yaml:"role" json:"role"`
	Phone    string `yaml:"phone" json:"phone"`
	Email    string `yaml:"email" json:"email"`
	Address  string `yaml:"address" json:"address"`
	Location string `yaml:"location" json:"location"`
	State    string `yaml:"state" json:"state"`
}

// Assignment binds a lead to its point of contact.
type Assignment struct {
	Name       string   `json:"officer_name"`
	Role       string   `json:"officer_role"`
	Phone      string   `json:"officer_phone"`
	Email      string   `json:"officer_email"`
	Address    string   `json:"officer_address"`
	State      string   `json:"officer_state"`
	DistanceKM *float64 `json:"distance_km,omitempty"` // nil when assigned by state or HQ fallback
}

// DisplayName returns the officer name, synthesizing "{role} - {location}"
// when the directory entry has a blank name.
func (o Officer) DisplayName() string {
	if o.Name != "" && o.Name != "N/A" {
		return o.Name
	}
	role := o.Role
	if role == "" {
		role = "Officer"
	}
	loc := o.Location
	if loc == "" {
		loc = "HPCL"
	}
	return role + " - " + loc
}
