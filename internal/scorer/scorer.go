package scorer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/petro-intel/leadgen-cli/internal/geo"
	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

// Component defaults and decay constants.
const (
	baseIntent       = 0.3 // no keyword matched, or missing description
	defaultFreshness = 0.5 // unparseable or missing submission date
	freshnessWindow  = 30  // days of linear decay
)

// Legacy point tables that are not keyword-driven.
const (
	legacyCurrentYearPts = 30
	legacyPrevYearPts    = 15
	legacySectorDefault  = 5
	legacyCap            = 100
)

var legacyCategoryPts = map[string]int{"A": 25, "B1": 20, "B2": 10}

// Size-proxy category fallbacks.
var categorySize = map[string]float64{"A": 0.7, "B1": 0.6, "B2": 0.4}

const unknownCategorySize = 0.5

var (
	submissionDateRe = regexp.MustCompile(`Date of Submission:\s*(\d{2})/(\d{2})/(\d{4})`)
	powerCapacityRe  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(mw|gw)`)
	productionRe     = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(mtpa|million tpa|tpa)`)
	areaRe           = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(ha|hectare)`)
)

// Breakdown holds every derived score for one lead.
type Breakdown struct {
	Intent    float64 `json:"intent"`
	Freshness float64 `json:"freshness"`
	Size      float64 `json:"size"`
	Proximity float64 `json:"proximity"`

	Legacy   float64 `json:"legacy"`
	Enhanced float64 `json:"enhanced"`
	Final    float64 `json:"final"`

	HighUrgency    bool       `json:"high_urgency"`
	Tier           model.Tier `json:"tier"`
	SubmissionYear int        `json:"submission_year"`
	Confidence     float64    `json:"confidence"`
	Products       []string   `json:"products"`
}

// Scorer evaluates raw records against the reference tables. Scoring is a
// pure function of the record and the reference date: identical input always
// produces identical output.
type Scorer struct {
	cfg       Config
	tables    *refdata.NormalizeTables
	proximity *geo.ProximityScorer
	refDate   time.Time
}

// New creates a Scorer. refDate anchors freshness decay and the recency year;
// it is truncated to midnight UTC so day arithmetic stays integral.
func New(cfg Config, tables *refdata.NormalizeTables, proximity *geo.ProximityScorer, refDate time.Time) *Scorer {
	y, m, d := refDate.UTC().Date()
	return &Scorer{
		cfg:       cfg,
		tables:    tables,
		proximity: proximity,
		refDate:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

// Score computes the full breakdown for one record.
func (s *Scorer) Score(rec model.RawRecord) Breakdown {
	b := Breakdown{
		Intent:    s.IntentStrength(rec.Description),
		Freshness: s.Freshness(rec.Details),
		Size:      s.SizeProxy(rec.Description, rec.Category),
		Proximity: s.proximity.Score(rec.Location, rec.State, rec.Description),
	}

	b.SubmissionYear = submissionYear(rec.Details)
	b.Legacy = float64(s.LegacyScore(rec, b.SubmissionYear))
	b.Enhanced = round2(100 * (s.cfg.IntentWeight*b.Intent +
		s.cfg.FreshnessWeight*b.Freshness +
		s.cfg.SizeWeight*b.Size +
		s.cfg.ProximityWeight*b.Proximity))
	b.Final = round2(s.cfg.LegacyBlend*b.Legacy + s.cfg.EnhancedBlend*b.Enhanced)

	b.HighUrgency = b.Final > s.cfg.UrgencyScore || b.Intent >= s.cfg.UrgencyIntent
	b.Tier = s.AssignTier(b.Final, rec.Status, b.SubmissionYear)
	b.Confidence = Confidence(rec)
	b.Products = s.RecommendProducts(rec.Sector)

	return b
}

// IntentStrength scans the description against the tiered intent keyword
// tables. High and medium patterns compete by maximum weight; low patterns
// are consulted only when nothing beat the base score.
func (s *Scorer) IntentStrength(description string) float64 {
	if strings.TrimSpace(description) == "" {
		return baseIntent
	}
	text := strings.ToLower(description)

	score := baseIntent
	for i := range s.tables.HighIntent {
		p := &s.tables.HighIntent[i]
		if p.Match(text) && p.Weight > score {
			score = p.Weight
		}
	}
	for i := range s.tables.MediumIntent {
		p := &s.tables.MediumIntent[i]
		if p.Match(text) && p.Weight > score {
			score = p.Weight
		}
	}
	if score == baseIntent {
		for i := range s.tables.LowIntent {
			p := &s.tables.LowIntent[i]
			if p.Match(text) && p.Weight > score {
				score = p.Weight
			}
		}
	}
	return score
}

// Freshness parses the DD/MM/YYYY submission date out of the details
// sub-field and applies linear 30-day decay. Future-dated submissions are a
// data anomaly and clamp to 1.0.
func (s *Scorer) Freshness(details string) float64 {
	submitted, ok := parseSubmissionDate(details)
	if !ok {
		return defaultFreshness
	}

	days := s.refDate.Sub(submitted).Hours() / 24
	if days < 0 {
		return 1.0
	}
	return math.Max(1-days/freshnessWindow, 0)
}

// SizeProxy extracts the first capacity indicator (power, then production,
// then area) and maps it to a size bucket, falling back to the category.
func (s *Scorer) SizeProxy(description, category string) float64 {
	if strings.TrimSpace(description) == "" {
		return categoryFallback(category)
	}
	desc := strings.ToLower(description)

	if m := powerCapacityRe.FindStringSubmatch(desc); m != nil {
		capacity, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if strings.EqualFold(m[2], "gw") {
				capacity *= 1000
			}
			switch {
			case capacity >= 100:
				return 0.8
			case capacity >= 50:
				return 0.6
			default:
				return 0.4
			}
		}
	}

	if m := productionRe.FindStringSubmatch(desc); m != nil {
		capacity, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			unit := strings.ToLower(m[2])
			if unit == "tpa" {
				capacity /= 1_000_000 // normalize to MTPA
			}
			switch {
			case capacity >= 1.0:
				return 0.8
			case capacity >= 0.5:
				return 0.6
			default:
				return 0.4
			}
		}
	}

	if m := areaRe.FindStringSubmatch(desc); m != nil {
		area, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			switch {
			case area >= 200:
				return 0.8
			case area >= 100:
				return 0.6
			default:
				return 0.4
			}
		}
	}

	return categoryFallback(category)
}

func categoryFallback(category string) float64 {
	if v, ok := categorySize[strings.TrimSpace(category)]; ok {
		return v
	}
	return unknownCategorySize
}

// LegacyScore is the additive categorical point system, capped at 100.
func (s *Scorer) LegacyScore(rec model.RawRecord, submissionYear int) int {
	score := 0

	refYear := s.refDate.Year()
	switch submissionYear {
	case refYear:
		score += legacyCurrentYearPts
	case refYear - 1:
		score += legacyPrevYearPts
	}

	score += legacyCategoryPts[strings.TrimSpace(rec.Category)]

	if pts, ok := s.tables.SectorScores[rec.Sector]; ok {
		score += pts
	} else {
		score += legacySectorDefault
	}

	status := strings.ToLower(rec.Status)
	for _, ss := range s.tables.StatusScores {
		if strings.Contains(status, strings.ToLower(ss.Match)) {
			score += ss.Points
			break
		}
	}

	if score > legacyCap {
		score = legacyCap
	}
	return score
}

// AssignTier walks the tier ladder top-down; the first rule to hold wins.
func (s *Scorer) AssignTier(final float64, status string, submissionYear int) model.Tier {
	refYear := s.refDate.Year()

	if final >= s.cfg.Tier1Min && submissionYear == refYear && s.isActiveReview(status) {
		return model.TierImmediate
	}
	if final >= s.cfg.Tier2Min && submissionYear == refYear {
		return model.TierHighPriority
	}
	if final >= s.cfg.Tier3Min {
		return model.TierMonitor
	}
	return model.TierLowPriority
}

func (s *Scorer) isActiveReview(status string) bool {
	for _, want := range s.cfg.ActiveReviewStatuses {
		if strings.Contains(status, want) {
			return true
		}
	}
	return false
}

// RecommendProducts looks the sector up in the product table: exact match
// first, then first substring match, else the fixed default list.
func (s *Scorer) RecommendProducts(sector string) []string {
	for _, rule := range s.tables.ProductRules {
		if rule.Sector == sector {
			return rule.Products
		}
	}
	lower := strings.ToLower(sector)
	for _, rule := range s.tables.ProductRules {
		if strings.Contains(lower, strings.ToLower(rule.Sector)) {
			return rule.Products
		}
	}
	return s.tables.DefaultProducts
}

// Confidence is a 0-100 data-completeness score used to order the top-N
// export.
func Confidence(rec model.RawRecord) float64 {
	score := 0.0
	if rec.CompanyName != "" {
		score += 20
	}
	if rec.ProjectName != "" {
		score += 20
	}
	if rec.Description != "" {
		score += 20
	}
	if rec.SourceURL != "" {
		score += 20
	}
	if rec.State != "" {
		score += 10
	}
	if rec.Sector != "" && !strings.EqualFold(rec.Sector, "Unknown") {
		score += 10
	}
	return score
}

func parseSubmissionDate(details string) (time.Time, bool) {
	m := submissionDateRe.FindStringSubmatch(details)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func submissionYear(details string) int {
	m := submissionDateRe.FindStringSubmatch(details)
	if m == nil {
		return 0
	}
	year, _ := strconv.Atoi(m[3])
	return year
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
