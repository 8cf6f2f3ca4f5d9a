package pipeline

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/normalize"
	"github.com/petro-intel/leadgen-cli/internal/officer"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
	"github.com/petro-intel/leadgen-cli/internal/scorer"
)

// Pipeline runs the enrichment stages over merged raw records. Stages mutate
// each lead in a fixed order: normalize, score, assign. Every stage is a pure
// function of the record and the read-only reference tables, so re-running
// the pipeline on identical input is idempotent.
type Pipeline struct {
	tables   *refdata.NormalizeTables
	scorer   *scorer.Scorer
	officers *officer.Service
}

// New wires the pipeline stages together.
func New(tables *refdata.NormalizeTables, sc *scorer.Scorer, officers *officer.Service) *Pipeline {
	return &Pipeline{tables: tables, scorer: sc, officers: officers}
}

// Enrich transforms one raw record into a fully scored, assigned lead.
func (p *Pipeline) Enrich(rec model.RawRecord) model.Lead {
	lead := model.Lead{
		ID:           rec.ID,
		CompanyName:  rec.CompanyName,
		ProjectName:  rec.ProjectName,
		Description:  rec.Description,
		Sector:       sectorOrUnknown(rec.Sector),
		Category:     rec.Category,
		SourceSystem: rec.SourceSystem,
		SourceURL:    rec.SourceURL,
		Status:       rec.Status,
		State:        rec.State,
		Location:     rec.Location,
		Details:      rec.Details,
	}

	// Normalize.
	lead.CanonicalName = normalize.Company(p.tables, rec.CompanyName)
	lead.SignalType = normalize.ClassifySignal(p.tables, rec)
	lead.Keywords = normalize.KeywordsJSON(normalize.ExtractKeywords(p.tables, rec))

	// Score.
	b := p.scorer.Score(rec)
	lead.IntentScore = b.Intent
	lead.FreshnessScore = b.Freshness
	lead.SizeScore = b.Size
	lead.ProximityScore = b.Proximity
	lead.LegacyScore = b.Legacy
	lead.EnhancedScore = b.Enhanced
	lead.FinalScore = b.Final
	lead.HighUrgency = b.HighUrgency
	lead.PriorityTier = b.Tier
	lead.TierLabel = b.Tier.Label()
	lead.SubmissionYear = b.SubmissionYear
	lead.Confidence = b.Confidence
	lead.Products = strings.Join(b.Products, ", ")

	// Assign.
	a := p.officers.Assign(rec.Location, rec.State)
	lead.OfficerName = a.Name
	lead.OfficerRole = a.Role
	lead.OfficerPhone = a.Phone
	lead.OfficerEmail = a.Email
	lead.OfficerAddress = a.Address
	lead.OfficerDistance = a.DistanceKM
	lead.Territory = territoryFor(a, rec.State)

	return lead
}

// Run enriches every record and returns the leads sorted by final score
// descending (stable, so equal scores keep input order). A record can never
// abort the batch: enrichment has no failure mode past the ingestion
// boundary, every miss degrades to a documented default.
func (p *Pipeline) Run(records []model.RawRecord) []model.Lead {
	leads := make([]model.Lead, 0, len(records))
	for _, rec := range records {
		leads = append(leads, p.Enrich(rec))
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].FinalScore > leads[j].FinalScore
	})

	zap.L().Info("pipeline: enrichment complete", zap.Int("leads", len(leads)))
	return leads
}

// territoryFor names the owning territory after an officer's home state,
// falling back to the lead's own state when only HQ could be assigned.
func territoryFor(a model.Assignment, leadState string) string {
	if a.Name == officer.HQFallback.Name {
		if strings.TrimSpace(leadState) == "" {
			return "Unassigned"
		}
		return leadState
	}
	return a.State
}

func sectorOrUnknown(sector string) string {
	if strings.TrimSpace(sector) == "" {
		return "Unknown"
	}
	return sector
}
