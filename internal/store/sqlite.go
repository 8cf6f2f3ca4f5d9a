package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshot_runs (
	id         TEXT PRIMARY KEY,
	lead_count INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS leads (
	id                  TEXT PRIMARY KEY,
	run_id              TEXT NOT NULL REFERENCES snapshot_runs(id),
	company_name        TEXT NOT NULL,
	canonical_name      TEXT NOT NULL,
	signal_type         TEXT NOT NULL,
	project_name        TEXT,
	description         TEXT,
	sector              TEXT,
	category            TEXT,
	source_system       TEXT,
	source_url          TEXT,
	status              TEXT,
	state               TEXT,
	location            TEXT,
	details             TEXT,
	keywords            TEXT NOT NULL DEFAULT '{}',
	intent_score        REAL NOT NULL,
	freshness_score     REAL NOT NULL,
	size_score          REAL NOT NULL,
	proximity_score     REAL NOT NULL,
	legacy_score        REAL NOT NULL,
	enhanced_score      REAL NOT NULL,
	final_score         REAL NOT NULL,
	high_urgency        INTEGER NOT NULL DEFAULT 0,
	priority_tier       INTEGER NOT NULL,
	confidence          REAL NOT NULL DEFAULT 0,
	submission_year     INTEGER NOT NULL DEFAULT 0,
	products            TEXT,
	territory           TEXT,
	officer_name        TEXT,
	officer_role        TEXT,
	officer_phone       TEXT,
	officer_email       TEXT,
	officer_address     TEXT,
	officer_distance_km REAL
);

CREATE INDEX IF NOT EXISTS idx_leads_final_score ON leads(final_score DESC);
CREATE INDEX IF NOT EXISTS idx_leads_tier ON leads(priority_tier);
CREATE INDEX IF NOT EXISTS idx_leads_state ON leads(state);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceLeads swaps the whole snapshot in one transaction: the store always
// holds exactly one enriched record per identity.
func (s *SQLiteStore) ReplaceLeads(ctx context.Context, leads []model.Lead) (string, error) {
	runID := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin replace")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads`); err != nil {
		return "", eris.Wrap(err, "sqlite: clear leads")
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_runs (id, lead_count, created_at) VALUES (?, ?, ?)`,
		runID, len(leads), time.Now().UTC(),
	); err != nil {
		return "", eris.Wrap(err, "sqlite: insert snapshot run")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leads (
			id, run_id, company_name, canonical_name, signal_type, project_name,
			description, sector, category, source_system, source_url, status,
			state, location, details, keywords,
			intent_score, freshness_score, size_score, proximity_score,
			legacy_score, enhanced_score, final_score, high_urgency,
			priority_tier, confidence, submission_year, products, territory,
			officer_name, officer_role, officer_phone, officer_email,
			officer_address, officer_distance_km
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: prepare insert lead")
	}
	defer stmt.Close()

	for _, l := range leads {
		var dist any
		if l.OfficerDistance != nil {
			dist = *l.OfficerDistance
		}
		if _, err := stmt.ExecContext(ctx,
			l.ID, runID, l.CompanyName, l.CanonicalName, l.SignalType, l.ProjectName,
			l.Description, l.Sector, l.Category, l.SourceSystem, l.SourceURL, l.Status,
			l.State, l.Location, l.Details, l.Keywords,
			l.IntentScore, l.FreshnessScore, l.SizeScore, l.ProximityScore,
			l.LegacyScore, l.EnhancedScore, l.FinalScore, boolToInt(l.HighUrgency),
			int(l.PriorityTier), l.Confidence, l.SubmissionYear, l.Products, l.Territory,
			l.OfficerName, l.OfficerRole, l.OfficerPhone, l.OfficerEmail,
			l.OfficerAddress, dist,
		); err != nil {
			return "", eris.Wrapf(err, "sqlite: insert lead %s", l.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit replace")
	}
	return runID, nil
}

func (s *SQLiteStore) ListLeads(ctx context.Context, filter Filter) ([]model.Lead, error) {
	query := selectLead + ` WHERE 1=1`
	var args []any

	if filter.Tier != 0 {
		query += ` AND priority_tier = ?`
		args = append(args, int(filter.Tier))
	}
	if filter.State != "" {
		query += ` AND state = ? COLLATE NOCASE`
		args = append(args, filter.State)
	}
	if filter.MinScore > 0 {
		query += ` AND final_score >= ?`
		args = append(args, filter.MinScore)
	}

	query += ` ORDER BY final_score DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: iterate leads")
}

func (s *SQLiteStore) GetLead(ctx context.Context, id string) (*model.Lead, error) {
	row := s.db.QueryRowContext(ctx, selectLead+` WHERE id = ?`, id)
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: lead %s not found", id)
	}
	return lead, err
}

func (s *SQLiteStore) Summarize(ctx context.Context) (*Summary, error) {
	sum := &Summary{
		ByTier:   make(map[string]int),
		BySignal: make(map[string]int),
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(high_urgency), 0) FROM leads`)
	if err := row.Scan(&sum.Total, &sum.HighUrgency); err != nil {
		return nil, eris.Wrap(err, "sqlite: summarize totals")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT priority_tier, COUNT(*) FROM leads GROUP BY priority_tier`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: summarize tiers")
	}
	defer rows.Close()
	for rows.Next() {
		var tier, count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan tier count")
		}
		sum.ByTier[model.Tier(tier).Label()] = count
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate tier counts")
	}

	sigRows, err := s.db.QueryContext(ctx,
		`SELECT signal_type, COUNT(*) FROM leads GROUP BY signal_type`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: summarize signals")
	}
	defer sigRows.Close()
	for sigRows.Next() {
		var signal string
		var count int
		if err := sigRows.Scan(&signal, &count); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan signal count")
		}
		sum.BySignal[signal] = count
	}
	return sum, eris.Wrap(sigRows.Err(), "sqlite: iterate signal counts")
}

const selectLead = `
	SELECT id, company_name, canonical_name, signal_type, project_name,
	       description, sector, category, source_system, source_url, status,
	       state, location, details, keywords,
	       intent_score, freshness_score, size_score, proximity_score,
	       legacy_score, enhanced_score, final_score, high_urgency,
	       priority_tier, confidence, submission_year, products, territory,
	       officer_name, officer_role, officer_phone, officer_email,
	       officer_address, officer_distance_km
	FROM leads`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var l model.Lead
	var urgency, tier int
	var dist sql.NullFloat64
	err := row.Scan(
		&l.ID, &l.CompanyName, &l.CanonicalName, &l.SignalType, &l.ProjectName,
		&l.Description, &l.Sector, &l.Category, &l.SourceSystem, &l.SourceURL, &l.Status,
		&l.State, &l.Location, &l.Details, &l.Keywords,
		&l.IntentScore, &l.FreshnessScore, &l.SizeScore, &l.ProximityScore,
		&l.LegacyScore, &l.EnhancedScore, &l.FinalScore, &urgency,
		&tier, &l.Confidence, &l.SubmissionYear, &l.Products, &l.Territory,
		&l.OfficerName, &l.OfficerRole, &l.OfficerPhone, &l.OfficerEmail,
		&l.OfficerAddress, &dist,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan lead")
	}
	l.HighUrgency = urgency != 0
	l.PriorityTier = model.Tier(tier)
	l.TierLabel = l.PriorityTier.Label()
	if dist.Valid {
		l.OfficerDistance = &dist.Float64
	}
	return &l, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
