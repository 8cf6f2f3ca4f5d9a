// Package store persists enriched lead snapshots in SQLite.
package store

import (
	"context"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// Filter narrows ListLeads results. Zero values mean "no constraint".
type Filter struct {
	Tier     model.Tier `json:"tier,omitempty"`
	State    string     `json:"state,omitempty"`
	MinScore float64    `json:"min_score,omitempty"`
	Limit    int        `json:"limit,omitempty"`
}

// Summary aggregates the current snapshot for the dashboard.
type Summary struct {
	Total       int            `json:"total"`
	HighUrgency int            `json:"high_urgency"`
	ByTier      map[string]int `json:"by_tier"`
	BySignal    map[string]int `json:"by_signal"`
}

// Store is the persistence interface consumed by the CLI and the API.
type Store interface {
	ReplaceLeads(ctx context.Context, leads []model.Lead) (runID string, err error)
	ListLeads(ctx context.Context, filter Filter) ([]model.Lead, error)
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	Summarize(ctx context.Context) (*Summary, error)

	Migrate(ctx context.Context) error
	Close() error
}
