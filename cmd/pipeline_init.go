package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/geo"
	"github.com/petro-intel/leadgen-cli/internal/officer"
	"github.com/petro-intel/leadgen-cli/internal/pipeline"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
	"github.com/petro-intel/leadgen-cli/internal/scorer"
	"github.com/petro-intel/leadgen-cli/internal/store"
	"github.com/petro-intel/leadgen-cli/pkg/geocode"
)

// pipelineEnv holds the loaded reference tables and the built pipeline needed
// by the enrich/assign/serve commands.
type pipelineEnv struct {
	Tables   *refdata.Tables
	Resolver *geo.Resolver
	Officers *officer.Service
	Pipeline *pipeline.Pipeline
	Store    store.Store
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline loads reference data, builds the resolver/scorer/officer
// stack, and opens the snapshot store. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	tables, err := refdata.Load(cfg.Data.RefDir)
	if err != nil {
		return nil, err
	}

	resolver := geo.NewResolver(tables.Gazetteer)
	if cfg.Geocode.Enabled {
		cache, err := geocode.OpenCache(cfg.Geocode.CachePath)
		if err != nil {
			return nil, err
		}
		client := geocode.NewClient(cfg.Geocode.UserAgent,
			geocode.WithBaseURL(cfg.Geocode.BaseURL),
			geocode.WithRateLimit(cfg.Geocode.RPS),
			geocode.WithCache(cache),
		)
		resolver = resolver.WithGeocoder(client)
		zap.L().Info("external geocoder enabled",
			zap.String("base_url", cfg.Geocode.BaseURL),
			zap.Int("cached", cache.Len()),
		)
	}

	refDate, err := cfg.Scoring.RefDate()
	if err != nil {
		return nil, err
	}

	proximity := geo.NewProximityScorer(resolver, tables.Gazetteer.DepotCoords())
	sc := scorer.New(cfg.Scoring.Config, tables.Normalize, proximity, refDate)
	officers := officer.NewService(tables.Officers, resolver)

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	zap.L().Info("reference data loaded",
		zap.Int("places", len(tables.Gazetteer.Places)),
		zap.Int("depots", len(tables.Gazetteer.Depots)),
		zap.Int("officers", len(tables.Officers)),
	)

	return &pipelineEnv{
		Tables:   tables,
		Resolver: resolver,
		Officers: officers,
		Pipeline: pipeline.New(tables.Normalize, sc, officers),
		Store:    st,
	}, nil
}
