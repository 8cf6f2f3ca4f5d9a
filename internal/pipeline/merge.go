// Package pipeline unifies raw records from every source and runs the staged
// enrichment pass (normalize, score, assign) over them.
package pipeline

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// intPrefix marks synthesized intelligence-source identifiers. An ID already
// bearing it is kept verbatim, never double-prefixed.
const intPrefix = "INT-"

// Source is one input batch heading into the merge. SynthesizeIDs is set for
// intelligence-style sources whose row IDs are only unique per file.
type Source struct {
	Name          string
	SynthesizeIDs bool
	Records       []model.RawRecord
}

// Merge unifies the sources under one identifier scheme and collapses
// duplicates first-seen-wins, preserving input order. The duplicate count is
// reported for observability only; duplicates are never an error.
func Merge(sources []Source) ([]model.RawRecord, int) {
	var out []model.RawRecord
	seen := make(map[string]bool)
	dropped := 0

	for _, src := range sources {
		for i, rec := range src.Records {
			rec.ID = canonicalID(src, rec.ID, i)
			if rec.SourceSystem == "" {
				rec.SourceSystem = src.Name
			}

			if seen[rec.ID] {
				dropped++
				continue
			}
			seen[rec.ID] = true
			out = append(out, rec)
		}
	}

	if dropped > 0 {
		zap.L().Info("pipeline: collapsed duplicate records",
			zap.Int("duplicates", dropped),
			zap.Int("kept", len(out)),
		)
	}
	return out, dropped
}

// canonicalID preserves IDs verbatim once they carry the known prefix and
// synthesizes INT-{SOURCE}-{ORIGINALID} for intelligence sources. Rows with
// no ID at all get a per-source positional fallback.
func canonicalID(src Source, id string, pos int) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Sprintf("%s-UNKNOWN-%d", strings.ToUpper(src.Name), pos)
	}
	if !src.SynthesizeIDs || strings.HasPrefix(id, intPrefix) {
		return id
	}
	return fmt.Sprintf("%s%s-%s", intPrefix, strings.ToUpper(src.Name), id)
}
