package fetcher

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// WriteRawCSV writes merged raw records, the handoff file between ingest and
// enrich.
func WriteRawCSV(path string, records []model.RawRecord) error {
	data, err := csvutil.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "fetcher: marshal raw records")
	}
	return writeFile(path, data)
}

// WriteLeadsCSV writes enriched leads in score order.
func WriteLeadsCSV(path string, leads []model.Lead) error {
	data, err := csvutil.Marshal(leads)
	if err != nil {
		return eris.Wrap(err, "fetcher: marshal leads")
	}
	return writeFile(path, data)
}

// TopByConfidence returns the n most complete leads, keeping score order
// among ties. The input slice is not modified.
func TopByConfidence(leads []model.Lead, n int) []model.Lead {
	out := make([]model.Lead, len(leads))
	copy(out, leads)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "fetcher: create dir %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "fetcher: write %s", path)
	}
	return nil
}
