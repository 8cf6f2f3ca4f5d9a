package normalize

import (
	"encoding/json"
	"strings"

	"github.com/petro-intel/leadgen-cli/internal/model"
	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

// otherSignal is the terminal fallback when neither the pattern tables nor
// the source-system default can classify a record.
const otherSignal = "Other"

// ClassifySignal buckets a raw record into the signal taxonomy. The rule
// table order is a deliberate priority; the first category with any matching
// pattern wins. Unmatched records fall back to a source-system default, then
// to "Other".
func ClassifySignal(tables *refdata.NormalizeTables, rec model.RawRecord) string {
	text := strings.ToLower(rec.ProjectName + " " + rec.Description + " " + rec.Status)

	if signal := tables.MatchSignal(text); signal != "" {
		return signal
	}

	if signal, ok := tables.SourceDefaults[strings.ToLower(rec.SourceSystem)]; ok {
		return signal
	}

	return otherSignal
}

// ExtractKeywords scans the project name and description for the fixed
// keyword categories and returns category -> matched terms.
func ExtractKeywords(tables *refdata.NormalizeTables, rec model.RawRecord) map[string][]string {
	text := strings.ToLower(rec.ProjectName + " " + rec.Description)
	return tables.MatchKeywords(text)
}

// KeywordsJSON renders the extraction result the way exports store it: a
// JSON object, "{}" when nothing matched.
func KeywordsJSON(keywords map[string][]string) string {
	if len(keywords) == 0 {
		return "{}"
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return "{}"
	}
	return string(data)
}
