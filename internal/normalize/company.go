// Package normalize canonicalizes company names and classifies raw records
// into the fixed signal-type taxonomy.
package normalize

import (
	"strings"

	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

// unknownCompany is the canonical form for blank names.
const unknownCompany = "Unknown"

// Company normalizes a raw company name to its canonical form.
// "RIL" and "Reliance" both become "Reliance Industries Ltd";
// "Jindal Steel & Power Limited" suffix-strips to an alias hit.
// Names with no alias are returned trimmed but otherwise unchanged, no
// guessing.
func Company(tables *refdata.NormalizeTables, name string) string {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return unknownCompany
	}

	if canonical, ok := aliasLookup(tables, clean); ok {
		return canonical
	}

	// Strip one known suffix (longest first, enforced at load) and re-check.
	core := clean
	for _, suffix := range tables.Suffixes {
		if strings.HasSuffix(strings.ToLower(core), strings.ToLower(suffix)) {
			core = strings.TrimSpace(core[:len(core)-len(suffix)])
			break
		}
	}
	if canonical, ok := aliasLookup(tables, core); ok {
		return canonical
	}

	return clean
}

func aliasLookup(tables *refdata.NormalizeTables, name string) (string, bool) {
	for _, a := range tables.Aliases {
		if strings.EqualFold(name, a.Alias) {
			return a.Canonical, true
		}
	}
	return "", false
}
