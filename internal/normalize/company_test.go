package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petro-intel/leadgen-cli/internal/refdata"
)

func testTables(t *testing.T) *refdata.NormalizeTables {
	t.Helper()
	tables := &refdata.NormalizeTables{
		Aliases: []refdata.Alias{
			{Alias: "RIL", Canonical: "Reliance Industries Ltd"},
			{Alias: "Reliance", Canonical: "Reliance Industries Ltd"},
			{Alias: "Jindal Steel & Power", Canonical: "Jindal Steel & Power Ltd"},
			{Alias: "NTPC", Canonical: "NTPC Ltd"},
		},
		Suffixes: []string{" Private Limited", " Pvt Ltd", " Limited", " Corporation", " Ltd"},
	}
	require.NoError(t, tables.Compile())
	return tables
}

func TestCompany(t *testing.T) {
	tables := testTables(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"acronym alias", "RIL", "Reliance Industries Ltd"},
		{"short name alias", "Reliance", "Reliance Industries Ltd"},
		{"alias is case insensitive", "ril", "Reliance Industries Ltd"},
		{"suffix stripped then alias hit", "Jindal Steel & Power Limited", "Jindal Steel & Power Ltd"},
		{"longest suffix wins", "NTPC Pvt Ltd", "NTPC Ltd"},
		{"unknown name passes through", "Acme Fabricators", "Acme Fabricators"},
		{"unknown with suffix passes through untouched", "Acme Fabricators Ltd", "Acme Fabricators Ltd"},
		{"whitespace trimmed", "  RIL  ", "Reliance Industries Ltd"},
		{"empty becomes Unknown", "", "Unknown"},
		{"blank becomes Unknown", "   ", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Company(tables, tt.input))
		})
	}
}
