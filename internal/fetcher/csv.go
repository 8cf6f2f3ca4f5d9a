// Package fetcher reads raw source files and writes enriched exports.
package fetcher

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

// ReadRecords parses a raw source CSV into records. Source files come from
// scrapers with uneven quality: a UTF-8 BOM on the first header, ragged rows,
// missing columns. Short rows read empty for the missing columns; rows that
// fail to parse at all are dropped and counted, never fatal.
func ReadRecords(path string) ([]model.RawRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close()
	return parseRecords(f, path)
}

func parseRecords(r io.Reader, name string) ([]model.RawRecord, int, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, eris.Wrapf(err, "fetcher: read header of %s", name)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var records []model.RawRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if blankRow(row) {
			skipped++
			continue
		}

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		records = append(records, model.RawRecord{
			ID:           field("id"),
			SourceSystem: field("source_system"),
			CompanyName:  field("company_name"),
			ProjectName:  field("project_name"),
			Location:     field("location"),
			State:        field("state"),
			Sector:       field("sector"),
			Category:     field("category"),
			Status:       field("status"),
			Description:  field("description"),
			SourceURL:    field("source_url"),
			Details:      field("details"),
			DiscoveredAt: field("discovered_at"),
		})
	}

	if skipped > 0 {
		zap.L().Warn("skipped malformed rows",
			zap.String("file", name),
			zap.Int("skipped", skipped))
	}
	return records, skipped, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// stripBOM removes a leading UTF-8 byte order mark; Windows exports carry one.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
