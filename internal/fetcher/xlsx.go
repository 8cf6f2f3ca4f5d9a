package fetcher

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

var xlsxHeader = []string{
	"Company", "Signal Type", "Project", "State", "Sector", "Status",
	"Final Score", "Tier", "High Urgency", "Confidence",
	"Recommended Products", "Territory",
	"Officer", "Role", "Phone", "Email", "Distance (km)",
	"Source URL",
}

// WriteLeadsXLSX writes the field-team workbook: one sheet per tier plus a
// combined sheet, leads already in score order.
func WriteLeadsXLSX(path string, leads []model.Lead) error {
	f := xlsx.NewFile()

	all, err := f.AddSheet("All Leads")
	if err != nil {
		return eris.Wrap(err, "fetcher: add sheet")
	}
	writeHeaderRow(all)
	for _, l := range leads {
		writeLeadRow(all, l)
	}

	for tier := model.TierImmediate; tier <= model.TierLowPriority; tier++ {
		sheet, err := f.AddSheet(sheetName(tier))
		if err != nil {
			return eris.Wrapf(err, "fetcher: add sheet for tier %d", tier)
		}
		writeHeaderRow(sheet)
		for _, l := range leads {
			if l.PriorityTier == tier {
				writeLeadRow(sheet, l)
			}
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "fetcher: save %s", path)
	}
	return nil
}

// sheetName flattens the tier label; xlsx sheet names reject some punctuation
// and cap at 31 chars.
func sheetName(t model.Tier) string {
	return strings.ReplaceAll(t.Label(), " - ", " ")
}

func writeHeaderRow(sheet *xlsx.Sheet) {
	row := sheet.AddRow()
	for _, col := range xlsxHeader {
		cell := row.AddCell()
		cell.SetString(col)
		style := xlsx.NewStyle()
		style.Font.Bold = true
		cell.SetStyle(style)
	}
}

func writeLeadRow(sheet *xlsx.Sheet, l model.Lead) {
	row := sheet.AddRow()
	row.AddCell().SetString(l.CanonicalName)
	row.AddCell().SetString(l.SignalType)
	row.AddCell().SetString(l.ProjectName)
	row.AddCell().SetString(l.State)
	row.AddCell().SetString(l.Sector)
	row.AddCell().SetString(l.Status)
	row.AddCell().SetFloat(l.FinalScore)
	row.AddCell().SetString(l.TierLabel)
	row.AddCell().SetString(yesNo(l.HighUrgency))
	row.AddCell().SetFloat(l.Confidence)
	row.AddCell().SetString(l.Products)
	row.AddCell().SetString(l.Territory)
	row.AddCell().SetString(l.OfficerName)
	row.AddCell().SetString(l.OfficerRole)
	row.AddCell().SetString(l.OfficerPhone)
	row.AddCell().SetString(l.OfficerEmail)
	if l.OfficerDistance != nil {
		row.AddCell().SetString(fmt.Sprintf("%.1f", *l.OfficerDistance))
	} else {
		row.AddCell().SetString("")
	}
	row.AddCell().SetString(l.SourceURL)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
