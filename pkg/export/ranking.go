// Package export renders rankings as Excel workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/job"
)

const rankingSheet = "Ranking"

var rankingHeaders = []string{"Rank", "Candidate", "Email", "Score", "Cheating"}

// RankingXLSX writes the ranking of j into an xlsx workbook. Flagged rows are
// highlighted.
func RankingXLSX(j job.Job, entries []interview.RankEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return nil, err
	}
	widths := map[string]float64{"A": 8, "B": 28, "C": 32, "D": 10, "E": 10}
	for col, w := range widths {
		if err := f.SetColWidth(rankingSheet, col, col, w); err != nil {
			return nil, err
		}
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}
	plainStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, err
	}
	flaggedStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(rankingSheet, "A1", j.Title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(rankingSheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	const headerRow = 3
	for i, h := range rankingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(rankingSheet, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(rankingSheet, "A3", "E3", headerStyle); err != nil {
		return nil, err
	}

	for i, e := range entries {
		row := headerRow + 1 + i
		cheating := "No"
		style := plainStyle
		if e.Cheating {
			cheating = "Yes"
			style = flaggedStyle
		}
		values := []any{e.Rank, e.Name, e.Email, e.Score, cheating}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(rankingSheet, cell, v); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellStyle(rankingSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), style); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
