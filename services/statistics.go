// services/statistics.go
package services

import (
	"fmt"
	"io"
	"sort"

	"basketball-league/utils"

	"github.com/xuri/excelize/v2"
)

// Percentile90 returns the score at index floor(n*0.9)-1 of the sorted
// scores. ok is false for empty input or when that index does not exist.
func Percentile90(scores []float64) (threshold float64, ok bool) {
	if len(scores) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)

	idx := int(float64(len(sorted))*0.9) - 1
	if idx < 0 || idx >= len(sorted) {
		return 0, false
	}
	return sorted[idx], true
}

const statisticsSheet = "Statistics"

// WriteStatisticsXLSX renders the site statistics as a single-sheet
// workbook.
func WriteStatisticsXLSX(w io.Writer, stats []UserStatistics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statisticsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"ID", "Username", "Login count", "Total time spent", "Online"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(statisticsSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for idx, st := range stats {
		row := idx + 2
		values := []any{st.ID, st.Username, st.LoginCount, utils.FormatDuration(st.TotalTimeSpent), st.IsOnline}
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			if err := f.SetCellValue(statisticsSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	f.SetColWidth(statisticsSheet, "A", "A", 38)
	f.SetColWidth(statisticsSheet, "B", "B", 20)
	f.SetColWidth(statisticsSheet, "C", "C", 12)
	f.SetColWidth(statisticsSheet, "D", "D", 18)
	f.SetColWidth(statisticsSheet, "E", "E", 8)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
