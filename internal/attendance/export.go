package attendance

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	statisticsSheet = "Statistiche"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var statisticsHeader = []interface{}{
	"Employee ID", "First name", "Last name", "Badge", "Presence days", "Absence days", "Average hours",
}

// ExportFilename is the attachment name for a statistics workbook.
func ExportFilename(period Period) string {
	return fmt.Sprintf("statistics_%s_%s.xlsx", period.From, period.To)
}

// WriteStatisticsXLSX writes one sheet with a period title row, a header
// row and one row per employee. Missing averages are left blank.
func WriteStatisticsXLSX(w io.Writer, period Period, rows []*EmployeeStatistics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statisticsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellValue(statisticsSheet, "A1", "Period "+period.From+" - "+period.To); err != nil {
		return err
	}
	if err := f.SetSheetRow(statisticsSheet, "A2", &statisticsHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(statisticsSheet, "A1", "G2", bold); err != nil {
		return err
	}

	for i, r := range rows {
		var avg interface{}
		if r.AverageHours != nil {
			avg = *r.AverageHours
		}
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		values := []interface{}{r.EmployeeID, r.FirstName, r.LastName, r.BadgeNumber, r.PresenceDays, r.AbsenceDays, avg}
		if err := f.SetSheetRow(statisticsSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+3, err)
		}
	}

	if err := f.SetColWidth(statisticsSheet, "A", "G", 16); err != nil {
		return err
	}

	return f.Write(w)
}
