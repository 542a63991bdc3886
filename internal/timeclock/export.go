package timeclock

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"staffing-backend/internal/models"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var reportColumns = []string{"Date", "Position", "Event", "Clock In", "Clock Out", "Break Minutes", "Total"}

// ReportFilename suggests a stable download name derived from the range start,
// e.g. timeclock_2024-06.csv.
func ReportFilename(prefix string, from time.Time, format string) string {
	return fmt.Sprintf("%s_%04d-%02d.%s", prefix, from.Year(), int(from.Month()), format)
}

func (e *Engine) reportRow(entry models.TimeEntry) []string {
	clockIn := entry.ClockIn.In(e.loc)
	clockOut := ""
	if entry.ClockOut != nil {
		clockOut = entry.ClockOut.In(e.loc).Format("15:04")
	}
	total := ""
	if entry.TotalMinutes != nil {
		total = FormatHMM(*entry.TotalMinutes)
	}
	return []string{
		clockIn.Format("2006-01-02"),
		entry.PositionName,
		entry.EventName,
		clockIn.Format("15:04"),
		clockOut,
		strconv.Itoa(entry.BreakMinutes),
		total,
	}
}

// WriteCSV renders entries with a fixed header and column order. The same
// entries always produce byte-identical output.
func (e *Engine) WriteCSV(w io.Writer, entries []models.TimeEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportColumns); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Write(e.reportRow(entry)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX renders the same table as a single-sheet workbook.
func (e *Engine) WriteXLSX(w io.Writer, entries []models.TimeEntry) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := "Entries"
	file.SetSheetName("Sheet1", sheet)

	if err := writeXLSXRow(file, sheet, 1, reportColumns); err != nil {
		return err
	}
	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(reportColumns), 1)
		_ = file.SetCellStyle(sheet, "A1", endCell, style)
	}

	for i, entry := range entries {
		if err := writeXLSXRow(file, sheet, i+2, e.reportRow(entry)); err != nil {
			return err
		}
	}
	return file.Write(w)
}

func writeXLSXRow(file *excelize.File, sheet string, row int, values []string) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
