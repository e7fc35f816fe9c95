package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/brandonyach/amsadmin/internal/ams/model"
	"github.com/xuri/excelize/v2"
)

var reportColumns = []string{"user_id", "user_key", "reason"}

// Render prints the failure report as an aligned console table.
func Render(w io.Writer, report model.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(reportColumns, "\t"))
	for _, rec := range report {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rec.UserID, rec.UserKey, rec.Reason)
	}
	return tw.Flush()
}

// WriteReport saves the failure report to a CSV or Excel file, chosen by
// extension.
func WriteReport(path string, report model.Report) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return writeCSV(path, report)
	case ".xlsx":
		return writeXLSX(path, report)
	default:
		return fmt.Errorf("unsupported report file %q: want .csv or .xlsx", path)
	}
}

func writeCSV(path string, report model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportColumns); err != nil {
		return err
	}
	for _, rec := range report {
		if err := w.Write([]string{rec.UserID, rec.UserKey, rec.Reason}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path string, report model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range reportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}
	for r, rec := range report {
		values := []string{rec.UserID, rec.UserKey, rec.Reason}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f.SaveAs(path)
}
