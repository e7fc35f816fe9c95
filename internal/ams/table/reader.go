package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brandonyach/amsadmin/internal/ams/model"
	"github.com/xuri/excelize/v2"
)

// ReadMapping loads a mapping table from a CSV or Excel file. The first row
// is the header; fully blank rows are skipped.
func ReadMapping(path string) (model.MappingTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	default:
		return model.MappingTable{}, fmt.Errorf("unsupported mapping file %q: want .csv or .xlsx", path)
	}
}

func readCSV(path string) (model.MappingTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.MappingTable{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return model.MappingTable{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return buildTable(records, path)
}

func readXLSX(path string) (model.MappingTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return model.MappingTable{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return model.MappingTable{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return buildTable(rows, path)
}

func buildTable(records [][]string, path string) (model.MappingTable, error) {
	if len(records) == 0 {
		return model.MappingTable{}, fmt.Errorf("mapping file %s is empty", path)
	}

	columns := make([]string, len(records[0]))
	seen := make(map[string]bool, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			return model.MappingTable{}, fmt.Errorf("mapping file %s has an empty column name", path)
		}
		if seen[name] {
			return model.MappingTable{}, fmt.Errorf("mapping file %s has duplicate column %q", path, name)
		}
		seen[name] = true
		columns[i] = name
	}

	table := model.MappingTable{Columns: columns}
	for i, record := range records[1:] {
		blank := true
		values := make(map[string]string, len(columns))
		for j, col := range columns {
			var v string
			if j < len(record) {
				v = strings.TrimSpace(record[j])
			}
			if v != "" {
				blank = false
			}
			values[col] = v
		}
		if blank {
			continue
		}
		table.Rows = append(table.Rows, model.MappingRow{Index: i, Values: values})
	}
	return table, nil
}
