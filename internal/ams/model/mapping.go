package model

import "strings"

// MappingRow is one caller-supplied update request: the identifier value in
// the chosen key column plus the new value in the field's column. Rows keep
// their position in the source table so the failure report can preserve it.
type MappingRow struct {
	Index  int
	Values map[string]string
}

func (r MappingRow) Value(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// MappingTable is the caller-supplied table, header plus ordered rows.
type MappingTable struct {
	Columns []string
	Rows    []MappingRow
}

func (t MappingTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ResolvedUpdate pairs a directory entry with the new value destined for it.
type ResolvedUpdate struct {
	Row      MappingRow
	Person   Person
	NewValue string
}
